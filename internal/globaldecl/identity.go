package globaldecl

import (
	"fmt"

	"github.com/jacoelho/yangresolve/errors"
	"github.com/jacoelho/yangresolve/internal/fixpoint"
	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/pathparse"
	"github.com/jacoelho/yangresolve/internal/schematree"
	"github.com/jacoelho/yangresolve/internal/unres"
)

// resolveIdentityName resolves a (possibly module-prefixed) identity
// name against home's identity scope, the same lexical-name shape
// internal/typechain.ResolveBaseName uses for a typedef's base name, but
// keyed against Module.IdentityByName instead of Module.TypeByName.
func resolveIdentityName(tree ModuleSet, home *model.Module, text string) (*model.Module, ids.IdentityID, bool, error) {
	name, _, err := pathparse.ParseNodeIdentifier([]byte(text))
	if err != nil {
		return nil, 0, false, err
	}
	owner := home
	if len(name.Module) > 0 {
		m, ok := tree.ResolveImportPrefix(home, string(name.Module))
		if !ok {
			return nil, 0, false, fmt.Errorf("globaldecl: %w: module prefix %q", schematree.ErrMissingPrefix, name.Module)
		}
		owner = m
	}
	id, ok := owner.IdentityByName(string(name.Name))
	return owner, id, ok, nil
}

// resolveIdentBase resolves identity.BaseNames into identity.Bases,
// maintaining each base's reverse Derived back-link so the identity DAG
// can be walked in either direction once resolution completes.
func (e *Env) resolveIdentBase(item unres.SchemaItem) (fixpoint.Outcome, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: ident-base item names an unknown module")
	}
	identity := home.Identity(item.Identity)
	if identity == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: ident-base item names no identity")
	}

	bases := make([]ids.Ref[ids.IdentityID], 0, len(identity.BaseNames))
	for _, name := range identity.BaseNames {
		owner, baseID, ok, err := resolveIdentityName(e.Tree, home, name)
		if err != nil {
			return fixpoint.Failed, err
		}
		if !ok {
			return e.deferOrFail(fmt.Errorf("globaldecl: identity %q base %q not found", identity.Name, name))
		}
		ref := ids.Ref[ids.IdentityID]{Module: owner.ID, Index: baseID}
		bases = append(bases, ref)
		base := owner.Identity(baseID)
		base.Derived = append(base.Derived, ids.Ref[ids.IdentityID]{Module: home.ID, Index: identity.ID})
	}
	identity.Bases = bases
	identity.BaseNames = nil

	self := ids.Ref[ids.IdentityID]{Module: home.ID, Index: identity.ID}
	if identityReachesSelf(e.Tree, self) {
		return fixpoint.Failed, errors.Diagnostics{
			errors.Newf(errors.CodeInArg, "", "circular reference of %q identity", identity.Name),
		}
	}
	return fixpoint.Resolved, nil
}

// identityReachesSelf reports whether following resolved Bases links from
// start eventually returns to start. A cycle among several identities
// only becomes visible through this walk once every participant has run
// through resolveIdentBase at least once, so the check is repeated after
// each identity resolves rather than performed once up front; the last
// identity in the cycle to resolve is always the one that observes it.
func identityReachesSelf(tree ModuleSet, start ids.Ref[ids.IdentityID]) bool {
	visited := make(map[ids.Ref[ids.IdentityID]]bool)
	var walk func(ref ids.Ref[ids.IdentityID]) bool
	walk = func(ref ids.Ref[ids.IdentityID]) bool {
		if visited[ref] {
			return false
		}
		visited[ref] = true
		owner := tree.Module(ref.Module)
		if owner == nil {
			return false
		}
		identity := owner.Identity(ref.Index)
		if identity == nil {
			return false
		}
		for _, base := range identity.Bases {
			if base == start || walk(base) {
				return true
			}
		}
		return false
	}
	return walk(start)
}

// resolveTypeIdentrefBase resolves an identityref type's
// IdentityBaseNames into IdentityBases. A base identity may live in a
// different module than the identityref type itself, so each entry is
// kept as a (module, identity) Ref rather than a bare index.
func (e *Env) resolveTypeIdentrefBase(item unres.SchemaItem) (fixpoint.Outcome, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: identref-base item names an unknown module")
	}
	t := itemType(home, item)
	if t == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: identref-base item names no type")
	}

	bases := make([]ids.Ref[ids.IdentityID], 0, len(t.IdentityBaseNames))
	for _, name := range t.IdentityBaseNames {
		owner, baseID, ok, err := resolveIdentityName(e.Tree, home, name)
		if err != nil {
			return fixpoint.Failed, err
		}
		if !ok {
			return e.deferOrFail(fmt.Errorf("globaldecl: identityref base %q not found", name))
		}
		bases = append(bases, ids.Ref[ids.IdentityID]{Module: owner.ID, Index: baseID})
	}
	t.IdentityBases = bases
	t.IdentityBaseNames = nil
	return fixpoint.Resolved, nil
}
