// Package globaldecl dispatches each schema-time unresolved item
// (internal/unres.SchemaItem) to the resolver that actually knows how to
// finish it, wiring internal/typechain, internal/leafref, internal/expand
// and internal/schematree's lookup primitives into the shape
// internal/fixpoint.Driver expects: a single SchemaResolveFunc keyed on
// unres.SchemaKind.
//
// Grounding: a Handlers table dispatched by declaration kind through a
// single Dispatch function, generalized from XSD's fixed five-way
// global-declaration split to YANG's twelve-member unres.SchemaKind enum —
// the shape (one resolver function per kind, looked up through a single
// switch) carries over unchanged even though every individual case is new.
package globaldecl

import (
	"errors"
	"fmt"

	"github.com/jacoelho/yangresolve/internal/expand"
	"github.com/jacoelho/yangresolve/internal/fixpoint"
	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/leafref"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/schematree"
	"github.com/jacoelho/yangresolve/internal/typechain"
	"github.com/jacoelho/yangresolve/internal/unres"
)

// ModuleSet is the cross-module collaborator every resolver in this
// package needs; schematree.ModuleSet, typechain.ModuleSet and
// expand.ModuleSet are structurally identical, so any concrete tree type
// satisfying one satisfies all three.
type ModuleSet = schematree.ModuleSet

// XPathKind distinguishes a when condition from a must constraint for the
// XPathRegister item's callback, mirroring the root package's
// XPathScheduler collaborator.
type XPathKind uint8

const (
	XPathWhen XPathKind = iota
	XPathMust
)

// RegisterFunc is invoked once per when/must expression XPATH_REGISTER
// finds, so the root package's injected XPathScheduler collaborator can
// schedule the expression for evaluation without this package knowing
// anything about XPath itself — resolving XPath-dependency scheduling,
// not evaluating XPath, is this item's entire job.
type RegisterFunc func(node *model.Node, expr string, kind XPathKind)

// Env bundles the collaborators Dispatch's resolvers share.
type Env struct {
	Tree ModuleSet

	// RegisterXPath is called once per when/must expression found on a
	// node reached by XPATH_REGISTER. Nil is a legal no-op collaborator
	// for a caller that only wants schema-tree shape, not XPath
	// scheduling.
	RegisterXPath RegisterFunc

	// Diagnostics reports whether the current pass should turn a
	// still-missing target into a hard, detailed error instead of
	// deferring again. The root package wires this to the same flag
	// internal/fixpoint.Driver flips for its second, diagnostics-enabled
	// Round B pass, via a closure created after both Env and Driver
	// exist.
	Diagnostics func() bool
}

func (e *Env) diagnosticsOn() bool {
	return e.Diagnostics != nil && e.Diagnostics()
}

// deferOrFail turns a "target not found yet" condition into a Deferred
// outcome on an ordinary pass, or a hard Failed carrying err's detail
// once Diagnostics is on and a further pass would not help.
func (e *Env) deferOrFail(err error) (fixpoint.Outcome, error) {
	if e.diagnosticsOn() {
		return fixpoint.Failed, err
	}
	return fixpoint.Deferred, nil
}

// isNotFound reports whether err is one of the "target does not exist
// yet" sentinels a lookup returns, as opposed to a genuine syntax or
// structural error that no further pass will fix.
func isNotFound(err error) bool {
	return errors.Is(err, schematree.ErrNotFound) || errors.Is(err, schematree.ErrMissingPrefix)
}

// Dispatch is Env's fixpoint.SchemaResolveFunc: it reads item.Kind and
// calls the one resolver that understands it.
func (e *Env) Dispatch(item unres.SchemaItem, emit func(unres.SchemaItem)) (fixpoint.Outcome, error) {
	switch item.Kind {
	case unres.TypeDerivation:
		return e.resolveTypeDerivation(item)
	case unres.TypeLeafref:
		return e.resolveTypeLeafref(item)
	case unres.UsesExpand:
		return e.resolveUsesExpand(item, emit)
	case unres.IdentBase:
		return e.resolveIdentBase(item)
	case unres.TypeIdentrefBase:
		return e.resolveTypeIdentrefBase(item)
	case unres.IfFeature:
		return e.resolveIfFeature(item)
	case unres.ChoiceDefault:
		return e.resolveChoiceDefault(item)
	case unres.ListKeys:
		return e.resolveListKeys(item)
	case unres.ListUnique:
		return e.resolveListUnique(item)
	case unres.AugmentTarget:
		return e.resolveAugmentTarget(item, emit)
	case unres.XPathRegister:
		return e.resolveXPathRegister(item)
	case unres.TypeDefaultCheck:
		return e.resolveTypeDefaultCheck(item)
	default:
		return fixpoint.Failed, fmt.Errorf("globaldecl: unknown schema kind %d", item.Kind)
	}
}

// itemType returns the type item addresses: item.Type directly for a bare
// typedef's own derivation/identref-base, or the type owned by item.Node's
// node otherwise (a leaf, leaf-list or typedef-carrying node's own "type"
// statement).
func itemType(home *model.Module, item unres.SchemaItem) *model.Type {
	if !item.Type.IsZero() {
		return home.Type(item.Type)
	}
	node := home.Node(item.Node)
	if node == nil {
		return nil
	}
	return home.Type(node.Type)
}

func (e *Env) resolveTypeDerivation(item unres.SchemaItem) (fixpoint.Outcome, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: type-derivation item names an unknown module")
	}
	t := itemType(home, item)
	if t == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: type-derivation item names no type")
	}

	clone := func(owner *model.Module, baseID ids.TypeID) ids.TypeID {
		return expand.CloneType(owner, home, baseID)
	}

	resolved, err := typechain.ResolveTypeDerivation(e.Tree, home, t, clone)
	if err != nil {
		return fixpoint.Failed, err
	}
	if !resolved {
		return fixpoint.Deferred, nil
	}
	return fixpoint.Resolved, nil
}

func (e *Env) resolveTypeLeafref(item unres.SchemaItem) (fixpoint.Outcome, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: leafref item names an unknown module")
	}
	node := home.Node(item.Node)
	if node == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: leafref item names no node")
	}
	t := home.Type(node.Type)
	if t == nil || t.LeafrefPath == "" {
		return fixpoint.Failed, fmt.Errorf("globaldecl: leafref item on %q carries no path", node.Name)
	}

	target, err := leafref.ResolveSchemaLeafref(e.Tree, node, t.LeafrefPath)
	if err != nil {
		if isNotFound(err) {
			return e.deferOrFail(fmt.Errorf("globaldecl: leafref path %q on %q: %w", t.LeafrefPath, node.Name, err))
		}
		return fixpoint.Failed, err
	}
	t.LeafrefTarget = ids.Ref[ids.NodeID]{Module: target.Module, Index: target.ID}
	return fixpoint.Resolved, nil
}

func (e *Env) resolveChoiceDefault(item unres.SchemaItem) (fixpoint.Outcome, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: choice-default item names an unknown module")
	}
	choice := home.Node(item.Node)
	if choice == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: choice-default item names no node")
	}
	target, err := schematree.ResolveChoiceDefault(e.Tree, item.Context, choice)
	if err != nil {
		if isNotFound(err) {
			return e.deferOrFail(fmt.Errorf("globaldecl: choice %q default %q: %w", choice.Name, item.Context, err))
		}
		return fixpoint.Failed, err
	}
	choice.DefaultCase = target.ID
	return fixpoint.Resolved, nil
}

func (e *Env) resolveXPathRegister(item unres.SchemaItem) (fixpoint.Outcome, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: xpath-register item names an unknown module")
	}
	node := home.Node(item.Node)
	if node == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: xpath-register item names no node")
	}
	if e.RegisterXPath != nil {
		if node.When != "" {
			e.RegisterXPath(node, node.When, XPathWhen)
		}
		for _, m := range node.Must {
			e.RegisterXPath(node, m.XPath, XPathMust)
		}
	}
	return fixpoint.Resolved, nil
}
