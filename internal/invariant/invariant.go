// Package invariant asserts the structural properties a fully resolved
// module set must hold once internal/globaldecl's fixpoint has run to
// completion: they are never load-bearing for resolution itself, only a
// last line of defense against a resolver bug silently producing a
// structurally broken tree.
//
// Grounded on avular-packages internal/core/spec_compiler.go's use of
// assert-lib for post-construction preconditions expressed as
// unconditional assertions rather than validated user input; a failure
// here means a bug in this module, not a malformed YANG document, which
// is why Check recovers a failed assertion into errors.CodeInternal
// instead of a Diagnostic.
package invariant

import (
	"context"
	stderrors "errors"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"github.com/jacoelho/yangresolve/errors"
	"github.com/jacoelho/yangresolve/internal/graphcycle"
	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/interval"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/occurspolicy"
)

// Check runs every universal invariant against modules, recovering a
// failed assertion (assert-lib panics on violation) into an error
// carrying errors.CodeInternal rather than letting it escape as a panic
// across the public API boundary.
func Check(ctx context.Context, modules []*model.Module) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Internal(fmt.Sprintf("invariant: %v", r))
		}
	}()

	for _, m := range modules {
		checkSiblingLinkage(ctx, m)
		checkConfigCoherence(ctx, m)
		checkListKeys(ctx, m)
		checkUsesCounterZero(ctx, m)
		checkIntervalContainment(ctx, m)
		checkCardinality(ctx, m)
	}
	checkIdentityAcyclic(ctx, modules)
	return nil
}

// checkSiblingLinkage asserts that a node's Children exactly agrees with
// its children's own Parent back-references: every child ID in
// node.Children must resolve to a node whose Parent is node.ID, and no
// node may be reachable from two different parents.
func checkSiblingLinkage(ctx context.Context, m *model.Module) {
	owner := make(map[ids.NodeID]ids.NodeID, len(m.Nodes))
	for i := range m.Nodes {
		n := &m.Nodes[i]
		for _, childID := range n.Children {
			child := m.Node(childID)
			assert.NotNil(ctx, child, fmt.Sprintf("module %q: node %q lists a child that does not exist", m.Name, n.Name))
			assert.True(ctx, child.Parent == n.ID,
				fmt.Sprintf("module %q: node %q's child %q does not point back to it as Parent", m.Name, n.Name, child.Name))
			if prior, ok := owner[childID]; ok {
				assert.True(ctx, prior == n.ID,
					fmt.Sprintf("module %q: node %q is listed as a child of both %d and %d", m.Name, child.Name, prior, n.ID))
			}
			owner[childID] = n.ID
		}
	}
}

// checkConfigCoherence asserts YANG's config-inheritance rule holds
// structurally: a config-false node may never have a config-true child,
// since config-false always propagates downward.
func checkConfigCoherence(ctx context.Context, m *model.Module) {
	for i := range m.Nodes {
		n := &m.Nodes[i]
		if n.Config {
			continue
		}
		for _, childID := range n.Children {
			child := m.Node(childID)
			if child == nil {
				continue
			}
			assert.True(ctx, !child.Config,
				fmt.Sprintf("module %q: config-false node %q has config-true child %q", m.Name, n.Name, child.Name))
		}
	}
}

// checkListKeys asserts every list's resolved Keys has one entry per
// as-written KeyName and is duplicate-free, that each key names a real
// child leaf, and that a config-true list carries only config-true keys.
func checkListKeys(ctx context.Context, m *model.Module) {
	for i := range m.Nodes {
		n := &m.Nodes[i]
		if n.Kind != model.List || len(n.KeyNames) == 0 {
			continue
		}
		assert.True(ctx, len(n.Keys) == len(n.KeyNames),
			fmt.Sprintf("module %q: list %q resolved %d keys for %d key names", m.Name, n.Name, len(n.Keys), len(n.KeyNames)))

		seen := make(map[ids.NodeID]struct{}, len(n.Keys))
		for _, keyID := range n.Keys {
			_, dup := seen[keyID]
			assert.True(ctx, !dup, fmt.Sprintf("module %q: list %q names the same key leaf twice", m.Name, n.Name))
			seen[keyID] = struct{}{}

			key := m.Node(keyID)
			assert.NotNil(ctx, key, fmt.Sprintf("module %q: list %q's key does not resolve to a node", m.Name, n.Name))
			assert.True(ctx, key.Kind == model.Leaf,
				fmt.Sprintf("module %q: list %q's key %q is not a leaf", m.Name, n.Name, key.Name))
			if n.Config {
				assert.True(ctx, key.Config,
					fmt.Sprintf("module %q: config-true list %q has config-false key %q", m.Name, n.Name, key.Name))
			}
		}
	}
}

// checkUsesCounterZero asserts every grouping's pending-uses counter has
// settled to zero, the fixpoint driver's own termination condition for
// USES_EXPAND: a nonzero counter after RunSchema returned nil means some
// uses site incremented it without a matching decrement.
func checkUsesCounterZero(ctx context.Context, m *model.Module) {
	for i := range m.Groupings {
		g := &m.Groupings[i]
		assert.True(ctx, g.PendingUses == 0,
			fmt.Sprintf("module %q: grouping %q left PendingUses=%d after resolution", m.Name, g.Name, g.PendingUses))
	}
}

// checkIntervalContainment asserts a derived type's effective range and
// length sets remain literal subsets of its base's, re-checking what
// internal/typechain.ResolveTypeDerivation already enforced at
// resolution time via interval.Set.Resolve.
func checkIntervalContainment(ctx context.Context, m *model.Module) {
	for i := range m.Types {
		t := &m.Types[i]
		if t.Base.IsZero() {
			continue
		}
		base := m.Type(t.Base)
		if base == nil {
			continue
		}
		checkSetContained(ctx, m.Name, t.Name, "range", t.EffectiveRange, base.EffectiveRange)
		checkSetContained(ctx, m.Name, t.Name, "length", t.EffectiveLength, base.EffectiveLength)
	}
}

// checkCardinality asserts every list and leaf-list's resolved
// min-elements/max-elements pair is internally satisfiable, re-checking
// what the parser's own cardinality validation should already have
// rejected before a node ever reached resolution.
func checkCardinality(ctx context.Context, m *model.Module) {
	for i := range m.Nodes {
		n := &m.Nodes[i]
		if n.Kind != model.List && n.Kind != model.LeafList {
			continue
		}
		issue := occurspolicy.CheckCardinality(n.MinElements, n.MaxElements, n.MaxUnbounded)
		assert.True(ctx, issue == occurspolicy.OK,
			fmt.Sprintf("module %q: node %q has min-elements %d greater than max-elements %d", m.Name, n.Name, n.MinElements, n.MaxElements))
	}
}

// checkIdentityAcyclic asserts the identity-base graph across every
// module is a DAG: no identity may reach itself by following resolved
// Bases links, cross-module or not.
func checkIdentityAcyclic(ctx context.Context, modules []*model.Module) {
	byID := make(map[ids.ModuleID]*model.Module, len(modules))
	for _, m := range modules {
		byID[m.ID] = m
	}
	lookup := func(ref ids.Ref[ids.IdentityID]) *model.Identity {
		owner := byID[ref.Module]
		if owner == nil {
			return nil
		}
		return owner.Identity(ref.Index)
	}

	var starts []ids.Ref[ids.IdentityID]
	for _, m := range modules {
		for i := range m.Identities {
			starts = append(starts, ids.Ref[ids.IdentityID]{Module: m.ID, Index: m.Identities[i].ID})
		}
	}

	err := graphcycle.Detect(graphcycle.Config[ids.Ref[ids.IdentityID]]{
		Exists: func(ref ids.Ref[ids.IdentityID]) bool { return lookup(ref) != nil },
		Next: func(ref ids.Ref[ids.IdentityID]) ([]ids.Ref[ids.IdentityID], error) {
			identity := lookup(ref)
			if identity == nil {
				return nil, nil
			}
			return identity.Bases, nil
		},
		Starts:  starts,
		Missing: graphcycle.MissingPolicyIgnore,
	})

	var cycle graphcycle.CycleError[ids.Ref[ids.IdentityID]]
	if stderrors.As(err, &cycle) {
		name := "?"
		if identity := lookup(cycle.Key); identity != nil {
			name = identity.Name
		}
		ownerName := "?"
		if owner := byID[cycle.Key.Module]; owner != nil {
			ownerName = owner.Name
		}
		assert.True(ctx, false, fmt.Sprintf("module %q: identity %q participates in a base cycle", ownerName, name))
		return
	}
	assert.True(ctx, err == nil, fmt.Sprintf("identity base graph check failed: %v", err))
}

func checkSetContained(ctx context.Context, moduleName, typeName, kind string, derived, base interval.Set) {
	if len(base.Intervals) == 0 {
		return
	}
	for _, iv := range derived.Intervals {
		if iv.Min.Kind == interval.BoundLiteral {
			assert.True(ctx, base.Contains(iv.Min.Value),
				fmt.Sprintf("module %q: type %q's effective %s minimum falls outside its base's", moduleName, typeName, kind))
		}
		if iv.Max.Kind == interval.BoundLiteral {
			assert.True(ctx, base.Contains(iv.Max.Value),
				fmt.Sprintf("module %q: type %q's effective %s maximum falls outside its base's", moduleName, typeName, kind))
		}
	}
}
