package expand

import (
	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
)

// cloneSubtrees deep-copies each node in roots (and its descendants) from
// src's arena into dst's arena, reparenting the copies under newParent,
// re-homing every reachable Type into dst's type arena along the way, and
// fixing up Keys/DefaultCase references once the whole set of roots has
// been copied. onNestedUses, if non-nil, is called with the fresh copy's
// ID for every cloned node whose Kind is Uses, without expanding it.
//
// This is the one splicing primitive shared by grouping expansion
// (ExpandUses) and augment splice (ApplyAugment): both operations move a
// subtree built in one module's arena onto a node living in (possibly)
// another module's arena, and every arena-indexed accessor in this
// codebase (schematree's walk, model.Module.Node/Type) assumes a node's
// Children and Type fields index its own Module's arena — so the copy,
// not just a reparent, is what keeps that invariant intact.
func cloneSubtrees(src *model.Module, dst *model.Module, roots []ids.NodeID, newParent ids.NodeID, onNestedUses func(ids.NodeID)) []ids.NodeID {
	cloned := make(map[ids.NodeID]ids.NodeID, len(roots))
	typeMap := make(map[ids.TypeID]ids.TypeID)

	var cloneOne func(srcID ids.NodeID, parent ids.NodeID) ids.NodeID
	cloneOne = func(srcID ids.NodeID, parent ids.NodeID) ids.NodeID {
		source := src.Node(srcID)
		n := *source
		n.Module = dst.ID
		n.Parent = parent
		n.Children = nil
		if !source.Type.IsZero() {
			n.Type = cloneTypeChain(src, dst, source.Type, typeMap)
		}
		newID := dst.AppendNode(n)
		cloned[srcID] = newID

		var children []ids.NodeID
		for _, childID := range source.Children {
			children = append(children, cloneOne(childID, newID))
		}
		dst.Node(newID).Children = children

		if source.Kind == model.Uses && onNestedUses != nil {
			onNestedUses(newID)
		}
		return newID
	}

	var top []ids.NodeID
	for _, rootID := range roots {
		top = append(top, cloneOne(rootID, newParent))
	}

	for _, newID := range cloned {
		node := dst.Node(newID)
		if len(node.Keys) > 0 {
			remapped := make([]ids.NodeID, len(node.Keys))
			for i, k := range node.Keys {
				if mapped, ok := cloned[k]; ok {
					remapped[i] = mapped
				} else {
					remapped[i] = k
				}
			}
			node.Keys = remapped
		}
		if !node.DefaultCase.IsZero() {
			if mapped, ok := cloned[node.DefaultCase]; ok {
				node.DefaultCase = mapped
			}
		}
	}

	return top
}

// propagateConfigFalse recursively forces node.ID and every descendant not
// already carrying an explicit ConfigSet mark to config false, the
// downward half of YANG's config-inheritance rule: a subtree spliced or
// refined onto a config-false node was cloned with whatever config its own
// template declared, so a later override that flips the target to config
// false must still walk into children the template already marked
// config-true. A node whose ConfigSet is already true keeps its own
// (and, transitively, its own descendants') config exactly as declared,
// matching the "respects explicit LYS_CONFIG_SET marks" rule this same
// downward walk must not override.
func propagateConfigFalse(m *model.Module, nodeID ids.NodeID) {
	node := m.Node(nodeID)
	if node == nil || node.ConfigSet {
		return
	}
	node.Config = false
	node.ConfigSet = true
	for _, childID := range node.Children {
		propagateConfigFalse(m, childID)
	}
}

// CloneType re-homes a single type (and its Base/UnionMembers chain) from
// src's arena into dst's, for a caller that needs to splice one type
// rather than a whole cloned subtree — internal/typechain's
// ResolveTypeDerivation uses this to bring a cross-module typedef's base
// local before setting a Type's own Base field, since that field, like a
// node's Children, is always assumed to index its own Module's arena.
func CloneType(src *model.Module, dst *model.Module, id ids.TypeID) ids.TypeID {
	return cloneTypeChain(src, dst, id, make(map[ids.TypeID]ids.TypeID))
}

// cloneTypeChain re-homes a type transitively reachable from a cloned
// node's Type field into dst's type arena, memoized so a typedef shared by
// several cloned nodes is copied only once per call. Every accessor in
// this codebase (model.Module.Type, internal/interval's effective-range
// merge) assumes a node's Type field indexes its own Module's type arena,
// so a spliced node cannot keep pointing back at its origin module's
// arena; the type definition itself is immutable template data, so
// copying it alongside the node costs nothing semantically.
func cloneTypeChain(src *model.Module, dst *model.Module, id ids.TypeID, memo map[ids.TypeID]ids.TypeID) ids.TypeID {
	if id.IsZero() {
		return 0
	}
	if mapped, ok := memo[id]; ok {
		return mapped
	}
	t := *src.Type(id)
	memo[id] = 0 // guards a malformed self-referential chain from recursing forever
	t.Module = dst.ID
	if !t.Base.IsZero() {
		t.Base = cloneTypeChain(src, dst, t.Base, memo)
	}
	if len(t.UnionMembers) > 0 {
		members := make([]ids.TypeID, len(t.UnionMembers))
		for i, m := range t.UnionMembers {
			members[i] = cloneTypeChain(src, dst, m, memo)
		}
		t.UnionMembers = members
	}
	newID := dst.AppendType(t)
	memo[id] = newID
	return newID
}
