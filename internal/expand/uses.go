// Package expand implements the three subtree-mutating operations that run
// once a uses, augment or deviation statement's target has resolved: deep
// copying a grouping's template subtree onto a uses site (with refine
// overrides applied), splicing an augment's children onto its resolved
// target, and applying a deviation's four deviate modes to an existing
// node.
//
// Grounding: a referenced group's particle tree is cloned onto every ref
// site under a cycle detector, and a single-step "resolve one node, hand
// the caller the next" walk shape is reused here for the nested-uses
// worklist; cloneSubtrees in clone.go is the direct descendant of that
// clone-the-particle-tree shape.
package expand

import (
	"errors"
	"fmt"

	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/schematree"
)

// ModuleSet is the collaborator expand needs to dereference modules across
// arenas; schematree.ModuleSet is reused directly since augment target
// resolution needs the same prefix/cross-module machinery as any other
// nodeid lookup.
type ModuleSet = schematree.ModuleSet

var (
	// ErrRefineTarget means a refine statement's target nodeid did not
	// match any node in the expanded grouping subtree.
	ErrRefineTarget = errors.New("expand: refine target not found in expanded subtree")

	// ErrRefineIncompatible means a refine statement named an attribute
	// that its target node's kind does not carry (e.g. "presence" on a
	// leaf).
	ErrRefineIncompatible = errors.New("expand: refine attribute is not compatible with target node kind")

	// ErrAugmentMandatory means an augment tried to add a mandatory node
	// across a module boundary, which is forbidden.
	ErrAugmentMandatory = errors.New("expand: augment may not add a mandatory node across a module boundary")
)

// ExpandUses splices grouping g's template subtree onto usesNode (already
// present in dst's arena, with Module and Parent already set), applying
// every refine in usesNode.Refines, and returns the new top-level child IDs
// in g's declared order.
//
// A nested uses found while cloning is itself cloned structurally (so its
// own Refines/UsesAugments fields and lexical position survive) but is
// deliberately not expanded here: doing the splice one grouping-reference
// deep at a time and leaving the nested uses for a fresh UsesExpand item —
// reported through onNestedUses — is what lets the fixpoint driver's
// Round A retry loop absorb a grouping that uses another grouping, and
// what turns a genuine grouping reference cycle into a "round made no
// progress" scheduling error rather than unbounded recursion here.
func ExpandUses(srcModule *model.Module, g *model.Grouping, dst *model.Module, usesNode *model.Node, onNestedUses func(newNodeID ids.NodeID)) ([]ids.NodeID, error) {
	top := cloneSubtrees(srcModule, dst, g.Children, usesNode.ID, onNestedUses)

	for i := range usesNode.Refines {
		if err := applyRefine(dst, top, &usesNode.Refines[i]); err != nil {
			return nil, err
		}
	}

	return top, nil
}

// nodeKindName formats a node kind for a refine/deviate-incompatibility
// error.
func nodeKindName(k model.NodeKind) string {
	return fmt.Sprintf("%d", k)
}
