// Package datadecl dispatches each data-time unresolved item
// (internal/unres.DataItem) to the handler that finishes it: when-driven
// subtree deletion, non-presence-container pruning, and the structural
// (schema-shape) half of leafref/instance-identifier/must checking that
// does not require an XPath evaluator.
//
// Runtime XPath evaluation is a separate subsystem: this package treats
// a node's WhenState as an input already populated by that subsystem
// before ResolveData runs, keeping the fixpoint sequencing and
// auto-delete cascade here while the boolean XPath truth value stays
// someone else's concern.
package datadecl

import (
	"fmt"

	"github.com/jacoelho/yangresolve/internal/fixpoint"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/schematree"
	"github.com/jacoelho/yangresolve/internal/unres"
)

// ModuleSet is the cross-module collaborator this package needs.
type ModuleSet = schematree.ModuleSet

// RPCSide restricts InstanceID resolution to one side of an rpc's
// input/output split; RPCSideAny performs no restriction.
type RPCSide uint8

const (
	RPCSideAny RPCSide = iota
	RPCSideInput
	RPCSideOutput
)

// Env bundles the collaborators Dispatch's handlers share.
type Env struct {
	Tree ModuleSet

	// NoAutoDelete disables the physical deletion of a when-false
	// subtree, leaving WhenState recorded but Deleted unset.
	NoAutoDelete bool

	// KeepEmptyContainers disables EMPTY_NP_CONTAINER_PRUNE's cascade.
	KeepEmptyContainers bool

	// RPCSide restricts instance-identifier resolution to the named side
	// of an rpc when a leaf falls under one.
	RPCSide RPCSide
}

// rpcSideOf walks node's ancestor chain to the nearest enclosing rpc
// input or output node, reporting ok == false when node is not under
// either.
func rpcSideOf(home *model.Module, node *model.Node) (model.NodeKind, bool) {
	for n := node; n != nil; {
		if n.Kind == model.Input || n.Kind == model.Output {
			return n.Kind, true
		}
		if n.Parent.IsZero() {
			return 0, false
		}
		n = home.Node(n.Parent)
	}
	return 0, false
}

// Dispatch is Env's fixpoint.DataResolveFunc.
func (e *Env) Dispatch(item unres.DataItem, emit func(unres.DataItem)) (fixpoint.Outcome, error) {
	switch item.Kind {
	case unres.WhenEval:
		return e.resolveWhenEval(item, emit)
	case unres.Leafref:
		return e.resolveLeafref(item)
	case unres.InstanceID:
		return e.resolveInstanceID(item)
	case unres.MustEval:
		return e.resolveMustEval(item)
	case unres.EmptyNPContainerPrune:
		return e.resolveEmptyNPContainerPrune(item, emit)
	default:
		return fixpoint.Failed, fmt.Errorf("datadecl: unknown data kind %d", item.Kind)
	}
}

// insideDeletedSubtree reports whether node or any ancestor has already
// been marked Deleted, in which case every item anchored inside it is
// silently resolved without further work.
func insideDeletedSubtree(home *model.Module, node *model.Node) bool {
	for n := node; n != nil; {
		if n.Deleted {
			return true
		}
		if n.Parent.IsZero() {
			return false
		}
		n = home.Node(n.Parent)
	}
	return false
}

func (e *Env) node(item unres.DataItem) (*model.Module, *model.Node, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return nil, nil, fmt.Errorf("datadecl: item names an unknown module")
	}
	node := home.Node(item.Node)
	if node == nil {
		return nil, nil, fmt.Errorf("datadecl: item names no node")
	}
	return home, node, nil
}

// resolveWhenEval waits for every ancestor's when to reach a terminal
// state, then acts on node's own WhenState: TRUE is a no-op, FALSE marks
// the subtree deleted (unless NoAutoDelete) and re-emits EMPTY_NP_
// CONTAINER_PRUNE for the parent so a container left with no live
// children gets a chance to prune itself.
func (e *Env) resolveWhenEval(item unres.DataItem, emit func(unres.DataItem)) (fixpoint.Outcome, error) {
	home, node, err := e.node(item)
	if err != nil {
		return fixpoint.Failed, err
	}
	if insideDeletedSubtree(home, node) {
		return fixpoint.Resolved, nil
	}

	for p := home.Node(node.Parent); p != nil; p = home.Node(p.Parent) {
		if p.When != "" && p.WhenState == model.WhenPending {
			return fixpoint.Deferred, nil
		}
	}

	switch node.WhenState {
	case model.WhenPending:
		return fixpoint.Deferred, nil
	case model.WhenTrue:
		return fixpoint.Resolved, nil
	case model.WhenFalse:
		if !e.NoAutoDelete {
			markDeleted(node, home)
			if !node.Parent.IsZero() {
				emit(unres.DataItem{Kind: unres.EmptyNPContainerPrune, Module: item.Module, Node: node.Parent})
			}
		}
		return fixpoint.Resolved, nil
	default:
		return fixpoint.Failed, fmt.Errorf("datadecl: node %q carries an invalid when-state", node.Name)
	}
}

func markDeleted(node *model.Node, home *model.Module) {
	node.Deleted = true
	for _, childID := range node.Children {
		if child := home.Node(childID); child != nil {
			markDeleted(child, home)
		}
	}
}

// resolveLeafref checks the schema-time-resolved leafref target still
// names a live (non-deleted) node, the structural half of data-time
// leafref checking that does not require matching an actual instance
// value — value matching is the XPath/instance-document subsystem's job.
func (e *Env) resolveLeafref(item unres.DataItem) (fixpoint.Outcome, error) {
	home, node, err := e.node(item)
	if err != nil {
		return fixpoint.Failed, err
	}
	if insideDeletedSubtree(home, node) {
		return fixpoint.Resolved, nil
	}
	t := home.Type(node.Type)
	if t == nil || t.LeafrefTarget.IsZero() {
		return fixpoint.Failed, fmt.Errorf("datadecl: leaf %q carries no resolved leafref target", node.Name)
	}
	targetModule := e.Tree.Module(t.LeafrefTarget.Module)
	if targetModule == nil {
		return fixpoint.Failed, fmt.Errorf("datadecl: leaf %q leafref target names an unknown module", node.Name)
	}
	target := targetModule.Node(t.LeafrefTarget.Index)
	if target == nil {
		return fixpoint.Failed, fmt.Errorf("datadecl: leaf %q leafref target no longer exists", node.Name)
	}
	if t.RequireInstance && insideDeletedSubtree(targetModule, target) {
		return fixpoint.Failed, fmt.Errorf("datadecl: leaf %q requires an instance but its leafref target %q was pruned", node.Name, target.Name)
	}
	return fixpoint.Resolved, nil
}

// resolveInstanceID checks an instance-identifier-typed leaf's
// require-instance obligation is at least structurally satisfiable:
// schema.go's TYPE_DERIVATION already validated the type itself, and
// once the deleted-subtree short-circuit clears, a leaf's own rpc side
// (if any) must agree with Env.RPCSide when the caller restricted
// resolution to one side of an rpc's input/output split.
func (e *Env) resolveInstanceID(item unres.DataItem) (fixpoint.Outcome, error) {
	home, node, err := e.node(item)
	if err != nil {
		return fixpoint.Failed, err
	}
	if insideDeletedSubtree(home, node) {
		return fixpoint.Resolved, nil
	}
	if e.RPCSide != RPCSideAny {
		if side, ok := rpcSideOf(home, node); ok {
			if e.RPCSide == RPCSideInput && side != model.Input {
				return fixpoint.Failed, fmt.Errorf("datadecl: instance-identifier leaf %q is on the rpc output side, resolution was restricted to input", node.Name)
			}
			if e.RPCSide == RPCSideOutput && side != model.Output {
				return fixpoint.Failed, fmt.Errorf("datadecl: instance-identifier leaf %q is on the rpc input side, resolution was restricted to output", node.Name)
			}
		}
	}
	return fixpoint.Resolved, nil
}

// resolveMustEval is a structural no-op once its node's position in a
// possibly-deleted subtree is settled: the must condition's own boolean
// value is the external XPath subsystem's responsibility.
func (e *Env) resolveMustEval(item unres.DataItem) (fixpoint.Outcome, error) {
	home, node, err := e.node(item)
	if err != nil {
		return fixpoint.Failed, err
	}
	if insideDeletedSubtree(home, node) {
		return fixpoint.Resolved, nil
	}
	return fixpoint.Resolved, nil
}

// resolveEmptyNPContainerPrune deletes a non-presence container once
// every one of its children is Deleted (or it has none left), cascading
// the check to its own parent so a chain of now-empty containers prunes
// in one pass.
func (e *Env) resolveEmptyNPContainerPrune(item unres.DataItem, emit func(unres.DataItem)) (fixpoint.Outcome, error) {
	if e.KeepEmptyContainers {
		return fixpoint.Resolved, nil
	}
	home, node, err := e.node(item)
	if err != nil {
		return fixpoint.Failed, err
	}
	if node.Kind != model.Container || node.Presence || node.Deleted {
		return fixpoint.Resolved, nil
	}

	for _, childID := range node.Children {
		if child := home.Node(childID); child != nil && !child.Deleted {
			return fixpoint.Resolved, nil
		}
	}

	node.Deleted = true
	if !node.Parent.IsZero() {
		emit(unres.DataItem{Kind: unres.EmptyNPContainerPrune, Module: item.Module, Node: node.Parent})
	}
	return fixpoint.Resolved, nil
}
