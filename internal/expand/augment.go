package expand

import (
	"fmt"

	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/schematree"
)

// ApplyAugment resolves aug's target (absolute nodeid against home for a
// top-level augment, descendant nodeid against usesStart for a uses-level
// augment) and splices a copy of aug.Children onto it, preserving
// declaration order and propagating the target's config state to every
// spliced child that does not carry its own explicit config. aug.Target
// is set to the resolved target's ID once found, mirroring how
// ApplyDeviation records dev.Target, and the spliced copies' fresh IDs
// (in the target's own module) are returned so a caller can enqueue
// further per-node work, such as XPath registration, against them.
//
// aug.Children were built in the augmenting module's own arena while its
// statements were parsed; they are cloned into the target's arena here
// rather than reparented in place, the same way ExpandUses re-homes a
// grouping's template subtree — a splice across module boundaries would
// otherwise leave the target's Children list holding indices into a
// different module's arena.
//
// Grounded on original_source/src/resolve.c's resolve_augment_schema_nodeid:
// an augment's children are appended after the target's existing
// children, never interleaved, and a child that inherits config from an
// augment whose target is config false must itself become config false
// regardless of what it declared.
func ApplyAugment(tree ModuleSet, home *model.Module, usesStart *model.Node, aug *model.Augment) (ids.Ref[ids.NodeID], []ids.NodeID, error) {
	var target *model.Node
	var err error
	if aug.Absolute {
		target, err = schematree.ResolveAugmentNodeID(tree, []byte(aug.TargetNodeID), nil, home)
	} else {
		target, err = schematree.ResolveAugmentNodeID(tree, []byte(aug.TargetNodeID), usesStart, nil)
	}
	if err != nil {
		return ids.Ref[ids.NodeID]{}, nil, err
	}

	if err := checkAugmentMandatory(tree, target, aug); err != nil {
		return ids.Ref[ids.NodeID]{}, nil, err
	}

	declaringModule := tree.Module(aug.DefinedInModule)
	if declaringModule == nil {
		declaringModule = home
	}
	targetModule := tree.Module(target.Module)

	spliced := cloneSubtrees(declaringModule, targetModule, aug.Children, target.ID, nil)
	target = targetModule.Node(target.ID) // cloning may have grown the arena
	if !target.Config {
		for _, childID := range spliced {
			propagateConfigFalse(targetModule, childID)
		}
	}
	target.Children = append(target.Children, spliced...)
	aug.Target = target.ID
	return ids.Ref[ids.NodeID]{Module: target.Module, Index: target.ID}, spliced, nil
}

// checkAugmentMandatory enforces the rule that an augment reaching into a
// different module than the one declaring it may not introduce a
// mandatory node: a module that does not itself define a mandatory node
// must never be forced to instantiate one just because some other module
// augments it.
func checkAugmentMandatory(tree ModuleSet, target *model.Node, aug *model.Augment) error {
	crossModule := !aug.DefinedInModule.IsZero() && aug.DefinedInModule != target.Module
	if !crossModule {
		return nil
	}
	declaringModule := tree.Module(aug.DefinedInModule)
	for _, childID := range aug.Children {
		child := declaringModule.Node(childID)
		if nodeOrDescendantMandatory(declaringModule, child) {
			return fmt.Errorf("%w: %s", ErrAugmentMandatory, child.Name)
		}
	}
	return nil
}

func nodeOrDescendantMandatory(m *model.Module, n *model.Node) bool {
	if n.Mandatory {
		return true
	}
	if n.Kind == model.List || n.Kind == model.LeafList {
		if n.MinElements > 0 {
			return true
		}
	}
	if n.Kind != model.Container || !n.Presence {
		for _, childID := range n.Children {
			if nodeOrDescendantMandatory(m, m.Node(childID)) {
				return true
			}
		}
	}
	return false
}
