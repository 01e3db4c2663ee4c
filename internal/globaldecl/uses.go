package globaldecl

import (
	"fmt"

	"github.com/jacoelho/yangresolve/internal/expand"
	"github.com/jacoelho/yangresolve/internal/fixpoint"
	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/schematree"
	"github.com/jacoelho/yangresolve/internal/unres"
)

// resolveUsesExpand looks up usesNode's target grouping by lexical
// scope, waits for the grouping's own PendingUses gate to clear (so a
// grouping whose body itself contains an unexpanded uses is never used
// as a template before that inner uses has fully expanded — otherwise a
// refine on the outer uses site could target a descendant the inner
// uses had not yet produced), splices a fresh copy of the grouping's
// template subtree onto usesNode, applies every refine, and schedules
// any augments carried on the uses statement itself.
func (e *Env) resolveUsesExpand(item unres.SchemaItem, emit func(unres.SchemaItem)) (fixpoint.Outcome, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: uses-expand item names an unknown module")
	}
	usesNode := home.Node(item.Node)
	if usesNode == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: uses-expand item names no node")
	}

	g, err := schematree.ResolveUsesGrouping(e.Tree, []byte(usesNode.GroupingName), usesNode)
	if err != nil {
		if isNotFound(err) {
			return fixpoint.Deferred, nil
		}
		return fixpoint.Failed, err
	}
	if g.PendingUses > 0 {
		return fixpoint.Deferred, nil
	}

	srcModule := e.Tree.Module(g.Module)
	if srcModule == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: grouping %q names an unknown owning module", g.Name)
	}

	top, err := expand.ExpandUses(srcModule, g, home, usesNode, func(newNodeID ids.NodeID) {
		emit(unres.SchemaItem{Kind: unres.UsesExpand, Module: home.ID, Node: newNodeID})
	})
	if err != nil {
		return fixpoint.Failed, err
	}

	usesNode.UsesGrouping = g.ID
	usesNode.GroupingName = ""
	usesNode.Children = append(usesNode.Children, top...)

	for i := range usesNode.UsesAugments {
		emit(unres.SchemaItem{Kind: unres.AugmentTarget, Module: home.ID, Node: usesNode.ID, Index: i})
	}
	for _, childID := range top {
		emit(unres.SchemaItem{Kind: unres.XPathRegister, Module: home.ID, Node: childID})
	}

	if owner, ok := groupingOwnerOf(home, usesNode.ID); ok {
		grouping := home.Grouping(owner)
		grouping.PendingUses--
	}

	return fixpoint.Resolved, nil
}

// groupingOwnerOf reports the grouping whose own template body
// lexically contains nodeID, if any: nodeID belongs to a grouping's
// definition (rather than to the real, instantiated tree) exactly when
// walking Parent links up to the root lands on one of that grouping's
// own top-level Children entries.
func groupingOwnerOf(home *model.Module, nodeID ids.NodeID) (ids.GroupingID, bool) {
	cur := nodeID
	for {
		node := home.Node(cur)
		if node == nil {
			return 0, false
		}
		if node.Parent.IsZero() {
			for i := range home.Groupings {
				for _, rootID := range home.Groupings[i].Children {
					if rootID == cur {
						return ids.GroupingID(i + 1), true
					}
				}
			}
			return 0, false
		}
		cur = node.Parent
	}
}
