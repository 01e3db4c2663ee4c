package globaldecl

import (
	"fmt"

	"github.com/jacoelho/yangresolve/internal/expand"
	"github.com/jacoelho/yangresolve/internal/fixpoint"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/unres"
)

// resolveAugmentTarget locates aug's target (module-level, addressed
// directly via item.Augment, or uses-level, addressed via item.Node's
// UsesAugments[item.Index]) and splices its children onto it, then
// schedules XPATH_REGISTER for every freshly spliced node.
func (e *Env) resolveAugmentTarget(item unres.SchemaItem, emit func(unres.SchemaItem)) (fixpoint.Outcome, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: augment-target item names an unknown module")
	}

	var aug *model.Augment
	var usesStart *model.Node
	if !item.Augment.IsZero() {
		aug = home.Augment(item.Augment)
		if aug == nil {
			return fixpoint.Failed, fmt.Errorf("globaldecl: augment-target item names no augment")
		}
	} else {
		usesNode := home.Node(item.Node)
		if usesNode == nil || item.Index < 0 || item.Index >= len(usesNode.UsesAugments) {
			return fixpoint.Failed, fmt.Errorf("globaldecl: augment-target item names no uses-level augment")
		}
		aug = &usesNode.UsesAugments[item.Index]
		usesStart = usesNode
	}

	targetRef, spliced, err := expand.ApplyAugment(e.Tree, home, usesStart, aug)
	if err != nil {
		if isNotFound(err) {
			return e.deferOrFail(fmt.Errorf("globaldecl: augment target %q: %w", aug.TargetNodeID, err))
		}
		return fixpoint.Failed, err
	}

	for _, childID := range spliced {
		emit(unres.SchemaItem{Kind: unres.XPathRegister, Module: targetRef.Module, Node: childID})
	}
	return fixpoint.Resolved, nil
}
