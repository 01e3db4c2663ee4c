package schematree

import (
	"fmt"

	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/pathparse"
)

// ResolveAugmentNodeID resolves an augment's target-node argument. Exactly
// one of start or home must be given: start for a uses-internal relative
// augment (descendant-schema-nodeid), home for a module-level augment
// (absolute-schema-nodeid).
func ResolveAugmentNodeID(tree ModuleSet, text []byte, start *model.Node, home *model.Module) (*model.Node, error) {
	segs, absolute, _, err := pathparse.ParseSchemaNodeID(text)
	if err != nil {
		return nil, err
	}
	switch {
	case absolute && home == nil:
		return nil, fmt.Errorf("schematree: absolute augment target requires a module context")
	case !absolute && start == nil:
		return nil, fmt.Errorf("schematree: relative augment target requires a start node")
	}

	if absolute {
		if len(segs) == 0 {
			return nil, ErrNotFound
		}
		if len(segs[0].Module) == 0 {
			return nil, ErrMissingPrefix
		}
		root, ok := tree.ResolveImportPrefix(home, string(segs[0].Module))
		if !ok {
			return nil, ErrMissingPrefix
		}
		return walk(tree, home, Position{Module: root.ID}, segs, AnyKind, DescendantOptions{})
	}

	owningModule := tree.Module(start.Module)
	if owningModule == nil {
		return nil, ErrNotFound
	}
	return walk(tree, owningModule, Position{Module: start.Module, Node: start.ID}, segs, AnyKind, DescendantOptions{})
}
