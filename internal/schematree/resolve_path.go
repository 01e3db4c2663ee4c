package schematree

import (
	"fmt"

	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/pathparse"
)

// DescendantOptions tunes ResolveDescendantNodeID's traversal.
type DescendantOptions struct {
	// ForbidInnerList rejects any path that passes through a list node
	// before its final segment, the way a unique or key statement's
	// nodeid must stay within a single list instance.
	ForbidInnerList bool
}

// ResolveAbsoluteNodeID resolves a "/"-rooted schema-nodeid against the
// top level of whichever module its first segment's prefix names.
func ResolveAbsoluteNodeID(tree ModuleSet, text []byte, home *model.Module, accept KindSet) (*model.Node, error) {
	segs, absolute, _, err := pathparse.ParseSchemaNodeID(text)
	if err != nil {
		return nil, err
	}
	if !absolute {
		return nil, fmt.Errorf("schematree: absolute nodeid must start with \"/\"")
	}
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
	return walk(tree, home, Position{Module: root.ID}, segs, accept, DescendantOptions{})
}

// ResolveDescendantNodeID resolves a "./"-rooted or bare node-identifier
// chain against start's children.
func ResolveDescendantNodeID(tree ModuleSet, start *model.Node, text []byte, accept KindSet, opts DescendantOptions) (*model.Node, error) {
	segs, absolute, _, err := pathparse.ParseSchemaNodeID(text)
	if err != nil {
		return nil, err
	}
	if absolute {
		return nil, fmt.Errorf("schematree: descendant nodeid must not start with \"/\"")
	}
	home := tree.Module(start.Module)
	if home == nil {
		return nil, ErrNotFound
	}
	return walk(tree, home, Position{Module: start.Module, Node: start.ID}, segs, accept, opts)
}

// walk drives both absolute and descendant resolution: starting at pos,
// consume segs one at a time, resolving each segment's optional module
// prefix against home and matching by (module, name) among the current
// position's children.
//
// YANG's shorthand-case rule needs no extra bookkeeping here: this tree
// never materializes a synthetic case wrapper node, so a shorthand data
// node sitting directly under a choice is simply one more named child,
// matched and descended into exactly like an explicit case would be. The
// "does not descend again" guarantee falls out for free, since a
// shorthand leaf or leaf-list carries no children to descend into.
func walk(tree ModuleSet, home *model.Module, pos Position, segs []pathparse.NodeIdentifier, accept KindSet, opts DescendantOptions) (*model.Node, error) {
	cur := pos
	for i, seg := range segs {
		targetModule := home
		if len(seg.Module) > 0 {
			m, ok := tree.ResolveImportPrefix(home, string(seg.Module))
			if !ok {
				return nil, ErrMissingPrefix
			}
			targetModule = m
		}

		owner := tree.Module(cur.Module)
		if owner == nil {
			return nil, ErrNotFound
		}

		var matched *model.Node
		for _, childID := range childrenOf(tree, cur) {
			child := owner.Node(childID)
			if child == nil || child.Name != string(seg.Name) || child.Module != targetModule.ID {
				continue
			}
			matched = child
			break
		}
		if matched == nil {
			return nil, ErrNotFound
		}
		if opts.ForbidInnerList && matched.Kind == model.List && i != len(segs)-1 {
			return nil, ErrInnerListForbidden
		}

		cur = Position{Module: matched.Module, Node: matched.ID}
		if i == len(segs)-1 {
			if accept != AnyKind && !accept.Has(matched.Kind) {
				return nil, ErrWrongKind
			}
			return matched, nil
		}
	}
	return nil, ErrNotFound
}
