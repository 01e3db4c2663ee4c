package schematree

import "github.com/jacoelho/yangresolve/internal/model"

// ResolveChoiceDefault resolves a choice's default argument: a bare
// identifier naming one of the choice's own children, be it an explicit
// case or a shorthand data node standing in for one.
func ResolveChoiceDefault(tree ModuleSet, text string, choice *model.Node) (*model.Node, error) {
	if choice.Kind != model.Choice {
		return nil, ErrWrongKind
	}
	owner := tree.Module(choice.Module)
	if owner == nil {
		return nil, ErrNotFound
	}
	for _, childID := range choice.Children {
		child := owner.Node(childID)
		if child != nil && child.Name == text {
			return child, nil
		}
	}
	return nil, ErrNotFound
}
