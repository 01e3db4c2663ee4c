package schematree

import (
	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/pathparse"
)

// ResolveUsesGrouping resolves a uses statement's grouping reference by
// lexical scoping: the search walks outward from start through each
// enclosing ancestor's locally-defined groupings, then through the home
// module's top-level groupings, then (if the module carries a
// belongs-to) its target module's top-level groupings; the first name
// match wins.
func ResolveUsesGrouping(tree ModuleSet, text []byte, start *model.Node) (*model.Grouping, error) {
	name, _, err := pathparse.ParseNodeIdentifier(text)
	if err != nil {
		return nil, err
	}
	if len(name.Module) > 0 {
		// A prefixed grouping name always resolves against a specific
		// module's top-level groupings directly, bypassing lexical scope.
		home := tree.Module(start.Module)
		target, ok := tree.ResolveImportPrefix(home, string(name.Module))
		if !ok {
			return nil, ErrMissingPrefix
		}
		return findGroupingByScope(target, string(name.Name), ids.NodeID(0))
	}

	module := tree.Module(start.Module)
	if module == nil {
		return nil, ErrNotFound
	}

	for n := start; n != nil; {
		if g, err := findGroupingByScope(module, string(name.Name), n.ID); err == nil {
			return g, nil
		}
		if n.Parent.IsZero() {
			break
		}
		n = module.Node(n.Parent)
	}
	return findGroupingByScope(module, string(name.Name), ids.NodeID(0))
}

func findGroupingByScope(module *model.Module, name string, scope ids.NodeID) (*model.Grouping, error) {
	for i := range module.Groupings {
		g := &module.Groupings[i]
		if g.Name == name && g.DefinedIn == scope {
			return g, nil
		}
	}
	return nil, ErrNotFound
}
