package globaldecl

import (
	"fmt"

	"github.com/jacoelho/yangresolve/internal/fixpoint"
	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/schematree"
	"github.com/jacoelho/yangresolve/internal/unres"
)

// resolveListKeys resolves a list's KeyNames into Keys, each name
// matched against the list's own direct leaf children (a key can never
// reach through a container or another list).
func (e *Env) resolveListKeys(item unres.SchemaItem) (fixpoint.Outcome, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: list-keys item names an unknown module")
	}
	list := home.Node(item.Node)
	if list == nil || list.Kind != model.List {
		return fixpoint.Failed, fmt.Errorf("globaldecl: list-keys item does not name a list")
	}

	keys := make([]ids.NodeID, 0, len(list.KeyNames))
	for _, name := range list.KeyNames {
		var found *model.Node
		for _, childID := range list.Children {
			child := home.Node(childID)
			if child != nil && child.Kind == model.Leaf && child.Name == name {
				found = child
				break
			}
		}
		if found == nil {
			return e.deferOrFail(fmt.Errorf("globaldecl: list %q key %q is not a direct leaf child", list.Name, name))
		}
		keys = append(keys, found.ID)
	}
	list.Keys = keys
	return fixpoint.Resolved, nil
}

// resolveListUnique validates one unique statement's path set
// (list.Unique[item.Index]): every path must resolve to a leaf reachable
// without crossing an inner list, and a config-true list's unique leaves
// must themselves be config true.
func (e *Env) resolveListUnique(item unres.SchemaItem) (fixpoint.Outcome, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: list-unique item names an unknown module")
	}
	list := home.Node(item.Node)
	if list == nil || item.Index < 0 || item.Index >= len(list.Unique) {
		return fixpoint.Failed, fmt.Errorf("globaldecl: list-unique item names no unique statement")
	}

	for _, p := range list.Unique[item.Index] {
		target, err := schematree.ResolveDescendantNodeID(e.Tree, list, []byte(p), schematree.KindsOf(model.Leaf), schematree.DescendantOptions{ForbidInnerList: true})
		if err != nil {
			if isNotFound(err) {
				return e.deferOrFail(fmt.Errorf("globaldecl: list %q unique path %q: %w", list.Name, p, err))
			}
			return fixpoint.Failed, err
		}
		if list.Config && !target.Config {
			return fixpoint.Failed, fmt.Errorf("globaldecl: list %q unique path %q references a config false leaf under a config true list", list.Name, p)
		}
	}
	return fixpoint.Resolved, nil
}
