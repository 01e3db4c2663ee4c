package schematree

import (
	"fmt"

	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/pathparse"
)

// JSONModuleSet extends ModuleSet with the by-name module lookup the JSON
// encoding of a schema nodeid needs: JSON segments are prefixed by a
// module's own name, not an import prefix local to some other module.
type JSONModuleSet interface {
	ModuleSet
	ModuleByName(name string) (*model.Module, bool)
}

// RPCFlavor selects which subtree of an rpc or action node a JSON schema
// nodeid is resolved against.
type RPCFlavor uint8

const (
	RPCFlavorNone RPCFlavor = iota
	RPCFlavorInput
	RPCFlavorOutput
)

// ResolveJSONSchemaNodeID resolves a JSON-encoded schema nodeid (every
// segment carrying a mandatory module-name prefix) against start's
// children, entering start's input or output subtree first when rpc
// names one.
func ResolveJSONSchemaNodeID(tree JSONModuleSet, text []byte, start *model.Node, rpc RPCFlavor) (*model.Node, error) {
	id, _, err := pathparse.ParseInstanceIdentifier(text)
	if err != nil {
		return nil, err
	}
	if len(id.Steps) == 0 {
		return nil, ErrNotFound
	}

	owner := tree.Module(start.Module)
	if owner == nil {
		return nil, ErrNotFound
	}
	cur := Position{Module: start.Module, Node: start.ID}

	if rpc != RPCFlavorNone {
		want := model.Input
		if rpc == RPCFlavorOutput {
			want = model.Output
		}
		found := false
		for _, childID := range childrenOf(tree, cur) {
			child := owner.Node(childID)
			if child != nil && child.Kind == want {
				cur = Position{Module: child.Module, Node: child.ID}
				found = true
				break
			}
		}
		if !found {
			return nil, ErrNotFound
		}
	}

	for i, step := range id.Steps {
		if len(step.Name.Module) == 0 {
			return nil, ErrMissingPrefix
		}
		targetModule, ok := tree.ModuleByName(string(step.Name.Module))
		if !ok {
			return nil, ErrMissingPrefix
		}

		scanOwner := tree.Module(cur.Module)
		if scanOwner == nil {
			return nil, ErrNotFound
		}
		var matched *model.Node
		for _, childID := range childrenOf(tree, cur) {
			child := scanOwner.Node(childID)
			if child == nil || child.Name != string(step.Name.Name) || child.Module != targetModule.ID {
				continue
			}
			matched = child
			break
		}
		if matched == nil {
			return nil, ErrNotFound
		}
		cur = Position{Module: matched.Module, Node: matched.ID}
		if i == len(id.Steps)-1 {
			return matched, nil
		}
	}
	return nil, fmt.Errorf("schematree: %w", ErrNotFound)
}
