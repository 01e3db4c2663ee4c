// Package leafref implements YANG's two path-based cross-reference kinds:
// a "path" (leaf)ref statement resolved once against the schema tree
// (schema.go) and the same path re-walked against actual instance data,
// plus a bare instance-identifier value, once the data tree's final shape
// is known (data.go).
//
// Grounded on internal/schematree's walk engine (reused one segment at a
// time via WalkSteps) and original_source/src/resolve.c's
// resolve_path_arg_schema_nodeid path-predicate handling: a path-predicate
// couples a remote list's key leaf to a path-key-expr rooted at current(),
// which must be independently resolvable back to a leaf.
package leafref

import (
	"errors"
	"fmt"

	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/pathparse"
	"github.com/jacoelho/yangresolve/internal/schematree"
)

var (
	// ErrStatusIncompatible means a leafref's status is more stable than
	// its target's (e.g. a current leaf referencing a deprecated one).
	ErrStatusIncompatible = errors.New("leafref: referencing node's status is more stable than its target")

	// ErrPredicateKey means a path-predicate's key did not name one of
	// the target list's own key leaves, or its path-key-expr could not
	// be resolved back to a leaf.
	ErrPredicateKey = errors.New("leafref: path-predicate key is invalid")

	// ErrPredicateOnNonList means a path-predicate was attached to a step
	// that did not resolve to a list.
	ErrPredicateOnNonList = errors.New("leafref: path-predicate on a step that is not a list")
)

// ResolveSchemaLeafref resolves leaf's path-arg pathText against the
// schema tree, starting from leaf's own lexical position for a relative
// path or from the path's own prefixed root for an absolute one, checking
// every path-predicate's local key and path-key-expr along the way and
// the final status-compatibility rule once the target is found.
func ResolveSchemaLeafref(tree schematree.ModuleSet, leaf *model.Node, pathText string) (*model.Node, error) {
	arg, _, err := pathparse.ParsePathArg([]byte(pathText))
	if err != nil {
		return nil, err
	}

	home := tree.Module(leaf.Module)
	pos, err := startPosition(tree, home, leaf, arg)
	if err != nil {
		return nil, err
	}

	var target *model.Node
	for i, step := range arg.Steps {
		accept := schematree.AnyKind
		if i == len(arg.Steps)-1 {
			accept = schematree.KindsOf(model.Leaf, model.LeafList)
		}
		next, err := schematree.WalkSteps(tree, home, pos, []pathparse.NodeIdentifier{step.Name}, accept, schematree.DescendantOptions{})
		if err != nil {
			return nil, err
		}
		if len(step.Predicates) > 0 {
			if next.Kind != model.List {
				return nil, fmt.Errorf("%w: %q", ErrPredicateOnNonList, next.Name)
			}
			for _, pred := range step.Predicates {
				if err := checkPathPredicate(tree, leaf, next, pred); err != nil {
					return nil, err
				}
			}
		}
		pos = schematree.Position{Module: next.Module, Node: next.ID}
		target = next
	}
	if target == nil {
		return nil, schematree.ErrNotFound
	}

	if !statusCompatible(leaf.Status, target.Status) {
		return nil, ErrStatusIncompatible
	}
	return target, nil
}

// startPosition resolves a path-arg's starting point: the import-resolved
// root module's top level for an absolute path, or leaf's own ancestor
// ParentRefs levels up for a relative one (leaf itself counts as the
// zeroth level, matching XPath's "current node" for a path-arg's ".."
// steps).
func startPosition(tree schematree.ModuleSet, home *model.Module, leaf *model.Node, arg pathparse.PathArg) (schematree.Position, error) {
	if arg.Absolute {
		if len(arg.Steps) == 0 {
			return schematree.Position{}, schematree.ErrNotFound
		}
		first := arg.Steps[0].Name
		if len(first.Module) == 0 {
			return schematree.Position{}, schematree.ErrMissingPrefix
		}
		root, ok := tree.ResolveImportPrefix(home, string(first.Module))
		if !ok {
			return schematree.Position{}, schematree.ErrMissingPrefix
		}
		return schematree.Position{Module: root.ID}, nil
	}

	cur := ancestorUp(tree, leaf.Module, leaf.ID, arg.ParentRefs)
	if cur == nil {
		return schematree.Position{Module: leaf.Module}, nil
	}
	return schematree.Position{Module: cur.Module, Node: cur.ID}, nil
}

// ancestorUp walks up count Parent links starting at (module, start),
// returning nil once it would step above the module's top level.
func ancestorUp(tree schematree.ModuleSet, module ids.ModuleID, start ids.NodeID, count int) *model.Node {
	cur := tree.Module(module).Node(start)
	for i := 0; i < count; i++ {
		if cur == nil || cur.Parent.IsZero() {
			return nil
		}
		cur = tree.Module(cur.Module).Node(cur.Parent)
	}
	return cur
}

func checkPathPredicate(tree schematree.ModuleSet, leaf *model.Node, list *model.Node, pred pathparse.PathPredicate) error {
	listModule := tree.Module(list.Module)
	var keyFound bool
	for _, keyID := range list.Keys {
		if listModule.Node(keyID).Name == string(pred.Key.Name) {
			keyFound = true
			break
		}
	}
	if !keyFound {
		return fmt.Errorf("%w: %q is not a key of %q", ErrPredicateKey, pred.Key.Name, list.Name)
	}

	expr, _, err := pathparse.ParsePathKeyExpr(pred.KeyExpr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPredicateKey, err)
	}

	home := tree.Module(leaf.Module)
	pos := schematree.Position{Module: leaf.Module}
	if cur := ancestorUp(tree, leaf.Module, leaf.ID, expr.ParentRefs); cur != nil {
		pos = schematree.Position{Module: cur.Module, Node: cur.ID}
	}

	var keyTarget *model.Node
	for i, step := range expr.Steps {
		accept := schematree.AnyKind
		if i == len(expr.Steps)-1 {
			accept = schematree.KindsOf(model.Leaf)
		}
		next, err := schematree.WalkSteps(tree, home, pos, []pathparse.NodeIdentifier{step}, accept, schematree.DescendantOptions{})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPredicateKey, err)
		}
		pos = schematree.Position{Module: next.Module, Node: next.ID}
		keyTarget = next
	}
	if keyTarget == nil {
		return ErrPredicateKey
	}
	return nil
}

// statusCompatible reports whether a node with status referencer may
// depend on a node with status target: current may depend only on
// current, deprecated may depend on current or deprecated, obsolete may
// depend on anything.
func statusCompatible(referencer, target model.Status) bool {
	return referencer >= target
}
