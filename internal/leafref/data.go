package leafref

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jacoelho/yangresolve/internal/pathparse"
)

var (
	// ErrModuleNotLoaded means an instance-identifier segment's mandatory
	// module prefix did not name a loaded module.
	ErrModuleNotLoaded = errors.New("leafref: instance-identifier segment names a module that is not loaded")

	// ErrAmbiguousInstance means an instance-identifier matched more than
	// one instance, an error regardless of the require-instance flag.
	ErrAmbiguousInstance = errors.New("leafref: instance-identifier matches more than one instance")

	// ErrInstanceNotFound means a require-instance-true resolution found
	// zero matching instances.
	ErrInstanceNotFound = errors.New("leafref: instance-identifier matches no instance")
)

// InstanceNode is the minimal view of a parsed instance-data tree that
// data-time leafref and instance-identifier resolution need: a node's own
// name, owning module, scalar value (for a leaf or leaf-list entry), its
// parent, and its same-named children (a list's several entries, or a
// leaf-list's several values, all share one name). Instance-data parsing
// itself sits outside this core; the resolver is handed a tree that
// already satisfies this interface.
type InstanceNode interface {
	Name() string
	Module() string
	Value() string
	Parent() InstanceNode
	Children(name string) []InstanceNode
}

// ModuleNamer confirms an instance-identifier segment's module prefix
// names a module the caller has actually loaded.
type ModuleNamer interface {
	HasModule(name string) bool
}

// ResolveDataLeafref re-walks pathText starting from referencer (a leaf or
// leaf-list value instance), the same segments ResolveSchemaLeafref
// already validated against the schema, collecting every candidate
// instance a path-predicate's key equality allows and reporting whether
// any of them carries the same value_str as referencer.
func ResolveDataLeafref(referencer InstanceNode, pathText string) (bool, error) {
	arg, _, err := pathparse.ParsePathArg([]byte(pathText))
	if err != nil {
		return false, err
	}

	start := referencer
	if !arg.Absolute {
		for i := 0; i < arg.ParentRefs && start != nil; i++ {
			start = start.Parent()
		}
	} else {
		start = rootOf(referencer)
	}
	if start == nil {
		return false, nil
	}

	candidates := []InstanceNode{start}
	for _, step := range arg.Steps {
		var next []InstanceNode
		for _, cand := range candidates {
			for _, child := range cand.Children(string(step.Name.Name)) {
				if matchesPathPredicates(referencer, child, step.Predicates) {
					next = append(next, child)
				}
			}
		}
		candidates = next
		if len(candidates) == 0 {
			return false, nil
		}
	}

	want := referencer.Value()
	for _, c := range candidates {
		if c.Value() == want {
			return true, nil
		}
	}
	return false, nil
}

func rootOf(n InstanceNode) InstanceNode {
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n
}

func matchesPathPredicates(referencer, candidate InstanceNode, preds []pathparse.PathPredicate) bool {
	for _, pred := range preds {
		localKey := candidate.Children(string(pred.Key.Name))
		if len(localKey) == 0 {
			return false
		}
		remoteVal, ok := resolvePathKeyExprValue(referencer, pred.KeyExpr)
		if !ok || remoteVal != localKey[0].Value() {
			return false
		}
	}
	return true
}

func resolvePathKeyExprValue(referencer InstanceNode, keyExprBytes []byte) (string, bool) {
	expr, _, err := pathparse.ParsePathKeyExpr(keyExprBytes)
	if err != nil {
		return "", false
	}
	cur := referencer
	for i := 0; i < expr.ParentRefs; i++ {
		if cur == nil {
			return "", false
		}
		cur = cur.Parent()
	}
	for _, step := range expr.Steps {
		if cur == nil {
			return "", false
		}
		children := cur.Children(string(step.Name))
		if len(children) == 0 {
			return "", false
		}
		cur = children[0]
	}
	if cur == nil {
		return "", false
	}
	return cur.Value(), true
}

// ResolveInstanceIdentifier resolves an absolute instance-identifier value
// from root, checking each segment's mandatory module prefix against
// namer (nil skips the check) and each predicate's key/self/positional
// selector. Zero matches with requireInstance false is not an error; any
// other case of zero or more than one match is.
func ResolveInstanceIdentifier(root InstanceNode, namer ModuleNamer, text string, requireInstance bool) (InstanceNode, error) {
	id, _, err := pathparse.ParseInstanceIdentifier([]byte(text))
	if err != nil {
		return nil, err
	}

	candidates := []InstanceNode{root}
	for _, step := range id.Steps {
		if namer != nil && !namer.HasModule(string(step.Name.Module)) {
			return nil, fmt.Errorf("%w: %q", ErrModuleNotLoaded, step.Name.Module)
		}
		var next []InstanceNode
		for _, cand := range candidates {
			siblings := cand.Children(string(step.Name.Name))
			next = append(next, selectByDataPredicates(siblings, step.Predicates)...)
		}
		candidates = next
		if len(candidates) == 0 {
			break
		}
	}

	switch len(candidates) {
	case 0:
		if requireInstance {
			return nil, ErrInstanceNotFound
		}
		return nil, nil
	case 1:
		return candidates[0], nil
	default:
		return nil, ErrAmbiguousInstance
	}
}

func selectByDataPredicates(siblings []InstanceNode, preds []pathparse.Predicate) []InstanceNode {
	if len(preds) == 0 {
		return siblings
	}
	var out []InstanceNode
	for i, s := range siblings {
		if matchesDataPredicates(s, i, preds) {
			out = append(out, s)
		}
	}
	return out
}

func matchesDataPredicates(node InstanceNode, index int, preds []pathparse.Predicate) bool {
	for _, p := range preds {
		switch p.SelectorKind {
		case pathparse.SelectorSelf:
			if node.Value() != string(p.Value) {
				return false
			}
		case pathparse.SelectorPosition:
			pos, err := strconv.Atoi(string(p.Position))
			if err != nil || index+1 != pos {
				return false
			}
		case pathparse.SelectorKey:
			keyed := node.Children(string(p.Key.Name))
			if len(keyed) == 0 || keyed[0].Value() != string(p.Value) {
				return false
			}
		}
	}
	return true
}
