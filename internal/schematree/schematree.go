// Package schematree implements lookups against a partially-built schema
// tree: resolving a parsed nodeid (internal/pathparse) against the
// resolved-so-far internal/model tree, honoring YANG's shorthand-case
// rule, prefix-to-module resolution, and the absolute/descendant nodeid
// distinction.
//
// Grounding: a partially-resolved schema tree walked one step at a time,
// resolving a context-sensitive name against imported-module prefixes as
// it goes; the walker here plays the same role for YANG's simpler
// node-identifier path grammar.
package schematree

import (
	"errors"

	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
)

// ModuleSet is the minimal cross-module collaborator schematree needs: a
// way to dereference a module by its arena ID and to resolve an import
// prefix relative to a home module. The root package's ModuleLookup
// collaborator satisfies a superset of this interface.
type ModuleSet interface {
	Module(id ids.ModuleID) *model.Module
	ResolveImportPrefix(home *model.Module, prefix string) (*model.Module, bool)
}

// Errors returned by the resolve-* operations. A *pathparse.SyntaxError
// from parsing the nodeid text itself is returned unwrapped so callers can
// errors.As into it for the offending byte offset.
var (
	// ErrNotFound means the nodeid text parsed cleanly but no node in the
	// tree matched it.
	ErrNotFound = errors.New("schematree: no node matches the given nodeid")

	// ErrInnerListForbidden means the descendant path passed through a
	// list node in a context that requires the path to stay within a
	// single instance (e.g. a unique or key statement's nodeid).
	ErrInnerListForbidden = errors.New("schematree: descendant path may not pass through an inner list")

	// ErrWrongKind means a node matched by name but its kind was not
	// among the caller's accepted-nodetypes set.
	ErrWrongKind = errors.New("schematree: matched node is not an accepted node kind")

	// ErrMissingPrefix means a context that requires an explicit module
	// prefix (e.g. an absolute nodeid's first segment) did not carry one.
	ErrMissingPrefix = errors.New("schematree: nodeid segment is missing its mandatory module prefix")
)

// KindSet is a bitset of model.NodeKind values, used as the
// accepted-nodetypes argument to the resolve-* operations.
type KindSet uint32

// KindsOf builds a KindSet from a list of kinds.
func KindsOf(kinds ...model.NodeKind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

// Has reports whether k is a member of s.
func (s KindSet) Has(k model.NodeKind) bool {
	return s&(1<<uint(k)) != 0
}

// AnyKind accepts every node kind.
const AnyKind KindSet = ^KindSet(0)

// Position addresses one point in a resolved schema tree: a node within
// its owning module's arena, or the module's top level when Node is zero.
type Position struct {
	Module ids.ModuleID
	Node   ids.NodeID
}

// IsTop reports whether p addresses a module's top level rather than a
// specific node.
func (p Position) IsTop() bool {
	return p.Node.IsZero()
}

func childrenOf(tree ModuleSet, pos Position) []ids.NodeID {
	m := tree.Module(pos.Module)
	if m == nil {
		return nil
	}
	if pos.IsTop() {
		return m.Top
	}
	n := m.Node(pos.Node)
	if n == nil {
		return nil
	}
	return n.Children
}

func nodeAt(tree ModuleSet, pos Position) *model.Node {
	if pos.IsTop() {
		return nil
	}
	m := tree.Module(pos.Module)
	if m == nil {
		return nil
	}
	return m.Node(pos.Node)
}
