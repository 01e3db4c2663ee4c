// Package model holds the resolved schema data model: modules, the tagged
// node/type variants, identities, groupings and their cross-references,
// laid out as per-module arenas indexed by internal/ids rather than as a
// pointer graph, so that a cross-module reference is always an explicit
// (module, index) pair instead of a raw pointer into another arena.
package model

import "github.com/jacoelho/yangresolve/internal/ids"

// Module is a named, versioned namespace: the owner arena for every node,
// type, identity and grouping it defines.
type Module struct {
	ID        ids.ModuleID
	Name      string
	Revision  string
	Prefix    string
	Namespace string

	Imports    []Import
	Submodules []string

	Nodes      []Node
	Types      []Type
	Identities []Identity
	Groupings  []Grouping
	Features   []Feature
	Augments   []Augment
	Deviations []Deviation

	Top []ids.NodeID // ordered top-level node IDs

	Deviated    bool
	Implemented bool
}

// Import records a module import and the prefix it is bound to in the
// importing module.
type Import struct {
	Module   string
	Prefix   string
	Revision string
}

// Feature is an if-feature target.
type Feature struct {
	Name      string
	IfFeature []string
	Enabled   bool
}

// Node returns the node with the given ID, or nil if out of range.
func (m *Module) Node(id ids.NodeID) *Node {
	if int(id) <= 0 || int(id) > len(m.Nodes) {
		return nil
	}
	return &m.Nodes[id-1]
}

// Type returns the type with the given ID, or nil if out of range.
func (m *Module) Type(id ids.TypeID) *Type {
	if int(id) <= 0 || int(id) > len(m.Types) {
		return nil
	}
	return &m.Types[id-1]
}

// Identity returns the identity with the given ID, or nil if out of range.
func (m *Module) Identity(id ids.IdentityID) *Identity {
	if int(id) <= 0 || int(id) > len(m.Identities) {
		return nil
	}
	return &m.Identities[id-1]
}

// Grouping returns the grouping with the given ID, or nil if out of range.
func (m *Module) Grouping(id ids.GroupingID) *Grouping {
	if int(id) <= 0 || int(id) > len(m.Groupings) {
		return nil
	}
	return &m.Groupings[id-1]
}

// AppendNode appends n to m's node arena and returns its freshly assigned
// ID, the way a grouping expansion or augment splice grows a module's tree
// after its initial parse.
func (m *Module) AppendNode(n Node) ids.NodeID {
	n.ID = ids.NodeID(len(m.Nodes) + 1)
	m.Nodes = append(m.Nodes, n)
	return ids.NodeID(len(m.Nodes))
}

// AppendType appends t to m's type arena and returns its freshly assigned
// ID.
func (m *Module) AppendType(t Type) ids.TypeID {
	t.ID = ids.TypeID(len(m.Types) + 1)
	m.Types = append(m.Types, t)
	return ids.TypeID(len(m.Types))
}

// TypeByName looks up a typedef declared directly in m by name (module-
// local typedef scope only; a prefixed base-type name resolves the
// owning module first and then calls TypeByName on it).
func (m *Module) TypeByName(name string) (ids.TypeID, bool) {
	for i := range m.Types {
		if m.Types[i].Name == name {
			return ids.TypeID(i + 1), true
		}
	}
	return 0, false
}

// IdentityByName looks up an identity declared directly in m by name.
func (m *Module) IdentityByName(name string) (ids.IdentityID, bool) {
	for i := range m.Identities {
		if m.Identities[i].Name == name {
			return ids.IdentityID(i + 1), true
		}
	}
	return 0, false
}

// GroupingByName looks up a top-level grouping declared directly in m by
// name (a nested grouping's lexical scope search is
// schematree.ResolveUsesGrouping's job, not this accessor's).
func (m *Module) GroupingByName(name string) (ids.GroupingID, bool) {
	for i := range m.Groupings {
		if m.Groupings[i].Name == name && m.Groupings[i].DefinedIn.IsZero() {
			return ids.GroupingID(i + 1), true
		}
	}
	return 0, false
}

// Augment returns the top-level augment with the given ID, or nil if out
// of range.
func (m *Module) Augment(id ids.AugmentID) *Augment {
	if int(id) <= 0 || int(id) > len(m.Augments) {
		return nil
	}
	return &m.Augments[id-1]
}

// FeatureByName looks up a feature declared directly in m by name.
func (m *Module) FeatureByName(name string) (*Feature, bool) {
	for i := range m.Features {
		if m.Features[i].Name == name {
			return &m.Features[i], true
		}
	}
	return nil, false
}
