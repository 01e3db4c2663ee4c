package model

import "github.com/jacoelho/yangresolve/internal/ids"

// Grouping owns a template schema subtree referenced by zero or more uses
// sites. PendingUses must reach zero before any uses targeting it may
// expand (see internal/globaldecl's grouping gate).
type Grouping struct {
	ID       ids.GroupingID
	Module   ids.ModuleID
	Name     string
	Children []ids.NodeID

	// DefinedIn is the node this grouping was declared inside (zero
	// meaning module top level), fixing its lexical scope for
	// resolve-uses-grouping's outward-walking name lookup.
	DefinedIn ids.NodeID

	PendingUses int
	Status      Status
}

// Refine is one refinement record attached to a uses site: a target
// descendant nodeid plus the attribute overrides to apply once located.
type Refine struct {
	TargetNodeID string // lexical descendant nodeid, resolved against the uses site's children

	Description  *string
	Reference    *string
	Config       *bool
	Mandatory    *bool
	Presence     *bool
	MinElements  *uint64
	MaxElements  *uint64
	MaxUnbounded *bool
	Must         []MustCondition
	Default      []string
	IfFeature    []string
}
