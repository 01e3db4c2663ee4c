package model

import "github.com/jacoelho/yangresolve/internal/ids"

// NodeKind tags the variant a Node carries.
type NodeKind uint8

const (
	Container NodeKind = iota
	Leaf
	LeafList
	List
	Choice
	Case
	AnyXML
	AnyData
	Uses
	AugmentNode
	GroupingNode
	RPC
	Action
	Input
	Output
	Notification
)

// Status is a node's or type's current/deprecated/obsolete lifecycle state.
type Status uint8

const (
	Current Status = iota
	Deprecated
	Obsolete
)

// WhenState is the tri-state result of evaluating a node's when condition.
type WhenState uint8

const (
	WhenPending WhenState = iota
	WhenTrue
	WhenFalse
)

// Node is a schema (or, at data resolution time, data) tree node. Common
// fields are always populated; kind-specific fields are meaningful only
// for the NodeKind(s) noted on them.
type Node struct {
	ID     ids.NodeID
	Module ids.ModuleID
	Kind   NodeKind
	Name   string

	Parent   ids.NodeID
	Children []ids.NodeID

	Config    bool
	ConfigSet bool // true once config was explicitly set (by statement or refine)
	Status    Status
	Mandatory bool

	When      string
	WhenState WhenState

	Must      []MustCondition
	IfFeature []string

	// Leaf / LeafList
	Type    ids.TypeID
	Units   string
	Default []string // single entry for Leaf, multiple allowed for LeafList (1.1)

	// List
	Keys         []ids.NodeID // resolved key leaves, in declared order
	KeyNames     []string     // as written, before resolution
	Unique       [][]string   // each entry is a schema-nodeid path set
	MinElements  uint64
	MaxElements  uint64 // 0 with MaxUnbounded meaning "unbounded"
	MaxUnbounded bool

	// Choice
	DefaultCaseName string // lexical, as written, until CHOICE_DEFAULT resolves it
	DefaultCase     ids.NodeID

	// Case (implicit/shorthand wrapper)
	Shorthand bool

	// Uses
	GroupingName string // lexical grouping name, as written, until UsesGrouping resolves
	UsesGrouping ids.GroupingID
	Refines      []Refine
	UsesAugments []Augment
	UsesPending  bool // this uses is blocked on its target grouping's pending-uses counter

	// Container
	Presence bool

	// AnyXML / AnyData
	// (no kind-specific fields beyond common ones)

	// Data resolution (instance tree) bookkeeping
	Deleted bool
}

// MustCondition is a single must (or when, reusing the same shape)
// constraint with its optional error metadata.
type MustCondition struct {
	XPath        string
	ErrorMessage string
	ErrorAppTag  string
}

// IsZero reports whether n is an unpopulated Node.
func (n *Node) IsZero() bool {
	return n == nil || (n.ID.IsZero() && n.Name == "")
}

// AcceptsDataDefinitionChildren reports whether nodes of this kind may own
// plain data-definition children (as opposed to only case children, as a
// choice does).
func (k NodeKind) AcceptsDataDefinitionChildren() bool {
	switch k {
	case Container, List, Notification, Input, Output, Case, RPC, Action:
		return true
	default:
		return false
	}
}

// AcceptsCaseChildren reports whether nodes of this kind may only own case
// (or shorthand-case) children.
func (k NodeKind) AcceptsCaseChildren() bool {
	return k == Choice
}
