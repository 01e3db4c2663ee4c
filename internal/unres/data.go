package unres

import "github.com/jacoelho/yangresolve/internal/ids"

// DataKind tags a data-time unresolved item.
type DataKind uint8

const (
	Leafref DataKind = iota
	InstanceID
	WhenEval
	MustEval
	EmptyNPContainerPrune
)

// Phase1 reports whether kind runs in the data worklist's first phase
// (WHEN_EVAL only — it may mark subtrees for auto-deletion, which in turn
// resolves other items anchored inside them).
func (k DataKind) Phase1() bool {
	return k == WhenEval
}

// DataItem is one data-time unresolved-item record.
type DataItem struct {
	Kind   DataKind
	Module ids.ModuleID
	Node   ids.NodeID
	State  State
}

// IsZero reports whether i is an unpopulated item.
func (i DataItem) IsZero() bool {
	return i.Module.IsZero() && i.Node.IsZero()
}
