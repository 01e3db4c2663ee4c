package model

import "github.com/jacoelho/yangresolve/internal/ids"

// Augment is a reference to a target schema node plus a subtree to splice
// onto it: absolute nodeid for a top-level augment, descendant nodeid for
// a uses-level augment.
type Augment struct {
	TargetNodeID string
	Absolute     bool

	Children []ids.NodeID // children to splice, built under the augment before resolution
	When     string

	DefinedInModule ids.ModuleID // the module the augment statement was written in
	Target          ids.NodeID   // resolved, zero until AUGMENT_TARGET resolves
}

// Deviation is a deviation declaration: a target nodeid plus its ordered
// deviate records.
type Deviation struct {
	TargetNodeID string
	Target       ids.NodeID

	Deviates []Deviate
}

// DeviateMode is one of the four deviate statement kinds.
type DeviateMode uint8

const (
	NotSupported DeviateMode = iota
	DeviateAdd
	DeviateDelete
	DeviateReplace
)

// Deviate is one deviate record within a deviation. Only the fields
// relevant to Mode are meaningful; nil/zero means "not specified" so that
// add/delete/replace can distinguish "unset" from "explicitly cleared".
type Deviate struct {
	Mode DeviateMode

	Type         *ids.TypeID
	Units        *string
	Default      []string
	Config       *bool
	Mandatory    *bool
	MinElements  *uint64
	MaxElements  *uint64
	MaxUnbounded *bool
	Must         []MustCondition
	Unique       [][]string
}
