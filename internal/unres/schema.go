// Package unres holds the two discriminated unions of unresolved-item
// records the fixpoint driver works through: schema-time items produced
// while a module's tree is being built, and data-time items produced
// while an instance tree is validated against a resolved schema.
package unres

import "github.com/jacoelho/yangresolve/internal/ids"

// SchemaKind tags a schema-time unresolved item.
type SchemaKind uint8

const (
	IdentBase SchemaKind = iota
	TypeIdentrefBase
	TypeLeafref
	TypeDerivation
	IfFeature
	UsesExpand
	TypeDefaultCheck
	ChoiceDefault
	ListKeys
	ListUnique
	AugmentTarget
	XPathRegister
)

// RoundA reports whether kind is resolved in Round A (TYPE_DERIVATION,
// USES_EXPAND), the only kinds allowed to enqueue further items.
func (k SchemaKind) RoundA() bool {
	return k == TypeDerivation || k == UsesExpand
}

// State is the lifecycle of a single unresolved item.
type State uint8

const (
	Pending State = iota
	Resolved
	Failed
)

// SchemaItem is one schema-time unresolved-item record. Not every kind
// targets a model.Node directly: TYPE_DERIVATION/TYPE_IDENTREF_BASE on a
// node-owned type (a leaf's "type" statement) leave Type zero and read
// the type through Node instead, while the same kinds on a bare typedef
// (no owning node) set Type directly and leave Node zero. IDENT_BASE
// always targets Identity directly, since an identity is never owned by
// a model.Node.
type SchemaItem struct {
	Kind     SchemaKind
	Module   ids.ModuleID
	Node     ids.NodeID     // the item being resolved (or the nearest owning node)
	Type     ids.TypeID     // set instead of Node for a bare typedef's own derivation/identref-base
	Identity ids.IdentityID // set for IDENT_BASE
	Augment  ids.AugmentID  // set for a top-level AUGMENT_TARGET; Node carries a uses-level one instead
	Index    int            // selects one entry of a node's multi-valued field: IF_FEATURE within
	// Node.IfFeature/Feature.IfFeature, LIST_UNIQUE within Node.Unique,
	// a nested AUGMENT_TARGET within Node.UsesAugments
	Context string // diagnostic context (lexical path, attribute name)
	State   State

	// USES_EXPAND bookkeeping: a deferred uses increments its target
	// grouping's PendingUses counter and is marked pending here so the
	// fixpoint driver's grouping gate can requeue it once the counter
	// reaches zero.
	BlockedOnGrouping ids.GroupingID
}

// IsZero reports whether i is an unpopulated item.
func (i SchemaItem) IsZero() bool {
	return i.Module.IsZero() && i.Node.IsZero() && i.Context == ""
}
