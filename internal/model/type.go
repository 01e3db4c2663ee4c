package model

import (
	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/interval"
)

// Category tags a Type as one of the YANG built-ins or a derived type.
type Category uint8

const (
	Binary Category = iota
	Bits
	Boolean
	Decimal64
	Empty
	Enumeration
	Identityref
	InstanceIdentifier
	Int8
	Int16
	Int32
	Int64
	LeafrefType
	String
	Uint8
	Uint16
	Uint32
	Uint64
	Union
	Derived
)

// IsIntegral reports whether c is one of the signed or unsigned integer
// built-ins (the ones interval.Signed/interval.Unsigned apply to).
func (c Category) IsIntegral() bool {
	switch c {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// Bit is one member of a bits type's bit set.
type Bit struct {
	Name     string
	Position uint32
}

// Enum is one member of an enumeration type's enum set.
type Enum struct {
	Name  string
	Value int64
}

// Type is a tagged variant over the built-ins and derived types. A derived
// type exclusively owns a reference to its Base plus local refinements;
// Base is zero for a built-in.
type Type struct {
	ID       ids.TypeID
	Module   ids.ModuleID
	Name     string
	Category Category

	BaseName string     // lexical base type name, as written, until TYPE_DERIVATION resolves it
	Base     ids.TypeID // zero for a built-in; resolved into this Type's own Module arena

	// Local refinements (only the ones meaningful for Category are set).
	Length         interval.Set // Unsigned, always
	Range          interval.Set // Unsigned/Signed/Decimal per Category
	Patterns       []string
	Enums          []Enum
	Bits           []Bit
	FractionDigits uint32 // decimal64 only, 1..18

	RequireInstance bool // instance-identifier / leafref

	IdentityBaseNames []string                  // identityref, lexical, as written
	IdentityBases     []ids.Ref[ids.IdentityID] // identityref, resolved, cross-module

	LeafrefPath     string              // unresolved lexical path
	LeafrefTarget   ids.Ref[ids.NodeID] // resolved, zero until schema-time leafref resolution; cross-module
	LeafrefRelative bool

	UnionMembers []ids.TypeID // union

	// EffectiveRange/EffectiveLength are the interval sets after merging
	// with the full base-derivation chain (see internal/interval.Set.Resolve),
	// cached once computed.
	EffectiveRange  interval.Set
	EffectiveLength interval.Set
}

// EffectiveStatus is not carried on Type (status lives on the typedef's
// owning declaration as a Node-like record); Type itself has no status.

// DerivationDepth walks the Base chain starting at t, bounded by max to
// guard against a cycle that slipped past identity-DAG validation.
func DerivationDepth(resolveType func(ids.ModuleID, ids.TypeID) *Type, module ids.ModuleID, t *Type, max int) int {
	depth := 0
	cur := t
	curModule := module
	for cur != nil && !cur.Base.IsZero() && depth < max {
		next := resolveType(curModule, cur.Base)
		if next == nil {
			break
		}
		cur = next
		depth++
	}
	return depth
}
