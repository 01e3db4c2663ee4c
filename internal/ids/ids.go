// Package ids defines the monotonic arena index types used throughout the
// resolved schema tree in place of owning pointers, following an
// arena-of-structs convention: cross-references are (ModuleID, NodeID)
// pairs resolved through an arena, not pointers into another module's
// memory.
package ids

import "fmt"

// ModuleID indexes a resolved module within a resolution run.
type ModuleID uint32

// IsZero reports whether id is the unset zero value.
func (id ModuleID) IsZero() bool { return id == 0 }

// NodeID indexes a schema or data node within its owning module's arena.
type NodeID uint32

// IsZero reports whether id is the unset zero value.
func (id NodeID) IsZero() bool { return id == 0 }

// TypeID indexes a type (built-in or derived) within its owning module's
// type arena.
type TypeID uint32

// IsZero reports whether id is the unset zero value.
func (id TypeID) IsZero() bool { return id == 0 }

// IdentityID indexes an identity within its owning module's identity arena.
type IdentityID uint32

// IsZero reports whether id is the unset zero value.
func (id IdentityID) IsZero() bool { return id == 0 }

// GroupingID indexes a grouping within its owning module's grouping arena.
type GroupingID uint32

// IsZero reports whether id is the unset zero value.
func (id GroupingID) IsZero() bool { return id == 0 }

// AugmentID indexes a top-level augment within its owning module's
// augment arena (a uses-level augment is addressed through its uses
// site's Node instead, since it has no arena of its own).
type AugmentID uint32

// IsZero reports whether id is the unset zero value.
func (id AugmentID) IsZero() bool { return id == 0 }

// Ref is a cross-module reference: a node, type, identity or grouping is
// addressed by the module that owns its arena plus the index within it,
// never by a direct pointer into another module's arena.
type Ref[T ~uint32] struct {
	Module ModuleID
	Index  T
}

// IsZero reports whether r refers to nothing.
func (r Ref[T]) IsZero() bool {
	return r.Module.IsZero() && r.Index == 0
}

func (r Ref[T]) String() string {
	return fmt.Sprintf("module(%d)#%d", r.Module, r.Index)
}

// Allocator hands out monotonically increasing IDs starting at 1, so the
// zero value of T remains reserved to mean "unset".
type Allocator[T ~uint32] struct {
	next T
}

// NewAllocator returns an allocator whose first Next() call returns 1.
func NewAllocator[T ~uint32]() *Allocator[T] {
	return &Allocator[T]{next: 1}
}

// Next returns the next unused ID.
func (a *Allocator[T]) Next() T {
	id := a.next
	a.next++
	return id
}

// Len reports how many IDs have been allocated so far.
func (a *Allocator[T]) Len() T {
	return a.next - 1
}
