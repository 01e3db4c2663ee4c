package model

import "github.com/jacoelho/yangresolve/internal/ids"

// Identity is a name plus its ordered base identities (YANG 1.1 allows
// more than one) and a reverse-link list of identities that derive from
// it, maintained as resolution progresses.
type Identity struct {
	ID     ids.IdentityID
	Module ids.ModuleID
	Name   string

	BaseNames []string // lexical, as written

	Bases   []ids.Ref[ids.IdentityID] // resolved
	Derived []ids.Ref[ids.IdentityID] // back-links, populated as other identities resolve a base onto this one

	Status Status
}
