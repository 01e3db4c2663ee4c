// Package yangresolve wires internal/globaldecl's per-kind resolvers and
// internal/fixpoint's worklist driver into the semantic resolution core of
// a YANG schema compiler: given a set of parsed module trees it resolves
// every forward reference (typedef derivation, identity base, leafref,
// uses/augment/refine expansion, deviation application) to a fixpoint, then
// optionally resolves a data (instance) tree's when/must/leafref
// conditions against the resolved schema.
//
// A small number of entry points (ResolveSchema/ResolveData) built on
// functional options, with the actual work delegated to internal packages
// this root package only wires together.
package yangresolve

import (
	"context"

	"github.com/jacoelho/yangresolve/errors"
	"github.com/jacoelho/yangresolve/internal/model"
)

// Diagnostic is the record shape a resolution run reports a hard failure
// as; an alias so callers implementing the collaborator interfaces below
// need only import this package.
type Diagnostic = errors.Diagnostic

// ParserCollaborator is one already-parsed module tree handed to
// ResolveSchema, plus any diagnostics its own parse produced (a malformed
// statement the parser recovered from and wants surfaced alongside
// resolution's own diagnostics).
type ParserCollaborator interface {
	ParsedSchema() *model.Module
	Diagnostics() []Diagnostic
}

// ModuleLookup resolves a module by name or namespace, and an import
// prefix relative to a home module, for modules this run did not itself
// receive as a ParserCollaborator — a host application's own module
// cache or registry of already-resolved library modules.
type ModuleLookup interface {
	ByName(ctx context.Context, name, revision string) (*model.Module, bool)
	ByNamespace(ctx context.Context, namespace, revision string) (*model.Module, bool)
	ResolveImportPrefix(m *model.Module, prefix string) (*model.Module, bool)
}

// StringDict interns a byte slice into a small integer handle. Optional:
// a nil StringDict means node/value names are kept as Go strings only.
type StringDict interface {
	Intern(b []byte) uint32
}

// XPathKind distinguishes a when condition from a must constraint on the
// XPathScheduler.Register callback.
type XPathKind uint8

const (
	XPathWhen XPathKind = iota
	XPathMust
)

// XPathScheduler is notified once per when/must expression discovered on a
// schema node during resolution, so a host application can schedule the
// expression for its own XPath engine without this module depending on
// one.
type XPathScheduler interface {
	Register(node *model.Node, expr string, kind XPathKind)
}
