package yangresolve

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jacoelho/yangresolve/errors"
	"github.com/jacoelho/yangresolve/internal/datadecl"
	"github.com/jacoelho/yangresolve/internal/expand"
	"github.com/jacoelho/yangresolve/internal/fixpoint"
	"github.com/jacoelho/yangresolve/internal/globaldecl"
	"github.com/jacoelho/yangresolve/internal/invariant"
	"github.com/jacoelho/yangresolve/internal/model"
)

// ResolvedSchema is the result of a successful ResolveSchema call: every
// parsed module, fully cross-linked, plus the registry a later ResolveData
// call against the same schema needs.
type ResolvedSchema struct {
	Modules  []*model.Module
	registry *moduleRegistry
}

// ModuleByName returns the resolved module with the given name and
// revision ("" matching any revision), or nil if none was part of this
// run and the configured ModuleLookup (if any) did not resolve it either.
func (r *ResolvedSchema) ModuleByName(name, revision string) (*model.Module, bool) {
	if r == nil || r.registry == nil {
		return nil, false
	}
	return r.registry.ByName(name, revision)
}

// ResolveSchema resolves every forward reference across the given parsed
// module trees to a fixpoint: typedef derivation, identity bases,
// leafref targets, uses/augment/refine expansion, deviation application,
// if-feature pruning and list key/unique validation. It returns once every
// worklist item is Resolved, or the first hard error any resolver reports.
func ResolveSchema(ctx context.Context, parsed []ParserCollaborator, opts ...ResolveOption) (*ResolvedSchema, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := applyResolveOptions(opts)

	reg := newModuleRegistry(ctx, cfg.lookup)
	var modules []*model.Module
	var parseDiags []Diagnostic
	for _, p := range parsed {
		if p == nil {
			continue
		}
		m := p.ParsedSchema()
		if m == nil {
			continue
		}
		reg.add(m)
		modules = append(modules, m)
		parseDiags = append(parseDiags, p.Diagnostics()...)
	}
	if len(modules) == 0 {
		return nil, errors.Diagnostics{errors.New(errors.CodeInMod, "no parsed modules supplied", "")}
	}

	log.Debug().Int("modules", len(modules)).Msg("yangresolve: applying deviations")
	for _, m := range modules {
		for i := range m.Deviations {
			dev := &m.Deviations[i]
			if err := expand.ApplyDeviation(reg, m, dev); err != nil {
				return nil, fmt.Errorf("yangresolve: deviation %q: %w", dev.TargetNodeID, err)
			}
		}
	}

	env := &globaldecl.Env{
		Tree: reg,
		RegisterXPath: func(node *model.Node, expr string, kind globaldecl.XPathKind) {
			if cfg.sched == nil {
				return
			}
			cfg.sched.Register(node, expr, rootXPathKind(kind))
		},
	}
	driver := &fixpoint.Driver{Schema: env.Dispatch}
	env.Diagnostics = func() bool { return driver.Diagnostics }

	items := seedSchemaItems(modules)
	log.Debug().Int("items", len(items)).Msg("yangresolve: seeded schema worklist")
	if err := driver.RunSchema(items); err != nil {
		return nil, fmt.Errorf("yangresolve: resolve schema: %w", err)
	}

	if err := invariant.Check(ctx, modules); err != nil {
		return nil, err
	}

	if len(parseDiags) > 0 {
		return &ResolvedSchema{Modules: modules, registry: reg}, errors.Diagnostics(parseDiags)
	}
	return &ResolvedSchema{Modules: modules, registry: reg}, nil
}

// ResolveData resolves a previously-resolved schema's data (instance) tree:
// when evaluation, leafref/instance-identifier target checks, must
// evaluation and non-presence-container pruning, over the same module set
// ResolveSchema produced.
func ResolveData(schema *ResolvedSchema, opts ...DataOption) error {
	if schema == nil || schema.registry == nil {
		return errors.Internal("resolve data: nil schema")
	}
	cfg := applyDataOptions(opts)

	rpcSide := datadecl.RPCSideAny
	switch {
	case cfg.flags.Has(RPCInput):
		rpcSide = datadecl.RPCSideInput
	case cfg.flags.Has(RPCOutput):
		rpcSide = datadecl.RPCSideOutput
	}
	env := &datadecl.Env{
		Tree:                schema.registry,
		NoAutoDelete:        cfg.flags.Has(NoAutoDelete),
		KeepEmptyContainers: cfg.flags.Has(KeepEmptyContainers),
		RPCSide:             rpcSide,
	}
	driver := &fixpoint.Driver{Data: env.Dispatch}

	items := seedDataItems(schema.Modules, cfg.flags)
	log.Debug().Int("items", len(items)).Msg("yangresolve: seeded data worklist")
	if err := driver.RunData(items); err != nil {
		return fmt.Errorf("yangresolve: resolve data: %w", err)
	}
	return nil
}

func rootXPathKind(kind globaldecl.XPathKind) XPathKind {
	if kind == globaldecl.XPathMust {
		return XPathMust
	}
	return XPathWhen
}
