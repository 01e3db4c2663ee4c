package yangresolve

import (
	"context"

	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
)

// moduleRegistry is the concrete ModuleSet every internal resolver package
// (schematree, typechain, expand, leafref, globaldecl) is generic over,
// backed by the modules this run parsed itself plus a fallback to the
// caller's ModuleLookup for anything it did not.
type moduleRegistry struct {
	ctx context.Context

	byID   map[ids.ModuleID]*model.Module
	byName map[string]*model.Module

	lookup ModuleLookup
}

func newModuleRegistry(ctx context.Context, lookup ModuleLookup) *moduleRegistry {
	return &moduleRegistry{
		ctx:    ctx,
		byID:   make(map[ids.ModuleID]*model.Module),
		byName: make(map[string]*model.Module),
		lookup: lookup,
	}
}

func (r *moduleRegistry) add(m *model.Module) {
	r.byID[m.ID] = m
	r.byName[registryKey(m.Name, m.Revision)] = m
	r.byName[m.Name] = m
}

// Module returns the module with the given arena ID, satisfying
// schematree.ModuleSet / typechain.ModuleSet / expand.ModuleSet.
func (r *moduleRegistry) Module(id ids.ModuleID) *model.Module {
	return r.byID[id]
}

// ResolveImportPrefix resolves home's import prefix to the module it
// names, checking modules registered locally before falling back to the
// caller's ModuleLookup collaborator.
func (r *moduleRegistry) ResolveImportPrefix(home *model.Module, prefix string) (*model.Module, bool) {
	for _, imp := range home.Imports {
		if imp.Prefix != prefix {
			continue
		}
		if m, ok := r.byName[registryKey(imp.Module, imp.Revision)]; ok {
			return m, true
		}
		if m, ok := r.byName[imp.Module]; ok {
			return m, true
		}
		if r.lookup != nil {
			if m, ok := r.lookup.ByName(r.ctx, imp.Module, imp.Revision); ok {
				r.add(m)
				return m, true
			}
		}
		return nil, false
	}
	return nil, false
}

// ByName resolves a module by name/revision, checking local registrations
// before the caller's ModuleLookup — the same fallback ResolveImportPrefix
// uses, exposed directly for a caller of ModuleLookup itself.
func (r *moduleRegistry) ByName(name, revision string) (*model.Module, bool) {
	if m, ok := r.byName[registryKey(name, revision)]; ok {
		return m, true
	}
	if m, ok := r.byName[name]; ok {
		return m, true
	}
	if r.lookup != nil {
		if m, ok := r.lookup.ByName(r.ctx, name, revision); ok {
			r.add(m)
			return m, true
		}
	}
	return nil, false
}

// all returns every module registered so far, in a stable ID order.
func (r *moduleRegistry) all() []*model.Module {
	modules := make([]*model.Module, 0, len(r.byID))
	for _, m := range r.byID {
		modules = append(modules, m)
	}
	for i := 1; i < len(modules); i++ {
		for j := i; j > 0 && modules[j-1].ID > modules[j].ID; j-- {
			modules[j-1], modules[j] = modules[j], modules[j-1]
		}
	}
	return modules
}

func registryKey(name, revision string) string {
	if revision == "" {
		return name
	}
	return name + "@" + revision
}
