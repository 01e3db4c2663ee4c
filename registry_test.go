package yangresolve

import (
	"context"
	"testing"

	"github.com/jacoelho/yangresolve/internal/model"
)

type fakeLookup struct {
	byName map[string]*model.Module
	calls  int
}

func (f *fakeLookup) ByName(_ context.Context, name, revision string) (*model.Module, bool) {
	f.calls++
	m, ok := f.byName[registryKey(name, revision)]
	if !ok {
		m, ok = f.byName[name]
	}
	return m, ok
}

func (f *fakeLookup) ByNamespace(context.Context, string, string) (*model.Module, bool) {
	return nil, false
}

func (f *fakeLookup) ResolveImportPrefix(*model.Module, string) (*model.Module, bool) {
	return nil, false
}

func TestModuleRegistryResolvesLocalImportByPrefix(t *testing.T) {
	imported := &model.Module{ID: 1, Name: "types", Revision: "2020-01-01", Prefix: "t"}
	home := &model.Module{ID: 2, Name: "app", Prefix: "app", Imports: []model.Import{{Module: "types", Prefix: "t", Revision: "2020-01-01"}}}

	reg := newModuleRegistry(context.Background(), nil)
	reg.add(imported)
	reg.add(home)

	got, ok := reg.ResolveImportPrefix(home, "t")
	if !ok || got != imported {
		t.Fatalf("got (%v, %v), want (types, true)", got, ok)
	}
}

func TestModuleRegistryFallsBackToLookupAndCaches(t *testing.T) {
	remote := &model.Module{ID: 1, Name: "remote-lib", Prefix: "rl"}
	home := &model.Module{ID: 2, Name: "app", Prefix: "app", Imports: []model.Import{{Module: "remote-lib", Prefix: "rl"}}}
	lookup := &fakeLookup{byName: map[string]*model.Module{"remote-lib": remote}}

	reg := newModuleRegistry(context.Background(), lookup)
	reg.add(home)

	got, ok := reg.ResolveImportPrefix(home, "rl")
	if !ok || got != remote {
		t.Fatalf("got (%v, %v), want (remote-lib, true)", got, ok)
	}
	if lookup.calls != 1 {
		t.Fatalf("expected exactly one lookup call, got %d", lookup.calls)
	}

	if _, ok := reg.ByName("remote-lib", ""); !ok {
		t.Fatalf("expected remote-lib to be cached locally after the first lookup")
	}
	if lookup.calls != 1 {
		t.Fatalf("second resolution should hit the local cache, not the collaborator; calls=%d", lookup.calls)
	}
}

func TestModuleRegistryResolveImportPrefixFailsOnUnknownPrefix(t *testing.T) {
	home := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	reg := newModuleRegistry(context.Background(), nil)
	reg.add(home)

	if _, ok := reg.ResolveImportPrefix(home, "missing"); ok {
		t.Fatalf("expected no match for an unimported prefix")
	}
}

func TestModuleRegistryByNamePrefersExactRevision(t *testing.T) {
	old := &model.Module{ID: 1, Name: "types", Revision: "2019-01-01", Prefix: "t"}
	newer := &model.Module{ID: 2, Name: "types", Revision: "2020-01-01", Prefix: "t"}
	reg := newModuleRegistry(context.Background(), nil)
	reg.add(old)
	reg.add(newer)

	got, ok := reg.ByName("types", "2019-01-01")
	if !ok || got != old {
		t.Fatalf("got (%v, %v), want (old, true)", got, ok)
	}
}

func TestModuleRegistryAllReturnsStableIDOrder(t *testing.T) {
	reg := newModuleRegistry(context.Background(), nil)
	reg.add(&model.Module{ID: 3, Name: "c"})
	reg.add(&model.Module{ID: 1, Name: "a"})
	reg.add(&model.Module{ID: 2, Name: "b"})

	all := reg.all()
	if len(all) != 3 || all[0].ID != 1 || all[1].ID != 2 || all[2].ID != 3 {
		t.Fatalf("expected ID-ordered [1 2 3], got %+v", all)
	}
}
