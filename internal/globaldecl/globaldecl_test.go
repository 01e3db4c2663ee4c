package globaldecl

import (
	"testing"

	"github.com/jacoelho/yangresolve/errors"
	"github.com/jacoelho/yangresolve/internal/fixpoint"
	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/unres"
)

type fakeModuleSet struct {
	modules  map[ids.ModuleID]*model.Module
	byPrefix map[string]ids.ModuleID
}

func (f *fakeModuleSet) Module(id ids.ModuleID) *model.Module {
	return f.modules[id]
}

func (f *fakeModuleSet) ResolveImportPrefix(home *model.Module, prefix string) (*model.Module, bool) {
	if prefix == home.Prefix {
		return home, true
	}
	id, ok := f.byPrefix[prefix]
	if !ok {
		return nil, false
	}
	return f.modules[id], true
}

func newEnv(modules ...*model.Module) (*Env, *fakeModuleSet) {
	fms := &fakeModuleSet{modules: map[ids.ModuleID]*model.Module{}, byPrefix: map[string]ids.ModuleID{}}
	for _, m := range modules {
		fms.modules[m.ID] = m
		fms.byPrefix[m.Prefix] = m.ID
	}
	return &Env{Tree: fms}, fms
}

func TestResolveIdentBaseLinksDerivedBackref(t *testing.T) {
	m := &model.Module{ID: 1, Name: "animals", Prefix: "an"}
	m.Identities = append(m.Identities, model.Identity{ID: 1, Module: m.ID, Name: "animal"})
	m.Identities = append(m.Identities, model.Identity{ID: 2, Module: m.ID, Name: "dog", BaseNames: []string{"animal"}})
	env, _ := newEnv(m)

	outcome, err := env.resolveIdentBase(unres.SchemaItem{Kind: unres.IdentBase, Module: m.ID, Identity: 2})
	if err != nil || outcome != fixpoint.Resolved {
		t.Fatalf("got outcome=%v err=%v", outcome, err)
	}

	dog := m.Identity(2)
	if len(dog.Bases) != 1 || dog.Bases[0].Module != m.ID || dog.Bases[0].Index != 1 {
		t.Fatalf("got bases %+v", dog.Bases)
	}
	if dog.BaseNames != nil {
		t.Fatalf("expected BaseNames cleared, got %v", dog.BaseNames)
	}

	animal := m.Identity(1)
	if len(animal.Derived) != 1 || animal.Derived[0].Index != 2 {
		t.Fatalf("expected animal.Derived to record dog, got %+v", animal.Derived)
	}
}

func TestResolveIdentBaseDefersOnUnknownBase(t *testing.T) {
	m := &model.Module{ID: 1, Name: "animals", Prefix: "an"}
	m.Identities = append(m.Identities, model.Identity{ID: 1, Module: m.ID, Name: "dog", BaseNames: []string{"animal"}})
	env, _ := newEnv(m)

	outcome, err := env.resolveIdentBase(unres.SchemaItem{Kind: unres.IdentBase, Module: m.ID, Identity: 1})
	if err != nil || outcome != fixpoint.Deferred {
		t.Fatalf("got outcome=%v err=%v, want Deferred/nil", outcome, err)
	}
}

func TestResolveIdentBaseFailsOnDiagnosticsPass(t *testing.T) {
	m := &model.Module{ID: 1, Name: "animals", Prefix: "an"}
	m.Identities = append(m.Identities, model.Identity{ID: 1, Module: m.ID, Name: "dog", BaseNames: []string{"animal"}})
	env, _ := newEnv(m)
	env.Diagnostics = func() bool { return true }

	outcome, err := env.resolveIdentBase(unres.SchemaItem{Kind: unres.IdentBase, Module: m.ID, Identity: 1})
	if outcome != fixpoint.Failed || err == nil {
		t.Fatalf("got outcome=%v err=%v, want Failed/non-nil", outcome, err)
	}
}

func TestResolveIdentBaseRejectsDirectCycle(t *testing.T) {
	m := &model.Module{ID: 1, Name: "animals", Prefix: "an"}
	m.Identities = append(m.Identities,
		model.Identity{ID: 1, Module: m.ID, Name: "id-a", BaseNames: []string{"id-b"}},
		model.Identity{ID: 2, Module: m.ID, Name: "id-b", Bases: []ids.Ref[ids.IdentityID]{{Module: m.ID, Index: 1}}},
	)
	env, _ := newEnv(m)

	outcome, err := env.resolveIdentBase(unres.SchemaItem{Kind: unres.IdentBase, Module: m.ID, Identity: 1})
	if outcome != fixpoint.Failed || err == nil {
		t.Fatalf("got outcome=%v err=%v, want Failed/non-nil for a 2-identity base cycle", outcome, err)
	}
	diags, ok := errors.AsDiagnostics(err)
	if !ok || len(diags) != 1 || diags[0].Code != errors.CodeInArg {
		t.Fatalf("expected a single CodeInArg diagnostic, got %+v (ok=%v)", diags, ok)
	}
}

func TestResolveIdentBaseAllowsDiamondWithoutCycle(t *testing.T) {
	m := &model.Module{ID: 1, Name: "animals", Prefix: "an"}
	m.Identities = append(m.Identities,
		model.Identity{ID: 1, Module: m.ID, Name: "animal"},
		model.Identity{ID: 2, Module: m.ID, Name: "pet", Bases: []ids.Ref[ids.IdentityID]{{Module: m.ID, Index: 1}}},
		model.Identity{ID: 3, Module: m.ID, Name: "dog", BaseNames: []string{"animal", "pet"}},
	)
	env, _ := newEnv(m)

	outcome, err := env.resolveIdentBase(unres.SchemaItem{Kind: unres.IdentBase, Module: m.ID, Identity: 3})
	if err != nil || outcome != fixpoint.Resolved {
		t.Fatalf("got outcome=%v err=%v, want Resolved/nil for a diamond with no cycle", outcome, err)
	}
}

func TestResolveTypeIdentrefBaseCrossModule(t *testing.T) {
	base := &model.Module{ID: 1, Name: "base", Prefix: "b"}
	base.Identities = append(base.Identities, model.Identity{ID: 1, Module: base.ID, Name: "animal"})

	consumer := &model.Module{ID: 2, Name: "zoo", Prefix: "z"}
	consumer.Imports = append(consumer.Imports, model.Import{Module: "base", Prefix: "b"})
	typeID := consumer.AppendType(model.Type{Category: model.Identityref, IdentityBaseNames: []string{"b:animal"}})

	env, _ := newEnv(base, consumer)
	outcome, err := env.resolveTypeIdentrefBase(unres.SchemaItem{Kind: unres.TypeIdentrefBase, Module: consumer.ID, Type: typeID})
	if err != nil || outcome != fixpoint.Resolved {
		t.Fatalf("got outcome=%v err=%v", outcome, err)
	}

	ct := consumer.Type(typeID)
	if len(ct.IdentityBases) != 1 || ct.IdentityBases[0].Module != base.ID || ct.IdentityBases[0].Index != 1 {
		t.Fatalf("got bases %+v", ct.IdentityBases)
	}
	if ct.IdentityBaseNames != nil {
		t.Fatalf("expected IdentityBaseNames cleared, got %v", ct.IdentityBaseNames)
	}
}

func TestResolveIfFeatureRemovesNodeWhenFalse(t *testing.T) {
	m := &model.Module{ID: 1, Name: "m", Prefix: "m"}
	m.Features = append(m.Features, model.Feature{Name: "extra", Enabled: false})
	parentID := m.AppendNode(model.Node{Kind: model.Container, Name: "top", Module: m.ID})
	childID := m.AppendNode(model.Node{Kind: model.Leaf, Name: "child", Module: m.ID, Parent: parentID, IfFeature: []string{"extra"}})
	parent := m.Node(parentID)
	parent.Children = append(parent.Children, childID)
	m.Top = []ids.NodeID{parentID}

	env, _ := newEnv(m)
	outcome, err := env.resolveIfFeature(unres.SchemaItem{Kind: unres.IfFeature, Module: m.ID, Node: childID, Index: 0})
	if err != nil || outcome != fixpoint.Resolved {
		t.Fatalf("got outcome=%v err=%v", outcome, err)
	}

	if len(parent.Children) != 0 {
		t.Fatalf("expected child removed since if-feature 'extra' is false (feature disabled), got %+v", parent.Children)
	}
}

func TestResolveIfFeatureKeepsNodeWhenTrue(t *testing.T) {
	m := &model.Module{ID: 1, Name: "m", Prefix: "m"}
	m.Features = append(m.Features, model.Feature{Name: "extra", Enabled: true})
	parentID := m.AppendNode(model.Node{Kind: model.Container, Name: "top", Module: m.ID})
	childID := m.AppendNode(model.Node{Kind: model.Leaf, Name: "child", Module: m.ID, Parent: parentID, IfFeature: []string{"extra"}})
	parent := m.Node(parentID)
	parent.Children = append(parent.Children, childID)
	m.Top = []ids.NodeID{parentID}

	env, _ := newEnv(m)
	outcome, err := env.resolveIfFeature(unres.SchemaItem{Kind: unres.IfFeature, Module: m.ID, Node: childID, Index: 0})
	if err != nil || outcome != fixpoint.Resolved {
		t.Fatalf("got outcome=%v err=%v", outcome, err)
	}
	if len(parent.Children) != 1 {
		t.Fatalf("expected child kept, got %+v", parent.Children)
	}
}

func TestResolveIfFeatureOnFeatureDisablesIt(t *testing.T) {
	m := &model.Module{ID: 1, Name: "m", Prefix: "m"}
	m.Features = append(m.Features, model.Feature{Name: "base", Enabled: false})
	m.Features = append(m.Features, model.Feature{Name: "composite", Enabled: true, IfFeature: []string{"base"}})

	env, _ := newEnv(m)
	outcome, err := env.resolveIfFeature(unres.SchemaItem{Kind: unres.IfFeature, Module: m.ID, Context: "composite", Index: 0})
	if err != nil || outcome != fixpoint.Resolved {
		t.Fatalf("got outcome=%v err=%v", outcome, err)
	}
	composite, _ := m.FeatureByName("composite")
	if composite.Enabled {
		t.Fatalf("expected composite disabled since its guarding feature base is disabled")
	}
}

func TestEvalIfFeaturePrecedence(t *testing.T) {
	m := &model.Module{ID: 1, Name: "m", Prefix: "m"}
	m.Features = append(m.Features,
		model.Feature{Name: "a", Enabled: true},
		model.Feature{Name: "b", Enabled: false},
		model.Feature{Name: "c", Enabled: true},
	)
	_, fms := newEnv(m)

	// "a or b and c" must parse as "a or (b and c)" -- true regardless of
	// (b and c) since a is true.
	got, err := evalIfFeature(fms, m, "a or b and c")
	if err != nil || !got {
		t.Fatalf("got %v err=%v, want true/nil", got, err)
	}

	got, err = evalIfFeature(fms, m, "not a and c")
	if err != nil || got {
		t.Fatalf("got %v err=%v, want false/nil ('not a and c' == '(not a) and c')", got, err)
	}

	got, err = evalIfFeature(fms, m, "(a or b) and not b")
	if err != nil || !got {
		t.Fatalf("got %v err=%v, want true/nil", got, err)
	}
}

func TestResolveListKeysMatchesDirectLeafChildren(t *testing.T) {
	m := &model.Module{ID: 1, Name: "m", Prefix: "m"}
	listID := m.AppendNode(model.Node{Kind: model.List, Name: "entry", Module: m.ID, KeyNames: []string{"name"}})
	nameID := m.AppendNode(model.Node{Kind: model.Leaf, Name: "name", Module: m.ID, Parent: listID})
	list := m.Node(listID)
	list.Children = append(list.Children, nameID)

	env, _ := newEnv(m)
	outcome, err := env.resolveListKeys(unres.SchemaItem{Kind: unres.ListKeys, Module: m.ID, Node: listID})
	if err != nil || outcome != fixpoint.Resolved {
		t.Fatalf("got outcome=%v err=%v", outcome, err)
	}
	if len(list.Keys) != 1 || list.Keys[0] != nameID {
		t.Fatalf("got keys %+v", list.Keys)
	}
}

func TestResolveListKeysDefersOnMissingChild(t *testing.T) {
	m := &model.Module{ID: 1, Name: "m", Prefix: "m"}
	listID := m.AppendNode(model.Node{Kind: model.List, Name: "entry", Module: m.ID, KeyNames: []string{"name"}})

	env, _ := newEnv(m)
	outcome, err := env.resolveListKeys(unres.SchemaItem{Kind: unres.ListKeys, Module: m.ID, Node: listID})
	if err != nil || outcome != fixpoint.Deferred {
		t.Fatalf("got outcome=%v err=%v, want Deferred/nil", outcome, err)
	}
}

func TestResolveTypeDefaultCheckIntegerRange(t *testing.T) {
	m := &model.Module{ID: 1, Name: "m", Prefix: "m"}
	typeID := m.AppendType(model.Type{Category: model.Uint8})
	leafID := m.AppendNode(model.Node{Kind: model.Leaf, Name: "count", Module: m.ID, Type: typeID, Default: []string{"42"}})

	env, _ := newEnv(m)
	outcome, err := env.resolveTypeDefaultCheck(unres.SchemaItem{Kind: unres.TypeDefaultCheck, Module: m.ID, Node: leafID})
	if err != nil || outcome != fixpoint.Resolved {
		t.Fatalf("got outcome=%v err=%v", outcome, err)
	}
}

func TestResolveTypeDefaultCheckRejectsNonBoolean(t *testing.T) {
	m := &model.Module{ID: 1, Name: "m", Prefix: "m"}
	typeID := m.AppendType(model.Type{Category: model.Boolean})
	leafID := m.AppendNode(model.Node{Kind: model.Leaf, Name: "enabled", Module: m.ID, Type: typeID, Default: []string{"yes"}})

	env, _ := newEnv(m)
	outcome, err := env.resolveTypeDefaultCheck(unres.SchemaItem{Kind: unres.TypeDefaultCheck, Module: m.ID, Node: leafID})
	if outcome != fixpoint.Failed || err == nil {
		t.Fatalf("got outcome=%v err=%v, want Failed/non-nil for a non-boolean default", outcome, err)
	}
}

func TestResolveTypeDefaultCheckEnumeration(t *testing.T) {
	m := &model.Module{ID: 1, Name: "m", Prefix: "m"}
	typeID := m.AppendType(model.Type{Category: model.Enumeration, Enums: []model.Enum{{Name: "up"}, {Name: "down"}}})
	leafID := m.AppendNode(model.Node{Kind: model.Leaf, Name: "state", Module: m.ID, Type: typeID, Default: []string{"sideways"}})

	env, _ := newEnv(m)
	outcome, err := env.resolveTypeDefaultCheck(unres.SchemaItem{Kind: unres.TypeDefaultCheck, Module: m.ID, Node: leafID})
	if outcome != fixpoint.Failed || err == nil {
		t.Fatalf("got outcome=%v err=%v, want Failed/non-nil for a default not in the enum", outcome, err)
	}
}

func TestResolveTypeDefaultCheckUnionTriesEachMember(t *testing.T) {
	m := &model.Module{ID: 1, Name: "m", Prefix: "m"}
	boolType := m.AppendType(model.Type{Category: model.Boolean})
	enumType := m.AppendType(model.Type{Category: model.Enumeration, Enums: []model.Enum{{Name: "auto"}}})
	unionType := m.AppendType(model.Type{Category: model.Union, UnionMembers: []ids.TypeID{boolType, enumType}})
	leafID := m.AppendNode(model.Node{Kind: model.Leaf, Name: "mode", Module: m.ID, Type: unionType, Default: []string{"auto"}})

	env, _ := newEnv(m)
	outcome, err := env.resolveTypeDefaultCheck(unres.SchemaItem{Kind: unres.TypeDefaultCheck, Module: m.ID, Node: leafID})
	if err != nil || outcome != fixpoint.Resolved {
		t.Fatalf("got outcome=%v err=%v, want Resolved/nil since 'auto' matches the enumeration member", outcome, err)
	}
}

func TestIdentityDerivesFromAnyTransitive(t *testing.T) {
	m := &model.Module{ID: 1, Name: "m", Prefix: "m"}
	m.Identities = append(m.Identities,
		model.Identity{ID: 1, Module: m.ID, Name: "animal"},
		model.Identity{ID: 2, Module: m.ID, Name: "mammal", Bases: []ids.Ref[ids.IdentityID]{{Module: m.ID, Index: 1}}},
		model.Identity{ID: 3, Module: m.ID, Name: "dog", Bases: []ids.Ref[ids.IdentityID]{{Module: m.ID, Index: 2}}},
	)
	_, fms := newEnv(m)

	bases := []ids.Ref[ids.IdentityID]{{Module: m.ID, Index: 1}}
	if !identityDerivesFromAny(fms, m, 3, bases) {
		t.Fatalf("expected dog to transitively derive from animal through mammal")
	}
	if identityDerivesFromAny(fms, m, 1, []ids.Ref[ids.IdentityID]{{Module: m.ID, Index: 3}}) {
		t.Fatalf("animal must not derive from dog")
	}
}
