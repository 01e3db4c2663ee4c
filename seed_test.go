package yangresolve

import (
	"testing"

	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/unres"
)

func hasSchemaKind(items []unres.SchemaItem, kind unres.SchemaKind) bool {
	for _, item := range items {
		if item.Kind == kind {
			return true
		}
	}
	return false
}

func countSchemaKind(items []unres.SchemaItem, kind unres.SchemaKind) int {
	n := 0
	for _, item := range items {
		if item.Kind == kind {
			n++
		}
	}
	return n
}

func TestSeedSchemaItemsCoversEveryConstruct(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Identities = append(m.Identities, model.Identity{ID: 1, Module: m.ID, Name: "kind", BaseNames: []string{"base-kind"}})
	m.Types = append(m.Types,
		model.Type{ID: 1, Module: m.ID, Name: "derived", BaseName: "string"},
		model.Type{ID: 2, Module: m.ID, Name: "kind-ref", Category: model.Identityref, IdentityBaseNames: []string{"kind"}},
	)
	m.Features = append(m.Features, model.Feature{Name: "big-mode", IfFeature: []string{"other-feature"}})
	m.Augments = append(m.Augments, model.Augment{TargetNodeID: "/app:top"})

	m.Nodes = append(m.Nodes,
		model.Node{ID: 1, Module: m.ID, Kind: model.Leaf, Name: "id", Type: 3},
		model.Node{ID: 2, Module: m.ID, Kind: model.List, Name: "entries", KeyNames: []string{"id"}, Unique: [][]string{{"id"}}},
		model.Node{ID: 3, Module: m.ID, Kind: model.Choice, Name: "mode", DefaultCaseName: "auto"},
		model.Node{ID: 4, Module: m.ID, Kind: model.Uses, Name: "shared"},
	)
	m.Types = append(m.Types, model.Type{ID: 3, Module: m.ID, Category: model.LeafrefType})
	m.Nodes[0].Default = []string{"1"}

	items := seedSchemaItems([]*model.Module{m})

	if !hasSchemaKind(items, unres.IdentBase) {
		t.Errorf("expected IdentBase for identity with BaseNames")
	}
	if !hasSchemaKind(items, unres.TypeDerivation) {
		t.Errorf("expected TypeDerivation for typedef with BaseName")
	}
	if !hasSchemaKind(items, unres.TypeIdentrefBase) {
		t.Errorf("expected TypeIdentrefBase for identityref typedef")
	}
	if !hasSchemaKind(items, unres.IfFeature) {
		t.Errorf("expected IfFeature for feature's own if-feature")
	}
	if !hasSchemaKind(items, unres.AugmentTarget) {
		t.Errorf("expected AugmentTarget for top-level augment")
	}
	if !hasSchemaKind(items, unres.TypeLeafref) {
		t.Errorf("expected TypeLeafref for leaf typed as leafref")
	}
	if !hasSchemaKind(items, unres.TypeDefaultCheck) {
		t.Errorf("expected TypeDefaultCheck for leaf with a default")
	}
	if !hasSchemaKind(items, unres.ListKeys) {
		t.Errorf("expected ListKeys for list with KeyNames")
	}
	if !hasSchemaKind(items, unres.ListUnique) {
		t.Errorf("expected ListUnique for list with a unique statement")
	}
	if !hasSchemaKind(items, unres.ChoiceDefault) {
		t.Errorf("expected ChoiceDefault for choice with DefaultCaseName")
	}
	if !hasSchemaKind(items, unres.UsesExpand) {
		t.Errorf("expected UsesExpand for a uses node")
	}
}

func TestSeedSchemaItemsSkipsBuiltinTypesAndPlainNodes(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Types = append(m.Types, model.Type{ID: 1, Category: model.String})
	m.Nodes = append(m.Nodes, model.Node{ID: 1, Module: m.ID, Kind: model.Container, Name: "top"})

	items := seedSchemaItems([]*model.Module{m})
	if len(items) != 0 {
		t.Fatalf("expected no schema items for a builtin type and a plain container, got %+v", items)
	}
}

func TestSeedSchemaItemsAugmentIndexIsOneBased(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Augments = append(m.Augments, model.Augment{TargetNodeID: "/app:a"}, model.Augment{TargetNodeID: "/app:b"})

	items := seedSchemaItems([]*model.Module{m})
	var got []ids.AugmentID
	for _, item := range items {
		if item.Kind == unres.AugmentTarget {
			got = append(got, item.Augment)
		}
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected one-based augment IDs [1 2], got %v", got)
	}
}

func hasDataKind(items []unres.DataItem, kind unres.DataKind) bool {
	for _, item := range items {
		if item.Kind == kind {
			return true
		}
	}
	return false
}

func TestSeedDataItemsCoversEveryConstruct(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Types = append(m.Types,
		model.Type{ID: 1, Category: model.LeafrefType},
		model.Type{ID: 2, Category: model.InstanceIdentifier},
	)
	m.Nodes = append(m.Nodes,
		model.Node{ID: 1, Module: m.ID, Kind: model.Container, Name: "top", When: "../enabled"},
		model.Node{ID: 2, Module: m.ID, Kind: model.Leaf, Name: "ref", Type: 1, Must: []model.MustCondition{{XPath: ". > 0"}}},
		model.Node{ID: 3, Module: m.ID, Kind: model.Leaf, Name: "pointer", Type: 2},
	)

	items := seedDataItems([]*model.Module{m}, 0)

	if !hasDataKind(items, unres.WhenEval) {
		t.Errorf("expected WhenEval for a node with a when")
	}
	if !hasDataKind(items, unres.MustEval) {
		t.Errorf("expected MustEval for a node with a must")
	}
	if !hasDataKind(items, unres.EmptyNPContainerPrune) {
		t.Errorf("expected EmptyNPContainerPrune for a non-presence container")
	}
	if !hasDataKind(items, unres.Leafref) {
		t.Errorf("expected Leafref for a leafref-typed leaf")
	}
	if !hasDataKind(items, unres.InstanceID) {
		t.Errorf("expected InstanceID for an instance-identifier-typed leaf")
	}
}

func TestSeedDataItemsSkipsPresenceContainer(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Nodes = append(m.Nodes, model.Node{ID: 1, Module: m.ID, Kind: model.Container, Name: "top", Presence: true})

	items := seedDataItems([]*model.Module{m}, 0)
	if hasDataKind(items, unres.EmptyNPContainerPrune) {
		t.Fatalf("a presence container must not be seeded for pruning")
	}
}

func TestSeedDataItemsRestrictsToRPCInputSide(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Nodes = append(m.Nodes,
		model.Node{ID: 1, Module: m.ID, Kind: model.RPC, Name: "reboot", Children: []ids.NodeID{2, 4}},
		model.Node{ID: 2, Module: m.ID, Kind: model.Input, Parent: 1, Children: []ids.NodeID{3}},
		model.Node{ID: 3, Module: m.ID, Kind: model.Leaf, Name: "delay", Parent: 2, Must: []model.MustCondition{{XPath: ". > 0"}}},
		model.Node{ID: 4, Module: m.ID, Kind: model.Output, Parent: 1, Children: []ids.NodeID{5}},
		model.Node{ID: 5, Module: m.ID, Kind: model.Leaf, Name: "status", Parent: 4, Must: []model.MustCondition{{XPath: ". > 0"}}},
	)

	items := seedDataItems([]*model.Module{m}, RPCInput)
	if countMustEvalFor(items, 3) != 1 {
		t.Errorf("expected the input-side leaf's MustEval to be seeded")
	}
	if countMustEvalFor(items, 5) != 0 {
		t.Errorf("expected the output-side leaf's MustEval to be skipped under RPCInput")
	}
}

func countMustEvalFor(items []unres.DataItem, node ids.NodeID) int {
	n := 0
	for _, item := range items {
		if item.Kind == unres.MustEval && item.Node == node {
			n++
		}
	}
	return n
}
