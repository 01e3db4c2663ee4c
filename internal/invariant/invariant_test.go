package invariant

import (
	"context"
	"testing"

	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
)

func TestCheckPassesOnAWellFormedModule(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Nodes = append(m.Nodes,
		model.Node{ID: 1, Module: m.ID, Kind: model.List, Name: "entries", Config: true, KeyNames: []string{"id"}, Keys: []ids.NodeID{2}, Children: []ids.NodeID{2}},
		model.Node{ID: 2, Module: m.ID, Kind: model.Leaf, Name: "id", Config: true, Parent: 1},
	)
	m.Groupings = append(m.Groupings, model.Grouping{ID: 1, Module: m.ID, Name: "shared", PendingUses: 0})

	if err := Check(context.Background(), []*model.Module{m}); err != nil {
		t.Fatalf("Check returned an error for a well-formed module: %v", err)
	}
}

func TestCheckCatchesBrokenSiblingLinkage(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Nodes = append(m.Nodes,
		model.Node{ID: 1, Module: m.ID, Kind: model.Container, Name: "top", Children: []ids.NodeID{2}},
		model.Node{ID: 2, Module: m.ID, Kind: model.Leaf, Name: "child", Parent: 99},
	)

	if err := Check(context.Background(), []*model.Module{m}); err == nil {
		t.Fatalf("expected Check to catch a child whose Parent does not point back")
	}
}

func TestCheckCatchesConfigIncoherence(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Nodes = append(m.Nodes,
		model.Node{ID: 1, Module: m.ID, Kind: model.Container, Name: "top", Config: false, Children: []ids.NodeID{2}},
		model.Node{ID: 2, Module: m.ID, Kind: model.Leaf, Name: "child", Config: true, Parent: 1},
	)

	if err := Check(context.Background(), []*model.Module{m}); err == nil {
		t.Fatalf("expected Check to catch a config-true child under a config-false parent")
	}
}

func TestCheckCatchesUnresolvedUsesCounter(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Groupings = append(m.Groupings, model.Grouping{ID: 1, Module: m.ID, Name: "shared", PendingUses: 1})

	if err := Check(context.Background(), []*model.Module{m}); err == nil {
		t.Fatalf("expected Check to catch a nonzero PendingUses counter")
	}
}

func TestCheckCatchesIdentityCycle(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Identities = append(m.Identities,
		model.Identity{ID: 1, Module: m.ID, Name: "a", Bases: []ids.Ref[ids.IdentityID]{{Module: m.ID, Index: 2}}},
		model.Identity{ID: 2, Module: m.ID, Name: "b", Bases: []ids.Ref[ids.IdentityID]{{Module: m.ID, Index: 1}}},
	)

	if err := Check(context.Background(), []*model.Module{m}); err == nil {
		t.Fatalf("expected Check to catch a two-identity base cycle")
	}
}

func TestCheckCatchesMinElementsGreaterThanMaxElements(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Nodes = append(m.Nodes,
		model.Node{ID: 1, Module: m.ID, Kind: model.List, Name: "entries", MinElements: 3, MaxElements: 1},
	)

	if err := Check(context.Background(), []*model.Module{m}); err == nil {
		t.Fatalf("expected Check to catch min-elements greater than max-elements")
	}
}

func TestCheckAllowsUnboundedMaxRegardlessOfMinElements(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Nodes = append(m.Nodes,
		model.Node{ID: 1, Module: m.ID, Kind: model.LeafList, Name: "entries", MinElements: 5, MaxUnbounded: true},
	)

	if err := Check(context.Background(), []*model.Module{m}); err != nil {
		t.Fatalf("expected an unbounded max-elements to be consistent with any min-elements, got: %v", err)
	}
}

func TestCheckCatchesKeyCountMismatch(t *testing.T) {
	m := &model.Module{ID: 1, Name: "app", Prefix: "app"}
	m.Nodes = append(m.Nodes,
		model.Node{ID: 1, Module: m.ID, Kind: model.List, Name: "entries", KeyNames: []string{"id", "name"}, Keys: []ids.NodeID{2}},
		model.Node{ID: 2, Module: m.ID, Kind: model.Leaf, Name: "id", Parent: 1},
	)

	if err := Check(context.Background(), []*model.Module{m}); err == nil {
		t.Fatalf("expected Check to catch a Keys/KeyNames length mismatch")
	}
}
