package schematree

import (
	"errors"
	"testing"

	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
)

// fakeModuleSet is a minimal in-memory ModuleSet/JSONModuleSet fixture
// for tests: a fixed set of modules addressed by ID, with a fixed
// prefix-to-module and name-to-module mapping standing in for a real
// import table.
type fakeModuleSet struct {
	modules  map[ids.ModuleID]*model.Module
	byPrefix map[string]ids.ModuleID
	byName   map[string]ids.ModuleID
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

func (f *fakeModuleSet) ModuleByName(name string) (*model.Module, bool) {
	id, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return f.modules[id], true
}

// buildFixture constructs:
//
//	module "if" (prefix "if")
//	  container interfaces
//	    list interface (key "name")
//	      leaf name
//	      choice transport
//	        case tcp
//	          leaf tcp-port
//	        leaf udp-port          (shorthand case)
func buildFixture() (*fakeModuleSet, *model.Module) {
	m := &model.Module{ID: 1, Name: "if", Prefix: "if"}

	add := func(n model.Node) ids.NodeID {
		n.Module = m.ID
		n.ID = ids.NodeID(len(m.Nodes) + 1)
		m.Nodes = append(m.Nodes, n)
		return ids.NodeID(len(m.Nodes))
	}

	nameID := add(model.Node{Kind: model.Leaf, Name: "name"})
	tcpPortID := add(model.Node{Kind: model.Leaf, Name: "tcp-port"})
	tcpCaseID := add(model.Node{Kind: model.Case, Name: "tcp", Children: []ids.NodeID{tcpPortID}})
	udpPortID := add(model.Node{Kind: model.Leaf, Name: "udp-port"})
	transportID := add(model.Node{Kind: model.Choice, Name: "transport", Children: []ids.NodeID{tcpCaseID, udpPortID}})
	interfaceID := add(model.Node{Kind: model.List, Name: "interface", Children: []ids.NodeID{nameID, transportID}, Keys: []ids.NodeID{nameID}})
	interfacesID := add(model.Node{Kind: model.Container, Name: "interfaces", Children: []ids.NodeID{interfaceID}})

	m.Top = []ids.NodeID{interfacesID}

	ms := &fakeModuleSet{
		modules:  map[ids.ModuleID]*model.Module{1: m},
		byPrefix: map[string]ids.ModuleID{"if": 1},
		byName:   map[string]ids.ModuleID{"if": 1},
	}
	return ms, m
}

func TestResolveAbsoluteNodeID(t *testing.T) {
	tree, home := buildFixture()
	node, err := ResolveAbsoluteNodeID(tree, []byte("/if:interfaces/if:interface"), home, AnyKind)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Name != "interface" || node.Kind != model.List {
		t.Fatalf("got %+v", node)
	}
}

func TestResolveAbsoluteNodeIDMissingPrefix(t *testing.T) {
	tree, home := buildFixture()
	if _, err := ResolveAbsoluteNodeID(tree, []byte("/interfaces"), home, AnyKind); !errors.Is(err, ErrMissingPrefix) {
		t.Fatalf("expected ErrMissingPrefix, got %v", err)
	}
}

func TestResolveDescendantThroughShorthandCase(t *testing.T) {
	tree, home := buildFixture()
	iface, err := ResolveAbsoluteNodeID(tree, []byte("/if:interfaces/if:interface"), home, AnyKind)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	// udp-port sits directly under the choice (shorthand case): the path
	// "transport/udp-port" must resolve straight through without naming
	// any case.
	node, err := ResolveDescendantNodeID(tree, iface, []byte("if:transport/if:udp-port"), AnyKind, DescendantOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Name != "udp-port" || node.Kind != model.Leaf {
		t.Fatalf("got %+v", node)
	}
}

func TestResolveDescendantThroughExplicitCase(t *testing.T) {
	tree, home := buildFixture()
	iface, err := ResolveAbsoluteNodeID(tree, []byte("/if:interfaces/if:interface"), home, AnyKind)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	node, err := ResolveDescendantNodeID(tree, iface, []byte("if:transport/if:tcp/if:tcp-port"), AnyKind, DescendantOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Name != "tcp-port" {
		t.Fatalf("got %+v", node)
	}
}

func TestResolveDescendantNotFound(t *testing.T) {
	tree, home := buildFixture()
	iface, _ := ResolveAbsoluteNodeID(tree, []byte("/if:interfaces/if:interface"), home, AnyKind)
	if _, err := ResolveDescendantNodeID(tree, iface, []byte("if:nope"), AnyKind, DescendantOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveDescendantForbidInnerList(t *testing.T) {
	tree, home := buildFixture()
	interfaces, err := ResolveAbsoluteNodeID(tree, []byte("/if:interfaces"), home, AnyKind)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	_, err = ResolveDescendantNodeID(tree, interfaces, []byte("if:interface/if:name"), AnyKind, DescendantOptions{ForbidInnerList: true})
	if !errors.Is(err, ErrInnerListForbidden) {
		t.Fatalf("expected ErrInnerListForbidden, got %v", err)
	}
}

func TestResolveChoiceDefaultShorthand(t *testing.T) {
	tree, home := buildFixture()
	iface, _ := ResolveAbsoluteNodeID(tree, []byte("/if:interfaces/if:interface"), home, AnyKind)
	transport, err := ResolveDescendantNodeID(tree, iface, []byte("if:transport"), KindsOf(model.Choice), DescendantOptions{})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	def, err := ResolveChoiceDefault(tree, "udp-port", transport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Kind != model.Leaf {
		t.Fatalf("got %+v", def)
	}
}

func TestResolveJSONSchemaNodeID(t *testing.T) {
	tree, home := buildFixture()
	node, err := ResolveJSONSchemaNodeID(tree, []byte(`/if:interfaces/if:interface`), &model.Node{ID: 0, Module: home.ID}, RPCFlavorNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Name != "interface" {
		t.Fatalf("got %+v", node)
	}
}
