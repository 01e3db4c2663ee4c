package model

import (
	"testing"
)

func TestModuleNodeLookup(t *testing.T) {
	m := &Module{Nodes: []Node{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}
	if got := m.Node(1); got == nil || got.Name != "a" {
		t.Fatalf("Node(1) = %+v, want name a", got)
	}
	if got := m.Node(2); got == nil || got.Name != "b" {
		t.Fatalf("Node(2) = %+v, want name b", got)
	}
	if got := m.Node(3); got != nil {
		t.Fatalf("Node(3) = %+v, want nil", got)
	}
	if got := m.Node(0); got != nil {
		t.Fatalf("Node(0) = %+v, want nil", got)
	}
}

func TestNodeAcceptsChildren(t *testing.T) {
	if !Container.AcceptsDataDefinitionChildren() {
		t.Fatal("Container should accept data-definition children")
	}
	if Choice.AcceptsDataDefinitionChildren() {
		t.Fatal("Choice should not accept plain data-definition children")
	}
	if !Choice.AcceptsCaseChildren() {
		t.Fatal("Choice should accept case children")
	}
}

func TestNodeIsZero(t *testing.T) {
	var n *Node
	if !n.IsZero() {
		t.Fatal("nil *Node should be zero")
	}
	populated := &Node{ID: 1, Name: "leaf"}
	if populated.IsZero() {
		t.Fatal("populated node should not be zero")
	}
}
