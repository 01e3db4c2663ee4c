package yangresolve

import (
	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/unres"
)

// seedSchemaItems walks every module's as-parsed tree once and returns the
// initial schema worklist: everything a fresh parse leaves unresolved.
// Items that can only exist once some other item has already run (a
// grouping's expanded subtree's own uses, an augment's freshly spliced
// children's XPATH_REGISTER) are not seeded here — the resolvers that
// produce them emit them directly via the fixpoint driver's emit callback.
func seedSchemaItems(modules []*model.Module) []unres.SchemaItem {
	var items []unres.SchemaItem

	for _, m := range modules {
		for i := range m.Identities {
			identity := &m.Identities[i]
			if len(identity.BaseNames) > 0 {
				items = append(items, unres.SchemaItem{
					Kind: unres.IdentBase, Module: m.ID, Identity: identity.ID,
				})
			}
		}

		for i := range m.Types {
			t := &m.Types[i]
			if t.BaseName != "" {
				items = append(items, unres.SchemaItem{
					Kind: unres.TypeDerivation, Module: m.ID, Type: t.ID,
				})
			}
			if t.Category == model.Identityref && len(t.IdentityBaseNames) > 0 {
				items = append(items, unres.SchemaItem{
					Kind: unres.TypeIdentrefBase, Module: m.ID, Type: t.ID,
				})
			}
		}

		for i := range m.Features {
			f := &m.Features[i]
			for idx := range f.IfFeature {
				items = append(items, unres.SchemaItem{
					Kind: unres.IfFeature, Module: m.ID, Context: f.Name, Index: idx,
				})
			}
		}

		for i := range m.Augments {
			items = append(items, unres.SchemaItem{
				Kind: unres.AugmentTarget, Module: m.ID, Augment: ids.AugmentID(i + 1),
			})
		}

		for i := range m.Nodes {
			node := &m.Nodes[i]
			items = append(items, seedNodeItems(m, node)...)
		}
	}

	return items
}

// seedDataItems walks the instance tree rooted at the given nodes (the
// resolved schema's top-level data nodes, or, when flags carries RPCInput
// or RPCOutput, only the nodes under that side of every rpc's input/
// output split) and returns the initial data worklist: one WHEN_EVAL per
// node carrying a when, one MUST_EVAL per must, one LEAFREF/INSTANCE_ID
// per leafref- or instance-identifier-typed leaf, and
// EMPTY_NP_CONTAINER_PRUNE for every non-presence container.
func seedDataItems(modules []*model.Module, flags Flags) []unres.DataItem {
	var items []unres.DataItem
	for _, m := range modules {
		for i := range m.Nodes {
			node := &m.Nodes[i]
			if skipForRPCSide(m, node, flags) {
				continue
			}
			items = append(items, seedDataNodeItems(m, node)...)
		}
	}
	return items
}

// skipForRPCSide reports whether node should be excluded from data
// seeding because flags restricted resolution to one side of an rpc's
// input/output split and node falls under the other side. A node not
// under either input or output is never skipped.
func skipForRPCSide(m *model.Module, node *model.Node, flags Flags) bool {
	if !flags.Has(RPCInput) && !flags.Has(RPCOutput) {
		return false
	}
	for n := node; n != nil; {
		switch n.Kind {
		case model.Input:
			return !flags.Has(RPCInput)
		case model.Output:
			return !flags.Has(RPCOutput)
		}
		if n.Parent.IsZero() {
			return false
		}
		n = m.Node(n.Parent)
	}
	return false
}

func seedNodeItems(m *model.Module, node *model.Node) []unres.SchemaItem {
	var items []unres.SchemaItem

	for idx := range node.IfFeature {
		items = append(items, unres.SchemaItem{
			Kind: unres.IfFeature, Module: m.ID, Node: node.ID, Index: idx,
		})
	}

	if node.When != "" || len(node.Must) > 0 {
		items = append(items, unres.SchemaItem{Kind: unres.XPathRegister, Module: m.ID, Node: node.ID})
	}

	switch node.Kind {
	case model.Leaf, model.LeafList:
		if t := m.Type(node.Type); t != nil && t.Category == model.LeafrefType {
			items = append(items, unres.SchemaItem{Kind: unres.TypeLeafref, Module: m.ID, Node: node.ID})
		}
		if len(node.Default) > 0 {
			items = append(items, unres.SchemaItem{Kind: unres.TypeDefaultCheck, Module: m.ID, Node: node.ID})
		}
	case model.List:
		if len(node.KeyNames) > 0 {
			items = append(items, unres.SchemaItem{Kind: unres.ListKeys, Module: m.ID, Node: node.ID})
		}
		for idx := range node.Unique {
			items = append(items, unres.SchemaItem{Kind: unres.ListUnique, Module: m.ID, Node: node.ID, Index: idx})
		}
	case model.Choice:
		if node.DefaultCaseName != "" {
			items = append(items, unres.SchemaItem{Kind: unres.ChoiceDefault, Module: m.ID, Node: node.ID, Context: node.DefaultCaseName})
		}
	case model.Uses:
		items = append(items, unres.SchemaItem{Kind: unres.UsesExpand, Module: m.ID, Node: node.ID})
	}

	return items
}

func seedDataNodeItems(m *model.Module, node *model.Node) []unres.DataItem {
	var items []unres.DataItem

	if node.When != "" {
		items = append(items, unres.DataItem{Kind: unres.WhenEval, Module: m.ID, Node: node.ID})
	}
	for range node.Must {
		items = append(items, unres.DataItem{Kind: unres.MustEval, Module: m.ID, Node: node.ID})
	}

	switch node.Kind {
	case model.Container:
		if !node.Presence {
			items = append(items, unres.DataItem{Kind: unres.EmptyNPContainerPrune, Module: m.ID, Node: node.ID})
		}
	case model.Leaf, model.LeafList:
		if t := m.Type(node.Type); t != nil {
			switch t.Category {
			case model.LeafrefType:
				items = append(items, unres.DataItem{Kind: unres.Leafref, Module: m.ID, Node: node.ID})
			case model.InstanceIdentifier:
				items = append(items, unres.DataItem{Kind: unres.InstanceID, Module: m.ID, Node: node.ID})
			}
		}
	}

	return items
}
