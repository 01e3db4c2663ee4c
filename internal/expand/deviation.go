package expand

import (
	"errors"
	"fmt"

	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/schematree"
)

// ErrDeviationOrder means a deviation names "not-supported" alongside any
// other deviate record, which must be the only entry when present (a
// target cannot be both removed and adjusted).
var ErrDeviationOrder = errors.New("expand: not-supported must be the only deviate record for a deviation")

// ErrDeviateExists means a deviate "add" named a property the target
// already carries.
var ErrDeviateExists = errors.New("expand: deviate names a property the target already carries")

// ErrDeviateMissing means a deviate "delete" or "replace" named a value
// (or property) the target does not currently carry.
var ErrDeviateMissing = errors.New("expand: deviate names a value the target does not carry")

// ApplyDeviation resolves dev's absolute target and applies each deviate
// record in order, marking the declaring module deviated and, for every
// deviate other than not-supported, the target's owning module
// implemented (the transitive deviated/implemented module marking rule).
func ApplyDeviation(tree ModuleSet, home *model.Module, dev *model.Deviation) error {
	target, err := schematree.ResolveAbsoluteNodeID(tree, []byte(dev.TargetNodeID), home, schematree.AnyKind)
	if err != nil {
		return err
	}
	dev.Target = target.ID

	home.Deviated = true

	if len(dev.Deviates) > 1 {
		for _, d := range dev.Deviates {
			if d.Mode == model.NotSupported {
				return ErrDeviationOrder
			}
		}
	}

	targetModule := tree.Module(target.Module)
	for _, d := range dev.Deviates {
		if d.Mode == model.NotSupported {
			RemoveNode(targetModule, target)
			continue
		}
		targetModule.Implemented = true
		if err := applyDeviate(targetModule, target, d); err != nil {
			return err
		}
	}
	return nil
}

// RemoveNode structurally drops target from the schema tree: from its
// parent's Children, or from the module's top-level list if it has no
// parent. Deviation's "not-supported" and an if-feature condition that
// evaluates false both remove a node this way at compile time, unlike the
// data-time Deleted bookkeeping a when condition produces on an instance
// node.
func RemoveNode(module *model.Module, target *model.Node) {
	if target.Parent.IsZero() {
		module.Top = removeNodeID(module.Top, target.ID)
		return
	}
	parent := module.Node(target.Parent)
	parent.Children = removeNodeID(parent.Children, target.ID)
}

func removeNodeID(from []ids.NodeID, id ids.NodeID) []ids.NodeID {
	kept := make([]ids.NodeID, 0, len(from))
	for _, n := range from {
		if n != id {
			kept = append(kept, n)
		}
	}
	return kept
}

func applyDeviate(targetModule *model.Module, target *model.Node, d model.Deviate) error {
	switch d.Mode {
	case model.DeviateAdd:
		return deviateAdd(targetModule, target, d)
	case model.DeviateDelete:
		return deviateDelete(target, d)
	case model.DeviateReplace:
		return deviateReplace(targetModule, target, d)
	default:
		return fmt.Errorf("expand: unknown deviate mode %d", d.Mode)
	}
}

// deviateAdd may only add a property the target does not already carry: a
// union with what was not there, never an overwrite. Must/unique are
// always additive by nature (a node can carry any number of them), so
// they need no presence check; default still rejects an exact duplicate
// so the same value cannot be added twice.
func deviateAdd(targetModule *model.Module, target *model.Node, d model.Deviate) error {
	if d.Type != nil {
		if !target.Type.IsZero() {
			return fmt.Errorf("%w: type on %q", ErrDeviateExists, target.Name)
		}
		target.Type = *d.Type
	}
	if d.Units != nil {
		if target.Units != "" {
			return fmt.Errorf("%w: units on %q", ErrDeviateExists, target.Name)
		}
		target.Units = *d.Units
	}
	if d.Config != nil {
		if target.ConfigSet {
			return fmt.Errorf("%w: config on %q", ErrDeviateExists, target.Name)
		}
		setConfig(targetModule, target, *d.Config)
	}
	if d.Mandatory != nil {
		if target.Mandatory {
			return fmt.Errorf("%w: mandatory on %q", ErrDeviateExists, target.Name)
		}
		target.Mandatory = *d.Mandatory
	}
	if d.MinElements != nil {
		if target.MinElements != 0 {
			return fmt.Errorf("%w: min-elements on %q", ErrDeviateExists, target.Name)
		}
		target.MinElements = *d.MinElements
	}
	if d.MaxElements != nil {
		if target.MaxElements != 0 || target.MaxUnbounded {
			return fmt.Errorf("%w: max-elements on %q", ErrDeviateExists, target.Name)
		}
		target.MaxElements = *d.MaxElements
		target.MaxUnbounded = d.MaxUnbounded != nil && *d.MaxUnbounded
	}
	if len(d.Must) > 0 {
		target.Must = append(target.Must, d.Must...)
	}
	if len(d.Default) > 0 {
		for _, v := range d.Default {
			if containsString(target.Default, v) {
				return fmt.Errorf("%w: default %q on %q", ErrDeviateExists, v, target.Name)
			}
		}
		target.Default = append(target.Default, d.Default...)
	}
	if len(d.Unique) > 0 {
		target.Unique = append(target.Unique, d.Unique...)
	}
	return nil
}

// deviateDelete removes a property, requiring every value named in d to
// match one currently present on target exactly; a name with no match is
// an error rather than a silent no-op.
func deviateDelete(target *model.Node, d model.Deviate) error {
	if len(d.Must) > 0 {
		kept, removed := removeMustConditions(target.Must, d.Must)
		if removed != len(d.Must) {
			return fmt.Errorf("%w: must on %q", ErrDeviateMissing, target.Name)
		}
		target.Must = kept
	}
	if len(d.Default) > 0 {
		kept, removed := removeStrings(target.Default, d.Default)
		if removed != len(d.Default) {
			return fmt.Errorf("%w: default on %q", ErrDeviateMissing, target.Name)
		}
		target.Default = kept
	}
	if len(d.Unique) > 0 {
		kept, removed := removeUniqueSets(target.Unique, d.Unique)
		if removed != len(d.Unique) {
			return fmt.Errorf("%w: unique on %q", ErrDeviateMissing, target.Name)
		}
		target.Unique = kept
	}
	return nil
}

// deviateReplace overwrites a property wholesale, requiring the target to
// already carry it. Type, units, config and default each have a tracked
// "unset" zero value this package can check; mandatory/min-elements/
// max-elements have no such tracking (their zero values are also valid,
// explicitly declared values), so replace accepts them unconditionally —
// the same gap deviateAdd's analogous checks on those three fields paper
// over with a same-value heuristic rather than true presence tracking.
func deviateReplace(targetModule *model.Module, target *model.Node, d model.Deviate) error {
	if d.Type != nil {
		if target.Type.IsZero() {
			return fmt.Errorf("%w: type on %q", ErrDeviateMissing, target.Name)
		}
		target.Type = *d.Type
	}
	if d.Units != nil {
		if target.Units == "" {
			return fmt.Errorf("%w: units on %q", ErrDeviateMissing, target.Name)
		}
		target.Units = *d.Units
	}
	if d.Config != nil {
		if !target.ConfigSet {
			return fmt.Errorf("%w: config on %q", ErrDeviateMissing, target.Name)
		}
		setConfig(targetModule, target, *d.Config)
	}
	if d.Mandatory != nil {
		target.Mandatory = *d.Mandatory
	}
	if d.MinElements != nil {
		target.MinElements = *d.MinElements
	}
	if d.MaxElements != nil {
		target.MaxElements = *d.MaxElements
		target.MaxUnbounded = d.MaxUnbounded != nil && *d.MaxUnbounded
	}
	if len(d.Default) > 0 {
		if len(target.Default) == 0 {
			return fmt.Errorf("%w: default on %q", ErrDeviateMissing, target.Name)
		}
		target.Default = d.Default
	}
	return nil
}

// setConfig applies a config override to target and, when it flips to
// false, propagates that downward into every descendant not already
// carrying its own explicit config mark.
func setConfig(targetModule *model.Module, target *model.Node, cfg bool) {
	target.Config = cfg
	target.ConfigSet = true
	if !cfg {
		for _, childID := range target.Children {
			propagateConfigFalse(targetModule, childID)
		}
	}
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func removeMustConditions(from, remove []model.MustCondition) ([]model.MustCondition, int) {
	var kept []model.MustCondition
	removed := 0
	for _, m := range from {
		drop := false
		for _, r := range remove {
			if m.XPath == r.XPath {
				drop = true
				break
			}
		}
		if drop {
			removed++
		} else {
			kept = append(kept, m)
		}
	}
	return kept, removed
}

func removeStrings(from, remove []string) ([]string, int) {
	var kept []string
	removed := 0
	for _, s := range from {
		drop := false
		for _, r := range remove {
			if s == r {
				drop = true
				break
			}
		}
		if drop {
			removed++
		} else {
			kept = append(kept, s)
		}
	}
	return kept, removed
}

func removeUniqueSets(from, remove [][]string) ([][]string, int) {
	var kept [][]string
	removed := 0
	for _, set := range from {
		drop := false
		for _, r := range remove {
			if sameStringSet(set, r) {
				drop = true
				break
			}
		}
		if drop {
			removed++
		} else {
			kept = append(kept, set)
		}
	}
	return kept, removed
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
