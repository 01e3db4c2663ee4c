package expand

import (
	"fmt"

	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/pathparse"
)

// applyRefine resolves r's TargetNodeID against the uses site's own
// freshly cloned subtree (top holds the new top-level child IDs, in the
// grouping's declared order) and merges r's overrides onto the match.
//
// A refine's target nodeid is always a descendant path relative to the
// uses statement itself, so resolving it needs none of schematree's
// cross-module prefix machinery beyond matching an optional prefix
// against dst's own — refine statements do not name nodes outside the
// module the uses statement was written in.
func applyRefine(dst *model.Module, top []ids.NodeID, r *model.Refine) error {
	segs, absolute, _, err := pathparse.ParseSchemaNodeID([]byte(r.TargetNodeID))
	if err != nil {
		return err
	}
	if absolute {
		return fmt.Errorf("expand: refine target %q must be a descendant nodeid", r.TargetNodeID)
	}

	cur := top
	var matched *model.Node
	for _, seg := range segs {
		if len(seg.Module) > 0 && string(seg.Module) != dst.Prefix {
			return fmt.Errorf("expand: refine target %q names a foreign module", r.TargetNodeID)
		}
		var next *model.Node
		for _, childID := range cur {
			child := dst.Node(childID)
			if child.Name == string(seg.Name) {
				next = child
				break
			}
		}
		if next == nil {
			return ErrRefineTarget
		}
		matched = next
		cur = next.Children
	}
	if matched == nil {
		return ErrRefineTarget
	}
	return mergeRefine(dst, matched, r)
}

// mergeRefine applies every non-nil field of r onto target, enforcing a
// refine compatibility matrix (an attribute may only be refined on the
// node kinds it is meaningful for) and tracking config as explicitly set
// so later config-inheritance passes do not overwrite it.
func mergeRefine(dst *model.Module, target *model.Node, r *model.Refine) error {
	if r.Config != nil {
		target.Config = *r.Config
		target.ConfigSet = true
		if !target.Config {
			for _, childID := range target.Children {
				propagateConfigFalse(dst, childID)
			}
		}
	}
	if r.Mandatory != nil {
		switch target.Kind {
		case model.Leaf, model.Choice, model.AnyXML, model.AnyData:
			target.Mandatory = *r.Mandatory
		default:
			return fmt.Errorf("%w: mandatory on %s", ErrRefineIncompatible, nodeKindName(target.Kind))
		}
	}
	if r.Presence != nil {
		if target.Kind != model.Container {
			return fmt.Errorf("%w: presence on %s", ErrRefineIncompatible, nodeKindName(target.Kind))
		}
		target.Presence = *r.Presence
	}
	if r.MinElements != nil {
		switch target.Kind {
		case model.List, model.LeafList:
			target.MinElements = *r.MinElements
		default:
			return fmt.Errorf("%w: min-elements on %s", ErrRefineIncompatible, nodeKindName(target.Kind))
		}
	}
	if r.MaxElements != nil {
		switch target.Kind {
		case model.List, model.LeafList:
			target.MaxElements = *r.MaxElements
			target.MaxUnbounded = r.MaxUnbounded != nil && *r.MaxUnbounded
		default:
			return fmt.Errorf("%w: max-elements on %s", ErrRefineIncompatible, nodeKindName(target.Kind))
		}
	}
	if len(r.Must) > 0 {
		target.Must = append(append([]model.MustCondition(nil), target.Must...), r.Must...)
	}
	if len(r.Default) > 0 {
		switch target.Kind {
		case model.LeafList:
			target.Default = append(append([]string(nil), target.Default...), r.Default...)
		case model.Leaf, model.Choice:
			target.Default = r.Default
		default:
			return fmt.Errorf("%w: default on %s", ErrRefineIncompatible, nodeKindName(target.Kind))
		}
	}
	if len(r.IfFeature) > 0 {
		target.IfFeature = append(append([]string(nil), target.IfFeature...), r.IfFeature...)
	}
	return nil
}
