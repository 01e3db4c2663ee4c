package schematree

import (
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/pathparse"
)

// WalkSteps resolves a sequence of already-parsed node-identifier segments
// starting from pos against home's import table, the same
// one-segment-at-a-time engine ResolveAbsoluteNodeID/ResolveDescendantNodeID
// drive. internal/leafref reuses it directly: a leafref path-arg's steps
// are node-identifiers too, just parsed by a different top-level grammar
// (path-arg, not schema-nodeid) that also carries path-predicates walk
// doesn't need to know about.
func WalkSteps(tree ModuleSet, home *model.Module, pos Position, segs []pathparse.NodeIdentifier, accept KindSet, opts DescendantOptions) (*model.Node, error) {
	return walk(tree, home, pos, segs, accept, opts)
}
