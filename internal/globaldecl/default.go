package globaldecl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jacoelho/yangresolve/internal/fixpoint"
	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/num"
	"github.com/jacoelho/yangresolve/internal/pathparse"
	"github.com/jacoelho/yangresolve/internal/unres"
)

// maxIdentityWalk bounds resolveTypeDefaultCheck's identity-base walk the
// same way internal/typechain.maxDerivationDepth bounds a type chain: the
// identity-DAG acyclicity invariant should make a cycle here impossible,
// but a bound turns one that slipped past validation into a "not
// derived" verdict instead of an infinite loop.
const maxIdentityWalk = 10000

// resolveTypeDefaultCheck validates every value in node.Default against
// its resolved type's effective constraints. Only a leaf or leaf-list's
// own default is checked here: a typedef-level default has no home on
// model.Type, so a typedef's "default" statement is scoped out of this
// resolver entirely (a node that uses the typedef without its own
// override still gets its default from the typedef at data-instantiation
// time, which is internal/leafref and the eventual data-resolution
// path's concern, not a schema-time structural check).
func (e *Env) resolveTypeDefaultCheck(item unres.SchemaItem) (fixpoint.Outcome, error) {
	home := e.Tree.Module(item.Module)
	if home == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: type-default-check item names an unknown module")
	}
	node := home.Node(item.Node)
	if node == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: type-default-check item names no node")
	}
	t := home.Type(node.Type)
	if t == nil {
		return fixpoint.Failed, fmt.Errorf("globaldecl: type-default-check item on %q names no type", node.Name)
	}

	for _, value := range node.Default {
		if err := e.checkDefaultValue(home, t, value); err != nil {
			return fixpoint.Failed, fmt.Errorf("globaldecl: leaf %q: %w", node.Name, err)
		}
	}
	return fixpoint.Resolved, nil
}

func (e *Env) checkDefaultValue(home *model.Module, t *model.Type, value string) error {
	switch t.Category {
	case model.Int8, model.Int16, model.Int32, model.Int64,
		model.Uint8, model.Uint16, model.Uint32, model.Uint64:
		n, perr := num.ParseInt([]byte(value))
		if perr != nil {
			return fmt.Errorf("default %q is not a valid integer: %v", value, perr)
		}
		if len(t.EffectiveRange.Intervals) > 0 && !t.EffectiveRange.Contains(n.AsDec()) {
			return fmt.Errorf("default %q is outside %s's range", value, t.Name)
		}
	case model.Decimal64:
		d, perr := num.ParseDec([]byte(value))
		if perr != nil {
			return fmt.Errorf("default %q is not a valid decimal64: %v", value, perr)
		}
		if len(t.EffectiveRange.Intervals) > 0 && !t.EffectiveRange.Contains(d) {
			return fmt.Errorf("default %q is outside %s's range", value, t.Name)
		}
	case model.String, model.Binary:
		length := num.FromInt64(int64(len(value))).AsDec()
		if len(t.EffectiveLength.Intervals) > 0 && !t.EffectiveLength.Contains(length) {
			return fmt.Errorf("default %q has invalid length for %s", value, t.Name)
		}
		for _, pattern := range t.Patterns {
			if !matchPattern(pattern, value) {
				return fmt.Errorf("default %q does not match pattern %q", value, pattern)
			}
		}
	case model.Enumeration:
		found := false
		for _, en := range t.Enums {
			if en.Name == value {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("default %q is not a member of enumeration %s", value, t.Name)
		}
	case model.Bits:
		for _, name := range strings.Fields(value) {
			found := false
			for _, b := range t.Bits {
				if b.Name == name {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("default bit %q is not a member of %s", name, t.Name)
			}
		}
	case model.Boolean:
		if value != "true" && value != "false" {
			return fmt.Errorf("default %q is not a valid boolean", value)
		}
	case model.Identityref:
		owner, id, ok, err := resolveIdentityName(e.Tree, home, value)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("default %q does not name a known identity", value)
		}
		if !identityDerivesFromAny(e.Tree, owner, id, t.IdentityBases) {
			return fmt.Errorf("default %q is not derived from any base identity of %s", value, t.Name)
		}
	case model.InstanceIdentifier:
		if _, _, err := pathparse.ParseInstanceIdentifier([]byte(value)); err != nil {
			return fmt.Errorf("default %q is not a syntactically valid instance-identifier: %v", value, err)
		}
	case model.Union:
		return e.checkUnionDefault(home, t, value)
	case model.LeafrefType, model.Empty:
		// A leafref default cannot be checked before its target exists, and
		// checking against the target's type belongs to the same
		// resolution step as TYPE_LEAFREF itself, not here; empty carries
		// no value space to check against.
	}
	return nil
}

// checkUnionDefault accepts value if it validates against at least one
// union member, mirroring how a leaf instance is matched against a union
// type's members in declaration order.
func (e *Env) checkUnionDefault(home *model.Module, t *model.Type, value string) error {
	var lastErr error
	for _, memberID := range t.UnionMembers {
		member := home.Type(memberID)
		if member == nil {
			continue
		}
		if err := e.checkDefaultValue(home, member, value); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	if lastErr == nil {
		return fmt.Errorf("default %q matches no member of union %s", value, t.Name)
	}
	return fmt.Errorf("default %q matches no member of union %s: %w", value, t.Name, lastErr)
}

// matchPattern anchors pattern to the whole value, as YANG's pattern
// statement requires, and treats a pattern this engine cannot compile
// (some W3C-regex constructs have no RE2 equivalent) as non-restrictive
// rather than failing an otherwise valid default outright.
func matchPattern(pattern, value string) bool {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return true
	}
	return re.MatchString(value)
}

// identityDerivesFromAny reports whether the identity (module, id) is
// itself one of bases or transitively derives from one, walking Bases
// links breadth-first.
func identityDerivesFromAny(tree ModuleSet, module *model.Module, id ids.IdentityID, bases []ids.Ref[ids.IdentityID]) bool {
	type step struct {
		module ids.ModuleID
		id     ids.IdentityID
	}
	visited := make(map[step]bool)
	queue := []step{{module.ID, id}}
	for len(queue) > 0 && len(visited) < maxIdentityWalk {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		for _, b := range bases {
			if b.Module == cur.module && b.Index == cur.id {
				return true
			}
		}
		m := tree.Module(cur.module)
		if m == nil {
			continue
		}
		identity := m.Identity(cur.id)
		if identity == nil {
			continue
		}
		for _, base := range identity.Bases {
			queue = append(queue, step{base.Module, base.Index})
		}
	}
	return false
}
