// Package typechain walks a YANG type's derivation chain — the base
// links a "type" statement under a leaf, leaf-list or typedef forms when
// it names another typedef instead of a built-in directly — resolving
// each link's lexical base name to a concrete model.Type and computing
// the effective interval/pattern/enum/bit set a derived type's own
// invariant requires: its effective constraints are the intersection
// of its own local restrictions with its base's already-computed
// effective constraints, all the way up to a built-in.
//
// Grounding: a visited-set-bounded walk from a type to its ultimate base,
// driven one step at a time, generalized to YANG's ids.TypeID-indexed
// arena, where a cross-module base reference is resolved and cloned into
// the referencing type's own module once (by internal/expand's
// cloneTypeChain) rather than looked up by name on every walk.
package typechain

import (
	"errors"
	"fmt"

	"github.com/jacoelho/yangresolve/internal/ids"
	"github.com/jacoelho/yangresolve/internal/interval"
	"github.com/jacoelho/yangresolve/internal/model"
	"github.com/jacoelho/yangresolve/internal/num"
	"github.com/jacoelho/yangresolve/internal/pathparse"
)

// ModuleSet is the minimal cross-module collaborator type derivation
// needs: dereferencing a module by ID and resolving an import prefix.
type ModuleSet interface {
	Module(id ids.ModuleID) *model.Module
	ResolveImportPrefix(home *model.Module, prefix string) (*model.Module, bool)
}

var (
	// ErrBaseNotFound means a type's BaseName did not name a typedef
	// visible from its declaring module.
	ErrBaseNotFound = errors.New("typechain: base type name does not resolve to a known typedef")

	// ErrDerivationCycle means following Base links returned to a type
	// already on the current walk, which identity-DAG-style cycle
	// detection must reject as a hard error rather than loop forever.
	ErrDerivationCycle = errors.New("typechain: type derivation chain contains a cycle")
)

// maxDerivationDepth bounds CollectDerivationChain the same way the
// teacher's CollectComplexTypeChain bounds its own walk: a legitimate
// typedef chain is never this deep, so hitting the bound means a cycle
// slipped past resolution.
const maxDerivationDepth = 1000

// ResolveBaseName resolves t's lexical BaseName (set by the parser,
// cleared once Base is filled in) against home's typedef scope,
// returning the owning module and the base Type it names. A name with no
// module prefix is looked up in home; a prefixed name resolves the prefix
// via tree first. Returns ok=false (not an error) when the base typedef
// has not been registered yet — TYPE_DERIVATION's caller defers and
// retries on fixpoint's next pass.
func ResolveBaseName(tree ModuleSet, home *model.Module, baseName string) (*model.Module, *model.Type, bool, error) {
	id, _, err := pathparse.ParseNodeIdentifier([]byte(baseName))
	if err != nil {
		return nil, nil, false, err
	}
	owner := home
	if len(id.Module) > 0 {
		m, ok := tree.ResolveImportPrefix(home, string(id.Module))
		if !ok {
			return nil, nil, false, fmt.Errorf("typechain: %w: module prefix %q", ErrBaseNotFound, id.Module)
		}
		owner = m
	}
	typeID, ok := owner.TypeByName(string(id.Name))
	if !ok {
		return owner, nil, false, nil
	}
	return owner, owner.Type(typeID), true, nil
}

// ResolveTypeDerivation fills in t.Base (cloning the base type chain into
// home's own arena via clone when owner != home) and computes t's
// effective range/length/patterns/enums/bits once its base is itself
// fully resolved. Returns resolved=false (not an error) to signal
// TYPE_DERIVATION should be retried once the base typedef exists or has
// finished resolving, the way a deferred uses does in internal/globaldecl's
// grouping gate.
func ResolveTypeDerivation(tree ModuleSet, home *model.Module, t *model.Type, clone func(owner *model.Module, baseID ids.TypeID) ids.TypeID) (resolved bool, err error) {
	if t.BaseName == "" {
		return resolveEffective(t, implicitBase(t))
	}

	owner, base, ok, err := ResolveBaseName(tree, home, t.BaseName)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if base.BaseName != "" {
		// base itself still carries an unresolved BaseName; defer until
		// its own TYPE_DERIVATION item resolves first (Round A retries
		// bottom-up on the derivation chain the same way it does on the
		// grouping DAG).
		return false, nil
	}
	if base.Base.IsZero() {
		// a built-in-rooted typedef is seeded no TYPE_DERIVATION item of
		// its own, so its effective sets are computed here before use.
		if _, err := resolveEffective(base, implicitBase(base)); err != nil {
			return false, err
		}
	}

	baseID := base.ID
	if owner.ID != home.ID {
		baseID = clone(owner, base.ID)
		base = home.Type(baseID)
		if fresh := home.Type(t.ID); fresh != nil {
			t = fresh // cloning may have grown home's type arena
		}
	}
	t.Base = baseID
	t.BaseName = ""

	return resolveEffective(t, base)
}

// implicitBase returns the synthetic base type carrying the implicit
// numeric/length domain a direct (non-typedef-indirected) use of an
// integral, decimal64 or string/binary built-in carries even when no
// explicit range/length statement names one, or nil for a category with
// no such implicit domain (enumeration/bits members are always locally
// declared; boolean/empty/union/identityref/leafref/instance-identifier
// have no interval-shaped domain at all).
func implicitBase(t *model.Type) *model.Type {
	switch {
	case t.Category.IsIntegral():
		return &model.Type{EffectiveRange: BuiltinRange(t.Category)}
	case t.Category == model.String || t.Category == model.Binary:
		return &model.Type{EffectiveLength: BuiltinLength()}
	case t.Category == model.Decimal64:
		return &model.Type{EffectiveRange: decimal64ImplicitRange(t.FractionDigits)}
	default:
		return nil
	}
}

// decimal64ImplicitRange returns decimal64's implicit value space: the
// full int64 mantissa range scaled by fractionDigits, since a decimal64
// value is always stored as a 64-bit integer times 10^-fraction-digits.
func decimal64ImplicitRange(fractionDigits uint32) interval.Set {
	min := num.DecFromScaledInt(num.FromInt64(-9223372036854775808), fractionDigits)
	max := num.DecFromScaledInt(num.FromInt64(9223372036854775807), fractionDigits)
	return interval.Set{
		Kind: interval.Decimal,
		Intervals: []interval.Interval{{
			Min: interval.Bound{Kind: interval.BoundLiteral, Value: min},
			Max: interval.Bound{Kind: interval.BoundLiteral, Value: max},
		}},
	}
}

// resolveEffective computes t's effective constraint sets against base
// (nil for a built-in with no typedef indirection, in which case t's own
// local restriction stands as its effective set verbatim).
func resolveEffective(t *model.Type, base *model.Type) (bool, error) {
	if base == nil {
		t.EffectiveRange = t.Range
		t.EffectiveLength = t.Length
		return true, nil
	}

	if len(t.Range.Intervals) > 0 || len(base.EffectiveRange.Intervals) > 0 {
		eff, err := t.Range.Resolve(base.EffectiveRange)
		if err != nil {
			return false, err
		}
		t.EffectiveRange = eff
	}
	if len(t.Length.Intervals) > 0 || len(base.EffectiveLength.Intervals) > 0 {
		eff, err := t.Length.Resolve(base.EffectiveLength)
		if err != nil {
			return false, err
		}
		t.EffectiveLength = eff
	}
	if len(t.Patterns) == 0 {
		t.Patterns = base.Patterns
	} else {
		t.Patterns = append(append([]string{}, base.Patterns...), t.Patterns...)
	}
	if len(t.Enums) == 0 {
		t.Enums = base.Enums
	}
	if len(t.Bits) == 0 {
		t.Bits = base.Bits
	}
	if t.FractionDigits == 0 {
		t.FractionDigits = base.FractionDigits
	}
	if len(t.IdentityBases) == 0 {
		t.IdentityBases = base.IdentityBases
	}
	if t.LeafrefPath == "" {
		t.LeafrefPath = base.LeafrefPath
		t.LeafrefRelative = base.LeafrefRelative
	}
	return true, nil
}

// CollectDerivationChain walks t's Base links within a single module
// arena (cross-module bases are already cloned local by the time Base is
// set, per ResolveTypeDerivation), from t to its ultimate built-in,
// bounded by maxDerivationDepth to turn a cycle that slipped past
// resolution into a reported error instead of an infinite loop.
func CollectDerivationChain(home *model.Module, t *model.Type) ([]*model.Type, error) {
	var chain []*model.Type
	visited := make(map[ids.TypeID]bool)
	cur := t
	for cur != nil {
		if visited[cur.ID] {
			return nil, ErrDerivationCycle
		}
		visited[cur.ID] = true
		chain = append(chain, cur)
		if len(chain) > maxDerivationDepth {
			return nil, ErrDerivationCycle
		}
		if cur.Base.IsZero() {
			break
		}
		cur = home.Type(cur.Base)
	}
	return chain, nil
}

// BuiltinRange returns the built-in numeric domain for an integral
// category, the implicit base every integer typedef chain ultimately
// bottoms out at even though no explicit "range" statement names it.
func BuiltinRange(category model.Category) interval.Set {
	switch category {
	case model.Int8:
		return boundedSet(interval.Signed, -128, 127)
	case model.Int16:
		return boundedSet(interval.Signed, -32768, 32767)
	case model.Int32:
		return boundedSet(interval.Signed, -2147483648, 2147483647)
	case model.Int64:
		return boundedSet(interval.Signed, -9223372036854775808, 9223372036854775807)
	case model.Uint8:
		return boundedSet(interval.Unsigned, 0, 255)
	case model.Uint16:
		return boundedSet(interval.Unsigned, 0, 65535)
	case model.Uint32:
		return boundedSet(interval.Unsigned, 0, 4294967295)
	case model.Uint64:
		return unsignedSet(0, "18446744073709551615")
	default:
		return interval.Set{}
	}
}

// BuiltinLength returns the built-in length domain (0 to the maximum
// representable count) every string/binary typedef chain bottoms out at.
func BuiltinLength() interval.Set {
	return unsignedSet(0, "18446744073709551615")
}

func boundedSet(kind interval.Kind, min, max int64) interval.Set {
	return interval.Set{
		Kind: kind,
		Intervals: []interval.Interval{{
			Min: interval.Bound{Kind: interval.BoundLiteral, Value: num.FromInt64(min).AsDec()},
			Max: interval.Bound{Kind: interval.BoundLiteral, Value: num.FromInt64(max).AsDec()},
		}},
	}
}

func unsignedSet(min int64, max string) interval.Set {
	maxInt, err := num.ParseInt([]byte(max))
	if err != nil {
		return interval.Set{}
	}
	return interval.Set{
		Kind: interval.Unsigned,
		Intervals: []interval.Interval{{
			Min: interval.Bound{Kind: interval.BoundLiteral, Value: num.FromInt64(min).AsDec()},
			Max: interval.Bound{Kind: interval.BoundLiteral, Value: maxInt.AsDec()},
		}},
	}
}
