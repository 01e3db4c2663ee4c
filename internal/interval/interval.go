// Package interval implements the range/length constraint engine: parsing
// a "min..max | c..d" restriction, checking it against a base type's
// effective interval set, and computing the resulting effective set.
//
// Bounds are carried as num.Dec (mantissa+scale) rather than floats so that
// containment across a derivation chain of decimal64 restrictions never
// loses precision to rounding.
package interval

import (
	"bytes"
	"fmt"

	"github.com/jacoelho/yangresolve/internal/num"
)

// Kind selects the numeric domain a Set's bounds are drawn from.
type Kind uint8

const (
	// Unsigned is the domain 0 .. 2^64-1 (uintN base types).
	Unsigned Kind = iota
	// Signed is the domain -2^63 .. 2^63-1 (intN base types).
	Signed
	// Decimal is decimal64's value space, scaled by fraction-digits.
	Decimal
)

// BoundKind distinguishes a literal bound from the "min"/"max" keyword,
// which resolves to the base type's effective extreme rather than a
// literal value.
type BoundKind uint8

const (
	BoundLiteral BoundKind = iota
	BoundMin
	BoundMax
)

// Bound is one endpoint of an Interval.
type Bound struct {
	Kind  BoundKind
	Value num.Dec
}

// Interval is an inclusive [Min, Max] range.
type Interval struct {
	Min, Max Bound
}

// Set is an ordered list of disjoint intervals over a single Kind.
type Set struct {
	Kind      Kind
	Intervals []Interval
}

// Violation is the failure mode of parsing or resolving a Set, carrying
// one of the four range/length error classes.
type Violation struct {
	Code    ViolationCode
	Message string
}

func (v *Violation) Error() string { return v.Message }

// ViolationCode enumerates the ways an interval restriction can be invalid.
type ViolationCode uint8

const (
	RangeNotContained ViolationCode = iota
	RangeOutOfOrder
	RangeSyntaxError
	DecimalPrecisionOverflow
)

func violationf(code ViolationCode, format string, args ...any) *Violation {
	return &Violation{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ParseSet parses a "min..max | c..d" restriction body. fractionDigits is
// only meaningful when kind == Decimal, scaling literal bounds so they
// compare exactly against bounds from other fraction-digits values in the
// same derivation chain.
func ParseSet(b []byte, kind Kind, fractionDigits uint32) (Set, error) {
	set := Set{Kind: kind}
	for _, part := range bytes.Split(b, []byte("|")) {
		part = bytes.TrimSpace(part)
		if len(part) == 0 {
			return Set{}, violationf(RangeSyntaxError, "empty interval segment")
		}
		iv, err := parseInterval(part, kind, fractionDigits)
		if err != nil {
			return Set{}, err
		}
		set.Intervals = append(set.Intervals, iv)
	}
	return set, nil
}

func parseInterval(b []byte, kind Kind, fractionDigits uint32) (Interval, error) {
	minBytes, maxBytes, hasRange := splitOnDotDot(b)
	min, err := parseBound(bytes.TrimSpace(minBytes), kind, fractionDigits)
	if err != nil {
		return Interval{}, err
	}
	if !hasRange {
		return Interval{Min: min, Max: min}, nil
	}
	max, err := parseBound(bytes.TrimSpace(maxBytes), kind, fractionDigits)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Min: min, Max: max}, nil
}

func splitOnDotDot(b []byte) (min, max []byte, hasRange bool) {
	for i := 0; i+1 < len(b); i++ {
		if b[i] == '.' && b[i+1] == '.' {
			return b[:i], b[i+2:], true
		}
	}
	return b, nil, false
}

func parseBound(b []byte, kind Kind, fractionDigits uint32) (Bound, error) {
	switch string(b) {
	case "min":
		return Bound{Kind: BoundMin}, nil
	case "max":
		return Bound{Kind: BoundMax}, nil
	}

	if kind == Decimal {
		dec, perr := num.ParseDec(b)
		if perr != nil {
			return Bound{}, violationf(RangeSyntaxError, "invalid decimal bound %q: %s", b, perr.Kind)
		}
		if dec.Scale > fractionDigits {
			return Bound{}, violationf(DecimalPrecisionOverflow,
				"bound %q has more fraction digits than fraction-digits %d allows", b, fractionDigits)
		}
		return Bound{Kind: BoundLiteral, Value: num.DecFromScaledInt(num.DecToScaledInt(dec, fractionDigits), fractionDigits)}, nil
	}

	n, perr := num.ParseInt(b)
	if perr != nil {
		return Bound{}, violationf(RangeSyntaxError, "invalid integer bound %q: %s", b, perr.Kind)
	}
	if kind == Unsigned && n.Sign < 0 {
		return Bound{}, violationf(RangeSyntaxError, "negative bound %q not valid in an unsigned range", b)
	}
	return Bound{Kind: BoundLiteral, Value: n.AsDec()}, nil
}

// Contains reports whether value falls within some interval of s.
func (s Set) Contains(value num.Dec) bool {
	for _, iv := range s.Intervals {
		if iv.Min.Value.Compare(value) <= 0 && value.Compare(iv.Max.Value) <= 0 {
			return true
		}
	}
	return false
}

// Resolve computes the effective interval set of a local restriction s
// against its already-resolved base set, per the YANG range/length
// containment rule: every local interval must fall entirely within one
// base interval, local intervals must be strictly ascending, and a bare
// "min"/"max" token inherits the base set's extreme bound. An unbounded
// (nil) local set inherits the base set verbatim.
func (s Set) Resolve(base Set) (Set, error) {
	if len(s.Intervals) == 0 {
		return base, nil
	}
	if len(base.Intervals) == 0 {
		return Set{}, violationf(RangeNotContained, "base type has no effective interval set")
	}

	resolved := Set{Kind: s.Kind, Intervals: make([]Interval, 0, len(s.Intervals))}
	baseMin := base.Intervals[0].Min.Value
	baseMax := base.Intervals[len(base.Intervals)-1].Max.Value

	var prevMax *num.Dec
	for _, iv := range s.Intervals {
		min := iv.Min.Value
		if iv.Min.Kind == BoundMin {
			min = baseMin
		}
		max := iv.Max.Value
		if iv.Max.Kind == BoundMax {
			max = baseMax
		}
		if min.Compare(max) > 0 {
			return Set{}, violationf(RangeOutOfOrder, "interval bounds out of order: %s > %s",
				renderDec(min), renderDec(max))
		}
		if prevMax != nil && min.Compare(*prevMax) <= 0 {
			return Set{}, violationf(RangeOutOfOrder, "interval %s..%s is not strictly after the previous interval",
				renderDec(min), renderDec(max))
		}

		if !containedInAny(base, min, max) {
			return Set{}, violationf(RangeNotContained, "interval %s..%s is not contained in the base interval set",
				renderDec(min), renderDec(max))
		}

		resolved.Intervals = append(resolved.Intervals, Interval{
			Min: Bound{Kind: BoundLiteral, Value: min},
			Max: Bound{Kind: BoundLiteral, Value: max},
		})
		m := max
		prevMax = &m
	}
	return resolved, nil
}

func containedInAny(base Set, min, max num.Dec) bool {
	for _, iv := range base.Intervals {
		if iv.Min.Value.Compare(min) <= 0 && max.Compare(iv.Max.Value) <= 0 {
			return true
		}
	}
	return false
}

func renderDec(d num.Dec) string {
	return string(d.RenderCanonical(nil))
}
