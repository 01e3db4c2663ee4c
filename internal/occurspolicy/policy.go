// Package occurspolicy centralizes the cardinality-consistency check a
// list or leaf-list's min-elements/max-elements pair must satisfy, using
// YANG's plain-uint64-plus-a-separate-unbounded-flag representation
// (model.Node's MaxElements/MaxUnbounded fields), since min-elements and
// max-elements are parsed as ordinary non-negative integers with no
// XSD-style "unbounded" literal sharing the same grammar slot.
package occurspolicy

// Issue enumerates the ways a min-elements/max-elements pair can be
// inconsistent.
type Issue uint8

const (
	// OK means the pair is internally consistent.
	OK Issue = iota
	// MinGreaterThanMax means a bounded max-elements is smaller than
	// min-elements, a combination no instance count could ever satisfy.
	MinGreaterThanMax
)

// CheckCardinality validates a list or leaf-list's min-elements/
// max-elements pair. maxUnbounded means "unbounded" was given, in which
// case maxElements is not meaningful and any minElements is consistent.
func CheckCardinality(minElements, maxElements uint64, maxUnbounded bool) Issue {
	if !maxUnbounded && maxElements < minElements {
		return MinGreaterThanMax
	}
	return OK
}
