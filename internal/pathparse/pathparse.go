// Package pathparse implements the recognizers for YANG's path and
// identifier textual sub-languages: identifiers, node-identifiers,
// schema-nodeids, leafref path-arg expressions (with embedded
// path-predicates and path-key-exprs), instance-identifiers, and the two
// predicate flavors (data-instance and JSON-schema).
//
// Every parser takes a byte slice and returns the number of bytes it
// consumed; on failure it returns a *SyntaxError carrying the byte offset
// of the first bad character, for pointing a diagnostic at the source.
// Parsers hand back slices into the input rather than copying.
package pathparse

import "fmt"

// SyntaxError is returned by every parser in this package on a malformed
// input, carrying the offset (relative to the start of the parse) at
// which the bad character was found.
type SyntaxError struct {
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Reason)
}

func syntaxErrorf(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

func isWSP(c byte) bool {
	return c == ' ' || c == '\t'
}

func skipWSP(b []byte, i int) int {
	for i < len(b) && isWSP(b[i]) {
		i++
	}
	return i
}
