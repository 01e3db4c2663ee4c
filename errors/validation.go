// Package errors defines the resolver's diagnostic record shape and its
// exhaustive error-code taxonomy.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Code is one of the exhaustive error kinds a resolution run can report.
type Code string

const (
	// Path syntax (internal/pathparse micro-parsers).
	CodePathInChar  Code = "PATH_INCHAR"
	CodePathInMod   Code = "PATH_INMOD"
	CodePathMissMod Code = "PATH_MISSMOD"
	CodePathInNode  Code = "PATH_INNODE"
	CodePathInKey   Code = "PATH_INKEY"
	CodePathMissKey Code = "PATH_MISSKEY"
	CodePathExists  Code = "PATH_EXISTS"
	CodePathMissPar Code = "PATH_MISSPAR"

	// Identifier / statement shape.
	CodeInID          Code = "INID"
	CodeInMod         Code = "INMOD"
	CodeInStmt        Code = "INSTMT"
	CodeInChildStmt   Code = "INCHILDSTMT"
	CodeMissStmt      Code = "MISSSTMT"
	CodeMissChildStmt Code = "MISSCHILDSTMT"
	CodeMissArg       Code = "MISSARG"
	CodeTooMany       Code = "TOOMANY"
	CodeDupID         Code = "DUPID"

	// Keys / unique.
	CodeKeyNLeaf  Code = "KEY_NLEAF"
	CodeKeyType   Code = "KEY_TYPE"
	CodeKeyConfig Code = "KEY_CONFIG"
	CodeKeyMiss   Code = "KEY_MISS"
	CodeKeyDup    Code = "KEY_DUP"
	CodeNoUniq    Code = "NOUNIQ"

	// Constraints (range/length/pattern/enum/bits).
	CodeInArg       Code = "INARG"
	CodeInVal       Code = "INVAL"
	CodeNoConstr    Code = "NOCONSTR"
	CodeEnumDupVal  Code = "ENUM_DUPVAL"
	CodeEnumDupName Code = "ENUM_DUPNAME"
	CodeEnumWS      Code = "ENUM_WS"
	CodeBitsDupVal  Code = "BITS_DUPVAL"
	CodeBitsDupName Code = "BITS_DUPNAME"

	// References.
	CodeInResolv  Code = "INRESOLV"
	CodeNoResolv  Code = "NORESOLV"
	CodeInStatus  Code = "INSTATUS"
	CodeNoLeafref Code = "NOLEAFREF"
	CodeNoReqIns  Code = "NOREQINS"
	CodeInWhen    Code = "INWHEN"

	// Conditions.
	CodeNoMust       Code = "NOMUST"
	CodeNoWhen       Code = "NOWHEN"
	CodeNoMandChoice Code = "NOMANDCHOICE"

	// Cardinality.
	CodeNoMin       Code = "NOMIN"
	CodeNoMax       Code = "NOMAX"
	CodeDupLeafList Code = "DUPLEAFLIST"
	CodeDupList     Code = "DUPLIST"
	CodeMCaseData   Code = "MCASEDATA"

	// CodeInternal is reserved for an invariant violation: a bug in the
	// resolver itself, not a malformed input.
	CodeInternal Code = "INTERNAL"
)

// Diagnostic is one reported error: a code, the schema- or data-path it
// occurred at, a formatted message, and optional positional/app-tag
// metadata.
type Diagnostic struct {
	Code    Code
	Path    string // schema-node path ("/mod:a/b") or data-path with predicates
	Message string

	AppTag string // must/when's error-app-tag, surfaced to the caller verbatim

	Line   int
	Column int

	Expected []string
	Actual   string
}

// Error formats the diagnostic for display.
func (d *Diagnostic) Error() string {
	if d == nil {
		return "diagnostic <nil>"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", d.Code, d.Message))
	if d.Path != "" {
		b.WriteString(fmt.Sprintf(" at %s", d.Path))
	}
	if d.Line > 0 && d.Column > 0 {
		if d.Path == "" {
			b.WriteString(fmt.Sprintf(" at line %d, column %d", d.Line, d.Column))
		} else {
			b.WriteString(fmt.Sprintf(" (line %d, column %d)", d.Line, d.Column))
		}
	}
	if len(d.Expected) > 0 {
		b.WriteString(fmt.Sprintf(" (expected: %s)", strings.Join(d.Expected, ", ")))
	}
	if d.Actual != "" {
		b.WriteString(fmt.Sprintf(" (actual: %s)", d.Actual))
	}
	if d.AppTag != "" {
		b.WriteString(fmt.Sprintf(" [app-tag: %s]", d.AppTag))
	}
	return b.String()
}

// Diagnostics is an error wrapping one or more Diagnostic records, the way
// a resolution run's caller receives every hard failure accumulated
// across a pass rather than aborting on the first one.
type Diagnostics []Diagnostic //nolint:errname // public API name, domain term.

// Error returns a compact summary: the first diagnostic plus a count of
// the rest.
func (d Diagnostics) Error() string {
	switch len(d) {
	case 0:
		return "no diagnostics"
	case 1:
		return d[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", d[0].Error(), len(d)-1)
	}
}

// New builds a Diagnostic with a code, message, and path.
func New(code Code, msg, path string) Diagnostic {
	return Diagnostic{Code: code, Message: msg, Path: path}
}

// Newf formats a message and builds a Diagnostic.
func Newf(code Code, path, format string, args ...any) Diagnostic {
	return New(code, fmt.Sprintf(format, args...), path)
}

// AsDiagnostics extracts the Diagnostics wrapped in err, if any.
func AsDiagnostics(err error) ([]Diagnostic, bool) {
	var list Diagnostics
	if errors.As(err, &list) {
		return []Diagnostic(list), true
	}
	var listPtr *Diagnostics
	if errors.As(err, &listPtr) && listPtr != nil {
		return []Diagnostic(*listPtr), true
	}
	return nil, false
}

// Internal builds the error a recovered invariant-violation panic is
// converted to at a public-API boundary: CodeInternal is reserved for
// exactly this case, never for a malformed-input failure.
func Internal(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg)
}

// Scheduling builds an error for the fixpoint driver's own bookkeeping
// failures (a round made no progress, an item was marked Failed with no
// attached diagnostic) — a driver-internal condition, not a Diagnostic
// the caller would want rendered as a schema-validation result.
func Scheduling(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msg)
}
