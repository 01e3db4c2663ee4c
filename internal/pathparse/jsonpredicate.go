package pathparse

// JSONPredicateSelectorKind distinguishes a schema-json-predicate's
// selector forms.
type JSONPredicateSelectorKind uint8

const (
	JSONSelectorSelf JSONPredicateSelectorKind = iota
	JSONSelectorIdentifier
	JSONSelectorWildcard // the literal "*=" token
)

// JSONPredicate is the parsed form of
// schema-json-predicate = "[" WSP ( identifier / "." / "*=" ) WSP
//
//	( "=" WSP quoted-string WSP )? "]"
type JSONPredicate struct {
	SelectorKind JSONPredicateSelectorKind
	Name         []byte // meaningful when SelectorKind == JSONSelectorIdentifier
	HasValue     bool
	Value        []byte
}

// ParseSchemaJSONPredicate recognizes a single schema-json-predicate
// "[...]" block. valueRequired controls whether a missing "=" value is an
// error, matching the C original's caller-supplied expectation.
func ParseSchemaJSONPredicate(b []byte, valueRequired bool) (JSONPredicate, int, error) {
	if len(b) == 0 || b[0] != '[' {
		return JSONPredicate{}, 0, syntaxErrorf(0, `predicate must start with "["`)
	}
	i := skipWSP(b, 1)

	var pred JSONPredicate
	switch {
	case i < len(b) && b[i] == '.':
		pred.SelectorKind = JSONSelectorSelf
		i++
	case hasPrefixAt(b, i, "*="):
		pred.SelectorKind = JSONSelectorWildcard
		i += 2
	default:
		name, n, err := ParseIdentifier(b[i:])
		if err != nil {
			if se, ok := err.(*SyntaxError); ok {
				return JSONPredicate{}, 0, syntaxErrorf(i+se.Offset, "%s", se.Reason)
			}
			return JSONPredicate{}, 0, err
		}
		pred.SelectorKind = JSONSelectorIdentifier
		pred.Name = name
		i += n
	}

	i = skipWSP(b, i)

	if i < len(b) && b[i] == '=' {
		i++
		i = skipWSP(b, i)
		value, n, err := parseQuotedString(b[i:])
		if err != nil {
			if se, ok := err.(*SyntaxError); ok {
				return JSONPredicate{}, 0, syntaxErrorf(i+se.Offset, "%s", se.Reason)
			}
			return JSONPredicate{}, 0, err
		}
		pred.HasValue = true
		pred.Value = value
		i += n
		i = skipWSP(b, i)
	} else if valueRequired {
		return JSONPredicate{}, 0, syntaxErrorf(i, "value is required for this predicate")
	}

	if i >= len(b) || b[i] != ']' {
		return JSONPredicate{}, 0, syntaxErrorf(i, `expected "]" to close predicate`)
	}
	return pred, i + 1, nil
}
