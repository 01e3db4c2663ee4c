package pathparse

// PredicateSelectorKind distinguishes a data predicate's three selector
// forms: a keyed node-identifier, the leaf-list self-value selector ".",
// or a 1-based positional index.
type PredicateSelectorKind uint8

const (
	SelectorKey PredicateSelectorKind = iota
	SelectorSelf
	SelectorPosition
)

// Predicate is the parsed form of
// predicate = "[" WSP ( node-identifier / "." / pos ) WSP "=" WSP
//
//	( DQ string DQ / SQ string SQ ) WSP "]"
type Predicate struct {
	SelectorKind PredicateSelectorKind
	Key          NodeIdentifier // meaningful when SelectorKind == SelectorKey
	Position     []byte         // meaningful when SelectorKind == SelectorPosition
	Value        []byte
}

// ParsePredicate recognizes a single data-instance "[...]" predicate.
func ParsePredicate(b []byte) (Predicate, int, error) {
	if len(b) == 0 || b[0] != '[' {
		return Predicate{}, 0, syntaxErrorf(0, `predicate must start with "["`)
	}
	i := skipWSP(b, 1)

	var pred Predicate
	switch {
	case i < len(b) && b[i] == '.':
		pred.SelectorKind = SelectorSelf
		i++
	case i < len(b) && isDigit(b[i]):
		start := i
		if b[i] == '0' {
			i++
			if i < len(b) && isDigit(b[i]) {
				return Predicate{}, 0, syntaxErrorf(start, "positional index must not have leading zeros")
			}
		} else {
			for i < len(b) && isDigit(b[i]) {
				i++
			}
		}
		pred.SelectorKind = SelectorPosition
		pred.Position = b[start:i]
	default:
		key, n, err := ParseNodeIdentifier(b[i:])
		if err != nil {
			if se, ok := err.(*SyntaxError); ok {
				return Predicate{}, 0, syntaxErrorf(i+se.Offset, "%s", se.Reason)
			}
			return Predicate{}, 0, err
		}
		pred.SelectorKind = SelectorKey
		pred.Key = key
		i += n
	}

	i = skipWSP(b, i)
	if i >= len(b) || b[i] != '=' {
		return Predicate{}, 0, syntaxErrorf(i, `expected "=" in predicate`)
	}
	i++
	i = skipWSP(b, i)

	value, n, err := parseQuotedString(b[i:])
	if err != nil {
		if se, ok := err.(*SyntaxError); ok {
			return Predicate{}, 0, syntaxErrorf(i+se.Offset, "%s", se.Reason)
		}
		return Predicate{}, 0, err
	}
	pred.Value = value
	i += n
	i = skipWSP(b, i)

	if i >= len(b) || b[i] != ']' {
		return Predicate{}, 0, syntaxErrorf(i, `expected "]" to close predicate`)
	}
	return pred, i + 1, nil
}

func parseQuotedString(b []byte) (value []byte, consumed int, err error) {
	if len(b) == 0 || (b[0] != '"' && b[0] != '\'') {
		return nil, 0, syntaxErrorf(0, "expected a quoted string")
	}
	quote := b[0]
	end := indexByte(b, 1, quote)
	if end < 0 {
		return nil, 0, syntaxErrorf(0, "unterminated quoted string")
	}
	return b[1:end], end + 1, nil
}
