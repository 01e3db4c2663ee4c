package pathparse

// PathPredicate is the parsed form of
// path-predicate = "[" WSP node-identifier WSP "=" WSP path-key-expr WSP "]"
// KeyExpr carries the raw unparsed path-key-expr bytes; the caller invokes
// ParsePathKeyExpr on it (the leafref resolver needs the node-identifier
// of the local key before it can decide whether a remote path-key-expr is
// even meaningful, so the two grammars are kept decoupled here).
type PathPredicate struct {
	Key     NodeIdentifier
	KeyExpr []byte
}

// ParsePathPredicate recognizes a single "[...]" path-predicate block.
func ParsePathPredicate(b []byte) (PathPredicate, int, error) {
	if len(b) == 0 || b[0] != '[' {
		return PathPredicate{}, 0, syntaxErrorf(0, `path-predicate must start with "["`)
	}
	i := skipWSP(b, 1)

	key, n, err := ParseNodeIdentifier(b[i:])
	if err != nil {
		if se, ok := err.(*SyntaxError); ok {
			return PathPredicate{}, 0, syntaxErrorf(i+se.Offset, "%s", se.Reason)
		}
		return PathPredicate{}, 0, err
	}
	i += n
	i = skipWSP(b, i)

	if i >= len(b) || b[i] != '=' {
		return PathPredicate{}, 0, syntaxErrorf(i, `expected "=" in path-predicate`)
	}
	i++
	i = skipWSP(b, i)

	end := indexByte(b, i, ']')
	if end < 0 {
		return PathPredicate{}, 0, syntaxErrorf(i, `unterminated path-predicate, missing "]"`)
	}
	keyExprEnd := end
	for keyExprEnd > i && isWSP(b[keyExprEnd-1]) {
		keyExprEnd--
	}
	if keyExprEnd == i {
		return PathPredicate{}, 0, syntaxErrorf(i, "path-key-expr must not be empty")
	}

	return PathPredicate{Key: key, KeyExpr: b[i:keyExprEnd]}, end + 1, nil
}

func indexByte(b []byte, from int, c byte) int {
	for i := from; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}
