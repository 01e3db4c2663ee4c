package pathparse

import "bytes"

// PathKeyExpr is the parsed form of
// path-key-expr = current() WSP "/" WSP (".." "/" WSP)+ (node-identifier WSP "/" WSP)* node-identifier
type PathKeyExpr struct {
	ParentRefs int
	Steps      []NodeIdentifier
}

var currentFunction = []byte("current()")

// ParsePathKeyExpr recognizes a full path-key-expr in one pass.
func ParsePathKeyExpr(b []byte) (PathKeyExpr, int, error) {
	if !bytes.HasPrefix(b, currentFunction) {
		return PathKeyExpr{}, 0, syntaxErrorf(0, `path-key-expr must start with "current()"`)
	}
	i := len(currentFunction)
	i = skipWSP(b, i)
	if i >= len(b) || b[i] != '/' {
		return PathKeyExpr{}, 0, syntaxErrorf(i, `expected "/" after current()`)
	}
	i++
	i = skipWSP(b, i)

	var expr PathKeyExpr
	for hasPrefixAt(b, i, "../") {
		expr.ParentRefs++
		i += len("../")
		i = skipWSP(b, i)
	}
	if expr.ParentRefs == 0 {
		return PathKeyExpr{}, 0, syntaxErrorf(i, `path-key-expr requires at least one ".." step`)
	}

	for {
		step, n, err := ParseNodeIdentifier(b[i:])
		if err != nil {
			if se, ok := err.(*SyntaxError); ok {
				return PathKeyExpr{}, 0, syntaxErrorf(i+se.Offset, "%s", se.Reason)
			}
			return PathKeyExpr{}, 0, err
		}
		expr.Steps = append(expr.Steps, step)
		i += n
		j := skipWSP(b, i)
		if j < len(b) && b[j] == '/' {
			j++
			j = skipWSP(b, j)
			i = j
			continue
		}
		break
	}
	return expr, i, nil
}

func hasPrefixAt(b []byte, i int, prefix string) bool {
	if i+len(prefix) > len(b) {
		return false
	}
	return string(b[i:i+len(prefix)]) == prefix
}
