package pathparse

// NodeIdentifier is the parsed form of node-identifier = [module-name ":"] identifier.
// Module is nil when no prefix was present.
type NodeIdentifier struct {
	Module []byte
	Name   []byte
}

// ParseNodeIdentifier recognizes node-identifier = [module-name ":"] identifier.
func ParseNodeIdentifier(b []byte) (NodeIdentifier, int, error) {
	first, n, err := ParseIdentifier(b)
	if err != nil {
		return NodeIdentifier{}, 0, err
	}
	if n >= len(b) || b[n] != ':' {
		return NodeIdentifier{Name: first}, n, nil
	}
	rest := b[n+1:]
	second, m, err := ParseIdentifier(rest)
	if err != nil {
		if se, ok := err.(*SyntaxError); ok {
			return NodeIdentifier{}, 0, syntaxErrorf(n+1+se.Offset, "%s", se.Reason)
		}
		return NodeIdentifier{}, 0, err
	}
	return NodeIdentifier{Module: first, Name: second}, n + 1 + m, nil
}
