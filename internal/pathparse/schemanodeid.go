package pathparse

// ParseSchemaNodeID recognizes schema-nodeid = ["/" / "./"] node-identifier
// *( "/" node-identifier ). Absolute is true for the "/" form, false for
// the "./" and bare (descendant) forms.
func ParseSchemaNodeID(b []byte) (segments []NodeIdentifier, absolute bool, consumed int, err error) {
	i := 0
	switch {
	case len(b) >= 1 && b[0] == '/':
		absolute = true
		i = 1
	case len(b) >= 2 && b[0] == '.' && b[1] == '/':
		absolute = false
		i = 2
	default:
		absolute = false
	}

	for {
		seg, n, perr := ParseNodeIdentifier(b[i:])
		if perr != nil {
			if se, ok := perr.(*SyntaxError); ok {
				return nil, false, 0, syntaxErrorf(i+se.Offset, "%s", se.Reason)
			}
			return nil, false, 0, perr
		}
		segments = append(segments, seg)
		i += n
		if i < len(b) && b[i] == '/' {
			i++
			continue
		}
		break
	}
	return segments, absolute, i, nil
}
