package pathparse

// ParseIdentifier recognizes identifier = (ALPHA/"_") *(ALPHA/DIGIT/"_"/"-"/".")
// rejected if the first three characters spell "xml" case-insensitively.
// Returns the recognized identifier and the number of bytes consumed.
func ParseIdentifier(b []byte) (name []byte, consumed int, err error) {
	if len(b) == 0 {
		return nil, 0, syntaxErrorf(0, "empty identifier")
	}
	if startsWithXML(b) {
		return nil, 0, syntaxErrorf(0, `identifier must not start with "xml" (case-insensitive)`)
	}
	if !isAlpha(b[0]) && b[0] != '_' {
		return nil, 0, syntaxErrorf(0, "identifier must start with a letter or underscore")
	}
	i := 1
	for i < len(b) && (isAlnum(b[i]) || b[i] == '_' || b[i] == '-' || b[i] == '.') {
		i++
	}
	return b[:i], i, nil
}

// startsWithXML reports whether the first three bytes of b case-insensitively
// spell "xml", rejecting identifiers per the grammar's explicit restriction
// (the original C implementation has a documented bug that compares the
// wrong byte for its middle character; this compares each of the three
// bytes against its own position in "xml").
func startsWithXML(b []byte) bool {
	if len(b) < 3 {
		return false
	}
	return foldsTo(b[0], 'x') && foldsTo(b[1], 'm') && foldsTo(b[2], 'l')
}

func foldsTo(c, lower byte) bool {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	return c == lower
}
