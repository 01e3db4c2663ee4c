package pathparse

// InstanceIDStep is one segment of an instance-identifier: a mandatorily
// module-prefixed node-identifier plus any predicates attached to it.
type InstanceIDStep struct {
	Name       NodeIdentifier
	Predicates []Predicate
}

// InstanceIdentifier is the parsed form of
// instance-identifier = "/" node-identifier (predicate)*
// repeated for each "/"-separated segment. Every segment's module prefix
// is mandatory (the JSON instance-data form uses module names, not
// XML-style prefixes).
type InstanceIdentifier struct {
	Steps []InstanceIDStep
}

// ParseInstanceIdentifier recognizes a full instance-identifier.
func ParseInstanceIdentifier(b []byte) (InstanceIdentifier, int, error) {
	var id InstanceIdentifier
	i := 0

	for i < len(b) && b[i] == '/' {
		i++
		name, n, err := ParseNodeIdentifier(b[i:])
		if err != nil {
			if se, ok := err.(*SyntaxError); ok {
				return InstanceIdentifier{}, 0, syntaxErrorf(i+se.Offset, "%s", se.Reason)
			}
			return InstanceIdentifier{}, 0, err
		}
		if name.Module == nil {
			return InstanceIdentifier{}, 0, syntaxErrorf(i, "instance-identifier segment is missing its mandatory module prefix")
		}
		i += n
		step := InstanceIDStep{Name: name}

		for i < len(b) && b[i] == '[' {
			pred, m, err := ParsePredicate(b[i:])
			if err != nil {
				if se, ok := err.(*SyntaxError); ok {
					return InstanceIdentifier{}, 0, syntaxErrorf(i+se.Offset, "%s", se.Reason)
				}
				return InstanceIdentifier{}, 0, err
			}
			step.Predicates = append(step.Predicates, pred)
			i += m
		}
		id.Steps = append(id.Steps, step)
	}

	if len(id.Steps) == 0 {
		return InstanceIdentifier{}, 0, syntaxErrorf(0, `instance-identifier must start with "/"`)
	}
	return id, i, nil
}
