package pathparse

// PathStep is one node-identifier step of a leafref path-arg, with any
// path-predicates attached to it.
type PathStep struct {
	Name       NodeIdentifier
	Predicates []PathPredicate
}

// PathArg is the parsed form of
// path-arg = (".." "/")* node-identifier (path-predicate)? ( "/" … )*
// (relative form); the absolute form begins with "/" and carries no
// parent-ref steps.
type PathArg struct {
	Absolute   bool
	ParentRefs int
	Steps      []PathStep
}

// ParsePathArg recognizes a full leafref path-arg.
func ParsePathArg(b []byte) (PathArg, int, error) {
	var arg PathArg
	i := 0

	if len(b) > 0 && b[0] == '/' {
		arg.Absolute = true
		i = 1
	} else {
		for hasPrefixAt(b, i, "../") {
			arg.ParentRefs++
			i += len("../")
		}
		if arg.ParentRefs == 0 {
			return PathArg{}, 0, syntaxErrorf(i, `relative path-arg requires at least one ".." step`)
		}
	}

	for {
		step, n, err := ParseNodeIdentifier(b[i:])
		if err != nil {
			if se, ok := err.(*SyntaxError); ok {
				return PathArg{}, 0, syntaxErrorf(i+se.Offset, "%s", se.Reason)
			}
			return PathArg{}, 0, err
		}
		i += n
		ps := PathStep{Name: step}

		for i < len(b) && b[i] == '[' {
			pred, m, err := ParsePathPredicate(b[i:])
			if err != nil {
				if se, ok := err.(*SyntaxError); ok {
					return PathArg{}, 0, syntaxErrorf(i+se.Offset, "%s", se.Reason)
				}
				return PathArg{}, 0, err
			}
			ps.Predicates = append(ps.Predicates, pred)
			i += m
		}
		arg.Steps = append(arg.Steps, ps)

		if i < len(b) && b[i] == '/' {
			i++
			continue
		}
		break
	}
	return arg, i, nil
}
