package tsio

// execTuple implements %< … %> per spec.md §4.5: destructures a
// tuple-shaped argument into its fields and feeds one field to each
// non-special child, either sequentially (left-to-right) or, when the
// parent carries positionalChildren, by each child's own $-index.
func (e *executor) execTuple(n *FormatNode, spec *FormatSpec, arg Arg) error {
	fields, ok := destructureArg(arg)
	if !ok {
		return newArgumentShapeError(e.tree.Source(), spec.Offset, "%%< requires a tuple-shaped argument, got %s", arg.scalarDescription())
	}

	if spec.positionalChildren() {
		return e.execTuplePositional(n, fields)
	}
	return e.execTupleSequential(n, fields, len(fields))
}

// tupleSequentialSource feeds tuple fields to the child tree strictly
// left-to-right. An out-of-field consumption ("too many" children, per
// spec.md §4.5) is reported as an arity error at the extra child.
type tupleSequentialSource struct {
	fields []Arg
	cursor int
}

func (s *tupleSequentialSource) arg(positional bool, position int) (Arg, error) {
	if s.cursor >= len(s.fields) {
		return Arg{}, nil // caller (execTupleSequential) checks this via the cursor, not an error here
	}
	a := s.fields[s.cursor]
	s.cursor++
	return a, nil
}

// execTupleSequential walks n.Child consuming one field per non-special
// specifier. Too few consuming children leaves fields unconsumed, which
// is reported as "only N formats for tuple of M" per spec.md §4.5; too
// many is reported as an arity error at the extra child.
func (e *executor) execTupleSequential(n *FormatNode, fields []Arg, total int) error {
	src := &tupleSequentialSource{fields: fields}
	e.pushSource(src)
	defer e.popSource()

	consumed := 0
	cur := n.Child
	for cur != nil && !isCloserSpecifier(cur.Spec.Specifier) {
		if !cur.Spec.special() && src.cursor >= len(fields) {
			return newArityError(e.tree.Source(), cur.Spec.Offset, "too many formats for tuple of %d", total)
		}
		if err := e.execNode(cur); err != nil {
			return err
		}
		consumed = src.cursor
		cur = cur.Next
	}

	if consumed < len(fields) {
		return newArityError(e.tree.Source(), n.Spec.Offset, "only %d formats for tuple of %d", consumed, len(fields))
	}
	return nil
}

// tuplePositionalSource selects a field by each child's own 1-based
// $-index rather than sequential order, per spec.md §4.5's
// positionalChildren mode. position == 0 on a non-terminal child (i.e.
// a plain, non-$-indexed specifier mixed into a positional-children
// tuple) is itself an error.
type tuplePositionalSource struct {
	format string
	fields []Arg
}

func (s *tuplePositionalSource) arg(positional bool, position int) (Arg, error) {
	if position == 0 {
		return Arg{}, newScopeError(s.format, 0, "cannot mix positional and sequential specifiers in a tuple")
	}
	idx := position - 1
	if idx < 0 || idx >= len(s.fields) {
		return Arg{}, newArityError(s.format, 0, "tuple field index %d$ out of range (tuple has %d fields)", position, len(s.fields))
	}
	return s.fields[idx], nil
}

func (e *executor) execTuplePositional(n *FormatNode, fields []Arg) error {
	src := &tuplePositionalSource{format: e.tree.Source(), fields: fields}
	e.pushSource(src)
	defer e.popSource()

	_, err := e.execBody(n.Child)
	return err
}
