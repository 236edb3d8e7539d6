package tsio

// execContainer implements %[ … %] per spec.md §4.4: applies the child
// tree once per element of an iterable argument, once per field of a
// tuple-shaped argument, or once to the argument itself when it is a
// scalar (the mechanism behind "%6s silently applying to a whole
// vector" for a single non-container value). The closing %]'s prefix is
// emitted between elements as a separator; with the alternative flag
// the trailing separator after the last element is suppressed.
func (e *executor) execContainer(n *FormatNode, spec *FormatSpec, arg Arg) error {
	elements, err := containerElements(e.tree.Source(), spec.Offset, arg)
	if err != nil {
		return err
	}

	e.indexStack = append(e.indexStack, 0)
	defer func() { e.indexStack = e.indexStack[:len(e.indexStack)-1] }()

	for i, el := range elements {
		e.indexStack[len(e.indexStack)-1] = i
		e.pushSource(scalarSource{value: el})
		closer, err := e.execBody(n.Child)
		e.popSource()
		if err != nil {
			return err
		}

		last := i == len(elements)-1
		if closer == nil {
			continue
		}
		if last && spec.alternative() {
			continue
		}
		if _, err := e.buf.WriteString(closer.Prefix); err != nil {
			return err
		}
	}
	return nil
}

// containerElements answers spec.md §4.4's three argument shapes: an
// iterable collection yields one element per slot in natural order (map
// entries become two-element (key, value) tuples, per §4.4); a tuple/
// fixed record yields one element per field; anything else is treated
// as the single-element scalar case.
func containerElements(format string, offset int, arg Arg) ([]Arg, error) {
	switch arg.Kind() {
	case argInvalid:
		return nil, newArgumentShapeError(format, offset, "%%[ requires an iterable, tuple, or scalar argument")
	case argIterable:
		elems, _ := iterateArg(arg)
		return elems, nil
	case argTuple:
		elems, _ := destructureArg(arg)
		return elems, nil
	default:
		return []Arg{arg}, nil
	}
}
