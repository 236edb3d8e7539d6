package tsio

import "reflect"

// argSource answers "give me the argument for this node" for whichever
// scope is currently active. The top-level format has one source backed
// by the caller's ArgList; entering a container element or a tuple field
// swaps in a scoped source for the duration of that subtree, per
// spec.md §4.4/§4.5.
type argSource interface {
	arg(positional bool, position int) (Arg, error)
}

// sequentialSource is the top-level argument source: spec.md §4.3's
// "ordered argument sequence", consumed strictly in order unless the
// tree is in positional mode, in which case every lookup is by 1-based
// index instead.
type sequentialSource struct {
	format string
	list   *ArgList
	cursor int
}

func (s *sequentialSource) arg(positional bool, position int) (Arg, error) {
	if positional {
		if position == 0 {
			return Arg{}, newScopeError(s.format, 0, "sequential specifier used in a positional format")
		}
		a, ok := s.list.At(position - 1)
		if !ok {
			return Arg{}, newArityError(s.format, 0, "positional index %d$ out of range (%d arguments given)", position, s.list.Len())
		}
		return a, nil
	}
	a, ok := s.list.At(s.cursor)
	if !ok {
		return Arg{}, newArityError(s.format, 0, "not enough arguments: asked for argument %d, only %d given", s.cursor+1, s.list.Len())
	}
	s.cursor++
	return a, nil
}

// scalarSource is the argument source inside a %[…%] element scope: the
// same element value answers every lookup, which is exactly the
// mechanism spec.md §4.4 calls out for "%6s silently applying to a whole
// vector" one element at a time.
type scalarSource struct{ value Arg }

func (s scalarSource) arg(bool, int) (Arg, error) { return s.value, nil }

// executor walks a compiled FormatTree against an ArgList, per spec.md
// §4.3's "Executor state": a cursor (realized here as recursive descent
// over sibling chains rather than an explicit node pointer, since Go's
// call stack already gives us the repeat/structural nesting for free),
// an index stack for %N, and the positional-mode flag.
type executor struct {
	tree       *FormatTree
	buf        *Buffer
	opts       *Options
	sources    []argSource
	indexStack []int
	positional bool
}

// Execute runs tree against args, appending formatted output to buf. It
// returns the first FormatError encountered, or nil; per spec.md §7,
// output already written before an error remains in buf.
func Execute(tree *FormatTree, buf *Buffer, args *ArgList, opts *Options) error {
	if opts == nil {
		opts = NewOptions()
	}
	e := &executor{
		tree:       tree,
		buf:        buf,
		opts:       opts,
		positional: tree.Positional(),
	}
	e.sources = []argSource{&sequentialSource{format: tree.Source(), list: args}}
	_, err := e.execBody(tree.root)
	return err
}

func (e *executor) currentSource() argSource {
	return e.sources[len(e.sources)-1]
}

func (e *executor) pushSource(s argSource) { e.sources = append(e.sources, s) }
func (e *executor) popSource()             { e.sources = e.sources[:len(e.sources)-1] }

func isCloserSpecifier(c byte) bool { return c == '}' || c == ']' || c == '>' }

// execBody runs every node in the sibling chain starting at head up to,
// but not including, a structural closer, returning that closer (or nil
// at the top level, where no closer ever appears). Callers that opened
// the scope (repeat/container/tuple) are responsible for the closer's
// own Prefix text, since each of the three gives it different semantics
// (trailing literal, separator, or plain trailing text).
func (e *executor) execBody(head *FormatNode) (*FormatNode, error) {
	cur := head
	for cur != nil && !isCloserSpecifier(cur.Spec.Specifier) {
		if err := e.execNode(cur); err != nil {
			return nil, err
		}
		cur = cur.Next
	}
	return cur, nil
}

// execNode emits one node's prefix and dispatches its specifier, per
// spec.md §4.3's per-step description.
func (e *executor) execNode(n *FormatNode) error {
	if _, err := e.buf.WriteString(n.Prefix); err != nil {
		return err
	}

	spec := n.Spec // local copy: dynamic width/precision only affect this node's dispatch

	if spec.widthDynamic() {
		v, err := e.resolveDynamic(spec.WidthPosition, "width")
		if err != nil {
			return err
		}
		if v < 0 {
			spec.Flags |= flagLeftJustify
			v = -v
		}
		spec.Width = int(v)
		spec.Flags |= flagWidthGiven
	}
	if spec.precisionDynamic() {
		v, err := e.resolveDynamic(spec.PrecisionPosition, "precision")
		if err != nil {
			return err
		}
		if v < 0 {
			spec.Flags &^= flagPrecisionGiven
		} else {
			spec.Precision = int(v)
		}
	}

	if spec.special() {
		return e.execSpecial(n, &spec)
	}

	arg, err := e.currentSource().arg(e.positional, spec.Position)
	if err != nil {
		return err
	}

	switch spec.Specifier {
	case '[':
		return e.execContainer(n, &spec, arg)
	case '<':
		return e.execTuple(n, &spec, arg)
	default:
		return e.execLeaf(&spec, arg)
	}
}

// resolveDynamic consumes the integer argument a `*` width/precision
// consumer needs, from the current source, per spec.md §4.3 step 3.
func (e *executor) resolveDynamic(position int, what string) (int64, error) {
	arg, err := e.currentSource().arg(e.positional, position)
	if err != nil {
		return 0, err
	}
	v, ok := arg.asSignedInteger()
	if !ok {
		return 0, newArgumentShapeError(e.tree.Source(), 0, "dynamic %s argument must be an integer, got %s", what, arg.scalarDescription())
	}
	return v, nil
}

// execSpecial handles the text-only and structural-repeat specifiers
// that never consume an argument: %%, %T, %N, %{…%} and the end-of-
// string terminal node, per spec.md §4.3's "Text-only specials".
func (e *executor) execSpecial(n *FormatNode, spec *FormatSpec) error {
	switch spec.Specifier {
	case 0:
		return nil
	case '%':
		return e.buf.WriteByte('%')
	case 'T':
		return e.execTab(spec)
	case 'N':
		return e.execContainerIndex(spec)
	case '{':
		return e.execRepeat(n, spec)
	default:
		return nil
	}
}

// execTab implements %T: width N chosen statically or dynamically.
// Without the alternative flag, N is a tab stop interval: pad to the
// next multiple of N past the current column. With it, N is an absolute
// target column, inserting a newline first if the buffer is already
// past it.
func (e *executor) execTab(spec *FormatSpec) error {
	n := spec.Width
	if n <= 0 {
		return nil
	}
	column := e.buf.Column()

	if spec.alternative() {
		if column > n {
			if err := e.buf.WriteByte('\n'); err != nil {
				return err
			}
			column = 0
		}
		e.buf.WriteFill(' ', n-column)
		return nil
	}

	next := ((column / n) + 1) * n
	e.buf.WriteFill(' ', next-column)
	return nil
}

// execContainerIndex implements %N: the current element index of the
// innermost active %[…%] or %{…%} scope, 0-based by default or 1-based
// with the alternative flag. Used outside any such scope, it's an error.
func (e *executor) execContainerIndex(spec *FormatSpec) error {
	if len(e.indexStack) == 0 {
		return newScopeError(e.tree.Source(), spec.Offset, "%%N used outside any iteration scope")
	}
	idx := e.indexStack[len(e.indexStack)-1]
	if spec.alternative() {
		idx++
	}
	return writeIntegerKernel(e.buf, &FormatSpec{Specifier: 'd'}, int64(idx), false, 0)
}

// execRepeat implements %{…%}: repeats the child body count times,
// where count is spec.Width (already resolved if dynamic). A body
// consisting of nothing but the closer itself — i.e. no actual
// specifier inside, just literal text — is short-circuited to repeated
// literal emission, per spec.md §4.3's explicit call-out, though the
// general loop below would produce byte-identical output either way.
func (e *executor) execRepeat(n *FormatNode, spec *FormatSpec) error {
	count := 0
	if spec.widthGiven() {
		count = spec.Width
	}
	if count <= 0 {
		return nil
	}

	if n.Child != nil && n.Child.Next == nil && n.Child.Spec.Specifier == '}' {
		for i := 0; i < count; i++ {
			if _, err := e.buf.WriteString(n.Child.Prefix); err != nil {
				return err
			}
		}
		return nil
	}

	e.indexStack = append(e.indexStack, 0)
	defer func() { e.indexStack = e.indexStack[:len(e.indexStack)-1] }()

	for i := 0; i < count; i++ {
		e.indexStack[len(e.indexStack)-1] = i
		closer, err := e.execBody(n.Child)
		if err != nil {
			return err
		}
		if closer != nil {
			if _, err := e.buf.WriteString(closer.Prefix); err != nil {
				return err
			}
		}
	}
	return nil
}

func isIntegerSpecifier(c byte) bool {
	switch c {
	case 'd', 'i', 'u', 'o', 'x', 'X', 'b', 'B':
		return true
	default:
		return false
	}
}

func isFloatSpecifier(c byte) bool {
	switch c {
	case 'a', 'A', 'e', 'E', 'f', 'F', 'g', 'G':
		return true
	default:
		return false
	}
}

// execLeaf dispatches one non-structural specifier to its conversion
// kernel, per spec.md §4.6. A Go bool argument always routes to the
// boolean kernel regardless of specifier letter, matching the source's
// "with s, prints true/false; otherwise treated as integer" rule.
func (e *executor) execLeaf(spec *FormatSpec, arg Arg) error {
	switch spec.Specifier {
	case 'n':
		return e.execWriteback(spec, arg)
	case 'p':
		return e.execPointer(spec, arg)
	}

	if arg.Kind() == argBool {
		return writeBooleanKernel(e.buf, spec, arg.asBool)
	}

	switch {
	case isIntegerSpecifier(spec.Specifier):
		value, unsigned, raw, ok := integerValueFrom(arg, spec.Specifier)
		if !ok {
			return newArgumentShapeError(e.tree.Source(), spec.Offset, "%%%c requires an integer argument, got %s", spec.Specifier, arg.scalarDescription())
		}
		return writeIntegerKernel(e.buf, spec, value, unsigned, raw)

	case isFloatSpecifier(spec.Specifier):
		if arg.Kind() != argFloat {
			return newArgumentShapeError(e.tree.Source(), spec.Offset, "%%%c requires a floating-point argument, got %s", spec.Specifier, arg.scalarDescription())
		}
		return writeFloatKernel(e.buf, spec, arg.asFloat, e.opts.GetInt("kernel.float_default_precision"))

	case spec.Specifier == 's' || spec.Specifier == 'S':
		if arg.Kind() != argString {
			return newArgumentShapeError(e.tree.Source(), spec.Offset, "%%%c requires a string argument, got %s", spec.Specifier, arg.scalarDescription())
		}
		return writeStringKernel(e.buf, spec, arg.asString)

	case spec.Specifier == 'c' || spec.Specifier == 'C':
		b, ok := byteValueFrom(arg)
		if !ok {
			return newArgumentShapeError(e.tree.Source(), spec.Offset, "%%%c requires a character argument, got %s", spec.Specifier, arg.scalarDescription())
		}
		return writeCharKernel(e.buf, spec, b)

	default:
		return newParseError(e.tree.Source(), spec.Offset, "unknown conversion specifier '%%%c'", spec.Specifier)
	}
}

// execWriteback implements %n: the argument must be a *int, through
// which the current output length is stored. spec.md §9's Open Question
// is resolved here to the strict policy: any non-pointer argument is
// always an argument-shape error, never a silent fallthrough.
func (e *executor) execWriteback(spec *FormatSpec, arg Arg) error {
	if arg.Kind() != argIntPointer {
		return newArgumentShapeError(e.tree.Source(), spec.Offset, "%%n requires a *int argument, got %s", arg.scalarDescription())
	}
	*arg.intPtr = e.buf.Len()
	return nil
}

// execPointer implements %p: base-16 rendering of a pointer's bit
// pattern with the "0x" prefix forced on, per spec.md §4.6.
func (e *executor) execPointer(spec *FormatSpec, arg Arg) error {
	if arg.Kind() != argIntPointer {
		return newArgumentShapeError(e.tree.Source(), spec.Offset, "%%p requires a pointer argument, got %s", arg.scalarDescription())
	}
	bits := uint64(reflect.ValueOf(arg.intPtr).Pointer())
	return writePointerKernel(e.buf, spec, bits)
}

// integerValueFrom extracts the value an integer kernel needs from arg.
// Every integer specifier other than d and i (so u, o, x, X, b, B)
// reinterprets a signed Go int's bit pattern as unsigned, matching printf's own treatment of signedness as a
// presentation choice of the specifier, not the argument.
func integerValueFrom(arg Arg, specifier byte) (value int64, unsigned bool, raw uint64, ok bool) {
	switch arg.Kind() {
	case argInt:
		if specifier == 'd' || specifier == 'i' {
			return arg.asInt, false, 0, true
		}
		return 0, true, uint64(arg.asInt), true
	case argUint:
		if specifier == 'd' || specifier == 'i' {
			return int64(arg.asUint), false, 0, true
		}
		return 0, true, arg.asUint, true
	default:
		return 0, false, 0, false
	}
}

func byteValueFrom(arg Arg) (byte, bool) {
	switch arg.Kind() {
	case argString:
		if len(arg.asString) == 0 {
			return 0, true
		}
		return arg.asString[0], true
	case argInt:
		return byte(arg.asInt), true
	case argUint:
		return byte(arg.asUint), true
	default:
		return 0, false
	}
}
