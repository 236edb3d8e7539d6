package tsio

// nodeChunkSize is the number of FormatNodes each allocation chunk
// holds, per spec.md §3 ("chunk-allocated collection ... in chunks of
// 64 nodes, linked"). Chunks are heap objects referenced by pointer, so
// growing the chunk list (a slice of pointers) never invalidates a
// FormatNode pointer handed out earlier — only appending past a
// chunk's own fixed array would, and allocation never does that.
const nodeChunkSize = 64

type nodeChunk struct {
	nodes [nodeChunkSize]FormatNode
	used  int
}

// nodeAllocator is the arena FormatTree compilation allocates nodes
// from. It is discarded with the FormatTree that owns it; Go's GC plays
// the role of the "freed as a group on tree destruction" invariant
// spec.md §3 describes; the teacher's equivalent (tree.go's `tree`
// struct backing its node/children/childRanges slices) relies on the
// same "one arena per compiled unit" discipline.
type nodeAllocator struct {
	chunks []*nodeChunk
}

func (a *nodeAllocator) alloc() *FormatNode {
	if len(a.chunks) == 0 || a.chunks[len(a.chunks)-1].used == nodeChunkSize {
		a.chunks = append(a.chunks, &nodeChunk{})
	}
	c := a.chunks[len(a.chunks)-1]
	n := &c.nodes[c.used]
	c.used++
	return n
}

// FormatNode is one node of a compiled FormatTree: an owning FormatSpec,
// the literal prefix text that preceded it in the source, and the
// structural links (Child for %{ %[ %< bodies, Next for the sequential
// successor / sibling) spec.md §3 describes.
type FormatNode struct {
	Prefix string
	Spec   FormatSpec
	Child  *FormatNode
	Next   *FormatNode
}

// FormatTree is a compiled, reusable representation of a format
// string: an ordered tree of FormatNodes with a single top-level
// sibling chain as its entry point. A FormatTree is read-only once
// built and can be executed many times against different argument
// sequences (spec.md §3 "Lifecycles").
type FormatTree struct {
	root       *FormatNode
	positional bool
	format     string
	alloc      *nodeAllocator
}

// Positional reports whether any positional specifier (%n$, %*n$,
// %.*n$) appears anywhere in the tree. When true, the executor runs in
// positional mode for the whole format (spec.md §4.3).
func (t *FormatTree) Positional() bool { return t.positional }

// Source returns the original format string the tree was compiled
// from, used to build caret diagnostics for runtime errors.
func (t *FormatTree) Source() string { return t.format }

// Compile scans format and produces a reusable FormatTree, per
// spec.md §4.2. It is the only entry point into the tree compiler.
func Compile(format string) (*FormatTree, error) {
	alloc := &nodeAllocator{}
	t := &FormatTree{format: format, alloc: alloc}

	sc := newScanner(format)
	root, err := compileSequence(sc, alloc, t, 0)
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

// compileSequence compiles one run of sibling nodes, starting at the
// scanner's current position and ending either at end-of-string (when
// closeSpecifier is 0, i.e. top level) or at a structural closer byte
// matching closeSpecifier (when compiling the body of %{ %[ %<). The
// closer itself becomes the final node of the returned chain, carrying
// whatever literal prefix preceded it — see §4.4's "closing bracket's
// prefix is emitted between elements" and §4.3's repeat-group body
// reuse of the same trailing literal on every iteration.
func compileSequence(sc *scanner, alloc *nodeAllocator, t *FormatTree, closeSpecifier byte) (*FormatNode, error) {
	var head, tail *FormatNode

	appendNode := func(n *FormatNode) {
		if head == nil {
			head = n
		} else {
			tail.Next = n
		}
		tail = n
	}

	for {
		prefixStart := sc.cursor
		for !sc.atEnd() && sc.peek() != '%' {
			sc.advance()
		}
		prefix := sc.format[prefixStart:sc.cursor]

		if sc.atEnd() {
			if closeSpecifier != 0 {
				return nil, newParseError(sc.format, sc.cursor, "missing '%%%c'", closeSpecifier)
			}
			n := alloc.alloc()
			n.Prefix = prefix
			n.Spec = FormatSpec{Specifier: 0, Flags: flagSpecial, Offset: sc.cursor, FillCharacter: ' '}
			appendNode(n)
			return head, nil
		}

		percentOffset := sc.cursor
		sc.advance() // consume '%'

		spec, err := parseFormatSpec(sc, percentOffset)
		if err != nil {
			return nil, err
		}
		markPositional(t, spec)

		n := alloc.alloc()
		n.Prefix = prefix
		n.Spec = *spec

		switch spec.Specifier {
		case '}', ']', '>':
			if spec.Specifier != closeSpecifier {
				return nil, newParseError(sc.format, percentOffset, "unexpected '%%%c'", spec.Specifier)
			}
			appendNode(n)
			return head, nil

		case '{':
			child, err := compileSequence(sc, alloc, t, '}')
			if err != nil {
				return nil, err
			}
			n.Child = child
			appendNode(n)

		case '[':
			child, err := compileSequence(sc, alloc, t, ']')
			if err != nil {
				return nil, err
			}
			n.Child = child
			appendNode(n)

		case '<':
			child, err := compileSequence(sc, alloc, t, '>')
			if err != nil {
				return nil, err
			}
			n.Child = child
			for c := child; c != nil; c = c.Next {
				if c.Spec.Position != 0 {
					n.Spec.Flags |= flagPositionalChildren
					break
				}
			}
			appendNode(n)

		default:
			appendNode(n)
		}
	}
}

// markPositional flags the whole tree as positional the moment any
// node anywhere carries a $-indexed position, per spec.md §4.2 ("The
// compiler also records, as a whole-tree property, whether any
// positional specifier was seen").
func markPositional(t *FormatTree, spec *FormatSpec) {
	if spec.Position != 0 {
		t.positional = true
	}
	if spec.widthDynamic() && spec.WidthPosition != 0 {
		t.positional = true
	}
	if spec.precisionDynamic() && spec.PrecisionPosition != 0 {
		t.positional = true
	}
}
