package tsio

// argKind classifies the scalar category a leaf conversion kernel reads
// an Arg as, mirroring spec.md §9's Design Notes option (b): a
// type-erased "argument record" rather than a compile-time variadic
// expansion. The category set matches the kernel boundary in §4.6, not
// the full richness of Go's type system — everything numeric collapses
// to int64/uint64/float64 before a kernel ever sees it.
type argKind int

const (
	argInvalid argKind = iota
	argInt
	argUint
	argFloat
	argString
	argBool
	argIntPointer
	argIterable
	argTuple
)

// Arg is one type-erased argument, carrying both its scalar
// representation (when it has one) and its two capability questions
// from spec.md §9: "can you be iterated?" and "can you be destructured
// into a fixed heterogeneous record?". A slice or array answers yes to
// both; a struct (or map entry) is destructurable only. A valid value that
// answers no to both is treated as scalar (§4.4's "apply once to the
// scalar"); an invalid one is rejected with an argument-shape error.
type Arg struct {
	kind     argKind
	asInt    int64
	asUint   uint64
	asFloat  float64
	asString string
	asBool   bool
	intPtr   *int

	// original is kept only so WrapArg's reflect-based iterate/destructure
	// helpers (args_reflect.go) can re-inspect a non-scalar value; leaf
	// kernels never read it.
	original any
}

func (a Arg) Kind() argKind { return a.kind }

// scalarDescription names an Arg's dynamic type for argument-shape error
// messages, without requiring every caller to re-derive it from kind.
func (a Arg) scalarDescription() string {
	switch a.kind {
	case argInt:
		return "int"
	case argUint:
		return "uint"
	case argFloat:
		return "float"
	case argString:
		return "string"
	case argBool:
		return "bool"
	case argIntPointer:
		return "*int"
	case argIterable:
		return "iterable"
	case argTuple:
		return "tuple"
	default:
		return "invalid"
	}
}

func intArg(v int64) Arg    { return Arg{kind: argInt, asInt: v} }
func uintArg(v uint64) Arg  { return Arg{kind: argUint, asUint: v} }
func floatArg(v float64) Arg { return Arg{kind: argFloat, asFloat: v} }
func stringArg(v string) Arg { return Arg{kind: argString, asString: v} }
func boolArg(v bool) Arg    { return Arg{kind: argBool, asBool: v} }
func intPointerArg(p *int) Arg { return Arg{kind: argIntPointer, intPtr: p} }

// asSignedInteger coerces an integer-ish scalar Arg (int, uint or bool)
// to int64 for the dynamic width/precision consumer, returning false for
// any other kind; the caller reports the argument-shape error.
func (a Arg) asSignedInteger() (int64, bool) {
	switch a.kind {
	case argInt:
		return a.asInt, true
	case argUint:
		return int64(a.asUint), true
	case argBool:
		if a.asBool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// ArgList is the ordered argument sequence an Executor consumes,
// presented once per execution per spec.md §4.3's "ordered argument
// sequence presented as a type-erased list".
type ArgList struct {
	args []Arg
}

// NewArgList wraps a slice of arbitrary Go values into the type-erased
// Arg records the executor and kernels operate on.
func NewArgList(values ...any) *ArgList {
	args := make([]Arg, len(values))
	for i, v := range values {
		args[i] = WrapArg(v)
	}
	return &ArgList{args: args}
}

func (l *ArgList) Len() int { return len(l.args) }

// At returns the 0-based argument at index i. Positional specifiers in
// the format language are 1-based ($1 means index 0); callers convert.
func (l *ArgList) At(i int) (Arg, bool) {
	if i < 0 || i >= len(l.args) {
		return Arg{}, false
	}
	return l.args[i], true
}
