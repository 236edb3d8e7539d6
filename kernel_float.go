package tsio

import "fmt"

// floatVerb maps a tsio float specifier to the Go verb that produces
// the equivalent textual form, per spec.md §4.6's "delegate to host
// `snprintf`" mandate — Go's fmt/strconv floating-point formatting plays
// the role of the C runtime's snprintf the spec explicitly calls for.
func floatVerb(specifier byte) byte {
	switch specifier {
	case 'e', 'E', 'f', 'F', 'g', 'G':
		return specifier
	case 'a':
		return 'x'
	case 'A':
		return 'X'
	case 's':
		return 'g'
	default:
		return 'g'
	}
}

// writeFloatKernel implements spec.md §4.6's floating-point kernel: a
// minimal inner spec (flags + precision + verb, deliberately never
// width) is built and handed to Go's fmt, then *this* engine's own
// width/justification/fill rules are reapplied around the result —
// resolving the Open Question in spec.md §9 by always doing the
// padding ourselves in a single pass, never relying on fmt's own width.
func writeFloatKernel(buf *Buffer, spec *FormatSpec, value float64, defaultPrecision int) error {
	verb := floatVerb(spec.Specifier)

	innerFlags := ""
	if spec.Flags.has(flagPlusIfPositive) {
		innerFlags += "+"
	} else if spec.Flags.has(flagSpaceIfPositive) {
		innerFlags += " "
	}
	if spec.alternative() {
		innerFlags += "#"
	}

	precision := defaultPrecision
	if spec.precisionGiven() {
		precision = spec.Precision
	}

	innerFormat := fmt.Sprintf("%%%s.%d%c", innerFlags, precision, verb)
	text := fmt.Sprintf(innerFormat, value)

	headLen := 0
	if len(text) > 0 {
		switch text[0] {
		case '+', '-', ' ':
			headLen = 1
		}
	}

	numericFill := spec.Flags.has(flagNumericFill) && !spec.precisionGiven()
	fillChar := spec.FillCharacter
	if spec.Flags.has(flagNumericFill) && !numericFill {
		fillChar = ' '
	}

	return padAndWrite(buf, spec, text, headLen, numericFill, fillChar)
}
