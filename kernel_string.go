package tsio

import "fmt"

// isPrintableByte reports whether b is a printable, single-byte ASCII
// character — the boundary spec.md §4.3's "nice mode" uses to decide
// whether a byte needs translation.
func isPrintableByte(b byte) bool {
	return b >= 0x20 && b < 0x7f
}

// cEscapeByte renders b as a C-style backslash escape, used by nice
// mode's alternative-flag form (spec.md §4.6), grounded on the teacher's
// own small escape-sequence replacer in tree_printer.go, extended here
// to the full escape set spec.md names plus octal for anything left.
func cEscapeByte(b byte) string {
	switch b {
	case '\a':
		return `\a`
	case '\b':
		return `\b`
	case '\f':
		return `\f`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\v':
		return `\v`
	case '\\':
		return `\\`
	case '"':
		return `\"`
	case '\'':
		return `\'`
	default:
		if isPrintableByte(b) {
			return string(b)
		}
		return fmt.Sprintf(`\%03o`, b)
	}
}

// niceTranslate applies spec.md §4.6's "nice" byte transform: every byte
// becomes either itself (already printable), a `.` placeholder (default
// nice mode), or a C-style escape (alternative flag).
func niceTranslate(s string, alternative bool) string {
	needsWork := false
	for i := 0; i < len(s); i++ {
		if !isPrintableByte(s[i]) {
			needsWork = true
			break
		}
	}
	if !needsWork {
		return s
	}

	var out []byte
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isPrintableByte(b) {
			out = append(out, b)
			continue
		}
		if alternative {
			out = append(out, cEscapeByte(b)...)
		} else {
			out = append(out, '.')
		}
	}
	return string(out)
}

// writeStringKernel implements spec.md §4.6's string kernel. `s` writes
// raw bytes (width = minimum length, precision = maximum bytes copied);
// `S` forces nice mode on regardless of the caller's flags.
func writeStringKernel(buf *Buffer, spec *FormatSpec, value string) error {
	text := value
	if spec.precisionGiven() && spec.Precision < len(text) {
		text = text[:spec.Precision]
	}

	if spec.nice() {
		text = niceTranslate(text, spec.alternative())
	}

	fillChar := byte(' ')
	if spec.Flags.has(flagAlfaFill) {
		fillChar = spec.FillCharacter
	}
	return padAndWrite(buf, spec, text, 0, false, fillChar)
}

// writeCharKernel implements spec.md §4.6's character kernel. `c` is the
// raw byte; `C` routes it through the nice translator. An unset
// precision imposes no suppression; precision 0 suppresses the
// character entirely; any precision > 0 keeps it.
func writeCharKernel(buf *Buffer, spec *FormatSpec, value byte) error {
	text := ""
	if !spec.precisionGiven() || spec.Precision > 0 {
		if spec.nice() || spec.Specifier == 'C' {
			text = niceTranslate(string(value), spec.alternative())
		} else {
			text = string(value)
		}
	}

	fillChar := byte(' ')
	if spec.Flags.has(flagAlfaFill) {
		fillChar = spec.FillCharacter
	}
	return padAndWrite(buf, spec, text, 0, false, fillChar)
}
