package tsio

// specFlags is the bitset of extended printf flags a FormatSpec can
// carry, per spec.md §3.
type specFlags uint32

const (
	flagNumericFill specFlags = 1 << iota
	flagAlfaFill
	flagPlusIfPositive
	flagSpaceIfPositive
	flagLeftJustify
	flagCenterJustify
	flagAlternative
	flagWidthDynamic
	flagPrecisionDynamic
	flagWidthGiven
	flagPrecisionGiven
	flagPositionalChildren
	flagUpcase
	flagNice
	flagSpecial
)

func (f specFlags) has(bit specFlags) bool { return f&bit != 0 }

// FormatSpec is a decoded %-directive: flags, width, precision and the
// specifier byte, per spec.md §3.
type FormatSpec struct {
	Position          int
	WidthPosition     int
	PrecisionPosition int
	Width             int
	Precision         int
	Flags             specFlags
	FillCharacter     byte
	Specifier         byte

	// Offset is the byte offset of the '%' that introduced this
	// specifier, carried for error diagnostics.
	Offset int
}

func (s *FormatSpec) widthGiven() bool      { return s.Flags.has(flagWidthGiven) }
func (s *FormatSpec) precisionGiven() bool  { return s.Flags.has(flagPrecisionGiven) }
func (s *FormatSpec) widthDynamic() bool    { return s.Flags.has(flagWidthDynamic) }
func (s *FormatSpec) precisionDynamic() bool { return s.Flags.has(flagPrecisionDynamic) }
func (s *FormatSpec) leftJustify() bool     { return s.Flags.has(flagLeftJustify) }
func (s *FormatSpec) centerJustify() bool   { return s.Flags.has(flagCenterJustify) }
func (s *FormatSpec) alternative() bool     { return s.Flags.has(flagAlternative) }
func (s *FormatSpec) upcase() bool          { return s.Flags.has(flagUpcase) }
func (s *FormatSpec) nice() bool            { return s.Flags.has(flagNice) }
func (s *FormatSpec) special() bool         { return s.Flags.has(flagSpecial) }
func (s *FormatSpec) positionalChildren() bool {
	return s.Flags.has(flagPositionalChildren)
}

// isSpecialSpecifier reports the specifier bytes that set the "special"
// flag: they are handled inline by the executor without consuming an
// argument, or they mark structural boundaries (spec.md §4.1 point 6).
func isSpecialSpecifier(c byte) bool {
	switch c {
	case '%', 'T', '{', '}', 'N', 0:
		return true
	default:
		return false
	}
}

// isLengthModifier reports whether c is one of the printf length
// modifiers the parser consumes and discards (spec.md §4.1 point 5).
func isLengthModifier(c int) bool {
	switch c {
	case 'h', 'j', 'l', 'L', 't', 'z':
		return true
	default:
		return false
	}
}

// parseFormatSpec parses one specifier starting right after the '%'
// byte at offset percentOffset in s. It follows the grammar of
// spec.md §4.1/§6, whose flag-conflict resolution order is grounded
// directly on original_source/tsio.cpp's FormatState::parse.
func parseFormatSpec(s *scanner, percentOffset int) (*FormatSpec, error) {
	spec := &FormatSpec{Offset: percentOffset, FillCharacter: ' '}

	// 1. Leading positional / already-given width. Only a nonzero leading
	// digit triggers this: a leading '0' is the zero-fill flag, parsed
	// in step 2 below, never a bare width or position.
	widthAlreadyHandled := false
	if s.peek() >= '1' && s.peek() <= '9' {
		start := s.cursor
		n, _ := s.scanDecimal()
		if s.peek() == '$' {
			s.advance()
			spec.Position = n
		} else {
			s.cursor = start
			n, _ = s.scanDecimal()
			spec.Width = n
			spec.Flags |= flagWidthGiven
			widthAlreadyHandled = true
		}
	}

	if !widthAlreadyHandled {
		// 2. Flags.
		var numericFillChar, alfaFillChar byte = '0', ' '
	flagLoop:
		for {
			switch s.peek() {
			case '0':
				spec.Flags |= flagNumericFill
				numericFillChar = '0'
				s.advance()
			case '-':
				spec.Flags |= flagLeftJustify
				s.advance()
			case '^':
				spec.Flags |= flagCenterJustify
				s.advance()
			case '+':
				spec.Flags |= flagPlusIfPositive
				s.advance()
			case ' ':
				spec.Flags |= flagSpaceIfPositive
				s.advance()
			case '#':
				spec.Flags |= flagAlternative
				s.advance()
			case '\'':
				spec.Flags |= flagNumericFill
				s.advance()
				if !s.atEnd() {
					numericFillChar = byte(s.advance())
				}
			case '"':
				spec.Flags |= flagAlfaFill
				s.advance()
				if !s.atEnd() {
					alfaFillChar = byte(s.advance())
				}
			default:
				break flagLoop
			}
		}

		resolveFlagConflicts(&spec.Flags)

		switch {
		case spec.Flags.has(flagNumericFill):
			spec.FillCharacter = numericFillChar
		case spec.Flags.has(flagAlfaFill):
			spec.FillCharacter = alfaFillChar
		default:
			spec.FillCharacter = ' '
		}

		// 3. Width.
		if s.peek() == '*' {
			s.advance()
			spec.Flags |= flagWidthDynamic | flagWidthGiven
			if isDigit(s.peek()) {
				n, _ := s.scanDecimal()
				spec.WidthPosition = n
				if s.peek() == '$' {
					s.advance()
				}
			}
		} else if isDigit(s.peek()) {
			n, _ := s.scanDecimal()
			spec.Width = n
			spec.Flags |= flagWidthGiven
		}
	}

	// 4. Precision.
	if s.peek() == '.' {
		s.advance()
		spec.Flags |= flagPrecisionGiven
		if s.peek() == '*' {
			s.advance()
			spec.Flags |= flagPrecisionDynamic
			if isDigit(s.peek()) {
				n, _ := s.scanDecimal()
				spec.PrecisionPosition = n
				if s.peek() == '$' {
					s.advance()
				}
			}
		} else {
			n, _ := s.scanDecimal()
			spec.Precision = n
		}
	}

	// 5. Length modifiers: consumed and ignored.
	for isLengthModifier(s.peek()) {
		s.advance()
	}

	// 6. Specifier byte.
	if s.atEnd() {
		spec.Specifier = 0
		spec.Flags |= flagSpecial
		return spec, nil
	}

	c := byte(s.advance())
	spec.Specifier = c
	if isSpecialSpecifier(c) {
		spec.Flags |= flagSpecial
	}
	switch c {
	case 'X', 'E', 'F', 'G', 'A', 'B':
		spec.Flags |= flagUpcase
	}
	if c == 'S' || c == 'C' {
		spec.Flags |= flagNice
	}

	return spec, nil
}

// resolveFlagConflicts applies spec.md §4.1's deterministic conflict
// resolution, in the same order as original_source/tsio.cpp.
func resolveFlagConflicts(f *specFlags) {
	if f.has(flagPlusIfPositive) && f.has(flagSpaceIfPositive) {
		*f &^= flagSpaceIfPositive
	}
	if f.has(flagLeftJustify) && f.has(flagNumericFill) {
		*f &^= flagNumericFill
	}
	if f.has(flagCenterJustify) && f.has(flagNumericFill) {
		*f &^= flagNumericFill
	}
	if f.has(flagAlfaFill) && f.has(flagNumericFill) {
		*f &^= flagAlfaFill
	}
}
