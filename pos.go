package tsio

import (
	"fmt"
	"sort"
)

// Location is a 1-based line/column position within a format string,
// plus the raw byte offset it corresponds to. Used to build the caret
// diagnostics spec.md §7 requires ("including a caret pointing into the
// format string at the offending byte").
type Location struct {
	Line   int
	Column int
	Offset int
}

// Span is a half-open [Start, End) range of Locations.
type Span struct {
	Start Location
	End   Location
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

func (s Span) String() string {
	if s.Start.Line == s.End.Line && s.Start.Column == s.End.Column {
		return s.Start.String()
	}
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d..%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}

// lineIndex allows fast conversion from a byte offset in a format
// string to a line/column Location. It stores the start byte offset of
// each line and binary searches for the enclosing one.
type lineIndex struct {
	format    string
	lineStart []int
}

func newLineIndex(format string) *lineIndex {
	lineStart := make([]int, 1, 8)
	lineStart[0] = 0
	for i := 0; i < len(format); i++ {
		if format[i] == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &lineIndex{format: format, lineStart: lineStart}
}

func (li *lineIndex) locationAt(offset int) Location {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.format) {
		offset = len(li.format)
	}

	idx := sort.Search(len(li.lineStart), func(i int) bool {
		return li.lineStart[i] > offset
	}) - 1
	if idx < 0 {
		idx = 0
	}

	return Location{
		Line:   idx + 1,
		Column: offset - li.lineStart[idx] + 1,
		Offset: offset,
	}
}

// caretDiagnostic renders the line containing offset followed by a
// caret line pointing at it, in the style spec.md §7 describes.
func caretDiagnostic(format string, offset int) string {
	li := newLineIndex(format)
	loc := li.locationAt(offset)

	lineStart := li.lineStart[loc.Line-1]
	lineEnd := len(format)
	if loc.Line < len(li.lineStart) {
		lineEnd = li.lineStart[loc.Line] - 1
	}
	line := format[lineStart:lineEnd]

	caret := make([]byte, loc.Column)
	for i := range caret[:loc.Column-1] {
		if i < len(line) && line[i] == '\t' {
			caret[i] = '\t'
		} else {
			caret[i] = ' '
		}
	}
	caret[loc.Column-1] = '^'

	return line + "\n" + string(caret)
}
