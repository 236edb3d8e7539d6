package tsio

import "fmt"

// ErrorKind classifies a FormatError per the taxonomy in spec.md §7.
type ErrorKind int

const (
	// ErrorParse covers malformed specifiers and unmatched structural
	// brackets, discovered while compiling the format tree.
	ErrorParse ErrorKind = iota
	// ErrorArgumentShape covers an argument whose type is incompatible
	// with its specifier (e.g. %f on a string, %n on a non-pointer).
	ErrorArgumentShape
	// ErrorArity covers too few/many arguments, or a positional index
	// out of range.
	ErrorArity
	// ErrorScope covers %N used outside an iteration scope, or mixing
	// positional and sequential specifiers.
	ErrorScope
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorParse:
		return "parse error"
	case ErrorArgumentShape:
		return "argument error"
	case ErrorArity:
		return "arity error"
	case ErrorScope:
		return "scope error"
	default:
		return "error"
	}
}

// FormatError is the error type returned for any failure the engine
// encounters while compiling or executing a format string. It always
// carries enough information to render a caret diagnostic.
type FormatError struct {
	Kind    ErrorKind
	Message string
	Format  string
	Offset  int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("tsio: %s: %s @ %s", e.Kind, e.Message, e.location())
}

func (e *FormatError) location() Location {
	return newLineIndex(e.Format).locationAt(e.Offset)
}

// Diagnostic renders the human-readable, caret-annotated diagnostic
// spec.md §7 requires; the convenience adapters in api.go write it to
// standard error once per failed execution.
func (e *FormatError) Diagnostic() string {
	return fmt.Sprintf("%s: %s\n%s", e.Kind, e.Message, caretDiagnostic(e.Format, e.Offset))
}

func newParseError(format string, offset int, message string, args ...any) *FormatError {
	return &FormatError{Kind: ErrorParse, Message: fmt.Sprintf(message, args...), Format: format, Offset: offset}
}

func newArgumentShapeError(format string, offset int, message string, args ...any) *FormatError {
	return &FormatError{Kind: ErrorArgumentShape, Message: fmt.Sprintf(message, args...), Format: format, Offset: offset}
}

func newArityError(format string, offset int, message string, args ...any) *FormatError {
	return &FormatError{Kind: ErrorArity, Message: fmt.Sprintf(message, args...), Format: format, Offset: offset}
}

func newScopeError(format string, offset int, message string, args ...any) *FormatError {
	return &FormatError{Kind: ErrorScope, Message: fmt.Sprintf(message, args...), Format: format, Offset: offset}
}
