package tsio

import (
	"io"
	"os"
)

// Sink is the byte-oriented output interface spec.md §6 calls for: an
// "append N bytes" contract. io.Writer already satisfies it, so any
// writable byte stream (a file, os.Stdout, a bytes.Buffer, a network
// connection) works as a sink without tsio needing its own interface.
type Sink = io.Writer

// reportDiagnostic writes err's caret diagnostic to stderr exactly
// once, per spec.md §7's propagation policy ("writes a human-readable
// diagnostic ... to standard error once per execution"). Errors that
// aren't a *FormatError (none should ever reach here, but defensively)
// are ignored rather than panicking a caller's process.
func reportDiagnostic(err error) {
	if fe, ok := err.(*FormatError); ok {
		os.Stderr.WriteString(fe.Diagnostic() + "\n")
	}
}

// Fstring compiles format and executes it against args, returning the
// newly built string, per spec.md §4.7. On error, the partial output
// produced before the failure is returned alongside a diagnostic
// written to stderr, matching spec.md §7's "already-produced output up
// to the error is retained."
func Fstring(format string, args ...any) string {
	tree, err := Compile(format)
	if err != nil {
		reportDiagnostic(err)
		return ""
	}
	buf := NewBuffer(0)
	if err := Execute(tree, buf, NewArgList(args...), NewOptions()); err != nil {
		reportDiagnostic(err)
	}
	return buf.String()
}

// Sprintf formats into *dst, replacing its previous contents, and
// returns the number of bytes written, or a negative value on error
// (matching the C printf family's return convention, per spec.md §4.7).
func Sprintf(dst *string, format string, args ...any) int {
	tree, err := Compile(format)
	if err != nil {
		reportDiagnostic(err)
		return -1
	}
	buf := NewBuffer(0)
	execErr := Execute(tree, buf, NewArgList(args...), NewOptions())
	*dst = buf.String()
	if execErr != nil {
		reportDiagnostic(execErr)
		return -1
	}
	return buf.Len()
}

// AddSprintf formats and appends to *dst, returning the number of bytes
// appended, or negative on error. Already-present content of *dst is
// never touched, even on failure.
func AddSprintf(dst *string, format string, args ...any) int {
	tree, err := Compile(format)
	if err != nil {
		reportDiagnostic(err)
		return -1
	}
	buf := NewBuffer(0)
	execErr := Execute(tree, buf, NewArgList(args...), NewOptions())
	*dst += buf.String()
	if execErr != nil {
		reportDiagnostic(execErr)
		return -1
	}
	return buf.Len()
}

// Fprintf formats and writes the result to sink, returning the number
// of bytes written, or negative on error.
func Fprintf(sink Sink, format string, args ...any) int {
	tree, err := Compile(format)
	if err != nil {
		reportDiagnostic(err)
		return -1
	}
	buf := NewBuffer(0)
	execErr := Execute(tree, buf, NewArgList(args...), NewOptions())
	n, writeErr := sink.Write(buf.Bytes())
	if execErr != nil {
		reportDiagnostic(execErr)
		return -1
	}
	if writeErr != nil {
		return -1
	}
	return n
}

// Oprintf formats and writes to standard output.
func Oprintf(format string, args ...any) int {
	return Fprintf(os.Stdout, format, args...)
}

// Eprintf formats and writes to standard error.
func Eprintf(format string, args ...any) int {
	return Fprintf(os.Stderr, format, args...)
}

// CompiledFormat caches a parsed FormatTree for reuse across many
// executions, per spec.md §4.7 and §9's "Tree reuse" design note: the
// tree itself is immutable and shared, while the handle owns its own
// buffer and sticky error flag so repeated Execute calls can accumulate
// output (e.g. building a multi-line report) until Reset clears both.
type CompiledFormat struct {
	tree       *FormatTree
	buf        *Buffer
	opts       *Options
	errorGiven bool
}

// NewCompiledFormat compiles format once; the returned handle can be
// executed many times, optionally against different argument lists,
// per spec.md §3's "Lifecycles". A nil opts uses the engine defaults.
func NewCompiledFormat(format string, opts *Options) (*CompiledFormat, error) {
	tree, err := Compile(format)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = NewOptions()
	}
	return &CompiledFormat{tree: tree, buf: NewBuffer(0), opts: opts}, nil
}

// Reset clears the handle's accumulated buffer and sticky error flag,
// per spec.md §4.7's "reset clears the per-execution buffer and sticky
// error flag."
func (c *CompiledFormat) Reset() {
	c.buf.Reset()
	c.errorGiven = false
}

// Execute runs the compiled tree against args, appending to the
// handle's buffer. Per spec.md §7's sticky-error propagation, once an
// execution through this handle has failed, further calls are no-ops
// until Reset is called.
func (c *CompiledFormat) Execute(args ...any) error {
	if c.errorGiven {
		return nil
	}
	err := Execute(c.tree, c.buf, NewArgList(args...), c.opts)
	if err != nil {
		c.errorGiven = true
		reportDiagnostic(err)
	}
	return err
}

// String returns the handle's accumulated output.
func (c *CompiledFormat) String() string { return c.buf.String() }

// Len returns the number of bytes accumulated so far.
func (c *CompiledFormat) Len() int { return c.buf.Len() }
