package tsio

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runIntKernel compiles directive (a bare "%...d"-style format with no
// surrounding text) and runs the integer kernel against value, for
// tests that want to check one rendering rule in isolation.
func runIntKernel(t *testing.T, directive string, value int64, unsigned bool, raw uint64) string {
	t.Helper()
	spec := compileOne(t, directive)
	var buf Buffer
	require.NoError(t, writeIntegerKernel(&buf, &spec, value, unsigned, raw))
	return buf.String()
}

func TestIntegerKernelAgainstStdPrintf(t *testing.T) {
	flagCombos := []string{"", "-", "0", "+", " ", "#", "-0", "+0", "#0", "-+", "# "}
	widths := []int{0, 1, 4, 8}
	precisions := []string{"", ".0", ".3", ".6"}
	values := []int64{0, 1, -1, 42, -42, 12345, -12345}

	for _, verb := range []byte{'d', 'o', 'x', 'X'} {
		for _, flags := range flagCombos {
			for _, width := range widths {
				for _, prec := range precisions {
					for _, v := range values {
						if (verb == 'o' || verb == 'x' || verb == 'X') && v < 0 {
							continue // unsigned bases: spec treats sign as presentation, not this equivalence axis
						}
						widthStr := ""
						if width > 0 {
							widthStr = fmt.Sprintf("%d", width)
						}
						directive := fmt.Sprintf("%%%s%s%s%c", flags, widthStr, prec, verb)
						stdRef := fmt.Sprintf(directive, v)

						spec := compileOne(t, directive)
						var buf Buffer
						err := writeIntegerKernel(&buf, &spec, v, false, uint64(v))
						require.NoError(t, err)
						assert.Equalf(t, stdRef, buf.String(), "directive=%q value=%d", directive, v)
					}
				}
			}
		}
	}
}

func TestIntegerKernelBases(t *testing.T) {
	t.Run("binary with alternative prefix", func(t *testing.T) {
		assert.Equal(t, "0b101", runIntKernel(t, "%#b", 5, true, 5))
	})

	t.Run("octal alternative prefix is the leading zero itself", func(t *testing.T) {
		assert.Equal(t, "010", runIntKernel(t, "%#o", 8, true, 8))
	})

	t.Run("octal alternative with zero value still emits one zero", func(t *testing.T) {
		assert.Equal(t, "0", runIntKernel(t, "%#o", 0, true, 0))
	})

	t.Run("hex alternative prefix suppressed for zero", func(t *testing.T) {
		assert.Equal(t, "0", runIntKernel(t, "%#x", 0, true, 0))
	})

	t.Run("hex alternative prefix stays suppressed when precision forces zero-padded digits", func(t *testing.T) {
		assert.Equal(t, "0000", runIntKernel(t, "%#.4x", 0, true, 0))
	})

	t.Run("precision zero and value zero emits nothing but padding", func(t *testing.T) {
		assert.Equal(t, "   ", runIntKernel(t, "%3.0d", 0, false, 0))
	})

	t.Run("precision demotes numeric fill to space fill", func(t *testing.T) {
		assert.Equal(t, "  042", runIntKernel(t, "%05.3d", 42, false, 0))
	})

	t.Run("center justify splits padding floor-left", func(t *testing.T) {
		assert.Equal(t, " 42  ", runIntKernel(t, "%^5d", 42, false, 0))
	})
}

func TestFloatKernel(t *testing.T) {
	run := func(directive string, value float64) string {
		spec := compileOne(t, directive)
		var buf Buffer
		require.NoError(t, writeFloatKernel(&buf, &spec, value, 6))
		return buf.String()
	}

	t.Run("matches std fmt on the overlap set", func(t *testing.T) {
		cases := []struct {
			directive string
			value     float64
		}{
			{"%f", 3.14159},
			{"%.2f", 3.14159},
			{"%10.2f", 3.14159},
			{"%-10.2f", 3.14159},
			{"%+.2f", 3.14159},
			{"%e", 12345.6789},
			{"%.3E", 12345.6789},
			{"%g", 0.0001234},
			{"%G", 123456789.0},
		}
		for _, c := range cases {
			ref := c.directive
			if ref == "%g" || ref == "%G" {
				// Go's %g/%G without a precision prints the shortest
				// representation; C printf defaults to precision 6.
				ref = "%.6" + ref[1:]
			}
			stdRef := fmt.Sprintf(ref, c.value)
			assert.Equal(t, stdRef, run(c.directive, c.value), c.directive)
		}
	})
}

func TestStringKernel(t *testing.T) {
	run := func(directive, value string) string {
		spec := compileOne(t, directive)
		var buf Buffer
		require.NoError(t, writeStringKernel(&buf, &spec, value))
		return buf.String()
	}

	t.Run("width is a minimum, right justified by default", func(t *testing.T) {
		assert.Equal(t, "      four", run("%10s", "four"))
	})

	t.Run("left justify pads on the right", func(t *testing.T) {
		assert.Equal(t, "four      ", run("%-10s", "four"))
	})

	t.Run("precision truncates", func(t *testing.T) {
		assert.Equal(t, "fo", run("%.2s", "four"))
	})

	t.Run("nice mode replaces non-printables with dots", func(t *testing.T) {
		assert.Equal(t, "a.b", run("%S", "a\x01b"))
	})

	t.Run("nice mode with alternative flag uses C escapes", func(t *testing.T) {
		assert.Equal(t, `a\nb`, run("%#S", "a\nb"))
	})

	t.Run("alfa fill character pads strings", func(t *testing.T) {
		assert.Equal(t, "____ab", run(`%"_6s`, "ab"))
	})
}

func TestCharKernel(t *testing.T) {
	run := func(directive string, value byte) string {
		spec := compileOne(t, directive)
		var buf Buffer
		require.NoError(t, writeCharKernel(&buf, &spec, value))
		return buf.String()
	}

	t.Run("raw byte", func(t *testing.T) {
		assert.Equal(t, "x", run("%c", 'x'))
	})

	t.Run("precision zero suppresses the character", func(t *testing.T) {
		assert.Equal(t, "", run("%.0c", 'x'))
	})

	t.Run("nice mode on C specifier", func(t *testing.T) {
		assert.Equal(t, ".", run("%C", 0x01))
	})
}

func TestBooleanKernel(t *testing.T) {
	run := func(directive string, value bool) string {
		spec := compileOne(t, directive)
		var buf Buffer
		require.NoError(t, writeBooleanKernel(&buf, &spec, value))
		return buf.String()
	}

	t.Run("s specifier prints true/false", func(t *testing.T) {
		assert.Equal(t, "true", run("%s", true))
		assert.Equal(t, "false", run("%s", false))
	})

	t.Run("d specifier treats bool as 0/1", func(t *testing.T) {
		assert.Equal(t, "1", run("%d", true))
		assert.Equal(t, "0", run("%d", false))
	})
}

func TestPointerKernel(t *testing.T) {
	spec := compileOne(t, "%p")
	var buf Buffer
	require.NoError(t, writePointerKernel(&buf, &spec, 0xabc))
	assert.Equal(t, "0xabc", buf.String())
}
