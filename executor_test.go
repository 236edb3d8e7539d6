package tsio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fstringErr is Fstring's counterpart for tests that need to observe
// the error, not just the diagnostic tsio writes to stderr.
func fstringErr(format string, args ...any) (string, error) {
	tree, err := Compile(format)
	if err != nil {
		return "", err
	}
	buf := NewBuffer(0)
	err = Execute(tree, buf, NewArgList(args...), NewOptions())
	return buf.String(), err
}

func TestConcreteScenarios(t *testing.T) {
	t.Run("scenario 1: repeat group between two leaves", func(t *testing.T) {
		out, err := fstringErr("%5d %2{**%} %s", 1, "two")
		require.NoError(t, err)
		assert.Equal(t, "    1 **** two", out)
	})

	t.Run("scenario 2: container iteration with trailing separator", func(t *testing.T) {
		out, err := fstringErr("%[v=%d, %]", []int{9, 8, 7, 6})
		require.NoError(t, err)
		assert.Equal(t, "v=9, v=8, v=7, v=6, ", out)
	})

	t.Run("scenario 3: alternative flag suppresses the trailing separator", func(t *testing.T) {
		out, err := fstringErr("{ %#[v=%d, %] }", []int{9, 8, 7, 6})
		require.NoError(t, err)
		assert.Equal(t, "{ v=9, v=8, v=7, v=6 }", out)
	})

	t.Run("scenario 4: sequential tuple destructuring", func(t *testing.T) {
		type record struct {
			N int
			F float64
			S string
		}
		out, err := fstringErr("%<%5d %5.2f %10s%>", record{1, 2.3, "four"})
		require.NoError(t, err)
		assert.Equal(t, "    1  2.30       four", out)
	})

	t.Run("scenario 5: column-tab anchoring", func(t *testing.T) {
		out, err := fstringErr("%d%5T%d%5T%d", 1, 1234, 123456)
		require.NoError(t, err)
		assert.Equal(t, "1    1234 123456", out)
	})

	t.Run("scenario 6: a pure repeat-group line", func(t *testing.T) {
		out, err := fstringErr("%72{-%}")
		require.NoError(t, err)
		assert.Len(t, out, 72)
		assert.Equal(t, out, stringOf('-', 72))
	})
}

func stringOf(c byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

func TestNegativeScenarios(t *testing.T) {
	t.Run("tuple specifier on a non-tuple argument", func(t *testing.T) {
		_, err := fstringErr("%<%s%>", "not a tuple")
		require.Error(t, err)
		assert.Equal(t, ErrorArgumentShape, err.(*FormatError).Kind)
	})

	t.Run("mismatched structural closer", func(t *testing.T) {
		_, err := fstringErr("%[ %d %}")
		require.Error(t, err)
		assert.Equal(t, ErrorParse, err.(*FormatError).Kind)
	})

	t.Run("dynamic width consumes the only argument, leaving none for the value", func(t *testing.T) {
		_, err := fstringErr("%*d", 5)
		require.Error(t, err)
		assert.Equal(t, ErrorArity, err.(*FormatError).Kind)
	})

	t.Run("mixing sequential and positional specifiers", func(t *testing.T) {
		_, err := fstringErr("%d %1$d", 1, 2)
		require.Error(t, err)
		assert.Equal(t, ErrorScope, err.(*FormatError).Kind)
	})

	t.Run("positional index out of range", func(t *testing.T) {
		_, err := fstringErr("%2$d %1$d", 1)
		require.Error(t, err)
		assert.Equal(t, ErrorArity, err.(*FormatError).Kind)
	})
}

func TestContainerIndex(t *testing.T) {
	t.Run("default index is 0-based", func(t *testing.T) {
		out, err := fstringErr("%[%N:%d %]", []int{10, 20, 30})
		require.NoError(t, err)
		assert.Equal(t, "0:10 1:20 2:30 ", out)
	})

	t.Run("alternative flag makes the index 1-based", func(t *testing.T) {
		out, err := fstringErr("%[%#N:%d %]", []int{10, 20, 30})
		require.NoError(t, err)
		assert.Equal(t, "1:10 2:20 3:30 ", out)
	})

	t.Run("used outside any iteration scope is a scope error", func(t *testing.T) {
		_, err := fstringErr("%N")
		require.Error(t, err)
		assert.Equal(t, ErrorScope, err.(*FormatError).Kind)
	})

	t.Run("repeat groups also push an index scope", func(t *testing.T) {
		out, err := fstringErr("%3{%N %}")
		require.NoError(t, err)
		assert.Equal(t, "0 1 2 ", out)
	})
}

func TestPositionalPermutation(t *testing.T) {
	reference, err := fstringErr("%d-%d-%d", 1, 2, 3)
	require.NoError(t, err)

	permuted, err := fstringErr("%1$d-%2$d-%3$d", 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, reference, permuted)

	reordered, err := fstringErr("%3$d-%1$d-%2$d", 2, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, reference, reordered)
}

// TestIdempotentPadding checks spec.md §8's "for any content of length
// L and width W >= L, output length equals max(L, W)" invariant.
func TestIdempotentPadding(t *testing.T) {
	cases := []struct {
		directive string
		minWidth  int
	}{
		{"%s", 2},
		{"%1s", 2},
		{"%2s", 2},
		{"%5s", 5},
		{"%10s", 10},
	}
	for _, c := range cases {
		out, err := fstringErr(c.directive, "hi")
		require.NoError(t, err)
		assert.Len(t, out, c.minWidth)
	}
}

func TestTupleArity(t *testing.T) {
	type record struct{ A, B, C int }

	t.Run("too few format children leaves fields unconsumed", func(t *testing.T) {
		_, err := fstringErr("%<%d%>", record{1, 2, 3})
		require.Error(t, err)
		assert.Equal(t, ErrorArity, err.(*FormatError).Kind)
	})

	t.Run("too many format children runs out of fields", func(t *testing.T) {
		type pair struct{ A, B int }
		_, err := fstringErr("%<%d %d %d%>", pair{1, 2})
		require.Error(t, err)
		assert.Equal(t, ErrorArity, err.(*FormatError).Kind)
	})

	t.Run("positional children select fields out of order", func(t *testing.T) {
		// Any $-index makes the whole format positional, so the tuple
		// directive itself takes its argument by index too.
		out, err := fstringErr("%1$<%2$d %1$d%>", record{A: 1, B: 2, C: 3})
		require.NoError(t, err)
		assert.Equal(t, "2 1", out)
	})
}

func TestScalarThroughContainer(t *testing.T) {
	out, err := fstringErr("%[%6s%]", "hi")
	require.NoError(t, err)
	assert.Equal(t, "    hi", out)
}
