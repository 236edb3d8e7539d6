package tsio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFstring(t *testing.T) {
	assert.Equal(t, "hello world", Fstring("hello %s", "world"))
}

func TestFstringOnError(t *testing.T) {
	assert.Equal(t, "", Fstring("%<%s%>", "not a tuple"))
}

func TestSprintf(t *testing.T) {
	var dst string
	n := Sprintf(&dst, "x=%d", 42)
	assert.Equal(t, 4, n)
	assert.Equal(t, "x=42", dst)

	dst = "previous"
	n = Sprintf(&dst, "y=%d", 1)
	assert.Equal(t, "y=1", dst)
	assert.Positive(t, n)
}

func TestSprintfOnError(t *testing.T) {
	var dst string
	n := Sprintf(&dst, "%<%s%>", 5)
	assert.Negative(t, n)
}

func TestAddSprintf(t *testing.T) {
	dst := "a="
	n := AddSprintf(&dst, "%d", 1)
	assert.Equal(t, 1, n)
	assert.Equal(t, "a=1", dst)

	n = AddSprintf(&dst, " b=%d", 2)
	assert.Equal(t, "a=1 b=2", dst)
	assert.Positive(t, n)
}

func TestFprintf(t *testing.T) {
	var buf bytes.Buffer
	n := Fprintf(&buf, "%s=%d", "n", 7)
	assert.Equal(t, 3, n)
	assert.Equal(t, "n=7", buf.String())
}

func TestFprintfOnError(t *testing.T) {
	var buf bytes.Buffer
	n := Fprintf(&buf, "%<%s%>", 5)
	assert.Negative(t, n)
}

func TestCompiledFormat(t *testing.T) {
	cf, err := NewCompiledFormat("n=%d ", nil)
	require.NoError(t, err)

	require.NoError(t, cf.Execute(1))
	require.NoError(t, cf.Execute(2))
	assert.Equal(t, "n=1 n=2 ", cf.String())

	cf.Reset()
	assert.Equal(t, "", cf.String())
	require.NoError(t, cf.Execute(3))
	assert.Equal(t, "n=3 ", cf.String())
}

func TestCompiledFormatStickyError(t *testing.T) {
	cf, err := NewCompiledFormat("%<%s%>", nil)
	require.NoError(t, err)

	err = cf.Execute("not a tuple")
	require.Error(t, err)

	// Sticky: a second Execute is a no-op until Reset.
	err = cf.Execute("not a tuple")
	assert.NoError(t, err)

	cf.Reset()
	err = cf.Execute("not a tuple")
	require.Error(t, err)
}

func TestCompileErrorPropagates(t *testing.T) {
	_, err := NewCompiledFormat("%[ %d", nil)
	require.Error(t, err)
	assert.Equal(t, ErrorParse, err.(*FormatError).Kind)
}
