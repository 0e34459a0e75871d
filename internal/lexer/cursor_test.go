package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paste/internal/source"
)

func newCursor(t *testing.T, content string) (Cursor, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("cursor.rs", []byte(content)))
	require.NotNil(t, file)
	return NewCursor(file), fs
}

func TestCursor_BumpUntilEOF(t *testing.T) {
	c, _ := newCursor(t, "[<a>]")
	var got []byte
	for !c.EOF() {
		got = append(got, c.Bump())
	}
	assert.Equal(t, "[<a>]", string(got))
	assert.Zero(t, c.Peek())
	assert.Zero(t, c.Bump(), "bump past the end is a no-op")
	assert.Equal(t, uint32(5), c.Off)
}

func TestCursor_Lookahead(t *testing.T) {
	c, _ := newCursor(t, "r#x")

	b0, b1, ok := c.Peek2()
	require.True(t, ok)
	assert.Equal(t, byte('r'), b0)
	assert.Equal(t, byte('#'), b1)
	assert.Equal(t, byte('x'), c.PeekAt(2))
	assert.Zero(t, c.PeekAt(3))

	c.Limit = 2
	assert.Zero(t, c.PeekAt(2), "PeekAt respects Limit")
	c.Bump()
	_, _, ok = c.Peek2()
	assert.False(t, ok, "one byte left before Limit")
	c.Bump()
	assert.True(t, c.EOF())
}

func TestCursor_Eat(t *testing.T) {
	c, _ := newCursor(t, "::x")
	assert.True(t, c.Eat(':'))
	assert.True(t, c.Eat(':'))
	assert.False(t, c.Eat(':'))
	assert.Equal(t, byte('x'), c.Peek())
	assert.True(t, c.Eat('x'))
	assert.False(t, c.Eat('x'), "Eat at EOF")
}

func TestCursor_MarkSpanReset(t *testing.T) {
	c, fs := newCursor(t, "fn get_x()")
	c.Bump()
	c.Bump()
	c.Bump()

	m := c.Mark()
	for c.Peek() != '(' {
		c.Bump()
	}
	sp := c.SpanFrom(m)
	assert.Equal(t, source.Span{File: c.File, Start: 3, End: 8}, sp)
	assert.Equal(t, "get_x", fs.Text(sp))
	assert.Equal(t, "get_x", c.Slice(m))

	c.Reset(m)
	assert.Equal(t, byte('g'), c.Peek())
	assert.True(t, c.SpanFrom(c.Mark()).Empty())
}

func TestCursor_MultibyteSpans(t *testing.T) {
	c, fs := newCursor(t, "α\nβ")
	m := c.Mark()
	c.Bump()
	c.Bump()
	sp := c.SpanFrom(m)
	assert.Equal(t, "α", fs.Text(sp))

	start, _ := fs.Resolve(sp)
	assert.Equal(t, source.LineCol{Line: 1, Col: 1}, start)

	c.Bump() // '\n'
	m = c.Mark()
	for !c.EOF() {
		c.Bump()
	}
	start, _ = fs.Resolve(c.SpanFrom(m))
	assert.Equal(t, source.LineCol{Line: 2, Col: 1}, start)
}

func TestCursor_BumpWhile(t *testing.T) {
	c, _ := newCursor(t, "  \tx")
	n := c.BumpWhile(func(b byte) bool { return b == ' ' || b == '\t' })
	assert.Equal(t, uint32(3), n)
	assert.Equal(t, byte('x'), c.Peek())
	assert.Zero(t, c.BumpWhile(isDec))

	c.Bump()
	assert.Zero(t, c.BumpWhile(func(byte) bool { return true }), "nothing left at EOF")
}
