package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"paste/internal/source"
)

// Cursor is a byte position in a file's content. Off never moves past Limit.
type Cursor struct {
	src   []byte
	File  source.FileID
	Off   uint32
	Limit uint32 // exclusive, len(content) by default
}

func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{src: f.Content, File: f.ID, Limit: limit}
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// PeekAt returns the byte n positions ahead, 0 past the limit.
func (c *Cursor) PeekAt(n uint32) byte {
	if i := c.Off + n; i < c.Limit {
		return c.src[i]
	}
	return 0
}

// Peek возвращает текущий байт или 0 на EOF
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// Peek2 returns the next two bytes; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.src[c.Off], c.src[c.Off+1], true
}

// Bump сдвигает курсор на байт и возвращает его (0 на EOF)
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	c.Off++
	return c.src[c.Off-1]
}

// BumpWhile consumes bytes while keep holds and reports how many it took.
func (c *Cursor) BumpWhile(keep func(byte) bool) uint32 {
	from := c.Off
	for c.Off < c.Limit && keep(c.src[c.Off]) {
		c.Off++
	}
	return c.Off - from
}

func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// rest is the unread part of the content up to Limit.
func (c *Cursor) rest() []byte {
	return c.src[c.Off:c.Limit]
}

// PeekRune decodes the rune at the cursor; size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.src[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.rest())
}

// BumpRune consumes one rune (one byte for invalid UTF-8) and returns it.
func (c *Cursor) BumpRune() rune {
	r, size := c.PeekRune()
	c.Off += uint32(size) //nolint:gosec // size <= utf8.UTFMax
	return r
}

// Mark is a saved offset used to build spans and to backtrack.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File, Start: uint32(m), End: c.Off}
}

// Slice returns the text read since m.
func (c *Cursor) Slice(m Mark) string {
	return string(c.src[m:c.Off])
}

func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
