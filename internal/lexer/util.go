package lexer

import (
	"strings"
	"unicode"
)

func isIdentStartByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// XID_Start / XID_Continue, approximated by general category.
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

const (
	delimBytes = "()[]{}"
	punctBytes = "+-*/%^!&|=<>@.,;:#$?~" + delimBytes
)

// isPunctByte: одиночный символ пунктуации, включая скобки.
func isPunctByte(b byte) bool {
	return b != 0 && strings.IndexByte(punctBytes, b) >= 0
}

func isDelimByte(b byte) bool {
	return b != 0 && strings.IndexByte(delimBytes, b) >= 0
}

// rawHashesThenQuote reports whether '#'* '"' starts at offset off.
func (lx *Lexer) rawHashesThenQuote(off uint32) bool {
	for lx.cursor.PeekAt(off) == '#' {
		off++
	}
	return lx.cursor.PeekAt(off) == '"'
}
