package lexer

import (
	"strconv"

	"paste/internal/diag"
	"paste/internal/token"
)

// scanPunct выдаёт одиночный символ пунктуации. Составные операторы (`::`, `=>`)
// не склеиваются: вместо этого первый символ помечается Joint.
// Разделители скобок тоже выходят как Punct; группы собирает пакет tree.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()
	if !isPunctByte(b) {
		r, _ := lx.cursor.PeekRune()
		lx.cursor.BumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+strconv.QuoteRune(r))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{Kind: token.Punct, Span: sp, Text: lx.text(sp)}
	if !isDelimByte(b) {
		next := lx.cursor.Peek()
		tok.Joint = isPunctByte(next) && !isDelimByte(next) && !lx.startsComment()
	}
	return tok
}

// startsComment: курсор стоит на "//" или "/*".
func (lx *Lexer) startsComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '/' && (b1 == '/' || b1 == '*')
}
