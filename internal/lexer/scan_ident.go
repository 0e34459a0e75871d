package lexer

import (
	"strconv"
	"unicode/utf8"

	"paste/internal/diag"
	"paste/internal/token"
)

// scanIdent сканирует идентификатор (ключевые слова тоже Ident).
// Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.cursor.PeekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp}
	}
	if r >= utf8.RuneSelf && !isIdentStartRune(r) {
		lx.cursor.BumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+strconv.QuoteRune(r))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.cursor.BumpRune()
	lx.eatIdentContinue()

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: lx.text(sp)}
}

// scanRawIdent сканирует r#ident; Text сохраняет префикс.
func (lx *Lexer) scanRawIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // r
	lx.cursor.Bump() // #
	lx.cursor.BumpRune()
	lx.eatIdentContinue()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatIdentContinue() {
	for {
		r, size := lx.cursor.PeekRune()
		if size == 0 || !isIdentContinueRune(r) {
			return
		}
		lx.cursor.BumpRune()
	}
}
