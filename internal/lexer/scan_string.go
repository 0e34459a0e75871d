package lexer

import (
	"unicode/utf8"

	"paste/internal/diag"
	"paste/internal/token"
)

// scanString сканирует "..." (и b"..." при prefix=1). Escape-последовательности
// не проверяются: '\' просто съедает следующий байт. Перевод строки внутри допустим.
func (lx *Lexer) scanString(kind token.Kind, prefix int) token.Token {
	start := lx.cursor.Mark()
	for range prefix {
		lx.cursor.Bump()
	}
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '"' {
			lx.eatIdentContinue() // суффикс
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanRawString сканирует r"...", r#"..."#, br"..." и т.п.
func (lx *Lexer) scanRawString(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() == 'b' {
		lx.cursor.Bump()
	}
	lx.cursor.Bump() // r
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	if !lx.cursor.Eat('"') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "expected '\"' after raw string prefix")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			lx.eatIdentContinue()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanQuote различает char-литерал ('x', '\n') и lifetime ('a, 'static).
// С префиксом b всегда байтовый литерал.
func (lx *Lexer) scanQuote(isByte bool) token.Token {
	start := lx.cursor.Mark()
	if isByte {
		lx.cursor.Bump() // b
	}
	lx.cursor.Bump() // '

	kind := token.CharLit
	if isByte {
		kind = token.ByteLit
	}

	switch b := lx.cursor.Peek(); {
	case b == '\\':
		lx.cursor.Bump()
		lx.cursor.BumpRune()
		// \u{...} и \x.. — дочитываем до закрывающей кавычки
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.finishChar(start, kind)

	case b == '\n' || lx.cursor.EOF():
		return lx.finishChar(start, kind)

	default:
		m := lx.cursor.Mark()
		r, _ := lx.cursor.PeekRune()
		lx.cursor.BumpRune()
		if lx.cursor.Peek() == '\'' {
			return lx.finishChar(start, kind)
		}
		if !isByte && (isIdentStartRune(r) || (r < utf8.RuneSelf && isIdentStartByte(byte(r)))) {
			// lifetime / label
			lx.cursor.Reset(m)
			lx.cursor.BumpRune()
			lx.eatIdentContinue()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Lifetime, Span: sp, Text: lx.text(sp)}
		}
		return lx.finishChar(start, kind)
	}
}

func (lx *Lexer) finishChar(start Mark, kind token.Kind) token.Token {
	if !lx.cursor.Eat('\'') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.eatIdentContinue()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
