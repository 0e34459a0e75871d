package lexer

import (
	"paste/internal/diag"
	"paste/internal/token"
)

// Поддержка: 0, 1_000, 0b..., 0o..., 0x..., 1.0, 1e-3, 2.5e+10f64 и суффиксы (u8, i64, f32, usize).
// Дробная часть только если после '.' идёт цифра: `1..2` и `x.0.1` остаются пунктуацией.
// Суффикс входит в Token.Text.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			base := lx.cursor.PeekAt(1) | 0x20
			lx.cursor.Bump()
			lx.cursor.Bump()
			digits := 0
			for {
				b := lx.cursor.Peek()
				if b == '_' {
					lx.cursor.Bump()
					continue
				}
				if !digitOf(base, b) {
					break
				}
				lx.cursor.Bump()
				digits++
			}
			if digits == 0 {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected digits after base prefix")
				lx.eatIdentContinue()
				sp = lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
			lx.eatIdentContinue()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
		}
	}

	lx.eatDecimal()

	if lx.isNumberAfterDot() {
		lx.cursor.Bump() // '.'
		lx.eatDecimal()
		kind = token.FloatLit
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			lx.eatDecimal()
			kind = token.FloatLit
		} else {
			// это суффикс вроде `1e` или `1em`, не экспонента
			lx.cursor.Reset(m)
		}
	}

	sfx := lx.cursor.Mark()
	lx.eatIdentContinue()
	suffix := lx.text(lx.cursor.SpanFrom(sfx))
	if suffix == "f32" || suffix == "f64" {
		kind = token.FloatLit
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatDecimal() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

// Проверка для кейса "1.5": текущая точка, дальше цифра?
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

func digitOf(base, b byte) bool {
	switch base {
	case 'b':
		return b == '0' || b == '1'
	case 'o':
		return b >= '0' && b <= '7'
	default:
		return isHex(b)
	}
}
