package lexer

import (
	"paste/internal/diag"
	"paste/internal/token"
)

func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

func isNewline(b byte) bool { return b == '\n' }

func notNewline(b byte) bool { return b != '\n' }

// collectLeadingTrivia fills lx.hold with the trivia before the next token.
// Runs of blanks and runs of newlines each become one entry; comments are
// kept whole so the printer can reproduce them.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case isBlank(b):
			lx.cursor.BumpWhile(isBlank)
			lx.pushTrivia(token.TriviaSpace, start)
		case isNewline(b):
			lx.cursor.BumpWhile(isNewline)
			lx.pushTrivia(token.TriviaNewline, start)
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			lx.scanLineComment(start)
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.scanBlockComment(start)
		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.Slice(start),
	})
}

// "//" до конца строки; "///" помечается как doc-комментарий
func (lx *Lexer) scanLineComment(start Mark) {
	kind := token.TriviaLineComment
	if lx.cursor.PeekAt(2) == '/' {
		kind = token.TriviaDocLine
	}
	lx.cursor.BumpWhile(notNewline)
	lx.pushTrivia(kind, start)
}

// scanBlockComment consumes a possibly nested /* */ comment. An unclosed
// comment is reported and runs to EOF.
func (lx *Lexer) scanBlockComment(start Mark) {
	lx.cursor.Bump()
	lx.cursor.Bump()
	depth := 1
	for depth > 0 && !lx.cursor.EOF() {
		b0, b1, _ := lx.cursor.Peek2()
		switch {
		case b0 == '/' && b1 == '*':
			depth++
		case b0 == '*' && b1 == '/':
			depth--
		default:
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
		lx.cursor.Bump()
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	lx.pushTrivia(token.TriviaBlockComment, start)
}
