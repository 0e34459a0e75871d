package tree

import (
	"paste/internal/diag"
	"paste/internal/source"
	"paste/internal/token"
)

type frame struct {
	open   token.Token
	delim  token.Delimiter
	stream token.Stream
}

// Build превращает плоский список токенов (с EOF в конце) в дерево.
// Возвращает поток верхнего уровня и trivia, прикреплённые к EOF.
//
// Восстановление после ошибок:
//   - лишняя закрывающая скобка остаётся в потоке как Punct (TRE2001);
//   - незакрытая группа закрывается неявно на EOF (TRE2002);
//   - `{[}`: внутренняя `[` закрывается неявно, `}` закрывает `{` (TRE2002);
//   - прочие несовпадения — скобка остаётся Punct (TRE2003).
func Build(tokens []token.Token, r diag.Reporter) (token.Stream, []token.Trivia) {
	b := builder{reporter: r}
	var trailing []token.Trivia
	var eofSpan source.Span

	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			trailing = tok.Leading
			eofSpan = tok.Span
			break
		}
		if tok.Kind != token.Punct || len(tok.Text) != 1 {
			b.push(tok)
			continue
		}
		d, isOpen, ok := delimOf(tok.Text[0])
		switch {
		case !ok:
			b.push(tok)
		case isOpen:
			b.stack = append(b.stack, frame{open: tok, delim: d})
		default:
			b.close(tok, d)
		}
	}

	for len(b.stack) > 0 {
		top := b.stack[len(b.stack)-1]
		b.report(diag.TreeUnclosedDelimiter, top.open.Span, "unclosed delimiter '"+top.open.Text+"'")
		b.fuse(token.Token{Span: eofSpan})
	}
	return b.root, trailing
}

type builder struct {
	reporter diag.Reporter
	root     token.Stream
	stack    []frame
}

func (b *builder) push(tok token.Token) {
	if n := len(b.stack); n > 0 {
		b.stack[n-1].stream = append(b.stack[n-1].stream, tok)
		return
	}
	b.root = append(b.root, tok)
}

func (b *builder) close(tok token.Token, d token.Delimiter) {
	n := len(b.stack)
	if n == 0 {
		b.report(diag.TreeUnmatchedClose, tok.Span, "unexpected closing delimiter '"+tok.Text+"'")
		b.push(tok)
		return
	}
	if b.stack[n-1].delim == d {
		b.fuse(tok)
		return
	}
	if n > 1 && b.stack[n-2].delim == d {
		inner := b.stack[n-1]
		b.report(diag.TreeUnclosedDelimiter, inner.open.Span, "unclosed delimiter '"+inner.open.Text+"'")
		b.fuse(token.Token{Span: tok.Span.ZeroideToStart()})
		b.fuse(tok)
		return
	}
	b.report(diag.TreeMismatchedClose, tok.Span,
		"mismatched closing delimiter '"+tok.Text+"', expected '"+b.stack[n-1].delim.Close()+"'")
	b.push(tok)
}

// fuse закрывает верхний кадр токеном closeTok и кладёт группу в родителя.
func (b *builder) fuse(closeTok token.Token) {
	n := len(b.stack)
	top := b.stack[n-1]
	b.stack = b.stack[:n-1]

	g := token.NewGroup(top.delim, top.open.Span, closeTok.Span, top.stream)
	g.Leading = top.open.Leading
	g.Group.CloseLeading = closeTok.Leading
	b.push(g)
}

func (b *builder) report(code diag.Code, sp source.Span, msg string) {
	diag.Emit(b.reporter, diag.NewError(code, sp, msg))
}

func delimOf(ch byte) (d token.Delimiter, isOpen, ok bool) {
	switch ch {
	case '(':
		return token.DelimParen, true, true
	case ')':
		return token.DelimParen, false, true
	case '[':
		return token.DelimBracket, true, true
	case ']':
		return token.DelimBracket, false, true
	case '{':
		return token.DelimBrace, true, true
	case '}':
		return token.DelimBrace, false, true
	}
	return token.DelimNone, false, false
}

// Flatten is the inverse of Build: groups are expanded back into their
// delimiter punctuation. Invisible groups contribute only their contents.
func Flatten(s token.Stream) []token.Token {
	out := make([]token.Token, 0, len(s))
	return flattenInto(out, s)
}

func flattenInto(out []token.Token, s token.Stream) []token.Token {
	for _, t := range s {
		if t.Kind != token.Group || t.Group == nil {
			out = append(out, t)
			continue
		}
		g := t.Group
		if g.Delim == token.DelimNone {
			out = flattenInto(out, g.Stream)
			continue
		}
		out = append(out, token.Token{Kind: token.Punct, Span: g.Open, Text: g.Delim.Open(), Leading: t.Leading})
		out = flattenInto(out, g.Stream)
		out = append(out, token.Token{Kind: token.Punct, Span: g.Close, Text: g.Delim.Close(), Leading: g.CloseLeading})
	}
	return out
}
