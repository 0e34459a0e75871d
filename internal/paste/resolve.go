package paste

import (
	"strings"

	"paste/internal/diag"
	"paste/internal/source"
	"paste/internal/token"
)

// Fragment is one piece of text contributing to a pasted identifier.
type Fragment struct {
	Text string
	Span source.Span
	// Nested is set when the text came from an inner paste-span.
	Nested bool
}

type resolver struct {
	x     *expander
	depth int
	frags []Fragment
}

// resolveSpan turns the body of a paste-span into fragments. Nested spans
// are fully built before the enclosing span continues (post-order).
func (r *resolver) resolveSpan(body token.Stream) ([]Fragment, bool, *Error) {
	lifetime := false
	if body[0].Kind == token.Lifetime {
		lifetime = true
		r.frags = append(r.frags, Fragment{Text: strings.TrimPrefix(body[0].Text, "'"), Span: body[0].Span})
		body = body[1:]
	}
	if err := r.resolveStream(body); err != nil {
		return nil, false, err
	}
	return r.frags, lifetime, nil
}

func (r *resolver) resolveStream(toks token.Stream) *Error {
	last := -1 // индекс первого фрагмента предыдущего элемента
	for i := 0; i < len(toks); i++ {
		t := toks[i]

		if t.IsPunct(':') {
			if last < 0 {
				return newError(UnsupportedFragment, t.Span, "case modifier `:` must follow a fragment")
			}
			if t.Joint || i+1 >= len(toks) || toks[i+1].Kind != token.Ident {
				return newError(UnsupportedFragment, t.Span, "expected a case modifier name after `:`")
			}
			i++
			if err := r.applyModifier(last, toks[i]); err != nil {
				return err
			}
			continue
		}

		start := len(r.frags)
		if err := r.resolveToken(t); err != nil {
			return err
		}
		if len(r.frags) > start {
			last = start
		}
	}
	return nil
}

func (r *resolver) resolveToken(t token.Token) *Error {
	switch t.Kind {
	case token.Ident:
		r.frags = append(r.frags, Fragment{Text: strings.TrimPrefix(t.Text, "r#"), Span: t.Span})
		return nil

	case token.IntLit, token.StringLit, token.CharLit,
		token.FloatLit, token.RawStringLit, token.ByteLit, token.ByteStringLit:
		text, err := literalText(t)
		if err != nil {
			return err
		}
		r.frags = append(r.frags, Fragment{Text: text, Span: t.Span})
		return nil

	case token.Lifetime:
		return newError(UnsupportedFragment, t.Span, "lifetime `%s` is only allowed at the start of a paste span", t.Text)

	case token.Group:
		return r.resolveGroup(t)

	case token.Punct:
		if t.Text == "$" {
			return newError(UnsupportedFragment, t.Span, "unexpanded macro variable inside paste span")
		}
		return newError(UnsupportedFragment, t.Span, "unexpected punctuation `%s` inside paste span", t.Text)
	}
	return newError(UnsupportedFragment, t.Span, "unexpected token `%s` inside paste span", t.Text)
}

func (r *resolver) resolveGroup(t token.Token) *Error {
	switch {
	case t.Group.Delim == token.DelimNone:
		if err := r.x.checkDepth(t, r.depth+1); err != nil {
			return err
		}
		inner := resolver{x: r.x, depth: r.depth + 1, frags: r.frags}
		if err := inner.resolveStream(t.Group.Stream); err != nil {
			return err
		}
		r.frags = inner.frags
		return nil

	case shapeOf(t) == shapeSpan:
		out, err := r.x.pasteSpan(t, r.depth+1)
		if err != nil {
			return err
		}
		r.frags = append(r.frags, Fragment{Text: out.Text, Span: out.Span, Nested: true})
		return nil

	case shapeOf(t) == shapeMalformed:
		return malformedSpan(t)
	}
	return newError(UnsupportedFragment, t.Span,
		"delimited group `%s…%s` cannot be pasted into an identifier", t.Group.Delim.Open(), t.Group.Delim.Close())
}

// applyModifier collapses the fragments of the previous element into one and
// transforms its text.
func (r *resolver) applyModifier(from int, name token.Token) *Error {
	mod, ok := lookupModifier(name.Text)
	if !ok {
		return newError(UnsupportedFragment, name.Span,
			"unknown case modifier `%s` (expected lower, upper, snake, camel or lower_camel)", name.Text)
	}
	var sb strings.Builder
	sp := r.frags[from].Span
	for _, f := range r.frags[from:] {
		sb.WriteString(f.Text)
		sp = coverSpan(sp, f.Span)
	}
	r.frags = append(r.frags[:from], Fragment{Text: mod(sb.String()), Span: sp.Cover(name.Span)})
	return nil
}

func noteIn(tok token.Token) diag.Note {
	return diag.Note{Span: tok.Span, Msg: "in this paste span"}
}
