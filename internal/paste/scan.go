package paste

import (
	"strconv"

	"paste/internal/token"
	"paste/internal/trace"
)

// Expand replaces every paste-span in stream with the token it builds and
// returns the rewritten stream. Groups are rebuilt with their original
// delimiters, spans and trivia; all other tokens pass through verbatim.
//
// On failure the returned error is a Diagnostics value and the stream is nil.
func Expand(stream token.Stream, opts Options) (token.Stream, error) {
	sp := trace.Begin(opts.Tracer, trace.ScopePass, "paste.expand", opts.ParentSpan)
	x := &expander{opts: opts, limit: opts.maxDepth(), traceID: sp.ID()}

	out, err := x.expandStream(stream, 0)
	if err != nil {
		sp.Attr("kind", err.Kind.String()).End(err.Message)
		return nil, Diagnostics{err}
	}
	sp.Attr("spans", strconv.Itoa(x.spans)).End("")
	return out, nil
}

type expander struct {
	opts    Options
	limit   int
	spans   int
	traceID uint64
}

// expandStream is the scanner: it recurses into groups and hands paste-spans
// to the resolver, appending results in input order.
func (x *expander) expandStream(in token.Stream, depth int) (token.Stream, *Error) {
	if len(in) == 0 {
		return in, nil
	}
	out := make(token.Stream, 0, len(in))
	for i, tok := range in {
		if tok.Kind != token.Group || tok.Group == nil {
			out = append(out, tok)
			continue
		}

		if x.opts.DocAttributes && isDocAttribute(in, i) {
			g, err := x.pasteDocAttribute(tok, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
			continue
		}

		switch shapeOf(tok) {
		case shapeSpan:
			id, err := x.pasteSpan(tok, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		case shapeMalformed:
			return nil, malformedSpan(tok)
		default:
			g, err := x.expandGroup(tok, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
		}
	}
	return out, nil
}

func (x *expander) expandGroup(tok token.Token, depth int) (token.Token, *Error) {
	if err := x.checkDepth(tok, depth); err != nil {
		return token.Token{}, err
	}
	inner, err := x.expandStream(tok.Group.Stream, depth)
	if err != nil {
		return token.Token{}, err
	}
	g := *tok.Group
	g.Stream = inner
	tok.Group = &g
	return tok, nil
}

// pasteSpan resolves one `[< … >]` group into a single token.
func (x *expander) pasteSpan(tok token.Token, depth int) (token.Token, *Error) {
	if err := x.checkDepth(tok, depth); err != nil {
		return token.Token{}, err
	}
	inner := tok.Group.Stream
	body := inner[1 : len(inner)-1]
	if len(body) == 0 {
		return token.Token{}, newError(MalformedSpan, tok.Span, "empty paste span `[<>]` has nothing to concatenate")
	}

	r := resolver{x: x, depth: depth}
	frags, lifetime, err := r.resolveSpan(body)
	if err != nil {
		if len(err.Notes) == 0 && err.Span != tok.Span {
			err.Notes = append(err.Notes, noteIn(tok))
		}
		return token.Token{}, err
	}

	out, err := build(frags, lifetime, tok)
	if err != nil {
		return token.Token{}, err
	}
	x.spans++
	trace.Point(x.opts.Tracer, trace.ScopeNode, "paste.span", out.Text, x.traceID)
	return out, nil
}

func (x *expander) checkDepth(tok token.Token, depth int) *Error {
	if depth <= x.limit {
		return nil
	}
	return newError(RecursionLimitExceeded, tok.Group.Open,
		"nesting depth exceeds the limit of %d", x.limit)
}

type spanShape uint8

const (
	shapeNone spanShape = iota
	shapeSpan
	shapeMalformed
)

// shapeOf classifies a group: `[< … >]` is a span, `[<` with no `>` at
// the top level is malformed. `[<= …]`, `[<< …]` and qualified paths such
// as `[<T as Trait>::Out; 4]` are ordinary groups.
func shapeOf(tok token.Token) spanShape {
	if !tok.IsGroup(token.DelimBracket) {
		return shapeNone
	}
	inner := tok.Group.Stream
	if len(inner) == 0 || !inner[0].IsPunct('<') {
		return shapeNone
	}
	if inner[0].Joint && len(inner) > 1 && (inner[1].IsPunct('=') || inner[1].IsPunct('<')) {
		return shapeNone
	}
	if len(inner) >= 2 && inner[len(inner)-1].IsPunct('>') {
		return shapeSpan
	}
	for _, t := range inner[1:] {
		if t.IsPunct('>') {
			return shapeNone
		}
	}
	return shapeMalformed
}

func malformedSpan(tok token.Token) *Error {
	marker := tok.Group.Open.Cover(tok.Group.Stream[0].Span)
	err := newError(MalformedSpan, marker, "paste span opened with `[<` is not closed by `>]`")
	err.Notes = append(err.Notes, noteIn(tok))
	return err
}
