package paste

import (
	"strings"

	"paste/internal/source"
	"paste/internal/token"
)

// isDocAttribute reports whether in[i] is the bracket group of a `#[doc = …]`
// or `#![doc = …]` attribute whose value needs concatenation: more than one
// segment, or any segment that is not a plain string literal.
func isDocAttribute(in token.Stream, i int) bool {
	tok := in[i]
	if !tok.IsGroup(token.DelimBracket) || i == 0 {
		return false
	}
	prev := in[i-1]
	if prev.IsPunct('!') && i >= 2 {
		prev = in[i-2]
	}
	if !prev.IsPunct('#') {
		return false
	}
	inner := tok.Group.Stream
	if len(inner) < 3 || !inner[0].IsIdent("doc") || !inner[1].IsPunct('=') || inner[1].Joint {
		return false
	}
	segs := inner[2:]
	if len(segs) == 1 && segs[0].Kind == token.StringLit {
		return false
	}
	for _, seg := range segs {
		if !docSegmentKind(seg) {
			return false
		}
	}
	return true
}

// docSegmentKind: `#[doc = include_str!("x")]` and friends are left alone.
func docSegmentKind(t token.Token) bool {
	switch t.Kind {
	case token.StringLit, token.Ident, token.IntLit, token.CharLit:
		return true
	case token.Group:
		return t.IsGroup(token.DelimNone) || shapeOf(t) != shapeNone
	}
	return false
}

// pasteDocAttribute folds every segment of the attribute value into one
// string literal: strings contribute their raw contents, identifiers and
// integers their text, paste-spans the identifier they build.
func (x *expander) pasteDocAttribute(tok token.Token, depth int) (token.Token, *Error) {
	if err := x.checkDepth(tok, depth); err != nil {
		return token.Token{}, err
	}
	inner := tok.Group.Stream
	segs := inner[2:]

	var sb strings.Builder
	var sp source.Span
	if err := x.docSegments(&sb, &sp, segs, depth); err != nil {
		return token.Token{}, err
	}

	lit := token.Token{
		Kind:      token.StringLit,
		Span:      sp,
		Text:      `"` + sb.String() + `"`,
		Leading:   segs[0].Leading,
		Synthetic: true,
	}
	g := *tok.Group
	g.Stream = token.Stream{inner[0], inner[1], lit}
	tok.Group = &g
	return tok, nil
}

func (x *expander) docSegments(sb *strings.Builder, sp *source.Span, segs token.Stream, depth int) *Error {
	for _, seg := range segs {
		*sp = coverSpan(*sp, seg.Span)
		switch {
		case seg.Kind == token.StringLit && strings.HasPrefix(seg.Text, `"`) && strings.HasSuffix(seg.Text, `"`) && len(seg.Text) >= 2:
			sb.WriteString(seg.Text[1 : len(seg.Text)-1])
		case seg.Kind == token.Ident:
			sb.WriteString(strings.TrimPrefix(seg.Text, "r#"))
		case seg.Kind == token.IntLit:
			sb.WriteString(seg.Text)
		case seg.Kind == token.CharLit:
			text, err := literalText(seg)
			if err != nil {
				return err
			}
			sb.WriteString(text)
		case seg.IsGroup(token.DelimNone):
			if err := x.checkDepth(seg, depth+1); err != nil {
				return err
			}
			if err := x.docSegments(sb, sp, seg.Group.Stream, depth+1); err != nil {
				return err
			}
		case seg.Kind == token.Group && shapeOf(seg) == shapeSpan:
			id, err := x.pasteSpan(seg, depth+1)
			if err != nil {
				return err
			}
			sb.WriteString(id.Text)
		case seg.Kind == token.Group && shapeOf(seg) == shapeMalformed:
			return malformedSpan(seg)
		default:
			return newError(UnsupportedFragment, seg.Span, "`%s` cannot be concatenated into a doc attribute", segmentText(seg))
		}
	}
	return nil
}

func segmentText(t token.Token) string {
	if t.Kind == token.Group && t.Group != nil {
		return token.Stream{t}.String()
	}
	return t.Text
}
