package token

import (
	"strings"

	"paste/internal/source"
)

// Token is one node of a token tree: a leaf token or a delimited group.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
	// Joint is set on punctuation immediately followed by another punctuation
	// character, e.g. the first ':' of '::'.
	Joint bool
	// Synthetic marks tokens built by the engine rather than read from source.
	Synthetic bool
	// Group is non-nil iff Kind == Group.
	Group *GroupNode
}

// GroupNode is a delimited region owning its inner stream.
type GroupNode struct {
	Delim  Delimiter
	Open   source.Span
	Close  source.Span
	Stream Stream
	// CloseLeading holds the trivia right before the closing delimiter.
	CloseLeading []Trivia
}

// Stream is an ordered sequence of token trees.
type Stream []Token

// NewIdent builds a synthetic identifier token.
func NewIdent(text string, sp source.Span) Token {
	return Token{Kind: Ident, Span: sp, Text: text, Synthetic: true}
}

// NewGroup builds a group token covering open..close.
func NewGroup(delim Delimiter, open, closeSpan source.Span, inner Stream) Token {
	return Token{
		Kind: Group,
		Span: open.Cover(closeSpan),
		Group: &GroupNode{
			Delim:  delim,
			Open:   open,
			Close:  closeSpan,
			Stream: inner,
		},
	}
}

// IsPunct reports whether the token is the punctuation character ch.
func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsIdent reports whether the token is an identifier, optionally with the given name.
func (t Token) IsIdent(name ...string) bool {
	if t.Kind != Ident {
		return false
	}
	if len(name) == 0 {
		return true
	}
	return t.Text == name[0]
}

// IsLiteral reports whether the token is a literal of any kind.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsGroup reports whether the token is a group with the given delimiter.
func (t Token) IsGroup(d Delimiter) bool {
	return t.Kind == Group && t.Group != nil && t.Group.Delim == d
}

// WithLeading returns a copy of t carrying the given leading trivia.
func (t Token) WithLeading(tv []Trivia) Token {
	t.Leading = tv
	return t
}

// String renders the token tree compactly for debugging and test output.
// Tokens are separated by single spaces; joint punctuation is glued.
func (s Stream) String() string {
	var sb strings.Builder
	s.write(&sb)
	return sb.String()
}

func (s Stream) write(sb *strings.Builder) {
	glue := true
	for _, t := range s {
		if !glue {
			sb.WriteByte(' ')
		}
		if t.Kind == Group && t.Group != nil {
			sb.WriteString(t.Group.Delim.Open())
			t.Group.Stream.write(sb)
			sb.WriteString(t.Group.Delim.Close())
		} else {
			sb.WriteString(t.Text)
		}
		glue = t.Kind == Punct && t.Joint
	}
}

// Depth returns the maximum group nesting depth of the stream.
func (s Stream) Depth() int {
	maxDepth := 0
	for _, t := range s {
		if t.Kind == Group && t.Group != nil {
			if d := 1 + t.Group.Stream.Depth(); d > maxDepth {
				maxDepth = d
			}
		}
	}
	return maxDepth
}
