package paste

import (
	"strings"
	"unicode"

	"paste/internal/source"
	"paste/internal/token"
)

// build concatenates fragments without separators and validates the result.
// The new token takes the span covering its fragments and the leading
// trivia of the replaced group.
func build(frags []Fragment, lifetime bool, group token.Token) (token.Token, *Error) {
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString(f.Text)
	}
	text := sb.String()

	if lifetime {
		if !IsIdentifier(text) && text != "_" {
			return token.Token{}, newError(InvalidIdentifier, group.Span,
				"`'%s` is not a valid lifetime", text)
		}
		text = "'" + text
	} else if !IsIdentifier(text) {
		return token.Token{}, invalidIdentifier(text, group.Span)
	}

	kind := token.Ident
	if lifetime {
		kind = token.Lifetime
	}
	return token.Token{
		Kind:      kind,
		Span:      synthesizeSpan(frags, group.Span),
		Text:      text,
		Leading:   group.Leading,
		Synthetic: true,
	}, nil
}

// IsIdentifier reports whether s is a legal identifier: an XID_Start rune
// or '_' followed by XID_Continue runes (combining marks included, so a
// decomposed "á" is fine). A lone "_" is not an identifier.
func IsIdentifier(s string) bool {
	if s == "" || s == "_" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r):
		case i > 0 && unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc):
		default:
			return false
		}
	}
	return true
}

func invalidIdentifier(text string, sp source.Span) *Error {
	switch {
	case text == "":
		return newError(InvalidIdentifier, sp, "paste span produces an empty identifier")
	case text == "_":
		return newError(InvalidIdentifier, sp, "`_` cannot be used as an identifier")
	case unicode.IsDigit(rune(text[0])):
		return newError(InvalidIdentifier, sp, "`%s` is not a valid identifier: it starts with a digit", text)
	}
	return newError(InvalidIdentifier, sp, "`%s` is not a valid identifier", text)
}

// synthesizeSpan covers the first..last located fragments; fragments without
// a location are skipped. With none located, fallback is used.
func synthesizeSpan(frags []Fragment, fallback source.Span) source.Span {
	var sp source.Span
	found := false
	for _, f := range frags {
		if f.Span == (source.Span{}) || f.Span.File != fallback.File {
			continue
		}
		if !found {
			sp, found = f.Span, true
			continue
		}
		sp = sp.Cover(f.Span)
	}
	if !found {
		return fallback
	}
	return sp
}

func coverSpan(a, b source.Span) source.Span {
	if a == (source.Span{}) {
		return b
	}
	if b == (source.Span{}) {
		return a
	}
	return a.Cover(b)
}
