package paste

import (
	"strings"

	"paste/internal/token"
)

// literalText derives the fragment text of a literal token:
//   - integers keep their exact text, suffix included (1u8 -> "1u8");
//   - strings contribute their contents, '-' becomes '_';
//   - chars contribute their character.
//
// Everything else, and any text that would smuggle '.', '+', '#' or '\'
// into an identifier, is rejected.
func literalText(t token.Token) (string, *Error) {
	switch t.Kind {
	case token.IntLit:
		return t.Text, nil

	case token.StringLit:
		if len(t.Text) < 2 || !strings.HasSuffix(t.Text, `"`) {
			return "", newError(UnsupportedFragment, t.Span, "string literal with a suffix cannot be pasted")
		}
		body := t.Text[1 : len(t.Text)-1]
		if strings.ContainsRune(body, '\\') {
			return "", newError(UnsupportedFragment, t.Span, "escape sequences are not supported in pasted strings")
		}
		body = strings.ReplaceAll(body, "-", "_")
		if strings.ContainsAny(body, ".+#") {
			return "", newError(UnsupportedFragment, t.Span, "string %s contains characters that cannot appear in an identifier", t.Text)
		}
		return body, nil

	case token.CharLit:
		if len(t.Text) < 3 || !strings.HasSuffix(t.Text, "'") {
			return "", newError(UnsupportedFragment, t.Span, "char literal with a suffix cannot be pasted")
		}
		body := t.Text[1 : len(t.Text)-1]
		if strings.HasPrefix(body, `\`) {
			return "", newError(UnsupportedFragment, t.Span, "escaped char literal cannot be pasted")
		}
		if strings.ContainsAny(body, ".+#") {
			return "", newError(UnsupportedFragment, t.Span, "char %s cannot appear in an identifier", t.Text)
		}
		return body, nil

	case token.FloatLit:
		return "", newError(UnsupportedFragment, t.Span, "float literal `%s` cannot be pasted", t.Text)
	case token.RawStringLit:
		return "", newError(UnsupportedFragment, t.Span, "raw string literal cannot be pasted")
	case token.ByteLit, token.ByteStringLit:
		return "", newError(UnsupportedFragment, t.Span, "byte literal `%s` cannot be pasted", t.Text)
	}
	return "", newError(UnsupportedFragment, t.Span, "token `%s` is not a literal", t.Text)
}
