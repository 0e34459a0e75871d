package paste

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type modifier func(string) string

var modifiers = map[string]modifier{
	"lower":       toLower,
	"upper":       toUpper,
	"snake":       toSnake,
	"camel":       toCamel,
	"lower_camel": toLowerCamel,
}

func lookupModifier(name string) (modifier, bool) {
	m, ok := modifiers[name]
	return m, ok
}

// cases.Caser хранит состояние, поэтому создаём на каждый вызов.
func toLower(s string) string { return cases.Lower(language.Und).String(s) }
func toUpper(s string) string { return cases.Upper(language.Und).String(s) }

// toSnake inserts '_' before every upper-case letter not already preceded
// by '_', then lower-cases: FooBar -> foo_bar, HTTPServer -> h_t_t_p_server.
func toSnake(s string) string {
	var sb strings.Builder
	prev := '_'
	for _, r := range s {
		if unicode.IsUpper(r) && prev != '_' {
			sb.WriteByte('_')
		}
		sb.WriteRune(r)
		prev = r
	}
	return toLower(sb.String())
}

// toCamel drops underscores and upper-cases the letter after each one:
// foo_bar -> FooBar. Runs of capitals are folded: HTTP_server -> HttpServer.
func toCamel(s string) string {
	var sb strings.Builder
	prev := '_'
	for _, r := range s {
		if r != '_' {
			switch {
			case prev == '_':
				sb.WriteRune(unicode.ToUpper(r))
			case unicode.IsUpper(prev):
				sb.WriteRune(unicode.ToLower(r))
			default:
				sb.WriteRune(r)
			}
		}
		prev = r
	}
	return sb.String()
}

func toLowerCamel(s string) string {
	c := toCamel(s)
	r, size := utf8.DecodeRuneInString(c)
	if size == 0 {
		return c
	}
	return string(unicode.ToLower(r)) + c[size:]
}
