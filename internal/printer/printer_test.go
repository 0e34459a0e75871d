package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paste/internal/lexer"
	"paste/internal/paste"
	"paste/internal/printer"
	"paste/internal/source"
	"paste/internal/token"
	"paste/internal/tree"
)

func parse(input string) (token.Stream, []token.Trivia) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("p.rs", []byte(input)))
	return tree.Build(lexer.Tokenize(file, lexer.Options{}), nil)
}

func TestPrint_ExactRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"fn main() {}\n",
		"// head\nstruct S {\n    a: u8, /* c */ b: [u8; 4],\n}\n\n// tail\n",
		"m!{a::b=>c}",
		"let s = r#\"raw\"#; let c = 'x'; let l: &'a str;\n",
		"(((  )))",
	}
	for _, in := range inputs {
		stream, trailing := parse(in)
		got := printer.Print(stream, trailing, printer.Options{})
		assert.Equal(t, in, string(got))
	}
}

func TestPrint_ExpandedSpanKeepsLayout(t *testing.T) {
	stream, trailing := parse("pub fn  [<foo _bar>]() {\n    let unused = 42;\n}\n")
	out, err := paste.Expand(stream, paste.DefaultOptions())
	require.NoError(t, err)

	got := printer.Print(out, trailing, printer.Options{})
	assert.Equal(t, "pub fn  foo_bar() {\n    let unused = 42;\n}\n", string(got))
	require.NoError(t, printer.CheckRoundTrip(got, out))
}

func TestPrint_Spaced(t *testing.T) {
	inner := token.Stream{
		{Kind: token.Ident, Text: "x"},
		{Kind: token.Punct, Text: ":", Joint: true},
		{Kind: token.Punct, Text: ":"},
		{Kind: token.Ident, Text: "y"},
	}
	stream := token.Stream{
		{Kind: token.Ident, Text: "fn"},
		token.NewIdent("foo_bar", source.Span{}),
		token.NewGroup(token.DelimParen, source.Span{}, source.Span{}, nil),
		token.NewGroup(token.DelimBrace, source.Span{}, source.Span{}, inner),
	}
	assert.Equal(t, "fn foo_bar () {x :: y}", printer.String(stream, printer.Options{Mode: printer.Spaced}))
	assert.Equal(t, stream.String(), printer.String(stream, printer.Options{Mode: printer.Spaced}))
}

func TestPrint_InvisibleGroup(t *testing.T) {
	inv := token.NewGroup(token.DelimNone, source.Span{}, source.Span{}, token.Stream{
		{Kind: token.Ident, Text: "a"},
		{Kind: token.Ident, Text: "b"},
	})
	stream := token.Stream{{Kind: token.Ident, Text: "x"}, inv}
	assert.Equal(t, "x a b", printer.String(stream, printer.Options{Mode: printer.Spaced}))
}

func TestCheckRoundTrip_Mismatch(t *testing.T) {
	stream, _ := parse("fn a() {}")
	err := printer.CheckRoundTrip([]byte("fn a[] {}"), stream)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delimiter")
}
