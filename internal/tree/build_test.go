package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paste/internal/diag"
	"paste/internal/lexer"
	"paste/internal/source"
	"paste/internal/testkit"
	"paste/internal/token"
	"paste/internal/tree"
)

func build(t *testing.T, input string) (token.Stream, []token.Trivia, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("tree.rs", []byte(input)))
	bag := diag.NewBag(100)
	r := diag.BagReporter{Bag: bag}
	stream, trailing := tree.Build(lexer.Tokenize(file, lexer.Options{Reporter: r}), r)
	return stream, trailing, bag
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestBuild_Nested(t *testing.T) {
	stream, _, bag := build(t, "fn f(a: [u8; 4]) { g() }")
	require.False(t, bag.HasErrors(), codes(bag))

	assert.Equal(t, "fn f (a : [u8 ; 4]) {g ()}", stream.String())
	require.Len(t, stream, 4)
	assert.True(t, stream[2].IsGroup(token.DelimParen))
	assert.True(t, stream[3].IsGroup(token.DelimBrace))
	assert.Equal(t, 2, stream.Depth())

	inner := stream[2].Group.Stream
	require.Len(t, inner, 3)
	assert.True(t, inner[2].IsGroup(token.DelimBracket))
}

func TestBuild_GroupSpans(t *testing.T) {
	stream, _, _ := build(t, "x [<a b>]")
	require.Len(t, stream, 2)
	g := stream[1]
	assert.Equal(t, uint32(2), g.Span.Start)
	assert.Equal(t, uint32(9), g.Span.End)
	assert.Equal(t, uint32(2), g.Group.Open.Start)
	assert.Equal(t, uint32(8), g.Group.Close.Start)
}

func TestBuild_TriviaPlacement(t *testing.T) {
	stream, trailing, _ := build(t, "a ( b /* c */ ) // tail\n")
	require.Len(t, stream, 2)
	g := stream[1]
	require.Len(t, g.Leading, 1)
	assert.Equal(t, token.TriviaSpace, g.Leading[0].Kind)
	require.Len(t, g.Group.CloseLeading, 3)
	assert.Equal(t, token.TriviaBlockComment, g.Group.CloseLeading[1].Kind)
	assert.Len(t, trailing, 3)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []diag.Code
		str   string
	}{
		{"unmatched close", "a )", []diag.Code{diag.TreeUnmatchedClose}, "a )"},
		{"unclosed", "f(a", []diag.Code{diag.TreeUnclosedDelimiter}, "f (a)"},
		{"irreducible", "{ [ }", []diag.Code{diag.TreeUnclosedDelimiter}, "{[]}"},
		{"mismatched", "( ] )", []diag.Code{diag.TreeMismatchedClose}, "(])"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream, _, bag := build(t, tt.input)
			assert.Equal(t, tt.want, codes(bag))
			assert.Equal(t, tt.str, stream.String())
		})
	}
}

func TestFlatten_RoundTrip(t *testing.T) {
	input := "m!{ [<a $x>] (1, 2) }"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("f.rs", []byte(input)))
	flat := lexer.Tokenize(file, lexer.Options{})
	stream, _ := tree.Build(flat, nil)

	back := tree.Flatten(stream)
	require.Len(t, back, len(flat)-1)
	for i := range back {
		assert.Equal(t, flat[i].Text, back[i].Text)
		assert.Equal(t, flat[i].Span, back[i].Span)
	}
}

func TestFlatten_InvisibleGroup(t *testing.T) {
	inner := token.Stream{token.NewIdent("x", source.Span{})}
	g := token.NewGroup(token.DelimNone, source.Span{}, source.Span{}, inner)
	out := tree.Flatten(token.Stream{g})
	require.Len(t, out, 1)
	assert.Equal(t, "x", out[0].Text)
}

func TestBuild_SpanAndTextInvariants(t *testing.T) {
	inputs := []string{
		"fn f(a: [u8; 4]) { g() }",
		"paste! {\n    fn [<get_ x>](&self) -> u32 { self.x }\n}\n",
		"/* c */ m!{a::b=>c} 'a 'b' r#\"raw\"# 1u8 2.5",
		"((([])))",
	}
	for _, in := range inputs {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("tree.rs", []byte(in)))
		bag := diag.NewBag(100)
		r := diag.BagReporter{Bag: bag}
		stream, _ := tree.Build(lexer.Tokenize(file, lexer.Options{Reporter: r}), r)
		require.False(t, bag.HasErrors(), "%q: %v", in, codes(bag))
		require.NoError(t, testkit.CheckSpanInvariants(stream, file), in)
		require.NoError(t, testkit.CheckTextInvariant(stream, fs), in)
	}
}
