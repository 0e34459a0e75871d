package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paste/internal/lexer"
	"paste/internal/paste"
	"paste/internal/source"
	"paste/internal/token"
	"paste/internal/tree"
)

func lexStream(t *testing.T, src string) token.Stream {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("host.rs", []byte(src)))
	stream, _ := tree.Build(lexer.Tokenize(file, lexer.Options{}), nil)
	return stream
}

func roundTrip(t *testing.T, req *Request) *Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteRequest(&buf, req))
	got, err := ReadRequest(&buf)
	require.NoError(t, err)

	resp, err := Handle(got, paste.DefaultOptions())
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, WriteResponse(&buf, resp))
	decoded, err := ReadResponse(&buf)
	require.NoError(t, err)
	return decoded
}

func TestHandle_Expands(t *testing.T) {
	resp := roundTrip(t, &Request{Tokens: FromStream(lexStream(t, "fn [<get _ x>](&self) -> u32 {}"))})
	require.Empty(t, resp.Diagnostics)

	out, err := ToStream(resp.Tokens, 0)
	require.NoError(t, err)
	assert.Equal(t, "fn get_x (& self) -> u32 {}", out.String())

	// синтезированный идентификатор покрывает фрагменты get.._.. x
	id := resp.Tokens[1]
	assert.Equal(t, "Ident", id.Kind)
	assert.Equal(t, "get_x", id.Text)
	assert.Equal(t, uint32(5), id.Start)
	assert.Equal(t, uint32(12), id.End)
}

func TestHandle_Diagnostics(t *testing.T) {
	resp := roundTrip(t, &Request{Tokens: FromStream(lexStream(t, "fn [<>]"))})
	assert.Empty(t, resp.Tokens)
	require.Len(t, resp.Diagnostics, 1)
	d := resp.Diagnostics[0]
	assert.Equal(t, "PST3001", d.Code)
	assert.Equal(t, uint32(3), d.Start)
	assert.Equal(t, uint32(7), d.End)
}

func TestHandle_MaxDepth(t *testing.T) {
	tokens := FromStream(lexStream(t, "(([<a b>]))"))
	resp := roundTrip(t, &Request{MaxDepth: 2, Tokens: tokens})
	require.Len(t, resp.Diagnostics, 1)
	assert.Equal(t, "PST3004", resp.Diagnostics[0].Code)

	resp = roundTrip(t, &Request{MaxDepth: 3, Tokens: tokens})
	assert.Empty(t, resp.Diagnostics)
}

func TestHandle_DocAttributesOff(t *testing.T) {
	off := false
	resp := roundTrip(t, &Request{DocAttributes: &off, Tokens: FromStream(lexStream(t, `#[doc = "a" b]`))})
	require.Empty(t, resp.Diagnostics)
	out, err := ToStream(resp.Tokens, 0)
	require.NoError(t, err)
	assert.Equal(t, `# [doc = "a" b]`, out.String())
}

func TestReadRequest_Version(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRequest(&buf, &Request{Version: 7}))
	_, err := ReadRequest(&buf)
	assert.ErrorIs(t, err, ErrVersion)

	_, err = ReadRequest(bytes.NewReader([]byte{0xc1}))
	assert.Error(t, err)
}

func TestToStream_Invalid(t *testing.T) {
	tests := map[string][]Token{
		"unknown kind":   {{Kind: "Keyword", Text: "fn"}},
		"no text":        {{Kind: "Ident"}},
		"long punct":     {{Kind: "Punct", Text: "::"}},
		"reversed span":  {{Kind: "Ident", Text: "a", Start: 4, End: 1}},
		"bad delimiter":  {{Kind: "Group", Delim: "Angle"}},
		"nested invalid": {{Kind: "Group", Delim: "Paren", Start: 0, End: 2, Children: []Token{{Kind: "EOF", Text: "x"}}}},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ToStream(in, 0)
			assert.Error(t, err)
		})
	}
}

func TestStreamConversion(t *testing.T) {
	in := lexStream(t, "a::b ( [x] , {y} )")
	back, err := ToStream(FromStream(in), 0)
	require.NoError(t, err)
	assert.Equal(t, in.String(), back.String())

	g := back[4]
	require.Equal(t, token.Group, g.Kind)
	assert.Equal(t, token.DelimParen, g.Group.Delim)
	assert.Equal(t, in[4].Group.Open, g.Group.Open)
	assert.Equal(t, in[4].Group.Close, g.Group.Close)
	assert.True(t, back[1].Joint)

	invisible := token.Stream{token.NewGroup(token.DelimNone, source.Span{}, source.Span{}, token.Stream{token.NewIdent("v", source.Span{})})}
	w := FromStream(invisible)
	assert.Empty(t, w[0].Delim)
	back, err = ToStream(w, 0)
	require.NoError(t, err)
	assert.True(t, back[0].IsGroup(token.DelimNone))
}
