package testkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"paste/internal/lexer"
	"paste/internal/source"
	"paste/internal/token"
	"paste/internal/tree"
)

func build(t *testing.T, src string) (token.Stream, *source.FileSet, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("k.rs", []byte(src)))
	stream, _ := tree.Build(lexer.Tokenize(file, lexer.Options{}), nil)
	return stream, fs, file
}

func TestInvariantsHoldForLexedInput(t *testing.T) {
	for _, src := range []string{
		"",
		"fn main() { let x = [1, 2]; }",
		"paste! { fn [<get_ x>](&self) -> u32 { self.x } } // tail",
		"#![doc = r#\"raw\"#] 'a: loop { break 'a; }",
	} {
		stream, fs, file := build(t, src)
		require.NoError(t, CheckSpanInvariants(stream, file), src)
		require.NoError(t, CheckTextInvariant(stream, fs), src)
	}
}

func TestInvariantsCatchBrokenTrees(t *testing.T) {
	stream, fs, file := build(t, "a (b c)")

	swapped := append(token.Stream(nil), stream...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	require.Error(t, CheckSpanInvariants(swapped, file))

	outside := append(token.Stream(nil), stream...)
	outside[0].Span.End = 1000
	require.Error(t, CheckSpanInvariants(outside, file))

	renamed := append(token.Stream(nil), stream...)
	renamed[0].Text = "z"
	require.Error(t, CheckTextInvariant(renamed, fs))

	// синтезированные токены не проверяются
	renamed[0].Synthetic = true
	require.NoError(t, CheckTextInvariant(renamed, fs))

	require.Error(t, CheckSpanInvariants(stream, nil))
}
