package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paste/internal/driver"
	"paste/internal/observ"
	"paste/internal/source"
	"paste/internal/wire"
)

func runCLI(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	cmd, cleanup := newRootCmd()
	defer cleanup()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExpandCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lib.rs", "let v = paste!([<a b>]);\n")

	out, _, err := runCLI(t, nil, "expand", "--color", "off", "--ui", "off", path)
	require.NoError(t, err)
	assert.Equal(t, "let v = ab;\n", out)
}

func TestExpandCommand_Vars(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lib.rs", "paste! { fn [<get_ $field>]() {} }\n")
	cfg := writeFile(t, dir, "paste.toml", "[vars]\nfield = \"y\"\n")

	out, _, err := runCLI(t, nil, "expand", "--ui", "off", "--config", cfg, path)
	require.NoError(t, err)
	assert.Equal(t, "fn get_y() {}\n", out)

	// флаг перекрывает paste.toml
	out, _, err = runCLI(t, nil, "expand", "--ui", "off", "--config", cfg, "--var", "field=x", path)
	require.NoError(t, err)
	assert.Equal(t, "fn get_x() {}\n", out)

	_, _, err = runCLI(t, nil, "expand", "--ui", "off", "--var", "novalue", path)
	require.Error(t, err)
}

func TestExpandCommand_BadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lib.rs", "fn main() {}\n")
	cfg := writeFile(t, dir, "paste.toml", "[expand]\nmax_depht = 3\n")

	_, _, err := runCLI(t, nil, "expand", "--config", cfg, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CFG4001")
}

func TestExpandCommand_Diff(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lib.rs", "fn main() {}\nlet v = paste!([<a b>]);\n")
	clean := writeFile(t, dir, "clean.rs", "fn main() {}\n")

	out, _, err := runCLI(t, nil, "expand", "--ui", "off", "--quiet", "--diff", path, clean)
	require.NoError(t, err)
	assert.Contains(t, out, "--- "+path)
	assert.Contains(t, out, "-let v = paste!([<a b>]);\n")
	assert.Contains(t, out, "+let v = ab;\n")
	assert.NotContains(t, out, clean)
}

func TestExpandCommand_Write(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lib.rs", "let v = paste!([<a b>]);\n")

	out, _, err := runCLI(t, nil, "expand", "--ui", "off", "-w", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "let v = ab;\n", string(got))

	_, _, err = runCLI(t, nil, "expand", "--ui", "off", "-w", "--diff", path)
	require.Error(t, err)
}

func TestExpandCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.rs", "paste! { [<a 1.5>] }\n")
	missing := filepath.Join(dir, "missing.rs")

	out, stderr, err := runCLI(t, nil, "expand", "--color", "off", "--ui", "off", bad, missing)
	require.ErrorIs(t, err, errFailed)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "PST3002")
	assert.Contains(t, stderr, "IO5001")
	assert.Contains(t, stderr, "2 files, 0 invocations expanded, 0 skipped, 2 failed")
}

func TestCheckCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.rs", "let v = paste!([<a b>]);\n")
	bad := writeFile(t, dir, "bad.rs", "paste! { [<>] }\n")

	out, _, err := runCLI(t, nil, "check", "--format", "json", good, bad)
	require.ErrorIs(t, err, errFailed)

	var payload checkJSON
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, 1, payload.Errors)
	require.Len(t, payload.Files, 2)
	assert.Equal(t, good, payload.Files[0].Path)
	assert.Zero(t, payload.Files[0].Count)
	require.NotEmpty(t, payload.Files[1].Diagnostics)
	assert.Equal(t, "PST3001", payload.Files[1].Diagnostics[0].Code)
}

func TestCheckCommand_Short(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.rs", "let v = paste!([<a b>]);\n")

	out, stderr, err := runCLI(t, nil, "check", "--format", "short", good)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, stderr)

	_, _, err = runCLI(t, nil, "check", "--format", "sarif", good)
	require.Error(t, err)
}

func TestTokenizeCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lib.rs", "f(a, [<b c>])\n")

	out, _, err := runCLI(t, nil, "tokenize", "--format", "json", path)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))

	out, _, err = runCLI(t, nil, "tokenize", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Group(Paren)")
}

func TestInvokeCommand(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("host.rs", []byte("fn [<get _ x>]() {}")))
	tokens := driver.TokenizeSource(fs, file, 0)
	require.False(t, tokens.Bag.HasErrors())

	var in bytes.Buffer
	require.NoError(t, wire.WriteRequest(&in, &wire.Request{Tokens: wire.FromStream(tokens.Stream)}))

	out, _, err := runCLI(t, &in, "invoke")
	require.NoError(t, err)

	resp, err := wire.ReadResponse(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
	require.Empty(t, resp.Diagnostics)
	require.Len(t, resp.Tokens, 4)
	assert.Equal(t, "get_x", resp.Tokens[1].Text)

	_, _, err = runCLI(t, bytes.NewReader([]byte{0xc1}), "invoke")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, nil, "version", "--format", "json", "--full")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "paste", payload.Tool)
	assert.NotEmpty(t, payload.Version)
	assert.NotEmpty(t, payload.GitCommit)

	out, _, err = runCLI(t, nil, "version", "--color", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "paste ")

	_, _, err = runCLI(t, nil, "version", "--format", "xml")
	require.Error(t, err)
}

func TestResolveFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "src/a.rs", "")
	b := writeFile(t, dir, "src/nested/b.rs", "")
	writeFile(t, dir, "src/notes.txt", "")

	got, err := resolveFiles([]string{filepath.Join(dir, "src", "**", "*.rs"), a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, got)

	got, err = resolveFiles([]string{"does/not/exist.rs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"does/not/exist.rs"}, got)

	_, err = resolveFiles([]string{filepath.Join(dir, "*.go")})
	require.Error(t, err)
}

func TestWantProgressView(t *testing.T) {
	for in, want := range map[string]bool{"on": true, " ON ": true, "off": false, "": false, "auto": false} {
		got, err := wantProgressView(in, 1)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	got, err := wantProgressView("off", 5)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = wantProgressView("sometimes", 2)
	require.ErrorContains(t, err, "auto|on|off")
}

func TestMergedTimings(t *testing.T) {
	results := []*driver.ExpandResult{
		{Timing: &observ.Report{TotalMS: 2, Phases: []observ.PhaseReport{{Name: "lex", DurationMS: 2}}}},
		{},
		{Timing: &observ.Report{TotalMS: 1, Phases: []observ.PhaseReport{{Name: "lex", DurationMS: 1}}}},
	}
	m := mergedTimings(results)
	assert.Equal(t, 3.0, m.TotalMS)
	require.Len(t, m.Phases, 1)
	assert.Contains(t, m.Summary(), "lex")
}
