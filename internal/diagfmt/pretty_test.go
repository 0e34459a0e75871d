package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"paste/internal/diag"
	"paste/internal/source"
)

func floatFragmentBag(t *testing.T, path string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual(path, []byte("fn [<a 1.5>]() {}\n"))

	bag := diag.NewBag(10)
	d := diag.NewError(diag.PasteUnsupportedFragment, source.Span{File: fileID, Start: 7, End: 10},
		"float literal `1.5` cannot be pasted").
		WithNote(source.Span{File: fileID, Start: 3, End: 12}, "in this paste span")
	bag.Add(d)
	return bag, fs
}

func TestPrettyLayout(t *testing.T) {
	bag, fs := floatFragmentBag(t, "/home/user/project/src/test.rs")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})

	want := "test.rs:1:8: ERROR PST3002: float literal `1.5` cannot be pasted\n" +
		"1 | fn [<a 1.5>]() {}\n" +
		"  |        ^~~\n" +
		"  note: test.rs:1:4: in this paste span\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := floatFragmentBag(t, "/home/user/project/src/test.rs")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.rs:1:8"},
		{"Relative path", PathModeRelative, "src/test.rs:1:8"},
		{"Basename only", PathModeBasename, "test.rs:1:8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()
			if !strings.HasPrefix(output, tt.contains) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.contains, output)
			}
			if strings.Contains(output, "note:") {
				t.Error("notes must be hidden without ShowNotes")
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"test.rs", "test.rs:1:8"},
		{"/very/long/absolute/path/to/some/nested/directory/file.rs", "file.rs:1:8"},
	}
	for _, tt := range tests {
		bag, fs := floatFragmentBag(t, tt.path)
		var buf bytes.Buffer
		Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
		if !strings.HasPrefix(buf.String(), tt.expected) {
			t.Errorf("Expected output to start with %q, got:\n%s", tt.expected, buf.String())
		}
	}
}

func TestPrettyContextTabsAndWidth(t *testing.T) {
	fs := source.NewFileSet()
	content := "fn f() {\n\tx = [<>];\n}\n"
	fileID := fs.AddVirtual("tabs.rs", []byte(content))
	start := uint32(strings.Index(content, "[<>]"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.PasteMalformedSpan, source.Span{File: fileID, Start: start, End: start + 4}, "empty paste span"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	want := "tabs.rs:2:6: ERROR PST3001: empty paste span\n" +
		"1 | fn f() {\n" +
		"2 |     x = [<>];\n" +
		"  |         ^~~~\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{Width: 7})
	out := buf.String()
	if !strings.Contains(out, "…") {
		t.Errorf("expected clipped source line, got:\n%s", out)
	}
	if strings.Contains(out, "^") {
		t.Errorf("caret past the width limit must be dropped, got:\n%s", out)
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSet()
	content := "let é = [<a 1.5>];"
	fileID := fs.AddVirtual("wide.rs", []byte(content))
	start := uint32(strings.Index(content, "1.5"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.PasteUnsupportedFragment, source.Span{File: fileID, Start: start, End: start + 3}, "float"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if want := "  | " + strings.Repeat(" ", 12) + "^~~"; lines[2] != want {
		t.Errorf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyUnlocated(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load x.rs"))
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings (expand): total 1.00 ms").
		WithNote(source.Span{}, `{"kind":"expand"}`))

	var buf bytes.Buffer
	Pretty(&buf, bag, nil, PrettyOpts{})
	want := "ERROR IO5001: failed to load x.rs\n" +
		"INFO OBS6001: timings (expand): total 1.00 ms\n" +
		"  note: {\"kind\":\"expand\"}\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := floatFragmentBag(t, "test.rs")
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestShort(t *testing.T) {
	bag, fs := floatFragmentBag(t, "/home/user/project/src/test.rs")
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings"))

	var buf bytes.Buffer
	Short(&buf, bag, fs, PathModeRelative)
	want := "src/test.rs:1:8: error PST3002: float literal `1.5` cannot be pasted\n"
	if got := buf.String(); got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "Absolute": PathModeAbsolute, "relative": PathModeRelative, "basename": PathModeBasename} {
		got, err := ParsePathMode(in)
		if err != nil || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePathMode("short"); err == nil {
		t.Error("expected error")
	}
}
