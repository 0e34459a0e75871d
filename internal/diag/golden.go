package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"paste/internal/source"
)

// goldenLine is one rendered entry: a diagnostic or one of its notes.
type goldenLine struct {
	label   string // error | warning | info | note
	code    string
	path    string
	line    uint32
	col     uint32
	message string
}

func (g goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", g.label, g.code, g.path, g.line, g.col, g.message)
}

func compareGolden(a, b goldenLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.label, b.label),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.message, b.message),
	)
}

// FormatGoldenDiagnostics renders diags one per line for golden files.
// Lines are sorted, paths are relative to the FileSet base and multi-line
// messages are folded. Timing reports are left out.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []goldenLine
	for i := range diags {
		d := &diags[i]
		if d.Code == ObsTimings {
			continue
		}
		if g, ok := goldenAt(fs, d.Primary); ok {
			g.label, g.code, g.message = d.Severity.Label(), d.Code.ID(), foldMessage(d.Message)
			lines = append(lines, g)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if g, ok := goldenAt(fs, n.Span); ok {
				g.label, g.code, g.message = "note", d.Code.ID(), foldMessage(n.Msg)
				lines = append(lines, g)
			}
		}
	}
	slices.SortStableFunc(lines, compareGolden)

	out := make([]string, len(lines))
	for i, g := range lines {
		out[i] = g.String()
	}
	return strings.Join(out, "\n")
}

func goldenAt(fs *source.FileSet, span source.Span) (goldenLine, bool) {
	file := fs.Get(span.File)
	if file == nil {
		return goldenLine{}, false
	}
	start, _ := fs.Resolve(span)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return goldenLine{path: path, line: start.Line, col: start.Col}, true
}

// foldMessage сводит многострочное сообщение в одну строку
func foldMessage(msg string) string {
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(msg, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " "))
}
