package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"paste/internal/diag"
	"paste/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, code, loc, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		code:   mk(color.Bold),
		loc:    mk(color.FgWhite, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() в порядке добавления.
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	header := pal.severity(d.Severity).Sprint(d.Severity.String()) + " " + pal.code.Sprint(d.Code.ID()) + ": " + d.Message
	if !located(d, fs) {
		fmt.Fprintln(w, header)
		printNotes(w, d, fs, opts, pal, false)
		return
	}
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	loc := fmt.Sprintf("%s:%d:%d", formatPath(f, fs, opts.PathMode), start.Line, start.Col)
	fmt.Fprintf(w, "%s: %s\n", pal.loc.Sprint(loc), header)
	printSnippet(w, f, fs, d.Primary, opts, pal)
	printNotes(w, d, fs, opts, pal, true)
}

func printNotes(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette, withSnippet bool) {
	if !opts.ShowNotes && d.Code != diag.ObsTimings {
		return
	}
	for _, n := range d.Notes {
		f := (*source.File)(nil)
		if fs != nil {
			f = fs.Get(n.Span.File)
		}
		if f == nil || !withSnippet {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
			continue
		}
		start, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
			formatPath(f, fs, opts.PathMode), start.Line, start.Col, n.Msg)
	}
}

func printSnippet(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, opts PrettyOpts, pal palette) {
	start, end := fs.Resolve(sp)
	first := start.Line
	if opts.Context > 0 {
		ctx := uint32(opts.Context)
		if first > ctx {
			first -= ctx
		} else {
			first = 1
		}
	}
	gutter := len(strconv.FormatUint(uint64(start.Line), 10))

	for line := first; line <= start.Line; line++ {
		text := clip(expandTabs(f.GetLine(line)), opts.Width)
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutter, line), text)
	}

	raw := f.GetLine(start.Line)
	col := int(start.Col) - 1
	col = min(max(col, 0), len(raw))
	endCol := len(raw)
	if end.Line == start.Line {
		endCol = min(max(int(end.Col)-1, col), len(raw))
	}
	pad := runewidth.StringWidth(expandTabs(raw[:col]))
	width := max(uniseg.StringWidth(expandTabs(raw[col:endCol])), 1)
	if opts.Width > 0 {
		limit := int(opts.Width)
		if pad >= limit {
			return
		}
		width = min(width, limit-pad)
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprint(strings.Repeat(" ", gutter)+" |"),
		strings.Repeat(" ", pad), pal.caret.Sprint(underline))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clip(s string, width uint8) string {
	if width == 0 {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
