package diagfmt

import (
	"encoding/json"
	"io"

	"paste/internal/diag"
	"paste/internal/source"
)

// LocationJSON is a span in JSON output. Line/column fields are only
// filled with JSONOpts.IncludePositions.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// DiagnosticsOutput — корневой объект JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

// location returns nil for spans outside fs.
func (b jsonBuilder) location(span source.Span) *LocationJSON {
	if b.fs == nil {
		return nil
	}
	f := b.fs.Get(span.File)
	if f == nil {
		return nil
	}
	loc := &LocationJSON{File: formatPath(f, b.fs, b.opts.PathMode), StartByte: span.Start, EndByte: span.End}
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (b jsonBuilder) diagnostic(d *diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{Severity: d.Severity.String(), Code: d.Code.ID(), Message: d.Message}
	timings := d.Code == diag.ObsTimings
	if located(d, b.fs) {
		out.Location = b.location(d.Primary)
	}
	// заметка с таймингами несёт JSON payload, её отдаём всегда и без позиции
	if !b.opts.IncludeNotes && !timings {
		return out
	}
	for _, n := range d.Notes {
		note := NoteJSON{Message: n.Msg}
		if !timings {
			note.Location = b.location(n.Span)
		}
		out.Notes = append(out.Notes, note)
	}
	return out
}

// BuildDiagnosticsOutput converts the bag without serializing it, so callers
// can embed the result in a larger document.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for i := range items {
		out.Diagnostics = append(out.Diagnostics, b.diagnostic(&items[i]))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the bag as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
