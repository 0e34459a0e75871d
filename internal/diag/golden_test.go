package diag

import (
	"testing"

	"paste/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	userFile := fs.Add("/workspace/testdata/ui/sample.rs", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		NewError(PasteInvalidIdentifier, source.Span{File: userFile, Start: 0, End: 1}, "first line\nsecond").
			WithNote(source.Span{File: userFile, Start: 2, End: 3}, "note line"),
		New(SevWarning, PasteInfo, source.Span{File: userFile, Start: 2, End: 3}, "another"),
	}

	expected := "error PST3003 testdata/ui/sample.rs:1:1 first line second\n" +
		"note PST3003 testdata/ui/sample.rs:2:1 note line\n" +
		"warning PST3000 testdata/ui/sample.rs:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitAndCount(t *testing.T) {
	bag := NewBag(3)
	sp := func(start uint32) source.Span { return source.Span{Start: start, End: start + 1} }

	bag.Add(NewError(PasteMalformedSpan, sp(10), "b"))
	bag.Add(NewWarning(PasteInfo, sp(2), "a"))
	bag.Add(New(SevInfo, PasteInfo, sp(3), "c"))
	if bag.Add(NewError(LexUnknownChar, sp(0), "over the limit")) {
		t.Fatal("bag accepted diagnostic past its limit")
	}
	bag.Force(New(SevInfo, ObsTimings, source.Span{}, "timings"))
	if bag.Len() != 4 {
		t.Fatalf("Len = %d, want 4", bag.Len())
	}
	if !bag.HasErrors() {
		t.Fatal("expected errors")
	}
	if got := bag.Count(SevWarning); got != 2 {
		t.Fatalf("Count(warning) = %d, want 2", got)
	}
	if NewBag(0).Add(NewError(PasteMalformedSpan, sp(0), "x")) != true {
		t.Fatal("zero limit must still hold one diagnostic")
	}
}

type recordingReporter struct{ got []Diagnostic }

func (r *recordingReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	r.got = append(r.got, Diagnostic{Code: code, Severity: sev, Primary: primary, Message: msg, Notes: notes})
}

func TestDedupReporterAndEmit(t *testing.T) {
	rec := &recordingReporter{}
	dedup := NewDedupReporter(rec)
	sp := source.Span{Start: 4, End: 8}

	d := NewError(PasteUnsupportedFragment, sp, "unsupported").WithNote(sp, "here")
	Emit(dedup, d)
	Emit(dedup, d)
	Emit(dedup, NewError(PasteUnsupportedFragment, sp, "unsupported"))
	Emit(nil, d)

	if len(rec.got) != 1 {
		t.Fatalf("reported %d diagnostics, want 1", len(rec.got))
	}
	if len(rec.got[0].Notes) != 1 {
		t.Fatalf("notes = %v, want one", rec.got[0].Notes)
	}
}

func TestWithNoteCopies(t *testing.T) {
	base := NewError(PasteMalformedSpan, source.Span{}, "x").WithNote(source.Span{}, "first")
	a := base.WithNote(source.Span{}, "a")
	b := base.WithNote(source.Span{}, "b")
	if a.Notes[1].Msg != "a" || b.Notes[1].Msg != "b" || len(base.Notes) != 1 {
		t.Fatalf("WithNote shares backing array: %v %v %v", base.Notes, a.Notes, b.Notes)
	}
}

func TestSeverityNames(t *testing.T) {
	for _, c := range []struct {
		sev          Severity
		upper, lower string
	}{
		{SevInfo, "INFO", "info"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(9), "UNKNOWN", "info"},
	} {
		if got := c.sev.String(); got != c.upper {
			t.Errorf("String(%d) = %q, want %q", c.sev, got, c.upper)
		}
		if got := c.sev.Label(); got != c.lower {
			t.Errorf("Label(%d) = %q, want %q", c.sev, got, c.lower)
		}
	}

	// другое сообщение на том же месте - не дубликат
	rec := &recordingReporter{}
	dedup := NewDedupReporter(rec)
	sp := source.Span{Start: 1, End: 2}
	dedup.Report(PasteMalformedSpan, SevError, sp, "a", nil)
	dedup.Report(PasteMalformedSpan, SevError, sp, "b", nil)
	dedup.Report(PasteMalformedSpan, SevWarning, sp, "a", nil)
	if len(rec.got) != 3 {
		t.Fatalf("reported %d, want 3", len(rec.got))
	}
}
