// Package testkit holds structural checks shared by tests of the lexer,
// tree builder and engine.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"paste/internal/source"
	"paste/internal/token"
)

// CheckSpanInvariants verifies a token tree read from sf:
// 1) every span of a non-synthetic token lies inside the file content;
// 2) spans of sibling tokens do not go backwards;
// 3) a group span covers its delimiters and every child span.
func CheckSpanInvariants(stream token.Stream, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkStream(stream, sf.ID, size, "")
}

func checkStream(s token.Stream, file source.FileID, size uint32, path string) error {
	var prevEnd uint32
	for i, t := range s {
		at := fmt.Sprintf("%s#%d", path, i)
		if t.Synthetic {
			continue
		}
		sp := t.Span
		if sp.File != file {
			return fmt.Errorf("%s: span file mismatch: got=%d want=%d", at, sp.File, file)
		}
		if sp.End < sp.Start || sp.End > size {
			return fmt.Errorf("%s: span %v outside content of %d bytes", at, sp, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("%s: span %v starts before previous end %d", at, sp, prevEnd)
		}
		prevEnd = sp.End

		if t.Kind != token.Group {
			if t.Group != nil {
				return fmt.Errorf("%s: %s token carries a group", at, t.Kind)
			}
			continue
		}
		g := t.Group
		if g == nil {
			return fmt.Errorf("%s: group token without group", at)
		}
		if g.Delim != token.DelimNone && (!sp.Contains(g.Open) || !sp.Contains(g.Close)) {
			return fmt.Errorf("%s: group span %v does not cover its delimiters", at, sp)
		}
		for _, c := range g.Stream {
			if !c.Synthetic && !sp.Contains(c.Span) {
				return fmt.Errorf("%s: child span %v outside group span %v", at, c.Span, sp)
			}
		}
		if err := checkStream(g.Stream, file, size, at); err != nil {
			return err
		}
	}
	return nil
}

// CheckTextInvariant verifies that every leaf token's text equals the
// source bytes under its span.
func CheckTextInvariant(stream token.Stream, fs *source.FileSet) error {
	for i, t := range stream {
		if t.Kind == token.Group && t.Group != nil {
			if err := CheckTextInvariant(t.Group.Stream, fs); err != nil {
				return err
			}
			continue
		}
		if t.Synthetic {
			continue
		}
		if got := fs.Text(t.Span); got != t.Text {
			return fmt.Errorf("#%d: token text %q, source %q", i, t.Text, got)
		}
	}
	return nil
}
