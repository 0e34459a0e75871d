package paste

import (
	"errors"
	"fmt"
	"strings"

	"paste/internal/diag"
	"paste/internal/source"
)

// Kind classifies expansion failures.
type Kind uint8

const (
	// MalformedSpan: unmatched or improperly nested markers, empty span.
	MalformedSpan Kind = iota + 1
	// UnsupportedFragment: a token that cannot contribute text.
	UnsupportedFragment
	// InvalidIdentifier: the concatenation is not a legal identifier.
	InvalidIdentifier
	// RecursionLimitExceeded: nesting deeper than Options.MaxDepth.
	RecursionLimitExceeded
)

func (k Kind) String() string {
	switch k {
	case MalformedSpan:
		return "MalformedSpan"
	case UnsupportedFragment:
		return "UnsupportedFragment"
	case InvalidIdentifier:
		return "InvalidIdentifier"
	case RecursionLimitExceeded:
		return "RecursionLimitExceeded"
	}
	return "Unknown"
}

// Code maps the kind onto its diagnostic code.
func (k Kind) Code() diag.Code {
	switch k {
	case MalformedSpan:
		return diag.PasteMalformedSpan
	case UnsupportedFragment:
		return diag.PasteUnsupportedFragment
	case InvalidIdentifier:
		return diag.PasteInvalidIdentifier
	case RecursionLimitExceeded:
		return diag.PasteRecursionLimitExceeded
	}
	return diag.UnknownCode
}

// Error is a single expansion failure located at the most specific span known.
type Error struct {
	Kind    Kind
	Span    source.Span
	Message string
	Notes   []diag.Note
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Diagnostic converts the error to a diag.Diagnostic.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Kind.Code(), e.Span, e.Message)
	for _, n := range e.Notes {
		d = d.WithNote(n.Span, n.Msg)
	}
	return d
}

func newError(kind Kind, sp source.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: sp, Message: fmt.Sprintf(format, args...)}
}

// Diagnostics is the failure value returned by Expand.
type Diagnostics []*Error

func (d Diagnostics) Error() string {
	msgs := make([]string, 0, len(d))
	for _, e := range d {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is/As.
func (d Diagnostics) Unwrap() []error {
	out := make([]error, 0, len(d))
	for _, e := range d {
		out = append(out, e)
	}
	return out
}

// Report forwards every entry to r.
func (d Diagnostics) Report(r diag.Reporter) {
	for _, e := range d {
		diag.Emit(r, e.Diagnostic())
	}
}

// AsDiagnostics extracts engine failures from err. Errors of other types
// are returned as nil.
func AsDiagnostics(err error) Diagnostics {
	var ds Diagnostics
	if errors.As(err, &ds) {
		return ds
	}
	var e *Error
	if errors.As(err, &e) {
		return Diagnostics{e}
	}
	return nil
}
