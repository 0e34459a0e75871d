package driver

import (
	"paste/internal/paste"
	"paste/internal/pipeline"
)

// DefaultMacros lists the invocation names expanded when Options.Macros is empty.
var DefaultMacros = []string{"paste"}

// Options configures expansion of a single file or a batch of files.
type Options struct {
	// Paste is passed to the engine for every invocation.
	Paste paste.Options
	// Vars binds `$name` references inside invocations.
	Vars *Vars
	// Macros are the invocation names recognised as `name!(...)`.
	Macros []string
	// MaxDiagnostics caps the per-file diagnostic bag.
	MaxDiagnostics int
	// Timings adds an OBS6001 diagnostic with phase durations.
	Timings bool
	// Sink receives progress events: one working event per stage, plus
	// queued and final events when driven by ExpandFiles.
	Sink pipeline.ProgressSink
}

func (o Options) withDefaults() Options {
	if len(o.Macros) == 0 {
		o.Macros = DefaultMacros
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = 100
	}
	return o
}

func (o Options) isMacro(name string) bool {
	for _, m := range o.Macros {
		if m == name {
			return true
		}
	}
	return false
}
