// Package trace provides span tracing for the expansion pipeline.
//
// Tracing shows which file, pass or paste-span the tool is working on, which
// helps with slow inputs and with invocations that appear to hang.
//
// # Usage
//
//	paste expand --trace=- --trace-level=detail src/lib.rs
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when the command exits
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver and ScopePass events, LevelDetail adds
// ScopeFile, LevelDebug adds ScopeNode (single invocations and paste-spans).
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "expand", parentID)
//	defer span.End("")
package trace
