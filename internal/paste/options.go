package paste

import "paste/internal/trace"

// DefaultMaxDepth bounds the combined nesting of groups and paste-spans.
const DefaultMaxDepth = 64

type Options struct {
	// MaxDepth ограничивает глубину рекурсии; 0 означает DefaultMaxDepth.
	MaxDepth int
	// DocAttributes enables concatenation inside #[doc = ...] attributes.
	DocAttributes bool
	// Tracer receives a span per invocation and points per paste-span.
	Tracer trace.Tracer
	// ParentSpan is the trace span the invocation span is attached to.
	ParentSpan uint64
}

// DefaultOptions returns the options used by the CLI when no config is present.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth, DocAttributes: true}
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
