package trace

import "context"

type ctxKey uint8

const (
	tracerKey ctxKey = iota
	spanKey
)

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey).(Tracer); ok && t != nil {
		return t
	}
	return Nop
}

// WithTracer attaches t (nil means Nop) to ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey, t)
}

// SpanContext identifies the span new spans should be parented to.
type SpanContext struct {
	SpanID uint64
}

// CurrentSpan returns the span attached with WithSpanContext; the zero
// value means "root".
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanKey).(SpanContext)
	return sc
}

func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, spanKey, sc)
}

// ContextWithSpan parents spans started from the returned context to sp.
func ContextWithSpan(ctx context.Context, sp *Span) context.Context {
	return WithSpanContext(ctx, SpanContext{SpanID: sp.ID()})
}
