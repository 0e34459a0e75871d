package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer encodes events as they arrive. File output goes through a
// bufio.Writer, so Flush must run before the process exits; stdout and
// stderr are flushed after every event.
type StreamTracer struct {
	mu      sync.Mutex
	out     *bufio.Writer
	closer  io.Closer // nil for std streams
	eager   bool      // flush per event
	scratch []byte
	level   Level
	format  Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	st := &StreamTracer{out: bufio.NewWriter(w), level: level, format: format}
	switch c, ok := w.(io.Closer); {
	case isStdStream(w):
		st.eager = true
	case ok:
		st.closer = c
	}
	return st
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scratch = AppendEvent(t.scratch[:0], ev, t.format)
	// ошибки записи трассы не влияют на раскрытие
	_, _ = t.out.Write(t.scratch) //nolint:errcheck
	if t.eager || ev.Kind == KindHeartbeat {
		// stderr и пульс должны быть видны сразу, даже если процесс завис
		_ = t.out.Flush() //nolint:errcheck
	}
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.Flush()
}

// Close flushes and closes the underlying writer unless it is stdout/stderr.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
