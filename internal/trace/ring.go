package trace

import (
	"errors"
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory so that a failing run can
// be dumped after the fact.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	total uint64 // events ever stored
	level Level
}

// NewRingTracer creates a ring of capacity events (4096 when <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	t.buf[t.total%uint64(len(t.buf))] = *ev
	t.total++
	t.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.buf))
	if t.total <= size {
		return append([]Event(nil), t.buf[:t.total]...)
	}
	start := t.total % size
	out := make([]Event, 0, size)
	out = append(out, t.buf[start:]...)
	return append(out, t.buf[:start]...)
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	var out []byte
	for _, ev := range t.Snapshot() {
		out = AppendEvent(out, &ev, format)
	}
	_, err := w.Write(out)
	return err
}

// DumpToPath writes the snapshot to path ("-" for stderr, "stdout", or a
// file whose extension picks the format).
func (t *RingTracer) DumpToPath(path string) error {
	w, err := openOutput(Config{OutputPath: path})
	if err != nil {
		return err
	}
	err = t.Dump(w, formatForPath(path))
	if c, ok := w.(io.Closer); ok && !isStdStream(w) {
		err = errors.Join(err, c.Close())
	}
	return err
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
