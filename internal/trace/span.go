package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// newEvent stamps time, sequence number and goroutine id.
func newEvent(kind Kind, scope Scope, name string) *Event {
	return &Event{
		Time:  time.Now(),
		Seq:   seqCounter.Add(1),
		Kind:  kind,
		Scope: scope,
		GID:   currentGID(),
		Name:  name,
	}
}

// currentGID asks goid first. On runtimes whose g layout goid does not know
// it reports 0, and the id is parsed from the "goroutine N [" stack header.
func currentGID() uint64 {
	if id := goid.Get(); id > 0 {
		return uint64(id)
	}
	var buf [64]byte
	hdr := buf[:runtime.Stack(buf[:], false)]
	hdr, ok := bytes.CutPrefix(hdr, []byte("goroutine "))
	if !ok {
		return 0
	}
	if end := bytes.IndexByte(hdr, ' '); end > 0 {
		hdr = hdr[:end]
	}
	id, err := strconv.ParseUint(string(hdr), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func accepts(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Span is an open begin/end pair. A zero Span (from a filtered Begin) is
// inert: End and Attr do nothing and ID is 0.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
}

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !accepts(t, scope) {
		return &Span{}
	}
	ev := newEvent(KindSpanBegin, scope, name)
	ev.SpanID = spanCounter.Add(1)
	ev.ParentID = parent
	t.Emit(ev)
	return &Span{
		tracer:  t,
		id:      ev.SpanID,
		parent:  parent,
		scope:   scope,
		name:    name,
		started: ev.Time,
	}
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil
}

// Attr records key=value on the end event.
func (s *Span) Attr(key, value string) *Span {
	if s.live() {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// End emits the end event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := newEvent(KindSpanEnd, s.scope, s.name)
	ev.SpanID, ev.ParentID = s.id, s.parent
	ev.Detail = detail
	ev.Attrs = s.attrs
	s.tracer.Emit(ev)
	return ev.Time.Sub(s.started)
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !accepts(t, scope) {
		return
	}
	ev := newEvent(KindPoint, scope, name)
	ev.SpanID = spanCounter.Add(1)
	ev.ParentID = parent
	ev.Detail = detail
	t.Emit(ev)
}
