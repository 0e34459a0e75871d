package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevelAndMode(t *testing.T) {
	lvl, err := ParseLevel("detail")
	require.NoError(t, err)
	assert.Equal(t, LevelDetail, lvl)
	_, err = ParseLevel("verbose")
	require.Error(t, err)

	mode, err := ParseMode("both")
	require.NoError(t, err)
	assert.Equal(t, ModeBoth, mode)
	_, err = ParseMode("disk")
	require.Error(t, err)
}

func TestLevelShouldEmit(t *testing.T) {
	assert.False(t, LevelOff.ShouldEmit(ScopeDriver))
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeFile))
	assert.True(t, LevelDetail.ShouldEmit(ScopeFile))
	assert.False(t, LevelDetail.ShouldEmit(ScopeNode))
	assert.True(t, LevelDebug.ShouldEmit(ScopeNode))
}

func TestSpanEmitsBeginAndEnd(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	parent := Begin(ring, ScopePass, "expand", 0)
	Point(ring, ScopeNode, "span", "a b -> ab", parent.ID())
	parent.Attr("invocations", "1").Attr("spans", "2").End("ok")

	events := ring.Snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, KindSpanBegin, events[0].Kind)
	assert.Equal(t, KindPoint, events[1].Kind)
	assert.Equal(t, parent.ID(), events[1].ParentID)
	assert.Equal(t, KindSpanEnd, events[2].Kind)
	assert.Equal(t, "ok", events[2].Detail)
	assert.Equal(t, []Attr{{"invocations", "1"}, {"spans", "2"}}, events[2].Attrs)
	v, ok := events[2].Attr("spans")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	assert.NotZero(t, events[0].GID)
}

func TestCurrentGIDDistinguishesGoroutines(t *testing.T) {
	main := currentGID()
	require.NotZero(t, main)
	assert.Equal(t, main, currentGID())

	child := make(chan uint64)
	go func() { child <- currentGID() }()
	other := <-child
	assert.NotZero(t, other)
	assert.NotEqual(t, main, other)
}

func TestSpanFilteredByLevel(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	sp := Begin(ring, ScopeNode, "span", 0)
	assert.Zero(t, sp.ID())
	sp.End("")
	Point(ring, ScopeNode, "span", "", 0)
	assert.Empty(t, ring.Snapshot())

	// Nop tracer never records
	assert.Zero(t, Begin(Nop, ScopeDriver, "x", 0).End(""))
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeDriver, name, "", 0)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	assert.Equal(t, []string{"c", "d", "e"}, names)

	var buf bytes.Buffer
	require.NoError(t, ring.Dump(&buf, FormatText))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestRingDumpToPath(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	Point(ring, ScopeFile, "file:a.rs", "", 0)
	Point(ring, ScopeFile, "file:b.rs", "", 0)

	path := filepath.Join(t.TempDir(), "trace.ndjson")
	require.NoError(t, ring.DumpToPath(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &ev))
	assert.Equal(t, "file:b.rs", ev["name"])
}

func TestTextFormat(t *testing.T) {
	ev := &Event{
		Kind:   KindSpanEnd,
		Scope:  ScopePass,
		GID:    7,
		Name:   "expand",
		Detail: "ok",
		Attrs:  []Attr{{"b", "2"}, {"a", "1"}},
	}
	line := string(AppendEvent(nil, ev, FormatText))
	assert.True(t, strings.HasSuffix(line, "g7    pass     ← expand (ok) {b=2, a=1}\n"), line)

	_, err := ParseFormat("xml")
	require.Error(t, err)
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatNDJSON, f)
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(st, ScopeDriver, "file:lib.rs", 0).End("done")
	require.NoError(t, st.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &ev))
	assert.Equal(t, "end", ev["kind"])
	assert.Equal(t, "driver", ev["scope"])
	assert.Equal(t, "file:lib.rs", ev["name"])
	assert.Equal(t, "done", ev["detail"])
}

func TestMultiTracerFansOut(t *testing.T) {
	a := NewRingTracer(8, LevelDebug)
	b := NewRingTracer(8, LevelDebug)
	m := NewMultiTracer(LevelDebug, a, b)
	Point(m, ScopeNode, "p", "", 0)
	assert.Len(t, a.Snapshot(), 1)
	assert.Len(t, b.Snapshot(), 1)
	require.NoError(t, m.Flush())
	require.NoError(t, m.Close())
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Nop, FromContext(ctx))

	ring := NewRingTracer(4, LevelDebug)
	ctx = WithTracer(ctx, ring)
	assert.Same(t, ring, FromContext(ctx).(*RingTracer))

	ctx = WithSpanContext(ctx, SpanContext{SpanID: 7})
	assert.Equal(t, uint64(7), CurrentSpan(ctx).SpanID)
	assert.Equal(t, SpanContext{}, CurrentSpan(context.Background()))
}

func TestNewDisabled(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())

	tr, err = New(Config{Level: LevelPhase, Mode: ModeRing, RingSize: 2})
	require.NoError(t, err)
	assert.True(t, tr.Enabled())
}

func TestContextWithSpan(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	sp := Begin(ring, ScopeDriver, "expand", 0)
	ctx := ContextWithSpan(context.Background(), sp)
	assert.Equal(t, sp.ID(), CurrentSpan(ctx).SpanID)
}

func TestHeartbeat(t *testing.T) {
	assert.Nil(t, StartHeartbeat(Nop, time.Millisecond))

	ring := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)
	require.NotNil(t, h)
	require.Eventually(t, func() bool { return len(ring.Snapshot()) > 0 }, time.Second, time.Millisecond)
	h.Stop()
	h.Stop()

	ev := ring.Snapshot()[0]
	assert.Equal(t, KindHeartbeat, ev.Kind)
	assert.Contains(t, ev.Detail, "#1 goroutines=")
}
