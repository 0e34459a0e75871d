package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Format selects how events are encoded.
type Format uint8

const (
	FormatAuto   Format = iota // pick by output path
	FormatText                 // one human-readable line per event
	FormatNDJSON               // one JSON object per line
)

var formatNames = map[string]Format{
	"":       FormatAuto,
	"auto":   FormatAuto,
	"text":   FormatText,
	"ndjson": FormatNDJSON,
	"json":   FormatNDJSON,
}

func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// AppendEvent encodes ev in format and appends it, newline included, to dst.
func AppendEvent(dst []byte, ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendJSON(dst, ev)
	}
	return appendText(dst, ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
}

func appendJSON(dst []byte, ev *Event) []byte {
	j := jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
	}
	if len(ev.Attrs) > 0 {
		j.Attrs = make(map[string]string, len(ev.Attrs))
		for _, a := range ev.Attrs {
			j.Attrs[a.Key] = a.Value
		}
	}
	data, _ := json.Marshal(j) //nolint:errcheck // only strings and ints
	dst = append(dst, data...)
	return append(dst, '\n')
}

// appendText renders
//
//	15:04:05.000000 g12   pass   → expand (detail) {k=v}
//
// indented by scope depth.
func appendText(dst []byte, ev *Event) []byte {
	dst = ev.Time.AppendFormat(dst, "15:04:05.000000")
	dst = append(dst, " g"...)
	gid := strconv.FormatUint(ev.GID, 10)
	dst = append(dst, gid...)
	for i := len(gid); i < 5; i++ {
		dst = append(dst, ' ')
	}
	scope := ev.Scope.String()
	dst = append(dst, scope...)
	for i := len(scope); i < 7; i++ {
		dst = append(dst, ' ')
	}
	for range max(int(ev.Scope)-1, 0) {
		dst = append(dst, "  "...)
	}
	dst = append(dst, ev.Kind.glyph()...)
	dst = append(dst, ' ')
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = append(dst, " ("...)
		dst = append(dst, ev.Detail...)
		dst = append(dst, ')')
	}
	for i, a := range ev.Attrs {
		if i == 0 {
			dst = append(dst, " {"...)
		} else {
			dst = append(dst, ", "...)
		}
		dst = append(dst, a.Key...)
		dst = append(dst, '=')
		dst = append(dst, a.Value...)
	}
	if len(ev.Attrs) > 0 {
		dst = append(dst, '}')
	}
	return append(dst, '\n')
}
