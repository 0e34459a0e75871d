package driver

import (
	"encoding/json"
	"fmt"

	"paste/internal/diag"
	"paste/internal/observ"
	"paste/internal/pipeline"
	"paste/internal/source"
	"paste/internal/trace"
)

// phaseRecorder fans phase boundaries of one file out to the trace, the
// optional --timings timer and the progress sink.
type phaseRecorder struct {
	path   string
	tracer trace.Tracer
	parent uint64
	sink   pipeline.ProgressSink
	timer  *observ.Timer // nil without --timings
}

func (r *phaseRecorder) begin(stage pipeline.Stage) (end func(note string)) {
	name := string(stage)
	idx := -1
	if r.timer != nil {
		idx = r.timer.Begin(name)
	}
	pipeline.Emit(r.sink, pipeline.Event{File: r.path, Stage: stage, Status: pipeline.StatusWorking})
	sp := trace.Begin(r.tracer, trace.ScopePass, name, r.parent)
	return func(note string) {
		sp.End(note)
		if r.timer != nil {
			r.timer.End(idx, note)
		}
	}
}

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// finish stores the timer report on res and adds it as an OBS6001 info
// diagnostic carrying the JSON payload in its note. The bag limit does not
// apply to it.
func (r *phaseRecorder) finish(res *ExpandResult) {
	if r.timer == nil {
		return
	}
	report := r.timer.Report()
	res.Timing = &report

	data, err := json.Marshal(timingPayload{Kind: "expand", Path: res.Path, TotalMS: report.TotalMS, Phases: report.Phases})
	if err != nil {
		return
	}
	msg := fmt.Sprintf("timings (expand): total %.2f ms", report.TotalMS)
	if res.Path != "" {
		msg += ", " + res.Path
	}
	res.Bag.Force(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data)))
}
