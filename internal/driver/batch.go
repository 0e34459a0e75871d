package driver

import (
	"context"
	"time"

	"paste/internal/diag"
	"paste/internal/pipeline"
	"paste/internal/source"
)

// ExpandFiles expands paths concurrently with at most jobs workers.
// Results are returned in input order. A file that cannot be read yields a
// result with an IO5001 diagnostic instead of failing the batch; the error
// return is reserved for cancellation.
func ExpandFiles(ctx context.Context, paths []string, opts Options, jobs int) ([]*ExpandResult, error) {
	opts = opts.withDefaults()
	results := make([]*ExpandResult, len(paths))
	for _, p := range paths {
		pipeline.Emit(opts.Sink, pipeline.Event{File: p, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
	}

	err := pipeline.ForEach(ctx, len(paths), jobs, func(ctx context.Context, i int) error {
		results[i] = expandOne(ctx, paths[i], opts)
		return nil
	})
	return results, err
}

func expandOne(ctx context.Context, path string, opts Options) *ExpandResult {
	sink := opts.Sink
	started := time.Now()
	pipeline.Emit(sink, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		bag := diag.NewBag(opts.MaxDiagnostics)
		bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load "+path+": "+err.Error()))
		pipeline.Emit(sink, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: err, Elapsed: time.Since(started)})
		return &ExpandResult{Path: path, Bag: bag}
	}

	if sink != nil {
		// события стадий идут под тем же путём, что и queued/done
		opts.Sink = pipeline.FuncSink(func(ev pipeline.Event) {
			ev.File = path
			sink.OnEvent(ev)
		})
	}
	res := ExpandSource(ctx, fs, fs.Get(id), opts)
	status := pipeline.StatusDone
	if res.Bag.HasErrors() {
		status = pipeline.StatusError
	}
	pipeline.Emit(sink, pipeline.Event{File: path, Stage: pipeline.StagePrint, Status: status, Elapsed: time.Since(started)})
	return res
}
