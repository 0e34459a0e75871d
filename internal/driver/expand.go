package driver

import (
	"context"
	"fmt"

	"paste/internal/diag"
	"paste/internal/lexer"
	"paste/internal/observ"
	"paste/internal/pipeline"
	"paste/internal/printer"
	"paste/internal/source"
	"paste/internal/token"
	"paste/internal/trace"
	"paste/internal/tree"
)

// ExpandResult is the outcome of expanding one file.
type ExpandResult struct {
	Path     string
	FileSet  *source.FileSet
	File     *source.File
	Stream   token.Stream   // дерево после раскрытия
	Trailing []token.Trivia // trivia в конце файла
	// Output is the rendered file; nil when Bag has errors.
	Output []byte
	Bag    *diag.Bag
	// Invocations counts expanded invocations; Skipped those left as-is
	// because of unbound variables.
	Invocations int
	Skipped     int
	Timing      *observ.Report
}

// Changed reports whether expansion altered the file.
func (r *ExpandResult) Changed() bool {
	return r != nil && r.Output != nil && r.File != nil && string(r.Output) != string(r.File.Content)
}

// ExpandFile loads path and expands every invocation in it.
// The returned error is reserved for I/O failures; expansion problems are
// reported through ExpandResult.Bag.
func ExpandFile(ctx context.Context, path string, opts Options) (*ExpandResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return ExpandSource(ctx, fs, fs.Get(id), opts), nil
}

// ExpandSource expands an already loaded file. fs must not be shared with
// other goroutines while this runs.
func ExpandSource(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *ExpandResult {
	opts = opts.withDefaults()
	res := &ExpandResult{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

	tracer := opts.Paste.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	parent := opts.Paste.ParentSpan
	if parent == 0 {
		parent = trace.CurrentSpan(ctx).SpanID
	}
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "file:"+file.Path, parent)
	defer fileSpan.End("")

	rec := &phaseRecorder{path: file.Path, tracer: tracer, parent: fileSpan.ID(), sink: opts.Sink}
	if opts.Timings {
		rec.timer = observ.NewTimer()
	}
	defer rec.finish(res)

	end := rec.begin(pipeline.StageLex)
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	stream, trailing := tree.Build(tokens, reporter)
	end(fmt.Sprintf("%d tokens", len(tokens)))
	res.Trailing = trailing

	if res.Bag.HasErrors() {
		res.Stream = stream
		return res
	}

	end = rec.begin(pipeline.StageExpand)
	x := invocationExpander{opts: opts, reporter: reporter, tracer: tracer, parent: fileSpan.ID()}
	res.Stream = x.walk(stream)
	res.Invocations, res.Skipped = x.expanded, x.skipped
	end(fmt.Sprintf("%d invocations", x.expanded))

	if !res.Bag.HasErrors() {
		end = rec.begin(pipeline.StagePrint)
		res.Output = printer.Print(res.Stream, trailing, printer.Options{Mode: printer.Exact})
		end("")
	}

	return res
}
