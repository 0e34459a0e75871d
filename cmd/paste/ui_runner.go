package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"paste/internal/driver"
	"paste/internal/pipeline"
	"paste/internal/trace"
	"paste/internal/ui"
)

// uiModes maps --ui values to whether the progress view is drawn for a
// batch of n files. auto wants several files and an interactive stderr.
var uiModes = map[string]func(n int) bool{
	"auto": func(n int) bool { return n > 1 && isTerminal(os.Stderr) },
	"on":   func(int) bool { return true },
	"off":  func(int) bool { return false },
}

func wantProgressView(value string, files int) (bool, error) {
	mode := strings.ToLower(strings.TrimSpace(value))
	if mode == "" {
		mode = "auto"
	}
	pick, ok := uiModes[mode]
	if !ok {
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return pick(files), nil
}

type expandOutcome struct {
	results []*driver.ExpandResult
	err     error
}

// runExpandWithUI runs the batch in the background and renders its
// progress events until the batch finishes.
func runExpandWithUI(ctx context.Context, title string, files []string, opts driver.Options, jobs int) ([]*driver.ExpandResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan expandOutcome, 1)

	go func() {
		opts.Sink = pipeline.ChannelSink{Ch: events}
		res, err := driver.ExpandFiles(ctx, files, opts, jobs)
		outcomeCh <- expandOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// если UI упал раньше времени, воркеры не должны зависнуть на канале
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// runExpand picks the progress view or a plain batch run.
func runExpand(ctx context.Context, title string, files []string, opts driver.Options, flags *expandFlags) ([]*driver.ExpandResult, error) {
	useView, err := wantProgressView(flags.ui, len(files))
	if err != nil {
		return nil, err
	}
	sp := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, title, trace.CurrentSpan(ctx).SpanID)
	defer sp.End(fmt.Sprintf("%d files", len(files)))
	ctx = trace.ContextWithSpan(ctx, sp)

	if useView && !current.quiet {
		return runExpandWithUI(ctx, title, files, opts, flags.jobs)
	}
	return driver.ExpandFiles(ctx, files, opts, flags.jobs)
}
