package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paste/internal/trace"
)

// setupTracing inspects trace-related flags (falling back to the [trace]
// table of paste.toml) and attaches a tracer to the command context.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()
	flags := root.PersistentFlags()
	cfg := current.cfg.Trace

	traceOutput := cfg.Output
	if flags.Changed("trace") {
		traceOutput, _ = flags.GetString("trace")
	}
	levelStr := cfg.Level
	if flags.Changed("trace-level") {
		levelStr, _ = flags.GetString("trace-level")
	}
	modeStr := cfg.Mode
	if flags.Changed("trace-mode") {
		modeStr, _ = flags.GetString("trace-mode")
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && flags.Changed("trace") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	if traceOutput == "" {
		traceOutput = "-"
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	var heartbeat *trace.Heartbeat
	if heartbeatInterval > 0 {
		heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	}

	cleanup := func() {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		// в режиме ring в выход попадают только последние события
		if ring, ok := tracer.(*trace.RingTracer); ok {
			if err := ring.DumpToPath(traceOutput); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
