package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"paste/internal/diagfmt"
	"paste/internal/driver"
)

type checkFileJSON struct {
	Path string `json:"path"`
	diagfmt.DiagnosticsOutput
}

type checkJSON struct {
	Files  []checkFileJSON `json:"files"`
	Errors int             `json:"errors"`
}

func newCheckCmd() *cobra.Command {
	var (
		flags    expandFlags
		format   string
		pathMode string
		noNotes  bool
	)
	cmd := &cobra.Command{
		Use:   "check [flags] <file.rs|glob>...",
		Short: "Expand invocations and report diagnostics only",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			switch format {
			case "pretty", "json", "short":
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
			mode, err := diagfmt.ParsePathMode(pathMode)
			if err != nil {
				return err
			}
			files, err := resolveFiles(args)
			if err != nil {
				return err
			}
			opts, err := flags.driverOptions(current)
			if err != nil {
				return err
			}
			if format != "pretty" {
				// машинный вывод не смешиваем с прогрессом
				flags.ui = "off"
			}
			results, err := runExpand(cmd.Context(), "checking", files, opts, &flags)
			if err != nil {
				return err
			}

			failed := false
			for _, res := range results {
				failed = failed || res.Bag.HasErrors()
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				err = writeCheckJSON(out, results, diagfmt.JSONOpts{
					IncludePositions: true,
					PathMode:         mode,
					IncludeNotes:     !noNotes,
				})
			case "short":
				for _, res := range results {
					diagfmt.Short(out, res.Bag, res.FileSet, mode)
				}
			default:
				popts := current.prettyOpts()
				popts.PathMode = mode
				popts.ShowNotes = !noNotes
				for _, res := range results {
					if res.Bag.Len() > 0 {
						diagfmt.Pretty(out, res.Bag, res.FileSet, popts)
					}
				}
				if !current.quiet && !failed {
					fmt.Fprintf(cmd.ErrOrStderr(), "ok: %d files\n", len(results))
				}
			}
			if err != nil {
				return err
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json|short)")
	cmd.Flags().StringVar(&pathMode, "path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	cmd.Flags().BoolVar(&noNotes, "no-notes", false, "omit diagnostic notes")
	return cmd
}

func writeCheckJSON(w io.Writer, results []*driver.ExpandResult, opts diagfmt.JSONOpts) error {
	payload := checkJSON{Files: make([]checkFileJSON, 0, len(results))}
	for _, res := range results {
		out := diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, opts)
		if res.Bag.HasErrors() {
			payload.Errors++
		}
		payload.Files = append(payload.Files, checkFileJSON{Path: res.Path, DiagnosticsOutput: out})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
