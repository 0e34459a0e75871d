package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"paste/internal/diagfmt"
	"paste/internal/driver"
	"paste/internal/observ"
)

func newExpandCmd() *cobra.Command {
	var (
		flags expandFlags
		diff  bool
		write bool
	)
	cmd := &cobra.Command{
		Use:   "expand [flags] <file.rs|glob>...",
		Short: "Expand paste! invocations and print the rewritten source",
		Long: `Expand rewrites every paste! invocation of the given files and prints the result.
Globs such as 'src/**/*.rs' are expanded by paste itself.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if diff && write {
				return fmt.Errorf("--diff and --write cannot be used together")
			}
			files, err := resolveFiles(args)
			if err != nil {
				return err
			}
			opts, err := flags.driverOptions(current)
			if err != nil {
				return err
			}
			results, err := runExpand(cmd.Context(), "expanding", files, opts, &flags)
			if err != nil {
				return err
			}

			failed := reportResults(cmd.ErrOrStderr(), results)
			out := cmd.OutOrStdout()
			for _, res := range results {
				if res.Output == nil {
					continue
				}
				switch {
				case write:
					if err := writeInPlace(res); err != nil {
						return err
					}
				case diff:
					if err := writeDiff(out, res); err != nil {
						return err
					}
				default:
					if len(results) > 1 && !current.quiet {
						fmt.Fprintf(out, "// ==> %s <==\n", res.Path)
					}
					if _, err := out.Write(res.Output); err != nil {
						return err
					}
				}
			}
			if !current.quiet && len(results) > 1 {
				printSummary(cmd.ErrOrStderr(), results)
				if current.timings {
					fmt.Fprint(cmd.ErrOrStderr(), mergedTimings(results).Summary())
				}
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&diff, "diff", false, "print a unified diff against the input instead of the full output")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "overwrite changed files in place")
	return cmd
}

// reportResults prints diagnostics of every result to w and reports
// whether any file has errors.
func reportResults(w io.Writer, results []*driver.ExpandResult) bool {
	failed := false
	for _, res := range results {
		if res.Bag.HasErrors() {
			failed = true
		}
		if res.Bag.Len() == 0 {
			continue
		}
		diagfmt.Pretty(w, res.Bag, res.FileSet, current.prettyOpts())
	}
	return failed
}

func writeDiff(w io.Writer, res *driver.ExpandResult) error {
	text, err := unifiedDiff(res)
	if err != nil {
		return fmt.Errorf("failed to diff %s: %w", res.Path, err)
	}
	_, err = io.WriteString(w, text)
	return err
}

// unifiedDiff is empty when the file has nothing to expand.
func unifiedDiff(res *driver.ExpandResult) (string, error) {
	if !res.Changed() {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(res.File.Content)),
		B:        difflib.SplitLines(string(res.Output)),
		FromFile: res.Path,
		ToFile:   res.Path,
		FromDate: "original",
		ToDate:   "expanded",
		Context:  3,
	})
}

func writeInPlace(res *driver.ExpandResult) error {
	if !res.Changed() {
		return nil
	}
	info, err := os.Stat(res.Path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", res.Path, err)
	}
	if err := os.WriteFile(res.Path, res.File.Denormalize(res.Output), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", res.Path, err)
	}
	return nil
}

func printSummary(w io.Writer, results []*driver.ExpandResult) {
	var invocations, skipped, failed int
	for _, res := range results {
		invocations += res.Invocations
		skipped += res.Skipped
		if res.Bag.HasErrors() {
			failed++
		}
	}
	fmt.Fprintf(w, "%d files, %d invocations expanded, %d skipped, %d failed\n",
		len(results), invocations, skipped, failed)
}

// mergedTimings sums per-file phase timings of a batch.
func mergedTimings(results []*driver.ExpandResult) observ.Report {
	reports := make([]observ.Report, 0, len(results))
	for _, res := range results {
		if res.Timing != nil {
			reports = append(reports, *res.Timing)
		}
	}
	return observ.Merge(reports...)
}
