package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paste/internal/diagfmt"
	"paste/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.rs",
		Short: "Print the token trees of a source file",
		Long:  `Tokenize lexes a file and fuses delimiters into groups, the input paste! works on`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := driver.Tokenize(args[0], current.maxDiagnostics)
			if err != nil {
				return fmt.Errorf("tokenization failed: %w", err)
			}

			// Выводим диагностику в stderr, если есть
			if result.Bag.Len() > 0 {
				diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, current.prettyOpts())
			}

			out := cmd.OutOrStdout()
			switch format {
			case "pretty":
				err = diagfmt.FormatTokensPretty(out, result.Stream, result.FileSet)
			case "json":
				err = diagfmt.FormatTokensJSON(out, result.Stream)
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
			if err != nil {
				return err
			}
			if result.Bag.HasErrors() {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
