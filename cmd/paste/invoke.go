package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paste/internal/trace"
	"paste/internal/wire"
)

func newInvokeCmd() *cobra.Command {
	var maxDepth int
	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Expand one msgpack-encoded token stream read from stdin",
		Long: `Invoke reads a single request of the invocation protocol from stdin, expands
the token stream and writes the response to stdout. Engine failures are
returned as response diagnostics; only malformed requests fail the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := wire.ReadRequest(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read request: %w", err)
			}
			base := current.cfg.PasteOptions()
			if maxDepth > 0 {
				base.MaxDepth = maxDepth
			}
			base.Tracer = trace.FromContext(cmd.Context())

			resp, err := wire.Handle(req, base)
			if err != nil {
				return fmt.Errorf("invalid request: %w", err)
			}
			if err := wire.WriteResponse(cmd.OutOrStdout(), resp); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "default nesting limit when the request sets none")
	return cmd
}
