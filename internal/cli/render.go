package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Cols []string
}

// RenderResult holds the render command output.
type RenderResult struct {
	Table string `json:"table"`
	SQL   string `json:"sql"`
}

// String returns the SQL text for text output.
func (r RenderResult) String() string {
	return r.SQL
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <table>",
		Short: "Print the SQL for a table's query without executing it",
		Long: `Render the symbolic query of a table to SQL text. Nothing is
executed; the database is only read for schema discovery.

Examples:
  qframe render tracks --db ./chinook.db
  qframe render tracks --db ./chinook.db --cols Name,Composer`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := formatter(cmd, opts.RootOptions)

			schema, cleanup, err := openSchema(ctx, opts.RootOptions)
			if err != nil {
				out.Failure(err)
				return err
			}
			defer cleanup()

			frame, err := buildFrame(schema, args[0], opts.Cols)
			if err != nil {
				out.Failure(err)
				return err
			}

			sql, err := frame.SQL()
			if err != nil {
				wrapped := WrapExitError(ExitFailure, "failed to render query", err)
				out.Failure(wrapped)
				return wrapped
			}

			return out.Success(RenderResult{Table: args[0], SQL: sql})
		},
	}

	cmd.Flags().StringSliceVar(&opts.Cols, "cols", nil, "columns to project, in order")

	return cmd
}
