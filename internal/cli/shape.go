package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// ShapeOptions holds flags for the shape command.
type ShapeOptions struct {
	*RootOptions
	Cols []string
}

// ShapeResult holds the shape command output.
type ShapeResult struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
}

// String renders the dimensionality for text output.
func (r ShapeResult) String() string {
	return fmt.Sprintf("(%d, %d)", r.Rows, r.Cols)
}

// NewShapeCommand creates the shape command.
func NewShapeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShapeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "shape <table>",
		Short: "Show the dimensionality of a table",
		Long: `Show a table's row and column counts. The column count comes from
the projection; the row count executes one COUNT query.

Examples:
  qframe shape tracks --db ./chinook.db
  qframe shape tracks --db ./chinook.db --cols Name,Composer`,
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

			shape, err := frame.Shape(ctx)
			if err != nil {
				wrapped := WrapExitError(ExitFailure, "failed to count rows", err)
				out.Failure(wrapped)
				return wrapped
			}

			return out.Success(ShapeResult{Table: args[0], Rows: shape.Rows, Cols: shape.Cols})
		},
	}

	cmd.Flags().StringSliceVar(&opts.Cols, "cols", nil, "columns to project before counting")

	return cmd
}
