package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/qframe-project/qframe"
)

// HeadOptions holds flags for the head command.
type HeadOptions struct {
	*RootOptions
	N    int
	Cols []string
}

// HeadResult holds the head command output.
type HeadResult struct {
	Table   string     `json:"table"`
	SQL     string     `json:"sql"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	display string
}

// String renders the preview grid for text output.
func (r HeadResult) String() string {
	return r.display
}

// NewHeadCommand creates the head command.
func NewHeadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HeadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "head <table>",
		Short: "Preview the first rows of a table",
		Long: `Execute the table's query with a LIMIT and print the first rows,
headed by the projection column names.

Examples:
  qframe head tracks --db ./chinook.db
  qframe head tracks --db ./chinook.db -n 10 --cols Name,Composer`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHead(opts, cmd, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.N, "rows", "n", 0, "number of rows to preview (default from config)")
	cmd.Flags().StringSliceVar(&opts.Cols, "cols", nil, "columns to project, in order")

	return cmd
}

func runHead(opts *HeadOptions, cmd *cobra.Command, table string) error {
	ctx := context.Background()
	out := formatter(cmd, opts.RootOptions)

	schema, cleanup, err := openSchema(ctx, opts.RootOptions)
	if err != nil {
		out.Failure(err)
		return err
	}
	defer cleanup()

	frame, err := buildFrame(schema, table, opts.Cols)
	if err != nil {
		out.Failure(err)
		return err
	}

	n := opts.N
	if n <= 0 {
		n = opts.Limit
	}
	window, err := frame.Slice(0, n)
	if err != nil {
		wrapped := WrapExitError(ExitFailure, "failed to build query", err)
		out.Failure(wrapped)
		return wrapped
	}
	sql, err := window.SQL()
	if err != nil {
		wrapped := WrapExitError(ExitFailure, "failed to render query", err)
		out.Failure(wrapped)
		return wrapped
	}
	out.VerboseLog("query: %s", sql)

	preview, err := frame.Head(ctx, n)
	if err != nil {
		wrapped := WrapExitError(ExitFailure, "failed to execute query", err)
		out.Failure(wrapped)
		return wrapped
	}

	return out.Success(HeadResult{
		Table:   table,
		SQL:     sql,
		Columns: preview.Columns(),
		Rows:    preview.Rows(),
		display: preview.String(),
	})
}

// buildFrame looks up a table frame and applies an optional projection.
func buildFrame(schema *qframe.Schema, table string, cols []string) (*qframe.Frame, error) {
	frame, err := schema.Frame(table)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to open table", err)
	}
	if len(cols) > 0 {
		frame, err = frame.Select(cols...)
		if err != nil {
			return nil, WrapExitError(ExitFailure, "failed to project columns", err)
		}
	}
	return frame, nil
}
