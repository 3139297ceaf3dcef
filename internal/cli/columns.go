package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/qframe-project/qframe"
)

// ColumnsResult holds the columns command output.
type ColumnsResult struct {
	Table   string          `json:"table"`
	Columns []qframe.Column `json:"columns"`
}

// String renders the column listing as a name/type grid.
func (r ColumnsResult) String() string {
	rows := make([][]string, len(r.Columns))
	for i, c := range r.Columns {
		rows[i] = []string{c.Name, c.Type}
	}
	return qframe.NewTable([]string{"name", "type"}, rows).String()
}

// NewColumnsCommand creates the columns command.
func NewColumnsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "columns <table>",
		Short: "List the columns of a table",
		Long: `List the columns of a table with their declared types, in
declaration order.

Examples:
  qframe columns tracks --db ./chinook.db
  qframe columns tracks --db ./chinook.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := formatter(cmd, rootOpts)

			schema, cleanup, err := openSchema(ctx, rootOpts)
			if err != nil {
				out.Failure(err)
				return err
			}
			defer cleanup()

			cols, err := schema.Columns(args[0])
			if err != nil {
				wrapped := WrapExitError(ExitFailure, "failed to list columns", err)
				out.Failure(wrapped)
				return wrapped
			}

			return out.Success(ColumnsResult{Table: args[0], Columns: cols})
		},
	}
}
