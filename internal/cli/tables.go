package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// TablesResult holds the tables command output.
type TablesResult struct {
	Tables []string `json:"tables"`
}

// String renders the table list for text output.
func (r TablesResult) String() string {
	return strings.Join(r.Tables, "\n")
}

// NewTablesCommand creates the tables command.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables of the database",
		Long: `List the user table names of the database in discovery order.

Examples:
  qframe tables --db ./chinook.db
  qframe tables --db ./warehouse.duckdb --driver duckdb --format json`,
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

			return out.Success(TablesResult{Tables: schema.Tables()})
		},
	}
}
