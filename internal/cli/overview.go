package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// OverviewResult holds the overview command output.
type OverviewResult struct {
	Tables  []string   `json:"tables"`
	Grid    [][]string `json:"grid"`
	display string
}

// String renders the schema grid for text output.
func (r OverviewResult) String() string {
	return r.display
}

// NewOverviewCommand creates the overview command.
func NewOverviewCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show the schema as a grid",
		Long: `Show every table of the database as a grid column headed by the
table name, with its column names stacked beneath. Shorter tables pad
with blank cells.

Examples:
  qframe overview --db ./chinook.db`,
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

			grid := schema.Overview()
			return out.Success(OverviewResult{
				Tables:  grid.Columns(),
				Grid:    grid.Rows(),
				display: grid.String(),
			})
		},
	}
}
