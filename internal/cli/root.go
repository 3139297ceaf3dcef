package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/qframe-project/qframe"
	"github.com/qframe-project/qframe/duckdb"
	"github.com/qframe-project/qframe/sqlite"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DB         string
	Driver     string
	ConfigFile string
	Format     string // "json" | "text"
	Verbose    bool
	Limit      int // default head row count, set from config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidDrivers defines the supported connection adapters.
var ValidDrivers = []string{"sqlite", "duckdb"}

// NewRootCommand creates the root command for the qframe CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "qframe",
		Short: "qframe - lazy dataframe views over a relational database",
		Long: `Browse the structure of a relational database and preview its
relations with a pandas-like vocabulary. Queries are built symbolically
and only executed when rows are requested.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := DefaultConfig()
			if opts.ConfigFile != "" {
				loaded, err := LoadConfig(opts.ConfigFile)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to load config", err)
				}
				cfg = loaded
			}
			if opts.DB == "" {
				opts.DB = cfg.Path
			}
			if opts.Driver == "" {
				opts.Driver = cfg.Driver
			}
			opts.Limit = cfg.Limit

			if !contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if !contains(ValidDrivers, opts.Driver) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid driver %q: must be one of %v", opts.Driver, ValidDrivers))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "path to database file")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "connection adapter (sqlite|duckdb)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewTablesCommand(opts))
	cmd.AddCommand(NewColumnsCommand(opts))
	cmd.AddCommand(NewOverviewCommand(opts))
	cmd.AddCommand(NewHeadCommand(opts))
	cmd.AddCommand(NewShapeCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))

	return cmd
}

// contains checks membership in a small option list.
func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// closer releases a connection adapter opened by openConn.
type closer func() error

// openConn opens the configured connection adapter.
func openConn(opts *RootOptions) (qframe.Conn, closer, error) {
	if opts.DB == "" {
		return nil, nil, NewExitError(ExitCommandError, "database path required (--db or config file)")
	}
	switch opts.Driver {
	case "duckdb":
		conn, err := duckdb.Open(opts.DB)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		return conn, conn.Close, nil
	default:
		conn, err := sqlite.Open(opts.DB)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		return conn, conn.Close, nil
	}
}

// openSchema opens the adapter and discovers the schema.
func openSchema(ctx context.Context, opts *RootOptions) (*qframe.Schema, closer, error) {
	conn, cleanup, err := openConn(opts)
	if err != nil {
		return nil, nil, err
	}
	schema, err := qframe.Discover(ctx, conn)
	if err != nil {
		cleanup()
		return nil, nil, WrapExitError(ExitFailure, "failed to discover schema", err)
	}
	return schema, cleanup, nil
}

// formatter builds the output formatter for one command invocation, with a
// fresh trace id for correlation.
func formatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   uuid.Must(uuid.NewV7()).String(),
	}
}
