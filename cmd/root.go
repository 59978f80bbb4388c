package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "tabmatch",
		Short: "Tabular reconciliation utilities for risk-scoring exports",
		Long: `Tabmatch reconciles tabular exports (CSV, TSV, Excel, Parquet) from a
payment-risk-scoring integration.

Its core is a hierarchical key matcher: rows are matched between two files by
primary key, escalating to primary+phone and primary+phone+date (within a
tolerance window) when the primary key alone is ambiguous. Companion commands
cover the surrounding chores: intersecting files on composite keys, reordering
one file by another's key order, and extracting fields from JSON payload
columns.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			logLevel := slog.LevelInfo
			if verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
			slog.SetDefault(logger)
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(newMatchCmd())
	cmd.AddCommand(newIntersectCmd())
	cmd.AddCommand(newSortCmd())
	cmd.AddCommand(newExtractCmd())

	return cmd
}
