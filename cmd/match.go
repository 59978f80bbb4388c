package cmd

import (
	"fmt"
	"time"

	"github.com/recon-tools/tabmatch/internal/hiermatch"
	"github.com/recon-tools/tabmatch/internal/table"
	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	var primary string
	var phone string
	var date string
	var tolerance int
	var debug bool
	var summaryPath string

	cmd := &cobra.Command{
		Use:   "match <reference> <comparison> <output>",
		Short: "Match rows between two files by hierarchical key",
		Long: `Match rows of the reference file against the comparison file and write the
matched subset to the output file, keeping the reference schema and row order.

Rows match on the primary key alone while that key is unique in both files.
When a primary key is duplicated in either file, matching escalates to the
phone column, and then to the date column within a tolerance window, as far
as those columns are configured.`,
		Example: `  # Primary key only
  tabmatch match charges.xlsx scores.csv matched.xlsx --primary id

  # Escalate duplicated keys through phone and timestamp
  tabmatch match charges.csv scores.csv matched.csv -p transaction_id --phone phone --date created_at

  # Widen the date window to 5 seconds and keep diagnostics
  tabmatch match a.xlsx b.xlsx out.csv -p id --phone phone --date ts --tolerance 5 --debug`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := hiermatch.Config{
				PrimaryKey: primary,
				PhoneKey:   phone,
				DateKey:    date,
				Tolerance:  time.Duration(tolerance) * time.Second,
			}
			return executeMatch(args[0], args[1], args[2], cfg, debug, summaryPath)
		},
	}

	cmd.Flags().StringVarP(&primary, "primary", "p", "", "Primary key column name (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone column name (used for duplicated primary keys)")
	cmd.Flags().StringVar(&date, "date", "", "Date column name (used when primary+phone is still ambiguous)")
	cmd.Flags().IntVarP(&tolerance, "tolerance", "t", 3, "Maximum seconds difference for date matching")
	cmd.Flags().BoolVar(&debug, "debug", false, "Also write unmatched rows and a per-row diagnostics report")
	cmd.Flags().StringVar(&summaryPath, "summary", "", "Write a YAML run summary to this path")

	_ = cmd.MarkFlagRequired("primary")

	return cmd
}

func executeMatch(referencePath, comparisonPath, outputPath string, cfg hiermatch.Config, debug bool, summaryPath string) error {
	reference, err := table.Read(referencePath)
	if err != nil {
		return err
	}
	comparison, err := table.Read(comparisonPath)
	if err != nil {
		return err
	}

	fmt.Println("Input file statistics:")
	fmt.Printf("  %s: %d rows, %d columns\n", referencePath, len(reference.Rows), len(reference.Columns))
	fmt.Printf("  %s: %d rows, %d columns\n", comparisonPath, len(comparison.Rows), len(comparison.Columns))

	result, err := hiermatch.Match(reference, comparison, cfg)
	if err != nil {
		return err
	}

	printMatchStats(cfg, result)

	matched := reference.Subset(result.Matched)
	if err := table.Write(matched, outputPath); err != nil {
		return err
	}

	fmt.Println("\nResults:")
	fmt.Printf("  Original rows in %s: %d\n", referencePath, len(reference.Rows))
	fmt.Printf("  Matching rows found: %d\n", len(matched.Rows))
	fmt.Printf("  Rows removed: %d\n", len(reference.Rows)-len(matched.Rows))
	fmt.Printf("  Output saved to: %s\n", outputPath)

	if debug && len(result.Unmatched) > 0 {
		unmatchedPath, debugPath := hiermatch.SiblingPaths(outputPath)

		unmatched := reference.Subset(result.UnmatchedIndices())
		if err := table.Write(unmatched, unmatchedPath); err != nil {
			return err
		}
		fmt.Printf("\n  Debug: Unmatched rows saved to: %s\n", unmatchedPath)

		if err := hiermatch.WriteDebugReport(debugPath, outputPath, result.Unmatched); err != nil {
			return err
		}
		fmt.Printf("  Debug: Detailed report saved to: %s\n", debugPath)
	}

	if summaryPath != "" {
		summary := hiermatch.NewRunSummary(referencePath, comparisonPath, cfg, len(reference.Rows), result)
		if err := summary.WriteSummary(summaryPath); err != nil {
			return err
		}
		fmt.Printf("\n  Run summary saved to: %s\n", summaryPath)
	}

	return nil
}

func printMatchStats(cfg hiermatch.Config, result *hiermatch.Result) {
	fmt.Println("\nMatching statistics:")
	fmt.Printf("  Matched by primary key only: %d\n", result.Levels[hiermatch.LevelPrimaryOnly])
	if cfg.PhoneKey != "" {
		fmt.Printf("  Matched by primary + phone: %d\n", result.Levels[hiermatch.LevelPrimaryPhone])
	}
	if cfg.DateKey != "" && cfg.PhoneKey == "" {
		fmt.Printf("  Matched by primary + date (±%v): %d\n", cfg.Tolerance, result.Levels[hiermatch.LevelPrimaryDate])
	}
	if cfg.DateKey != "" && cfg.PhoneKey != "" {
		fmt.Printf("  Matched by primary + phone + date (±%v): %d\n", cfg.Tolerance, result.Levels[hiermatch.LevelPrimaryPhoneDate])
	}
	fmt.Printf("  Total matched: %d\n", len(result.Matched))
	fmt.Printf("  Total unmatched: %d\n", len(result.Unmatched))
}
