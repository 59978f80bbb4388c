package cmd

import (
	"fmt"
	"strings"

	"github.com/recon-tools/tabmatch/internal/crossref"
	"github.com/recon-tools/tabmatch/internal/table"
	"github.com/spf13/cobra"
)

func newIntersectCmd() *cobra.Command {
	var keys string

	cmd := &cobra.Command{
		Use:   "intersect <reference> <comparison> <output>",
		Short: "Keep reference rows whose composite key exists in the comparison file",
		Long: `Remove rows from the reference file that have no exact key match in the
comparison file. The key may span several columns; all listed columns must
match for a row to be kept. Output keeps the reference schema and row order.`,
		Example: `  tabmatch intersect charges.xlsx scores.csv kept.xlsx --keys id
  tabmatch intersect a.csv b.csv out.csv --keys transaction_id,phone`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyColumns := splitKeys(keys)
			if len(keyColumns) == 0 {
				return fmt.Errorf("--keys must name at least one column")
			}
			return executeIntersect(args[0], args[1], args[2], keyColumns)
		},
	}

	cmd.Flags().StringVarP(&keys, "keys", "k", "", "Comma-separated key column names (required)")

	_ = cmd.MarkFlagRequired("keys")

	return cmd
}

func splitKeys(keys string) []string {
	var out []string
	for _, key := range strings.Split(keys, ",") {
		if key = strings.TrimSpace(key); key != "" {
			out = append(out, key)
		}
	}
	return out
}

func executeIntersect(referencePath, comparisonPath, outputPath string, keyColumns []string) error {
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

	matched, err := crossref.Filter(reference, comparison, keyColumns)
	if err != nil {
		return err
	}

	kept := reference.Subset(matched)
	if err := table.Write(kept, outputPath); err != nil {
		return err
	}

	fmt.Println("\nResults:")
	fmt.Printf("  Original rows in %s: %d\n", referencePath, len(reference.Rows))
	fmt.Printf("  Matching rows found: %d\n", len(kept.Rows))
	fmt.Printf("  Rows removed: %d\n", len(reference.Rows)-len(kept.Rows))
	fmt.Printf("  Output saved to: %s\n", outputPath)

	return nil
}
