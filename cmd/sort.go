package cmd

import (
	"fmt"

	"github.com/recon-tools/tabmatch/internal/sortrows"
	"github.com/recon-tools/tabmatch/internal/table"
	"github.com/spf13/cobra"
)

func newSortCmd() *cobra.Command {
	var keyCol string

	cmd := &cobra.Command{
		Use:   "sort <reference> <target> <output>",
		Short: "Reorder target rows to follow the reference file's key order",
		Long: `Sort the rows of the target file so their key values appear in the same
order as in the reference file. Rows whose key is missing from the reference
are appended at the end in their original relative order.`,
		Example: `  tabmatch sort charges.xlsx scores.xlsx sorted.csv
  tabmatch sort charges.xlsx scores.xlsx sorted.csv --key-col "ID"
  tabmatch sort charges.xlsx scores.xlsx sorted.csv --key-col 0`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeSort(args[0], args[1], args[2], keyCol)
		},
	}

	cmd.Flags().StringVar(&keyCol, "key-col", "", "Key column name or 0-based index (default: first column)")

	return cmd
}

func executeSort(referencePath, targetPath, outputPath, keyCol string) error {
	reference, err := table.Read(referencePath)
	if err != nil {
		return err
	}
	target, err := table.Read(targetPath)
	if err != nil {
		return err
	}

	fmt.Println("Input file statistics:")
	fmt.Printf("  %s: %d rows, %d columns\n", referencePath, len(reference.Rows), len(reference.Columns))
	fmt.Printf("  %s: %d rows, %d columns\n", targetPath, len(target.Rows), len(target.Columns))

	sorted, err := sortrows.Reorder(reference, target, keyCol)
	if err != nil {
		return err
	}

	if err := table.Write(sorted, outputPath); err != nil {
		return err
	}

	fmt.Println("\nResults:")
	fmt.Printf("  Sorted rows: %d\n", len(sorted.Rows))
	fmt.Printf("  Output saved to: %s\n", outputPath)

	return nil
}
