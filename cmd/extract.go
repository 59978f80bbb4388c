package cmd

import (
	"fmt"

	"github.com/recon-tools/tabmatch/internal/jsonextract"
	"github.com/recon-tools/tabmatch/internal/table"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <input> <output> <field>...",
		Short: "Extract fields from JSON documents stored in the first column",
		Long: `Parse the first column of every row as a JSON document and append one
column per field. Fields use dot notation for nested values. Rows with
malformed JSON get an error marker in the new columns instead of aborting
the run.`,
		Example: `  tabmatch extract responses.xlsx enriched.xlsx "timestamp"
  tabmatch extract responses.xlsx enriched.csv "_advanced_info.merchant_uuid" "score"`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeExtract(args[0], args[1], args[2:])
		},
	}

	return cmd
}

func executeExtract(inputPath, outputPath string, fields []string) error {
	input, err := table.Read(inputPath)
	if err != nil {
		return err
	}

	fmt.Printf("Processing column: %s\n", firstColumn(input))
	fmt.Printf("Total rows: %d\n", len(input.Rows))

	out, err := jsonextract.Extract(input, fields)
	if err != nil {
		return err
	}

	if err := table.Write(out, outputPath); err != nil {
		return err
	}

	fmt.Printf("Done! Extracted %d field(s) from %d row(s)\n", len(fields), len(out.Rows))
	fmt.Printf("Output saved to: %s\n", outputPath)

	return nil
}

func firstColumn(ds *table.Dataset) string {
	if len(ds.Columns) == 0 {
		return ""
	}
	return ds.Columns[0]
}
