package table

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Write saves a Dataset to path, choosing the format by extension: .csv,
// .tsv, .xlsx, or .xlsm. Parent directories are created as needed.
func Write(ds *Dataset, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".csv":
		return writeDelimited(ds, path, ',')
	case ".tsv":
		return writeDelimited(ds, path, '\t')
	case ".xlsx", ".xlsm":
		return writeExcel(ds, path)
	default:
		return fmt.Errorf("%w: %s (supported output: .csv, .tsv, .xlsx, .xlsm)", ErrUnsupportedFormat, ext)
	}
}

func writeDelimited(ds *Dataset, path string, comma rune) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = comma

	if err := writer.Write(ds.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range ds.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	slog.Debug("Wrote delimited file", "path", path, "rows", len(ds.Rows))

	return nil
}

func writeExcel(ds *Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	header := make([]any, len(ds.Columns))
	for i, col := range ds.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range ds.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Debug("Wrote workbook", "path", path, "rows", len(ds.Rows))

	return nil
}
