package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
)

// Read loads a tabular file into a Dataset. The format is chosen by
// extension: .csv, .tsv, .xlsx, .xlsm, or .parquet. The first row (or the
// parquet schema) provides the column names.
func Read(path string) (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".csv":
		return readDelimited(path, ',')
	case ".tsv":
		return readDelimited(path, '\t')
	case ".xlsx", ".xlsm":
		return readExcel(path)
	case ".parquet":
		return readParquet(path)
	default:
		return nil, fmt.Errorf("%w: %s (supported: .csv, .tsv, .xlsx, .xlsm, .parquet)", ErrUnsupportedFormat, ext)
	}
}

func readDelimited(path string, comma rune) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	// Ragged rows are padded to the header width instead of rejected.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	ds := &Dataset{Name: filepath.Base(path)}
	if len(records) == 0 {
		return ds, nil
	}

	ds.Columns = records[0]
	ds.Rows = make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		ds.Rows = append(ds.Rows, padRow(rec, len(ds.Columns)))
	}

	slog.Debug("Loaded delimited file", "path", path, "rows", len(ds.Rows), "columns", len(ds.Columns))

	return ds, nil
}

func readExcel(path string) (*Dataset, error) {
	// excelize returns a generic error for a missing file, so stat first to
	// keep fs.ErrNotExist visible to callers.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Dataset{Name: filepath.Base(path)}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	ds := &Dataset{Name: filepath.Base(path)}
	if len(rows) == 0 {
		return ds, nil
	}

	ds.Columns = rows[0]
	ds.Rows = make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		ds.Rows = append(ds.Rows, padRow(row, len(ds.Columns)))
	}

	slog.Debug("Loaded workbook", "path", path, "sheet", sheets[0], "rows", len(ds.Rows), "columns", len(ds.Columns))

	return ds, nil
}

func readParquet(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "path", path, "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	// Flat schemas only: each leaf field becomes one string column.
	fields := pf.Schema().Fields()
	ds := &Dataset{Name: filepath.Base(path), Columns: make([]string, len(fields))}
	for i, field := range fields {
		ds.Columns[i] = field.Name()
	}

	buf := make([]parquet.Row, 128)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		var readErr error
		for readErr == nil {
			var n int
			n, readErr = rows.ReadRows(buf)
			for _, row := range buf[:n] {
				rec := make([]string, len(ds.Columns))
				for _, v := range row {
					if col := v.Column(); col >= 0 && col < len(rec) && !v.IsNull() {
						rec[col] = v.String()
					}
				}
				ds.Rows = append(ds.Rows, rec)
			}
		}
		closeErr := rows.Close()
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read parquet rows: %w", readErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", closeErr)
		}
	}

	slog.Debug("Finished reading parquet", "path", path, "rows", len(ds.Rows))

	return ds, nil
}
