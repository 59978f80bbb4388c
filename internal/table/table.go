package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedFormat is returned when a file extension is not a recognized
// tabular format.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// MissingColumnError reports a configured column that does not exist in a
// dataset, along with the columns that do.
type MissingColumnError struct {
	Column    string
	Dataset   string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in %s (available columns: %s)",
		e.Column, e.Dataset, strings.Join(e.Available, ", "))
}

// Dataset is an in-memory tabular file: a header plus rows of string cells.
// Rows are padded to the header width on load, so Rows[i][j] is always valid
// for j < len(Columns).
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex resolves key to a column index. Header names are matched
// case-insensitively with surrounding whitespace ignored; a key that matches
// no header but parses as a number is treated as a 0-based column index.
func (d *Dataset) ColumnIndex(key string) (int, bool) {
	trimmed := strings.TrimSpace(key)
	for i, col := range d.Columns {
		if strings.EqualFold(strings.TrimSpace(col), trimmed) {
			return i, true
		}
	}
	if idx, err := strconv.Atoi(trimmed); err == nil && idx >= 0 && idx < len(d.Columns) {
		return idx, true
	}
	return -1, false
}

// RequireColumns verifies that every named column exists, returning a
// MissingColumnError for the first one that does not. Empty names are
// skipped so optional columns can be passed through unconditionally.
func (d *Dataset) RequireColumns(keys ...string) error {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, ok := d.ColumnIndex(key); !ok {
			return &MissingColumnError{Column: key, Dataset: d.Name, Available: d.Columns}
		}
	}
	return nil
}

// Subset returns a new Dataset containing the rows at the given indices, in
// the given order, sharing the schema. Row slices are not copied; datasets
// are treated as immutable after load.
func (d *Dataset) Subset(indices []int) *Dataset {
	rows := make([][]string, 0, len(indices))
	for _, i := range indices {
		rows = append(rows, d.Rows[i])
	}
	return &Dataset{Name: d.Name, Columns: d.Columns, Rows: rows}
}

// padRow extends row with empty cells up to width.
func padRow(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}
