// Package jsonextract pulls fields out of JSON documents stored in the first
// column of a tabular file, one output column per dot-notation field path.
package jsonextract

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/recon-tools/tabmatch/internal/table"
)

// Extract parses the first column of every row as a JSON document and
// appends one column per field path. A row whose document fails to parse
// gets an "Error: ..." cell in each new column; extraction never aborts on
// bad row data. Field paths use dot notation ("a.b.c").
func Extract(ds *table.Dataset, fields []string) (*table.Dataset, error) {
	if len(ds.Columns) == 0 {
		return nil, errors.New(ds.Name + " is empty")
	}
	if len(fields) == 0 {
		return nil, errors.New("at least one field path is required")
	}

	slog.Debug("Extracting JSON fields", "column", ds.Columns[0], "fields", fields, "rows", len(ds.Rows))

	out := &table.Dataset{
		Name:    ds.Name,
		Columns: append(append([]string(nil), ds.Columns...), fields...),
		Rows:    make([][]string, 0, len(ds.Rows)),
	}

	for _, row := range ds.Rows {
		extracted := make([]string, len(fields))

		var doc any
		if err := json.Unmarshal([]byte(row[0]), &doc); err != nil {
			msg := fmt.Sprintf("Error: %v", err)
			for i := range extracted {
				extracted[i] = msg
			}
		} else {
			for i, field := range fields {
				extracted[i] = formatValue(nestedField(doc, field))
			}
		}

		newRow := append(append([]string(nil), row...), extracted...)
		out.Rows = append(out.Rows, newRow)
	}

	return out, nil
}

// nestedField walks doc along a dot-separated path. Missing keys or
// non-object intermediate values yield nil rather than an error.
func nestedField(doc any, path string) any {
	value := doc
	for _, key := range strings.Split(path, ".") {
		obj, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value, ok = obj[key]
		if !ok {
			return nil
		}
	}
	return value
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		// Objects and arrays round-trip back to JSON.
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}
