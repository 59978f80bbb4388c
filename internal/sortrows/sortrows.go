// Package sortrows reorders one dataset to follow the key order of another,
// so two exports of the same population can be compared side by side.
package sortrows

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/recon-tools/tabmatch/internal/table"
)

// Reorder returns a copy of target whose rows follow the order in which
// their key values appear in reference. A duplicated reference key keeps its
// last position. Target rows whose key is absent from the reference are
// placed at the end in their original relative order.
func Reorder(reference, target *table.Dataset, keyColumn string) (*table.Dataset, error) {
	refIdx, err := resolveKey(reference, keyColumn)
	if err != nil {
		return nil, err
	}
	tgtIdx, err := resolveKey(target, keyColumn)
	if err != nil {
		return nil, err
	}

	order := make(map[string]int, len(reference.Rows))
	for i, row := range reference.Rows {
		order[row[refIdx]] = i
	}
	if len(order) < len(reference.Rows) {
		slog.Warn("Duplicate keys in reference file; last occurrence defines the position",
			"duplicates", len(reference.Rows)-len(order))
	}

	positions := make([]int, len(target.Rows))
	missing := 0
	for i, row := range target.Rows {
		if pos, ok := order[row[tgtIdx]]; ok {
			positions[i] = pos
		} else {
			// Past every reference position, keyed by original index so the
			// relative order among missing rows is preserved.
			positions[i] = len(reference.Rows) + i
			missing++
		}
	}
	if missing > 0 {
		slog.Warn("Keys not found in reference file; rows placed at the end", "rows", missing)
	}

	indices := make([]int, len(target.Rows))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return positions[indices[a]] < positions[indices[b]]
	})

	return target.Subset(indices), nil
}

// resolveKey resolves the key column, defaulting to the first column when
// none is given.
func resolveKey(ds *table.Dataset, keyColumn string) (int, error) {
	if keyColumn == "" {
		if len(ds.Columns) == 0 {
			return -1, errors.New(ds.Name + " has no columns")
		}
		return 0, nil
	}
	idx, ok := ds.ColumnIndex(keyColumn)
	if !ok {
		return -1, &table.MissingColumnError{Column: keyColumn, Dataset: ds.Name, Available: ds.Columns}
	}
	return idx, nil
}
