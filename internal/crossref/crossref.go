// Package crossref filters a reference dataset down to the rows whose
// composite key also occurs in a comparison dataset.
package crossref

import (
	"log/slog"

	"github.com/recon-tools/tabmatch/internal/table"
)

// keySep joins key parts into a single map key. The unit separator cannot
// appear in a parsed cell, so joined tuples are unambiguous.
const keySep = "\x1f"

// Filter returns the indices of reference rows whose key tuple (the values
// of keyColumns, in order) exists in comparison, preserving reference order.
func Filter(reference, comparison *table.Dataset, keyColumns []string) ([]int, error) {
	refIdx, err := resolveAll(reference, keyColumns)
	if err != nil {
		return nil, err
	}
	cmpIdx, err := resolveAll(comparison, keyColumns)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(comparison.Rows))
	for _, row := range comparison.Rows {
		seen[joinKey(row, cmpIdx)] = struct{}{}
	}

	var matched []int
	for i, row := range reference.Rows {
		if _, ok := seen[joinKey(row, refIdx)]; ok {
			matched = append(matched, i)
		}
	}

	slog.Debug("Cross-reference complete",
		"keys", keyColumns,
		"reference_rows", len(reference.Rows),
		"matched", len(matched))

	return matched, nil
}

func resolveAll(ds *table.Dataset, keys []string) ([]int, error) {
	indices := make([]int, len(keys))
	for i, key := range keys {
		idx, ok := ds.ColumnIndex(key)
		if !ok {
			return nil, &table.MissingColumnError{Column: key, Dataset: ds.Name, Available: ds.Columns}
		}
		indices[i] = idx
	}
	return indices, nil
}

func joinKey(row []string, indices []int) string {
	switch len(indices) {
	case 0:
		return ""
	case 1:
		return row[indices[0]]
	}
	key := row[indices[0]]
	for _, idx := range indices[1:] {
		key += keySep + row[idx]
	}
	return key
}
