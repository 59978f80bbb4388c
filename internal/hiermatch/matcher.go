// Package hiermatch matches rows between two tabular datasets by
// progressively widening a composite key: primary key alone, then primary
// plus phone, then primary plus phone plus date within a tolerance window.
// The wider keys are consulted only for primary-key values that are
// duplicated in either dataset; rows with unique primary keys match on
// presence alone.
package hiermatch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/recon-tools/tabmatch/internal/table"
)

// Level identifies the key shape that produced a match.
type Level string

const (
	LevelPrimaryOnly      Level = "primary_only"
	LevelPrimaryPhone     Level = "primary_phone"
	LevelPrimaryPhoneDate Level = "primary_phone_date"
	LevelPrimaryDate      Level = "primary_date"
)

// UnmatchedRow records why a reference row found no counterpart.
type UnmatchedRow struct {
	RowIndex   int
	PrimaryKey string
	Phone      string
	Date       string
	Reason     string
}

// Result partitions the reference rows. Matched holds row indices into the
// reference dataset in their original order; Levels counts matches per key
// shape.
type Result struct {
	Matched   []int
	Unmatched []UnmatchedRow
	Levels    map[Level]int
}

// UnmatchedIndices returns the reference row indices of the unmatched rows,
// in original order.
func (r *Result) UnmatchedIndices() []int {
	indices := make([]int, len(r.Unmatched))
	for i, u := range r.Unmatched {
		indices[i] = u.RowIndex
	}
	return indices
}

// phoneEntry accumulates the valid parsed dates seen for one (primary key,
// phone) pair in the comparison dataset. Rows with unparseable dates register
// the phone but contribute no date.
type phoneEntry struct {
	dates []time.Time
}

// lookupEntry is the comparison-side record for one primary-key value.
// For unambiguous keys (or ambiguous keys with no auxiliary column
// configured) the entry is presence-only and both maps stay nil.
type lookupEntry struct {
	phones map[string]*phoneEntry // set when the key is ambiguous and a phone column is configured
	dates  []time.Time            // set when the key is ambiguous and only a date column is configured
}

// Match classifies every row of reference as matched or unmatched against
// comparison, per cfg. The match is a single synchronous in-memory pass;
// unmatched rows are part of the success path, not an error.
func Match(reference, comparison *table.Dataset, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	refCols, err := resolveColumns(reference, cfg)
	if err != nil {
		return nil, err
	}
	cmpCols, err := resolveColumns(comparison, cfg)
	if err != nil {
		return nil, err
	}

	// Ambiguity is a union across both datasets: a key unique in the
	// reference but duplicated in the comparison still escalates.
	ambiguous := duplicatedKeys(reference, refCols.primary)
	for key := range duplicatedKeys(comparison, cmpCols.primary) {
		ambiguous[key] = struct{}{}
	}

	slog.Debug("Duplicate detection complete",
		"ambiguous_keys", len(ambiguous),
		"reference_rows", len(reference.Rows),
		"comparison_rows", len(comparison.Rows))

	lookup := buildLookup(comparison, cmpCols, cfg, ambiguous)

	result := &Result{Levels: make(map[Level]int)}
	for i, row := range reference.Rows {
		classify(result, i, row, refCols, cfg, ambiguous, lookup)
	}

	slog.Debug("Matching pass complete",
		"matched", len(result.Matched),
		"unmatched", len(result.Unmatched))

	return result, nil
}

type columnIndices struct {
	primary int
	phone   int // -1 when not configured
	date    int // -1 when not configured
}

func resolveColumns(ds *table.Dataset, cfg Config) (columnIndices, error) {
	cols := columnIndices{phone: -1, date: -1}

	idx, ok := ds.ColumnIndex(cfg.PrimaryKey)
	if !ok {
		return cols, &table.MissingColumnError{Column: cfg.PrimaryKey, Dataset: ds.Name, Available: ds.Columns}
	}
	cols.primary = idx

	if cfg.hasPhone() {
		idx, ok := ds.ColumnIndex(cfg.PhoneKey)
		if !ok {
			return cols, &table.MissingColumnError{Column: cfg.PhoneKey, Dataset: ds.Name, Available: ds.Columns}
		}
		cols.phone = idx
	}
	if cfg.hasDate() {
		idx, ok := ds.ColumnIndex(cfg.DateKey)
		if !ok {
			return cols, &table.MissingColumnError{Column: cfg.DateKey, Dataset: ds.Name, Available: ds.Columns}
		}
		cols.date = idx
	}
	return cols, nil
}

// duplicatedKeys returns the primary-key values occurring more than once.
func duplicatedKeys(ds *table.Dataset, primary int) map[string]struct{} {
	counts := make(map[string]int, len(ds.Rows))
	for _, row := range ds.Rows {
		counts[row[primary]]++
	}
	dup := make(map[string]struct{})
	for key, n := range counts {
		if n > 1 {
			dup[key] = struct{}{}
		}
	}
	return dup
}

func buildLookup(comparison *table.Dataset, cols columnIndices, cfg Config, ambiguous map[string]struct{}) map[string]*lookupEntry {
	lookup := make(map[string]*lookupEntry, len(comparison.Rows))

	for _, row := range comparison.Rows {
		key := row[cols.primary]

		entry := lookup[key]
		if entry == nil {
			entry = &lookupEntry{}
			lookup[key] = entry
		}

		_, isAmbiguous := ambiguous[key]
		if !isAmbiguous || (!cfg.hasPhone() && !cfg.hasDate()) {
			// Presence flag only. Ambiguous keys without auxiliary columns
			// degrade to presence matching: no finer key is available.
			continue
		}

		switch {
		case !cfg.hasPhone():
			if date, ok := parseDate(row[cols.date]); ok {
				entry.dates = append(entry.dates, date)
			}
		default:
			phone := row[cols.phone]
			if entry.phones == nil {
				entry.phones = make(map[string]*phoneEntry)
			}
			pe := entry.phones[phone]
			if pe == nil {
				pe = &phoneEntry{}
				entry.phones[phone] = pe
			}
			if cfg.hasDate() {
				if date, ok := parseDate(row[cols.date]); ok {
					pe.dates = append(pe.dates, date)
				}
			}
		}
	}

	return lookup
}

func classify(result *Result, rowIndex int, row []string, cols columnIndices, cfg Config, ambiguous map[string]struct{}, lookup map[string]*lookupEntry) {
	key := row[cols.primary]

	entry, found := lookup[key]
	if !found {
		result.addUnmatched(rowIndex, row, cols, fmt.Sprintf("primary key %q not found in comparison dataset", key))
		return
	}

	_, isAmbiguous := ambiguous[key]
	if !isAmbiguous || (!cfg.hasPhone() && !cfg.hasDate()) {
		result.addMatched(rowIndex, LevelPrimaryOnly)
		return
	}

	switch {
	case cfg.hasPhone() && cfg.hasDate():
		classifyPhoneDate(result, rowIndex, row, cols, cfg, entry, key)
	case cfg.hasPhone():
		phone := row[cols.phone]
		if _, ok := entry.phones[phone]; ok {
			result.addMatched(rowIndex, LevelPrimaryPhone)
		} else {
			result.addUnmatched(rowIndex, row, cols,
				fmt.Sprintf("primary key %q is duplicated, phone %q not found in comparison dataset for this primary key", key, phone))
		}
	default:
		date, ok := parseDate(row[cols.date])
		if !ok {
			result.addUnmatched(rowIndex, row, cols,
				fmt.Sprintf("primary key %q is duplicated, invalid date in reference row", key))
			return
		}
		if anyWithinTolerance(entry.dates, date, cfg.Tolerance) {
			result.addMatched(rowIndex, LevelPrimaryDate)
		} else {
			result.addUnmatched(rowIndex, row, cols,
				fmt.Sprintf("primary key %q is duplicated, date doesn't match within ±%v", key, cfg.Tolerance))
		}
	}
}

// classifyPhoneDate handles the full three-tier key. Phone presence is
// required first. A phone entry with no recorded valid dates matches at
// phone level: the comparison side lacking date data degrades the match
// rather than blocking it, while a reference-side unparseable date is a
// hard miss once dates exist to compare against. The asymmetry is
// deliberate and matches the behavior the reconciliation depends on.
func classifyPhoneDate(result *Result, rowIndex int, row []string, cols columnIndices, cfg Config, entry *lookupEntry, key string) {
	phone := row[cols.phone]

	pe, ok := entry.phones[phone]
	if !ok {
		result.addUnmatched(rowIndex, row, cols,
			fmt.Sprintf("primary key %q is duplicated, phone %q not found in comparison dataset", key, phone))
		return
	}

	if len(pe.dates) == 0 {
		result.addMatched(rowIndex, LevelPrimaryPhone)
		return
	}

	date, ok := parseDate(row[cols.date])
	if !ok {
		result.addUnmatched(rowIndex, row, cols,
			fmt.Sprintf("primary key %q + phone %q found, but invalid date in reference row", key, phone))
		return
	}

	if anyWithinTolerance(pe.dates, date, cfg.Tolerance) {
		result.addMatched(rowIndex, LevelPrimaryPhoneDate)
	} else {
		result.addUnmatched(rowIndex, row, cols,
			fmt.Sprintf("primary key %q + phone %q found, but date doesn't match within ±%v", key, phone, cfg.Tolerance))
	}
}

func (r *Result) addMatched(rowIndex int, level Level) {
	r.Matched = append(r.Matched, rowIndex)
	r.Levels[level]++
}

func (r *Result) addUnmatched(rowIndex int, row []string, cols columnIndices, reason string) {
	u := UnmatchedRow{
		RowIndex:   rowIndex,
		PrimaryKey: row[cols.primary],
		Reason:     reason,
	}
	if cols.phone >= 0 {
		u.Phone = row[cols.phone]
	}
	if cols.date >= 0 {
		u.Date = row[cols.date]
	}
	r.Unmatched = append(r.Unmatched, u)
}
