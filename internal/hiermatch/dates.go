package hiermatch

import (
	"strings"
	"time"
)

// Layouts tried in order when parsing a date cell. The exports from the
// scoring API and the reconciliation spreadsheets use RFC 3339 or the plain
// "YYYY-MM-DD HH:MM:SS" form, with or without fractional seconds.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// parseDate normalizes a date cell to a time.Time. Empty or unparseable
// values report ok=false and are never treated as matching anything.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// withinTolerance reports whether two dates are at most tol apart. The
// interval is closed: a difference of exactly tol matches.
func withinTolerance(a, b time.Time, tol time.Duration) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol
}

// anyWithinTolerance reports whether at least one of dates is within tol of t.
func anyWithinTolerance(dates []time.Time, t time.Time, tol time.Duration) bool {
	for _, d := range dates {
		if withinTolerance(t, d, tol) {
			return true
		}
	}
	return false
}
