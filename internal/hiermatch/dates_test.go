package hiermatch

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"rfc3339", "2024-01-01T12:00:00Z", true},
		{"rfc3339 with offset", "2024-01-01T12:00:00-06:00", true},
		{"space separated", "2024-01-01 12:00:00", true},
		{"fractional seconds", "2024-01-01 12:00:00.123", true},
		{"t separated no zone", "2024-01-01T12:00:00", true},
		{"minute precision", "2024-01-01 12:00", true},
		{"date only", "2024-01-01", true},
		{"us slash format", "01/31/2024 12:00:00", true},
		{"surrounding whitespace", "  2024-01-01 12:00:00  ", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"garbage", "not-a-date", false},
		{"partial", "2024-13-45", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseDate(tt.value)
			if ok != tt.ok {
				t.Errorf("parseDate(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b time.Time
		tol  time.Duration
		want bool
	}{
		{"equal", base, base, 0, true},
		{"exactly at tolerance", base, base.Add(3 * time.Second), 3 * time.Second, true},
		{"exactly at tolerance reversed", base.Add(3 * time.Second), base, 3 * time.Second, true},
		{"one nanosecond past", base, base.Add(3*time.Second + time.Nanosecond), 3 * time.Second, false},
		{"well past", base, base.Add(time.Hour), 3 * time.Second, false},
		{"zero tolerance different times", base, base.Add(time.Nanosecond), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withinTolerance(tt.a, tt.b, tt.tol); got != tt.want {
				t.Errorf("withinTolerance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnyWithinTolerance(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	dates := []time.Time{base.Add(10 * time.Second), base.Add(2 * time.Second)}

	if !anyWithinTolerance(dates, base, 3*time.Second) {
		t.Error("Expected a match when one date is within tolerance")
	}
	if anyWithinTolerance(dates, base, time.Second) {
		t.Error("Expected no match when every date is out of tolerance")
	}
	if anyWithinTolerance(nil, base, time.Hour) {
		t.Error("Expected no match against an empty date list")
	}
}
