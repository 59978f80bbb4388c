package table

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestColumnIndex(t *testing.T) {
	ds := &Dataset{
		Name:    "test.csv",
		Columns: []string{"ID", " Phone Number ", "created_at"},
	}

	tests := []struct {
		name string
		key  string
		want int
		ok   bool
	}{
		{"exact", "ID", 0, true},
		{"case insensitive", "id", 0, true},
		{"header whitespace ignored", "phone number", 1, true},
		{"key whitespace ignored", "  created_at ", 2, true},
		{"numeric index", "2", 2, true},
		{"numeric out of range", "3", -1, false},
		{"negative index", "-1", -1, false},
		{"unknown", "nope", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ds.ColumnIndex(tt.key)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ColumnIndex(%q) = (%d, %v), want (%d, %v)", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRequireColumns(t *testing.T) {
	ds := &Dataset{Name: "input.csv", Columns: []string{"id", "phone"}}

	if err := ds.RequireColumns("id", "", "phone"); err != nil {
		t.Errorf("Expected empty names to be skipped, got %v", err)
	}

	err := ds.RequireColumns("id", "missing")
	if err == nil {
		t.Fatal("Expected error for missing column")
	}

	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingColumnError, got %T", err)
	}
	if missing.Column != "missing" || missing.Dataset != "input.csv" {
		t.Errorf("Unexpected error detail: %+v", missing)
	}
	if !strings.Contains(err.Error(), "available columns: id, phone") {
		t.Errorf("Error should list available columns, got: %v", err)
	}
}

func TestSubset(t *testing.T) {
	ds := &Dataset{
		Name:    "test.csv",
		Columns: []string{"id"},
		Rows:    [][]string{{"a"}, {"b"}, {"c"}, {"d"}},
	}

	sub := ds.Subset([]int{3, 1})
	want := [][]string{{"d"}, {"b"}}
	if !reflect.DeepEqual(sub.Rows, want) {
		t.Errorf("Subset rows = %v, want %v", sub.Rows, want)
	}
	if !reflect.DeepEqual(sub.Columns, ds.Columns) {
		t.Errorf("Subset should share the schema")
	}

	empty := ds.Subset(nil)
	if len(empty.Rows) != 0 {
		t.Errorf("Expected empty subset, got %v", empty.Rows)
	}
}
