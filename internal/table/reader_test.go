package table

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.csv")
	writeFile(t, path, "id,phone,date\n1,555,2024-01-01\n2,999\n")

	ds, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	if ds.Name != "input.csv" {
		t.Errorf("Name = %q, want input.csv", ds.Name)
	}
	if !reflect.DeepEqual(ds.Columns, []string{"id", "phone", "date"}) {
		t.Errorf("Columns = %v", ds.Columns)
	}
	// The ragged second row is padded to the header width.
	want := [][]string{{"1", "555", "2024-01-01"}, {"2", "999", ""}}
	if !reflect.DeepEqual(ds.Rows, want) {
		t.Errorf("Rows = %v, want %v", ds.Rows, want)
	}
}

func TestReadTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.tsv")
	writeFile(t, path, "id\tname\n1\tvalue with, comma\n")

	ds, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got := ds.Rows[0][1]; got != "value with, comma" {
		t.Errorf("Cell = %q", got)
	}
}

func TestReadEmptyCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	writeFile(t, path, "")

	ds, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(ds.Columns) != 0 || len(ds.Rows) != 0 {
		t.Errorf("Expected empty dataset, got %+v", ds)
	}
}

func TestReadMissingFile(t *testing.T) {
	for _, name := range []string{"nope.csv", "nope.xlsx", "nope.parquet"} {
		_, err := Read(filepath.Join(t.TempDir(), name))
		if err == nil {
			t.Errorf("Read(%s): expected error for missing file", name)
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Read(%s): expected fs.ErrNotExist, got %v", name, err)
		}
	}
}

func TestReadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	writeFile(t, path, "whatever")

	_, err := Read(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := &Dataset{
		Name:    "data.csv",
		Columns: []string{"id", "note"},
		Rows: [][]string{
			{"1", "plain"},
			{"2", "comma, inside"},
			{"3", "quote \" inside"},
		},
	}

	path := filepath.Join(dir, "out.csv")
	if err := Write(ds, path); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	loaded, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !reflect.DeepEqual(loaded.Columns, ds.Columns) {
		t.Errorf("Columns = %v, want %v", loaded.Columns, ds.Columns)
	}
	if !reflect.DeepEqual(loaded.Rows, ds.Rows) {
		t.Errorf("Rows = %v, want %v", loaded.Rows, ds.Rows)
	}
}

func TestExcelRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := &Dataset{
		Name:    "data.xlsx",
		Columns: []string{"id", "phone", "date"},
		Rows: [][]string{
			{"1", "555", "2024-01-01 12:00:00"},
			{"2", "999", "2024-01-02 12:00:00"},
		},
	}

	path := filepath.Join(dir, "out.xlsx")
	if err := Write(ds, path); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	loaded, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !reflect.DeepEqual(loaded.Columns, ds.Columns) {
		t.Errorf("Columns = %v, want %v", loaded.Columns, ds.Columns)
	}
	if !reflect.DeepEqual(loaded.Rows, ds.Rows) {
		t.Errorf("Rows = %v, want %v", loaded.Rows, ds.Rows)
	}
}

func TestWriteCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.csv")

	ds := &Dataset{Columns: []string{"id"}, Rows: [][]string{{"1"}}}
	if err := Write(ds, path); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected output file to exist: %v", err)
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	ds := &Dataset{Columns: []string{"id"}}

	err := Write(ds, filepath.Join(t.TempDir(), "out.parquet"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat for parquet output, got %v", err)
	}
}
