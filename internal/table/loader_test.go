package table

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewLoader(t *testing.T) {
	path := "./test.csv"
	loader := NewLoader(path)

	if loader.path != path {
		t.Errorf("Expected path %s, got %s", path, loader.path)
	}
}

func TestLoadCSV(t *testing.T) {
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "catalog.csv")

	testData := "\ufeffSeries_Title,Released_Year,Overview\n" +
		"Inception,2010,\"A thief who steals, corporate secrets\"\n" +
		"\"The Godfather: Part II\",1974,\"Line one\nline two\"\n"
	if err := os.WriteFile(csvPath, []byte(testData), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tbl, err := NewLoader(csvPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expectedHeader := []string{"Series_Title", "Released_Year", "Overview"}
	if !reflect.DeepEqual(tbl.Header, expectedHeader) {
		t.Errorf("Expected header %v, got %v", expectedHeader, tbl.Header)
	}

	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tbl.Len())
	}

	if tbl.Rows[0][2] != "A thief who steals, corporate secrets" {
		t.Errorf("Unexpected quoted field: %q", tbl.Rows[0][2])
	}

	if tbl.Rows[1][2] != "Line one\nline two" {
		t.Errorf("Unexpected multi-line field: %q", tbl.Rows[1][2])
	}
}

func TestLoadCSVRaggedRow(t *testing.T) {
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "bad.csv")

	if err := os.WriteFile(csvPath, []byte("a,b\n1,2\n3\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := NewLoader(csvPath).Load(); err == nil {
		t.Error("Expected error for ragged row, got nil")
	}
}

func TestLoadEmptyCSV(t *testing.T) {
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "empty.csv")

	if err := os.WriteFile(csvPath, nil, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := NewLoader(csvPath).Load(); err == nil {
		t.Error("Expected error for empty file, got nil")
	}
}

func TestLoadSample(t *testing.T) {
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "plots.csv")

	testData := "Title,Plot\nA,one\nB,two\nC,three\n"
	if err := os.WriteFile(csvPath, []byte(testData), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tbl, err := NewLoader(csvPath).LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}

	if tbl.Len() != 2 {
		t.Errorf("Expected 2 rows, got %d", tbl.Len())
	}

	if tbl.Rows[1][0] != "B" {
		t.Errorf("Expected second row B, got %s", tbl.Rows[1][0])
	}
}

func TestLoadJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "plots.jsonl")

	testData := `{"Title":"Inception","Plot":"A thief...","Release Year":2010}

{"Plot":"Neo wakes up","Title":"The Matrix","Director":null,"Genre":"Sci-Fi"}
`
	if err := os.WriteFile(jsonlPath, []byte(testData), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tbl, err := NewLoader(jsonlPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expectedHeader := []string{"Title", "Plot", "Release Year", "Director", "Genre"}
	if !reflect.DeepEqual(tbl.Header, expectedHeader) {
		t.Errorf("Expected header %v, got %v", expectedHeader, tbl.Header)
	}

	expectedRows := [][]string{
		{"Inception", "A thief...", "2010", "", ""},
		{"The Matrix", "Neo wakes up", "", "", "Sci-Fi"},
	}
	if !reflect.DeepEqual(tbl.Rows, expectedRows) {
		t.Errorf("Expected rows %v, got %v", expectedRows, tbl.Rows)
	}
}

func TestLoadJSONLMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "bad.jsonl")

	if err := os.WriteFile(jsonlPath, []byte("{\"Title\":\"ok\"}\n[1,2]\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := NewLoader(jsonlPath).Load(); err == nil {
		t.Error("Expected error for non-object line, got nil")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	loader := NewLoader("test.txt")

	_, err := loader.Load()
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}

	_, err = loader.LoadSample(10)
	if err == nil {
		t.Error("Expected error for unsupported format in LoadSample, got nil")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	loader := NewLoader("/nonexistent/path/file.csv")

	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
