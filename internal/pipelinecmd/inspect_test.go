package pipelinecmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFinal(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "final.csv")
	data := `Series_Title,Released_Year,Runtime,IMDB_Rating,Processed_Title,Wiki_Plot,Poster_Link_Large
Inception,2010,148 min,8.8,inception,"A thief
who steals secrets",p_V1_.jpg
Zzyzx,2006,61 min,,zzyzx,,z.png
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write table: %v", err)
	}
	return path
}

func TestExecuteInspectTable(t *testing.T) {
	path := writeFinal(t)

	var out bytes.Buffer
	if err := executeInspect(context.Background(), &out, path, 10, []string{"Series_Title", "Wiki_Plot"}, 12, false); err != nil {
		t.Fatalf("executeInspect failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Loaded 2 rows") {
		t.Errorf("Expected row count, got %s", text)
	}
	if !strings.Contains(text, "A thief w...") {
		t.Errorf("Expected truncated single-line plot, got %s", text)
	}
	if strings.Contains(text, "Released_Year") {
		t.Errorf("Expected only selected columns, got %s", text)
	}
}

func TestExecuteInspectUnknownColumn(t *testing.T) {
	path := writeFinal(t)

	var out bytes.Buffer
	if err := executeInspect(context.Background(), &out, path, 0, []string{"Nope"}, 40, false); err == nil {
		t.Error("Expected error for unknown column, got nil")
	}
}

func TestExecuteInspectDetails(t *testing.T) {
	path := writeFinal(t)

	var out bytes.Buffer
	if err := executeInspect(context.Background(), &out, path, 0, nil, 40, true); err != nil {
		t.Fatalf("executeInspect failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"MOVIE 1/2",
		"Runtime:        2 hours, 28 minutes",
		"Rating:         4.4 / 5",
		"Poster:         p_V1_.jpg",
		"Runtime:        1 hour, 1 minute",
		"Plot:           (no match)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{input: "short", maxLen: 10, expected: "short"},
		{input: "exactly ten", maxLen: 11, expected: "exactly ten"},
		{input: "a longer sentence", maxLen: 10, expected: "a longe..."},
		{input: "Amélie Poulain", maxLen: 8, expected: "Améli..."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
