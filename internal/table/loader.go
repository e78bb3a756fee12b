package table

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
)

// Loader reads a table from a file, choosing the codec by extension.
type Loader struct {
	path string
}

// NewLoader creates a new table loader
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
	}
}

// Path returns the file the loader reads from.
func (l *Loader) Path() string {
	return l.path
}

// Load reads every row of the table.
func (l *Loader) Load() (*Table, error) {
	return l.load(-1)
}

// LoadSample reads at most limit rows (useful for inspecting large files).
func (l *Loader) LoadSample(limit int) (*Table, error) {
	if limit < 0 {
		limit = 0
	}
	return l.load(limit)
}

func (l *Loader) load(limit int) (*Table, error) {
	format, err := DetectFormat(l.path)
	if err != nil {
		return nil, err
	}

	slog.Debug("Opening table", "path", l.path, "format", format)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	slog.Debug("Table file stats", "path", l.path, "size", humanize.Bytes(uint64(info.Size())))

	var t *Table
	switch format {
	case FormatCSV:
		t, err = readDelimited(file, ',', limit)
	case FormatTSV:
		t, err = readDelimited(file, '\t', limit)
	case FormatJSONL:
		t, err = readJSONL(file, limit)
	case FormatParquet:
		t, err = readParquet(file, info.Size(), limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.path, err)
	}

	slog.Debug("Finished reading table",
		"path", l.path,
		"columns", len(t.Header),
		"rows", humanize.Comma(int64(t.Len())))

	return t, nil
}
