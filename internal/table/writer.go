package table

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// Writer writes a table to a file, choosing the codec by extension.
type Writer struct {
	path string
}

// NewWriter creates a new table writer
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the file the writer replaces.
func (w *Writer) Path() string {
	return w.path
}

// Write encodes t into a temporary file next to the destination and
// renames it into place, so a failed run never leaves a truncated table.
func (w *Writer) Write(t *Table) error {
	format, err := DetectFormat(w.path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	switch format {
	case FormatCSV:
		err = writeDelimited(tmp, ',', t)
	case FormatTSV:
		err = writeDelimited(tmp, '\t', t)
	case FormatJSONL:
		err = writeJSONL(tmp, t)
	case FormatParquet:
		err = writeParquet(tmp, t)
	}
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode %s: %w", w.path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpPath, w.path); err != nil {
		return fmt.Errorf("failed to move table into place: %w", err)
	}

	slog.Debug("Wrote table",
		"path", w.path,
		"format", format,
		"columns", len(t.Header),
		"rows", humanize.Comma(int64(t.Len())))

	return nil
}
