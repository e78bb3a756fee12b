// Package table holds the in-memory tabular data the pipelines read and
// write: an ordered list of rows sharing one header, with every cell kept
// as a string.
package table

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnsupportedFormat is returned for file extensions with no codec.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Table is an ordered sequence of records sharing a fixed header.
type Table struct {
	Header []string
	Rows   [][]string
}

// New creates a table. Rows are used as given.
func New(header []string, rows [][]string) *Table {
	return &Table{Header: header, Rows: rows}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column. When a header repeats
// a name the first occurrence wins.
func (t *Table) Index(name string) (int, bool) {
	i := slices.Index(t.Header, name)
	return i, i >= 0
}

// Require checks that every named column is present.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if _, ok := t.Index(name); !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return nil
}

// Value returns the cell of row in the named column, or "" when either the
// column or the cell is missing.
func (t *Table) Value(row []string, name string) string {
	i, ok := t.Index(name)
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Column returns a copy of every cell in the named column.
func (t *Table) Column(name string) ([]string, error) {
	i, ok := t.Index(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	values := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			values[r] = row[i]
		}
	}
	return values, nil
}

// WithColumn returns a new table with the named column set to fn(row) for
// every row. A new column is appended; an existing one is overwritten in
// the copy. The receiver is left untouched.
func (t *Table) WithColumn(name string, fn func(row []string) string) *Table {
	header := slices.Clone(t.Header)
	col, ok := t.Index(name)
	if !ok {
		col = len(header)
		header = append(header, name)
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]string, len(header))
		copy(out, row)
		out[col] = fn(row)
		rows[r] = out
	}

	return &Table{Header: header, Rows: rows}
}

// Select returns a new table with only the named columns, in the order
// given.
func (t *Table) Select(names ...string) (*Table, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		col, ok := t.Index(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		idx[i] = col
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]string, len(idx))
		for i, col := range idx {
			if col < len(row) {
				out[i] = row[col]
			}
		}
		rows[r] = out
	}

	return &Table{Header: slices.Clone(names), Rows: rows}, nil
}
