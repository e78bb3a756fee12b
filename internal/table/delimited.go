package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

func readDelimited(r io.Reader, comma rune, limit int) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	// Every row must have as many fields as the header.
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty table: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	t := &Table{Header: header}
	for limit < 0 || len(t.Rows) < limit {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse row %d: %w", len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, record)
	}

	return t, nil
}

func writeDelimited(w io.Writer, comma rune, t *Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
