package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

// columnsMetadataKey stores the header order in the file's key/value
// metadata. Parquet groups sort their fields by name.
const columnsMetadataKey = "moviedata.columns"

const parquetBatchSize = 128

func readParquet(r io.ReaderAt, size int64, limit int) (*Table, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	fields := pf.Schema().Fields()
	leaf := make(map[string]int, len(fields))
	names := make([]string, len(fields))
	for i, field := range fields {
		if !field.Leaf() || field.Repeated() {
			return nil, fmt.Errorf("column %q: nested and repeated columns are not supported", field.Name())
		}
		leaf[field.Name()] = i
		names[i] = field.Name()
	}

	header := names
	if stored, ok := pf.Lookup(columnsMetadataKey); ok {
		var order []string
		if err := json.Unmarshal([]byte(stored), &order); err == nil && sameColumns(order, leaf) {
			header = order
		}
	}

	// position in header of each leaf column
	position := make([]int, len(fields))
	for i, name := range header {
		position[leaf[name]] = i
	}

	t := &Table{Header: header}

	reader := parquet.NewReader(pf)
	defer reader.Close()

	rows := make([]parquet.Row, parquetBatchSize)
	batchNum := 0
	for limit < 0 || len(t.Rows) < limit {
		n, err := reader.ReadRows(rows)
		if n > 0 {
			batchNum++
			if limit >= 0 && n > limit-len(t.Rows) {
				n = limit - len(t.Rows)
			}
			for _, row := range rows[:n] {
				cells := make([]string, len(header))
				for _, v := range row {
					cells[position[v.Column()]] = valueText(v)
				}
				t.Rows = append(t.Rows, cells)
			}
			slog.Debug("Read batch from Parquet", "batch", batchNum, "rows_in_batch", n, "total_rows_read", len(t.Rows))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return t, nil
}

func sameColumns(order []string, leaf map[string]int) bool {
	if len(order) != len(leaf) {
		return false
	}
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		if _, ok := leaf[name]; !ok || seen[name] {
			return false
		}
		seen[name] = true
	}
	return true
}

func valueText(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}

	switch v.Kind() {
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	default:
		return v.String()
	}
}

// writeParquet stores every column as a required UTF-8 string.
func writeParquet(w io.Writer, t *Table) error {
	group := make(parquet.Group, len(t.Header))
	for _, name := range t.Header {
		if _, dup := group[name]; dup {
			return fmt.Errorf("duplicate column %q", name)
		}
		group[name] = parquet.String()
	}
	schema := parquet.NewSchema("movies", group)

	order, err := json.Marshal(t.Header)
	if err != nil {
		return err
	}

	leaf := make(map[string]int, len(t.Header))
	for i, field := range schema.Fields() {
		leaf[field.Name()] = i
	}

	pw := parquet.NewWriter(w, schema, parquet.KeyValueMetadata(columnsMetadataKey, string(order)))

	batch := make([]parquet.Row, 0, parquetBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := pw.WriteRows(batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	for _, cells := range t.Rows {
		row := make(parquet.Row, len(t.Header))
		for i, name := range t.Header {
			var value string
			if i < len(cells) {
				value = cells[i]
			}
			col := leaf[name]
			row[col] = parquet.ValueOf(value).Level(0, 0, col)
		}
		batch = append(batch, row)
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	return pw.Close()
}
