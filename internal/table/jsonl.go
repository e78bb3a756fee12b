package table

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Increase buffer size for long plot texts
const maxLineCapacity = 10 * 1024 * 1024 // 10MB per line

// readJSONL reads one object per line. The header follows the key order of
// the first object, with keys first seen later appended as they appear.
func readJSONL(r io.Reader, limit int) (*Table, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxLineCapacity)

	t := &Table{}
	columns := make(map[string]int)
	var objects []map[string]string

	lineNum := 0
	for scanner.Scan() && (limit < 0 || len(objects) < limit) {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())

		if len(line) == 0 {
			continue
		}

		keys, values, err := decodeObject(line)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		for _, key := range keys {
			if _, ok := columns[key]; !ok {
				columns[key] = len(t.Header)
				t.Header = append(t.Header, key)
			}
		}
		objects = append(objects, values)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading table: %w", err)
	}

	t.Rows = make([][]string, len(objects))
	for i, values := range objects {
		row := make([]string, len(t.Header))
		for key, value := range values {
			row[columns[key]] = value
		}
		t.Rows[i] = row
	}

	return t, nil
}

func decodeObject(line []byte) ([]string, map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.New("expected a JSON object")
	}

	var keys []string
	values := make(map[string]string)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}

		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = cellText(raw)
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	return keys, values, nil
}

// cellText unwraps JSON strings and keeps every other value as its JSON
// text. null becomes "".
func cellText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}

func writeJSONL(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)

	names := make([][]byte, len(t.Header))
	for i, name := range t.Header {
		encoded, err := marshalString(name)
		if err != nil {
			return err
		}
		names[i] = encoded
	}

	for _, row := range t.Rows {
		bw.WriteByte('{')
		for i := range t.Header {
			if i > 0 {
				bw.WriteByte(',')
			}
			var value string
			if i < len(row) {
				value = row[i]
			}
			encoded, err := marshalString(value)
			if err != nil {
				return err
			}
			bw.Write(names[i])
			bw.WriteByte(':')
			bw.Write(encoded)
		}
		bw.WriteString("}\n")
	}

	return bw.Flush()
}

// marshalString encodes s as a JSON string without HTML escaping, so poster
// URLs keep their ampersands readable.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
