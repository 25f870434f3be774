package format

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/andys/etl/table"
)

const maxLineSize = 16 * 1024 * 1024

// dateLayouts are tried in order when converting date-like string columns
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// JSONLinesReader reads newline-delimited JSON, one object per line
type JSONLinesReader struct{}

func (JSONLinesReader) Format() Format { return JSONLines }

func (JSONLinesReader) Extension() string { return ".json" }

// Read parses the file at path. Columns are the union of the record keys in
// order of first appearance; a key absent from a record is null.
func (JSONLinesReader) Read(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var names []string
	columns := make(map[string]int)
	var records []map[string]any

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		keys, record, err := decodeObject(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		for _, key := range keys {
			if _, ok := columns[key]; !ok {
				columns[key] = len(names)
				names = append(names, key)
			}
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	if len(records) == 0 {
		return nil, errNoColumns
	}

	schema := table.Schema{Columns: make([]table.Column, len(names))}
	values := make([][]any, len(records))
	for i := range values {
		values[i] = make([]any, len(names))
	}

	column := make([]any, len(records))
	for col, name := range names {
		for i, record := range records {
			column[i] = record[name]
		}
		typ := unifyColumn(name, column)
		schema.Columns[col] = table.Column{Name: name, Type: typ}
		for i, v := range column {
			values[i][col] = v
		}
	}

	return table.New(schema, values)
}

// decodeObject decodes one JSON object, returning its keys in document order
func decodeObject(line []byte) ([]string, map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var keys []string
	record := make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		value, err := decodeValue(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("key %q: %w", key, err)
		}

		if _, dup := record[key]; !dup {
			keys = append(keys, key)
		}
		record[key] = value
	}

	// Closing brace, then nothing else on the line
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, nil, errors.New("trailing data after JSON object")
	}

	return keys, record, nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	switch raw[0] {
	case 'n':
		return nil, nil
	case 't', 'f':
		var b bool
		err := json.Unmarshal(raw, &b)
		return b, err
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return buf.String(), nil
	default:
		num := json.Number(raw)
		if n, err := num.Int64(); err == nil {
			return n, nil
		}
		return num.Float64()
	}
}

// unifyColumn settles the type of a decoded column, converting values in
// place where the column has to be widened.
func unifyColumn(name string, values []any) table.ColumnType {
	var ints, floats, bools, strs int
	for _, v := range values {
		switch v.(type) {
		case int64:
			ints++
		case float64:
			floats++
		case bool:
			bools++
		case string:
			strs++
		}
	}

	switch {
	case ints+floats+bools+strs == 0:
		return table.Unknown
	case floats+ints > 0 && bools+strs == 0:
		if floats == 0 && !hasNull(values) {
			return table.Int
		}
		for i, v := range values {
			if n, ok := v.(int64); ok {
				values[i] = float64(n)
			}
		}
		return table.Float
	case bools > 0 && ints+floats+strs == 0:
		return table.Bool
	case strs > 0 && ints+floats+bools == 0:
		if isDateLikeColumn(name) && parseDates(values) {
			return table.Datetime
		}
		return table.String
	default:
		// Mixed kinds are kept as their text form
		for i, v := range values {
			if v != nil {
				values[i] = table.FormatValue(v)
			}
		}
		return table.String
	}
}

func isDateLikeColumn(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, "_at") ||
		strings.HasSuffix(lower, "_time") ||
		strings.HasPrefix(lower, "timestamp") ||
		lower == "modified" ||
		lower == "date" ||
		lower == "datetime"
}

// parseDates converts every string in values to a time. It leaves values
// untouched and reports false if any string fails to parse.
func parseDates(values []any) bool {
	parsed := make([]any, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		t, ok := parseDate(s)
		if !ok {
			return false
		}
		parsed[i] = t
	}
	copy(values, parsed)
	return true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
