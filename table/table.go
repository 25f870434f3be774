// Package table holds the in-memory tabular model shared by the readers,
// the transformer and the loader.
package table

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoTables is returned when there is nothing to concatenate
var ErrNoTables = errors.New("no tables to concatenate")

// Row is one record of a table. Values are aligned with the table schema and
// nil is a null. Index is the row label carried through filtering.
type Row struct {
	Index  int
	Values []any
}

// Table is an ordered sequence of rows sharing one schema
type Table struct {
	Schema Schema
	Rows   []Row
}

// New creates a table from a schema and row values, indexing rows from zero
func New(schema Schema, values [][]any) (*Table, error) {
	t := &Table{
		Schema: schema,
		Rows:   make([]Row, 0, len(values)),
	}
	for i, vals := range values {
		if len(vals) != len(schema.Columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(vals), len(schema.Columns))
		}
		t.Rows = append(t.Rows, Row{Index: i, Values: vals})
	}
	return t, nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the values of the named column in row order
func (t *Table) Column(name string) ([]any, bool) {
	idx := t.Schema.Index(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Values[idx]
	}
	return values, true
}

// Filter returns a new table holding the rows for which keep returns true.
// Row order and indexes are preserved.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{
		Schema: t.Schema,
		Rows:   make([]Row, 0),
	}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Concat stacks the rows of tables in order and re-indexes them from zero.
// The schemas must be compatible; see Schema.Merge.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	schema := tables[0].Schema
	total := tables[0].Len()
	for i, t := range tables[1:] {
		merged, err := schema.Merge(t.Schema)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i+1, err)
		}
		schema = merged
		total += t.Len()
	}

	out := &Table{
		Schema: schema,
		Rows:   make([]Row, 0, total),
	}
	for _, t := range tables {
		// Map this table's columns onto the merged order
		positions := make([]int, len(schema.Columns))
		for i, col := range schema.Columns {
			positions[i] = t.Schema.Index(col.Name)
		}

		for _, row := range t.Rows {
			values := make([]any, len(schema.Columns))
			for i, pos := range positions {
				values[i] = convert(row.Values[pos], schema.Columns[i].Type)
			}
			out.Rows = append(out.Rows, Row{Index: len(out.Rows), Values: values})
		}
	}

	return out, nil
}

// convert widens v to typ where the schemas were merged
func convert(v any, typ ColumnType) any {
	if typ == Float {
		if i, ok := v.(int64); ok {
			return float64(i)
		}
	}
	return v
}

// FormatValue renders a single value the way it is written to CSV output
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return formatFloat(val)
	case bool:
		if val {
			return "True"
		}
		return "False"
	case string:
		return val
	case time.Time:
		if val.Nanosecond() != 0 {
			return val.Format("2006-01-02 15:04:05.999999999")
		}
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", val)
	}
}
