package table

import (
	"errors"
	"fmt"
)

// ErrSchemaMismatch is returned when tables with incompatible columns are combined
var ErrSchemaMismatch = errors.New("incompatible table schemas")

// ColumnType is the inferred type of a column
type ColumnType int

const (
	Unknown ColumnType = iota // every value is null
	Int
	Float
	Bool
	String
	Datetime
)

func (t ColumnType) String() string {
	switch t {
	case Int:
		return "int64"
	case Float:
		return "float64"
	case Bool:
		return "bool"
	case String:
		return "object"
	case Datetime:
		return "datetime64"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether values of this type can be averaged
func (t ColumnType) IsNumeric() bool {
	return t == Int || t == Float
}

// Schema represents the ordered column set of a table
type Schema struct {
	Columns []Column
}

// Column represents a single named column
type Column struct {
	Name string
	Type ColumnType
}

// Index returns the position of the named column, or -1
func (s Schema) Index(name string) int {
	for i, col := range s.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the column names in order
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// combineTypes widens a and b to a common type
func combineTypes(a, b ColumnType) (ColumnType, bool) {
	switch {
	case a == b:
		return a, true
	case a == Unknown:
		return b, true
	case b == Unknown:
		return a, true
	case a.IsNumeric() && b.IsNumeric():
		return Float, true
	default:
		return Unknown, false
	}
}

// Merge returns the schema shared by s and other. Both must have the same
// column names; column order follows s.
func (s Schema) Merge(other Schema) (Schema, error) {
	if len(s.Columns) != len(other.Columns) {
		return Schema{}, fmt.Errorf("%w: columns %v vs %v", ErrSchemaMismatch, s.Names(), other.Names())
	}

	merged := Schema{Columns: make([]Column, 0, len(s.Columns))}
	for _, col := range s.Columns {
		idx := other.Index(col.Name)
		if idx < 0 {
			return Schema{}, fmt.Errorf("%w: column %q missing from %v", ErrSchemaMismatch, col.Name, other.Names())
		}

		otherType := other.Columns[idx].Type
		typ, ok := combineTypes(col.Type, otherType)
		if !ok {
			return Schema{}, fmt.Errorf("%w: column %q is %s in one table and %s in another",
				ErrSchemaMismatch, col.Name, col.Type, otherType)
		}
		merged.Columns = append(merged.Columns, Column{Name: col.Name, Type: typ})
	}

	return merged, nil
}
