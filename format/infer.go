package format

import (
	"strconv"

	"github.com/andys/etl/table"
)

// isNull reports whether a cell is read as a missing value
func isNull(cell string) bool {
	switch cell {
	case "", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
		"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
		"n/a", "nan", "null":
		return true
	}
	return false
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True", "true", "TRUE":
		return true, true
	case "False", "false", "FALSE":
		return false, true
	}
	return false, false
}

// inferCells picks the narrowest type that parses every non-null cell and
// returns the converted values.
func inferCells(cells []string) (table.ColumnType, []any) {
	values := make([]any, len(cells))

	typ := table.Unknown
	for _, candidate := range []table.ColumnType{table.Int, table.Float, table.Bool} {
		if parseAll(cells, candidate, values) {
			typ = candidate
			break
		}
	}

	if typ == table.Int && hasNull(values) {
		// Integer columns with gaps are widened so nulls stay representable
		for i, v := range values {
			if n, ok := v.(int64); ok {
				values[i] = float64(n)
			}
		}
		typ = table.Float
	}

	if typ == table.Unknown {
		allNull := true
		for i, cell := range cells {
			if isNull(cell) {
				values[i] = nil
				continue
			}
			allNull = false
			values[i] = cell
		}
		if !allNull {
			typ = table.String
		}
	}

	return typ, values
}

// parseAll converts cells into values as typ. It reports false, leaving
// values in an undefined state, when a cell does not parse or every cell is
// null.
func parseAll(cells []string, typ table.ColumnType, values []any) bool {
	seen := false
	for i, cell := range cells {
		if isNull(cell) {
			values[i] = nil
			continue
		}
		seen = true

		switch typ {
		case table.Int:
			n, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				return false
			}
			values[i] = n
		case table.Float:
			f, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return false
			}
			values[i] = f
		case table.Bool:
			b, ok := parseBool(cell)
			if !ok {
				return false
			}
			values[i] = b
		default:
			return false
		}
	}
	return seen
}

func hasNull(values []any) bool {
	for _, v := range values {
		if v == nil {
			return true
		}
	}
	return false
}
