package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/andys/etl/table"
)

// BillColumn is the column the pipeline filters on
const BillColumn = "Total_Bill"

var (
	// ErrColumnNotFound is returned when the filter column is absent
	ErrColumnNotFound = errors.New("column not found")
	// ErrNotNumeric is returned when the filter column cannot be averaged
	ErrNotNumeric = errors.New("column is not numeric")
)

// Mean returns the arithmetic mean of the non-null values of column. It is
// NaN when the column holds no values.
func Mean(t *table.Table, column string) (float64, error) {
	idx := t.Schema.Index(column)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s", ErrColumnNotFound, column)
	}
	typ := t.Schema.Columns[idx].Type
	if typ != table.Unknown && !typ.IsNumeric() {
		return 0, fmt.Errorf("%w: %s is %s", ErrNotNumeric, column, typ)
	}

	var sum float64
	count := 0
	for _, row := range t.Rows {
		f, ok := toFloat(row.Values[idx])
		if !ok || math.IsNaN(f) {
			continue
		}
		sum += f
		count++
	}
	if count == 0 {
		return math.NaN(), nil
	}
	return sum / float64(count), nil
}

// AboveMean returns the rows of t whose column value is strictly greater than
// the column mean, in their original order, together with the mean.
func AboveMean(t *table.Table, column string) (*table.Table, float64, error) {
	mean, err := Mean(t, column)
	if err != nil {
		return nil, 0, err
	}

	idx := t.Schema.Index(column)
	filtered := t.Filter(func(row table.Row) bool {
		f, ok := toFloat(row.Values[idx])
		// NaN compares false, so a NaN mean keeps nothing
		return ok && f > mean
	})
	return filtered, mean, nil
}

// Apply runs the pipeline transform: keep rows with an above-average bill
func Apply(t *table.Table) (*table.Table, float64, error) {
	return AboveMean(t, BillColumn)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
