package table

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
)

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Render writes a human-readable dump of t: an index column followed by the
// table columns, right-aligned. Nulls are shown as NaN.
func Render(w io.Writer, t *Table) error {
	if t.Len() == 0 {
		_, err := fmt.Fprintf(w, "Empty DataFrame\nColumns: [%s]\nIndex: []\n",
			strings.Join(t.Schema.Names(), ", "))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := make([]string, 0, len(t.Schema.Columns)+1)
	header = append(header, "")
	header = append(header, t.Schema.Names()...)
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")+"\t"); err != nil {
		return err
	}

	cells := make([]string, 0, len(t.Schema.Columns)+1)
	for _, row := range t.Rows {
		cells = cells[:0]
		cells = append(cells, strconv.Itoa(row.Index))
		for _, v := range row.Values {
			if v == nil {
				cells = append(cells, "NaN")
				continue
			}
			cells = append(cells, FormatValue(v))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t"); err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n[%d rows x %d columns]\n", t.Len(), len(t.Schema.Columns))
	return err
}
