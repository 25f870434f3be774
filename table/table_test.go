package table

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/frankban/quicktest"
)

func billSchema(billType ColumnType) Schema {
	return Schema{Columns: []Column{
		{Name: "Name", Type: String},
		{Name: "Total_Bill", Type: billType},
	}}
}

func TestNew_RejectsRaggedRows(t *testing.T) {
	c := quicktest.New(t)
	_, err := New(billSchema(Int), [][]any{{"a", int64(1)}, {"b"}})
	c.Assert(err, quicktest.ErrorMatches, "row 1 has 1 values, expected 2")
}

func TestConcat_NoTables(t *testing.T) {
	c := quicktest.New(t)
	_, err := Concat()
	c.Assert(errors.Is(err, ErrNoTables), quicktest.IsTrue)
}

func TestConcat_StacksAndReindexes(t *testing.T) {
	c := quicktest.New(t)
	a, err := New(billSchema(Int), [][]any{{"a", int64(10)}, {"b", int64(20)}})
	c.Assert(err, quicktest.IsNil)
	b, err := New(billSchema(Float), [][]any{{"c", 30.5}})
	c.Assert(err, quicktest.IsNil)

	out, err := Concat(a, b)
	c.Assert(err, quicktest.IsNil)
	c.Assert(out.Len(), quicktest.Equals, 3)
	c.Assert(out.Schema.Columns[1].Type, quicktest.Equals, Float)
	c.Assert(out.Rows, quicktest.DeepEquals, []Row{
		{Index: 0, Values: []any{"a", 10.0}},
		{Index: 1, Values: []any{"b", 20.0}},
		{Index: 2, Values: []any{"c", 30.5}},
	})
}

func TestConcat_ReordersColumns(t *testing.T) {
	c := quicktest.New(t)
	a, err := New(billSchema(Int), [][]any{{"a", int64(10)}})
	c.Assert(err, quicktest.IsNil)
	swapped := Schema{Columns: []Column{{Name: "Total_Bill", Type: Int}, {Name: "Name", Type: String}}}
	b, err := New(swapped, [][]any{{int64(20), "b"}})
	c.Assert(err, quicktest.IsNil)

	out, err := Concat(a, b)
	c.Assert(err, quicktest.IsNil)
	c.Assert(out.Rows[1].Values, quicktest.DeepEquals, []any{"b", int64(20)})
}

func TestConcat_SchemaMismatch(t *testing.T) {
	c := quicktest.New(t)
	a, err := New(billSchema(Int), [][]any{{"a", int64(10)}})
	c.Assert(err, quicktest.IsNil)
	b, err := New(Schema{Columns: []Column{{Name: "Other", Type: Int}}}, [][]any{{int64(1)}})
	c.Assert(err, quicktest.IsNil)

	_, err = Concat(a, b)
	c.Assert(errors.Is(err, ErrSchemaMismatch), quicktest.IsTrue)
}

func TestFilter_PreservesOrderAndIndex(t *testing.T) {
	c := quicktest.New(t)
	tbl, err := New(billSchema(Int), [][]any{
		{"a", int64(30)}, {"b", int64(5)}, {"c", int64(40)}, {"d", int64(35)},
	})
	c.Assert(err, quicktest.IsNil)

	out := tbl.Filter(func(r Row) bool { return r.Values[1].(int64) > 20 })
	c.Assert(out.Rows, quicktest.DeepEquals, []Row{
		{Index: 0, Values: []any{"a", int64(30)}},
		{Index: 2, Values: []any{"c", int64(40)}},
		{Index: 3, Values: []any{"d", int64(35)}},
	})
	c.Assert(tbl.Len(), quicktest.Equals, 4)
}

func TestFormatValue(t *testing.T) {
	c := quicktest.New(t)
	c.Assert(FormatValue(nil), quicktest.Equals, "")
	c.Assert(FormatValue(int64(-7)), quicktest.Equals, "-7")
	c.Assert(FormatValue(30.0), quicktest.Equals, "30.0")
	c.Assert(FormatValue(12.25), quicktest.Equals, "12.25")
	c.Assert(FormatValue(math.NaN()), quicktest.Equals, "")
	c.Assert(FormatValue(true), quicktest.Equals, "True")
	c.Assert(FormatValue("x,y"), quicktest.Equals, "x,y")
	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	c.Assert(FormatValue(ts), quicktest.Equals, "2024-03-01 09:30:00")
}

func TestRender_Rows(t *testing.T) {
	c := quicktest.New(t)
	tbl, err := New(billSchema(Float), [][]any{{"Bob", 30.0}, {"Al", nil}})
	c.Assert(err, quicktest.IsNil)

	var buf bytes.Buffer
	c.Assert(Render(&buf, tbl), quicktest.IsNil)
	c.Assert(buf.String(), quicktest.Equals,
		"     Name  Total_Bill\n"+
			"  0   Bob        30.0\n"+
			"  1    Al         NaN\n"+
			"\n[2 rows x 2 columns]\n")
}

func TestRender_Empty(t *testing.T) {
	c := quicktest.New(t)
	tbl, err := New(billSchema(Int), nil)
	c.Assert(err, quicktest.IsNil)

	var buf bytes.Buffer
	c.Assert(Render(&buf, tbl), quicktest.IsNil)
	c.Assert(buf.String(), quicktest.Equals, "Empty DataFrame\nColumns: [Name, Total_Bill]\nIndex: []\n")
}
