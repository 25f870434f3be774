package format

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/andys/etl/table"
	"github.com/frankban/quicktest"
)

func writeFile(c *quicktest.C, dir, name, content string) string {
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	c.Assert(err, quicktest.IsNil)
	return path
}

func TestForPath_DispatchesByExtension(t *testing.T) {
	c := quicktest.New(t)
	for path, want := range map[string]Format{
		"bills.csv":         CSV,
		"BILLS.CSV":         CSV,
		"bills.json":        JSONLines,
		"dir/bills.parquet": Parquet,
	} {
		r, err := ForPath(path)
		c.Assert(err, quicktest.IsNil)
		c.Assert(r.Format(), quicktest.Equals, want)
	}
}

func TestForPath_Unsupported(t *testing.T) {
	c := quicktest.New(t)
	_, err := ForPath("bills.xlsx")
	c.Assert(err, quicktest.ErrorMatches, "unsupported file type: bills.xlsx")
}

func TestReaders_Order(t *testing.T) {
	c := quicktest.New(t)
	var exts []string
	for _, r := range Readers() {
		exts = append(exts, r.Extension())
	}
	c.Assert(exts, quicktest.DeepEquals, []string{".csv", ".json", ".parquet"})
}

func TestReadOrSkip_ReturnsTable(t *testing.T) {
	c := quicktest.New(t)
	path := writeFile(c, t.TempDir(), "a.csv", "Total_Bill\n10\n")

	var out bytes.Buffer
	tbl := ReadOrSkip(CSVReader{}, path, &out)
	c.Assert(tbl, quicktest.Not(quicktest.IsNil))
	c.Assert(tbl.Len(), quicktest.Equals, 1)
	c.Assert(out.String(), quicktest.Equals, "")
}

func TestReadOrSkip_PrintsDiagnostic(t *testing.T) {
	c := quicktest.New(t)
	path := writeFile(c, t.TempDir(), "broken.json", "{not json}\n")

	var out bytes.Buffer
	tbl := ReadOrSkip(JSONLinesReader{}, path, &out)
	c.Assert(tbl, quicktest.IsNil)
	c.Assert(out.String(), quicktest.Matches, `Error reading JSON file .*broken\.json: line 1: .*\n`)
}

func TestReadOrSkip_MissingFile(t *testing.T) {
	c := quicktest.New(t)
	var out bytes.Buffer
	tbl := ReadOrSkip(ParquetReader{}, filepath.Join(t.TempDir(), "gone.parquet"), &out)
	c.Assert(tbl, quicktest.IsNil)
	c.Assert(out.String(), quicktest.Contains, "Error reading Parquet file")
}

func TestInferCells(t *testing.T) {
	c := quicktest.New(t)
	tests := []struct {
		name   string
		cells  []string
		typ    table.ColumnType
		values []any
	}{
		{"ints", []string{"1", "-2"}, table.Int, []any{int64(1), int64(-2)}},
		{"ints with gap", []string{"1", ""}, table.Float, []any{1.0, nil}},
		{"floats", []string{"1.5", "2"}, table.Float, []any{1.5, 2.0}},
		{"bools", []string{"True", "false"}, table.Bool, []any{true, false}},
		{"strings", []string{"a", "NA", "1"}, table.String, []any{"a", nil, "1"}},
		{"all null", []string{"", "nan"}, table.Unknown, []any{nil, nil}},
		{"no rows", []string{}, table.Unknown, []any{}},
	}
	for _, tt := range tests {
		c.Run(tt.name, func(c *quicktest.C) {
			typ, values := inferCells(tt.cells)
			c.Assert(typ, quicktest.Equals, tt.typ)
			c.Assert(values, quicktest.DeepEquals, tt.values)
		})
	}
}
