package format

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/andys/etl/table"
)

var errNoColumns = errors.New("no columns to parse from file")

// CSVReader reads comma-separated files whose first record is the header
type CSVReader struct{}

func (CSVReader) Format() Format { return CSV }
func (CSVReader) Extension() string { return ".csv" }

// Read parses the file at path. Every record must have as many fields as the
// header.
func (CSVReader) Read(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errNoColumns
	}

	header := records[0]
	// Files written for spreadsheet tools may start with a UTF-8 BOM
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	if err := checkHeader(header); err != nil {
		return nil, err
	}
	rows := records[1:]

	schema := table.Schema{Columns: make([]table.Column, len(header))}
	values := make([][]any, len(rows))
	for i := range values {
		values[i] = make([]any, len(header))
	}

	cells := make([]string, len(rows))
	for col, name := range header {
		for i, record := range rows {
			cells[i] = record[col]
		}
		typ, converted := inferCells(cells)
		schema.Columns[col] = table.Column{Name: name, Type: typ}
		for i, v := range converted {
			values[i][col] = v
		}
	}

	return table.New(schema, values)
}

func checkHeader(header []string) error {
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return fmt.Errorf("duplicate column name %q", name)
		}
		seen[name] = true
	}
	return nil
}
