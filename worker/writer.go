package worker

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/andys/etl/table"
)

// Loader writes a table to a CSV file, replacing any previous content
type Loader struct {
	path   string
	logger *slog.Logger
}

// NewLoader creates a loader writing to path
func NewLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{path: path, logger: logger}
}

// Load writes the header and every row of t. No index column is written.
func (l *Loader) Load(t *table.Table) error {
	file, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Schema.Names()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(t.Schema.Columns))
	for i, row := range t.Rows {
		for col, v := range row.Values {
			record[col] = table.FormatValue(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	l.logger.Debug("wrote output file", slog.String("file", l.path), slog.Int("rows", t.Len()))
	return nil
}
