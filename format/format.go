// Package format implements the readers for the supported input file
// formats. Each reader turns one file into a table.Table.
package format

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andys/etl/table"
)

// Format identifies a supported input file format
type Format string

const (
	CSV       Format = "CSV"
	JSONLines Format = "JSON"
	Parquet   Format = "Parquet"
)

// Reader reads a single file of one format into a table
type Reader interface {
	Format() Format
	// Extension is the lowercase file suffix, including the dot
	Extension() string
	Read(path string) (*table.Table, error)
}

// Readers returns the supported readers in extraction order
func Readers() []Reader {
	return []Reader{CSVReader{}, JSONLinesReader{}, ParquetReader{}}
}

// ForPath returns the reader matching the file extension of path
func ForPath(path string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, r := range Readers() {
		if r.Extension() == ext {
			return r, nil
		}
	}
	return nil, fmt.Errorf("unsupported file type: %s", path)
}

// ReadOrSkip reads path with r. On failure it writes a diagnostic naming the
// file to w and returns nil instead of the error.
func ReadOrSkip(r Reader, path string, w io.Writer) *table.Table {
	t, err := r.Read(path)
	if err != nil {
		fmt.Fprintf(w, "Error reading %s file %s: %v\n", r.Format(), path, err)
		return nil
	}
	return t
}
