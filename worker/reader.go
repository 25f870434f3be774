package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/andys/etl/format"
	"github.com/andys/etl/table"
)

// Extractor discovers input files in a directory and reads them into one
// table. Files are read one at a time, in discovery order.
type Extractor struct {
	dir      string
	exclude  map[string]bool
	pool     pond.ResultPool[*table.Table]
	progress *Progress
	out      io.Writer
	logger   *slog.Logger
}

// NewExtractor creates an extractor over dir. Reader diagnostics are written
// to out; names in exclude are never treated as input.
func NewExtractor(dir string, out io.Writer, logger *slog.Logger, exclude ...string) *Extractor {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[filepath.Base(name)] = true
	}
	return &Extractor{
		dir:     dir,
		exclude: skip,
		// A single worker keeps ingestion sequential
		pool: pond.NewResultPool[*table.Table](1),
		progress: &Progress{
			StartTime: time.Now(),
		},
		out:    out,
		logger: logger,
	}
}

// Discover lists the input files: every *.csv, then every *.json, then every
// *.parquet file, each group in directory order.
func (e *Extractor) Discover() ([]string, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", e.dir, err)
	}

	var files []string
	for _, r := range format.Readers() {
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || strings.HasPrefix(name, ".") || e.exclude[name] {
				continue
			}
			if strings.HasSuffix(name, r.Extension()) {
				files = append(files, filepath.Join(e.dir, name))
			}
		}
	}
	return files, nil
}

// Extract reads every discovered file and concatenates the tables that could
// be read. Unreadable files are reported and skipped. It fails with
// table.ErrNoTables when nothing was read and table.ErrSchemaMismatch when
// the tables do not share a schema.
func (e *Extractor) Extract(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := e.Discover()
	if err != nil {
		return nil, err
	}
	e.progress.TotalFiles = int64(len(files))
	e.logger.Debug("discovered input files", slog.String("dir", e.dir), slog.Int("count", len(files)))
	if len(files) == 0 {
		return nil, table.ErrNoTables
	}

	group := e.pool.NewGroupContext(ctx)
	for _, path := range files {
		path := path // Create local copy for closure

		group.SubmitErr(func() (*table.Table, error) {
			// Checked between files; a file being read is finished first
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return e.readFile(path)
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to read input files: %w", err)
	}

	tables := make([]*table.Table, 0, len(results))
	for _, t := range results {
		if t != nil {
			tables = append(tables, t)
		}
	}

	return table.Concat(tables...)
}

// readFile reads one file, returning a nil table when it cannot be read
func (e *Extractor) readFile(path string) (*table.Table, error) {
	e.progress.CurrentFile = path
	defer e.progress.ProcessedFiles.Add(1)

	r, err := format.ForPath(path)
	if err != nil {
		return nil, err
	}

	t := format.ReadOrSkip(r, path, e.out)
	if t == nil {
		e.progress.SkippedFiles.Add(1)
		e.logger.Warn("skipped input file", slog.String("file", path), slog.String("format", string(r.Format())))
		return nil, nil
	}

	e.progress.ExtractedRows.Add(int64(t.Len()))
	e.logger.Debug("read input file",
		slog.String("file", path),
		slog.Int("rows", t.Len()),
		slog.Int("columns", len(t.Schema.Columns)))
	return t, nil
}

// GetProgress returns the current progress
func (e *Extractor) GetProgress() *Progress {
	return e.progress
}

// Stop stops the worker pool and waits for all tasks to complete
func (e *Extractor) Stop() {
	e.pool.StopAndWait()
}
