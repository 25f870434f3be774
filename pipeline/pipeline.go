// Package pipeline runs the extract, transform and load phases in order,
// logging each phase boundary to the progress log.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/andys/etl/config"
	"github.com/andys/etl/progress"
	"github.com/andys/etl/table"
	"github.com/andys/etl/transform"
	"github.com/andys/etl/worker"
)

// Result summarizes a completed run
type Result struct {
	FilesRead     int64
	FilesSkipped  int64
	ExtractedRows int
	Mean          float64
	KeptRows      int
}

// Pipeline sequences one run over a working directory
type Pipeline struct {
	cfg      *config.Config
	progress *progress.Logger
	sink     worker.Sink
	stdout   io.Writer
	logger   *slog.Logger
	next     Phase
}

// New creates a pipeline. The transformed table and reader diagnostics are
// printed to stdout.
func New(cfg *config.Config, stdout io.Writer, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		progress: progress.NewLogger(cfg.LogPath()),
		sink:     worker.NewLoader(cfg.TargetPath(), logger),
		stdout:   stdout,
		logger:   logger,
	}
}

// mark logs a boundary. Boundaries must be reached in order.
func (p *Pipeline) mark(phase Phase) error {
	if phase != p.next {
		return fmt.Errorf("phase %q reached before %q", phase, p.next)
	}
	if err := p.progress.Log(phase.Message()); err != nil {
		return err
	}
	p.logger.Info(phase.Message())
	p.next++
	return nil
}

// Run executes the job. The first error stops the run; boundaries after it
// are not logged.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.next = JobStarted
	var result Result

	if err := p.mark(JobStarted); err != nil {
		return nil, err
	}

	// Extract
	if err := p.mark(ExtractStarted); err != nil {
		return nil, err
	}
	extractor := worker.NewExtractor(p.cfg.WorkDir, p.stdout, p.logger, p.cfg.TargetFile)
	defer extractor.Stop()

	extracted, err := extractor.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract phase: %w", err)
	}
	stats := extractor.GetProgress()
	result.FilesRead = stats.ProcessedFiles.Load() - stats.SkippedFiles.Load()
	result.FilesSkipped = stats.SkippedFiles.Load()
	result.ExtractedRows = extracted.Len()
	if err := p.mark(ExtractEnded); err != nil {
		return nil, err
	}

	// Transform
	if err := p.mark(TransformStarted); err != nil {
		return nil, err
	}
	transformed, mean, err := transform.Apply(extracted)
	if err != nil {
		return nil, fmt.Errorf("transform phase: %w", err)
	}
	result.Mean = mean
	result.KeptRows = transformed.Len()

	fmt.Fprintln(p.stdout, "Transformed Data:")
	if err := table.Render(p.stdout, transformed); err != nil {
		return nil, fmt.Errorf("failed to print transformed data: %w", err)
	}
	if err := p.mark(TransformEnded); err != nil {
		return nil, err
	}

	// Load
	if err := p.mark(LoadStarted); err != nil {
		return nil, err
	}
	if err := p.sink.Load(transformed); err != nil {
		return nil, fmt.Errorf("load phase: %w", err)
	}
	if err := p.mark(LoadEnded); err != nil {
		return nil, err
	}

	if err := p.mark(JobEnded); err != nil {
		return nil, err
	}

	p.logger.Info("run complete",
		slog.Int64("files_read", result.FilesRead),
		slog.Int64("files_skipped", result.FilesSkipped),
		slog.Int("rows_extracted", result.ExtractedRows),
		slog.Float64("mean", result.Mean),
		slog.Int("rows_kept", result.KeptRows))
	return &result, nil
}
