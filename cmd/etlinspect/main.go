package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/andys/etl/config"
	"github.com/andys/etl/format"
	"github.com/andys/etl/worker"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "etlinspect",
		Usage: "List the input files the etl job would read, with their row counts and columns",
		Action: func(c *cli.Context) error {
			cfg, err := config.Default()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			extractor := worker.NewExtractor(cfg.WorkDir, os.Stdout, logger, cfg.TargetFile)
			defer extractor.Stop()

			files, err := extractor.Discover()
			if err != nil {
				return fmt.Errorf("failed to discover input files: %w", err)
			}

			totalRows, readable := 0, 0
			for _, path := range files {
				r, err := format.ForPath(path)
				if err != nil {
					return err
				}
				t := format.ReadOrSkip(r, path, os.Stdout)
				if t == nil {
					continue
				}
				readable++
				totalRows += t.Len()

				columns := make([]string, len(t.Schema.Columns))
				for i, col := range t.Schema.Columns {
					columns[i] = fmt.Sprintf("%s (%s)", col.Name, col.Type)
				}
				fmt.Printf("%s [%s]: %d rows\n  %s\n", path, r.Format(), t.Len(), strings.Join(columns, ", "))
			}

			fmt.Printf("\nFound %d input files, %d readable, with %d total rows\n", len(files), readable, totalRows)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
