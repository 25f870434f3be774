package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/andys/etl/config"
	"github.com/andys/etl/pipeline"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "etl",
		Usage: "Extract CSV, JSON and Parquet files from the working directory, keep rows with an above-average Total_Bill and write transformed_data.csv",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
			defer stop()

			cfg, err := config.Default()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})).
				With(slog.String("run_id", uuid.NewString()))

			_, err = pipeline.New(cfg, os.Stdout, logger).Run(ctx)
			return err
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
