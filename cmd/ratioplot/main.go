package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dermalyze/ratioplot/internal/config"
	"github.com/dermalyze/ratioplot/internal/pipeline"
	"github.com/dermalyze/ratioplot/internal/repository"
	"github.com/dermalyze/ratioplot/internal/repository/postgres"
	"github.com/dermalyze/ratioplot/internal/storage"
)

func main() {
	// Configure zerolog for structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("melRatios", cfg.Inputs.MelanomaPath).
		Str("nvRatios", cfg.Inputs.NormalPath).
		Str("output", cfg.Output.Path).
		Int("bins", cfg.Histogram.Bins).
		Float64("rangeMin", cfg.Histogram.Min).
		Float64("rangeMax", cfg.Histogram.Max).
		Msg("Starting ratio distribution pipeline")

	ctx := context.Background()

	// Run history is optional; enabled by DATABASE_URL.
	var runs repository.RunRepository
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open run-history database")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to reach run-history database")
		}
		runs = postgres.NewPostgresRunRepository(db)
		log.Info().Msg("Run history enabled")
	}

	// Plot publishing is optional; enabled by S3_BUCKET.
	var publisher storage.Publisher
	if cfg.S3.Bucket != "" {
		publisher, err = storage.NewS3Publisher(storage.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure plot publishing")
		}
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Plot publishing enabled")
	}

	svc := pipeline.NewService(cfg, runs, publisher)

	run, err := svc.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Pipeline failed")
	}

	event := log.Info().
		Str("runID", run.ID).
		Str("output", run.OutputPath).
		Int("melBinned", run.Melanoma.Binned).
		Int("nvBinned", run.Normal.Binned)
	if run.PlotURL != nil {
		event = event.Str("plotURL", *run.PlotURL)
	}
	event.Msg("Pipeline completed")
}
