package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dermalyze/ratioplot/internal/config"
	"github.com/dermalyze/ratioplot/internal/dataset"
	"github.com/dermalyze/ratioplot/internal/histogram"
	"github.com/dermalyze/ratioplot/internal/render"
	"github.com/dermalyze/ratioplot/internal/repository"
	"github.com/dermalyze/ratioplot/internal/storage"
	"github.com/dermalyze/ratioplot/pkg/models"
)

// Service runs the ratio distribution pipeline: load both ratio files, bin
// them with the shared histogram spec, render the overlay figure, and write
// the PNG.
type Service interface {
	Run(ctx context.Context) (*models.PlotRun, error)
}

type service struct {
	cfg       *config.Config
	runs      repository.RunRepository // nil when run history is disabled
	publisher storage.Publisher        // nil when publishing is disabled
}

// NewService creates a pipeline service. runs and publisher may be nil;
// the corresponding steps are skipped.
func NewService(cfg *config.Config, runs repository.RunRepository, publisher storage.Publisher) Service {
	return &service{
		cfg:       cfg,
		runs:      runs,
		publisher: publisher,
	}
}

func (s *service) Run(ctx context.Context) (*models.PlotRun, error) {
	runID := uuid.New()

	// Step 1: Load both datasets. Any open or parse failure aborts the run
	// before the output file is touched, so a failed run leaves no output.
	mel, err := dataset.Load(s.cfg.Inputs.MelanomaPath)
	if err != nil {
		return nil, err
	}
	nv, err := dataset.Load(s.cfg.Inputs.NormalPath)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("runID", runID.String()).
		Int("melRecords", len(mel)).
		Int("nvRecords", len(nv)).
		Msg("Loaded ratio datasets")

	// Step 2: Bin both datasets against the shared spec.
	melCounts := s.cfg.Histogram.Count(mel.Ratios())
	nvCounts := s.cfg.Histogram.Count(nv.Ratios())

	// Step 3: Render the overlay figure into memory.
	melColor, err := render.ParseColor(s.cfg.Plot.MelanomaColor)
	if err != nil {
		return nil, err
	}
	nvColor, err := render.ParseColor(s.cfg.Plot.NormalColor)
	if err != nil {
		return nil, err
	}

	series := []render.Series{
		{Label: s.cfg.Plot.MelanomaLabel, Color: melColor, Counts: melCounts},
		{Label: s.cfg.Plot.NormalLabel, Color: nvColor, Counts: nvCounts},
	}
	opts := render.Options{
		Title:        s.cfg.Plot.Title,
		XLabel:       s.cfg.Plot.XLabel,
		YLabel:       s.cfg.Plot.YLabel,
		WidthInches:  s.cfg.Plot.WidthInches,
		HeightInches: s.cfg.Plot.HeightInches,
	}

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, s.cfg.Histogram, series, opts); err != nil {
		return nil, err
	}

	// Step 4: Write the image, replacing any previous plot at that path.
	if err := os.WriteFile(s.cfg.Output.Path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write output image: %w", err)
	}
	log.Info().
		Str("runID", runID.String()).
		Str("path", s.cfg.Output.Path).
		Int("bytes", buf.Len()).
		Msg("Wrote ratio distribution plot")

	run := &models.PlotRun{
		ID: runID.String(),
		Melanoma: models.SeriesStats{
			Label:   s.cfg.Plot.MelanomaLabel,
			Records: len(mel),
			Binned:  histogram.Total(melCounts),
		},
		Normal: models.SeriesStats{
			Label:   s.cfg.Plot.NormalLabel,
			Records: len(nv),
			Binned:  histogram.Total(nvCounts),
		},
		OutputPath: s.cfg.Output.Path,
		CreatedAt:  time.Now().UTC(),
	}

	// Step 5: Publish the plot when a bucket is configured.
	if s.publisher != nil {
		key := fmt.Sprintf("plots/%s.png", runID)
		if err := s.publisher.Upload(ctx, key, "image/png", buf.Bytes()); err != nil {
			return nil, err
		}
		url, err := s.publisher.GenerateDownloadURL(ctx, key)
		if err != nil {
			return nil, err
		}
		run.PlotURL = &url
		log.Info().Str("runID", runID.String()).Str("key", key).Msg("Published plot")
	}

	// Step 6: Record the run when a database is configured. The image is
	// already on disk at this point and is kept even if recording fails.
	if s.runs != nil {
		if err := s.runs.Create(ctx, run); err != nil {
			return nil, fmt.Errorf("record plot run: %w", err)
		}
	}

	return run, nil
}
