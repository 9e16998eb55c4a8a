package models

import (
	"time"
)

// RatioRecord is one parsed input row: an image identifier and its
// precomputed ratio. The identifier is carried for traceability only;
// downstream binning looks at the ratio alone.
type RatioRecord struct {
	Image string  `json:"image"`
	Ratio float64 `json:"ratio"`
}

// Dataset is an ordered sequence of ratio records loaded from one input
// file. Order carries no meaning for binning.
type Dataset []RatioRecord

// Ratios returns just the ratio values, in file order.
func (d Dataset) Ratios() []float64 {
	ratios := make([]float64, len(d))
	for i, r := range d {
		ratios[i] = r.Ratio
	}
	return ratios
}

// SeriesStats summarizes one dataset as it passed through the pipeline.
type SeriesStats struct {
	Label   string `json:"label"`
	Records int    `json:"records"` // rows parsed from the input file
	Binned  int    `json:"binned"`  // values that fell inside the histogram range
}

// PlotRun is one completed pipeline execution (for internal use and the
// optional run-history table).
type PlotRun struct {
	ID         string      `json:"id"`
	Melanoma   SeriesStats `json:"melanoma"`
	Normal     SeriesStats `json:"normal"`
	OutputPath string      `json:"output_path"`
	PlotURL    *string     `json:"plot_url,omitempty"` // set when the plot was published to object storage
	CreatedAt  time.Time   `json:"created_at"`
}
