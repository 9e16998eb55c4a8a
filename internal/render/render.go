package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dermalyze/ratioplot/internal/histogram"
)

// Series is one labeled dataset to draw on the shared axes.
type Series struct {
	Label  string
	Color  color.Color
	Counts []float64 // per-bin weights, aligned to the shared histogram.Spec
}

// Options holds the fixed visual parameters of the figure.
type Options struct {
	Title        string
	XLabel       string
	YLabel       string
	WidthInches  float64
	HeightInches float64
}

// barAlpha is the opacity applied to each series so overlapping bars stay
// readable.
const barAlpha = 128

// WritePNG builds a fresh overlay-histogram figure for the given series and
// serializes it as PNG to w. The figure is local to the call; nothing is
// held in package or process state between invocations.
func WritePNG(w io.Writer, spec histogram.Spec, series []Series, opts Options) error {
	if opts.WidthInches <= 0 || opts.HeightInches <= 0 {
		return fmt.Errorf("figure dimensions must be positive, got %gx%g", opts.WidthInches, opts.HeightInches)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	for _, s := range series {
		if len(s.Counts) != spec.Bins {
			return fmt.Errorf("series %q has %d bins, spec has %d", s.Label, len(s.Counts), spec.Bins)
		}
		h := bars(spec, s.Counts, withAlpha(s.Color, barAlpha))
		p.Add(h)
		p.Legend.Add(s.Label, swatch{fill: h.FillColor})
	}

	p.X.Min = spec.Min
	p.X.Max = spec.Max
	p.Y.Min = 0
	if p.Y.Max <= 0 {
		// Keep the y axis non-degenerate when every series is empty.
		p.Y.Max = 1
	}
	p.Legend.Top = true

	wt, err := p.WriterTo(vg.Length(opts.WidthInches)*vg.Inch, vg.Length(opts.HeightInches)*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render figure: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// bars converts per-bin counts into a histogram plotter with bins placed at
// the spec's edges, so both series align regardless of their data ranges.
func bars(spec histogram.Spec, counts []float64, fill color.Color) *plotter.Histogram {
	width := spec.Width()
	bins := make([]plotter.HistogramBin, len(counts))
	for i, n := range counts {
		bins[i] = plotter.HistogramBin{
			Min:    spec.Min + float64(i)*width,
			Max:    spec.Min + float64(i+1)*width,
			Weight: n,
		}
	}
	return &plotter.Histogram{
		Bins:      bins,
		Width:     spec.Max - spec.Min,
		FillColor: fill,
		LineStyle: plotter.DefaultLineStyle,
	}
}

// withAlpha returns c with its alpha channel replaced.
func withAlpha(c color.Color, alpha uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}

// swatch draws a filled legend thumbnail for a histogram series.
type swatch struct {
	fill color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.fill, c.ClipPolygonY(pts))
}
