package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dermalyze/ratioplot/internal/histogram"
)

func testOptions() Options {
	return Options{
		Title:        "Distribution of Ratios: Melanoma vs Normal",
		XLabel:       "Ratio",
		YLabel:       "Frequency",
		WidthInches:  10,
		HeightInches: 6,
	}
}

func testSeries(spec histogram.Spec) []Series {
	return []Series{
		{Label: "Melanoma", Color: color.NRGBA{R: 0xff, A: 0xff}, Counts: spec.Count([]float64{0.01, 0.02})},
		{Label: "Normal", Color: color.NRGBA{B: 0xff, A: 0xff}, Counts: spec.Count([]float64{0.005})},
	}
}

func TestWritePNGProducesValidPNG(t *testing.T) {
	spec := histogram.DefaultSpec()
	var buf bytes.Buffer

	err := WritePNG(&buf, spec, testSeries(spec), testOptions())

	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.NotZero(t, img.Bounds().Dx())
}

func TestWritePNGIsDeterministic(t *testing.T) {
	spec := histogram.DefaultSpec()

	var first, second bytes.Buffer
	require.NoError(t, WritePNG(&first, spec, testSeries(spec), testOptions()))
	require.NoError(t, WritePNG(&second, spec, testSeries(spec), testOptions()))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestWritePNGEmptySeries(t *testing.T) {
	spec := histogram.DefaultSpec()
	series := []Series{
		{Label: "Melanoma", Color: color.NRGBA{R: 0xff, A: 0xff}, Counts: spec.Count(nil)},
		{Label: "Normal", Color: color.NRGBA{B: 0xff, A: 0xff}, Counts: spec.Count([]float64{0.9, -1})},
	}
	var buf bytes.Buffer

	err := WritePNG(&buf, spec, series, testOptions())

	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
}

func TestWritePNGRejectsMisalignedSeries(t *testing.T) {
	spec := histogram.DefaultSpec()
	series := []Series{{Label: "Melanoma", Color: color.NRGBA{R: 0xff, A: 0xff}, Counts: []float64{1, 2, 3}}}

	err := WritePNG(&bytes.Buffer{}, spec, series, testOptions())

	assert.Error(t, err)
}

func TestWritePNGRejectsBadDimensions(t *testing.T) {
	spec := histogram.DefaultSpec()

	err := WritePNG(&bytes.Buffer{}, spec, testSeries(spec), Options{WidthInches: 0, HeightInches: 6})

	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{in: "red", want: color.NRGBA{R: 0xff, A: 0xff}},
		{in: "Blue", want: color.NRGBA{B: 0xff, A: 0xff}},
		{in: "#ff00ff", want: color.NRGBA{R: 0xff, B: 0xff, A: 0xff}},
		{in: "#FFA500", want: color.NRGBA{R: 0xff, G: 0xa5, A: 0xff}},
		{in: "chartreuse-ish", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
