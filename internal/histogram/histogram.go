package histogram

import (
	"fmt"
)

// Spec describes a clipped-range, equal-width histogram. One Spec is shared
// by every series drawn on the same axes so the bins line up.
type Spec struct {
	Bins int
	Min  float64
	Max  float64
}

// DefaultSpec returns the spec used for ratio distributions: 50 bins over
// [0, 0.05).
func DefaultSpec() Spec {
	return Spec{Bins: 50, Min: 0, Max: 0.05}
}

// Validate checks that the spec describes a usable set of bins.
func (s Spec) Validate() error {
	if s.Bins < 1 {
		return fmt.Errorf("histogram bins must be >= 1, got %d", s.Bins)
	}
	if s.Min >= s.Max {
		return fmt.Errorf("histogram range min (%v) must be less than max (%v)", s.Min, s.Max)
	}
	return nil
}

// Width returns the width of a single bin.
func (s Spec) Width() float64 {
	return (s.Max - s.Min) / float64(s.Bins)
}

// Count bins values into s.Bins equal-width bins. Values outside [Min, Max)
// are excluded from the counts. The result is independent of input order,
// and a dataset entirely outside the range yields all-zero counts.
func (s Spec) Count(values []float64) []float64 {
	counts := make([]float64, s.Bins)
	width := s.Width()
	for _, v := range values {
		if v < s.Min || v >= s.Max {
			continue
		}
		idx := int((v - s.Min) / width)
		if idx >= s.Bins {
			// Guard against float rounding at the upper edge.
			idx = s.Bins - 1
		}
		counts[idx]++
	}
	return counts
}

// Total returns the number of values captured by a set of counts.
func Total(counts []float64) int {
	var n float64
	for _, c := range counts {
		n += c
	}
	return int(n)
}
