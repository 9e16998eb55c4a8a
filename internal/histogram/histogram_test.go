package histogram

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountPlacesValuesInCorrectBins(t *testing.T) {
	spec := Spec{Bins: 5, Min: 0, Max: 0.05}

	counts := spec.Count([]float64{0.0, 0.005, 0.015, 0.031, 0.049})

	assert.Equal(t, []float64{2, 1, 0, 1, 1}, counts)
}

func TestCountExcludesOutOfRangeValues(t *testing.T) {
	spec := DefaultSpec()

	// Upper bound is exclusive, lower bound inclusive.
	counts := spec.Count([]float64{-0.001, 0.05, 0.06, 1.0})

	assert.Equal(t, 0, Total(counts))
	assert.Len(t, counts, 50)
}

func TestCountEmptyInput(t *testing.T) {
	counts := DefaultSpec().Count(nil)

	require.Len(t, counts, 50)
	assert.Equal(t, 0, Total(counts))
}

func TestCountIsOrderIndependent(t *testing.T) {
	spec := DefaultSpec()

	values := make([]float64, 500)
	for i := range values {
		values[i] = rand.Float64() * 0.06 // some values land outside the range
	}
	expected := spec.Count(values)

	shuffled := make([]float64, len(values))
	copy(shuffled, values)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assert.Equal(t, expected, spec.Count(shuffled))
}

func TestCountLowerBoundInclusive(t *testing.T) {
	spec := Spec{Bins: 2, Min: 0, Max: 1}

	counts := spec.Count([]float64{0})

	assert.Equal(t, []float64{1, 0}, counts)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{"default", DefaultSpec(), false},
		{"single bin", Spec{Bins: 1, Min: 0, Max: 1}, false},
		{"zero bins", Spec{Bins: 0, Min: 0, Max: 1}, true},
		{"negative bins", Spec{Bins: -3, Min: 0, Max: 1}, true},
		{"inverted range", Spec{Bins: 10, Min: 1, Max: 0}, true},
		{"empty range", Spec{Bins: 10, Min: 0.5, Max: 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWidth(t *testing.T) {
	assert.InDelta(t, 0.001, DefaultSpec().Width(), 1e-12)
}
