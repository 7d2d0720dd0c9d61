package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingMean(t *testing.T) {
	out := RollingMean([]float64{1, 2, 3, 4, 5}, 3)

	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-12)
	assert.InDelta(t, 3.0, out[3], 1e-12)
	assert.InDelta(t, 4.0, out[4], 1e-12)
}

func TestRollingMeanNaNPoisonsWindow(t *testing.T) {
	out := RollingMean([]float64{1, math.NaN(), 3, 4, 5}, 3)

	assert.True(t, math.IsNaN(out[2]))
	assert.True(t, math.IsNaN(out[3]))
	assert.InDelta(t, 4.0, out[4], 1e-12)
}

func TestRollingStd(t *testing.T) {
	out := RollingStd([]float64{1, 2, 3, 4}, 2)

	assert.True(t, math.IsNaN(out[0]))
	// sample deviation of two consecutive integers
	assert.InDelta(t, 1.0/math.Sqrt2, out[1], 1e-12)
	assert.InDelta(t, 1.0/math.Sqrt2, out[3], 1e-12)
}

func TestRollingSkew(t *testing.T) {
	sym := RollingSkew([]float64{1, 2, 3}, 3)
	assert.True(t, math.IsNaN(sym[0]))
	assert.True(t, math.IsNaN(sym[1]))
	assert.InDelta(t, 0.0, sym[2], 1e-12)

	// adjusted Fisher-Pearson G1 of {0,0,1}
	right := RollingSkew([]float64{0, 0, 1}, 3)
	assert.InDelta(t, 1.7320508, right[2], 1e-6)

	flat := RollingSkew([]float64{5, 5, 5, 5}, 3)
	assert.True(t, math.IsNaN(flat[3]))
}

func TestLogReturns(t *testing.T) {
	out := LogReturns([]float64{1, math.E, math.E})

	assert.True(t, math.IsNaN(out[0]))
	assert.InDelta(t, 1.0, out[1], 1e-12)
	assert.InDelta(t, 0.0, out[2], 1e-12)
}

func TestZScore(t *testing.T) {
	out := ZScore([]float64{1, 2, 3, 4, 5}, 3)

	assert.True(t, math.IsNaN(out[1]))
	// trailing window {3,4,5}: mean 4, sample std 1
	assert.InDelta(t, 1.0, out[4], 1e-12)

	flat := ZScore([]float64{2, 2, 2, 2}, 3)
	assert.InDelta(t, 0.0, flat[3], 1e-12)
}

func TestPercentileRank(t *testing.T) {
	assert.Equal(t, 50.0, PercentileRank(1.0, nil))
	assert.Equal(t, 50.0, PercentileRank(1.0, []float64{math.NaN()}))

	hist := []float64{1, 2, 3}
	assert.InDelta(t, 0.0, PercentileRank(0.5, hist), 1e-12)
	assert.InDelta(t, 100.0, PercentileRank(10, hist), 1e-12)
	assert.InDelta(t, 100.0/3.0, PercentileRank(1.5, hist), 1e-9)

	// equal values do not count as "below"
	assert.InDelta(t, 25.0, PercentileRank(2, []float64{1, 2, 2, 3}), 1e-12)

	// NaN history entries are ignored entirely
	assert.InDelta(t, 50.0, PercentileRank(2, []float64{1, math.NaN(), 3}), 1e-12)
}
