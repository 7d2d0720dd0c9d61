package pca

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FXBrief/internal/domain/models"
)

func syntheticObs(rows int, seed int64) [][]float64 {
	r := rand.New(rand.NewSource(seed))
	obs := make([][]float64, rows)
	for i := range obs {
		z := r.NormFloat64()
		obs[i] = []float64{
			z,
			z + r.NormFloat64()*0.05, // near-duplicate of column 0
			r.NormFloat64(),          // independent
		}
	}
	return obs
}

func TestDecomposeInsufficientRows(t *testing.T) {
	assert.Nil(t, Decompose(syntheticObs(29, 1), []string{"A", "B", "C"}, 3))
	assert.NotNil(t, Decompose(syntheticObs(30, 1), []string{"A", "B", "C"}, 3))
}

func TestDecomposeTooFewAssets(t *testing.T) {
	obs := make([][]float64, 40)
	r := rand.New(rand.NewSource(2))
	for i := range obs {
		obs[i] = []float64{r.NormFloat64()}
	}
	assert.Nil(t, Decompose(obs, []string{"A"}, 3))
}

func TestDecomposeDropsNaNRows(t *testing.T) {
	obs := syntheticObs(35, 3)
	for i := 0; i < 5; i++ {
		obs[i][1] = math.NaN()
	}
	assert.NotNil(t, Decompose(obs, []string{"A", "B", "C"}, 3))

	obs[5][0] = math.NaN() // 29 clean rows left
	assert.Nil(t, Decompose(obs, []string{"A", "B", "C"}, 3))
}

func TestDecomposeStructure(t *testing.T) {
	res := Decompose(syntheticObs(200, 4), []string{"A", "B", "C"}, 3)
	require.NotNil(t, res)

	assert.Equal(t, 3, res.NAssets)
	require.Len(t, res.Eigenvalues, 3)
	for i := 1; i < len(res.Eigenvalues); i++ {
		assert.GreaterOrEqual(t, res.Eigenvalues[i-1], res.Eigenvalues[i])
		assert.GreaterOrEqual(t, res.Eigenvalues[i], 0.0)
	}

	require.Len(t, res.VarianceExplained, 3)
	require.Len(t, res.CumulativeVariance, 3)
	assert.InDelta(t, 1.0, res.CumulativeVariance[2], 1e-9)
	for i := 1; i < 3; i++ {
		assert.GreaterOrEqual(t, res.CumulativeVariance[i], res.CumulativeVariance[i-1])
	}

	// two near-duplicate columns concentrate variance on PC1
	assert.Greater(t, res.VarianceExplained[0], 0.5)

	require.Len(t, res.Loadings, 3)
	for _, row := range res.Loadings {
		assert.Len(t, row, 3)
	}
}

func TestDecomposeTruncatesToAssetCount(t *testing.T) {
	res := Decompose(syntheticObs(100, 5), []string{"A", "B", "C"}, 10)
	require.NotNil(t, res)

	assert.Len(t, res.VarianceExplained, 3)
	assert.Len(t, res.Loadings[0], 3)
}

func TestDecomposePerfectCorrelation(t *testing.T) {
	obs := make([][]float64, 60)
	r := rand.New(rand.NewSource(6))
	for i := range obs {
		z := r.NormFloat64()
		obs[i] = []float64{z, z}
	}

	res := Decompose(obs, []string{"A", "B"}, 2)
	require.NotNil(t, res)

	assert.InDelta(t, 2.0, res.Eigenvalues[0], 1e-9)
	assert.InDelta(t, 0.0, res.Eigenvalues[1], 1e-9)
	assert.InDelta(t, 1.0, res.VarianceExplained[0], 1e-9)
	assert.InDelta(t, 1.0, EffectiveDimensionality(res.Eigenvalues), 1e-9)
}

func TestEffectiveDimensionality(t *testing.T) {
	assert.InDelta(t, 5.0, EffectiveDimensionality([]float64{1, 1, 1, 1, 1}), 0.01)
	assert.Less(t, EffectiveDimensionality([]float64{10, 0.01, 0.01, 0.01}), 1.5)
	assert.Equal(t, 0.0, EffectiveDimensionality([]float64{0, 0, 0}))
	assert.Equal(t, 0.0, EffectiveDimensionality(nil))
	assert.InDelta(t, 1.0, EffectiveDimensionality([]float64{2}), 1e-12)
	// negative eigenvalues are clipped before the ratio
	assert.InDelta(t, 1.0, EffectiveDimensionality([]float64{3, -1}), 1e-12)
}

func TestDetectRegimeBoundaries(t *testing.T) {
	assert.Equal(t, models.PCARegimeNormal, DetectRegime(0.60, 3.0, 0.60, 3.0))
	assert.Equal(t, models.PCARegimeCollapse, DetectRegime(0.61, 3.0, 0.60, 3.0))
	assert.Equal(t, models.PCARegimeCollapse, DetectRegime(0.30, 2.99, 0.60, 3.0))
	assert.Equal(t, models.PCARegimeNormal, DetectRegime(0.30, 3.0, 0.60, 3.0))
}

func TestTopBottomLoadings(t *testing.T) {
	res := &models.PCAResult{
		Tickers: []string{"A", "B", "C", "D", "E"},
		Loadings: [][]float64{
			{0.9}, {0.5}, {0.1}, {-0.2}, {-0.7},
		},
	}

	ext := TopBottomLoadings(res, 0, 3)

	require.Len(t, ext.Top, 3)
	assert.Equal(t, "A", ext.Top[0].Ticker)
	assert.Equal(t, "B", ext.Top[1].Ticker)
	assert.Equal(t, "C", ext.Top[2].Ticker)

	require.Len(t, ext.Bottom, 3)
	assert.Equal(t, "C", ext.Bottom[0].Ticker)
	assert.Equal(t, "D", ext.Bottom[1].Ticker)
	assert.Equal(t, "E", ext.Bottom[2].Ticker)
}
