// Package pca implements the eigendecomposition core shared by the FX and
// ETF factor engines.
package pca

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"FXBrief/internal/domain/models"
)

// minObservations is the smallest number of complete observation rows a
// correlation matrix may be estimated from.
const minObservations = 30

// Decompose runs PCA on the Pearson correlation matrix of obs (rows are
// observations, columns are assets in tickers order). Rows containing NaN
// are dropped first. Returns nil when fewer than minObservations clean rows
// or fewer than two assets remain, or when the matrix is numerically
// degenerate. Eigenvalues come back descending with negatives clipped to
// zero; VarianceExplained, CumulativeVariance and Loadings are truncated to
// nComponents.
func Decompose(obs [][]float64, tickers []string, nComponents int) *models.PCAResult {
	clean := dropIncompleteRows(obs)
	n := len(tickers)
	if len(clean) < minObservations || n < 2 {
		return nil
	}

	data := make([]float64, 0, len(clean)*n)
	for _, row := range clean {
		data = append(data, row...)
	}
	x := mat.NewDense(len(clean), n, data)
	corr := mat.NewSymDense(n, nil)
	stat.CorrelationMatrix(corr, x, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if math.IsNaN(corr.At(i, j)) {
				return nil
			}
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(corr, true) {
		return nil
	}
	asc := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// descending spectrum, negatives clipped
	eigenvalues := make([]float64, n)
	for i := range asc {
		v := asc[n-1-i]
		if v < 0 {
			v = 0
		}
		eigenvalues[i] = v
	}
	total := floats.Sum(eigenvalues)
	if total == 0 {
		return nil
	}

	k := nComponents
	if k > n {
		k = n
	}
	varExplained := make([]float64, k)
	cumulative := make([]float64, k)
	running := 0.0
	for i := 0; i < k; i++ {
		varExplained[i] = eigenvalues[i] / total
		running += varExplained[i]
		cumulative[i] = running
	}

	loadings := make([][]float64, n)
	for j := 0; j < n; j++ {
		row := make([]float64, k)
		for c := 0; c < k; c++ {
			row[c] = vecs.At(j, n-1-c)
		}
		loadings[j] = row
	}

	return &models.PCAResult{
		Tickers:            append([]string(nil), tickers...),
		NAssets:            n,
		Eigenvalues:        eigenvalues,
		VarianceExplained:  varExplained,
		CumulativeVariance: cumulative,
		Loadings:           loadings,
	}
}

func dropIncompleteRows(obs [][]float64) [][]float64 {
	clean := make([][]float64, 0, len(obs))
rows:
	for _, row := range obs {
		for _, v := range row {
			if math.IsNaN(v) {
				continue rows
			}
		}
		clean = append(clean, row)
	}
	return clean
}

// EffectiveDimensionality is the eigenvalue participation ratio
// (sum lambda)^2 / sum(lambda^2), with negatives clipped. A spectrum of m
// equal eigenvalues scores exactly m; full concentration in one scores 1.
func EffectiveDimensionality(eigenvalues []float64) float64 {
	var sum, sumSq float64
	for _, v := range eigenvalues {
		if v < 0 {
			v = 0
		}
		sum += v
		sumSq += v * v
	}
	if sumSq == 0 {
		return 0.0
	}
	return sum * sum / sumSq
}

// DetectRegime labels the eigenvalue structure. Variance concentrating past
// pc1Threshold in the first component, or the participation ratio dropping
// below dimThreshold, flags a risk-off dimensionality collapse. Both
// comparisons are strict.
func DetectRegime(pc1Share, effDim, pc1Threshold, dimThreshold float64) string {
	if pc1Share > pc1Threshold || effDim < dimThreshold {
		return models.PCARegimeCollapse
	}
	return models.PCARegimeNormal
}

// TopBottomLoadings returns the n strongest positive and n strongest negative
// loadings of one component, both sorted descending by value.
func TopBottomLoadings(res *models.PCAResult, component, n int) models.LoadingExtremes {
	entries := make([]models.LoadingEntry, 0, len(res.Tickers))
	for j, ticker := range res.Tickers {
		if component >= len(res.Loadings[j]) {
			continue
		}
		entries = append(entries, models.LoadingEntry{Ticker: ticker, Value: res.Loadings[j][component]})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Value > entries[j].Value })

	if n > len(entries) {
		n = len(entries)
	}
	top := make([]models.LoadingEntry, n)
	copy(top, entries[:n])
	bottom := make([]models.LoadingEntry, n)
	copy(bottom, entries[len(entries)-n:])
	return models.LoadingExtremes{Top: top, Bottom: bottom}
}
