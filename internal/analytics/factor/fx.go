package factor

import (
	"math"

	"FXBrief/internal/analytics/indicators"
	"FXBrief/internal/analytics/pca"
	"FXBrief/internal/domain/markets"
	"FXBrief/internal/domain/models"
	domsvc "FXBrief/internal/domain/service"
	"FXBrief/pkg/logger"
)

// Factor labels for the G10 decomposition.
const (
	LabelDollar   = "Dollar Factor"
	LabelMarket   = "Market Factor"
	LabelCarry    = "Carry Factor"
	LabelRegional = "Regional / Momentum"
)

// FXConfig carries the G10 decomposition parameters.
type FXConfig struct {
	Window        int     // aligned price rows fed to the PCA
	ZWindow       int     // rolling window of the PC score z-scores
	NComponents   int     // retained components
	DominantShare float64 // same-sign PC1 loading share that reads as the dollar factor
	PC1Threshold  float64 // PC1 variance share above which the regime collapses
	DimThreshold  float64 // participation ratio below which the regime collapses
}

// DefaultFXConfig returns the standard daily-bar parameterization.
func DefaultFXConfig() FXConfig {
	return FXConfig{
		Window:        120,
		ZWindow:       60,
		NComponents:   3,
		DominantShare: 0.6,
		PC1Threshold:  0.60,
		DimThreshold:  3.0,
	}
}

// FXEngine decomposes G10 FX returns; it keeps no state between calls.
type FXEngine struct {
	cfg      FXConfig
	universe markets.Universe
	log      *logger.Logger
}

func NewFXEngine(cfg FXConfig, universe markets.Universe, log *logger.Logger) *FXEngine {
	return &FXEngine{cfg: cfg, universe: universe, log: log}
}

var _ domsvc.FXFactorAnalyzer = (*FXEngine)(nil)

// BuildReport aligns the G10 pairs' daily closes, runs the PCA and projects
// the latest returns onto the retained components. Too few usable pairs or
// too little clean history yields no report.
func (e *FXEngine) BuildReport(daily map[string]models.Bars) *models.FXFactorReport {
	rets, kept := preparedReturns(daily, e.universe.G10Pairs, e.cfg.Window, true)
	if len(kept) < 3 {
		if e.log != nil {
			e.log.Warn("too few G10 series for the FX factor report",
				logger.Int("usable", len(kept)))
		}
		return nil
	}

	res := pca.Decompose(rets, kept, e.cfg.NComponents)
	if res == nil {
		if e.log != nil {
			e.log.Warn("FX factor decomposition degenerate",
				logger.Int("rows", len(rets)),
				logger.Int("assets", len(kept)))
		}
		return nil
	}

	effDim := pca.EffectiveDimensionality(res.Eigenvalues)
	regime := pca.DetectRegime(res.VarianceExplained[0], effDim, e.cfg.PC1Threshold, e.cfg.DimThreshold)

	scores := projectScores(rets, res)
	k := len(res.VarianceExplained)
	pcScores := make([]float64, k)
	pcZ := make([]float64, k)
	for c := 0; c < k; c++ {
		series := make([]float64, len(scores))
		for i := range scores {
			series[i] = scores[i][c]
		}
		pcScores[c] = series[len(series)-1]
		z := indicators.ZScore(series, e.cfg.ZWindow)
		if last := z[len(z)-1]; !math.IsNaN(last) {
			pcZ[c] = last
		}
	}

	labels := make(map[string]string, k)
	if k >= 1 {
		label := LabelMarket
		if dominantShare(res.Loadings, 0) > e.cfg.DominantShare {
			label = LabelDollar
		}
		labels["PC1"] = label
	}
	if k >= 2 {
		labels["PC2"] = LabelCarry
	}
	if k >= 3 {
		labels["PC3"] = LabelRegional
	}

	return &models.FXFactorReport{
		PCA:          *res,
		EffectiveDim: effDim,
		Regime:       regime,
		Window:       e.cfg.Window,
		PCScores:     pcScores,
		PCZScores:    pcZ,
		FactorLabels: labels,
	}
}

// projectScores multiplies the column-standardized returns by the retained
// loadings, one score row per return row.
func projectScores(rets [][]float64, res *models.PCAResult) [][]float64 {
	z := zScoreColumns(rets)
	k := len(res.VarianceExplained)
	out := make([][]float64, len(z))
	for i := range z {
		row := make([]float64, k)
		for c := 0; c < k; c++ {
			var s float64
			for j := range z[i] {
				s += z[i][j] * res.Loadings[j][c]
			}
			row[c] = s
		}
		out[i] = row
	}
	return out
}

// dominantShare is the larger same-sign share of one component's loadings.
func dominantShare(loadings [][]float64, component int) float64 {
	pos, neg := 0, 0
	for _, row := range loadings {
		if component >= len(row) {
			continue
		}
		switch v := row[component]; {
		case v > 0:
			pos++
		case v < 0:
			neg++
		}
	}
	if len(loadings) == 0 {
		return 0
	}
	m := pos
	if neg > m {
		m = neg
	}
	return float64(m) / float64(len(loadings))
}
