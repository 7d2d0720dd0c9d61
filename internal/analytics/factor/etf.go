package factor

import (
	"fmt"

	"FXBrief/internal/analytics/pca"
	"FXBrief/internal/domain/markets"
	"FXBrief/internal/domain/models"
	domsvc "FXBrief/internal/domain/service"
	"FXBrief/pkg/logger"
)

// ETFConfig carries the cross-asset ETF decomposition parameters.
type ETFConfig struct {
	Window       int // aligned price rows fed to the PCA
	NComponents  int // retained components
	TopLoadings  int // entries per side in the loading extremes
	LabeledPCs   int // components that get a loading-extremes entry
	PC1Threshold float64
	DimThreshold float64
}

// DefaultETFConfig returns the standard daily-bar parameterization.
func DefaultETFConfig() ETFConfig {
	return ETFConfig{
		Window:       120,
		NComponents:  5,
		TopLoadings:  3,
		LabeledPCs:   3,
		PC1Threshold: 0.60,
		DimThreshold: 3.0,
	}
}

// ETFEngine decomposes the ETF universe; it keeps no state between calls.
type ETFEngine struct {
	cfg      ETFConfig
	universe markets.Universe
	log      *logger.Logger
}

func NewETFEngine(cfg ETFConfig, universe markets.Universe, log *logger.Logger) *ETFEngine {
	return &ETFEngine{cfg: cfg, universe: universe, log: log}
}

var _ domsvc.ETFFactorAnalyzer = (*ETFEngine)(nil)

// BuildReport aligns the ETF universe's daily closes and runs the PCA,
// reporting the strongest loadings of the leading components. Too few usable
// tickers or too little clean history yields no report.
func (e *ETFEngine) BuildReport(daily map[string]models.Bars) *models.ETFFactorReport {
	rets, kept := preparedReturns(daily, e.universe.ETFs, e.cfg.Window, false)
	if len(kept) < 3 {
		if e.log != nil {
			e.log.Warn("too few ETF series for the factor report",
				logger.Int("usable", len(kept)))
		}
		return nil
	}

	res := pca.Decompose(rets, kept, e.cfg.NComponents)
	if res == nil {
		if e.log != nil {
			e.log.Warn("ETF factor decomposition degenerate",
				logger.Int("rows", len(rets)),
				logger.Int("assets", len(kept)))
		}
		return nil
	}

	effDim := pca.EffectiveDimensionality(res.Eigenvalues)
	regime := pca.DetectRegime(res.VarianceExplained[0], effDim, e.cfg.PC1Threshold, e.cfg.DimThreshold)

	k := len(res.VarianceExplained)
	labeled := e.cfg.LabeledPCs
	if labeled > k {
		labeled = k
	}
	top := make(map[string]models.LoadingExtremes, labeled)
	for c := 0; c < labeled; c++ {
		top[fmt.Sprintf("PC%d", c+1)] = pca.TopBottomLoadings(res, c, e.cfg.TopLoadings)
	}

	return &models.ETFFactorReport{
		PCA:          *res,
		EffectiveDim: effDim,
		Regime:       regime,
		Window:       e.cfg.Window,
		TopLoadings:  top,
	}
}
