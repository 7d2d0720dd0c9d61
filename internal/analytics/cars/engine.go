// Package cars implements the cross-asset regime-switching model: weekly
// z-scores of equity, bond and commodity proxies gate between a defensive
// shock book and a factor-correlation ranking of currencies.
package cars

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"FXBrief/internal/analytics/indicators"
	"FXBrief/internal/domain/markets"
	"FXBrief/internal/domain/models"
	domsvc "FXBrief/internal/domain/service"
	"FXBrief/pkg/logger"
	"FXBrief/pkg/util"
)

// Performing-factor names as they appear in reports.
const (
	FactorEquity    = "equity"
	FactorRates     = "rates"
	FactorCommodity = "commodity"
	FactorDefensive = "defensive"
)

// Config carries the regime thresholds. Shock cutoffs apply to the rounded
// weekly z-scores, so the report always agrees with its own regime call.
type Config struct {
	ZWeeks            int     // z-score window in weeks
	CorrWeeks         int     // correlation window in weeks
	ShockEquityZ      float64 // equity z below this is a shock
	ShockBondZ        float64 // bond z below this is a shock
	ShockCommodityZ   float64 // commodity z below this is a shock
	CommodityOverlayZ float64 // abs commodity z that arms the overlay
	TopN              int     // currencies long/short per side
	PerformingFactor  string  // factor driving the normal-regime ranking
}

// DefaultConfig returns the standard weekly parameterization.
func DefaultConfig() Config {
	return Config{
		ZWeeks:            52,
		CorrWeeks:         52,
		ShockEquityZ:      -1.0,
		ShockBondZ:        -1.0,
		ShockCommodityZ:   -2.0,
		CommodityOverlayZ: 2.0,
		TopN:              3,
		PerformingFactor:  FactorRates,
	}
}

// Engine ranks the configured FX universe; it keeps no state between calls.
type Engine struct {
	cfg      Config
	universe markets.Universe
	log      *logger.Logger
}

func NewEngine(cfg Config, universe markets.Universe, log *logger.Logger) *Engine {
	return &Engine{cfg: cfg, universe: universe, log: log}
}

var _ domsvc.RegimeClassifier = (*Engine)(nil)

// ClassifyRegime computes the three weekly z-scores over the given window and
// applies the shock cutoffs. Proxies with too little history score zero and
// never trip a shock on their own.
func (e *Engine) ClassifyRegime(equity, bonds, commodities models.Bars, weeks int) models.CARSRegime {
	eqZ := weeklyZ(equity, weeks)
	bdZ := weeklyZ(bonds, weeks)
	cmZ := weeklyZ(commodities, weeks)

	shock := eqZ < e.cfg.ShockEquityZ || bdZ < e.cfg.ShockBondZ || cmZ < e.cfg.ShockCommodityZ
	label := models.RegimeNormal
	if shock {
		label = models.RegimeShock
	}
	return models.CARSRegime{
		IsShock:    shock,
		EquityZ:    eqZ,
		BondZ:      bdZ,
		CommodityZ: cmZ,
		Label:      label,
	}
}

// BuildReport classifies the regime and ranks every configured currency by
// its rolling weekly correlation to the three factors. A missing proxy makes
// the whole report undefined.
func (e *Engine) BuildReport(fx map[string]models.Bars, equity, bonds, commodities models.Bars) *models.CARSReport {
	if len(equity) == 0 || len(bonds) == 0 || len(commodities) == 0 {
		if e.log != nil {
			e.log.Warn("missing cross-asset proxy bars, skipping regime report",
				logger.Int("equity_bars", len(equity)),
				logger.Int("bond_bars", len(bonds)),
				logger.Int("commodity_bars", len(commodities)))
		}
		return nil
	}

	regime := e.ClassifyRegime(equity, bonds, commodities, e.cfg.ZWeeks)

	eqW := weeklyReturns(equity)
	bdW := weeklyReturns(bonds)
	cmW := weeklyReturns(commodities)

	pairs := e.universe.AllFXPairs()
	n := len(pairs)
	eqC := make([]float64, n)
	bdC := make([]float64, n)
	cmC := make([]float64, n)
	currencies := make([]string, n)
	for i, pair := range pairs {
		currencies[i] = markets.CurrencyOf(pair)
		pw := usdReturns(pair, fx[pair])
		eqC[i] = e.rollingCorr(pw, eqW)
		bdC[i] = e.rollingCorr(pw, bdW)
		cmC[i] = e.rollingCorr(pw, cmW)
	}

	eqR := descendingRanks(eqC)
	bdR := descendingRanks(bdC)
	cmR := descendingRanks(cmC)

	rankings := make([]models.FactorRanking, n)
	for i := range pairs {
		rankings[i] = models.FactorRanking{
			Currency:      currencies[i],
			EquityCorr:    eqC[i],
			RatesCorr:     bdC[i],
			CommodityCorr: cmC[i],
			EquityRank:    eqR[i],
			RatesRank:     bdR[i],
			CommodityRank: cmR[i],
		}
	}

	report := &models.CARSReport{Regime: regime, Rankings: rankings}
	if regime.IsShock {
		report.PerformingFactor = FactorDefensive
		report.Signals = e.shockSignals(rankings)
	} else {
		report.PerformingFactor = e.cfg.PerformingFactor
		report.Signals = e.rankedSignals(rankings, regime.CommodityZ)
	}
	return report
}

// shockSignals is the defensive book: long safe havens, short everything else.
func (e *Engine) shockSignals(rankings []models.FactorRanking) []models.CARSSignal {
	out := make([]models.CARSSignal, 0, len(rankings))
	for _, r := range rankings {
		sig := models.SignalBearish
		if e.universe.IsSafeHaven(r.Currency) {
			sig = models.SignalBullish
		}
		out = append(out, models.CARSSignal{
			Currency:      r.Currency,
			Signal:        sig,
			EquityRank:    r.EquityRank,
			RatesRank:     r.RatesRank,
			CommodityRank: r.CommodityRank,
		})
	}
	return out
}

// rankedSignals orders currencies by the performing factor's rank, longs the
// top slice and shorts the bottom slice, then applies the commodity overlay
// to whatever stayed neutral.
func (e *Engine) rankedSignals(rankings []models.FactorRanking, commodityZ float64) []models.CARSSignal {
	ordered := make([]models.FactorRanking, len(rankings))
	copy(ordered, rankings)
	sort.SliceStable(ordered, func(a, b int) bool {
		return factorRank(ordered[a], e.cfg.PerformingFactor) < factorRank(ordered[b], e.cfg.PerformingFactor)
	})

	out := make([]models.CARSSignal, len(ordered))
	for i, r := range ordered {
		sig := models.SignalNone
		switch {
		case i < e.cfg.TopN:
			sig = models.SignalBullish
		case i >= len(ordered)-e.cfg.TopN && i >= e.cfg.TopN:
			sig = models.SignalBearish
		}
		out[i] = models.CARSSignal{
			Currency:      r.Currency,
			Signal:        sig,
			EquityRank:    r.EquityRank,
			RatesRank:     r.RatesRank,
			CommodityRank: r.CommodityRank,
		}
	}

	if math.Abs(commodityZ) > e.cfg.CommodityOverlayZ {
		for i := range out {
			if out[i].Signal != models.SignalNone || out[i].CommodityRank > e.cfg.TopN {
				continue
			}
			if commodityZ > 0 {
				out[i].Signal = models.SignalBullish
			} else {
				out[i].Signal = models.SignalBearish
			}
		}
	}
	return out
}

// weeklySeries pairs Friday-anchored week ends with that week's return.
type weeklySeries struct {
	times []time.Time
	rets  []float64
}

func weeklyReturns(bars models.Bars) weeklySeries {
	times, closes := indicators.WeeklyLast(bars.Times(), bars.Closes())
	rets := indicators.SimpleReturns(closes)
	if rets == nil {
		return weeklySeries{}
	}
	return weeklySeries{times: times[1:], rets: rets}
}

// usdReturns is the pair's weekly return series flipped onto the non-USD
// currency's perspective. Missing bars yield an empty series.
func usdReturns(pair string, bars models.Bars) weeklySeries {
	if len(bars) == 0 {
		return weeklySeries{}
	}
	w := weeklyReturns(bars)
	if markets.ReturnSign(pair) < 0 {
		for i := range w.rets {
			w.rets[i] = -w.rets[i]
		}
	}
	return w
}

// weeklyZ is the latest weekly return's z-score over the window, rounded to
// two decimals. Series shorter than the window score zero.
func weeklyZ(bars models.Bars, weeks int) float64 {
	w := weeklyReturns(bars)
	if len(w.rets) < weeks {
		return 0.0
	}
	z := indicators.ZScore(w.rets, weeks)
	last := z[len(z)-1]
	if math.IsNaN(last) {
		return 0.0
	}
	return util.Round(last, 2)
}

// rollingCorr correlates the two series over the last CorrWeeks common weeks.
// Too short an overlap, or a degenerate window, reads as no relationship.
func (e *Engine) rollingCorr(x, y weeklySeries) float64 {
	idx := make(map[int64]int, len(y.times))
	for i, t := range y.times {
		idx[t.Unix()] = i
	}
	xs := make([]float64, 0, len(x.times))
	ys := make([]float64, 0, len(x.times))
	for i, t := range x.times {
		if j, ok := idx[t.Unix()]; ok {
			xs = append(xs, x.rets[i])
			ys = append(ys, y.rets[j])
		}
	}
	if len(xs) <= e.cfg.CorrWeeks {
		return 0.0
	}
	xs = xs[len(xs)-e.cfg.CorrWeeks:]
	ys = ys[len(ys)-e.cfg.CorrWeeks:]
	c := stat.Correlation(xs, ys, nil)
	if math.IsNaN(c) {
		return 0.0
	}
	return util.Round(c, 3)
}

// descendingRanks assigns 1..N by descending value; ties keep input order so
// the result is always a permutation.
func descendingRanks(vals []float64) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return vals[idx[a]] > vals[idx[b]] })
	out := make([]int, len(vals))
	for pos, i := range idx {
		out[i] = pos + 1
	}
	return out
}

func factorRank(r models.FactorRanking, factor string) int {
	switch factor {
	case FactorEquity:
		return r.EquityRank
	case FactorCommodity:
		return r.CommodityRank
	default:
		return r.RatesRank
	}
}
