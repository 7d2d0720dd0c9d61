// Package technical builds the per-pair positioning matrix from daily bars.
package technical

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"FXBrief/internal/analytics/indicators"
	"FXBrief/internal/domain/models"
	domsvc "FXBrief/internal/domain/service"
	"FXBrief/pkg/logger"
)

// maPairs are the short/long SMA window pairs behind the moving-average
// agreement score.
var maPairs = [...][2]int{
	{5, 20}, {5, 50}, {5, 100}, {5, 200},
	{10, 20}, {10, 50}, {10, 100}, {10, 200},
	{15, 50}, {15, 100}, {15, 200},
	{20, 50}, {20, 100}, {20, 200},
	{25, 50}, {25, 100}, {25, 200},
	{30, 50}, {30, 100}, {30, 200},
	{35, 50}, {35, 100}, {35, 200},
	{40, 50}, {40, 100}, {40, 200},
	{50, 100}, {50, 200},
}

// smaLevels are the moving averages considered support/resistance candidates.
var smaLevels = [...]int{50, 100, 200}

// Config carries the positioning thresholds.
type Config struct {
	MinBars           int     // bars required for any scoring at all
	TrendHistoryBars  int     // daily bars required before UD/RS percentiles carry signal
	MAAUpper          float64 // agreement score above which the trend reads up
	MAALower          float64 // agreement score below which the trend reads down
	UDWindow          int     // log-return window of the downside-volatility share
	UDLookback        int     // percentile history for the UD score
	RSWeeklyWindow    int     // weekly skew window
	RSPercentileWeeks int     // percentile history for the RS score
	ExtremeHigh       float64
	ExtremeLow        float64
	MidBand           float64
	ADXPeriod         int
	ADXRangeMax       float64 // below: range-bound
	ADXTrendMin       float64 // below: transition, above: trending
	BollingerWindow   int
	BollingerStd      float64
	SRLookbacks       []int // range lookbacks feeding support/resistance
}

// DefaultConfig returns the standard daily-bar parameterization.
func DefaultConfig() Config {
	return Config{
		MinBars:           50,
		TrendHistoryBars:  252,
		MAAUpper:          60,
		MAALower:          40,
		UDWindow:          21,
		UDLookback:        252,
		RSWeeklyWindow:    26,
		RSPercentileWeeks: 52,
		ExtremeHigh:       80,
		ExtremeLow:        20,
		MidBand:           50,
		ADXPeriod:         14,
		ADXRangeMax:       20,
		ADXTrendMin:       25,
		BollingerWindow:   20,
		BollingerStd:      2.0,
		SRLookbacks:       []int{252, 504},
	}
}

// Engine scores one pair at a time; it keeps no state between calls.
type Engine struct {
	cfg Config
	log *logger.Logger
}

func NewEngine(cfg Config, log *logger.Logger) *Engine {
	return &Engine{cfg: cfg, log: log}
}

var _ domsvc.TechnicalAnalyzer = (*Engine)(nil)

// AssessPair builds the positioning row for a pair. Fewer than MinBars daily
// bars yields a not-applicable row rather than an error.
func (e *Engine) AssessPair(pair string, daily models.Bars) models.TechnicalRow {
	if len(daily) < e.cfg.MinBars {
		if e.log != nil {
			e.log.Warn("insufficient daily bars for technical matrix",
				logger.String("pair", pair),
				logger.Int("bars", len(daily)),
				logger.Int("min_bars", e.cfg.MinBars))
		}
		return naRow(pair)
	}

	closes := daily.Closes()
	spot := closes[len(closes)-1]
	maa := e.maaScore(closes)
	ud := e.udPercentile(closes)
	rs := e.rsPercentile(daily)

	row := models.TechnicalRow{
		Pair:         pair,
		Spot:         &spot,
		TrendArrow:   e.trendArrow(maa),
		Signal:       e.positioningSignal(maa, ud, rs),
		MAAScore:     &maa,
		UDPercentile: &ud,
		RSPercentile: &rs,
	}

	adx, plus, minus := indicators.ADXDMI(daily.Highs(), daily.Lows(), closes, e.cfg.ADXPeriod)
	row.ADXTrend = e.adxTrendLabel(last(adx), last(plus), last(minus))

	_, upper, lower := indicators.BollingerBands(closes, e.cfg.BollingerWindow, e.cfg.BollingerStd)
	row.Bollinger = bollingerLabel(spot, last(upper), last(lower))

	row.NextSupport, row.NextResistance = e.supportResistance(daily, spot)
	return row
}

func naRow(pair string) models.TechnicalRow {
	return models.TechnicalRow{
		Pair:       pair,
		TrendArrow: models.SignalNA,
		Signal:     models.SignalNA,
		ADXTrend:   models.SignalNA,
		Bollinger:  models.SignalNA,
	}
}

// maaScore is the share (0..100) of short/long SMA pairs in bullish
// alignment. Pairs whose long window exceeds the history are left out; no
// valid pair reads a neutral 50.
func (e *Engine) maaScore(closes []float64) float64 {
	cache := make(map[int]float64, 16)
	sma := func(w int) float64 {
		if v, ok := cache[w]; ok {
			return v
		}
		v := lastSMA(closes, w)
		cache[w] = v
		return v
	}

	valid, bullish := 0, 0
	for _, p := range maPairs {
		short, long := sma(p[0]), sma(p[1])
		if math.IsNaN(short) || math.IsNaN(long) {
			continue
		}
		valid++
		if short > long {
			bullish++
		}
	}
	if valid == 0 {
		return 50.0
	}
	return float64(bullish) / float64(valid) * 100.0
}

func (e *Engine) trendArrow(maa float64) string {
	switch {
	case maa > e.cfg.MAAUpper:
		return models.TrendUp
	case maa < e.cfg.MAALower:
		return models.TrendDown
	default:
		return models.TrendSideways
	}
}

// udPercentile ranks today's downside-volatility share against the trailing
// year of daily readings. Histories shorter than TrendHistoryBars are
// uninformative and pin to the 50th percentile.
func (e *Engine) udPercentile(closes []float64) float64 {
	if len(closes) < e.cfg.TrendHistoryBars {
		return 50.0
	}
	raw := downVolShare(closes, e.cfg.UDWindow)
	current := last(raw)
	if math.IsNaN(current) {
		return 50.0
	}
	history := raw
	if len(raw) > e.cfg.UDLookback {
		history = raw[len(raw)-e.cfg.UDLookback:]
	}
	return indicators.PercentileRank(current, history)
}

// downVolShare is, per bar, the annualized downside share of total
// volatility over the trailing window of log returns.
func downVolShare(closes []float64, window int) []float64 {
	rets := indicators.LogReturns(closes)
	out := indicators.NaNs(len(closes))
	for i := window; i < len(closes); i++ {
		var up, down []float64
		for _, r := range rets[i-window+1 : i+1] {
			if math.IsNaN(r) {
				continue
			}
			if r > 0 {
				up = append(up, r)
			} else if r < 0 {
				down = append(down, r)
			}
		}
		upVol := sideVol(up)
		downVol := sideVol(down)
		if total := upVol + downVol; total > 0 {
			out[i] = downVol / total * 100.0
		} else {
			out[i] = 50.0
		}
	}
	return out
}

// sideVol annualizes one side of the return distribution; a side with fewer
// than two observations carries no volatility signal.
func sideVol(rets []float64) float64 {
	if len(rets) < 2 {
		return 0.0
	}
	return stat.StdDev(rets, nil) * math.Sqrt(252)
}

// rsPercentile ranks the current rolling skew of weekly log returns against
// the trailing year of weekly skews.
func (e *Engine) rsPercentile(daily models.Bars) float64 {
	if len(daily) < e.cfg.TrendHistoryBars {
		return 50.0
	}
	_, weekly := indicators.WeeklyLast(daily.Times(), daily.Closes())
	if len(weekly) < e.cfg.RSWeeklyWindow+e.cfg.RSPercentileWeeks {
		return 50.0
	}
	skews := indicators.RollingSkew(indicators.LogReturns(weekly), e.cfg.RSWeeklyWindow)
	current := last(skews)
	if math.IsNaN(current) {
		return 50.0
	}
	history := skews
	if len(skews) > e.cfg.RSPercentileWeeks {
		history = skews[len(skews)-e.cfg.RSPercentileWeeks:]
	}
	return indicators.PercentileRank(current, history)
}

// positioningSignal combines trend agreement with the two percentile scores.
// A strong uptrend with stretched downside readings is a crowded long about
// to fade; the mirrored branches read a downtrend the same way.
func (e *Engine) positioningSignal(maa, ud, rs float64) string {
	c := e.cfg
	switch {
	case maa > c.MAAUpper:
		switch {
		case ud > c.ExtremeHigh && rs > c.ExtremeHigh:
			return models.SignalBearish
		case ud < c.MidBand && rs < c.MidBand:
			return models.SignalBullish
		case ud > c.ExtremeHigh || rs > c.ExtremeHigh:
			return models.SignalSlBearish
		case ud < c.MidBand || rs < c.MidBand:
			return models.SignalSlBullish
		}
	case maa < c.MAALower:
		switch {
		case ud < c.ExtremeLow && rs < c.ExtremeLow:
			return models.SignalBullish
		case ud > c.MidBand && rs > c.MidBand:
			return models.SignalBearish
		case ud < c.ExtremeLow || rs < c.ExtremeLow:
			return models.SignalSlBullish
		case ud > c.MidBand || rs > c.MidBand:
			return models.SignalSlBearish
		}
	}
	return models.SignalNone
}

func (e *Engine) adxTrendLabel(adx, plus, minus float64) string {
	switch {
	case math.IsNaN(adx):
		return models.SignalNA
	case adx < e.cfg.ADXRangeMax:
		return models.ADXRange
	case adx < e.cfg.ADXTrendMin:
		return models.ADXTransition
	case plus > minus:
		return models.ADXUptrend
	default:
		return models.ADXDowntrend
	}
}

func bollingerLabel(spot, upper, lower float64) string {
	switch {
	case math.IsNaN(upper) || math.IsNaN(lower):
		return models.BollingerNone
	case spot > upper:
		return models.BollingerUpper
	case spot < lower:
		return models.BollingerLower
	default:
		return models.BollingerNone
	}
}

// supportResistance picks the nearest moving-average, range-extreme and
// fibonacci candidates strictly below and above spot. A side with no
// candidate stays nil.
func (e *Engine) supportResistance(daily models.Bars, spot float64) (support, resistance *float64) {
	closes := daily.Closes()
	candidates := make([]float64, 0, len(smaLevels)+5*len(e.cfg.SRLookbacks))
	for _, w := range smaLevels {
		if v := lastSMA(closes, w); !math.IsNaN(v) {
			candidates = append(candidates, v)
		}
	}

	highs := daily.Highs()
	lows := daily.Lows()
	for _, lookback := range e.cfg.SRLookbacks {
		n := lookback
		if n > len(daily) {
			n = len(daily)
		}
		hi := floats.Max(highs[len(highs)-n:])
		lo := floats.Min(lows[len(lows)-n:])
		fib382, fib500, fib618 := indicators.FibLevels(hi, lo)
		candidates = append(candidates, hi, lo, fib382, fib500, fib618)
	}

	for _, c := range candidates {
		if c < spot && (support == nil || c > *support) {
			v := c
			support = &v
		}
		if c > spot && (resistance == nil || c < *resistance) {
			v := c
			resistance = &v
		}
	}
	return support, resistance
}

func lastSMA(closes []float64, window int) float64 {
	if window <= 0 || len(closes) < window {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range closes[len(closes)-window:] {
		sum += v
	}
	return sum / float64(window)
}

func last(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return xs[len(xs)-1]
}
