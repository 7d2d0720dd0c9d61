// Package event classifies pairs into volatility event scenarios: spot swings
// read against realized-vol and VIX shifts over the trailing week.
package event

import (
	"math"

	"FXBrief/internal/analytics/indicators"
	"FXBrief/internal/domain/markets"
	"FXBrief/internal/domain/models"
	domsvc "FXBrief/internal/domain/service"
	"FXBrief/pkg/logger"
	"FXBrief/pkg/util"
)

// Config carries the scenario thresholds. Changes are measured against the
// value ChangeLag bars back, so the default lag of 6 compares against the
// close one trading week ago.
type Config struct {
	MinBars       int
	RV1WWindow    int
	RV1MWindow    int
	ChangeLag     int
	SpotThreshold float64 // abs spot move (%) that makes a swing notable
	RVRise        float64 // 1m vol rise confirming a bearish continuation
	RVSharpRise   float64 // 1m vol spike that reads as capitulation
	RVFall        float64 // 1m vol drop signalling compression
}

// DefaultConfig returns the standard daily-bar parameterization.
func DefaultConfig() Config {
	return Config{
		MinBars:       30,
		RV1WWindow:    5,
		RV1MWindow:    21,
		ChangeLag:     6,
		SpotThreshold: 1.0,
		RVRise:        0.5,
		RVSharpRise:   1.0,
		RVFall:        -0.2,
	}
}

// Engine classifies one pair at a time; it keeps no state between calls.
type Engine struct {
	cfg Config
	log *logger.Logger
}

func NewEngine(cfg Config, log *logger.Logger) *Engine {
	return &Engine{cfg: cfg, log: log}
}

var _ domsvc.EventAnalyzer = (*Engine)(nil)

// ClassifyPair builds the event row for a pair. Fewer than MinBars daily bars
// yields a not-applicable row rather than an error. The VIX series is
// optional: when it is too short the VIX confirmation legs are treated as
// neutral.
func (e *Engine) ClassifyPair(pair string, daily models.Bars, vix models.Bars) models.EventRow {
	if len(daily) < e.cfg.MinBars {
		if e.log != nil {
			e.log.Warn("insufficient daily bars for event matrix",
				logger.String("pair", pair),
				logger.Int("bars", len(daily)),
				logger.Int("min_bars", e.cfg.MinBars))
		}
		return models.EventRow{Pair: pair, Signal: models.SignalNA}
	}

	closes := daily.Closes()
	n := len(closes)
	lag := e.cfg.ChangeLag

	rv1w := indicators.RealizedVol(closes, e.cfg.RV1WWindow)
	rv1m := indicators.RealizedVol(closes, e.cfg.RV1MWindow)
	rv1wNow, rv1wChg := nowAndChange(rv1w, lag)
	rv1mNow, rv1mChg := nowAndChange(rv1m, lag)

	oldSpot := closes[0]
	if n >= lag {
		oldSpot = closes[n-lag]
	}
	newSpot := closes[n-1]
	spotRet := (newSpot/oldSpot - 1) * 100

	vixLevel := math.NaN()
	vixChg := 0.0
	if len(vix) >= lag {
		vc := vix.Closes()
		vixLevel = vc[len(vc)-1]
		vixChg = vc[len(vc)-1] - vc[len(vc)-lag]
	}

	retVsUSD := util.Round(spotRet, 2) * markets.ReturnSign(pair)

	return models.EventRow{
		Pair:          pair,
		OldSpot:       ptrOrNil(oldSpot),
		NewSpot:       ptrOrNil(newSpot),
		RV1W:          roundPtr(rv1wNow, 2),
		RV1WChg:       roundPtr(rv1wChg, 2),
		RV1M:          roundPtr(rv1mNow, 2),
		RV1MChg:       roundPtr(rv1mChg, 2),
		SpotReturnPct: roundPtr(spotRet, 2),
		RetVsUSD:      ptrOrNil(retVsUSD),
		VIXLevel:      roundPtr(vixLevel, 1),
		VIXChg:        roundPtr(vixChg, 2),
		Signal:        e.classify(spotRet, rv1mChg, vixChg),
	}
}

// classify applies the scenario rules in order; the first match wins. NaN
// inputs fail every comparison and fall through to no signal.
func (e *Engine) classify(spotRet, rv1mChg, vixChg float64) string {
	c := e.cfg
	switch {
	case spotRet < -c.SpotThreshold && rv1mChg > c.RVRise && vixChg > 0:
		return models.EventBearishCont
	case spotRet > c.SpotThreshold && rv1mChg > c.RVSharpRise:
		return models.EventBearishContr
	case spotRet > c.SpotThreshold && rv1mChg < c.RVFall:
		return models.EventBullishCont
	case spotRet < -c.SpotThreshold && rv1mChg < c.RVFall && vixChg < 0:
		return models.EventBullishContr
	default:
		return models.SignalNone
	}
}

// nowAndChange reads the last value of a series and its move over lag bars.
func nowAndChange(series []float64, lag int) (now, chg float64) {
	now, chg = math.NaN(), math.NaN()
	if len(series) == 0 {
		return now, chg
	}
	now = series[len(series)-1]
	if len(series) >= lag {
		chg = now - series[len(series)-lag]
	}
	return now, chg
}

func ptrOrNil(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func roundPtr(v float64, places int) *float64 {
	return ptrOrNil(util.Round(v, places))
}
