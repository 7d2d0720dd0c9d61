// Package session decomposes recent hourly FX returns into UTC trading-hour
// buckets: the three regional sessions and a finer three-hour grid.
package session

import (
	"FXBrief/internal/domain/markets"
	"FXBrief/internal/domain/models"
	domsvc "FXBrief/internal/domain/service"
	"FXBrief/pkg/logger"
	"FXBrief/pkg/util"
)

// Bucket is a half-open UTC hour range [Start, End). End at or before Start
// wraps through midnight.
type Bucket struct {
	Name  string
	Start int
	End   int
}

// Contains reports whether the UTC hour falls inside the bucket.
func (b Bucket) Contains(hour int) bool {
	if b.Start < b.End {
		return hour >= b.Start && hour < b.End
	}
	return hour >= b.Start || hour < b.End
}

// Config carries the bucket tables. Bucket order is display order.
type Config struct {
	Zones []Bucket
	Slots []Bucket
}

// DefaultConfig returns the standard session and three-hour slot tables.
func DefaultConfig() Config {
	return Config{
		Zones: []Bucket{
			{Name: "America", Start: 13, End: 0},
			{Name: "Europe", Start: 8, End: 13},
			{Name: "Asia", Start: 0, End: 8},
		},
		Slots: []Bucket{
			{Name: "8am-11am", Start: 8, End: 11},
			{Name: "11am-2pm", Start: 11, End: 14},
			{Name: "2pm-5pm", Start: 14, End: 17},
			{Name: "5pm-8pm", Start: 17, End: 20},
			{Name: "8pm-11pm", Start: 20, End: 23},
			{Name: "11pm-2am", Start: 23, End: 2},
			{Name: "2am-5am", Start: 2, End: 5},
			{Name: "5am-8am", Start: 5, End: 8},
		},
	}
}

// Engine buckets hourly returns; it keeps no state between calls.
type Engine struct {
	cfg      Config
	universe markets.Universe
	log      *logger.Logger
}

func NewEngine(cfg Config, universe markets.Universe, log *logger.Logger) *Engine {
	return &Engine{cfg: cfg, universe: universe, log: log}
}

var _ domsvc.SessionAnalyzer = (*Engine)(nil)

// Summary buckets the last lookbackDays of hourly bars into the regional
// sessions, sign-corrected to the currency-vs-USD convention, 3dp.
func (e *Engine) Summary(hourly map[string]models.Bars, lookbackDays int) models.SessionSummary {
	buckets, rows := e.decompose(hourly, lookbackDays, e.cfg.Zones, 3)
	return models.SessionSummary{Buckets: buckets, Rows: rows}
}

// Heatmap is the three-hour-slot variant of Summary, 2dp.
func (e *Engine) Heatmap(hourly map[string]models.Bars, lookbackDays int) models.SessionHeatmap {
	buckets, rows := e.decompose(hourly, lookbackDays, e.cfg.Slots, 2)
	return models.SessionHeatmap{Buckets: buckets, Rows: rows}
}

func (e *Engine) decompose(hourly map[string]models.Bars, lookbackDays int, buckets []Bucket, places int) ([]string, []models.SessionRow) {
	names := make([]string, len(buckets))
	for i, b := range buckets {
		names[i] = b.Name
	}

	pairs := e.universe.AllFXPairs()
	rows := make([]models.SessionRow, 0, len(pairs))
	for _, pair := range pairs {
		bars := hourly[pair].Tail(lookbackDays * 24)
		if len(bars) == 0 && e.log != nil {
			e.log.Warn("no hourly bars for session decomposition",
				logger.String("pair", pair))
		}
		sign := markets.ReturnSign(pair)
		returns := make(map[string]float64, len(buckets))
		for _, b := range buckets {
			returns[b.Name] = util.Round(cumulativeReturn(bars, b)*sign, places)
		}
		rows = append(rows, models.SessionRow{Pair: pair, Returns: returns})
	}
	return names, rows
}

// cumulativeReturn chains the close-to-close moves of the bars whose hour
// falls in the bucket, in percent. Fewer than two masked bars carry no move.
func cumulativeReturn(bars models.Bars, b Bucket) float64 {
	closes := make([]float64, 0, len(bars))
	for i := range bars {
		if b.Contains(bars[i].Time.UTC().Hour()) {
			closes = append(closes, bars[i].Close)
		}
	}
	if len(closes) < 2 {
		return 0.0
	}
	cum := 1.0
	for i := 1; i < len(closes); i++ {
		cum *= closes[i] / closes[i-1]
	}
	return (cum - 1) * 100
}
