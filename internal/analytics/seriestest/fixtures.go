// Package seriestest provides deterministic synthetic bar series for the
// analytics engine tests.
package seriestest

import (
	"math"
	"math/rand"
	"time"

	"FXBrief/internal/domain/models"
)

// DailyStart anchors the synthetic daily fixtures (a Monday).
var DailyStart = time.Date(2022, time.January, 3, 0, 0, 0, 0, time.UTC)

// HourlyStart anchors the synthetic hourly fixtures (a Monday, midnight UTC).
var HourlyStart = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

// BusinessDays returns n consecutive weekdays starting at start.
func BusinessDays(start time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	t := start
	for len(out) < n {
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			out = append(out, t)
		}
		t = t.AddDate(0, 0, 1)
	}
	return out
}

// DailyFromCloses builds daily bars over consecutive business days with the
// given close path and tight intrabar ranges.
func DailyFromCloses(closes []float64) models.Bars {
	times := BusinessDays(DailyStart, len(closes))
	bars := make(models.Bars, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		bars[i] = models.Bar{
			Time:   times[i],
			Open:   open,
			High:   c * 1.0002,
			Low:    c * 0.9998,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

// HourlyFromCloses builds hourly bars starting at start with the given close
// path.
func HourlyFromCloses(start time.Time, closes []float64) models.Bars {
	bars := make(models.Bars, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		bars[i] = models.Bar{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   open,
			High:   c * 1.0001,
			Low:    c * 0.9999,
			Close:  c,
			Volume: 100,
		}
	}
	return bars
}

// DailyRamp builds a noise-free arithmetic ramp: close_i = base + step*i.
// Use a negative step for a strict downtrend.
func DailyRamp(n int, base, step float64) models.Bars {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = base + step*float64(i)
	}
	return DailyFromCloses(closes)
}

// DailyTrend builds n daily bars drifting from base by totalDrift (0.10 is
// +10% across the series) with small cumulative noise.
func DailyTrend(n int, base, totalDrift float64, seed int64) models.Bars {
	r := rand.New(rand.NewSource(seed))
	closes := make([]float64, n)
	noise := 0.0
	for i := range closes {
		noise += r.NormFloat64() * 0.002
		frac := 0.0
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		closes[i] = base * (1 + totalDrift*frac + noise)
	}
	return DailyFromCloses(closes)
}

// DailyFlat builds n daily bars oscillating tightly around level.
func DailyFlat(n int, level float64, seed int64) models.Bars {
	r := rand.New(rand.NewSource(seed))
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = level * (1 + r.NormFloat64()*0.0005)
	}
	return DailyFromCloses(closes)
}

// Hourly builds n hourly bars random-walking around base.
func Hourly(n int, base float64, seed int64) models.Bars {
	r := rand.New(rand.NewSource(seed))
	closes := make([]float64, n)
	price := base
	for i := range closes {
		price *= 1 + r.NormFloat64()*0.0005
		closes[i] = price
	}
	return HourlyFromCloses(HourlyStart, closes)
}

// VIXLike builds n daily bars that wander like a volatility index, clamped
// to [9, 80].
func VIXLike(n int, seed int64) models.Bars {
	r := rand.New(rand.NewSource(seed))
	closes := make([]float64, n)
	level := 18.0
	for i := range closes {
		level += r.NormFloat64() * 0.5
		level = math.Max(9, math.Min(80, level))
		closes[i] = level
	}
	return DailyFromCloses(closes)
}
