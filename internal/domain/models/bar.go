package models

import (
	"fmt"
	"time"
)

// Bar represents one OHLCV record of a price series.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Bars is a timestamp-ascending bar series for a single instrument.
type Bars []Bar

// Closes extracts the close column.
func (bs Bars) Closes() []float64 {
	out := make([]float64, len(bs))
	for i := range bs {
		out[i] = bs[i].Close
	}
	return out
}

// Highs extracts the high column.
func (bs Bars) Highs() []float64 {
	out := make([]float64, len(bs))
	for i := range bs {
		out[i] = bs[i].High
	}
	return out
}

// Lows extracts the low column.
func (bs Bars) Lows() []float64 {
	out := make([]float64, len(bs))
	for i := range bs {
		out[i] = bs[i].Low
	}
	return out
}

// Times extracts the timestamp column.
func (bs Bars) Times() []time.Time {
	out := make([]time.Time, len(bs))
	for i := range bs {
		out[i] = bs[i].Time
	}
	return out
}

// LastClose returns the most recent close, or (0, false) on an empty series.
func (bs Bars) LastClose() (float64, bool) {
	if len(bs) == 0 {
		return 0, false
	}
	return bs[len(bs)-1].Close, true
}

// Tail returns the last n bars (the whole series when it is shorter).
func (bs Bars) Tail(n int) Bars {
	if n <= 0 || len(bs) <= n {
		return bs
	}
	return bs[len(bs)-n:]
}

// Validate checks the input contract: UTC timestamps, strictly increasing,
// no duplicates. Violations are malformed input and propagate as errors.
func (bs Bars) Validate() error {
	for i := range bs {
		if bs[i].Time.Location() != time.UTC {
			return fmt.Errorf("bar %d: timestamp not UTC", i)
		}
		if i > 0 && !bs[i].Time.After(bs[i-1].Time) {
			return fmt.Errorf("bar %d: timestamp %s not after %s", i, bs[i].Time, bs[i-1].Time)
		}
	}
	return nil
}
