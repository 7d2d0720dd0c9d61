package indicators

import (
	"time"

	"FXBrief/pkg/util"
)

// WeeklyLast collapses a timestamp-ascending series onto Friday-anchored week
// ends, keeping the last observation of each week. Weekend timestamps roll
// forward onto the next week's Friday.
func WeeklyLast(times []time.Time, values []float64) ([]time.Time, []float64) {
	outT := make([]time.Time, 0, len(times)/5+1)
	outV := make([]float64, 0, len(times)/5+1)
	for i := range times {
		anchor := util.FridayAnchor(times[i])
		if n := len(outT); n > 0 && anchor.Equal(outT[n-1]) {
			outV[n-1] = values[i]
			continue
		}
		outT = append(outT, anchor)
		outV = append(outV, values[i])
	}
	return outT, outV
}

// SimpleReturns computes v_t/v_{t-1} - 1, dropping the first observation.
// The caller's timestamp slice aligns with times[1:].
func SimpleReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i]/values[i-1] - 1
	}
	return out
}
