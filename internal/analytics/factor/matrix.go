// Package factor runs the PCA factor decompositions of the FX and ETF
// universes over aligned daily return matrices.
package factor

import (
	"math"
	"sort"

	"FXBrief/internal/analytics/indicators"
	"FXBrief/internal/domain/markets"
	"FXBrief/internal/domain/models"
)

// minCoverage is the share of return rows a column must populate to survive
// alignment.
const minCoverage = 0.8

// closeMatrix assembles close rows over the union of the series' timestamps,
// trimmed to the last window rows, one column per symbol in table order.
// Symbols with no bars contribute no column; timestamps a symbol lacks read
// NaN.
func closeMatrix(daily map[string]models.Bars, order []string, window int) ([][]float64, []string) {
	symbols := make([]string, 0, len(order))
	for _, s := range order {
		if len(daily[s]) > 0 {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		return nil, nil
	}

	stamps := make(map[int64]struct{})
	for _, s := range symbols {
		for _, b := range daily[s] {
			stamps[b.Time.Unix()] = struct{}{}
		}
	}
	times := make([]int64, 0, len(stamps))
	for t := range stamps {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	if window > 0 && len(times) > window {
		times = times[len(times)-window:]
	}

	index := make(map[int64]int, len(times))
	for i, t := range times {
		index[t] = i
	}
	matrix := make([][]float64, len(times))
	for i := range matrix {
		matrix[i] = indicators.NaNs(len(symbols))
	}
	for j, s := range symbols {
		for _, b := range daily[s] {
			if i, ok := index[b.Time.Unix()]; ok {
				matrix[i][j] = b.Close
			}
		}
	}
	return matrix, symbols
}

// logReturnRows converts the close matrix to log returns, dropping the first
// row. A NaN close poisons both adjacent returns.
func logReturnRows(closes [][]float64) [][]float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([][]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		row := make([]float64, len(closes[i]))
		for j := range row {
			row[j] = math.Log(closes[i][j] / closes[i-1][j])
		}
		out[i-1] = row
	}
	return out
}

// dropSparseColumns removes columns whose defined-return count falls under
// the coverage floor, keeping the survivors in order.
func dropSparseColumns(rets [][]float64, symbols []string) ([][]float64, []string) {
	rows := len(rets)
	if rows == 0 {
		return nil, nil
	}
	floor := int(minCoverage * float64(rows))
	keep := make([]int, 0, len(symbols))
	for j := range symbols {
		count := 0
		for i := range rets {
			if !math.IsNaN(rets[i][j]) {
				count++
			}
		}
		if count >= floor {
			keep = append(keep, j)
		}
	}

	kept := make([]string, len(keep))
	out := make([][]float64, rows)
	for i := range rets {
		row := make([]float64, len(keep))
		for c, j := range keep {
			row[c] = rets[i][j]
		}
		out[i] = row
	}
	for c, j := range keep {
		kept[c] = symbols[j]
	}
	return out, kept
}

// preparedReturns is the full alignment pipeline: union-timestamp closes
// trimmed to the window, log returns, optional flip of USDXXX columns onto
// the currency-vs-USD convention, sparse columns dropped.
func preparedReturns(daily map[string]models.Bars, order []string, window int, signCorrect bool) ([][]float64, []string) {
	closes, symbols := closeMatrix(daily, order, window)
	rets := logReturnRows(closes)
	if rets == nil {
		return nil, nil
	}
	if signCorrect {
		for j, s := range symbols {
			if markets.ReturnSign(s) < 0 {
				for i := range rets {
					rets[i][j] = -rets[i][j]
				}
			}
		}
	}
	return dropSparseColumns(rets, symbols)
}

// zScoreColumns standardizes each column against its own full-sample mean and
// sample stdev, mapping undefined entries to zero so they drop out of score
// projections.
func zScoreColumns(rets [][]float64) [][]float64 {
	if len(rets) == 0 {
		return nil
	}
	cols := len(rets[0])
	means := make([]float64, cols)
	stds := make([]float64, cols)
	for j := 0; j < cols; j++ {
		var sum float64
		var count int
		for i := range rets {
			if v := rets[i][j]; !math.IsNaN(v) {
				sum += v
				count++
			}
		}
		if count < 2 {
			stds[j] = 0
			continue
		}
		means[j] = sum / float64(count)
		var ss float64
		for i := range rets {
			if v := rets[i][j]; !math.IsNaN(v) {
				d := v - means[j]
				ss += d * d
			}
		}
		stds[j] = math.Sqrt(ss / float64(count-1))
	}

	out := make([][]float64, len(rets))
	for i := range rets {
		row := make([]float64, cols)
		for j := 0; j < cols; j++ {
			v := rets[i][j]
			if math.IsNaN(v) || stds[j] == 0 {
				row[j] = 0
				continue
			}
			row[j] = (v - means[j]) / stds[j]
		}
		out[i] = row
	}
	return out
}
