package indicators

import "math"

// Annualization factor for daily FX bars.
const tradingDaysPerYear = 252

// SMA is the simple moving average over a trailing window.
func SMA(xs []float64, window int) []float64 {
	return RollingMean(xs, window)
}

// EMA is the exponential moving average with alpha = 2/(span+1), seeded at
// the first defined value. Leading NaNs stay NaN.
func EMA(xs []float64, span int) []float64 {
	return ewm(xs, 2.0/(float64(span)+1.0))
}

// WilderSmooth is the Wilder moving average (alpha = 1/period) used by ADX
// and RSI, seeded at the first defined value.
func WilderSmooth(xs []float64, period int) []float64 {
	return ewm(xs, 1.0/float64(period))
}

func ewm(xs []float64, alpha float64) []float64 {
	out := NaNs(len(xs))
	seeded := false
	prev := 0.0
	for i, v := range xs {
		if math.IsNaN(v) {
			if seeded {
				out[i] = prev
			}
			continue
		}
		if !seeded {
			prev = v
			seeded = true
		} else {
			prev = alpha*v + (1-alpha)*prev
		}
		out[i] = prev
	}
	return out
}

// RealizedVol is the annualized rolling standard deviation of daily log
// returns, in percent. Defined from index window onward.
func RealizedVol(closes []float64, window int) []float64 {
	out := RollingStd(LogReturns(closes), window)
	factor := math.Sqrt(tradingDaysPerYear) * 100.0
	for i, v := range out {
		out[i] = v * factor
	}
	return out
}

// ADXDMI computes the Wilder trend-strength triple: ADX and the +/- DMI
// lines. The smoothed true range is floored at sigmaFloor so a degenerate
// flat series divides to zero instead of NaN.
func ADXDMI(high, low, closes []float64, period int) (adx, dmiPlus, dmiMinus []float64) {
	n := len(closes)
	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	if n > 0 {
		tr[0] = high[0] - low[0]
	}
	for i := 1; i < n; i++ {
		hl := high[i] - low[i]
		hc := math.Abs(high[i] - closes[i-1])
		lc := math.Abs(low[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))

		up := high[i] - high[i-1]
		down := low[i-1] - low[i]
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	atr := WilderSmooth(tr, period)
	smoothPlus := WilderSmooth(plusDM, period)
	smoothMinus := WilderSmooth(minusDM, period)

	dmiPlus = make([]float64, n)
	dmiMinus = make([]float64, n)
	dx := make([]float64, n)
	for i := 0; i < n; i++ {
		atrSafe := atr[i]
		if atrSafe == 0 {
			atrSafe = sigmaFloor
		}
		dmiPlus[i] = 100 * smoothPlus[i] / atrSafe
		dmiMinus[i] = 100 * smoothMinus[i] / atrSafe
		diSum := dmiPlus[i] + dmiMinus[i]
		if diSum == 0 {
			diSum = sigmaFloor
		}
		dx[i] = 100 * math.Abs(dmiPlus[i]-dmiMinus[i]) / diSum
	}
	adx = WilderSmooth(dx, period)
	return adx, dmiPlus, dmiMinus
}

// BollingerBands returns the middle SMA band and the +/- numStd sample
// deviation envelopes.
func BollingerBands(closes []float64, window int, numStd float64) (middle, upper, lower []float64) {
	middle = RollingMean(closes, window)
	std := RollingStd(closes, window)
	upper = make([]float64, len(closes))
	lower = make([]float64, len(closes))
	for i := range closes {
		upper[i] = middle[i] + numStd*std[i]
		lower[i] = middle[i] - numStd*std[i]
	}
	return middle, upper, lower
}

// RSI is the Wilder relative strength index. A flat market (no gains and no
// losses) reads exactly 50, a loss-free one exactly 100; out[0] is NaN.
func RSI(closes []float64, period int) []float64 {
	n := len(closes)
	out := NaNs(n)
	if n < 2 {
		return out
	}
	gain := NaNs(n)
	loss := NaNs(n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		gain[i] = math.Max(delta, 0)
		loss[i] = math.Max(-delta, 0)
	}
	avgGain := WilderSmooth(gain, period)
	avgLoss := WilderSmooth(loss, period)
	for i := 1; i < n; i++ {
		g, l := avgGain[i], avgLoss[i]
		switch {
		case g == 0 && l == 0:
			out[i] = 50.0
		case l == 0 && g > 0:
			out[i] = 100.0
		default:
			rs := g / l
			out[i] = 100.0 - 100.0/(1.0+rs)
		}
	}
	return out
}

// MACDHistogram is the MACD line minus its signal EMA.
func MACDHistogram(closes []float64, fast, slow, signal int) []float64 {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)
	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	sig := EMA(macd, signal)
	out := make([]float64, len(closes))
	for i := range closes {
		out[i] = macd[i] - sig[i]
	}
	return out
}

// FibLevels returns the 38.2%, 50% and 61.8% retracement levels of the
// high-low range.
func FibLevels(high, low float64) (fib382, fib500, fib618 float64) {
	diff := high - low
	return high - 0.382*diff, high - 0.500*diff, high - 0.618*diff
}
