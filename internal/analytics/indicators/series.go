// Package indicators implements the rolling statistics and technical
// indicators the analytics engines are built from.
//
// All series functions are positional: out[i] is the value for xs[i], and
// positions where a value is not yet defined (warmup windows, the first
// difference) hold NaN. NaN inside a window poisons that window's result.
// NaN never crosses upward out of the analytics layer; engines resolve it to
// documented defaults before building report rows.
package indicators

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const sigmaFloor = 1e-12

// NaNs returns a slice of length n filled with NaN.
func NaNs(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// RollingMean computes the arithmetic mean over a trailing window.
func RollingMean(xs []float64, window int) []float64 {
	out := NaNs(len(xs))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		sum := 0.0
		for _, v := range xs[i-window+1 : i+1] {
			sum += v
		}
		out[i] = sum / float64(window)
	}
	return out
}

// RollingStd computes the unbiased sample standard deviation over a trailing
// window.
func RollingStd(xs []float64, window int) []float64 {
	out := NaNs(len(xs))
	if window < 2 {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		out[i] = stat.StdDev(xs[i-window+1:i+1], nil)
	}
	return out
}

// RollingSkew computes the adjusted Fisher-Pearson sample skewness
// G1 = n/((n-1)(n-2)) * sum(((x-mean)/s)^3) over a trailing window, with s
// the sample standard deviation. Constant windows are NaN.
func RollingSkew(xs []float64, window int) []float64 {
	out := NaNs(len(xs))
	if window < 3 {
		return out
	}
	n := float64(window)
	corr := n / ((n - 1) * (n - 2))
	for i := window - 1; i < len(xs); i++ {
		win := xs[i-window+1 : i+1]
		mean, std := stat.MeanStdDev(win, nil)
		var sum float64
		for _, v := range win {
			z := (v - mean) / std
			sum += z * z * z
		}
		out[i] = sum * corr
	}
	return out
}

// LogReturns computes r_t = ln(x_t / x_{t-1}) positionally; out[0] is NaN.
func LogReturns(xs []float64) []float64 {
	out := NaNs(len(xs))
	for i := 1; i < len(xs); i++ {
		out[i] = math.Log(xs[i] / xs[i-1])
	}
	return out
}

// ZScore standardizes each point against the trailing window's mean and
// sample deviation. A zero deviation is floored at sigmaFloor so constant
// stretches z-score to zero instead of blowing up.
func ZScore(xs []float64, window int) []float64 {
	means := RollingMean(xs, window)
	stds := RollingStd(xs, window)
	out := NaNs(len(xs))
	for i := range xs {
		if math.IsNaN(means[i]) || math.IsNaN(stds[i]) {
			continue
		}
		sigma := stds[i]
		if sigma == 0 {
			sigma = sigmaFloor
		}
		out[i] = (xs[i] - means[i]) / sigma
	}
	return out
}

// PercentileRank returns the share (0..100) of non-NaN history strictly below
// value. An empty history is uninformative and maps to the 50th percentile.
func PercentileRank(value float64, history []float64) float64 {
	below, total := 0, 0
	for _, h := range history {
		if math.IsNaN(h) {
			continue
		}
		total++
		if h < value {
			below++
		}
	}
	if total == 0 {
		return 50.0
	}
	return float64(below) / float64(total) * 100.0
}
