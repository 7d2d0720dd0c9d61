package util

import "math"

// Round rounds half away from zero to the given number of decimal places,
// normalizing negative zero. NaN passes through.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}
