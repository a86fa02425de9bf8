package services

import "math"

// finite reports whether v is a usable amount, i.e. neither NaN nor ±Inf.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// round2 rounds half away from zero to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
