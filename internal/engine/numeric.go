package engine

import "math"

// Numeric helpers for the simulation hot path. None of these panic:
// NaN and infinities collapse to the nearest safe value so a bad
// multiplier from config cannot take down a run mid-day.

// SafeInt converts a float to int, clamping NaN/±Inf and out-of-range
// values instead of truncating through undefined behavior.
func SafeInt(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	if math.IsInf(v, 1) || v >= math.MaxInt64 {
		return math.MaxInt64
	}
	if math.IsInf(v, -1) || v <= math.MinInt64 {
		return math.MinInt64
	}
	return int(v)
}

// ClampInt restricts v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat restricts v to [lo, hi]; NaN collapses to lo.
func ClampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts a probability to [0, 1].
func Clamp01(v float64) float64 { return ClampFloat(v, 0, 1) }

// RoundMiles rounds a distance to one decimal place, safe for NaN.
func RoundMiles(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10) / 10
}

// satSub subtracts without underflowing below zero.
func satSub(v, d int) int {
	if d >= v {
		return 0
	}
	return v - d
}
