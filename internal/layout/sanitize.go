package layout

import "math"

// Unbounded is the largest finite length. A constraint of Unbounded means
// "measure without a limit on this axis".
const Unbounded = math.MaxFloat64

// SanitizeLength maps NaN, infinities and negative values to zero.
// Used for measured sizes and frames, which must always be finite.
func SanitizeLength(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// SanitizeConstraint maps NaN and negative values to zero and +Inf to
// Unbounded. Unlike SanitizeLength it keeps "no limit" expressible.
func SanitizeConstraint(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case math.IsInf(v, 1):
		return Unbounded
	default:
		return v
	}
}

// sanitizeCoord maps NaN and infinities to zero. Coordinates may be negative.
func sanitizeCoord(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// shrink subtracts d from an available length without going below zero.
// Unbounded stays unbounded.
func shrink(available, d float64) float64 {
	if available == Unbounded {
		return Unbounded
	}
	return max(0, available-d)
}
