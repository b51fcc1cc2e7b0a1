package utils

import "math"

// ValidPair reports whether a leader / follower pair can be used for fitting.
// pairs where either side is NaN carry no information about the relationship
func ValidPair(leader, follower float64) bool {
	return !math.IsNaN(leader) && !math.IsNaN(follower)
}

// IsWholeNumber reports whether f carries no fractional part.
func IsWholeNumber(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f == math.Trunc(f)
}
