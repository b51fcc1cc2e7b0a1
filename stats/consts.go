package stats

const (
	// DefaultQuantile fits the median of the follower distribution.
	DefaultQuantile = 0.5

	// DefaultDecayLengthFactor leaves the planned decay length unscaled.
	DefaultDecayLengthFactor = 1.0

	// DegenerateDecayLength replaces the decay length when all leader values
	// coincide. The window weights are uniform in that case whatever positive
	// value is used, it only must not be zero.
	DegenerateDecayLength = 1.0
)
