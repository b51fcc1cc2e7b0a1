package crunchers

import "github.com/openharmon/infill/stats"

// Option configures a relationship derivation.
type Option func(*config)

type config struct {
	quantile          float64
	nwindows          float64
	nwindowsSet       bool // unset selects the sample count heuristic
	decayLengthFactor float64
	useRatio          bool
	scenarioPattern   string
}

func newConfig(opts []Option) *config {
	cfg := &config{
		quantile:          stats.DefaultQuantile,
		decayLengthFactor: stats.DefaultDecayLengthFactor,
		scenarioPattern:   "*",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithQuantile sets the quantile of the follower distribution to fit.
func WithQuantile(quantile float64) Option {
	return func(c *config) {
		c.quantile = quantile
	}
}

// WithNWindows sets the rolling window count. The value is kept as a float so
// the boundary validation can echo non integer inputs verbatim.
func WithNWindows(nwindows float64) Option {
	return func(c *config) {
		c.nwindows = nwindows
		c.nwindowsSet = true
	}
}

// WithDecayLengthFactor scales the distance over which a sample's influence
// on a window fades.
func WithDecayLengthFactor(factor float64) Option {
	return func(c *config) {
		c.decayLengthFactor = factor
	}
}

// WithUseRatio fits the follower/leader ratio instead of the absolute
// follower value. The ratio is rescaled by the leader value at fill time.
func WithUseRatio(useRatio bool) Option {
	return func(c *config) {
		c.useRatio = useRatio
	}
}

// WithScenarioPattern restricts the reference database to scenarios matching
// the glob pattern before fitting.
func WithScenarioPattern(pattern string) Option {
	return func(c *config) {
		c.scenarioPattern = pattern
	}
}
