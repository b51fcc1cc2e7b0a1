package crunchers

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/openharmon/infill/model"
	"github.com/openharmon/infill/scendb"
	"github.com/openharmon/infill/stats"
)

// LinearInterpolation derives a follower from a leader by linearly
// interpolating between the reference points of every time step, averaging
// the follower over repeated leader values. Leader values beyond the observed
// range fill with the follower value at the nearest extreme.
type LinearInterpolation struct {
	db *scendb.Database
}

func NewLinearInterpolation(db *scendb.Database) *LinearInterpolation {
	return &LinearInterpolation{db: db}
}

// LinearRelationship maps every crunched time step to a clamped piecewise
// linear interpolator through the reference points.
type LinearRelationship struct {
	interpolatorRelationship
}

// DeriveRelationship fits one interpolator per time step of the reference
// database, optionally restricted to a scenario pattern via
// WithScenarioPattern.
func (c *LinearInterpolation) DeriveRelationship(ctx context.Context, follower string, leaders []string, opts ...Option) (*LinearRelationship, error) {
	cfg := newConfig(opts)

	use, leaderUnit, followerUnit, err := filterReference(c.db, follower, leaders, cfg.scenarioPattern)
	if err != nil {
		return nil, err
	}
	leader := leaders[0]

	wide, err := use.Wide(leader, follower)
	if err != nil {
		return nil, err
	}

	interpolators := map[model.TimeStep]*stats.Interpolator{}
	steps := []model.TimeStep{}
	for j, step := range wide.Steps {
		xs, ys := wide.Pairs(leader, follower, j)
		if len(xs) == 0 {
			continue
		}

		uniqueXs, meanYs := meanByLeader(xs, ys)
		ip, err := stats.NewInterpolator(uniqueXs, meanYs)
		if err != nil {
			return nil, err
		}
		interpolators[step] = ip
		steps = append(steps, step)
	}

	return &LinearRelationship{interpolatorRelationship{
		follower:      follower,
		leader:        leader,
		followerUnit:  followerUnit,
		leaderUnit:    leaderUnit,
		axis:          use.Axis(),
		interpolators: interpolators,
		steps:         steps,
	}}, nil
}

// meanByLeader groups the follower values by leader value and averages each
// group, so repeated leader values collapse to a single control point.
func meanByLeader(xs, ys []float64) (uniqueXs, meanYs []float64) {
	groups := map[float64][]float64{}
	for i, x := range xs {
		groups[x] = append(groups[x], ys[i])
	}
	uniqueXs = make([]float64, 0, len(groups))
	for x := range groups {
		uniqueXs = append(uniqueXs, x)
	}
	sort.Float64s(uniqueXs)
	meanYs = make([]float64, len(uniqueXs))
	for i, x := range uniqueXs {
		meanYs[i] = stat.Mean(groups[x], nil)
	}
	return uniqueXs, meanYs
}
