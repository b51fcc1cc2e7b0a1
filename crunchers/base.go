package crunchers

import (
	"context"
	"fmt"

	"github.com/openharmon/infill/common"
	"github.com/openharmon/infill/model"
	"github.com/openharmon/infill/scendb"
	"github.com/openharmon/infill/stats"
)

// Relationship is a fitted mapping from leader timeseries to follower
// timeseries. It is immutable once derived, so it can be applied from
// multiple goroutines concurrently.
type Relationship interface {
	Apply(ctx context.Context, in *scendb.Database) (*scendb.Database, error)
}

// filterReference narrows the reference database down to the requested
// scenarios and the two variables, and resolves their units.
func filterReference(db *scendb.Database, follower string, leaders []string, pattern string) (use *scendb.Database, leaderUnit, followerUnit string, err error) {
	if len(leaders) != 1 {
		return nil, "", "", fmt.Errorf("having more than one leader variable is not yet implemented: %w",
			common.ErrorNotImplemented)
	}
	use = db.Filter(scendb.Filter{
		Scenarios: []string{pattern},
		Variables: []string{leaders[0], follower},
	})
	if use.Empty() {
		return nil, "", "", fmt.Errorf("there is no data of the appropriate type in the database, "+
			"there may be a typo in the scenario filter: %w", common.ErrorNoData)
	}
	leaderUnits := use.UnitsOf(leaders[0])
	if len(leaderUnits) == 0 {
		return nil, "", "", fmt.Errorf("no data for leader variable %q in database: %w",
			leaders[0], common.ErrorNoData)
	}
	followerUnits := use.UnitsOf(follower)
	if len(followerUnits) == 0 {
		return nil, "", "", fmt.Errorf("no data for follower variable %q in database: %w",
			follower, common.ErrorNoData)
	}
	return use, leaderUnits[0], followerUnits[0], nil
}

// checkFillInput validates fill time data against the identity recorded when
// the relationship was derived, and returns the leader rows.
func checkFillInput(in *scendb.Database, axis model.TimeAxis, leader, leaderUnit string) (*scendb.Database, error) {
	if in.Axis() != axis {
		return nil, fmt.Errorf("input time axis must be the same as the axis used to derive "+
			"this relationship (%q): %w", axis, common.ErrorTimeMismatch)
	}
	units := in.UnitsOf(leader)
	if len(units) == 0 {
		return nil, fmt.Errorf("there is no data for %q so it cannot be infilled: %w",
			leader, common.ErrorNoData)
	}
	if len(units) > 1 {
		return nil, fmt.Errorf("there are multiple units for the lead variable (%v): %w",
			units, common.ErrorUnitMismatch)
	}
	if units[0] != leaderUnit {
		return nil, fmt.Errorf("units of lead variable is meant to be %q, found %q: %w",
			leaderUnit, units[0], common.ErrorUnitMismatch)
	}
	return in.Filter(scendb.Filter{Variables: []string{leader}}), nil
}

// interpolatorRelationship holds one clamped interpolator per crunched time
// step. Both the rolling windows and the linear cruncher fill through it.
type interpolatorRelationship struct {
	follower     string
	leader       string
	followerUnit string
	leaderUnit   string
	axis         model.TimeAxis
	useRatio     bool

	interpolators map[model.TimeStep]*stats.Interpolator
	steps         []model.TimeStep // sorted, for error reporting
}

func (r *interpolatorRelationship) Follower() string {
	return r.follower
}

func (r *interpolatorRelationship) Leader() string {
	return r.leader
}

// TimeSteps returns the crunched time steps in order.
func (r *interpolatorRelationship) TimeSteps() []model.TimeStep {
	cp := make([]model.TimeStep, len(r.steps))
	copy(cp, r.steps)
	return cp
}

func (r *interpolatorRelationship) Apply(ctx context.Context, in *scendb.Database) (*scendb.Database, error) {
	leadDb, err := checkFillInput(in, r.axis, r.leader, r.leaderUnit)
	if err != nil {
		return nil, err
	}

	// every time step of the input must be crunched, not only the leader's
	needed := in.TimeSteps()
	for _, step := range needed {
		if _, ok := r.interpolators[step]; !ok {
			return nil, fmt.Errorf("not all required timepoints are present in the database we "+
				"crunched, we crunched %v but you passed in %v: %w",
				r.steps, needed, common.ErrorMissingTimes)
		}
	}

	out := make([]scendb.Point, 0, leadDb.Len())
	for _, p := range leadDb.Points() {
		value := r.interpolators[p.Step].At(p.Value)
		if r.useRatio {
			value *= p.Value
		}
		out = append(out, scendb.Point{
			Key:      p.Key,
			Variable: r.follower,
			Unit:     r.followerUnit,
			Step:     p.Step,
			Value:    value,
		})
	}
	return scendb.New(r.axis, out)
}
