package crunchers

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/openharmon/infill/common"
	"github.com/openharmon/infill/model"
	"github.com/openharmon/infill/scendb"
	"github.com/openharmon/infill/utils"
)

// RMSClosest derives the relationship between two variables by finding the
// reference scenario whose leader timeseries is closest to the input in the
// time averaged root mean squared sense, and copying that scenario's follower
// timeseries.
type RMSClosest struct {
	db *scendb.Database
}

func NewRMSClosest(db *scendb.Database) *RMSClosest {
	return &RMSClosest{db: db}
}

// RMSClosestRelationship holds the reference leader and follower sections the
// nearest neighbour search runs against.
type RMSClosestRelationship struct {
	follower   string
	leader     string
	leaderUnit string
	axis       model.TimeAxis

	leaderDb   *scendb.Database
	followerDb *scendb.Database
}

func (c *RMSClosest) DeriveRelationship(ctx context.Context, follower string, leaders []string, opts ...Option) (*RMSClosestRelationship, error) {
	cfg := newConfig(opts)

	use, leaderUnit, _, err := filterReference(c.db, follower, leaders, cfg.scenarioPattern)
	if err != nil {
		return nil, err
	}
	leader := leaders[0]

	return &RMSClosestRelationship{
		follower:   follower,
		leader:     leader,
		leaderUnit: leaderUnit,
		axis:       use.Axis(),
		leaderDb:   use.Filter(scendb.Filter{Variables: []string{leader}}),
		followerDb: use.Filter(scendb.Filter{Variables: []string{follower}}),
	}, nil
}

func (r *RMSClosestRelationship) Apply(ctx context.Context, in *scendb.Database) (*scendb.Database, error) {
	logger := utils.GetLogger(ctx)

	leadDb, err := checkFillInput(in, r.axis, r.leader, r.leaderUnit)
	if err != nil {
		return nil, err
	}

	overlap := stepIntersection(leadDb.TimeSteps(), r.leaderDb.TimeSteps())
	if len(overlap) == 0 {
		return nil, fmt.Errorf("no time series overlap between the original and unfilled data: %w",
			common.ErrorNoData)
	}

	inWide, err := leadDb.Filter(scendb.Filter{Steps: overlap}).Wide(r.leader)
	if err != nil {
		return nil, err
	}
	refWide, err := r.leaderDb.Filter(scendb.Filter{Steps: overlap}).Wide(r.leader)
	if err != nil {
		return nil, err
	}
	inValues, _ := inWide.Values(r.leader)
	refValues, _ := refWide.Values(r.leader)

	out, err := scendb.New(r.axis, nil)
	if err != nil {
		return nil, err
	}
	matched := 0
	for i, key := range inWide.Keys {
		if hasNaN(inValues[i]) {
			continue
		}
		best, found := closestKey(inValues[i], refWide.Keys, refValues)
		if !found {
			continue
		}
		matched++

		section := r.followerDb.Filter(scendb.Filter{
			Models:    []string{best.Model},
			Scenarios: []string{best.Scenario},
		})
		relabeled := make([]scendb.Point, 0, section.Len())
		for _, p := range section.Points() {
			p.Key.Model = key.Model
			p.Key.Scenario = key.Scenario
			relabeled = append(relabeled, p)
		}
		piece, err := scendb.New(r.axis, relabeled)
		if err != nil {
			return nil, err
		}
		out, err = out.Append(piece)
		if err != nil {
			return nil, err
		}
	}
	if matched == 0 {
		return nil, fmt.Errorf("no time series overlap between the original and unfilled data: %w",
			common.ErrorNoData)
	}

	logger.Debug("matched input series against reference scenarios",
		zap.Int("series", matched), zap.Int("timepoints", len(overlap)))
	return out, nil
}

// closestKey returns the reference series with the smallest RMS distance to
// target, first wins on ties. Reference rows containing NaN are skipped.
func closestKey(target []float64, keys []model.SeriesKey, values [][]float64) (model.SeriesKey, bool) {
	bestRMS := math.Inf(1)
	var best model.SeriesKey
	found := false
	for i, key := range keys {
		if hasNaN(values[i]) {
			continue
		}
		rms := floats.Distance(target, values[i], 2) / math.Sqrt(float64(len(target)))
		if rms < bestRMS {
			bestRMS = rms
			best = key
			found = true
		}
	}
	return best, found
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func stepIntersection(a, b []model.TimeStep) []model.TimeStep {
	inB := map[model.TimeStep]bool{}
	for _, s := range b {
		inB[s] = true
	}
	res := []model.TimeStep{}
	for _, s := range a {
		if inB[s] {
			res = append(res, s)
		}
	}
	return res
}
