package crunchers

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/openharmon/infill/common"
	"github.com/openharmon/infill/model"
	"github.com/openharmon/infill/scendb"
	"github.com/openharmon/infill/stats"
	"github.com/openharmon/infill/utils"
)

// QuantileRollingWindows derives the relationship between two variables by
// rolling a sequence of weighted windows along the leader values and fitting
// a quantile of the follower distribution inside each window. The resulting
// quantile curve is interpolated piecewise linearly between the window
// centers and clamped to the nearest boundary outside the observed leader
// range.
type QuantileRollingWindows struct {
	db *scendb.Database
}

func NewQuantileRollingWindows(db *scendb.Database) *QuantileRollingWindows {
	return &QuantileRollingWindows{db: db}
}

// RollingWindowsRelationship maps every crunched time step to a clamped
// piecewise linear interpolator over the window centers.
type RollingWindowsRelationship struct {
	interpolatorRelationship
}

// DeriveRelationship fits one quantile curve per time step of the reference
// database. follower is the variable to infer, leaders must hold exactly one
// known variable. In ratio mode the follower/leader ratio is fitted instead
// of the absolute follower value; a ratio with leader zero is treated as zero
// and reported once per affected time step as an Info diagnostic.
func (c *QuantileRollingWindows) DeriveRelationship(ctx context.Context, follower string, leaders []string, opts ...Option) (rel *RollingWindowsRelationship, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("DeriveRelationship recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()))
			rel, err = nil, fmt.Errorf("relationship derivation panicked: %v: %w", r, common.ErrorInvalidValue)
		}
	}()

	cfg := newConfig(opts)

	if cfg.quantile < 0 || cfg.quantile > 1 {
		return nil, fmt.Errorf("invalid quantile (%v), it must be in [0, 1]: %w",
			cfg.quantile, common.ErrorInvalidValue)
	}
	nwindows := 0
	if cfg.nwindowsSet {
		if !utils.IsWholeNumber(cfg.nwindows) {
			return nil, fmt.Errorf("invalid nwindows (%v), it must be an integer: %w",
				cfg.nwindows, common.ErrorInvalidValue)
		}
		if cfg.nwindows < 1 {
			return nil, fmt.Errorf("invalid nwindows (%v), it must be positive: %w",
				cfg.nwindows, common.ErrorInvalidValue)
		}
		nwindows = int(cfg.nwindows)
	}
	if cfg.decayLengthFactor == 0 {
		return nil, fmt.Errorf("decay length factor must not be zero: %w", common.ErrorInvalidValue)
	}

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
			// nothing to fit at this step
			continue
		}

		undefinedRatios := 0
		if cfg.useRatio {
			for i := range ys {
				ratio := ys[i] / xs[i]
				if xs[i] == 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
					ratio = 0
					undefinedRatios++
				}
				ys[i] = ratio
			}
		}

		nw := nwindows
		if nw == 0 {
			nw = stats.DefaultNWindows(len(xs))
		}
		matrix, err := stats.RollingWindowQuantiles(xs, ys, nil, []float64{cfg.quantile}, nw, cfg.decayLengthFactor)
		if err != nil {
			return nil, err
		}

		if undefinedRatios > 0 {
			logger.Info("undefined follower/leader ratios in the reference data, treating them as zero",
				zap.Stringer("step", step), zap.Int("samples", undefinedRatios))
		} else if matrix.ZeroWeight {
			logger.Info("window with zero total weight, quantile set to zero",
				zap.Stringer("step", step))
		}

		ip, err := stats.NewInterpolator(matrix.Centers, matrix.Column(0))
		if err != nil {
			return nil, err
		}
		interpolators[step] = ip
		steps = append(steps, step)
	}

	return &RollingWindowsRelationship{interpolatorRelationship{
		follower:      follower,
		leader:        leader,
		followerUnit:  followerUnit,
		leaderUnit:    leaderUnit,
		axis:          use.Axis(),
		useRatio:      cfg.useRatio,
		interpolators: interpolators,
		steps:         steps,
	}}, nil
}
