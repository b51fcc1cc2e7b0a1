package stats

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/openharmon/infill/common"
)

// PlanWindows lays out the rolling windows over the observed leader range.
// The centers are the nwindows+1 fenceposts from min(xs) to max(xs)
// inclusive, so the curve is anchored at both extremes of the data. The decay
// length is half the fencepost spacing scaled by decayLengthFactor.
//
// When all leader values coincide there is a single window centered on the
// common value and the decay length degenerates to a constant, which keeps
// the kernel finite.
func PlanWindows(xs []float64, nwindows int, decayLengthFactor float64) (centers []float64, decayLength float64, err error) {
	if len(xs) == 0 {
		return nil, 0, fmt.Errorf("window planning needs at least one sample: %w", common.ErrorInvalidValue)
	}
	if nwindows < 1 {
		return nil, 0, fmt.Errorf("invalid nwindows (%v), it must be positive: %w", nwindows, common.ErrorInvalidValue)
	}
	if decayLengthFactor == 0 {
		return nil, 0, fmt.Errorf("decay length factor must not be zero: %w", common.ErrorInvalidValue)
	}

	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		return []float64{lo}, DegenerateDecayLength, nil
	}

	step := (hi - lo) / float64(nwindows)
	decayLength = step / 2 * decayLengthFactor
	centers = linspace(lo, hi, nwindows+1)
	return centers, decayLength, nil
}
