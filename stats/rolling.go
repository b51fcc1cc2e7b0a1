package stats

import (
	"fmt"

	"github.com/openharmon/infill/common"
)

// QuantileMatrix is a quantile curve of the follower values sampled at the
// window centers: one row per center, one column per requested quantile.
// ZeroWeight is set when any window collapsed to zero total weight, the
// corresponding cells hold 0.
type QuantileMatrix struct {
	Centers    []float64
	Quantiles  []float64
	Values     [][]float64
	ZeroWeight bool
}

// Column returns the quantile curve for Quantiles[j], aligned with Centers.
func (m *QuantileMatrix) Column(j int) []float64 {
	res := make([]float64, len(m.Centers))
	for i := range m.Centers {
		res[i] = m.Values[i][j]
	}
	return res
}

// RollingWindowQuantiles computes weighted quantiles of ys inside rolling
// windows along xs. base carries per sample weights and may be nil for
// uniform weighting. The window layout follows PlanWindows and the per window
// estimate follows WeightedQuantile.
func RollingWindowQuantiles(xs, ys, base []float64, quantiles []float64, nwindows int, decayLengthFactor float64) (*QuantileMatrix, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("leader and follower sample counts differ (%d vs %d): %w",
			len(xs), len(ys), common.ErrorInvalidValue)
	}
	if base != nil && len(base) != len(xs) {
		return nil, fmt.Errorf("sample weight count differs from sample count (%d vs %d): %w",
			len(base), len(xs), common.ErrorInvalidValue)
	}
	for _, q := range quantiles {
		if q < 0 || q > 1 {
			return nil, fmt.Errorf("invalid quantile (%v), it must be in [0, 1]: %w", q, common.ErrorInvalidValue)
		}
	}

	centers, decayLength, err := PlanWindows(xs, nwindows, decayLengthFactor)
	if err != nil {
		return nil, err
	}
	kernel := NewCauchyKernel(decayLength)

	res := &QuantileMatrix{
		Centers:   centers,
		Quantiles: quantiles,
		Values:    make([][]float64, len(centers)),
	}
	for i, center := range centers {
		weights := kernel.Weights(xs, base, center)
		row := make([]float64, len(quantiles))
		for j, q := range quantiles {
			estimate := WeightedQuantile(ys, weights, q)
			if estimate.ZeroWeight {
				res.ZeroWeight = true
			}
			row[j] = estimate.Value
		}
		res.Values[i] = row
	}
	return res, nil
}
