package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Result is one weighted quantile estimate. ZeroWeight marks the degenerate
// case where no sample carried any weight, the value is 0 then and the caller
// decides whether to report it.
type Result struct {
	Value      float64
	ZeroWeight bool
}

// WeightedQuantile estimates the given quantile of ys under the given sample
// weights. Samples with zero or NaN weight and NaN values are excluded.
//
// The samples are sorted by value and placed on a cumulative weight axis at
// the midpoint of their own weight, i.e. position_i = cumsum_i - w_i/2 after
// normalizing the weights to one. The quantile is then linearly interpolated
// between the bracketing sample values. Quantiles below the first position or
// above the last clamp to the extreme values, so the extremes keep their full
// weighting. Ties between repeated values need no special casing, the
// cumulative rule spreads them over adjacent positions.
func WeightedQuantile(ys, weights []float64, quantile float64) Result {
	type sample struct {
		y float64
		w float64
	}
	samples := make([]sample, 0, len(ys))
	for i, y := range ys {
		w := weights[i]
		if w == 0 || math.IsNaN(w) || math.IsNaN(y) {
			continue
		}
		samples = append(samples, sample{y: y, w: w})
	}
	if len(samples) == 0 {
		return Result{Value: 0, ZeroWeight: true}
	}

	sort.SliceStable(samples, func(i, j int) bool { return samples[i].y < samples[j].y })

	ws := make([]float64, len(samples))
	for i, s := range samples {
		ws[i] = s.w
	}
	total := floats.Sum(ws)
	if total == 0 {
		return Result{Value: 0, ZeroWeight: true}
	}

	// cumulative midpoint positions, normalized to (0, 1)
	positions := make([]float64, len(samples))
	cum := 0.0
	for i, s := range samples {
		positions[i] = (cum + s.w/2) / total
		cum += s.w
	}

	if quantile <= positions[0] {
		return Result{Value: samples[0].y}
	}
	last := len(samples) - 1
	if quantile >= positions[last] {
		return Result{Value: samples[last].y}
	}
	for i := 1; i <= last; i++ {
		if positions[i] >= quantile {
			lowerY, lowerP := samples[i-1].y, positions[i-1]
			upperY, upperP := samples[i].y, positions[i]
			value := lowerY + (upperY-lowerY)*(quantile-lowerP)/(upperP-lowerP)
			return Result{Value: value}
		}
	}
	return Result{Value: samples[last].y}
}
