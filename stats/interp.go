package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/openharmon/infill/common"
)

// Interpolator is a piecewise linear function through sorted control points.
// Lookups outside the control range return the nearest boundary value, never
// a linear extrapolation.
type Interpolator struct {
	xs []float64
	ys []float64
}

// NewInterpolator builds an interpolator from control points, sorting them by
// x. Duplicate x positions are rejected, a curve must have exactly one value
// per position.
func NewInterpolator(xs, ys []float64) (*Interpolator, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("an interpolator needs at least one control point: %w", common.ErrorInvalidValue)
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("control point counts differ (%d vs %d): %w",
			len(xs), len(ys), common.ErrorInvalidValue)
	}

	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return xs[idx[i]] < xs[idx[j]] })

	sx := make([]float64, len(xs))
	sy := make([]float64, len(ys))
	for i, j := range idx {
		sx[i] = xs[j]
		sy[i] = ys[j]
	}
	for i := 1; i < len(sx); i++ {
		if sx[i] == sx[i-1] {
			return nil, fmt.Errorf("duplicate control point position %v: %w", sx[i], common.ErrorDuplicateData)
		}
	}
	return &Interpolator{xs: sx, ys: sy}, nil
}

// Domain returns the control point range.
func (ip *Interpolator) Domain() (lo, hi float64) {
	return ip.xs[0], ip.xs[len(ip.xs)-1]
}

// At evaluates the function. NaN input stays NaN.
func (ip *Interpolator) At(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	n := len(ip.xs)
	if x <= ip.xs[0] {
		return ip.ys[0]
	}
	if x >= ip.xs[n-1] {
		return ip.ys[n-1]
	}
	i := sort.SearchFloat64s(ip.xs, x)
	if ip.xs[i] == x {
		return ip.ys[i]
	}
	x0, x1 := ip.xs[i-1], ip.xs[i]
	y0, y1 := ip.ys[i-1], ip.ys[i]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
