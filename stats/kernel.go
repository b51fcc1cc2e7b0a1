package stats

import "math"

// CauchyKernel weights samples by their distance from a window center. The
// weight falls off with the square of the distance over the decay length, so
// samples at the center contribute maximally and samples a few decay lengths
// away contribute almost nothing, but never exactly zero.
type CauchyKernel struct {
	decayLength float64
}

// NewCauchyKernel builds a kernel with the given decay length. The falloff
// depends only on the square of the scaled distance, so the sign of the decay
// length is irrelevant; a zero decay length degenerates to a constant.
func NewCauchyKernel(decayLength float64) *CauchyKernel {
	decayLength = math.Abs(decayLength)
	if decayLength == 0 {
		decayLength = DegenerateDecayLength
	}
	return &CauchyKernel{decayLength: decayLength}
}

func (k *CauchyKernel) Shape(u float64) float64 {
	return 1.0 / (1.0 + u*u)
}

// Weights evaluates the kernel at every sample position for the given window
// center, scaled by the sample base weights. base may be nil for uniform base
// weights. NaN positions or weights evaluate to weight zero.
func (k *CauchyKernel) Weights(xs []float64, base []float64, center float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		u := (x - center) / k.decayLength
		w := k.Shape(u)
		if base != nil {
			w *= base[i]
		}
		if math.IsNaN(w) {
			w = 0
		}
		res[i] = w
	}
	return res
}
