package stats

import "math"

func linspace(start, stop float64, num int) []float64 {
	if num < 2 {
		return []float64{start}
	}
	step := (stop - start) / float64(num-1)
	grid := make([]float64, num)
	for i := 0; i < num; i++ {
		grid[i] = start + float64(i)*step
	}
	// keep the last fencepost exact
	grid[num-1] = stop
	return grid
}

func InitOnes(n int) []float64 {
	res := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, 1)
	}
	return res
}

// DefaultNWindows is the window count used when the caller does not choose
// one: it scales with the square root of the sample count.
func DefaultNWindows(nsamples int) int {
	n := int(math.Round(math.Sqrt(float64(nsamples))))
	if n < 1 {
		n = 1
	}
	return n
}
