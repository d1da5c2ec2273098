package util

import "math"

// PiecewiseMean averages values in consecutive blocks of size. The last
// block may be shorter. NaN values are skipped; a block with no numbers
// averages to NaN. A size below 1 is treated as 1.
func PiecewiseMean(values []float64, size int) []float64 {
	if size < 1 {
		size = 1
	}
	out := make([]float64, 0, (len(values)+size-1)/size)
	for start := 0; start < len(values); start += size {
		end := min(start+size, len(values))
		sum, n := 0.0, 0
		for _, v := range values[start:end] {
			if math.IsNaN(v) {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			out = append(out, math.NaN())
			continue
		}
		out = append(out, sum/float64(n))
	}
	return out
}

// Mean returns the mean of the non-NaN values, or NaN when there are none.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m := PiecewiseMean(values, len(values))
	return m[0]
}
