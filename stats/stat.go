// Package stats holds the small numeric helpers shared by the regression and forecast code
package stats

// Mean returns the arithmetic mean of x. Values are summed left to right in a single
// float64 accumulator.
//
// x must be non-empty. An empty slice divides by zero and yields NaN; callers guard it.
func Mean(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}
