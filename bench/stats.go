// bench/stats.go
package bench

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

// Mean returns the arithmetic mean of a data list, 0 for empty input.
func Mean[T IntOrFloat64](data []T) float64 {
	if len(data) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range data {
		sum += float64(v)
	}
	return sum / float64(len(data))
}

// Percentile returns the p-th percentile of a data list using linear
// interpolation between closest ranks. Input need not be sorted; empty
// input yields 0.
func Percentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0.0
	}
	sorted := make([]float64, n)
	for i, v := range data {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if upperIdx >= n {
		return sorted[n-1]
	}
	if lowerIdx == upperIdx {
		return sorted[lowerIdx]
	}
	return sorted[lowerIdx] + (sorted[upperIdx]-sorted[lowerIdx])*(rank-float64(lowerIdx))
}

// PopVariance returns the population variance of a data list, 0 when fewer
// than two values are present.
func PopVariance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	mean := stat.Mean(data, nil)
	ss := 0.0
	for _, v := range data {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(data))
}
