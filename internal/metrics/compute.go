package metrics

import (
	"math"
	"sort"
)

// Mean calculates the arithmetic mean. Returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleVariance calculates variance with the n-1 denominator.
// Returns (0, false) when fewer than two samples are available.
func SampleVariance(values []float64) (float64, bool) {
	n := len(values)
	if n < 2 {
		return 0, false
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(n-1), true
}

// Stddev calculates sample standard deviation (n-1 denominator).
func Stddev(values []float64) float64 {
	v, ok := SampleVariance(values)
	if !ok {
		return 0
	}
	return math.Sqrt(v)
}

// CoefficientOfVariation returns std/mean, or (0, false) when mean <= 0.
func CoefficientOfVariation(std, mean float64) (float64, bool) {
	if mean <= 0 || std < 0 {
		return 0, false
	}
	return std / mean, true
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Percentile uses linear interpolation over an unsorted copy of values.
// p is a fraction (0.10 = 10th percentile).
func Percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

// percentileSorted expects sorted ASC input.
func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
