package transform

import "math"

// currency precision for rounding and rank tie detection
const currencyScale = 100

// round2 rounds to 2 decimal places (currency precision).
func round2(v float64) float64 {
	return math.Round(v*currencyScale) / currencyScale
}

// percentile uses linear interpolation over pre-sorted values.
// sorted must be sorted ASC. p is a fraction (0.25 = 25th percentile).
func percentile(sorted []float64, p float64) float64 {
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

// ptr returns a pointer to v.
func ptr[T any](v T) *T {
	return &v
}
