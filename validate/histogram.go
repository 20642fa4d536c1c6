package validate

import (
	"gonum.org/v1/gonum/floats"
)

// Histogram bins xs into bins equal-width bins spanning [lo, hi] and
// normalizes the counts so that they sum to 1. Values outside the range are
// dropped, and the upper edge is counted in the last bin. Returns the bin
// centers and the normalized histogram.
func Histogram(xs []float64, lo, hi float64, bins int) (ctrs, hist []float64) {
	ctrs, hist = make([]float64, bins), make([]float64, bins)
	dx := (hi - lo) / float64(bins)
	for i := range ctrs {
		ctrs[i] = lo + dx*(float64(i)+0.5)
	}

	for _, x := range xs {
		if x < lo || x > hi {
			continue
		}
		idx := int((x - lo) / dx)
		if idx == bins {
			idx--
		}
		hist[idx]++
	}

	if total := floats.Sum(hist); total > 0 {
		for i := range hist {
			hist[i] /= total
		}
	}

	return ctrs, hist
}

// CDF computes the running cumulative sum of a normalized histogram.
func CDF(hist []float64) []float64 {
	out := make([]float64, len(hist))
	sum := 0.0
	for i, h := range hist {
		sum += h
		out[i] = sum
	}
	return out
}

// Crossing returns the center of the first bin whose CDF value exceeds p.
// If no bin does, the first bin center is returned, mirroring an argmax
// over an all-false mask.
func Crossing(ctrs, cdf []float64, p float64) float64 {
	for i := range cdf {
		if cdf[i] > p {
			return ctrs[i]
		}
	}
	return ctrs[0]
}

// quantileProbs are the five quantile markers persisted for each color.
var quantileProbs = [5]float64{0.025, 0.16, 0.5, 0.84, 0.975}

// Quantiles extracts the five standard quantile markers from a CDF by
// first-crossing lookup.
func Quantiles(ctrs, cdf []float64) [5]float64 {
	out := [5]float64{}
	for i, p := range quantileProbs {
		out[i] = Crossing(ctrs, cdf, p)
	}
	return out
}
