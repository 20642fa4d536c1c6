package validate

import (
	"math"
	"testing"
)

func TestHistogramUniform(t *testing.T) {
	xs := []float64{0.5, 1.5, 2.5, 3.5, 4.5, 5.5, 6.5, 7.5, 8.5, 9.5}
	ctrs, hist := Histogram(xs, 0, 10, 10)

	if len(ctrs) != 10 || len(hist) != 10 {
		t.Fatalf("Histogram returned %d centers and %d bins, expected 10.",
			len(ctrs), len(hist))
	}
	for i := range ctrs {
		if math.Abs(ctrs[i]-(float64(i)+0.5)) > 1e-10 {
			t.Errorf("Center %d is %g, expected %g.", i, ctrs[i],
				float64(i)+0.5)
		}
		if math.Abs(hist[i]-0.1) > 1e-10 {
			t.Errorf("Bin %d is %g, expected 0.1.", i, hist[i])
		}
	}
}

func TestHistogramEdges(t *testing.T) {
	// The upper edge lands in the last bin, and out-of-range values are
	// dropped before normalization.
	xs := []float64{0, 10, -0.001, 10.001}
	_, hist := Histogram(xs, 0, 10, 10)

	if hist[0] != 0.5 {
		t.Errorf("The lower edge filled bin 0 with %g, expected 0.5.",
			hist[0])
	}
	if hist[9] != 0.5 {
		t.Errorf("The upper edge filled bin 9 with %g, expected 0.5.",
			hist[9])
	}

	sum := 0.0
	for _, h := range hist {
		sum += h
	}
	if math.Abs(sum-1) > 1e-10 {
		t.Errorf("Histogram sums to %g, expected 1.", sum)
	}
}

func TestHistogramEmpty(t *testing.T) {
	_, hist := Histogram([]float64{}, 0, 1, 5)
	for i, h := range hist {
		if h != 0 {
			t.Errorf("Bin %d of an empty histogram is %g.", i, h)
		}
	}
}

func TestCDFMonotonic(t *testing.T) {
	hist := []float64{0.1, 0.2, 0, 0.3, 0.4}
	cdf := CDF(hist)

	prev := 0.0
	for i, c := range cdf {
		if c < prev {
			t.Fatalf("CDF decreased at bin %d.", i)
		}
		prev = c
	}
	if math.Abs(cdf[len(cdf)-1]-1) > 1e-10 {
		t.Errorf("CDF ends at %g, expected 1.", cdf[len(cdf)-1])
	}
}

func TestCrossing(t *testing.T) {
	ctrs := []float64{0, 1, 2, 3}
	cdf := []float64{0.1, 0.4, 0.9, 1}

	table := []struct {
		p    float64
		want float64
	}{
		{0.05, 0}, {0.25, 1}, {0.5, 2}, {0.95, 3},
		{1.5, 0}, // no crossing falls back to the first center
	}
	for _, line := range table {
		if got := Crossing(ctrs, cdf, line.p); got != line.want {
			t.Errorf("Crossing(p = %g) = %g, expected %g.",
				line.p, got, line.want)
		}
	}
}

func TestQuantilesOfUniformCDF(t *testing.T) {
	n := 2000
	ctrs, cdf := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		ctrs[i] = float64(i) / float64(n)
		cdf[i] = float64(i+1) / float64(n)
	}

	q := Quantiles(ctrs, cdf)
	want := [5]float64{0.025, 0.16, 0.5, 0.84, 0.975}
	for i := range q {
		if math.Abs(q[i]-want[i]) > 2.0/float64(n) {
			t.Errorf("Quantile %d of a uniform CDF is %g, expected about "+
				"%g.", i, q[i], want[i])
		}
	}
}
