package stats

import (
	"math"
	"testing"
)

func rampDatum(n int) Datum {
	xs, ys := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = float64(i)
		ys[i] = float64(i+1) / float64(n)
	}
	return Datum{xs, ys}
}

func TestIdenticalDistributions(t *testing.T) {
	d := rampDatum(100)

	l2, ok, err := L2Diff(d, d, DefaultL2Threshold)
	if err != nil || l2 != 0 || !ok {
		t.Errorf("L2Diff on identical CDFs: (%g, %v, %v)", l2, ok, err)
	}
	l1, ok, err := L1Diff(d, d, DefaultL1Threshold)
	if err != nil || l1 != 0 || !ok {
		t.Errorf("L1Diff on identical CDFs: (%g, %v, %v)", l1, ok, err)
	}
	ks, ok, err := KSTest(d, d, DefaultKSThreshold)
	if err != nil || ks != 0 || !ok {
		t.Errorf("KSTest on identical CDFs: (%g, %v, %v)", ks, ok, err)
	}
}

func TestConstantOffset(t *testing.T) {
	n := 50
	d1 := rampDatum(n)
	d2 := rampDatum(n)
	for i := range d2.Y {
		d2.Y[i] += 0.1
	}

	l2, _, err := L2Diff(d1, d2, DefaultL2Threshold)
	if err != nil {
		t.Fatalf("L2Diff failed: %s", err.Error())
	}
	if math.Abs(l2-0.1) > 1e-10 {
		t.Errorf("L2Diff with constant offset 0.1 = %g", l2)
	}

	l1, _, err := L1Diff(d1, d2, DefaultL1Threshold)
	if err != nil {
		t.Fatalf("L1Diff failed: %s", err.Error())
	}
	if math.Abs(l1-0.1) > 1e-10 {
		t.Errorf("L1Diff with constant offset 0.1 = %g", l1)
	}

	ks, ok, err := KSTest(d1, d2, DefaultKSThreshold)
	if err != nil {
		t.Fatalf("KSTest failed: %s", err.Error())
	}
	if math.Abs(ks-0.1) > 1e-10 || ok {
		t.Errorf("KSTest with constant offset 0.1 = (%g, %v)", ks, ok)
	}
}

func TestStepCDFs(t *testing.T) {
	// Two unit steps at different bins differ by exactly the step height
	// over the bins between them.
	n := 10
	xs := make([]float64, n)
	y1, y2 := make([]float64, n), make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
		if i >= 3 {
			y1[i] = 1
		}
		if i >= 6 {
			y2[i] = 1
		}
	}

	ks, ok, err := KSTest(Datum{xs, y1}, Datum{xs, y2}, DefaultKSThreshold)
	if err != nil {
		t.Fatalf("KSTest failed: %s", err.Error())
	}
	if ks != 1 || ok {
		t.Errorf("KSTest on disjoint steps = (%g, %v), expected (1, false)",
			ks, ok)
	}
}

func TestMismatchedGrids(t *testing.T) {
	d1, d2 := rampDatum(10), rampDatum(11)
	if _, _, err := L2Diff(d1, d2, 1); err == nil {
		t.Errorf("L2Diff accepted mismatched bin grids.")
	}
	if _, _, err := L1Diff(d1, d2, 1); err == nil {
		t.Errorf("L1Diff accepted mismatched bin grids.")
	}
	if _, _, err := KSTest(d1, d2, 1); err == nil {
		t.Errorf("KSTest accepted mismatched bin grids.")
	}
}
