/*package stats implements the goodness-of-fit statistics used to compare a
mock catalog's binned color CDF against an observational reference CDF.*/
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Datum is a binned empirical distribution: parallel bin centers and
// values. The two distributions handed to a metric must share a bin grid.
type Datum struct {
	X, Y []float64
}

// Default thresholds, matching the external comparison conventions the
// reference pipeline uses.
const (
	DefaultL2Threshold = 1.0
	DefaultL1Threshold = 1.0
	DefaultKSThreshold = 0.05
)

func checkGrids(d1, d2 Datum) error {
	if len(d1.X) != len(d1.Y) || len(d2.X) != len(d2.Y) {
		return fmt.Errorf("A distribution's bin centers and values have " +
			"different lengths.")
	}
	if len(d1.Y) != len(d2.Y) {
		return fmt.Errorf("The two distributions have %d and %d bins and "+
			"cannot be compared.", len(d1.Y), len(d2.Y))
	}
	if len(d1.Y) == 0 {
		return fmt.Errorf("The distributions are empty.")
	}
	return nil
}

// L2Diff computes the root-mean-square difference between the two
// distributions' values. The returned flag is true if the statistic is
// below threshold.
func L2Diff(d1, d2 Datum, threshold float64) (float64, bool, error) {
	if err := checkGrids(d1, d2); err != nil {
		return 0, false, err
	}

	diff := make([]float64, len(d1.Y))
	floats.SubTo(diff, d1.Y, d2.Y)
	l2 := math.Sqrt(floats.Dot(diff, diff) / float64(len(diff)))

	return l2, l2 < threshold, nil
}

// L1Diff computes the mean absolute difference between the two
// distributions' values. The returned flag is true if the statistic is
// below threshold.
func L1Diff(d1, d2 Datum, threshold float64) (float64, bool, error) {
	if err := checkGrids(d1, d2); err != nil {
		return 0, false, err
	}

	sum := 0.0
	for i := range d1.Y {
		sum += math.Abs(d1.Y[i] - d2.Y[i])
	}
	l1 := sum / float64(len(d1.Y))

	return l1, l1 < threshold, nil
}

// KSTest computes the Kolmogorov-Smirnov statistic, the maximum absolute
// difference between the two CDFs. The returned flag is true if the
// statistic is below threshold.
func KSTest(d1, d2 Datum, threshold float64) (float64, bool, error) {
	if err := checkGrids(d1, d2); err != nil {
		return 0, false, err
	}

	ks := 0.0
	for i := range d1.Y {
		if d := math.Abs(d1.Y[i] - d2.Y[i]); d > ks {
			ks = d
		}
	}

	return ks, ks < threshold, nil
}
