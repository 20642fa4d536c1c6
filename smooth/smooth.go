/*package smooth provides the moving-average smoothing used when plotting
binned color PDFs.*/
package smooth

// Kernel is a 1D smoothing kernel with some window width.
type Kernel struct {
	cs     []float64
	center int
}

// BoundaryCondition is a flag representing the rule used when the smoothing
// window extends outside the data range.
type BoundaryCondition int

const (
	Extension BoundaryCondition = iota
	Reflection
	ZeroPad
)

func (b BoundaryCondition) get(xs []float64, i int) float64 {
	n := len(xs)
	if i >= 0 && i < n {
		return xs[i]
	}

	switch b {
	case Extension:
		if i < 0 {
			return xs[0]
		}
		return xs[n-1]
	case Reflection:
		// The reflected extension is periodic with period 2n, so indices
		// far outside the data still resolve after folding.
		m := i % (2 * n)
		if m < 0 {
			m += 2 * n
		}
		if m >= n {
			m = 2*n - 1 - m
		}
		return xs[m]
	case ZeroPad:
		return 0
	}
	panic("Impossible")
}

// Tophat creates a constant smoothing kernel of the given width. Even
// widths are allowed and leave the window one sample heavier on the left,
// matching the convention of scipy's uniform_filter1d.
func Tophat(width int) *Kernel {
	if width < 1 {
		panic("Kernel width must be positive.")
	}

	k := &Kernel{cs: make([]float64, width), center: width / 2}
	for i := range k.cs {
		k.cs[i] = 1 / float64(width)
	}
	return k
}

// Convolve convolves a 1d data set with the kernel. Boundary conditions are
// specified with b.
//
// Make sure that xs corresponds to some uniformly-spaced sequence.
func (k *Kernel) Convolve(xs []float64, b BoundaryCondition) []float64 {
	out := make([]float64, len(xs))
	k.ConvolveAt(xs, b, out)
	return out
}

// ConvolveAt convolves a 1d data set with the kernel and writes the result
// to out.
func (k *Kernel) ConvolveAt(xs []float64, b BoundaryCondition, out []float64) {
	n := len(xs)
	nl, nr := k.center, len(k.cs)-1-k.center

	for i := 0; i < n; i++ {
		sum := 0.0
		if i >= nl && i+nr < n {
			for j, c := range k.cs {
				sum += xs[i+j-k.center] * c
			}
		} else {
			for j, c := range k.cs {
				sum += b.get(xs, i+j-k.center) * c
			}
		}
		out[i] = sum
	}
}
