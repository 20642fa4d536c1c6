/*package catalog exposes mock galaxy catalogs through a uniform
property-access interface. Quantities are either stored columns or derived
from stored columns through a small closed set of combinators.*/
package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/nsevilla/descqa/cosmo"
)

// Op enumerates the combinators a derived quantity can use. The set is
// closed: the evaluator switches over it exhaustively.
type Op int

const (
	// Stored reads a raw column directly.
	Stored Op = iota
	// ScaleMultiply multiplies a single source column by a constant. Used
	// for unit conversions.
	ScaleMultiply
	// AddDistanceModulus converts a rest-frame magnitude column to
	// observed frame by adding the cosmological distance modulus at each
	// row's redshift.
	AddDistanceModulus
)

// Quantity describes how a logical quantity name resolves to catalog data.
type Quantity struct {
	Op      Op
	Sources []string
	Scale   float64
}

// FilterSet maps filter names to threshold values. Recognized names are
// "zlo" (minimum redshift, exclusive) and "zhi" (maximum redshift,
// exclusive). Unrecognized names are silently ignored.
type FilterSet map[string]float64

// Catalog is a table of simulated galaxies, immutable after load.
type Catalog struct {
	n          int
	cols       map[string][]float64
	quantities map[string]Quantity
	params     cosmo.Params
	h          float64
	redshift   float64
}

// columns x, y, z and redshift back the filter mask and must exist in
// every catalog.
var coreColumns = []string{"x", "y", "z", "redshift"}

// mb2Quantities builds the quantity registry of the MB2-format catalogs.
// Masses are stored in 1e10 Msun/h and returned in Msun; positions are
// stored in kpc/h and returned in Mpc.
func mb2Quantities(h float64) map[string]Quantity {
	q := map[string]Quantity{
		"halo_id":        {Op: Stored, Sources: []string{"halo_id"}},
		"parent_halo_id": {Op: Stored, Sources: []string{"parent_halo_id"}},
		"redshift":       {Op: Stored, Sources: []string{"redshift"}},
		"velocityX":      {Op: Stored, Sources: []string{"velocityX"}},
		"velocityY":      {Op: Stored, Sources: []string{"velocityY"}},
		"velocityZ":      {Op: Stored, Sources: []string{"velocityZ"}},
		"gas_mass":       {Op: Stored, Sources: []string{"gas_mass"}},
		"sfr":            {Op: Stored, Sources: []string{"sfr"}},

		"mass": {Op: ScaleMultiply,
			Sources: []string{"mass"}, Scale: 1e10 / h},
		"stellar_mass": {Op: ScaleMultiply,
			Sources: []string{"stellar_mass"}, Scale: 1e10 / h},
		"positionX": {Op: ScaleMultiply,
			Sources: []string{"x"}, Scale: 1e-3 / h},
		"positionY": {Op: ScaleMultiply,
			Sources: []string{"y"}, Scale: 1e-3 / h},
		"positionZ": {Op: ScaleMultiply,
			Sources: []string{"z"}, Scale: 1e-3 / h},
	}

	for _, band := range []string{"u", "g", "r", "i", "z"} {
		q[fmt.Sprintf("SDSS_%s:observed:", band)] = Quantity{
			Op: AddDistanceModulus,
			Sources: []string{
				fmt.Sprintf("SDSS_%s:rest:", band), "redshift",
			},
		}
	}

	return q
}

// Load reads a catalog from path. typ selects the storage format, either
// "hdf5" (an HDF5 file with one dataset per column under the group "data")
// or "text" (a whitespace table with a fixed column order). params is the
// cosmology used for derived observed-frame magnitudes and h the little-h
// the stored units assume.
func Load(path, typ string, params cosmo.Params, h float64) (*Catalog, error) {
	var (
		cols map[string][]float64
		err  error
	)

	switch typ {
	case "hdf5":
		cols, err = loadHDF5(path)
	case "text":
		cols, err = loadText(path)
	default:
		return nil, fmt.Errorf("The catalog type '%s' isn't recognized.", typ)
	}
	if err != nil {
		return nil, err
	}

	return New(cols, params, h)
}

// New wraps already-loaded columns in a Catalog. All columns must have the
// same length and the core columns must be present.
func New(
	cols map[string][]float64, params cosmo.Params, h float64,
) (*Catalog, error) {
	if h <= 0 {
		return nil, fmt.Errorf("The Hubble parameter h was set to %g.", h)
	}

	n := -1
	for name, col := range cols {
		if n == -1 {
			n = len(col)
		} else if n != len(col) {
			return nil, fmt.Errorf("The catalog column '%s' has %d rows, "+
				"but other columns have %d.", name, len(col), n)
		}
	}
	if n <= 0 {
		return nil, fmt.Errorf("The catalog contains no rows.")
	}

	for _, name := range coreColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("The catalog is missing the required "+
				"column '%s'.", name)
		}
	}

	c := &Catalog{
		n:          n,
		cols:       cols,
		quantities: mb2Quantities(h),
		params:     params,
		h:          h,
		redshift:   cols["redshift"][0],
	}
	return c, nil
}

// N returns the number of rows in the catalog.
func (c *Catalog) N() int { return c.n }

// Redshift returns the redshift of the catalog's first row, following the
// convention that a snapshot catalog stores a single epoch.
func (c *Catalog) Redshift() float64 { return c.redshift }

// Has returns true if name resolves to a quantity whose source columns are
// all present in this catalog.
func (c *Catalog) Has(name string) bool {
	q, ok := c.quantities[name]
	if !ok {
		return false
	}
	for _, src := range q.Sources {
		if _, ok := c.cols[src]; !ok {
			return false
		}
	}
	return true
}

// Quantities returns the sorted names of all quantities available in this
// catalog.
func (c *Catalog) Quantities() []string {
	names := []string{}
	for name := range c.quantities {
		if c.Has(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// GetQuantities returns the requested quantity for all rows passing the
// filter mask, in stored row order. Rows with non-finite positions are
// always excluded. An unknown name or a missing source column is an error.
func (c *Catalog) GetQuantities(
	name string, filters FilterSet,
) ([]float64, error) {
	q, ok := c.quantities[name]
	if !ok {
		return nil, fmt.Errorf("The catalog has no quantity named '%s'.",
			name)
	}
	for _, src := range q.Sources {
		if _, ok := c.cols[src]; !ok {
			return nil, fmt.Errorf("The quantity '%s' needs the column "+
				"'%s', which this catalog does not store.", name, src)
		}
	}

	mask := c.mask(filters)
	srcs := make([][]float64, len(q.Sources))
	for i, src := range q.Sources {
		srcs[i] = compact(c.cols[src], mask)
	}

	switch q.Op {
	case Stored:
		return srcs[0], nil
	case ScaleMultiply:
		out := srcs[0]
		for i := range out {
			out[i] *= q.Scale
		}
		return out, nil
	case AddDistanceModulus:
		mags, zs := srcs[0], srcs[1]
		for i := range mags {
			mags[i] += c.params.DistanceModulus(zs[i])
		}
		return mags, nil
	}
	panic("Impossible")
}

// mask builds the row mask for a filter set: finite positions on all three
// axes, ANDed with the recognized redshift thresholds.
func (c *Catalog) mask(filters FilterSet) []bool {
	xs, ys, zs := c.cols["x"], c.cols["y"], c.cols["z"]
	reds := c.cols["redshift"]

	mask := make([]bool, c.n)
	for i := range mask {
		mask[i] = isFinite(xs[i]) && isFinite(ys[i]) && isFinite(zs[i])
	}

	if zlo, ok := filters["zlo"]; ok {
		for i := range mask {
			mask[i] = mask[i] && zlo < reds[i]
		}
	}
	if zhi, ok := filters["zhi"]; ok {
		for i := range mask {
			mask[i] = mask[i] && reds[i] < zhi
		}
	}

	return mask
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func compact(col []float64, mask []bool) []float64 {
	out := []float64{}
	for i := range col {
		if mask[i] {
			out = append(out, col[i])
		}
	}
	return out
}
