package catalog

import (
	"math"
	"math/rand"
	"testing"

	"github.com/nsevilla/descqa/cosmo"
)

const testH = 0.702

var testParams = cosmo.Flat(70.2, 0.275)

// testColumns builds an n-row catalog with uniformly random redshifts in
// [0, 2] and Gaussian rest-frame magnitudes.
func testColumns(n int, rand *rand.Rand) map[string][]float64 {
	cols := map[string][]float64{}
	names := []string{
		"halo_id", "parent_halo_id", "redshift", "x", "y", "z",
		"velocityX", "velocityY", "velocityZ",
		"mass", "stellar_mass", "gas_mass", "sfr",
		"SDSS_g:rest:", "SDSS_r:rest:",
	}
	for _, name := range names {
		cols[name] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		cols["halo_id"][i] = float64(i)
		cols["parent_halo_id"][i] = -1
		cols["redshift"][i] = rand.Float64() * 2
		cols["x"][i] = rand.Float64() * 1e5
		cols["y"][i] = rand.Float64() * 1e5
		cols["z"][i] = rand.Float64() * 1e5
		cols["mass"][i] = rand.Float64() * 100
		cols["stellar_mass"][i] = rand.Float64() * 10
		cols["SDSS_g:rest:"][i] = -20 + rand.NormFloat64()
		cols["SDSS_r:rest:"][i] = -21 + rand.NormFloat64()*0.5
	}

	return cols
}

func newTestCatalog(t *testing.T, n int, seed int64) *Catalog {
	rand := rand.New(rand.NewSource(seed))
	c, err := New(testColumns(n, rand), testParams, testH)
	if err != nil {
		t.Fatalf("Could not build test catalog: %s", err.Error())
	}
	return c
}

func TestFilterMaskLength(t *testing.T) {
	c := newTestCatalog(t, 1000, 42)

	zlo, zhi := 0.5, 1.0
	zs, err := c.GetQuantities("redshift", FilterSet{"zlo": zlo, "zhi": zhi})
	if err != nil {
		t.Fatalf("GetQuantities failed: %s", err.Error())
	}

	want := 0
	all, _ := c.GetQuantities("redshift", FilterSet{})
	for _, z := range all {
		if zlo < z && z < zhi {
			want++
		}
	}
	if len(zs) != want {
		t.Errorf("Filtered redshift column has %d rows, expected %d.",
			len(zs), want)
	}
	for i, z := range zs {
		if z <= zlo || z >= zhi {
			t.Fatalf("Row %d has redshift %g outside (%g, %g).",
				i, z, zlo, zhi)
		}
	}
}

func TestUnrecognizedFilterIgnored(t *testing.T) {
	c := newTestCatalog(t, 100, 3)

	all, err := c.GetQuantities("redshift", FilterSet{})
	if err != nil {
		t.Fatalf("GetQuantities failed: %s", err.Error())
	}
	filtered, err := c.GetQuantities("redshift", FilterSet{"masslo": 10})
	if err != nil {
		t.Fatalf("GetQuantities failed: %s", err.Error())
	}

	if len(all) != len(filtered) {
		t.Errorf("An unrecognized filter changed the row count: "+
			"%d -> %d.", len(all), len(filtered))
	}
}

func TestNonFinitePositionsExcluded(t *testing.T) {
	rand := rand.New(rand.NewSource(7))
	cols := testColumns(100, rand)
	cols["x"][3] = math.NaN()
	cols["y"][17] = math.Inf(1)
	cols["z"][59] = math.NaN()

	c, err := New(cols, testParams, testH)
	if err != nil {
		t.Fatalf("Could not build test catalog: %s", err.Error())
	}

	ids, err := c.GetQuantities("halo_id", FilterSet{})
	if err != nil {
		t.Fatalf("GetQuantities failed: %s", err.Error())
	}
	if len(ids) != 97 {
		t.Errorf("Expected 97 rows after the finite-position cut, got %d.",
			len(ids))
	}
	for _, id := range ids {
		if id == 3 || id == 17 || id == 59 {
			t.Errorf("Row %g with a non-finite position was returned.", id)
		}
	}
}

func TestDerivedMass(t *testing.T) {
	c := newTestCatalog(t, 200, 11)

	stored := c.cols["mass"]
	derived, err := c.GetQuantities("mass", FilterSet{})
	if err != nil {
		t.Fatalf("GetQuantities failed: %s", err.Error())
	}

	for i := range derived {
		if derived[i] != stored[i]*(1e10/testH) {
			t.Fatalf("Derived mass %d is %g, expected exactly %g.",
				i, derived[i], stored[i]*(1e10/testH))
		}
	}
}

func TestDerivedPosition(t *testing.T) {
	c := newTestCatalog(t, 200, 13)

	stored := c.cols["x"]
	derived, err := c.GetQuantities("positionX", FilterSet{})
	if err != nil {
		t.Fatalf("GetQuantities failed: %s", err.Error())
	}

	for i := range derived {
		if derived[i] != stored[i]*(1e-3/testH) {
			t.Fatalf("Derived positionX %d is %g, expected exactly %g.",
				i, derived[i], stored[i]*(1e-3/testH))
		}
	}
}

func TestObservedMagnitude(t *testing.T) {
	c := newTestCatalog(t, 100, 17)

	rest := c.cols["SDSS_r:rest:"]
	zs := c.cols["redshift"]
	obs, err := c.GetQuantities("SDSS_r:observed:", FilterSet{})
	if err != nil {
		t.Fatalf("GetQuantities failed: %s", err.Error())
	}

	for i := range obs {
		want := rest[i] + testParams.DistanceModulus(zs[i])
		if math.Abs(obs[i]-want) > 1e-10 {
			t.Fatalf("Observed magnitude %d is %g, expected %g.",
				i, obs[i], want)
		}
	}
}

func TestUnknownQuantity(t *testing.T) {
	c := newTestCatalog(t, 10, 19)
	_, err := c.GetQuantities("meow", FilterSet{})
	if err == nil {
		t.Errorf("No error was reported for an unknown quantity name.")
	}
}

func TestHasMissingSource(t *testing.T) {
	c := newTestCatalog(t, 10, 23)

	// The test catalog stores g and r rest-frame magnitudes only.
	if !c.Has("SDSS_g:observed:") {
		t.Errorf("Has('SDSS_g:observed:') = false with sources present.")
	}
	if c.Has("SDSS_u:observed:") {
		t.Errorf("Has('SDSS_u:observed:') = true without a u-band column.")
	}
	if c.Has("meow") {
		t.Errorf("Has('meow') = true.")
	}

	_, err := c.GetQuantities("SDSS_u:observed:", FilterSet{})
	if err == nil {
		t.Errorf("No error was reported for a quantity with a missing " +
			"source column.")
	}
}

func TestGetQuantitiesDoesNotMutate(t *testing.T) {
	c := newTestCatalog(t, 50, 29)

	before := make([]float64, 50)
	copy(before, c.cols["mass"])

	if _, err := c.GetQuantities("mass", FilterSet{}); err != nil {
		t.Fatalf("GetQuantities failed: %s", err.Error())
	}

	for i := range before {
		if c.cols["mass"][i] != before[i] {
			t.Fatalf("GetQuantities mutated the stored mass column.")
		}
	}
}

func TestLoadUnknownType(t *testing.T) {
	_, err := Load("nope.dat", "fits", testParams, testH)
	if err == nil {
		t.Errorf("No error was reported for an unrecognized catalog type.")
	}
}
