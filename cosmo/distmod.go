package cosmo

import (
	"math"
)

// Steps per unit redshift in the comoving distance integral. At this
// resolution Simpson's rule converges far below the precision of anything
// downstream of a magnitude.
const stepsPerZ = 1024

// ComovingDistance calculates the line-of-sight comoving distance to
// redshift z in Mpc, D_C = (c/H0) Int_0^z dz'/E(z'), with Simpson's rule.
func (p Params) ComovingDistance(z float64) float64 {
	if z <= 0 {
		return 0
	}

	n := int(math.Ceil(z * stepsPerZ))
	if n%2 == 1 {
		n++
	}
	dz := z / float64(n)

	f := func(z float64) float64 {
		return 1 / HubbleFrac(p.OmegaM, p.OmegaL, z)
	}

	sum := f(0) + f(z)
	for i := 1; i < n; i++ {
		if i%2 == 1 {
			sum += 4 * f(dz*float64(i))
		} else {
			sum += 2 * f(dz*float64(i))
		}
	}

	return SpeedOfLight / p.H0 * sum * dz / 3
}

// LuminosityDistance calculates the luminosity distance to redshift z in
// Mpc. Flat cosmology, so D_L = (1 + z) D_C.
func (p Params) LuminosityDistance(z float64) float64 {
	return (1 + z) * p.ComovingDistance(z)
}

// DistanceModulus calculates the magnitude offset between the rest-frame
// and observed-frame magnitude of an object at redshift z,
// m - M = 5 log10(D_L / 10 pc). Diverges to -Inf as z -> 0.
func (p Params) DistanceModulus(z float64) float64 {
	return 5*math.Log10(p.LuminosityDistance(z)) + 25
}
