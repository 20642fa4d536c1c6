package cosmo

import (
	"math"
)

// SpeedOfLight is c in km/s.
const SpeedOfLight = 299792.458

// Params holds the parameters of a flat Lambda-CDM cosmology. H0 is in
// km/s/Mpc. Catalogs are constructed with an explicit Params value rather
// than reading a process-wide default.
type Params struct {
	H0, OmegaM, OmegaL float64
}

// Flat creates the parameters of a flat Lambda-CDM cosmology,
// OmegaL = 1 - OmegaM.
func Flat(H0, omegaM float64) Params {
	return Params{H0: H0, OmegaM: omegaM, OmegaL: 1 - omegaM}
}

// HubbleFrac calculates h(z) = H(z)/H0. Here H(z) is from Hubble's Law,
// H(z)**2 + k (c/a)**2 = H0**2 h100**2 (OmegaR a**-4 + OmegaM a**-3 + OmegaL).
// Assumes k, r = 0.
func HubbleFrac(omegaM, omegaL, z float64) float64 {
	return math.Sqrt(omegaM*math.Pow(1.0+z, 3.0) + omegaL)
}
