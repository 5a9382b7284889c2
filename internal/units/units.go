// Package units carries the physical constants the dynamics depend on.
//
// Constants are passed explicitly through RHS and integrator calls rather
// than read from package globals, so a run is fully determined by its
// inputs.
package units

// Constants groups the SI constants used by the moment dynamics.
type Constants struct {
	Hbar  float64 // reduced Planck constant, J*s
	KB    float64 // Boltzmann constant, J/K
	MuB   float64 // Bohr magneton, J/T
	Gamma float64 // electron gyromagnetic ratio, rad/(s*T)
}

// SI returns the CODATA values.
func SI() Constants {
	return Constants{
		Hbar:  1.054571817e-34,
		KB:    1.380649e-23,
		MuB:   9.2740100783e-24,
		Gamma: 1.76085963023e11,
	}
}
