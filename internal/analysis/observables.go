// Package analysis reduces a site collection into physical observables.
// Every function is a stateless pass over the sites: nothing here mutates
// a moment or a pulsation vector.
package analysis

import (
	"github.com/san-kum/spinlab/internal/spin"
	"github.com/san-kum/spinlab/internal/units"
	"github.com/san-kum/spinlab/internal/vecmat"
)

// Energy is the sum of omega_i · S_i over all sites.
func Energy(sites []spin.Site) float64 {
	e := 0.0
	for i := range sites {
		e += sites[i].Omega.Dot(sites[i].Moments.Spin)
	}
	return e
}

// Magnetization is the Landé-weighted mean spin. Zero when the total
// weight vanishes.
func Magnetization(sites []spin.Site) vecmat.Vector3 {
	var sum vecmat.Vector3
	total := 0.0
	for i := range sites {
		g := sites[i].Params.G
		sum.AddAssign(sites[i].Moments.Spin.Scale(g))
		total += g
	}
	if total == 0 {
		return vecmat.Vector3{}
	}
	return sum.Scale(1 / total)
}

// MagnetizationLength is the Landé-weighted mean spin norm.
func MagnetizationLength(sites []spin.Site) float64 {
	sum, total := 0.0, 0.0
	for i := range sites {
		g := sites[i].Params.G
		sum += g * sites[i].Moments.Spin.Norm()
		total += g
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// Torque is the sum of omega_i x S_i.
func Torque(sites []spin.Site) vecmat.Vector3 {
	var sum vecmat.Vector3
	for i := range sites {
		sum.AddAssign(sites[i].Omega.Cross(sites[i].Moments.Spin))
	}
	return sum
}

// SpinTemperatureCoefficient is the conventional denominator coefficient
// of the microcanonical spin-temperature estimator.
const SpinTemperatureCoefficient = 2.0

// SpinTemperature is the microcanonical estimator
// |torque|²·ħ / (energy·coefficient·k_B). Callers wanting the
// conventional estimator pass [SpinTemperatureCoefficient]. Zero energy
// yields zero rather than a division fault.
func SpinTemperature(c units.Constants, sites []spin.Site, coefficient float64) float64 {
	e := Energy(sites)
	if e == 0 || coefficient == 0 {
		return 0
	}
	return Torque(sites).NormSq() * c.Hbar / (e * coefficient * c.KB)
}

// Susceptibility is the mean spin-fluctuation covariance tensor
// (1/N)·Σ_i (Sigma_i − S_i⊗S_i).
func Susceptibility(sites []spin.Site) vecmat.Matrix3 {
	var sum vecmat.Matrix3
	if len(sites) == 0 {
		return sum
	}
	for i := range sites {
		s := sites[i].Moments.Spin
		sum.AddAssign(sites[i].Moments.Sigma.Sub(s.Outer(s)))
	}
	return sum.Scale(1 / float64(len(sites)))
}

// Cumulant is the mean second moment (1/N)·Σ_i Sigma_i.
func Cumulant(sites []spin.Site) vecmat.Matrix3 {
	var sum vecmat.Matrix3
	if len(sites) == 0 {
		return sum
	}
	for i := range sites {
		sum.AddAssign(sites[i].Moments.Sigma)
	}
	return sum.Scale(1 / float64(len(sites)))
}
