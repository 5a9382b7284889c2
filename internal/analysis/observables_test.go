package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/spinlab/internal/spin"
	"github.com/san-kum/spinlab/internal/units"
	"github.com/san-kum/spinlab/internal/vecmat"
)

func siteWithSpin(g float64, s vecmat.Vector3) spin.Site {
	return spin.NewSite("", 0, spin.Params{G: g}, vecmat.Vector3{}, s)
}

func TestMagnetizationCancellation(t *testing.T) {
	sites := []spin.Site{
		siteWithSpin(2, vecmat.New(1, 0, 0)),
		siteWithSpin(2, vecmat.New(-1, 0, 0)),
	}
	if got := Magnetization(sites); got != (vecmat.Vector3{}) {
		t.Errorf("magnetization = %v, want zero", got)
	}
}

func TestMagnetizationLengthAligned(t *testing.T) {
	sites := make([]spin.Site, 7)
	for i := range sites {
		sites[i] = siteWithSpin(2, vecmat.New(0, 0, 1))
	}
	if got := MagnetizationLength(sites); got != 1 {
		t.Errorf("magnetization length = %v, want 1", got)
	}
}

func TestZeroTotalWeight(t *testing.T) {
	sites := []spin.Site{
		siteWithSpin(0, vecmat.New(1, 0, 0)),
		siteWithSpin(0, vecmat.New(0, 1, 0)),
	}
	if got := Magnetization(sites); got != (vecmat.Vector3{}) {
		t.Errorf("magnetization = %v", got)
	}
	if got := MagnetizationLength(sites); got != 0 {
		t.Errorf("magnetization length = %v", got)
	}
}

func TestEnergyAndTorque(t *testing.T) {
	s := siteWithSpin(2, vecmat.New(1, 0, 0))
	s.Omega = vecmat.New(0, 0, 3)
	sites := []spin.Site{s}

	if got := Energy(sites); got != 0 {
		t.Errorf("energy = %v, want 0 (spin perpendicular to field)", got)
	}
	if got := Torque(sites); got != vecmat.New(0, 3, 0) {
		t.Errorf("torque = %v", got)
	}

	// aligned spin: full energy, no torque
	s.Moments.Spin = vecmat.New(0, 0, 1)
	sites[0] = s
	if got := Energy(sites); got != 3 {
		t.Errorf("energy = %v, want 3", got)
	}
	if got := Torque(sites); got != (vecmat.Vector3{}) {
		t.Errorf("torque = %v, want zero", got)
	}
}

func TestSpinTemperature(t *testing.T) {
	c := units.SI()
	s := siteWithSpin(2, vecmat.New(1, 0, 1).Normalized())
	s.Omega = vecmat.New(0, 0, 1e10)
	sites := []spin.Site{s}

	want := Torque(sites).NormSq() * c.Hbar / (Energy(sites) * 2 * c.KB)
	got := SpinTemperature(c, sites, 2)
	if math.Abs(got-want) > math.Abs(want)*1e-12 {
		t.Errorf("spin temperature = %v, want %v", got, want)
	}

	// zero energy must not fault
	s.Moments.Spin = vecmat.New(1, 0, 0)
	sites[0] = s
	if got := SpinTemperature(c, sites, 2); got != 0 {
		t.Errorf("spin temperature at zero energy = %v", got)
	}
}

func TestSusceptibilityOfPureState(t *testing.T) {
	// a site constructed from a single direction has Sigma = S⊗S, so the
	// fluctuation covariance vanishes
	sites := []spin.Site{
		siteWithSpin(2, vecmat.New(0, 0, 1)),
		siteWithSpin(2, vecmat.New(1, 0, 0)),
	}
	if got := Susceptibility(sites); got != (vecmat.Matrix3{}) {
		t.Errorf("susceptibility = %v, want zero", got)
	}
}

func TestCumulant(t *testing.T) {
	sites := []spin.Site{
		siteWithSpin(2, vecmat.New(0, 0, 1)),
		siteWithSpin(2, vecmat.New(1, 0, 0)),
	}
	got := Cumulant(sites)
	if got[0][0] != 0.5 || got[2][2] != 0.5 {
		t.Errorf("cumulant diagonal = %v", got.Diagonal())
	}

	if got := Cumulant(nil); got != (vecmat.Matrix3{}) {
		t.Errorf("empty cumulant = %v", got)
	}
}
