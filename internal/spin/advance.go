package spin

import (
	"fmt"
	"math"

	"github.com/san-kum/spinlab/internal/units"
	"github.com/san-kum/spinlab/internal/vecmat"
)

// Method selects the per-site moment integrator.
type Method int

const (
	MethodEuler Method = iota
	MethodRK4
	MethodSymplectic
)

func (m Method) String() string {
	switch m {
	case MethodEuler:
		return "euler"
	case MethodRK4:
		return "rk4"
	case MethodSymplectic:
		return "symplectic"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a configuration name to a method. Unknown names are an
// error; there is no silent no-op branch.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "euler":
		return MethodEuler, nil
	case "rk4", "rk45":
		return MethodRK4, nil
	case "symplectic":
		return MethodSymplectic, nil
	default:
		return 0, fmt.Errorf("spin: unsupported integrator %q", name)
	}
}

// Advance steps the site's moments by dt under the frozen pulsation
// vector, with thermostat temperature T and damping alpha.
func (s *Site) Advance(m Method, dt, T, alpha float64, th Thermostat, c units.Constants) {
	switch m {
	case MethodEuler:
		k := s.RHS(c, T, alpha, th)
		s.Moments.AddAssign(k.Scale(dt))
	case MethodRK4:
		s.advanceRK4(dt, T, alpha, th, c)
	case MethodSymplectic:
		s.advanceSymplectic(dt, T, alpha, th, c)
	}
}

// advanceRK4 is the classical 4-stage rule with (1,2,2,1)/6 weights; each
// stage re-evaluates the RHS at the shifted state.
func (s *Site) advanceRK4(dt, T, alpha float64, th Thermostat, c units.Constants) {
	orig := s.Moments

	k1 := s.RHS(c, T, alpha, th)
	s.Moments = orig.Add(k1.Scale(dt / 2))
	k2 := s.RHS(c, T, alpha, th)
	s.Moments = orig.Add(k2.Scale(dt / 2))
	k3 := s.RHS(c, T, alpha, th)
	s.Moments = orig.Add(k3.Scale(dt))
	k4 := s.RHS(c, T, alpha, th)

	s.Moments = orig.Add(k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(dt / 6))
}

// advanceSymplectic is a geometric splitting step: the precession part of
// the first moment is an exact rotation about ω (norm-preserving), the
// damping/thermal remainder is applied as symmetric half-kicks, and the
// second moment is advanced by explicit midpoint.
func (s *Site) advanceSymplectic(dt, T, alpha float64, th Thermostat, c units.Constants) {
	cf := 1 / (1 + alpha*alpha)

	sigOrig := s.Moments.Sigma
	k1 := s.RHS(c, T, alpha, th)
	s.Moments.Sigma = sigOrig.Add(k1.Sigma.Scale(dt / 2))
	k2 := s.RHS(c, T, alpha, th)
	s.Moments.Sigma = sigOrig.Add(k2.Sigma.Scale(dt))

	s.Moments.Spin.AddAssign(s.spinRemainder(c, T, alpha, th).Scale(dt / 2))
	s.Moments.Spin = rotate(s.Moments.Spin, s.Omega, cf*s.Omega.Norm()*dt)
	s.Moments.Spin.AddAssign(s.spinRemainder(c, T, alpha, th).Scale(dt / 2))
}

// spinRemainder is dS/dt without the precession term ω×S.
func (s *Site) spinRemainder(c units.Constants, T, alpha float64, th Thermostat) vecmat.Vector3 {
	cf := 1 / (1 + alpha*alpha)
	d := s.diffusion(c, T, alpha, th)
	sigT := s.Moments.Sigma.Transpose()
	trSig := s.Moments.Sigma.Trace()
	return s.Omega.Scale(trSig).Sub(sigT.MulVec(s.Omega)).Scale(alpha).
		Sub(s.Moments.Spin.Scale(2 * d * cf)).
		Scale(cf)
}

// rotate applies the Rodrigues rotation of v about axis by angle.
func rotate(v, axis vecmat.Vector3, angle float64) vecmat.Vector3 {
	n := axis.Norm()
	if n == 0 || angle == 0 {
		return v
	}
	k := axis.Scale(1 / n)
	sin, cos := math.Sincos(angle)
	return v.Scale(cos).
		Add(k.Cross(v).Scale(sin)).
		Add(k.Scale(k.Dot(v) * (1 - cos)))
}
