package spin

import (
	"github.com/san-kum/spinlab/internal/units"
	"github.com/san-kum/spinlab/internal/vecmat"
)

// RHS evaluates the dLLB right-hand side for the site's current moments
// and frozen pulsation vector:
//
//	dS/dt = c·[(ω×S) + α·(tr(Σ)·ω − Σᵗ·ω) − 2·D·c·S]
//	dΣ/dt = c·[M1 + M1ᵗ + D·c·M2]
//
// with c = 1/(1+α²), n = g·μ_B and D = γ·(α/n)·ThermalCoefficient.
func (s *Site) RHS(c units.Constants, T, alpha float64, th Thermostat) Moments {
	cf := 1 / (1 + alpha*alpha)
	d := s.diffusion(c, T, alpha, th)

	w := s.Omega
	sp := s.Moments.Spin
	sig := s.Moments.Sigma
	sigT := sig.Transpose()
	trSig := sig.Trace()

	dSpin := w.Cross(sp).
		Add(w.Scale(trSig).Sub(sigT.MulVec(w)).Scale(alpha)).
		Sub(sp.Scale(2 * d * cf)).
		Scale(cf)

	ws := w.Outer(sp)
	ss := sp.Outer(sp)

	a1 := ws.Scale(trSig).
		Sub(sigT.MulMat(ws)).
		Add(ws.MulMat(sigT)).
		Sub(sigT.Scale(ws.Trace())).
		Add(ws.Sub(ws.Transpose()).MulMat(sigT)).
		Sub(ws.Scale(ss.Trace()).Sub(ss.Transpose().MulMat(ws)).Scale(2))

	m1 := vecmat.CrossMat(w, sigT).Add(a1.Scale(alpha))
	m2 := vecmat.Identity().Scale(2 * trSig).Sub(sig.Add(sigT).Scale(3))

	dSigma := m1.Add(m1.Transpose()).Add(m2.Scale(d * cf)).Scale(cf)

	return Moments{Spin: dSpin, Sigma: dSigma}
}

// diffusion is the fluctuation-dissipation strength D. It vanishes for
// zero damping or zero Landé factor.
func (s *Site) diffusion(c units.Constants, T, alpha float64, th Thermostat) float64 {
	n := s.Params.G * c.MuB
	if n == 0 || alpha == 0 {
		return 0
	}
	return c.Gamma * (alpha / n) * s.ThermalCoefficient(c, T, th)
}
