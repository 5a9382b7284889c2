// Package fields carries the built-in field sources. The full
// exchange/anisotropy aggregator lives outside this module; the uniform
// Zeeman source here is the smallest collaborator that lets a run and
// the regression suite exercise the engine.
package fields

import (
	"github.com/san-kum/spinlab/internal/spin"
	"github.com/san-kum/spinlab/internal/units"
	"github.com/san-kum/spinlab/internal/vecmat"
)

// Zeeman applies a uniform external field: omega_i = g_i·mu_B·B/hbar.
type Zeeman struct {
	B      vecmat.Vector3
	Consts units.Constants
}

func NewZeeman(b vecmat.Vector3, c units.Constants) *Zeeman {
	return &Zeeman{B: b, Consts: c}
}

// Refresh recomputes every site's pulsation vector. A uniform field does
// not depend on the moments, but the call still runs once per sweep so
// the engine's barrier semantics hold for any source.
func (z *Zeeman) Refresh(sites []spin.Site) {
	for i := range sites {
		sites[i].Omega = z.B.Scale(sites[i].Params.G * z.Consts.MuB / z.Consts.Hbar)
	}
}
