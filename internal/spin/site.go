package spin

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/spinlab/internal/vecmat"
)

// Moments holds the first and second statistical moments of a site's spin:
// Spin is the mean <S>, Sigma the covariance tensor <S⊗S>. Only the
// advance step mutates a site's moments.
type Moments struct {
	Spin  vecmat.Vector3 `json:"spin"`
	Sigma vecmat.Matrix3 `json:"sigma"`
}

func (m Moments) Add(o Moments) Moments {
	return Moments{Spin: m.Spin.Add(o.Spin), Sigma: m.Sigma.Add(o.Sigma)}
}

func (m Moments) Scale(s float64) Moments {
	return Moments{Spin: m.Spin.Scale(s), Sigma: m.Sigma.Scale(s)}
}

func (m *Moments) AddAssign(o Moments) {
	m.Spin.AddAssign(o.Spin)
	m.Sigma.AddAssign(o.Sigma)
}

// Params are the static physical parameters of a site.
type Params struct {
	G            float64 `json:"lande" yaml:"lande"`                 // Landé factor, must be >= 0
	MagnonEnergy float64 `json:"magnon_energy" yaml:"magnon_energy"` // J
	Dref         float64 `json:"d_ref" yaml:"d_ref"`                 // reference exchange stiffness, J*m^2
	VanHove      float64 `json:"van_hove" yaml:"van_hove"`           // van Hove parameter, s
	Vat          float64 `json:"cell_volume" yaml:"cell_volume"`     // atomic cell volume, m^3
}

// Site is one atomic site: identity, static parameters, position, the
// local pulsation vector written by the field aggregator, and the moments
// it exclusively owns.
type Site struct {
	Name     string         `json:"name"`
	Kind     int            `json:"kind"`
	Params   Params         `json:"params"`
	Position vecmat.Vector3 `json:"position"`
	Omega    vecmat.Vector3 `json:"omega"`
	Moments  Moments        `json:"moments"`
}

// NewSite constructs a site with the given identity, parameters, position
// and initial spin direction (second moment starts as spin⊗spin).
// A negative Landé factor is a fatal precondition violation and panics.
func NewSite(name string, kind int, p Params, pos, spin vecmat.Vector3) Site {
	if p.G < 0 {
		panic(fmt.Sprintf("spin: negative Landé factor %v for site %q", p.G, name))
	}
	return Site{
		Name:     name,
		Kind:     kind,
		Params:   p,
		Position: pos,
		Moments:  Moments{Spin: spin, Sigma: spin.Outer(spin)},
	}
}

// Encode renders the site to its self-describing interchange form.
func (s *Site) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("spin: encoding site %q: %w", s.Name, err)
	}
	return data, nil
}
