package thermal

import (
	"fmt"
	"math"
)

// PulseShape is the waveform of the absorbed laser power.
type PulseShape int

const (
	// PulseNone delivers zero power at all times.
	PulseNone PulseShape = iota
	// PulseGaussian is a Gaussian envelope around the delay time.
	PulseGaussian
)

func (p PulseShape) String() string {
	switch p {
	case PulseNone:
		return "none"
	case PulseGaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("PulseShape(%d)", int(p))
	}
}

// ParsePulseShape maps a configuration name to a shape. Unknown names are
// an error rather than an implicit zero-power waveform.
func ParsePulseShape(name string) (PulseShape, error) {
	switch name {
	case "none", "":
		return PulseNone, nil
	case "gaussian":
		return PulseGaussian, nil
	default:
		return 0, fmt.Errorf("thermal: unsupported pulse shape %q", name)
	}
}

// Pulse is the laser excitation source.
type Pulse struct {
	Shape    PulseShape `json:"shape"`
	Fluence  float64    `json:"fluence"`  // J/m^2
	Duration float64    `json:"duration"` // s
	Delay    float64    `json:"delay"`    // s
}

// Power returns the absorbed power density at time t for a film of the
// given effective thickness.
func (p Pulse) Power(t, thickness float64) float64 {
	switch p.Shape {
	case PulseGaussian:
		arg := t - p.Delay
		return p.Fluence / (p.Duration * thickness) *
			math.Exp(-arg*arg/(0.36*p.Duration*p.Duration))
	default:
		return 0
	}
}
