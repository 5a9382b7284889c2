package thermal

import (
	"encoding/json"
	"fmt"
	"math"
)

// State holds the three bath temperatures.
type State struct {
	Electron float64 `json:"electron"`
	Phonon   float64 `json:"phonon"`
	Spin     float64 `json:"spin"`
}

func (s State) Add(o State) State {
	return State{s.Electron + o.Electron, s.Phonon + o.Phonon, s.Spin + o.Spin}
}

func (s State) Sub(o State) State {
	return State{s.Electron - o.Electron, s.Phonon - o.Phonon, s.Spin - o.Spin}
}

func (s State) Scale(f float64) State {
	return State{f * s.Electron, f * s.Phonon, f * s.Spin}
}

func (s *State) AddAssign(o State) {
	s.Electron += o.Electron
	s.Phonon += o.Phonon
	s.Spin += o.Spin
}

// Config holds the bath constants. Immutable after construction.
type Config struct {
	Thickness float64 `json:"thickness"` // effective film thickness, m
	T0        float64 `json:"t0"`        // initial/reference temperature, K
	Tau       float64 `json:"tau"`       // Newton-cooling relaxation time, s (0 disables)
	GammaE    float64 `json:"gamma_e"`   // electron capacity constant: Ce = GammaE*Te
	Cp        float64 `json:"cp"`        // phonon heat capacity
	Cs        float64 `json:"cs"`        // spin heat capacity
	Gep       float64 `json:"gep"`       // electron-phonon coupling
	Ges       float64 `json:"ges"`       // electron-spin coupling
	Gps       float64 `json:"gps"`       // phonon-spin coupling
}

// BathMethod selects the bath time stepper.
type BathMethod int

const (
	BathEuler BathMethod = iota
	BathRK2
	BathRK4
)

func (m BathMethod) String() string {
	switch m {
	case BathEuler:
		return "euler"
	case BathRK2:
		return "rk2"
	case BathRK4:
		return "rk4"
	default:
		return fmt.Sprintf("BathMethod(%d)", int(m))
	}
}

// ParseBathMethod maps a configuration name to a stepper. Unknown names
// are an error; the silent no-op branch is gone.
func ParseBathMethod(name string) (BathMethod, error) {
	switch name {
	case "euler", "rk1":
		return BathEuler, nil
	case "rk2":
		return BathRK2, nil
	case "rk4":
		return BathRK4, nil
	default:
		return 0, fmt.Errorf("thermal: unsupported bath method %q", name)
	}
}

// Bath is the two/three-temperature model: a single sequentially updated
// state cell advanced by its own steppers, independent of the moment
// integrator.
type Bath struct {
	cfg   Config
	pulse Pulse
	state State
	t     float64
}

// NewBath starts all three temperatures at the reference temperature.
func NewBath(cfg Config, pulse Pulse) *Bath {
	return &Bath{
		cfg:   cfg,
		pulse: pulse,
		state: State{Electron: cfg.T0, Phonon: cfg.T0, Spin: cfg.T0},
	}
}

func (b *Bath) State() State { return b.state }
func (b *Bath) Time() float64 { return b.t }
func (b *Bath) Config() Config { return b.cfg }

// RHS evaluates the bath derivatives at time t and state s.
func (b *Bath) RHS(t float64, s State) State {
	var d State

	if b.cfg.GammaE > 0 && s.Electron > 0 {
		d.Electron = b.pulse.Power(t, b.cfg.Thickness) / (b.cfg.GammaE * s.Electron)
		d.Electron -= (b.cfg.Gep / b.cfg.GammaE) * (1 - s.Phonon/s.Electron)
		d.Electron -= (b.cfg.Ges / b.cfg.GammaE) * (1 - s.Spin/s.Electron)
	}
	if b.cfg.Tau > 0 {
		d.Electron -= (s.Electron - b.cfg.T0) / b.cfg.Tau
	}

	if b.cfg.Cp > 0 {
		d.Phonon = (b.cfg.Gep/b.cfg.Cp)*(s.Electron-s.Phonon) +
			(b.cfg.Gps/b.cfg.Cp)*(s.Spin-s.Phonon)
	}

	if b.cfg.Cs > 0 {
		d.Spin = (b.cfg.Ges/b.cfg.Cs)*(s.Electron-s.Spin) +
			(b.cfg.Gps/b.cfg.Cs)*(s.Phonon-s.Spin)
	}

	return d
}

// Advance steps the bath by dt with the chosen method.
func (b *Bath) Advance(m BathMethod, dt float64) {
	switch m {
	case BathEuler:
		k := b.RHS(b.t, b.state)
		b.state.AddAssign(k.Scale(dt))
	case BathRK2:
		// explicit midpoint
		k1 := b.RHS(b.t, b.state)
		mid := b.state.Add(k1.Scale(dt / 2))
		k2 := b.RHS(b.t+dt/2, mid)
		b.state.AddAssign(k2.Scale(dt))
	case BathRK4:
		k1 := b.RHS(b.t, b.state)
		k2 := b.RHS(b.t+dt/2, b.state.Add(k1.Scale(dt/2)))
		k3 := b.RHS(b.t+dt/2, b.state.Add(k2.Scale(dt/2)))
		k4 := b.RHS(b.t+dt, b.state.Add(k3.Scale(dt)))
		b.state.AddAssign(k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(dt / 6))
	}
	b.t += dt
}

// EstimateTimestep returns quality / max(|dTe/dt|, |dTp/dt|, |dTs/dt|)
// from a single RHS evaluation at the current state. It is a one-shot
// local bound, not an embedded error estimator: there is no step
// accept/reject loop.
func (b *Bath) EstimateTimestep(quality float64) float64 {
	d := b.RHS(b.t, b.state)
	m := math.Max(math.Abs(d.Electron), math.Max(math.Abs(d.Phonon), math.Abs(d.Spin)))
	if m == 0 {
		return math.Inf(1)
	}
	return quality / m
}

// Encode renders the bath state and constants to the interchange form.
func (b *Bath) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(struct {
		Time   float64 `json:"time"`
		State  State   `json:"state"`
		Config Config  `json:"config"`
		Pulse  Pulse   `json:"pulse"`
	}{b.t, b.state, b.cfg, b.pulse}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("thermal: encoding bath: %w", err)
	}
	return data, nil
}
