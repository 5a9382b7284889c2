package thermal

import (
	"math"
	"testing"
)

func decoupledConfig() Config {
	return Config{
		Thickness: 15e-9,
		T0:        300,
		GammaE:    100,
		Cp:        3e6,
		Cs:        3e5,
	}
}

func TestSteadyState(t *testing.T) {
	// zero couplings and zero fluence: temperatures stay at T0 for all
	// methods, for any number of steps
	for _, m := range []BathMethod{BathEuler, BathRK2, BathRK4} {
		b := NewBath(decoupledConfig(), Pulse{Shape: PulseGaussian, Fluence: 0, Duration: 50e-15, Delay: 1e-12})
		for i := 0; i < 5000; i++ {
			b.Advance(m, 1e-15)
		}
		s := b.State()
		if s.Electron != 300 || s.Phonon != 300 || s.Spin != 300 {
			t.Errorf("%v: drifted to %+v", m, s)
		}
	}
}

func TestGaussianPower(t *testing.T) {
	p := Pulse{Shape: PulseGaussian, Fluence: 10, Duration: 50e-15, Delay: 1e-12}
	thickness := 15e-9

	peak := p.Power(p.Delay, thickness)
	want := p.Fluence / (p.Duration * thickness)
	if math.Abs(peak-want)/want > 1e-12 {
		t.Errorf("peak power = %v, want %v", peak, want)
	}

	// symmetric falloff
	left := p.Power(p.Delay-30e-15, thickness)
	right := p.Power(p.Delay+30e-15, thickness)
	if math.Abs(left-right)/left > 1e-12 {
		t.Errorf("asymmetric pulse: %v vs %v", left, right)
	}
	if left >= peak {
		t.Errorf("falloff missing: %v >= %v", left, peak)
	}

	if got := (Pulse{Shape: PulseNone, Fluence: 10, Duration: 50e-15}).Power(0, thickness); got != 0 {
		t.Errorf("none pulse power = %v", got)
	}
}

func TestEstimateTimestep(t *testing.T) {
	cfg := decoupledConfig()
	cfg.Gep = 6e17
	b := NewBath(cfg, Pulse{})
	b.state = State{Electron: 310, Phonon: 300, Spin: 300}

	// hand-computed from the fixture:
	//   dTe = -(Gep/GammaE)*(1 - 300/310)
	//   dTp = (Gep/Cp)*(310-300)
	//   dTs = 0
	dTe := -(cfg.Gep / cfg.GammaE) * (1 - 300.0/310.0)
	dTp := (cfg.Gep / cfg.Cp) * 10.0
	max := math.Max(math.Abs(dTe), dTp)

	quality := 0.1
	got := b.EstimateTimestep(quality)
	want := quality / max
	if math.Abs(got-want)/want > 1e-12 {
		t.Errorf("estimate = %v, want %v", got, want)
	}
}

func TestEstimateTimestepQuiescent(t *testing.T) {
	b := NewBath(decoupledConfig(), Pulse{})
	if got := b.EstimateTimestep(0.1); !math.IsInf(got, 1) {
		t.Errorf("quiescent estimate = %v, want +Inf", got)
	}
}

func TestRelaxationToward(t *testing.T) {
	// hot electrons with e-p coupling only: Te falls, Tp rises, Ts inert
	cfg := decoupledConfig()
	cfg.Gep = 6e17
	b := NewBath(cfg, Pulse{})
	b.state = State{Electron: 800, Phonon: 300, Spin: 300}

	for i := 0; i < 20000; i++ {
		b.Advance(BathRK4, 1e-16)
	}

	s := b.State()
	if s.Electron >= 800 {
		t.Errorf("electron bath did not cool: %v", s.Electron)
	}
	if s.Phonon <= 300 {
		t.Errorf("phonon bath did not heat: %v", s.Phonon)
	}
	if s.Spin != 300 {
		t.Errorf("decoupled spin bath moved: %v", s.Spin)
	}
}

func TestNewtonCooling(t *testing.T) {
	cfg := decoupledConfig()
	cfg.Tau = 1e-12
	b := NewBath(cfg, Pulse{})
	b.state.Electron = 500

	for i := 0; i < 10000; i++ {
		b.Advance(BathRK2, 1e-15)
	}

	// ten relaxation times later the excess is gone
	if excess := b.State().Electron - 300; math.Abs(excess) > 0.1 {
		t.Errorf("electron excess after cooling = %v", excess)
	}
}

func TestParseBathMethod(t *testing.T) {
	cases := map[string]BathMethod{
		"euler": BathEuler,
		"rk1":   BathEuler,
		"rk2":   BathRK2,
		"rk4":   BathRK4,
	}
	for name, want := range cases {
		got, err := ParseBathMethod(name)
		if err != nil || got != want {
			t.Errorf("ParseBathMethod(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseBathMethod("rk45"); err == nil {
		t.Error("expected error for unknown bath method")
	}
}

func TestParsePulseShape(t *testing.T) {
	if got, err := ParsePulseShape("gaussian"); err != nil || got != PulseGaussian {
		t.Errorf("gaussian: %v, %v", got, err)
	}
	if got, err := ParsePulseShape("none"); err != nil || got != PulseNone {
		t.Errorf("none: %v, %v", got, err)
	}
	if _, err := ParsePulseShape("sech"); err == nil {
		t.Error("expected error for unknown pulse shape")
	}
}

func TestBathEncode(t *testing.T) {
	b := NewBath(decoupledConfig(), Pulse{Shape: PulseGaussian, Fluence: 10, Duration: 50e-15})
	data, err := b.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty encoding")
	}
}
