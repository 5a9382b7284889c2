package config

// Presets are ready-made configurations for the common experiments.
var Presets = map[string]*Config{
	// pure Larmor precession: no damping, no temperature
	"larmor": {
		Model: Model{Sites: 3, Spacing: 2.5e-10, Lande: 2.0, MagnonEnergy: 1.0e-21,
			Dref: 2.0e-40, VanHove: 1.0e-14, CellVolume: 1.2e-29, Direction: "+x"},
		Run: Run{Dt: 1e-15, Steps: 5000, Temperature: 0, Alpha: 0,
			Integrator: "euler", Thermostat: "classical", Observable: "spins", Output: "trace.dat"},
		Field: Field{Bz: 1.0},
		Laser: defaultLaser(),
	},
	// damped relaxation toward the field axis at room temperature
	"relax": {
		Model: Model{Sites: 16, Spacing: 2.5e-10, Lande: 2.0, MagnonEnergy: 1.0e-21,
			Dref: 2.0e-40, VanHove: 1.0e-14, CellVolume: 1.2e-29, Direction: "+x"},
		Run: Run{Dt: 1e-15, Steps: 20000, Temperature: 300, Alpha: 0.05,
			Integrator: "rk4", Thermostat: "quantum", Observable: "magnetization", Output: "trace.dat"},
		Field: Field{Bz: 2.0},
		Laser: defaultLaser(),
	},
	// ultrafast demagnetization: laser bath driving the thermostat
	"demag": {
		Model: Model{Sites: 32, Spacing: 2.5e-10, Lande: 2.0, MagnonEnergy: 1.0e-21,
			Dref: 2.0e-40, VanHove: 1.0e-14, CellVolume: 1.2e-29, Direction: "+z"},
		Run: Run{Dt: 1e-15, Steps: 10000, Temperature: 300, Alpha: 0.1,
			Integrator: "rk4", Thermostat: "quantum-dos", Observable: "magnetization", Output: "trace.dat"},
		Field: Field{Bz: 0.5},
		Laser: Laser{Thickness: 15e-9, T0: 300, GammaE: 700, Cp: 3e6, Cs: 3e5,
			Gep: 8e17, Ges: 6e17, Gps: 3e16,
			Shape: "gaussian", Fluence: 30, Duration: 50e-15, Delay: 1e-12, Method: "rk4"},
	},
}

func defaultLaser() Laser {
	return DefaultConfig().Laser
}

// GetPreset returns a copy of the named preset, or nil. Callers may
// mutate the result freely; the preset table stays pristine.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
