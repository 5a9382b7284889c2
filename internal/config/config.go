// Package config loads, saves and validates run configurations.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/spinlab/internal/engine"
	"github.com/san-kum/spinlab/internal/spin"
	"github.com/san-kum/spinlab/internal/thermal"
	"github.com/san-kum/spinlab/internal/vecmat"
)

const (
	DefaultSites = 8
	DefaultDt    = 1e-15
	DefaultSteps = 10000
	DefaultAlpha = 0.01
	DefaultTemp  = 300.0
)

type Config struct {
	Model Model `yaml:"model"`
	Run   Run   `yaml:"run"`
	Field Field `yaml:"field"`
	Laser Laser `yaml:"laser"`
}

// Model describes the site chain the run is built over.
type Model struct {
	Sites        int     `yaml:"sites"`
	Spacing      float64 `yaml:"spacing"` // m
	Lande        float64 `yaml:"lande"`
	MagnonEnergy float64 `yaml:"magnon_energy"` // J
	Dref         float64 `yaml:"d_ref"`
	VanHove      float64 `yaml:"van_hove"`
	CellVolume   float64 `yaml:"cell_volume"`
	Direction    string  `yaml:"direction"` // initial spin direction preset
}

type Run struct {
	Dt          float64 `yaml:"dt"`
	Steps       int     `yaml:"steps"`
	Temperature float64 `yaml:"temperature"`
	Alpha       float64 `yaml:"alpha"`
	Integrator  string  `yaml:"integrator"`
	Thermostat  string  `yaml:"thermostat"`
	Observable  string  `yaml:"observable"`
	Output      string  `yaml:"output"` // "none" suppresses the trace file
}

type Field struct {
	Bx float64 `yaml:"bx"`
	By float64 `yaml:"by"`
	Bz float64 `yaml:"bz"`
}

type Laser struct {
	Thickness float64 `yaml:"thickness"`
	T0        float64 `yaml:"t0"`
	Tau       float64 `yaml:"tau"`
	GammaE    float64 `yaml:"gamma_e"`
	Cp        float64 `yaml:"cp"`
	Cs        float64 `yaml:"cs"`
	Gep       float64 `yaml:"gep"`
	Ges       float64 `yaml:"ges"`
	Gps       float64 `yaml:"gps"`
	Shape     string  `yaml:"shape"`
	Fluence   float64 `yaml:"fluence"`
	Duration  float64 `yaml:"duration"`
	Delay     float64 `yaml:"delay"`
	Method    string  `yaml:"method"`
	Quality   float64 `yaml:"quality"` // adaptive step-size factor, 0 = fixed dt
}

func DefaultConfig() *Config {
	return &Config{
		Model: Model{
			Sites:        DefaultSites,
			Spacing:      2.5e-10,
			Lande:        2.0,
			MagnonEnergy: 1.0e-21,
			Dref:         2.0e-40,
			VanHove:      1.0e-14,
			CellVolume:   1.2e-29,
			Direction:    "+z",
		},
		Run: Run{
			Dt:          DefaultDt,
			Steps:       DefaultSteps,
			Temperature: DefaultTemp,
			Alpha:       DefaultAlpha,
			Integrator:  "rk4",
			Thermostat:  "classical",
			Observable:  "magnetization",
			Output:      "trace.dat",
		},
		Field: Field{Bz: 1.0},
		Laser: Laser{
			Thickness: 15e-9,
			T0:        300,
			Tau:       0,
			GammaE:    700,
			Cp:        3e6,
			Cs:        3e5,
			Gep:       8e17,
			Ges:       6e17,
			Gps:       3e16,
			Shape:     "gaussian",
			Fluence:   10,
			Duration:  50e-15,
			Delay:     1e-12,
			Method:    "rk4",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate resolves every enum field so bad names fail at load time, not
// mid-run.
func (c *Config) Validate() error {
	if c.Model.Sites < 1 {
		return fmt.Errorf("config: sites must be >= 1, got %d", c.Model.Sites)
	}
	if c.Model.Lande < 0 {
		return fmt.Errorf("config: negative Landé factor %g", c.Model.Lande)
	}
	if c.Run.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Run.Dt)
	}
	if c.Run.Steps <= 0 {
		return fmt.Errorf("config: steps must be positive, got %d", c.Run.Steps)
	}
	if _, err := spin.ParseMethod(c.Run.Integrator); err != nil {
		return err
	}
	if _, err := spin.ParseThermostat(c.Run.Thermostat); err != nil {
		return err
	}
	if _, err := engine.ParseObservable(c.Run.Observable); err != nil {
		return err
	}
	if _, err := thermal.ParseBathMethod(c.Laser.Method); err != nil {
		return err
	}
	if _, err := thermal.ParsePulseShape(c.Laser.Shape); err != nil {
		return err
	}
	if _, err := vecmat.Unit(c.Model.Direction); err != nil {
		return err
	}
	return nil
}

// BuildSites constructs the site chain described by the model section.
func (c *Config) BuildSites() []spin.Site {
	dir, _ := vecmat.Unit(c.Model.Direction)
	p := spin.Params{
		G:            c.Model.Lande,
		MagnonEnergy: c.Model.MagnonEnergy,
		Dref:         c.Model.Dref,
		VanHove:      c.Model.VanHove,
		Vat:          c.Model.CellVolume,
	}
	sites := make([]spin.Site, c.Model.Sites)
	for i := range sites {
		sites[i] = spin.NewSite(fmt.Sprintf("site-%d", i), 0, p,
			vecmat.New(float64(i)*c.Model.Spacing, 0, 0), dir)
	}
	return sites
}

// BuildBath constructs the thermal bath described by the laser section.
func (c *Config) BuildBath() (*thermal.Bath, error) {
	shape, err := thermal.ParsePulseShape(c.Laser.Shape)
	if err != nil {
		return nil, err
	}
	cfg := thermal.Config{
		Thickness: c.Laser.Thickness,
		T0:        c.Laser.T0,
		Tau:       c.Laser.Tau,
		GammaE:    c.Laser.GammaE,
		Cp:        c.Laser.Cp,
		Cs:        c.Laser.Cs,
		Gep:       c.Laser.Gep,
		Ges:       c.Laser.Ges,
		Gps:       c.Laser.Gps,
	}
	pulse := thermal.Pulse{
		Shape:    shape,
		Fluence:  c.Laser.Fluence,
		Duration: c.Laser.Duration,
		Delay:    c.Laser.Delay,
	}
	return thermal.NewBath(cfg, pulse), nil
}

// FieldVector returns the external field as a vector.
func (c *Config) FieldVector() vecmat.Vector3 {
	return vecmat.New(c.Field.Bx, c.Field.By, c.Field.Bz)
}

// SweepParams resolves the run section into engine sweep parameters.
func (c *Config) SweepParams() (engine.SweepParams, error) {
	th, err := spin.ParseThermostat(c.Run.Thermostat)
	if err != nil {
		return engine.SweepParams{}, err
	}
	return engine.SweepParams{
		Temperature: c.Run.Temperature,
		Alpha:       c.Run.Alpha,
		Thermostat:  th,
	}, nil
}
