package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultThetaDeg = 10.0
	DefaultLambda   = -1.0
	DefaultY        = 1.0
)

type Config struct {
	System    string          `yaml:"system"`
	Method    string          `yaml:"method"`
	Dt        float64         `yaml:"dt"`
	Duration  float64         `yaml:"duration"`
	Tolerance float64         `yaml:"tolerance"`
	InitState InitStateConfig `yaml:"init_state"`
	Params    ParamsConfig    `yaml:"params"`
}

type InitStateConfig struct {
	ThetaDeg float64 `yaml:"theta_deg"`
	Omega    float64 `yaml:"omega"`
	Y        float64 `yaml:"y"`
	Pos      float64 `yaml:"pos"`
	Vel      float64 `yaml:"vel"`
}

type ParamsConfig struct {
	Mass    float64 `yaml:"mass"`
	Length  float64 `yaml:"length"`
	Damping float64 `yaml:"damping"`
	Gravity float64 `yaml:"gravity"`
	Lambda  float64 `yaml:"lambda"`
	Omega0  float64 `yaml:"omega0"`
}

func DefaultConfig() *Config {
	return &Config{
		System:   "pendulum",
		Method:   "rk4",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		InitState: InitStateConfig{
			ThetaDeg: DefaultThetaDeg,
			Y:        DefaultY,
		},
		Params: ParamsConfig{
			Mass:    1.0,
			Length:  1.0,
			Gravity: 9.81,
			Lambda:  DefaultLambda,
			Omega0:  1.0,
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
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetInitState maps the named system to its initial state vector. The
// pendulum angle is given in degrees and converted at experiment setup.
func (c *Config) GetInitState() []float64 {
	switch c.System {
	case "decay":
		return []float64{c.InitState.Y}
	case "oscillator":
		return []float64{c.InitState.Pos, c.InitState.Vel}
	default:
		return []float64{c.InitState.ThetaDeg, c.InitState.Omega}
	}
}
