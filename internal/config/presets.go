package config

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"small": {
			System: "pendulum", Method: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: InitStateConfig{ThetaDeg: 10.0, Omega: 0.0},
		},
		"large": {
			System: "pendulum", Method: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: InitStateConfig{ThetaDeg: 140.0, Omega: 0.0},
		},
		"coarse": {
			System: "pendulum", Method: "euler", Dt: 0.1, Duration: 20.0,
			InitState: InitStateConfig{ThetaDeg: 10.0, Omega: 0.0},
		},
	},
	"decay": {
		"unit": {
			System: "decay", Method: "rk4", Dt: 0.1, Duration: 1.0,
			InitState: InitStateConfig{Y: 1.0},
		},
		"slow": {
			System: "decay", Method: "rk2", Dt: 0.05, Duration: 10.0,
			InitState: InitStateConfig{Y: 1.0},
		},
	},
	"oscillator": {
		"release": {
			System: "oscillator", Method: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: InitStateConfig{Pos: 1.0, Vel: 0.0},
		},
		"kick": {
			System: "oscillator", Method: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: InitStateConfig{Pos: 0.0, Vel: 2.0},
		},
	},
}

func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	cfg, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	return names
}
