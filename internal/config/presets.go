package config

import "github.com/san-kum/kinesim/internal/motion"

// Presets are named drive scenarios for quick experiments.
var presets = map[string]*Config{
	"short_hop": {
		Backend:  "modern",
		Actuator: "cart_1",
		Dt:       0.01,
		Duration: 30,
		Motion:   motion.Params{VMax: 0.2, AMax: 0.1, ANom: 0.08, DxMin: 0.01},
		Goal:     GoalConfig{Displacement: 0.5, CruiseSpeed: 0.2},
	},
	"long_haul": {
		Backend:  "modern",
		Actuator: "cart_1",
		Dt:       0.01,
		Duration: 120,
		Motion:   motion.Params{VMax: 0.5, AMax: 0.3, ANom: 0.2, DxMin: 0.02},
		Goal:     GoalConfig{Displacement: 10, CruiseSpeed: 0.5},
	},
	"reverse": {
		Backend:  "classic",
		Actuator: "cart_1",
		Dt:       0.01,
		Duration: 60,
		Motion:   motion.Params{VMax: 0.2, AMax: 0.1, ANom: 0.08, DxMin: 0.01},
		Goal:     GoalConfig{Displacement: -2, CruiseSpeed: 0.2},
	},
	"flythrough": {
		Backend:  "classic",
		Actuator: "cart_1",
		Dt:       0.01,
		Duration: 60,
		Motion:   motion.Params{VMax: 0.3, AMax: 0.15, ANom: 0.1, DxMin: 0.01},
		Goal:     GoalConfig{Displacement: 3, CruiseSpeed: 0.3, DestSpeed: 0.1},
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
