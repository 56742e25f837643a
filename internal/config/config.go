package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinesim/internal/motion"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 60.0
	DefaultCruise   = 0.2
	DefaultBackend  = "modern"
	DefaultActuator = "cart_1"
)

// Config describes one drive scenario: which back-end hosts the
// actuator, its kinematic limits, and the move to perform.
type Config struct {
	Backend  string        `yaml:"backend"`
	Actuator string        `yaml:"actuator"`
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Motion   motion.Params `yaml:"motion"`
	Goal     GoalConfig    `yaml:"goal"`
}

// GoalConfig is the move request part of a scenario.
type GoalConfig struct {
	Displacement float64 `yaml:"displacement"`
	CruiseSpeed  float64 `yaml:"cruise_speed"`
	DestSpeed    float64 `yaml:"dest_speed"`
}

// DefaultConfig is a short forward move on the modern back-end with
// conventional slow-platform limits.
func DefaultConfig() *Config {
	return &Config{
		Backend:  DefaultBackend,
		Actuator: DefaultActuator,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Motion:   motion.DefaultParams(),
		Goal: GoalConfig{
			Displacement: 1.0,
			CruiseSpeed:  DefaultCruise,
		},
	}
}

// Load reads a scenario file, layering it over the defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a scenario file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects a scenario that the drive loop would refuse anyway,
// so bad files fail at load time.
func (c *Config) Validate() error {
	if c.Backend != "modern" && c.Backend != "classic" {
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Actuator == "" {
		return fmt.Errorf("config: actuator name must not be empty")
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	if err := c.Motion.Validate(); err != nil {
		return err
	}
	if c.Goal.CruiseSpeed < 0 {
		return fmt.Errorf("config: cruise_speed must be non-negative, got %g", c.Goal.CruiseSpeed)
	}
	if c.Goal.DestSpeed < 0 {
		return fmt.Errorf("config: dest_speed must be non-negative, got %g", c.Goal.DestSpeed)
	}
	return nil
}
