// Package config loads and saves scenario files: which model to build,
// how to pose it, and what a sweep over its coordinates should record.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/models"
	"github.com/san-kum/mechdyn/internal/spatial"
	"github.com/san-kum/mechdyn/internal/state"
)

const (
	DefaultSamples = 64
	DefaultKp      = 20.0
	DefaultKd      = 4.0
)

type Config struct {
	Model string `yaml:"model"`
	// Gravity overrides the model's gravity vector when it has three
	// components. Empty keeps the model default.
	Gravity    []float64            `yaml:"gravity,omitempty"`
	Seed       int64                `yaml:"seed"`
	Joints     map[string]JointInit `yaml:"joints,omitempty"`
	Sweep      SweepConfig          `yaml:"sweep"`
	Controller ControllerConfig     `yaml:"controller"`
}

// JointInit poses a single joint by name.
type JointInit struct {
	Position []float64 `yaml:"position,omitempty"`
	Velocity []float64 `yaml:"velocity,omitempty"`
}

// SweepConfig samples one joint coordinate over an interval.
type SweepConfig struct {
	Joint   string  `yaml:"joint"`
	Coord   int     `yaml:"coord"`
	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Samples int     `yaml:"samples"`
	Workers int     `yaml:"workers"`
}

type ControllerConfig struct {
	Kind   string    `yaml:"kind"`
	Kp     float64   `yaml:"kp"`
	Kd     float64   `yaml:"kd"`
	Target []float64 `yaml:"target,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: "pendulum",
		Sweep: SweepConfig{
			Samples: DefaultSamples,
		},
		Controller: ControllerConfig{
			Kind: "none",
			Kp:   DefaultKp,
			Kd:   DefaultKd,
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

// Build constructs the configured model and applies the gravity override.
func (c *Config) Build(reg *models.Registry) (*mechanism.Mechanism, error) {
	m, err := reg.Get(c.Model)
	if err != nil {
		return nil, err
	}
	if len(c.Gravity) > 0 {
		if len(c.Gravity) != 3 {
			return nil, fmt.Errorf("config: gravity needs 3 components, got %d", len(c.Gravity))
		}
		m.SetGravity(spatial.Vec3{X: c.Gravity[0], Y: c.Gravity[1], Z: c.Gravity[2]})
	}
	return m, nil
}

// Apply poses the state according to the per-joint entries.
func (c *Config) Apply(st *state.MechanismState) error {
	m := st.Mechanism()
	for name, init := range c.Joints {
		j := m.FindJoint(name)
		if j == nil {
			return fmt.Errorf("config: unknown joint %q in model %s", name, c.Model)
		}
		if len(init.Position) > 0 {
			if err := st.SetJointConfiguration(j, init.Position); err != nil {
				return fmt.Errorf("config: joint %q: %w", name, err)
			}
		}
		if len(init.Velocity) > 0 {
			if err := st.SetJointVelocity(j, init.Velocity); err != nil {
				return fmt.Errorf("config: joint %q: %w", name, err)
			}
		}
	}
	return nil
}
