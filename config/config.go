// Package config provides configuration loading and access for the swarm
// simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Swarm     SwarmConfig     `yaml:"swarm"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Estimator EstimatorConfig `yaml:"estimator"`
	Action    ActionConfig    `yaml:"action"`
	Fatigue   FatigueConfig   `yaml:"fatigue"`
	Sweep     SweepConfig     `yaml:"sweep"`
}

// WorldConfig holds the torus world size used for neighbor distance.
type WorldConfig struct {
	Size float64 `yaml:"size"` // side length of the square wrap-around world
}

// SwarmConfig holds default population and mixing parameters.
type SwarmConfig struct {
	N    int     `yaml:"n"`    // default agent count
	Beta float64 `yaml:"beta"` // default mixing strength
	K    int     `yaml:"k"`    // default target neighbor count
	Seed int64   `yaml:"seed"` // records the coordinator's fixed seed (42); not read by swarm
}

// PhysicsConfig holds integration and speed-quantization constants.
type PhysicsConfig struct {
	DT   float64 `yaml:"dt"`
	VMin float64 `yaml:"v_min"`
	VMax float64 `yaml:"v_max"`
	Eps  float64 `yaml:"eps"`
}

// EstimatorConfig holds the haze estimator's EMA/pre-activation coefficients
// and Gaussian blur kernel.
type EstimatorConfig struct {
	Tau         float64   `yaml:"tau"`
	CoeffEMA    float64   `yaml:"coeff_ema"`    // a
	CoeffR1     float64   `yaml:"coeff_r1"`     // b
	CoeffVis    float64   `yaml:"coeff_vis"`    // c, multiplies (1 - F4)
	CoeffStable float64   `yaml:"coeff_stable"` // d, multiplies F5
	ClipMin     float64   `yaml:"clip_min"`
	ClipMax     float64   `yaml:"clip_max"`
	Kernel      []float64 `yaml:"-"` // computed: [center, edge, diagonal]
}

// ActionConfig holds the EFE action selector's learning rate and gradient
// step.
type ActionConfig struct {
	Eta          float64 `yaml:"eta"`
	GradStep     float64 `yaml:"grad_step"`
	FatigueCoeff float64 `yaml:"fatigue_coeff"` // the "5" in (1+5*fatigue)
}

// FatigueConfig holds fatigue accumulation, recovery, and forced-rest
// parameters.
type FatigueConfig struct {
	AccumRate     float64 `yaml:"accum_rate"`
	RecoverRate   float64 `yaml:"recover_rate"`
	RestThreshold float64 `yaml:"rest_threshold"`
}

// SweepConfig holds the beta-sweep driver's default step counts.
type SweepConfig struct {
	WarmupSteps      int `yaml:"warmup_steps"`
	MeasurementSteps int `yaml:"measurement_steps"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived fills in values derived from the loaded config that are
// not directly serialized.
func (c *Config) computeDerived() {
	c.Estimator.Kernel = []float64{4, 2, 1} // center, edge-adjacent, diagonal
}

// WriteYAML writes the configuration to a YAML file, used by the sweep
// driver to snapshot the parameters that produced a given run.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
