// Package config provides configuration loading, validation and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation parameters. It is immutable once a simulation
// has been constructed from it.
type Config struct {
	FoodSize float32 `yaml:"food_size" json:"food_size"`

	EyeFovRange float32 `yaml:"eye_fov_range" json:"eye_fov_range"`
	EyeFovAngle float32 `yaml:"eye_fov_angle" json:"eye_fov_angle"`
	EyeCells    int     `yaml:"eye_cells" json:"eye_cells"`

	BrainNeurons int `yaml:"brain_neurons" json:"brain_neurons"`

	SpeedMin      float32 `yaml:"sim_speed_min" json:"sim_speed_min"`
	SpeedMax      float32 `yaml:"sim_speed_max" json:"sim_speed_max"`
	SpeedAccel    float32 `yaml:"sim_speed_accel" json:"sim_speed_accel"`
	RotationAccel float32 `yaml:"sim_rotation_accel" json:"sim_rotation_accel"`

	GenerationLength int `yaml:"sim_generation_length" json:"sim_generation_length"`

	MutationChance float32 `yaml:"ga_mut_chance" json:"ga_mut_chance"`
	MutationCoeff  float32 `yaml:"ga_mut_coeff" json:"ga_mut_coeff"`

	WorldAnimals int `yaml:"world_animals" json:"world_animals"`
	WorldFoods   int `yaml:"world_foods" json:"world_foods"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" json:"-"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellAngle float32 // EyeFovAngle / EyeCells
	Topology  []int   // brain layer widths: eye_cells, brain_neurons, 2
}

// NumOutputs is the brain's output width: speed delta and rotation delta.
const NumOutputs = 2

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every parameter against its domain and computes derived
// values. It returns a *ConfigError describing the first violation.
func (c *Config) Validate() error {
	floats := []struct {
		field string
		v     float32
	}{
		{"food_size", c.FoodSize},
		{"eye_fov_range", c.EyeFovRange},
		{"eye_fov_angle", c.EyeFovAngle},
		{"sim_speed_min", c.SpeedMin},
		{"sim_speed_max", c.SpeedMax},
		{"sim_speed_accel", c.SpeedAccel},
		{"sim_rotation_accel", c.RotationAccel},
		{"ga_mut_chance", c.MutationChance},
		{"ga_mut_coeff", c.MutationCoeff},
	}
	for _, f := range floats {
		if math.IsNaN(float64(f.v)) || math.IsInf(float64(f.v), 0) {
			return newConfigError(f.field, "must be finite, got %v", f.v)
		}
	}

	switch {
	case c.FoodSize <= 0:
		return newConfigError("food_size", "must be > 0, got %v", c.FoodSize)
	case c.EyeFovRange <= 0:
		return newConfigError("eye_fov_range", "must be > 0, got %v", c.EyeFovRange)
	case c.EyeFovAngle <= 0 || float64(c.EyeFovAngle) > 2*math.Pi+1e-6:
		return newConfigError("eye_fov_angle", "must be in (0, 2π], got %v", c.EyeFovAngle)
	case c.EyeCells < 1:
		return newConfigError("eye_cells", "must be >= 1, got %d", c.EyeCells)
	case c.BrainNeurons < 1:
		return newConfigError("brain_neurons", "must be >= 1, got %d", c.BrainNeurons)
	case c.SpeedMin < 0:
		return newConfigError("sim_speed_min", "must be >= 0, got %v", c.SpeedMin)
	case c.SpeedMax <= 0 || c.SpeedMax < c.SpeedMin:
		return newConfigError("sim_speed_max", "must be > 0 and >= sim_speed_min (%v), got %v", c.SpeedMin, c.SpeedMax)
	case c.SpeedAccel < 0:
		return newConfigError("sim_speed_accel", "must be >= 0, got %v", c.SpeedAccel)
	case c.RotationAccel < 0:
		return newConfigError("sim_rotation_accel", "must be >= 0, got %v", c.RotationAccel)
	case c.GenerationLength < 1:
		return newConfigError("sim_generation_length", "must be >= 1, got %d", c.GenerationLength)
	case c.MutationChance < 0 || c.MutationChance > 1:
		return newConfigError("ga_mut_chance", "must be in [0, 1], got %v", c.MutationChance)
	case c.MutationCoeff < 0:
		return newConfigError("ga_mut_coeff", "must be >= 0, got %v", c.MutationCoeff)
	case c.WorldAnimals < 1:
		return newConfigError("world_animals", "must be >= 1, got %d", c.WorldAnimals)
	case c.WorldFoods < 0:
		return newConfigError("world_foods", "must be >= 0, got %d", c.WorldFoods)
	}

	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.CellAngle = c.EyeFovAngle / float32(c.EyeCells)
	c.Derived.Topology = []int{c.EyeCells, c.BrainNeurons, NumOutputs}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Derived.Topology = append([]int(nil), c.Derived.Topology...)
	return &clone
}

// WriteYAML writes the configuration to a YAML file.
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
