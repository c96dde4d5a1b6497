package main

import (
	"math"

	"github.com/pthm-cable/foragers/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Config key, also the log column
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Integer bool    // Rounded before it is applied

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Genetic algorithm
			{
				Name: "ga_mut_chance", Min: 0.001, Max: 0.2,
				get: func(c *config.Config) float64 { return float64(c.MutationChance) },
				set: func(c *config.Config, v float64) { c.MutationChance = float32(v) },
			},
			{
				Name: "ga_mut_coeff", Min: 0.05, Max: 1.0,
				get: func(c *config.Config) float64 { return float64(c.MutationCoeff) },
				set: func(c *config.Config, v float64) { c.MutationCoeff = float32(v) },
			},
			// Brain
			{
				Name: "brain_neurons", Min: 2, Max: 24, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.BrainNeurons) },
				set: func(c *config.Config, v float64) { c.BrainNeurons = int(v) },
			},
			// Movement
			{
				Name: "sim_speed_accel", Min: 0.05, Max: 1.0,
				get: func(c *config.Config) float64 { return float64(c.SpeedAccel) },
				set: func(c *config.Config, v float64) { c.SpeedAccel = float32(v) },
			},
			// Vision (eye_cells stays fixed so the brain input width is stable)
			{
				Name: "eye_fov_angle", Min: math.Pi / 4, Max: 2 * math.Pi,
				get: func(c *config.Config) float64 { return float64(c.EyeFovAngle) },
				set: func(c *config.Config, v float64) { c.EyeFovAngle = float32(v) },
			},
			{
				Name: "eye_fov_range", Min: 0.05, Max: 0.5,
				get: func(c *config.Config) float64 { return float64(c.EyeFovRange) },
				set: func(c *config.Config, v float64) { c.EyeFovRange = float32(v) },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and integer parameters are whole.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg. The caller must
// Validate cfg afterwards to refresh derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	values := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		values[i] = spec.get(cfg)
	}
	return values
}
