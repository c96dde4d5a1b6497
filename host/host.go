// Package host exposes a simulation across a process boundary. Config and
// world snapshots cross as JSON; statistics cross as their stable text
// form. The host owns the RNG, seeded at construction.
//
// Rotation is in radians from +X toward +Y: an animal faces
// (cos r, sin r) in world coordinates. Renderers measuring from +Y must
// convert.
package host

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/simulation"
)

// AnimalSnapshot is one animal as seen by the host.
type AnimalSnapshot struct {
	X        float32   `json:"x"`
	Y        float32   `json:"y"`
	Rotation float32   `json:"rotation"` // heading is (cos r, sin r)
	Vision   []float32 `json:"vision"`
}

// FoodSnapshot is one food item as seen by the host.
type FoodSnapshot struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// WorldSnapshot is a serializable copy of the current world.
type WorldSnapshot struct {
	Animals []AnimalSnapshot `json:"animals"`
	Foods   []FoodSnapshot   `json:"foods"`
}

// Simulation wraps a simulation and its RNG.
type Simulation struct {
	sim *simulation.Simulation
	rng *rand.Rand
}

// DefaultConfig returns the default configuration as JSON.
func DefaultConfig() string {
	data, err := json.Marshal(config.Default())
	if err != nil {
		panic(fmt.Sprintf("host: marshaling default config: %v", err))
	}
	return string(data)
}

// ParseConfig decodes JSON over the defaults, so omitted fields keep their
// default values. Unknown fields, malformed JSON and out-of-range values
// are errors.
func ParseConfig(configJSON string) (*config.Config, error) {
	cfg := config.Default()
	dec := json.NewDecoder(bytes.NewReader([]byte(configJSON)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("host: decoding config: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("host: decoding config: trailing data after object")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New creates a simulation from a JSON config. An empty string means the
// defaults.
func New(configJSON string, seed int64) (*Simulation, error) {
	cfg := config.Default()
	if configJSON != "" {
		var err error
		if cfg, err = ParseConfig(configJSON); err != nil {
			return nil, err
		}
	}

	rng := rand.New(rand.NewSource(seed))
	sim, err := simulation.Random(cfg, rng)
	if err != nil {
		return nil, err
	}
	return &Simulation{sim: sim, rng: rng}, nil
}

// Config returns the active configuration as JSON.
func (h *Simulation) Config() string {
	cfg := h.sim.Config()
	data, err := json.Marshal(&cfg)
	if err != nil {
		panic(fmt.Sprintf("host: marshaling config: %v", err))
	}
	return string(data)
}

// World returns a snapshot of the current world.
func (h *Simulation) World() WorldSnapshot {
	w := h.sim.World()
	snap := WorldSnapshot{
		Animals: make([]AnimalSnapshot, 0, w.NumAnimals()),
		Foods:   make([]FoodSnapshot, 0, w.NumFoods()),
	}
	for _, a := range w.Animals() {
		p := a.Position()
		snap.Animals = append(snap.Animals, AnimalSnapshot{
			X:        p.X,
			Y:        p.Y,
			Rotation: a.Rotation(),
			Vision:   a.Vision(),
		})
	}
	for _, f := range w.Foods() {
		p := f.Position()
		snap.Foods = append(snap.Foods, FoodSnapshot{X: p.X, Y: p.Y})
	}
	return snap
}

// WorldJSON returns the world snapshot encoded as JSON.
func (h *Simulation) WorldJSON() (string, error) {
	data, err := json.Marshal(h.World())
	if err != nil {
		return "", fmt.Errorf("host: marshaling world: %w", err)
	}
	return string(data), nil
}

// Step advances one tick. It returns the statistics text and true when the
// tick ended a generation.
func (h *Simulation) Step() (string, bool) {
	if stats := h.sim.Step(h.rng); stats != nil {
		return stats.String(), true
	}
	return "", false
}

// Train fast-forwards to the end of the current generation.
func (h *Simulation) Train() string {
	return h.sim.Train(h.rng).String()
}

// Age returns the ticks elapsed in the current generation.
func (h *Simulation) Age() int { return h.sim.Age() }

// Generation returns the number of completed generations.
func (h *Simulation) Generation() int { return h.sim.Generation() }
