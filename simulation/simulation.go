// Package simulation runs the foraging world: animals sense and chase food
// each tick, and every generation_length ticks the population is replaced
// by offspring bred from the best foragers.
//
// All randomness comes from the *rand.Rand passed to Random, Step and
// Train, so a run is a deterministic function of config, seed and call
// sequence.
package simulation

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/genetic"
	"github.com/pthm-cable/foragers/neural"
)

// View is the read-only surface consumers render from.
type View interface {
	Age() int
	Generation() int
	Config() config.Config
	World() *World
}

// Driver is a View that can also advance the simulation.
type Driver interface {
	View
	Step(rng *rand.Rand) *Statistics
	Train(rng *rand.Rand) Statistics
}

// Simulation owns the current World and the generation counters.
type Simulation struct {
	cfg      *config.Config
	topology neural.Topology
	eye      *neural.Eye
	ga       *genetic.Algorithm
	world    *World

	age        int
	generation int

	onEvolve func(Report)
}

var _ Driver = (*Simulation)(nil)

// Random validates cfg and creates a simulation at generation 0 with a
// freshly randomized world. cfg is copied; later changes to it have no
// effect.
func Random(cfg *config.Config, rng *rand.Rand) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("simulation: nil config: %w", config.ErrInvalidConfig)
	}
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	topology := neural.Topology(cfg.Derived.Topology)
	brains, err := randomBrains(topology, cfg.WorldAnimals, rng)
	if err != nil {
		return nil, err
	}

	eye := neural.EyeFromConfig(cfg)
	s := &Simulation{
		cfg:      cfg,
		topology: topology,
		eye:      eye,
		ga: genetic.New(
			genetic.RouletteWheelSelection{},
			genetic.UniformCrossover{},
			genetic.UniformMutation{Chance: cfg.MutationChance, Coeff: cfg.MutationCoeff},
		),
	}
	s.world = newWorld(cfg, eye, brains, rng)
	return s, nil
}

// OnEvolve registers fn to be called after every evolution event.
func (s *Simulation) OnEvolve(fn func(Report)) {
	s.onEvolve = fn
}

// Age returns the ticks elapsed in the current generation.
func (s *Simulation) Age() int { return s.age }

// Generation returns the number of completed generations.
func (s *Simulation) Generation() int { return s.generation }

// Config returns a copy of the simulation's configuration.
func (s *Simulation) Config() config.Config { return *s.cfg.Clone() }

// World returns the current world. Callers must treat it as read-only.
func (s *Simulation) World() *World { return s.world }

// Step advances the world by one tick. When the tick completes a
// generation it evolves the population and returns the statistics of the
// outgoing generation; otherwise it returns nil.
func (s *Simulation) Step(rng *rand.Rand) *Statistics {
	s.world.step(rng)
	s.age++

	if s.age >= s.cfg.GenerationLength {
		stats := s.evolve(rng)
		return &stats
	}
	return nil
}

// Train steps until the current generation ends and returns the resulting
// statistics. It takes at most generation_length - age steps.
func (s *Simulation) Train(rng *rand.Rand) Statistics {
	for {
		if stats := s.Step(rng); stats != nil {
			return *stats
		}
	}
}

// evolve breeds the next generation from the current one and replaces the
// world.
func (s *Simulation) evolve(rng *rand.Rand) Statistics {
	animals := s.world.Animals()
	population := make([]genetic.Individual, len(animals))
	for i, a := range animals {
		population[i] = a
	}

	offspring, gs := s.ga.Evolve(rng, population)

	brains := make([]*neural.Brain, len(offspring))
	for i, c := range offspring {
		b, err := neural.FromChromosome(s.topology, c)
		if err != nil {
			panic(fmt.Sprintf("simulation: rebuilding brain %d: %v", i, err))
		}
		brains[i] = b
	}

	outgoing := s.world
	s.world = newWorld(s.cfg, s.eye, brains, rng)
	s.generation++
	s.age = 0

	stats := Statistics{Generation: s.generation, Statistics: gs}
	slog.Debug("generation evolved", "stats", stats)

	if s.onEvolve != nil {
		chromosomes := make([]genetic.Chromosome, len(population))
		for i, ind := range population {
			chromosomes[i] = ind.Chromosome()
		}
		s.onEvolve(Report{
			Stats:       stats,
			Fitness:     genetic.Fitnesses(population),
			Chromosomes: chromosomes,
			FoodEaten:   outgoing.FoodEaten(),
		})
	}
	return stats
}
