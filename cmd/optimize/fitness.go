package main

import (
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/simulation"
	"github.com/pthm-cable/foragers/telemetry"
)

// hallSize is the number of animals kept from the best evaluation.
const hallSize = 20

// FitnessEvaluator runs headless simulations and scores parameter vectors.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config

	mu            sync.Mutex
	lastSatiation float64 // mean satiation from the most recent Evaluate call
	bestFitness   float64
	bestHall      *telemetry.HallOfFame
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: max(generations, 1),
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation so far,
// merged across its seeds, or nil before the first evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHall
}

// LastSatiation returns the mean satiation from the most recent evaluation.
func (fe *FitnessEvaluator) LastSatiation() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSatiation
}

// Config returns a copy of the base config with x applied, or an error if
// the result is invalid.
func (fe *FitnessEvaluator) Config(x []float64) (*config.Config, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is the negated mean satiation over the final quarter of the run,
// averaged over all seeds. Seeds run in parallel, each with its own RNG.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg, err := fe.Config(x)
	if err != nil {
		slog.Warn("skipping invalid parameters", "error", err)
		fe.mu.Lock()
		fe.lastSatiation = 0
		fe.mu.Unlock()
		return 0
	}

	results := make([]float64, len(fe.seeds))
	halls := make([]*telemetry.HallOfFame, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], halls[i] = fe.runSimulation(cfg, seed)
		}()
	}
	wg.Wait()

	avg := stat.Mean(results, nil)
	fitness := -avg

	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.lastSatiation = avg
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestHall = mergeHalls(halls)
	}
	return fitness
}

// mergeHalls combines per-seed halls into one of the same capacity.
func mergeHalls(halls []*telemetry.HallOfFame) *telemetry.HallOfFame {
	merged := telemetry.NewHallOfFame(hallSize, 1)
	for _, h := range halls {
		if h == nil {
			continue
		}
		for _, e := range h.Entries() {
			merged.Consider(e)
		}
	}
	return merged
}

// runSimulation trains one simulation for the configured number of
// generations. It returns the mean average satiation of the last quarter
// and the run's hall of fame.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (float64, *telemetry.HallOfFame) {
	rng := rand.New(rand.NewSource(seed))
	sim, err := simulation.Random(cfg, rng)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		return 0, nil
	}
	hall := telemetry.NewHallOfFame(hallSize, 1)
	sim.OnEvolve(hall.Observe)

	tail := max(fe.generations/4, 1)
	averages := make([]float64, 0, tail)
	for gen := 0; gen < fe.generations; gen++ {
		stats := sim.Train(rng)
		if gen >= fe.generations-tail {
			averages = append(averages, float64(stats.AvgFitness))
		}
	}
	return stat.Mean(averages, nil), hall
}
