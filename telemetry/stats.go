// Package telemetry records generation statistics, performance and bookmarks
// for a running simulation.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/foragers/simulation"
)

// GenerationRecord summarizes one completed generation.
type GenerationRecord struct {
	Generation int `csv:"generation"`

	// Fitness (satiation) of the outgoing population
	MinFitness float64 `csv:"fitness_min"`
	MaxFitness float64 `csv:"fitness_max"`
	AvgFitness float64 `csv:"fitness_avg"`
	StdFitness float64 `csv:"fitness_std"`
	P10Fitness float64 `csv:"fitness_p10"`
	P50Fitness float64 `csv:"fitness_p50"`
	P90Fitness float64 `csv:"fitness_p90"`

	// Animals that ate nothing
	Starved int `csv:"starved"`

	FoodEaten uint64 `csv:"food_eaten"`
}

// NewGenerationRecord builds a record from an evolution report.
func NewGenerationRecord(r simulation.Report) GenerationRecord {
	_, std, p10, p50, p90 := ComputeFitnessStats(r.Fitness)

	starved := 0
	for _, f := range r.Fitness {
		if f == 0 {
			starved++
		}
	}

	return GenerationRecord{
		Generation: r.Stats.Generation,
		MinFitness: float64(r.Stats.MinFitness),
		MaxFitness: float64(r.Stats.MaxFitness),
		AvgFitness: float64(r.Stats.AvgFitness),
		StdFitness: std,
		P10Fitness: p10,
		P50Fitness: p50,
		P90Fitness: p90,
		Starved:    starved,
		FoodEaten:  r.FoodEaten,
	}
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFitnessStats calculates mean, sample standard deviation and
// percentiles. Std is 0 for fewer than two values.
func ComputeFitnessStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (r GenerationRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", r.Generation),
		slog.Float64("fitness_min", r.MinFitness),
		slog.Float64("fitness_max", r.MaxFitness),
		slog.Float64("fitness_avg", r.AvgFitness),
		slog.Float64("fitness_std", r.StdFitness),
		slog.Float64("fitness_p10", r.P10Fitness),
		slog.Float64("fitness_p50", r.P50Fitness),
		slog.Float64("fitness_p90", r.P90Fitness),
		slog.Int("starved", r.Starved),
		slog.Uint64("food_eaten", r.FoodEaten),
	)
}

// LogStats logs the record at Info level.
func (r GenerationRecord) LogStats() {
	slog.Info("generation",
		"generation", r.Generation,
		"min", r.MinFitness,
		"max", r.MaxFitness,
		"avg", r.AvgFitness,
		"p50", r.P50Fitness,
		"starved", r.Starved,
		"food_eaten", r.FoodEaten,
	)
}
