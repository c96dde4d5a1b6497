package simulation

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/foragers/genetic"
)

// Statistics summarizes one evolution event. Generation is the simulation's
// generation count right after the event, so the first evolution reports 1.
// Fitness values describe the outgoing population.
type Statistics struct {
	Generation int
	genetic.Statistics
}

// String returns the stable text form used in logs and across the host
// boundary.
func (s Statistics) String() string {
	return fmt.Sprintf("generation=%d min=%.2f max=%.2f avg=%.2f",
		s.Generation, s.MinFitness, s.MaxFitness, s.AvgFitness)
}

// LogValue implements slog.LogValuer.
func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Float64("min", float64(s.MinFitness)),
		slog.Float64("max", float64(s.MaxFitness)),
		slog.Float64("avg", float64(s.AvgFitness)),
	)
}

// Report is passed to evolution observers. It carries the Statistics plus
// the raw data of the outgoing generation for telemetry.
type Report struct {
	Stats       Statistics
	Fitness     []float64            // per animal, creation order
	Chromosomes []genetic.Chromosome // same order as Fitness
	FoodEaten   uint64
}
