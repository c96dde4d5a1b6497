package genetic

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics summarizes the fitness of one population.
type Statistics struct {
	MinFitness float32
	MaxFitness float32
	AvgFitness float32
}

// NewStatistics computes min, max and mean fitness. An empty population
// yields zero values.
func NewStatistics(population []Individual) Statistics {
	if len(population) == 0 {
		return Statistics{}
	}

	values := Fitnesses(population)
	return Statistics{
		MinFitness: float32(floats.Min(values)),
		MaxFitness: float32(floats.Max(values)),
		AvgFitness: float32(stat.Mean(values, nil)),
	}
}

// Fitnesses returns the population's fitness values in order.
func Fitnesses(population []Individual) []float64 {
	values := make([]float64, len(population))
	for i, ind := range population {
		values[i] = float64(ind.Fitness())
	}
	return values
}
