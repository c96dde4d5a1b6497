// Package genetic evolves a population of flat chromosomes with
// fitness-proportionate selection, crossover and mutation.
//
// Operators are small interfaces so the algorithm knows nothing about
// brains or animals; the caller supplies fitness values and chromosomes
// and gets back the next generation's chromosomes.
package genetic

import (
	"fmt"
	"math/rand"
)

// Chromosome is a flat gene sequence.
type Chromosome []float32

// Individual is one member of the population being evolved.
type Individual interface {
	// Fitness must be >= 0.
	Fitness() float32
	Chromosome() Chromosome
}

// Selector picks one parent from the population.
type Selector interface {
	Select(rng *rand.Rand, population []Individual) Individual
}

// Combiner creates one child chromosome from two parents of equal length.
type Combiner interface {
	Combine(rng *rand.Rand, a, b Chromosome) Chromosome
}

// Mutator perturbs a chromosome in place.
type Mutator interface {
	Mutate(rng *rand.Rand, child Chromosome)
}

// Algorithm wires the three operators together.
type Algorithm struct {
	selector Selector
	combiner Combiner
	mutator  Mutator
}

// New creates an algorithm from its operators.
func New(selector Selector, combiner Combiner, mutator Mutator) *Algorithm {
	return &Algorithm{
		selector: selector,
		combiner: combiner,
		mutator:  mutator,
	}
}

// Evolve produces exactly len(population) offspring chromosomes and the
// fitness statistics of the outgoing population. Each child gets two
// independently selected parents. Evolve panics on an empty population
// or on parents of different lengths.
func (a *Algorithm) Evolve(rng *rand.Rand, population []Individual) ([]Chromosome, Statistics) {
	if len(population) == 0 {
		panic("genetic: cannot evolve an empty population")
	}

	offspring := make([]Chromosome, len(population))
	for i := range offspring {
		pa := a.selector.Select(rng, population).Chromosome()
		pb := a.selector.Select(rng, population).Chromosome()
		if len(pa) != len(pb) {
			panic(fmt.Sprintf("genetic: parent chromosomes differ in length (%d vs %d)", len(pa), len(pb)))
		}

		child := a.combiner.Combine(rng, pa, pb)
		a.mutator.Mutate(rng, child)
		offspring[i] = child
	}

	return offspring, NewStatistics(population)
}
