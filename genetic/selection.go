package genetic

import "math/rand"

// RouletteWheelSelection picks individuals with probability proportional
// to fitness, with replacement. A zero-fitness individual is never picked
// unless every individual has zero fitness, in which case the pick is uniform.
type RouletteWheelSelection struct{}

// Select implements Selector.
func (RouletteWheelSelection) Select(rng *rand.Rand, population []Individual) Individual {
	var total float64
	for _, ind := range population {
		total += float64(ind.Fitness())
	}

	if total <= 0 {
		return selectUniform(rng, population)
	}

	// Spin the wheel; spin is in [0, total) so an individual with zero
	// width can never satisfy spin < cumulative before its predecessor.
	spin := rng.Float64() * total
	var cumulative float64
	last := -1
	for i, ind := range population {
		f := float64(ind.Fitness())
		if f <= 0 {
			continue
		}
		cumulative += f
		last = i
		if spin < cumulative {
			return ind
		}
	}

	// Rounding left spin at the very top of the wheel
	return population[last]
}

// selectUniform is the all-zero-fitness fallback.
func selectUniform(rng *rand.Rand, population []Individual) Individual {
	return population[rng.Intn(len(population))]
}
