package genetic

import "math/rand"

// UniformMutation adds a value drawn uniformly from [-Coeff, +Coeff] to
// each gene with probability Chance.
type UniformMutation struct {
	Chance float32
	Coeff  float32
}

// Mutate implements Mutator.
func (m UniformMutation) Mutate(rng *rand.Rand, child Chromosome) {
	for i := range child {
		if rng.Float32() < m.Chance {
			child[i] += (rng.Float32()*2 - 1) * m.Coeff
		}
	}
}
