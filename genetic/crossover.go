package genetic

import "math/rand"

// UniformCrossover takes each gene independently from either parent with
// equal probability.
type UniformCrossover struct{}

// Combine implements Combiner.
func (UniformCrossover) Combine(rng *rand.Rand, a, b Chromosome) Chromosome {
	child := make(Chromosome, len(a))
	for i := range child {
		if rng.Float32() < 0.5 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}
