package genetic

import (
	"math"
	"math/rand"
	"testing"
)

type testIndividual struct {
	fitness    float32
	chromosome Chromosome
}

func (t *testIndividual) Fitness() float32       { return t.fitness }
func (t *testIndividual) Chromosome() Chromosome { return t.chromosome }

func population(fitnesses ...float32) []Individual {
	pop := make([]Individual, len(fitnesses))
	for i, f := range fitnesses {
		pop[i] = &testIndividual{
			fitness:    f,
			chromosome: Chromosome{float32(i), float32(i), float32(i)},
		}
	}
	return pop
}

func TestRouletteWheelProportions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pop := population(2, 1, 4, 3)

	counts := make(map[Individual]int)
	const trials = 100000
	for i := 0; i < trials; i++ {
		counts[RouletteWheelSelection{}.Select(rng, pop)]++
	}

	total := float64(2 + 1 + 4 + 3)
	for _, ind := range pop {
		want := float64(ind.Fitness()) / total
		got := float64(counts[ind]) / trials
		if math.Abs(got-want) > 0.01 {
			t.Errorf("fitness %v selected %.3f of the time, want ~%.3f", ind.Fitness(), got, want)
		}
	}
}

func TestRouletteWheelNeverPicksZeroFitness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pop := population(0, 5, 0, 1, 0)

	for i := 0; i < 10000; i++ {
		if got := (RouletteWheelSelection{}).Select(rng, pop); got.Fitness() == 0 {
			t.Fatal("selected an individual with zero fitness")
		}
	}
}

func TestRouletteWheelAllZeroIsUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pop := population(0, 0, 0, 0)

	counts := make(map[Individual]int)
	const trials = 40000
	for i := 0; i < trials; i++ {
		counts[RouletteWheelSelection{}.Select(rng, pop)]++
	}

	for i, ind := range pop {
		got := float64(counts[ind]) / trials
		if math.Abs(got-0.25) > 0.02 {
			t.Errorf("individual %d selected %.3f of the time, want ~0.25", i, got)
		}
	}
}

func TestUniformCrossover(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 10000
	a := make(Chromosome, n)
	b := make(Chromosome, n)
	for i := range a {
		a[i] = 1
		b[i] = 2
	}

	child := UniformCrossover{}.Combine(rng, a, b)
	if len(child) != n {
		t.Fatalf("child length = %d, want %d", len(child), n)
	}

	fromA := 0
	for _, g := range child {
		switch g {
		case 1:
			fromA++
		case 2:
		default:
			t.Fatalf("gene %v came from neither parent", g)
		}
	}
	if ratio := float64(fromA) / n; math.Abs(ratio-0.5) > 0.03 {
		t.Errorf("%.3f of genes from parent A, want ~0.5", ratio)
	}
}

func TestUniformMutation(t *testing.T) {
	tests := []struct {
		name   string
		chance float32
		coeff  float32
	}{
		{"never", 0, 0.5},
		{"always", 1, 0.5},
		{"sometimes", 0.1, 0.3},
		{"zero magnitude", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			child := make(Chromosome, 5000)
			UniformMutation{Chance: tt.chance, Coeff: tt.coeff}.Mutate(rng, child)

			changed := 0
			for _, g := range child {
				if g < -tt.coeff || g > tt.coeff {
					t.Fatalf("gene %v outside [-%v, %v]", g, tt.coeff, tt.coeff)
				}
				if g != 0 {
					changed++
				}
			}

			rate := float64(changed) / float64(len(child))
			if tt.coeff == 0 {
				if changed != 0 {
					t.Errorf("zero coefficient changed %d genes", changed)
				}
				return
			}
			if math.Abs(rate-float64(tt.chance)) > 0.02 {
				t.Errorf("mutation rate = %.3f, want ~%.3f", rate, tt.chance)
			}
		})
	}
}

func TestEvolvePreservesPopulationSize(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ga := New(RouletteWheelSelection{}, UniformCrossover{}, UniformMutation{Chance: 0.01, Coeff: 0.3})

	for _, pop := range [][]Individual{
		population(1, 2, 3, 4, 5),
		population(0, 0, 0),
		population(7),
	} {
		offspring, stats := ga.Evolve(rng, pop)
		if len(offspring) != len(pop) {
			t.Errorf("offspring = %d, want %d", len(offspring), len(pop))
		}
		for _, c := range offspring {
			if len(c) != 3 {
				t.Errorf("child length = %d, want 3", len(c))
			}
		}
		if stats.MinFitness > stats.AvgFitness || stats.AvgFitness > stats.MaxFitness {
			t.Errorf("stats out of order: %+v", stats)
		}
	}
}

func TestEvolveFavorsFitParents(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ga := New(RouletteWheelSelection{}, UniformCrossover{}, UniformMutation{})

	// Only individual 2 has fitness, so every gene must come from it
	offspring, _ := ga.Evolve(rng, population(0, 0, 10, 0))
	for _, c := range offspring {
		for _, g := range c {
			if g != 2 {
				t.Fatalf("child gene %v not inherited from the only fit parent", g)
			}
		}
	}
}

func TestEvolveDeterministic(t *testing.T) {
	ga := New(RouletteWheelSelection{}, UniformCrossover{}, UniformMutation{Chance: 0.5, Coeff: 1})
	pop := population(3, 1, 4, 1, 5)

	a, _ := ga.Evolve(rand.New(rand.NewSource(9)), pop)
	b, _ := ga.Evolve(rand.New(rand.NewSource(9)), pop)
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("offspring %d gene %d differs between identical seeds", i, j)
			}
		}
	}
}

func TestStatistics(t *testing.T) {
	tests := []struct {
		name          string
		fitnesses     []float32
		min, max, avg float32
	}{
		{"mixed", []float32{0, 2, 4, 6}, 0, 6, 3},
		{"single", []float32{5}, 5, 5, 5},
		{"all zero", []float32{0, 0, 0}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStatistics(population(tt.fitnesses...))
			if s.MinFitness != tt.min || s.MaxFitness != tt.max || s.AvgFitness != tt.avg {
				t.Errorf("stats = %+v, want min=%v max=%v avg=%v", s, tt.min, tt.max, tt.avg)
			}
		})
	}

	if s := NewStatistics(nil); s != (Statistics{}) {
		t.Errorf("empty population stats = %+v, want zero", s)
	}
}
