package simulation

import (
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/neural"
)

// smallConfig returns a fast config for tests.
func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.WorldAnimals = 12
	cfg.WorldFoods = 30
	cfg.GenerationLength = 50
	cfg.FoodSize = 0.03
	return cfg
}

func newSim(t *testing.T, cfg *config.Config, seed int64) (*Simulation, *rand.Rand) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	sim, err := Random(cfg, rng)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	return sim, rng
}

func checkWorldInvariants(t *testing.T, sim *Simulation) {
	t.Helper()
	cfg := sim.Config()
	w := sim.World()

	if w.NumAnimals() != cfg.WorldAnimals {
		t.Fatalf("animals = %d, want %d", w.NumAnimals(), cfg.WorldAnimals)
	}
	if w.NumFoods() != cfg.WorldFoods {
		t.Fatalf("foods = %d, want %d", w.NumFoods(), cfg.WorldFoods)
	}

	for i, a := range w.Animals() {
		p := a.Position()
		if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
			t.Fatalf("animal %d at (%v, %v) outside the unit square", i, p.X, p.Y)
		}
		if r := a.Rotation(); r < 0 || r >= 2*math.Pi {
			t.Fatalf("animal %d rotation %v outside [0, 2π)", i, r)
		}
		if s := a.Speed(); s < cfg.SpeedMin || s > cfg.SpeedMax {
			t.Fatalf("animal %d speed %v outside [%v, %v]", i, s, cfg.SpeedMin, cfg.SpeedMax)
		}
		vision := a.Vision()
		if len(vision) != cfg.EyeCells {
			t.Fatalf("animal %d vision length %d, want %d", i, len(vision), cfg.EyeCells)
		}
		for j, v := range vision {
			if v < 0 || v > 1 {
				t.Fatalf("animal %d vision[%d] = %v outside [0, 1]", i, j, v)
			}
		}
	}

	for i, f := range w.Foods() {
		p := f.Position()
		if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
			t.Fatalf("food %d at (%v, %v) outside the unit square", i, p.X, p.Y)
		}
	}
}

func TestRandomRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(*config.Config)
	}{
		{"zero eye cells", "eye_cells", func(c *config.Config) { c.EyeCells = 0 }},
		{"negative food size", "food_size", func(c *config.Config) { c.FoodSize = -1 }},
		{"no animals", "world_animals", func(c *config.Config) { c.WorldAnimals = 0 }},
		{"fov too wide", "eye_fov_angle", func(c *config.Config) { c.EyeFovAngle = 7 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.edit(cfg)

			_, err := Random(cfg, rand.New(rand.NewSource(42)))
			var cerr *config.ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("err = %v, want *config.ConfigError", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("field = %q, want %q", cerr.Field, tt.field)
			}
		})
	}

	if _, err := Random(nil, rand.New(rand.NewSource(42))); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("nil config err = %v, want ErrInvalidConfig", err)
	}
}

func TestRandomInitialState(t *testing.T) {
	sim, _ := newSim(t, smallConfig(), 42)

	if sim.Age() != 0 || sim.Generation() != 0 {
		t.Errorf("age, generation = %d, %d, want 0, 0", sim.Age(), sim.Generation())
	}
	for i, a := range sim.World().Animals() {
		if a.Satiation() != 0 {
			t.Errorf("animal %d satiation = %d, want 0", i, a.Satiation())
		}
	}
	checkWorldInvariants(t, sim)
}

func TestConfigIsCopied(t *testing.T) {
	cfg := smallConfig()
	sim, _ := newSim(t, cfg, 42)

	cfg.WorldAnimals = 999
	if got := sim.Config().WorldAnimals; got != 12 {
		t.Errorf("simulation config changed with caller's copy: world_animals = %d", got)
	}

	c := sim.Config()
	c.GenerationLength = 1
	if sim.Config().GenerationLength != 50 {
		t.Error("Config() returned a shared value")
	}
}

func TestStepInvariants(t *testing.T) {
	sim, rng := newSim(t, smallConfig(), 42)

	for i := 0; i < 3*sim.Config().GenerationLength; i++ {
		sim.Step(rng)
		checkWorldInvariants(t, sim)
	}
}

func TestEvolutionResetsGeneration(t *testing.T) {
	cfg := smallConfig()
	sim, rng := newSim(t, cfg, 42)

	for i := 1; i < cfg.GenerationLength; i++ {
		if stats := sim.Step(rng); stats != nil {
			t.Fatalf("step %d returned stats %v", i, stats)
		}
		if sim.Age() != i {
			t.Fatalf("age = %d after %d steps", sim.Age(), i)
		}
	}

	before := sim.World()
	stats := sim.Step(rng)
	if stats == nil {
		t.Fatal("last step of the generation returned nil")
	}
	if stats.Generation != 1 || sim.Generation() != 1 {
		t.Errorf("generation = %d (stats %d), want 1", sim.Generation(), stats.Generation)
	}
	if sim.Age() != 0 {
		t.Errorf("age = %d after evolution, want 0", sim.Age())
	}
	if sim.World() == before {
		t.Error("world was not replaced")
	}
	for i, a := range sim.World().Animals() {
		if a.Satiation() != 0 {
			t.Errorf("animal %d satiation = %d after evolution, want 0", i, a.Satiation())
		}
	}
	checkWorldInvariants(t, sim)

	// Handles from the outgoing world still describe it
	var total uint32
	for _, a := range before.Animals() {
		total += a.Satiation()
	}
	if avg := float32(total) / float32(cfg.WorldAnimals); math.Abs(float64(avg-stats.AvgFitness)) > 1e-5 {
		t.Errorf("outgoing average satiation %v, stats avg %v",
			float32(total)/float32(cfg.WorldAnimals), stats.AvgFitness)
	}
}

func TestTrain(t *testing.T) {
	cfg := smallConfig()
	sim, rng := newSim(t, cfg, 42)

	for i := 0; i < 17; i++ {
		sim.Step(rng)
	}

	for gen := 1; gen <= 5; gen++ {
		stats := sim.Train(rng)
		if stats.Generation != gen || sim.Generation() != gen {
			t.Fatalf("generation = %d (stats %d), want %d", sim.Generation(), stats.Generation, gen)
		}
		if sim.Age() != 0 {
			t.Fatalf("age = %d after Train, want 0", sim.Age())
		}
		if stats.MinFitness > stats.AvgFitness || stats.AvgFitness > stats.MaxFitness {
			t.Fatalf("stats out of order: %v", stats)
		}
	}
}

func TestTrainStepBound(t *testing.T) {
	cfg := smallConfig()
	sim, rng := newSim(t, cfg, 7)

	for i := 0; i < 20; i++ {
		sim.Step(rng)
	}
	remaining := cfg.GenerationLength - sim.Age()

	steps := 0
	sim.OnEvolve(func(Report) {})
	for {
		steps++
		if sim.Step(rng) != nil {
			break
		}
		if steps > remaining {
			t.Fatalf("no evolution within %d steps", remaining)
		}
	}
	if steps != remaining {
		t.Errorf("evolution after %d steps, want %d", steps, remaining)
	}
}

func TestGenerationScenario(t *testing.T) {
	cfg := config.Default()
	cfg.EyeCells = 9
	cfg.EyeFovAngle = math.Pi / 2
	cfg.EyeFovRange = 0.25
	cfg.FoodSize = 0.01
	cfg.WorldAnimals = 40
	cfg.GenerationLength = 2500

	sim, rng := newSim(t, cfg, 42)

	for i := 1; i <= 2500; i++ {
		stats := sim.Step(rng)
		if i < 2500 {
			if stats != nil {
				t.Fatalf("step %d returned stats %v", i, stats)
			}
			continue
		}
		if stats == nil {
			t.Fatal("step 2500 returned nil")
		}
		if stats.Generation != 1 {
			t.Errorf("generation = %d, want 1", stats.Generation)
		}
	}
}

func TestDeterminism(t *testing.T) {
	cfg := smallConfig()
	a, rngA := newSim(t, cfg, 99)
	b, rngB := newSim(t, cfg, 99)

	for i := 0; i < 2*cfg.GenerationLength+13; i++ {
		sa, sb := a.Step(rngA), b.Step(rngB)
		if (sa == nil) != (sb == nil) || (sa != nil && *sa != *sb) {
			t.Fatalf("step %d stats differ: %v vs %v", i, sa, sb)
		}
	}

	wa, wb := a.World(), b.World()
	for i := 0; i < wa.NumAnimals(); i++ {
		x, y := wa.Animal(i), wb.Animal(i)
		if x.Position() != y.Position() || x.Rotation() != y.Rotation() || x.Speed() != y.Speed() {
			t.Fatalf("animal %d differs between identical runs", i)
		}
		if !slices.Equal(x.Chromosome(), y.Chromosome()) {
			t.Fatalf("animal %d brain differs between identical runs", i)
		}
	}
	for i := 0; i < wa.NumFoods(); i++ {
		if wa.Food(i).Position() != wb.Food(i).Position() {
			t.Fatalf("food %d differs between identical runs", i)
		}
	}
}

func TestAllZeroFitnessStillEvolves(t *testing.T) {
	cfg := smallConfig()
	cfg.WorldFoods = 0
	sim, rng := newSim(t, cfg, 42)

	stats := sim.Train(rng)
	if stats.MaxFitness != 0 {
		t.Fatalf("max fitness = %v with no food, want 0", stats.MaxFitness)
	}
	if sim.World().NumAnimals() != cfg.WorldAnimals {
		t.Errorf("animals = %d, want %d", sim.World().NumAnimals(), cfg.WorldAnimals)
	}
	checkWorldInvariants(t, sim)
}

func TestEvolvedBrainsKeepTopology(t *testing.T) {
	cfg := smallConfig()
	sim, rng := newSim(t, cfg, 42)
	sim.Train(rng)

	want := neural.Topology(sim.Config().Derived.Topology).ChromosomeLen()
	for i, a := range sim.World().Animals() {
		if got := len(a.Chromosome()); got != want {
			t.Errorf("animal %d chromosome length = %d, want %d", i, got, want)
		}
	}
}

func TestOnEvolveReport(t *testing.T) {
	cfg := smallConfig()
	sim, rng := newSim(t, cfg, 42)

	var reports []Report
	sim.OnEvolve(func(r Report) { reports = append(reports, r) })

	before := sim.World()
	stats := sim.Train(rng)

	if len(reports) != 1 {
		t.Fatalf("observer called %d times, want 1", len(reports))
	}
	r := reports[0]
	if r.Stats != stats {
		t.Errorf("report stats %v, want %v", r.Stats, stats)
	}
	if len(r.Chromosomes) != cfg.WorldAnimals {
		t.Errorf("report has %d chromosomes, want %d", len(r.Chromosomes), cfg.WorldAnimals)
	}
	if len(r.Fitness) != cfg.WorldAnimals {
		t.Errorf("report has %d fitness values, want %d", len(r.Fitness), cfg.WorldAnimals)
	}

	var total uint64
	for i, a := range before.Animals() {
		if r.Fitness[i] != float64(a.Satiation()) {
			t.Errorf("fitness[%d] = %v, want %d", i, r.Fitness[i], a.Satiation())
		}
		if !slices.Equal(r.Chromosomes[i], a.Chromosome()) {
			t.Errorf("chromosome[%d] differs from the outgoing animal's", i)
		}
		total += uint64(a.Satiation())
	}
	if r.FoodEaten != total {
		t.Errorf("food eaten = %d, want %d", r.FoodEaten, total)
	}
}

func TestStatisticsString(t *testing.T) {
	s := Statistics{Generation: 3}
	s.MinFitness, s.MaxFitness, s.AvgFitness = 0, 12, 4.25

	want := "generation=3 min=0.00 max=12.00 avg=4.25"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	v := s.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, want group", v.Kind())
	}
	attrs := v.Group()
	if len(attrs) != 4 || attrs[0].Key != "generation" || attrs[0].Value.Int64() != 3 {
		t.Errorf("LogValue attrs = %v", attrs)
	}
}

func TestAnimalNear(t *testing.T) {
	sim, _ := newSim(t, smallConfig(), 42)
	w := sim.World()

	target := w.Animal(3)
	idx, ok := w.AnimalNear(target.Position(), 0.005)
	if !ok {
		t.Fatal("AnimalNear found nothing at an animal's own position")
	}
	if got := w.Animal(idx).Position(); got != target.Position() {
		t.Errorf("AnimalNear = %d at %v, want an animal at %v", idx, got, target.Position())
	}

	if _, ok := w.AnimalNear(target.Position(), -1); ok {
		t.Error("AnimalNear with a negative radius found an animal")
	}
}

func TestAnimalBrainIsCopy(t *testing.T) {
	sim, _ := newSim(t, smallConfig(), 42)
	a := sim.World().Animal(0)

	b := a.Brain()
	if !slices.Equal(b.Chromosome(), a.Chromosome()) {
		t.Fatal("Brain() differs from the animal's chromosome")
	}
	b.Layers()[0].Weights.Data[0] += 1
	if slices.Equal(b.Chromosome(), a.Chromosome()) {
		t.Error("Brain() shares weights with the animal")
	}
}
