package simulation

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foragers/components"
	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/genetic"
	"github.com/pthm-cable/foragers/neural"
	"github.com/pthm-cable/foragers/systems"
	"github.com/pthm-cable/foragers/vmath"
)

// World holds the animals and foods of one generation. Entities live in an
// ECS world; the ordered slices fix creation order, which is the order the
// per-tick systems and the genetic algorithm visit them in. A World is
// replaced wholesale at every evolution and is only mutated by its
// Simulation.
type World struct {
	ecs     *ecs.World
	animals []ecs.Entity
	foods   []ecs.Entity

	animalMap *ecs.Map5[components.Position, components.Motion, components.Vision, components.Satiation, components.Mind]
	foodMap   *ecs.Map2[components.Position, components.Food]

	grid     *systems.FoodGrid
	pipeline *systems.Pipeline
}

// newWorld creates a world with one animal per brain, then cfg.WorldFoods
// foods. Animals get a random position, rotation and speed in that order;
// foods get a random position.
func newWorld(cfg *config.Config, eye *neural.Eye, brains []*neural.Brain, rng *rand.Rand) *World {
	w := ecs.NewWorld()
	world := &World{
		ecs:       w,
		animals:   make([]ecs.Entity, 0, len(brains)),
		foods:     make([]ecs.Entity, 0, cfg.WorldFoods),
		animalMap: ecs.NewMap5[components.Position, components.Motion, components.Vision, components.Satiation, components.Mind](w),
		foodMap:   ecs.NewMap2[components.Position, components.Food](w),
		grid:      systems.NewFoodGrid(cfg.FoodSize, cfg.WorldFoods),
	}

	for _, brain := range brains {
		p := vmath.RandomPosition(rng)
		pos := components.Position{X: p.X, Y: p.Y}
		mot := components.Motion{
			Rotation: vmath.RandomAngle(rng),
			Speed:    vmath.RandomRange(rng, cfg.SpeedMin, cfg.SpeedMax),
		}
		vis := components.Vision{Cells: make([]float32, eye.Cells())}
		sat := components.Satiation{}
		mind := components.Mind{Brain: brain}
		world.animals = append(world.animals, world.animalMap.NewEntity(&pos, &mot, &vis, &sat, &mind))
	}

	for i := 0; i < cfg.WorldFoods; i++ {
		p := vmath.RandomPosition(rng)
		pos := components.Position{X: p.X, Y: p.Y}
		food := components.Food{}
		world.foods = append(world.foods, world.foodMap.NewEntity(&pos, &food))
		world.grid.Set(i, p)
	}

	world.pipeline = systems.NewPipeline(w, cfg, eye, world.grid, world.foods)
	return world
}

// randomBrains creates n freshly initialized brains.
func randomBrains(topology neural.Topology, n int, rng *rand.Rand) ([]*neural.Brain, error) {
	brains := make([]*neural.Brain, n)
	for i := range brains {
		b, err := neural.Random(topology, rng)
		if err != nil {
			return nil, err
		}
		brains[i] = b
	}
	return brains, nil
}

// step advances every animal by one tick and returns the foods eaten.
func (w *World) step(rng *rand.Rand) int {
	return w.pipeline.Update(rng, w.animals)
}

// NumAnimals returns the population size.
func (w *World) NumAnimals() int { return len(w.animals) }

// NumFoods returns the number of food items.
func (w *World) NumFoods() int { return len(w.foods) }

// Animal returns a read-only handle to the i-th animal in creation order.
func (w *World) Animal(i int) Animal { return Animal{world: w, entity: w.animals[i]} }

// Food returns a read-only handle to the i-th food in creation order.
func (w *World) Food(i int) Food { return Food{world: w, entity: w.foods[i]} }

// Animals returns handles to every animal in creation order.
func (w *World) Animals() []Animal {
	out := make([]Animal, len(w.animals))
	for i := range w.animals {
		out[i] = w.Animal(i)
	}
	return out
}

// Foods returns handles to every food in creation order.
func (w *World) Foods() []Food {
	out := make([]Food, len(w.foods))
	for i := range w.foods {
		out[i] = w.Food(i)
	}
	return out
}

// FoodEaten returns how many foods have been eaten in this world.
func (w *World) FoodEaten() uint64 {
	var total uint64
	for _, e := range w.foods {
		_, food := w.foodMap.Get(e)
		total += uint64(food.Eaten)
	}
	return total
}

// GridCols returns the number of food grid cells per axis.
func (w *World) GridCols() int { return w.grid.Cols() }

// AnimalNear returns the index of the animal closest to p, if one lies
// within radius. Ties go to the earlier animal.
func (w *World) AnimalNear(p vmath.Vec2, radius float32) (int, bool) {
	best, bestDist := -1, radius
	for i := range w.animals {
		d := vmath.Distance(w.Animal(i).Position(), p)
		if d < bestDist || (best < 0 && d == bestDist) {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// Animal is a read-only view of one animal. It stays valid while its World
// is alive; after an evolution it keeps describing the outgoing generation.
type Animal struct {
	world  *World
	entity ecs.Entity
}

// Position returns the animal's location in [0, 1)².
func (a Animal) Position() vmath.Vec2 {
	pos, _, _, _, _ := a.world.animalMap.Get(a.entity)
	return vmath.Vec2{X: pos.X, Y: pos.Y}
}

// Rotation returns the heading angle in [0, 2π).
func (a Animal) Rotation() float32 {
	_, mot, _, _, _ := a.world.animalMap.Get(a.entity)
	return mot.Rotation
}

// Speed returns the distance travelled per tick.
func (a Animal) Speed() float32 {
	_, mot, _, _, _ := a.world.animalMap.Get(a.entity)
	return mot.Speed
}

// Vision returns a copy of the last vision vector.
func (a Animal) Vision() []float32 {
	_, _, vis, _, _ := a.world.animalMap.Get(a.entity)
	return append([]float32(nil), vis.Cells...)
}

// Satiation returns the number of foods eaten this generation.
func (a Animal) Satiation() uint32 {
	_, _, _, sat, _ := a.world.animalMap.Get(a.entity)
	return sat.Count
}

// Fitness implements genetic.Individual.
func (a Animal) Fitness() float32 {
	return float32(a.Satiation())
}

// Chromosome implements genetic.Individual. The result is a copy.
func (a Animal) Chromosome() genetic.Chromosome {
	_, _, _, _, mind := a.world.animalMap.Get(a.entity)
	return mind.Brain.Chromosome()
}

// Brain returns a copy of the animal's controller.
func (a Animal) Brain() *neural.Brain {
	_, _, _, _, mind := a.world.animalMap.Get(a.entity)
	return mind.Brain.Clone()
}

// Components returns copies of the animal's inspectable components.
func (a Animal) Components() []any {
	pos, mot, vis, sat, _ := a.world.animalMap.Get(a.entity)
	v := *vis
	v.Cells = append([]float32(nil), vis.Cells...)
	return []any{*pos, *mot, v, *sat}
}

// Food is a read-only view of one food item.
type Food struct {
	world  *World
	entity ecs.Entity
}

// Position returns the food's location in [0, 1)².
func (f Food) Position() vmath.Vec2 {
	pos, _ := f.world.foodMap.Get(f.entity)
	return vmath.Vec2{X: pos.X, Y: pos.Y}
}

// Eaten returns how many times this food has been eaten and relocated.
func (f Food) Eaten() uint32 {
	_, food := f.world.foodMap.Get(f.entity)
	return food.Eaten
}
