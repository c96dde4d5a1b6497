package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foragers/components"
	"github.com/pthm-cable/foragers/vmath"
)

// FeedingSystem lets an animal eat every food closer than food_size to it.
// Each eaten food adds one to the animal's satiation and is relocated to a
// uniformly random position. Foods are checked in creation order so the
// RNG draws are reproducible.
type FeedingSystem struct {
	foodSize float32
	grid     *FoodGrid
	foods    []ecs.Entity
	foodMap  *ecs.Map2[components.Position, components.Food]
	animals  *ecs.Map2[components.Position, components.Satiation]

	candidates []int
}

// NewFeedingSystem creates a feeding system over the given foods.
func NewFeedingSystem(w *ecs.World, foodSize float32, grid *FoodGrid, foods []ecs.Entity) *FeedingSystem {
	return &FeedingSystem{
		foodSize: foodSize,
		grid:     grid,
		foods:    foods,
		foodMap:  ecs.NewMap2[components.Position, components.Food](w),
		animals:  ecs.NewMap2[components.Position, components.Satiation](w),
	}
}

// Update feeds animal e and returns how many foods it ate this tick.
func (s *FeedingSystem) Update(rng *rand.Rand, e ecs.Entity) int {
	pos, sat := s.animals.Get(e)
	p := vmath.Vec2{X: pos.X, Y: pos.Y}

	eaten := 0
	s.candidates = s.grid.Candidates(s.candidates[:0], p, s.foodSize)
	for _, i := range s.candidates {
		fpos, food := s.foodMap.Get(s.foods[i])
		if vmath.Distance(p, vmath.Vec2{X: fpos.X, Y: fpos.Y}) >= s.foodSize {
			continue
		}

		sat.Count++
		food.Eaten++
		eaten++

		np := vmath.RandomPosition(rng)
		fpos.X, fpos.Y = np.X, np.Y
		s.grid.Set(i, np)
	}
	return eaten
}
