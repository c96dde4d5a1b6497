package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/neural"
)

// Pipeline runs the per-animal systems. Each animal completes all four
// stages (sense, decide, move, feed) before the next one starts, so food
// eaten by an earlier animal is already relocated when a later one looks.
type Pipeline struct {
	Sensors  *SensorSystem
	Behavior *BehaviorSystem
	Physics  *PhysicsSystem
	Feeding  *FeedingSystem
}

// NewPipeline wires all systems over one ECS world.
func NewPipeline(w *ecs.World, cfg *config.Config, eye *neural.Eye, grid *FoodGrid, foods []ecs.Entity) *Pipeline {
	return &Pipeline{
		Sensors:  NewSensorSystem(w, eye, grid, foods),
		Behavior: NewBehaviorSystem(w, cfg),
		Physics:  NewPhysicsSystem(w),
		Feeding:  NewFeedingSystem(w, cfg.FoodSize, grid, foods),
	}
}

// Update advances every animal by one tick, in slice order, and returns the
// number of foods eaten.
func (p *Pipeline) Update(rng *rand.Rand, animals []ecs.Entity) int {
	eaten := 0
	for _, e := range animals {
		p.Sensors.Update(e)
		p.Behavior.Update(e)
		p.Physics.Update(e)
		eaten += p.Feeding.Update(rng, e)
	}
	return eaten
}
