package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foragers/components"
	"github.com/pthm-cable/foragers/neural"
	"github.com/pthm-cable/foragers/vmath"
)

// SensorSystem runs an animal's eye over the food around it and stores the
// result in its Vision component.
type SensorSystem struct {
	eye     *neural.Eye
	grid    *FoodGrid
	foods   []ecs.Entity
	foodPos *ecs.Map[components.Position]
	animals *ecs.Map3[components.Position, components.Motion, components.Vision]

	// Scratch buffers reused across calls
	candidates []int
	points     []vmath.Vec2
}

// NewSensorSystem creates a sensor system over the given foods.
func NewSensorSystem(w *ecs.World, eye *neural.Eye, grid *FoodGrid, foods []ecs.Entity) *SensorSystem {
	return &SensorSystem{
		eye:     eye,
		grid:    grid,
		foods:   foods,
		foodPos: ecs.NewMap[components.Position](w),
		animals: ecs.NewMap3[components.Position, components.Motion, components.Vision](w),
	}
}

// Update refreshes the vision of animal e.
func (s *SensorSystem) Update(e ecs.Entity) {
	pos, mot, vis := s.animals.Get(e)
	p := vmath.Vec2{X: pos.X, Y: pos.Y}

	s.candidates = s.grid.Candidates(s.candidates[:0], p, s.eye.FovRange())
	s.points = s.points[:0]
	for _, i := range s.candidates {
		fp := s.foodPos.Get(s.foods[i])
		s.points = append(s.points, vmath.Vec2{X: fp.X, Y: fp.Y})
	}

	vis.Cells = s.eye.Process(p, mot.Rotation, s.points, vis.Cells)
}
