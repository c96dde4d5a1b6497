package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foragers/components"
	"github.com/pthm-cable/foragers/vmath"
)

// PhysicsSystem advances an animal along its heading and wraps it around
// the unit torus.
type PhysicsSystem struct {
	animals *ecs.Map2[components.Position, components.Motion]
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World) *PhysicsSystem {
	return &PhysicsSystem{
		animals: ecs.NewMap2[components.Position, components.Motion](w),
	}
}

// Update moves animal e by one tick.
func (s *PhysicsSystem) Update(e ecs.Entity) {
	pos, mot := s.animals.Get(e)
	*pos = Move(*pos, *mot)
}

// Move returns pos advanced by speed along rotation, wrapped into [0, 1)².
func Move(pos components.Position, mot components.Motion) components.Position {
	p := vmath.Vec2{X: pos.X, Y: pos.Y}
	p = vmath.WrapPosition(p.Add(vmath.Heading(mot.Rotation).Scale(mot.Speed)))
	return components.Position{X: p.X, Y: p.Y}
}
