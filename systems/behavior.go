package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foragers/components"
	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/vmath"
)

// BehaviorSystem feeds an animal's vision through its brain and applies the
// resulting speed and rotation deltas. Each delta is first limited to the
// configured acceleration, then speed is clamped to [speed_min, speed_max]
// and rotation wrapped into [0, 2π).
type BehaviorSystem struct {
	speedMin, speedMax float32
	speedAccel         float32
	rotationAccel      float32

	animals *ecs.Map3[components.Motion, components.Vision, components.Mind]
}

// NewBehaviorSystem creates a behavior system using cfg's motion limits.
func NewBehaviorSystem(w *ecs.World, cfg *config.Config) *BehaviorSystem {
	return &BehaviorSystem{
		speedMin:      cfg.SpeedMin,
		speedMax:      cfg.SpeedMax,
		speedAccel:    cfg.SpeedAccel,
		rotationAccel: cfg.RotationAccel,
		animals:       ecs.NewMap3[components.Motion, components.Vision, components.Mind](w),
	}
}

// Update runs animal e's brain once.
func (s *BehaviorSystem) Update(e ecs.Entity) {
	mot, vis, mind := s.animals.Get(e)
	speedDelta, rotationDelta := mind.Brain.Propagate(vis.Cells)
	s.apply(mot, speedDelta, rotationDelta)
}

func (s *BehaviorSystem) apply(mot *components.Motion, speedDelta, rotationDelta float32) {
	speedDelta = vmath.Clamp(speedDelta, -s.speedAccel, s.speedAccel)
	rotationDelta = vmath.Clamp(rotationDelta, -s.rotationAccel, s.rotationAccel)

	mot.Speed = vmath.Clamp(mot.Speed+speedDelta, s.speedMin, s.speedMax)
	mot.Rotation = vmath.WrapAngle(mot.Rotation + rotationDelta)
}
