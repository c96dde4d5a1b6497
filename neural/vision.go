package neural

import (
	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/vmath"
)

// Eye is a vision sensor. Its field of view, centered on the observer's
// heading, is split into equal angular cells; each cell reports how close
// the visible food inside it is.
type Eye struct {
	fovRange  float32
	fovAngle  float32
	cells     int
	cellAngle float32
}

// NewEye creates an eye. Parameters are assumed to be validated
// (range > 0, angle in (0, 2π], cells >= 1).
func NewEye(fovRange, fovAngle float32, cells int) *Eye {
	return &Eye{
		fovRange:  fovRange,
		fovAngle:  fovAngle,
		cells:     cells,
		cellAngle: fovAngle / float32(cells),
	}
}

// EyeFromConfig creates the eye described by a validated config.
func EyeFromConfig(cfg *config.Config) *Eye {
	return NewEye(cfg.EyeFovRange, cfg.EyeFovAngle, cfg.EyeCells)
}

// Cells returns the length of the vision vector.
func (e *Eye) Cells() int { return e.cells }

// FovRange returns the maximum sight distance.
func (e *Eye) FovRange() float32 { return e.fovRange }

// FovAngle returns the total angular width of the field of view.
func (e *Eye) FovAngle() float32 { return e.fovAngle }

// Process computes the vision vector for an observer at pos facing heading.
// dst is reused when it has enough capacity. Each food within range and
// inside the field of view adds (range - distance) / range to its cell;
// a cell's total is capped at 1.
func (e *Eye) Process(pos vmath.Vec2, heading float32, foods []vmath.Vec2, dst []float32) []float32 {
	if cap(dst) < e.cells {
		dst = make([]float32, e.cells)
	}
	dst = dst[:e.cells]
	for i := range dst {
		dst[i] = 0
	}

	half := e.fovAngle / 2
	for _, food := range foods {
		d := food.Sub(pos)
		dist := d.Len()
		if dist > e.fovRange {
			continue
		}

		angle := vmath.NormalizeAngle(d.Angle() - heading)
		if angle < -half || angle > half {
			continue
		}

		dst[e.cellFor(angle)] += (e.fovRange - dist) / e.fovRange
	}

	for i, v := range dst {
		if v > 1 {
			dst[i] = 1
		}
	}
	return dst
}

// cellFor maps a relative angle in [-fov/2, fov/2] to a cell index.
func (e *Eye) cellFor(angle float32) int {
	cell := int((angle + e.fovAngle/2) / e.cellAngle)
	if cell < 0 {
		return 0
	}
	if cell >= e.cells {
		return e.cells - 1
	}
	return cell
}
