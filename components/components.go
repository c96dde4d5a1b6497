// Package components defines ECS components for animals and food.
package components

import "github.com/pthm-cable/foragers/neural"

// Position is a point on the unit torus, each coordinate in [0, 1).
type Position struct {
	X float32 `inspect:"label,fmt:%.4f"`
	Y float32 `inspect:"label,fmt:%.4f"`
}

// Motion is an animal's heading and scalar speed.
type Motion struct {
	Rotation float32 `inspect:"angle"`                  // radians, [0, 2π)
	Speed    float32 `inspect:"bar,max:0.005,fmt:%.4f"` // units per tick
}

// Vision holds the most recent eye output, one energy per cell.
type Vision struct {
	Cells []float32 `inspect:"bar"`
}

// Satiation counts food eaten during the current generation.
type Satiation struct {
	Count uint32 `inspect:"label"`
}

// Mind is the animal's exclusively owned controller.
type Mind struct {
	Brain *neural.Brain `inspect:"skip"`
}

// Food marks a food entity. Eaten counts relocations for telemetry.
type Food struct {
	Eaten uint32 `inspect:"label"`
}
