// Package vmath provides the 2-D vector, angle and random-placement helpers
// shared by the simulation. Everything operates on float32 in a unit torus:
// positions live in [0, 1) on both axes and wrap at the edges.
package vmath

import (
	"math"
	"math/rand"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Vec2 is a point or direction in world space.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Angle returns the direction of v in radians, measured from the +X axis.
func (v Vec2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// Distance returns the straight-line (non-wrapped) distance between a and b.
func Distance(a, b Vec2) float32 {
	return b.Sub(a).Len()
}

// Heading returns the unit vector pointing along rotation.
// Rotation 0 faces +X and angles grow counter-clockwise.
func Heading(rotation float32) Vec2 {
	s, c := math.Sincos(float64(rotation))
	return Vec2{X: float32(c), Y: float32(s)}
}

// Wrap01 maps x into [0, 1) by dropping its integer part (x - floor(x)).
func Wrap01(x float32) float32 {
	w := x - float32(math.Floor(float64(x)))
	// float32 rounding can turn a tiny negative x into exactly 1
	if w >= 1 {
		return 0
	}
	return w
}

// WrapPosition wraps both coordinates of p into the unit torus.
func WrapPosition(p Vec2) Vec2 {
	return Vec2{X: Wrap01(p.X), Y: Wrap01(p.Y)}
}

// WrapAngle maps a into [0, 2π).
func WrapAngle(a float32) float32 {
	w := float32(math.Mod(float64(a), TwoPi))
	if w < 0 {
		w += TwoPi
	}
	if w >= TwoPi {
		return 0
	}
	return w
}

// NormalizeAngle maps a into [-π, π].
func NormalizeAngle(a float32) float32 {
	w := math.Mod(float64(a)+math.Pi, TwoPi)
	if w < 0 {
		w += TwoPi
	}
	return float32(w - math.Pi)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RandomPosition draws a point uniformly from the unit square.
func RandomPosition(rng *rand.Rand) Vec2 {
	return Vec2{X: rng.Float32(), Y: rng.Float32()}
}

// RandomAngle draws an angle uniformly from [0, 2π).
func RandomAngle(rng *rand.Rand) float32 {
	return WrapAngle(rng.Float32() * TwoPi)
}

// RandomRange draws a value uniformly from [lo, hi].
func RandomRange(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
