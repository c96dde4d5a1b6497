// Package camera maps the unit torus onto the window, with pan and zoom.
package camera

import "github.com/pthm-cable/foragers/vmath"

// Camera controls the viewport into the unit torus.
type Camera struct {
	// Center is the world point shown at the middle of the viewport.
	Center vmath.Vec2

	// Zoom is in pixels per world unit.
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints. MinZoom fits the whole world in the viewport.
	MinZoom, MaxZoom float32
}

// maxMagnification is MaxZoom relative to MinZoom.
const maxMagnification = 16

// New creates a camera that shows the whole world centered in the viewport.
func New(viewportW, viewportH float32) *Camera {
	c := &Camera{ViewportW: viewportW, ViewportH: viewportH}
	c.fit()
	c.Reset()
	return c
}

func (c *Camera) fit() {
	c.MinZoom = min(c.ViewportW, c.ViewportH)
	c.MaxZoom = c.MinZoom * maxMagnification
}

// WorldToScreen converts a world point to screen coordinates, taking the
// shortest way around the torus from the camera center.
func (c *Camera) WorldToScreen(p vmath.Vec2) vmath.Vec2 {
	d := delta(p, c.Center)
	return vmath.Vec2{
		X: c.ViewportW/2 + d.X*c.Zoom,
		Y: c.ViewportH/2 + d.Y*c.Zoom,
	}
}

// ScreenToWorld converts screen coordinates to a point in [0, 1)².
func (c *Camera) ScreenToWorld(s vmath.Vec2) vmath.Vec2 {
	d := vmath.Vec2{
		X: (s.X - c.ViewportW/2) / c.Zoom,
		Y: (s.Y - c.ViewportH/2) / c.Zoom,
	}
	return vmath.WrapPosition(c.Center.Add(d))
}

// Scale converts a world length to pixels.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// IsVisible reports whether a circle at p could be on screen.
func (c *Camera) IsVisible(p vmath.Vec2, radius float32) bool {
	d := delta(p, c.Center)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfW = min(halfW, 0.5+radius)
	halfH := c.ViewportH/(2*c.Zoom) + radius
	halfH = min(halfH, 0.5+radius)
	return abs(d.X) <= halfW && abs(d.Y) <= halfH
}

// GhostPositions returns extra screen positions for a circle that straddles
// the seam of the visible world, so it is drawn on both sides.
func (c *Camera) GhostPositions(p vmath.Vec2, radius float32) []vmath.Vec2 {
	d := delta(p, c.Center)
	primary := c.WorldToScreen(p)

	// The seam is half a world away from the center
	var ghostX, ghostY float32
	hasX, hasY := false, false
	if d.X > 0.5-radius {
		ghostX, hasX = primary.X-c.Zoom, true
	} else if d.X < -0.5+radius {
		ghostX, hasX = primary.X+c.Zoom, true
	}
	if d.Y > 0.5-radius {
		ghostY, hasY = primary.Y-c.Zoom, true
	} else if d.Y < -0.5+radius {
		ghostY, hasY = primary.Y+c.Zoom, true
	}

	var ghosts []vmath.Vec2
	if hasX {
		ghosts = append(ghosts, vmath.Vec2{X: ghostX, Y: primary.Y})
	}
	if hasY {
		ghosts = append(ghosts, vmath.Vec2{X: primary.X, Y: ghostY})
	}
	if hasX && hasY {
		ghosts = append(ghosts, vmath.Vec2{X: ghostX, Y: ghostY})
	}
	return ghosts
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.Center = vmath.WrapPosition(c.Center.Add(vmath.Vec2{X: dx / c.Zoom, Y: dy / c.Zoom}))
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = vmath.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the world and fits it to the viewport.
func (c *Camera) Reset() {
	c.Center = vmath.Vec2{X: 0.5, Y: 0.5}
	c.Zoom = c.MinZoom
}

// delta is the shortest signed offset from 'from' to 'to' on the torus.
func delta(to, from vmath.Vec2) vmath.Vec2 {
	d := to.Sub(from)
	return vmath.Vec2{X: wrapDelta(d.X), Y: wrapDelta(d.Y)}
}

func wrapDelta(d float32) float32 {
	if d > 0.5 {
		return d - 1
	}
	if d < -0.5 {
		return d + 1
	}
	return d
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
