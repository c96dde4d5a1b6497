package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foragers/telemetry"
	"github.com/pthm-cable/foragers/ui"
	"github.com/pthm-cable/foragers/vmath"
)

// Entity sizes in world units.
const animalRadius = 0.006

var (
	colorBackground = rl.Color{R: 12, G: 16, B: 22, A: 255}
	colorFood       = rl.Color{R: 90, G: 200, B: 110, A: 255}
	colorFoodRadius = rl.Color{R: 90, G: 200, B: 110, A: 90}
	colorAnimal     = rl.Color{R: 230, G: 230, B: 240, A: 255}
	colorHungry     = rl.Color{R: 120, G: 120, B: 140, A: 255}
	colorFed        = rl.Color{R: 255, G: 190, B: 60, A: 255}
	colorGrid       = rl.Color{R: 60, G: 70, B: 80, A: 80}
)

const controlsLegend = "P pause | Space train | T train x50 | , . speed | Tab panel | Home reset view"

// Draw renders the world and UI, closing the tick opened by Update.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseRender)
	g.perf.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	if g.overlays.IsEnabled(ui.OverlayFoodGrid) {
		g.drawFoodGrid()
	}
	g.drawFoods()
	g.drawAnimals()

	g.inspector.DrawSelectionHighlight(g.camera, g.sim,
		g.overlays.IsEnabled(ui.OverlayVisionCones),
		g.overlays.IsEnabled(ui.OverlayVisionCells))

	g.drawUI()

	rl.EndDrawing()
	g.perf.EndTick()
}

// drawUI renders HUD, controls and the optional panels.
func (g *Game) drawUI() {
	bottom := g.hud.Draw(g.hudData(rl.GetFPS()))

	g.controls.SetPosition(10, bottom+10)
	g.pending = g.controls.Draw(g.paused, g.overlays)

	width, height := int32(g.screenWidth), int32(g.screenHeight)
	if g.overlays.IsEnabled(ui.OverlayFitnessChart) {
		g.chart.SetPosition(width-330, height-200)
		g.chart.Draw(g.collector.History())
	}
	if g.overlays.IsEnabled(ui.OverlayPerformance) {
		g.perfPanel.SetPosition(width/2-120, 10)
		g.perfPanel.Draw(g.perf.Stats(), telemetry.Phases())
	}

	g.inspector.Draw(g.sim)
	g.hud.DrawControls(height, controlsLegend)
}

// drawFoods renders every food, with ghosts across the world seam.
func (g *Game) drawFoods() {
	cfg := g.sim.Config()
	showRadius := g.overlays.IsEnabled(ui.OverlayFoodRadius)
	radius := max(g.camera.Scale(cfg.FoodSize)/2, 2)
	eatRadius := g.camera.Scale(cfg.FoodSize)

	for _, food := range g.sim.World().Foods() {
		p := food.Position()
		if !g.camera.IsVisible(p, cfg.FoodSize) {
			continue
		}
		screen := g.camera.WorldToScreen(p)
		for _, s := range append(g.camera.GhostPositions(p, cfg.FoodSize), screen) {
			rl.DrawCircleV(rl.Vector2{X: s.X, Y: s.Y}, radius, colorFood)
			if showRadius {
				rl.DrawCircleLinesV(rl.Vector2{X: s.X, Y: s.Y}, eatRadius, colorFoodRadius)
			}
		}
	}
}

// drawAnimals renders every animal as a triangle along its heading.
func (g *Game) drawAnimals() {
	animals := g.sim.World().Animals()
	tint := g.overlays.IsEnabled(ui.OverlaySatiation)

	var best uint32
	if tint {
		for _, a := range animals {
			best = max(best, a.Satiation())
		}
	}

	radius := max(g.camera.Scale(animalRadius), 4)
	for _, a := range animals {
		p := a.Position()
		if !g.camera.IsVisible(p, animalRadius) {
			continue
		}

		color := colorAnimal
		if tint {
			t := float32(0)
			if best > 0 {
				t = float32(a.Satiation()) / float32(best)
			}
			color = lerpColor(colorHungry, colorFed, t)
		}

		screen := g.camera.WorldToScreen(p)
		for _, s := range append(g.camera.GhostPositions(p, animalRadius), screen) {
			drawOrientedTriangle(s.X, s.Y, a.Rotation(), radius, color)
		}
	}
}

// drawFoodGrid draws the food index cell boundaries.
func (g *Game) drawFoodGrid() {
	cols := g.sim.World().GridCols()
	h, w := int32(g.screenHeight), int32(g.screenWidth)
	for i := range cols {
		edge := float32(i) / float32(cols)
		s := g.camera.WorldToScreen(vmath.Vec2{X: edge, Y: edge})
		rl.DrawLine(int32(s.X), 0, int32(s.X), h, colorGrid)
		rl.DrawLine(0, int32(s.Y), w, int32(s.Y), colorGrid)
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	// Front point
	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	// Back left
	backAngle := heading + math.Pi*0.8
	backLeftX := x + float32(math.Cos(float64(backAngle)))*radius
	backLeftY := y + float32(math.Sin(float64(backAngle)))*radius

	// Back right
	backAngle = heading - math.Pi*0.8
	backRightX := x + float32(math.Cos(float64(backAngle)))*radius
	backRightY := y + float32(math.Sin(float64(backAngle)))*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangleLines(v1, v2, v3, rl.White)
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}
