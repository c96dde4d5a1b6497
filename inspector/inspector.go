// Package inspector shows the components and brain of one animal.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foragers/camera"
	"github.com/pthm-cable/foragers/simulation"
	"github.com/pthm-cable/foragers/vmath"
)

// Panel dimensions
const (
	PanelWidth    = 340
	PanelPadding  = 10
	HeaderHeight  = 30
	NetworkHeight = 200
)

// PickRadius is how close the cursor must be to an animal, in world units.
const PickRadius = 0.005

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorHighlight   = rl.Yellow
)

// Inspector tracks the hovered or pinned animal and renders its panel.
// Hovering previews an animal; clicking pins it until right click,
// Escape or the next generation.
type Inspector struct {
	selected    int
	hasSelected bool
	pinned      bool
	generation  int

	panelX int32
	panelY int32
	height int32 // of the last drawn panel
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// Resize keeps the panel anchored to the right edge.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Contains reports whether a screen point lies over the panel.
func (ins *Inspector) Contains(x, y float32) bool {
	if !ins.hasSelected {
		return false
	}
	return x >= float32(ins.panelX) && x < float32(ins.panelX+PanelWidth) &&
		y >= float32(ins.panelY) && y < float32(ins.panelY+ins.height)
}

// HandleInput updates the selection from the cursor position in world
// coordinates. Pinned selections survive hovering elsewhere.
func (ins *Inspector) HandleInput(cursor vmath.Vec2, view simulation.View) {
	if view.Generation() != ins.generation {
		ins.generation = view.Generation()
		ins.Deselect()
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}

	idx, found := view.World().AnimalNear(cursor, PickRadius)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && found {
		ins.selected, ins.hasSelected, ins.pinned = idx, true, true
		return
	}
	if ins.pinned {
		return
	}
	ins.selected, ins.hasSelected = idx, found
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.pinned = false
}

// Selected returns the index of the selected animal.
func (ins *Inspector) Selected() (int, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel if an animal is selected.
func (ins *Inspector) Draw(view simulation.View) {
	if !ins.hasSelected || ins.selected >= view.World().NumAnimals() {
		return
	}
	animal := view.World().Animal(ins.selected)
	sections := ExtractSections(animal.Components())

	panelHeight := ins.panelHeight(sections)
	ins.height = panelHeight

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	title := fmt.Sprintf("ANIMAL #%d", ins.selected)
	if ins.pinned {
		title += " (pinned)"
	}
	rl.DrawText(title, ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	for _, sec := range sections {
		ins.drawSectionHeader(x, y, sec.Name)
		y += 20
		for _, field := range sec.Fields {
			y += DrawField(x, y, field)
		}
		y += 4
	}

	ins.drawSectionHeader(x, y, "Brain")
	y += 20
	DrawNetworkDiagram(x+30, y, PanelWidth-2*PanelPadding-60, NetworkHeight, animal.Brain(), animal.Vision())
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// panelHeight computes the panel height for the given sections.
func (ins *Inspector) panelHeight(sections []Section) int32 {
	height := int32(HeaderHeight + PanelPadding)
	for _, sec := range sections {
		height += 20
		for _, field := range sec.Fields {
			height += fieldHeight(field)
		}
		height += 4
	}
	height += 20 + NetworkHeight + PanelPadding
	return height
}

// DrawSelectionHighlight circles the selected animal and, when vision is
// set, draws its field of view split into eye cells shaded by the last
// vision reading.
func (ins *Inspector) DrawSelectionHighlight(cam *camera.Camera, view simulation.View, vision, cells bool) {
	if !ins.hasSelected || ins.selected >= view.World().NumAnimals() {
		return
	}
	animal := view.World().Animal(ins.selected)
	cfg := view.Config()

	center := cam.WorldToScreen(animal.Position())
	rl.DrawCircleLines(int32(center.X), int32(center.Y), max(cam.Scale(PickRadius)*1.8, 6), ColorHighlight)

	if !vision {
		return
	}

	radius := cam.Scale(cfg.EyeFovRange)
	start := animal.Rotation() - cfg.EyeFovAngle/2
	if !cells {
		drawSectorFilled(center.X, center.Y, radius, start, start+cfg.EyeFovAngle, rl.Color{R: 100, G: 200, B: 255, A: 40})
		drawArc(center.X, center.Y, radius, start, start+cfg.EyeFovAngle, rl.Color{R: 200, G: 200, B: 200, A: 80})
		return
	}

	energies := animal.Vision()
	cellAngle := cfg.EyeFovAngle / float32(cfg.EyeCells)
	for i, e := range energies {
		a0 := start + float32(i)*cellAngle
		alpha := uint8(20 + e*150)
		drawSectorFilled(center.X, center.Y, radius, a0, a0+cellAngle, rl.Color{R: 100, G: 200, B: 255, A: alpha})
		drawSectorEdge(center.X, center.Y, radius, a0, rl.Color{R: 200, G: 200, B: 200, A: 60})
	}
	drawSectorEdge(center.X, center.Y, radius, start+cfg.EyeFovAngle, rl.Color{R: 200, G: 200, B: 200, A: 60})
	drawArc(center.X, center.Y, radius, start, start+cfg.EyeFovAngle, rl.Color{R: 200, G: 200, B: 200, A: 80})
}

// drawSectorFilled draws a filled pie sector.
func drawSectorFilled(cx, cy, radius, startAngle, endAngle float32, color rl.Color) {
	const segments = 12
	angleStep := (endAngle - startAngle) / float32(segments)

	for i := 0; i < segments; i++ {
		a1 := startAngle + float32(i)*angleStep
		a2 := a1 + angleStep

		x1 := cx + radius*float32(math.Cos(float64(a1)))
		y1 := cy + radius*float32(math.Sin(float64(a1)))
		x2 := cx + radius*float32(math.Cos(float64(a2)))
		y2 := cy + radius*float32(math.Sin(float64(a2)))

		// DrawTriangle requires counter-clockwise winding (screen coords: Y down)
		rl.DrawTriangle(
			rl.Vector2{X: cx, Y: cy},
			rl.Vector2{X: x2, Y: y2},
			rl.Vector2{X: x1, Y: y1},
			color,
		)
	}
}

// drawSectorEdge draws a line from center to edge of vision cone.
func drawSectorEdge(cx, cy, radius, angle float32, color rl.Color) {
	ex := cx + radius*float32(math.Cos(float64(angle)))
	ey := cy + radius*float32(math.Sin(float64(angle)))
	rl.DrawLineV(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: ex, Y: ey}, color)
}

// drawArc draws an arc between two angles.
func drawArc(cx, cy, radius, startAngle, endAngle float32, color rl.Color) {
	const segments = 20
	angleStep := (endAngle - startAngle) / float32(segments)

	for i := 0; i < segments; i++ {
		a1 := startAngle + float32(i)*angleStep
		a2 := a1 + angleStep

		x1 := cx + radius*float32(math.Cos(float64(a1)))
		y1 := cy + radius*float32(math.Sin(float64(a1)))
		x2 := cx + radius*float32(math.Cos(float64(a2)))
		y2 := cy + radius*float32(math.Sin(float64(a2)))

		rl.DrawLineV(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, color)
	}
}
