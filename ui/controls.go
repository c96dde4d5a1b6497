package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foragers/telemetry"
)

// ControlActions reports the buttons pressed during one frame.
type ControlActions struct {
	TogglePause bool
	Train       bool
	TrainMany   bool
	Slower      bool
	Faster      bool
	Toggled     OverlayID
}

// ControlsPanel renders the simulation buttons and the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies over the panel.
func (c *ControlsPanel) Contains(x, y float32, overlays *OverlayRegistry) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x < float32(c.x+c.width) &&
		y >= float32(c.y) && y < float32(c.y+c.height(overlays))
}

const buttonHeight = 24

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	r := c.renderer
	items := 0
	for _, cat := range overlays.Categories() {
		items += len(overlays.ByCategory(cat)) + 1
	}
	return r.Theme.Padding*3 + (buttonHeight+4)*3 + r.Theme.LineHeight + int32(items)*r.Theme.LineHeight
}

// Draw renders the panel and returns the actions triggered this frame.
func (c *ControlsPanel) Draw(paused bool, overlays *OverlayRegistry) ControlActions {
	var actions ControlActions
	if !c.visible {
		return actions
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	r.DrawPanel(c.x, c.y, c.width, c.height(overlays))

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	half := float32(c.width-padding*3) / 2
	full := float32(c.width - padding*2)

	pauseText := "Pause"
	if paused {
		pauseText = "Resume"
	}
	actions.TogglePause = gui.Button(rl.Rectangle{X: x, Y: y, Width: full, Height: buttonHeight}, pauseText)
	y += buttonHeight + 4

	actions.Train = gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: buttonHeight}, "Train")
	actions.TrainMany = gui.Button(rl.Rectangle{X: x + half + float32(padding), Y: y, Width: half, Height: buttonHeight}, "Train x50")
	y += buttonHeight + 4

	actions.Slower = gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: buttonHeight}, "Slower")
	actions.Faster = gui.Button(rl.Rectangle{X: x + half + float32(padding), Y: y, Width: half, Height: buttonHeight}, "Faster")
	y += buttonHeight + float32(padding)

	rl.DrawText("Overlays", int32(x), int32(y), 16, rl.White)
	ty := int32(y) + lineHeight + 4

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), int32(x), ty, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		ty += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			enabled := overlays.IsEnabled(desc.ID)
			if c.drawToggle(int32(x), ty, desc, enabled, c.width-padding*2) {
				overlays.Toggle(desc.ID)
				actions.Toggled = desc.ID
			}
			ty += lineHeight
		}
	}

	return actions
}

// drawToggle draws a single overlay toggle line and reports whether it was clicked.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) bool {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}

	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.LineHeight)}
	return rl.IsMouseButtonPressed(rl.MouseButtonLeft) && rl.CheckCollisionPointRec(rl.GetMousePosition(), bounds)
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "perception":
		return "Perception"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// FitnessChart plots min, average and max fitness over recent generations.
type FitnessChart struct {
	renderer      *Renderer
	x, y          int32
	width, height int32
}

// NewFitnessChart creates a new chart panel.
func NewFitnessChart(x, y, width, height int32) *FitnessChart {
	return &FitnessChart{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// SetPosition updates the panel position.
func (f *FitnessChart) SetPosition(x, y int32) {
	f.x = x
	f.y = y
}

var (
	colorChartMax = rl.Color{R: 100, G: 200, B: 100, A: 255}
	colorChartAvg = rl.Color{R: 230, G: 200, B: 90, A: 255}
	colorChartMin = rl.Color{R: 200, G: 100, B: 100, A: 255}
)

// Draw renders the chart for history, oldest first.
func (f *FitnessChart) Draw(history []telemetry.GenerationRecord) {
	r := f.renderer
	r.DrawPanel(f.x, f.y, f.width, f.height)

	padding := r.Theme.Padding
	rl.DrawText("Fitness", f.x+padding, f.y+padding, 14, rl.White)
	if len(history) < 2 {
		rl.DrawText("waiting for generations", f.x+padding, f.y+padding+20, r.Theme.FontSize, r.Theme.LabelColor)
		return
	}

	top := float64(1)
	for _, rec := range history {
		top = max(top, rec.MaxFitness)
	}
	rl.DrawText(fmt.Sprintf("%.0f", top), f.x+f.width-padding-30, f.y+padding, r.Theme.FontSize, r.Theme.LabelColor)

	plotX := float32(f.x + padding)
	plotY := float32(f.y + padding + 20)
	plotW := float32(f.width - padding*2)
	plotH := float32(f.height - padding*2 - 20)

	point := func(i int, v float64) rl.Vector2 {
		return rl.Vector2{
			X: plotX + plotW*float32(i)/float32(len(history)-1),
			Y: plotY + plotH*(1-float32(v/top)),
		}
	}

	for i := 1; i < len(history); i++ {
		prev, cur := history[i-1], history[i]
		rl.DrawLineV(point(i-1, prev.MinFitness), point(i, cur.MinFitness), colorChartMin)
		rl.DrawLineV(point(i-1, prev.AvgFitness), point(i, cur.AvgFitness), colorChartAvg)
		rl.DrawLineV(point(i-1, prev.MaxFitness), point(i, cur.MaxFitness), colorChartMax)
	}
}
