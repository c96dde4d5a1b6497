package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foragers/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title            string
	Generation       int
	Age              int
	GenerationLength int
	Animals          int
	Foods            int
	FoodEaten        uint64 // during the current generation
	StepsPerFrame    int
	FPS              int32
	Paused           bool

	Last    telemetry.GenerationRecord
	HasLast bool

	Best    telemetry.HallEntry // hall of fame leader
	HasBest bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: hudSections(),
	}
}

func hud(data any) HUDData { return data.(HUDData) }

// hudSections describes the HUD layout.
func hudSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "world",
			Title: "World",
			Fields: []FieldDescriptor{
				{ID: "generation", Label: "Generation", Widget: WidgetText,
					TextGetter: func(d any) string { return fmt.Sprint(hud(d).Generation) }},
				{ID: "age", Label: "Age", Widget: WidgetBar,
					Getter: func(d any) float32 {
						h := hud(d)
						if h.GenerationLength == 0 {
							return 0
						}
						return float32(h.Age) / float32(h.GenerationLength)
					},
					Range: DefaultRange(),
					TextGetter: func(d any) string {
						return fmt.Sprintf("%d/%d", hud(d).Age, hud(d).GenerationLength)
					}},
				{ID: "population", Label: "Population", Widget: WidgetText,
					TextGetter: func(d any) string {
						return fmt.Sprintf("%d animals, %d foods", hud(d).Animals, hud(d).Foods)
					}},
				{ID: "eaten", Label: "Eaten", Widget: WidgetText,
					TextGetter: func(d any) string { return fmt.Sprint(hud(d).FoodEaten) }},
			},
		},
		{
			ID:      "last",
			Title:   "Last generation",
			Visible: func(d any) bool { return hud(d).HasLast },
			Fields: []FieldDescriptor{
				{ID: "fitness", Label: "Fitness", Widget: WidgetText,
					TextGetter: func(d any) string {
						l := hud(d).Last
						return fmt.Sprintf("min=%.2f max=%.2f avg=%.2f", l.MinFitness, l.MaxFitness, l.AvgFitness)
					}},
				{ID: "median", Label: "p10/p50/p90", Widget: WidgetText,
					TextGetter: func(d any) string {
						l := hud(d).Last
						return fmt.Sprintf("%.1f / %.1f / %.1f", l.P10Fitness, l.P50Fitness, l.P90Fitness)
					}},
				{ID: "starved", Label: "Starved", Widget: WidgetText,
					TextGetter: func(d any) string { return fmt.Sprint(hud(d).Last.Starved) }},
				{ID: "best", Label: "Best ever", Widget: WidgetText,
					Visible: func(d any) bool { return hud(d).HasBest },
					TextGetter: func(d any) string {
						b := hud(d).Best
						return fmt.Sprintf("%.0f (gen %d, #%d)", b.Fitness, b.Generation, b.Index)
					}},
			},
		},
		{
			ID:    "viewer",
			Title: "Viewer",
			Fields: []FieldDescriptor{
				{ID: "status", Label: "Status", Widget: WidgetText,
					TextGetter: func(d any) string {
						if hud(d).Paused {
							return "PAUSED"
						}
						return "Running"
					}},
				{ID: "speed", Label: "Steps/frame", Widget: WidgetText,
					TextGetter: func(d any) string { return fmt.Sprint(hud(d).StepsPerFrame) }},
				{ID: "fps", Label: "FPS", Widget: WidgetText,
					TextGetter: func(d any) string { return fmt.Sprint(hud(d).FPS) }},
			},
		},
	}
}

// Height returns the panel height for data.
func (h *HUD) Height(data HUDData) int32 {
	r := h.renderer
	height := r.Theme.Padding*2 + 24
	for _, sd := range h.sections {
		height += r.SectionHeight(sd, data)
	}
	return height
}

// Draw renders the HUD and returns the Y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	r.DrawPanel(h.x, h.y, h.width, h.Height(data))

	x := h.x + r.Theme.Padding
	y := h.y + r.Theme.Padding
	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 24

	for _, sd := range h.sections {
		y = r.DrawSection(x, y, sd, data, h.width-r.Theme.Padding*2)
	}
	return y + r.Theme.Padding
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase timing breakdown.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel for the given phases in order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, phases []telemetry.Phase) {
	x, y := p.x, p.y

	rl.DrawText("Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range phases {
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
