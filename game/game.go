// Package game drives a simulation either headless or in a raylib window.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/foragers/camera"
	"github.com/pthm-cable/foragers/config"
	"github.com/pthm-cable/foragers/inspector"
	"github.com/pthm-cable/foragers/simulation"
	"github.com/pthm-cable/foragers/telemetry"
	"github.com/pthm-cable/foragers/ui"
)

// Game holds the complete viewer state around one simulation.
type Game struct {
	sim *simulation.Simulation
	rng *rand.Rand

	// Telemetry
	output    *telemetry.OutputManager
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	// Viewer, nil when headless
	camera    *camera.Camera
	inspector *inspector.Inspector
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	chart     *ui.FitnessChart
	perfPanel *ui.PerfPanel
	overlays  *ui.OverlayRegistry

	// Buttons pressed during the last Draw, applied by the next Update
	pending ui.ControlActions

	// State
	paused         bool
	stepsPerUpdate int
	maxGenerations int
	ticks          int64

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game. The window must already be open
// unless opts.Headless is set.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	sim, err := simulation.Random(cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	g := &Game{
		sim:            sim,
		rng:            rng,
		output:         output,
		perf:           telemetry.NewPerfCollector(TargetFPS),
		stepsPerUpdate: max(opts.StepsPerUpdate, minStepsPerUpdate),
		maxGenerations: max(opts.MaxGenerations, 0),
		screenWidth:    ScreenWidth,
		screenHeight:   ScreenHeight,
	}
	g.collector = telemetry.NewCollector(output, g.perf, opts.LogStats)

	// Evolution happens inside Step, so the telemetry phase is timed from
	// the observer and the simulation phase resumes afterwards.
	sim.OnEvolve(func(r simulation.Report) {
		g.perf.StartPhase(telemetry.PhaseTelemetry)
		g.collector.Observe(r)
		g.perf.StartPhase(telemetry.PhaseSimulation)
	})

	if !opts.Headless {
		g.initViewer()
	}
	return g, nil
}

// initViewer creates the camera and UI panels.
func (g *Game) initViewer() {
	g.camera = camera.New(g.screenWidth, g.screenHeight)
	g.inspector = inspector.NewInspector(int32(g.screenWidth))
	g.hud = ui.NewHUD(10, 10, 300)
	g.controls = ui.NewControlsPanel(10, 0, 300)
	g.chart = ui.NewFitnessChart(0, 0, 320, 160)
	g.perfPanel = ui.NewPerfPanel(0, 0)
	g.overlays = ui.NewOverlayRegistry()
	g.overlays.SetEnabled(ui.OverlayVisionCones, true)
}

// Unload saves the hall of fame and closes telemetry output.
func (g *Game) Unload() {
	if err := g.output.WriteHallOfFame(g.collector.HallOfFame()); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Simulation returns the underlying simulation for read access.
func (g *Game) Simulation() simulation.View { return g.sim }

// Generation returns the number of completed generations.
func (g *Game) Generation() int { return g.sim.Generation() }

// Done reports whether the generation limit has been reached.
func (g *Game) Done() bool {
	return g.maxGenerations > 0 && g.sim.Generation() >= g.maxGenerations
}

// Ticks returns the number of simulation steps taken.
func (g *Game) Ticks() int64 { return g.ticks }

// UpdateHeadless advances the simulation by StepsPerUpdate steps.
func (g *Game) UpdateHeadless() {
	g.perf.StartTick()
	g.perf.StartPhase(telemetry.PhaseSimulation)
	g.step(g.stepsPerUpdate)
	g.perf.EndTick()
}

// Update handles input and advances the simulation unless paused. The
// tick it opens is closed by Draw.
func (g *Game) Update() {
	g.perf.StartTick()
	g.handleInput()
	g.applyActions()

	g.perf.StartPhase(telemetry.PhaseSimulation)
	if !g.paused {
		g.step(g.stepsPerUpdate)
	}
}

// applyActions performs the button presses recorded by the last Draw.
func (g *Game) applyActions() {
	a := g.pending
	g.pending = ui.ControlActions{}

	if a.TogglePause {
		g.paused = !g.paused
	}
	if a.Train {
		g.train(1)
	}
	if a.TrainMany {
		g.train(trainManyGenerations)
	}
	if a.Slower {
		g.slower()
	}
	if a.Faster {
		g.faster()
	}
}

// step advances up to n steps, stopping early at the generation limit.
func (g *Game) step(n int) {
	for range n {
		if g.Done() {
			return
		}
		g.sim.Step(g.rng)
		g.ticks++
	}
}

// train runs the simulation to the end of the current generation, n times.
func (g *Game) train(n int) {
	for range n {
		if g.Done() {
			return
		}
		start := g.sim.Age()
		stats := g.sim.Train(g.rng)
		g.ticks += int64(g.sim.Config().GenerationLength - start)
		slog.Info("trained", "stats", stats)
	}
}

// hudData gathers what the HUD shows.
func (g *Game) hudData(fps int32) ui.HUDData {
	w := g.sim.World()
	data := ui.HUDData{
		Title:            "Foragers",
		Generation:       g.sim.Generation(),
		Age:              g.sim.Age(),
		GenerationLength: g.sim.Config().GenerationLength,
		Animals:          w.NumAnimals(),
		Foods:            w.NumFoods(),
		FoodEaten:        w.FoodEaten(),
		StepsPerFrame:    g.stepsPerUpdate,
		FPS:              fps,
		Paused:           g.paused,
	}
	data.Last, data.HasLast = g.collector.Last()
	data.Best, data.HasBest = g.collector.HallOfFame().Best()
	return data
}
