package game

import "github.com/pthm-cable/foragers/config"

// Screen dimensions
const (
	ScreenWidth  = 1280
	ScreenHeight = 800
	TargetFPS    = 60
)

// Options configures a Game.
type Options struct {
	// Config is the simulation config. Nil means the process-wide config.
	Config *config.Config

	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// MaxGenerations stops stepping once this many generations have
	// evolved. Zero means unlimited.
	MaxGenerations int
}

// Step-rate bounds for the viewer.
const (
	minStepsPerUpdate = 1
	maxStepsPerUpdate = 1024
)

// trainManyGenerations is how many generations the T key trains.
const trainManyGenerations = 50
