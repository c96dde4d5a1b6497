package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/foragers/simulation"
)

// Collector turns evolution reports into generation records, logs them,
// writes them to the output directory and checks them for bookmarks.
type Collector struct {
	output    *OutputManager
	perf      *PerfCollector
	bookmarks *BookmarkDetector
	hall      *HallOfFame
	logStats  bool

	history []GenerationRecord
}

const (
	// historySize bounds the records kept for History.
	historySize = 256

	hallSize       = 10
	hallMinFitness = 1
)

// NewCollector creates a collector. output and perf may be nil.
func NewCollector(output *OutputManager, perf *PerfCollector, logStats bool) *Collector {
	return &Collector{
		output:    output,
		perf:      perf,
		bookmarks: NewBookmarkDetector(10),
		hall:      NewHallOfFame(hallSize, hallMinFitness),
		logStats:  logStats,
	}
}

// Observe handles one evolution report. It is meant to be registered with
// Simulation.OnEvolve.
func (c *Collector) Observe(r simulation.Report) {
	rec := NewGenerationRecord(r)
	if len(c.history) == historySize {
		c.history = append(c.history[:0], c.history[1:]...)
	}
	c.history = append(c.history, rec)
	c.hall.Observe(r)

	if c.logStats {
		rec.LogStats()
	}
	if err := c.output.WriteGeneration(rec); err != nil {
		slog.Error("failed to write generation", "error", err)
	}

	if c.perf != nil {
		perfStats := c.perf.Stats()
		if c.logStats {
			slog.Info("perf", "generation", rec.Generation, "stats", perfStats)
		}
		if err := c.output.WritePerf(perfStats, rec.Generation); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range c.bookmarks.Check(rec) {
		if c.logStats {
			bm.LogBookmark()
		}
		if err := c.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// Last returns the most recent record and whether one exists.
func (c *Collector) Last() (GenerationRecord, bool) {
	if len(c.history) == 0 {
		return GenerationRecord{}, false
	}
	return c.history[len(c.history)-1], true
}

// History returns the most recent records, oldest first. The slice is
// owned by the collector and valid until the next Observe.
func (c *Collector) History() []GenerationRecord {
	return c.history
}

// HallOfFame returns the best animals observed so far.
func (c *Collector) HallOfFame() *HallOfFame {
	return c.hall
}
