package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sort"

	"github.com/pthm-cable/foragers/genetic"
	"github.com/pthm-cable/foragers/simulation"
)

// HallEntry is one remembered animal: its chromosome and how well it fed.
type HallEntry struct {
	Chromosome genetic.Chromosome `json:"chromosome"`
	Fitness    float32            `json:"fitness"`
	Generation int                `json:"generation"` // generation the animal lived in, 0-based
	Index      int                `json:"index"`      // creation order within that generation
}

// HallOfFame keeps the best animals seen across all generations, sorted by
// fitness, highest first. Ties keep the earlier entry ahead.
type HallOfFame struct {
	entries    []HallEntry
	maxSize    int
	minFitness float32
}

// NewHallOfFame creates a hall holding at most maxSize entries. Animals with
// fitness below minFitness are never admitted.
func NewHallOfFame(maxSize int, minFitness float32) *HallOfFame {
	return &HallOfFame{
		entries:    make([]HallEntry, 0, maxSize),
		maxSize:    maxSize,
		minFitness: minFitness,
	}
}

// Observe considers every animal of an outgoing generation. It can be
// registered with Simulation.OnEvolve directly.
func (hof *HallOfFame) Observe(r simulation.Report) {
	generation := r.Stats.Generation - 1
	for i, f := range r.Fitness {
		if i >= len(r.Chromosomes) {
			break
		}
		hof.Consider(HallEntry{
			Chromosome: r.Chromosomes[i],
			Fitness:    float32(f),
			Generation: generation,
			Index:      i,
		})
	}
}

// Consider offers an entry to the hall and reports whether it was added.
// The chromosome is copied.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if hof.maxSize <= 0 || entry.Fitness < hof.minFitness {
		return false
	}

	// Find insertion point (sorted descending by fitness)
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Fitness < entry.Fitness
	})

	// If hall is full and entry would be last (lowest), skip it
	if idx >= hof.maxSize {
		return false
	}

	entry.Chromosome = slices.Clone(entry.Chromosome)
	hof.entries = slices.Insert(hof.entries, idx, entry)

	// Trim if over capacity
	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// Best returns the highest-fitness entry and whether the hall has one.
func (hof *HallOfFame) Best() (HallEntry, bool) {
	if len(hof.entries) == 0 {
		return HallEntry{}, false
	}
	return hof.entries[0], true
}

// TopFitness returns the highest fitness in the hall, or 0 if it is empty.
func (hof *HallOfFame) TopFitness() float32 {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// Entries returns the hall, best first. The slice is owned by the hall.
func (hof *HallOfFame) Entries() []HallEntry {
	return hof.entries
}

// MarshalJSON serializes the hall as an array of entries, best first.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}

// WriteFile writes the hall as indented JSON.
func (hof *HallOfFame) WriteFile(path string) error {
	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing hall of fame: %w", err)
	}
	slog.Debug("hall of fame written", "path", path, "entries", len(hof.entries))
	return nil
}
