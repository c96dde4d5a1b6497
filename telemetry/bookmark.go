package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkForageBreakthrough BookmarkType = "forage_breakthrough"
	BookmarkRecordAverage      BookmarkType = "record_average"
	BookmarkFitnessCollapse    BookmarkType = "fitness_collapse"
	BookmarkPlateau            BookmarkType = "plateau"
)

// Bookmark marks a generation worth looking at.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// plateauGenerations is how many consecutive flat generations make a plateau.
const plateauGenerations = 5

// BookmarkDetector detects interesting generations from their records.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []GenerationRecord
	historySize int
	historyIdx  int
	historyFull bool

	bestAvg         float64 // best average fitness so far
	recentPeak      float64 // peak average since the last collapse
	flatGenerations int     // consecutive generations with low variance
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < plateauGenerations {
		historySize = plateauGenerations
	}
	return &BookmarkDetector{
		history:     make([]GenerationRecord, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest record and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(rec GenerationRecord) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		for _, check := range []func(GenerationRecord) *Bookmark{
			bd.checkForageBreakthrough,
			bd.checkRecordAverage,
			bd.checkCollapse,
		} {
			if b := check(rec); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	bd.addToHistory(rec)

	if b := bd.checkPlateau(rec); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if rec.AvgFitness > bd.bestAvg {
		bd.bestAvg = rec.AvgFitness
	}
	if rec.AvgFitness > bd.recentPeak {
		bd.recentPeak = rec.AvgFitness
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(rec GenerationRecord) {
	bd.history[bd.historyIdx] = rec
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the buffered records, oldest first.
func (bd *BookmarkDetector) getHistory() []GenerationRecord {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]GenerationRecord, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

// checkForageBreakthrough fires when average fitness is more than twice the
// rolling average.
func (bd *BookmarkDetector) checkForageBreakthrough(rec GenerationRecord) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.AvgFitness
	}
	rolling := total / float64(len(history))
	if rolling == 0 {
		return nil
	}

	if rec.AvgFitness > rolling*2.0 && rec.AvgFitness >= 1 {
		return &Bookmark{
			Type:        BookmarkForageBreakthrough,
			Generation:  rec.Generation,
			Description: fmt.Sprintf("Average fitness %.2f is %.1fx rolling average (%.2f)", rec.AvgFitness, rec.AvgFitness/rolling, rolling),
		}
	}
	return nil
}

// checkRecordAverage fires when average fitness beats the best so far by
// at least 10%.
func (bd *BookmarkDetector) checkRecordAverage(rec GenerationRecord) *Bookmark {
	if bd.bestAvg == 0 || rec.AvgFitness < bd.bestAvg*1.1 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkRecordAverage,
		Generation:  rec.Generation,
		Description: fmt.Sprintf("Average fitness %.2f beats previous best %.2f", rec.AvgFitness, bd.bestAvg),
	}
}

// checkCollapse fires when average fitness drops more than 30% below the
// recent peak.
func (bd *BookmarkDetector) checkCollapse(rec GenerationRecord) *Bookmark {
	if bd.recentPeak < 1 {
		return nil
	}

	drop := 1.0 - rec.AvgFitness/bd.recentPeak
	if drop > 0.30 {
		// Reset peak after collapse
		oldPeak := bd.recentPeak
		bd.recentPeak = rec.AvgFitness

		return &Bookmark{
			Type:        BookmarkFitnessCollapse,
			Generation:  rec.Generation,
			Description: fmt.Sprintf("Average fitness fell %.0f%% from peak %.2f to %.2f", drop*100, oldPeak, rec.AvgFitness),
		}
	}
	return nil
}

// checkPlateau fires once when the last plateauGenerations averages have a
// coefficient of variation below 10%.
func (bd *BookmarkDetector) checkPlateau(rec GenerationRecord) *Bookmark {
	history := bd.getHistory()
	if len(history) < plateauGenerations || rec.AvgFitness == 0 {
		bd.flatGenerations = 0
		return nil
	}

	recent := history[len(history)-plateauGenerations:]
	var sum float64
	for _, h := range recent {
		sum += h.AvgFitness
	}
	mean := sum / plateauGenerations

	var variance float64
	for _, h := range recent {
		d := h.AvgFitness - mean
		variance += d * d
	}
	variance /= plateauGenerations

	if mean > 0 && variance/(mean*mean) < 0.01 { // CV^2 < 0.01 means CV < 0.1
		bd.flatGenerations++
	} else {
		bd.flatGenerations = 0
	}

	if bd.flatGenerations == 1 {
		return &Bookmark{
			Type:        BookmarkPlateau,
			Generation:  rec.Generation,
			Description: fmt.Sprintf("Average fitness flat around %.2f for %d generations", mean, plateauGenerations),
		}
	}
	return nil
}
