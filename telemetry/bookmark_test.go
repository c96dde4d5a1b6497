package telemetry

import "testing"

func checkAll(bd *BookmarkDetector, avgs ...float64) [][]Bookmark {
	var out [][]Bookmark
	for i, avg := range avgs {
		out = append(out, bd.Check(GenerationRecord{Generation: i + 1, AvgFitness: avg}))
	}
	return out
}

func hasType(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_ForageBreakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10)
	results := checkAll(bd, 1, 1, 1, 1, 1, 3)

	last := results[len(results)-1]
	if !hasType(last, BookmarkForageBreakthrough) {
		t.Errorf("expected forage_breakthrough, got %v", last)
	}
	if last[0].Generation != 6 {
		t.Errorf("bookmark generation = %d, want 6", last[0].Generation)
	}
}

func TestBookmarkDetector_RecordAverage(t *testing.T) {
	bd := NewBookmarkDetector(10)
	results := checkAll(bd, 2, 2, 2, 2.1, 2.5)

	if hasType(results[3], BookmarkRecordAverage) {
		t.Error("2.1 is within 10% of the best and should not be a record")
	}
	if !hasType(results[4], BookmarkRecordAverage) {
		t.Errorf("expected record_average, got %v", results[4])
	}
}

func TestBookmarkDetector_Collapse(t *testing.T) {
	bd := NewBookmarkDetector(10)
	results := checkAll(bd, 4, 4, 4, 2, 2)

	if !hasType(results[3], BookmarkFitnessCollapse) {
		t.Errorf("expected fitness_collapse, got %v", results[3])
	}
	if hasType(results[4], BookmarkFitnessCollapse) {
		t.Error("collapse should not repeat once the peak resets")
	}
}

func TestBookmarkDetector_PlateauOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)
	results := checkAll(bd, 3, 3, 3, 3, 3, 3, 3, 3)

	count := 0
	for i, r := range results {
		if hasType(r, BookmarkPlateau) {
			count++
			if i != 4 {
				t.Errorf("plateau at generation %d, want 5", i+1)
			}
		}
	}
	if count != 1 {
		t.Errorf("plateau fired %d times, want 1", count)
	}
}

func TestBookmarkDetector_ZeroFitnessIsQuiet(t *testing.T) {
	bd := NewBookmarkDetector(5)
	for i, r := range checkAll(bd, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0) {
		if len(r) != 0 {
			t.Errorf("generation %d: unexpected bookmarks %v", i+1, r)
		}
	}
}

func TestBookmarkDetector_HistoryOrder(t *testing.T) {
	bd := NewBookmarkDetector(5)
	checkAll(bd, 1, 2, 3, 4, 5, 6, 7)

	history := bd.getHistory()
	if len(history) != 5 {
		t.Fatalf("history length = %d, want 5", len(history))
	}
	for i, h := range history {
		if want := float64(i + 3); h.AvgFitness != want {
			t.Errorf("history[%d] = %v, want %v", i, h.AvgFitness, want)
		}
	}
}
