package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/foragers/genetic"
	"github.com/pthm-cable/foragers/simulation"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeFitnessStats(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	mean, std, p10, p50, p90 := ComputeFitnessStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample std of 1..10
	if math.Abs(std-3.0277) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if math.Abs(p10-1.9) > 0.001 || math.Abs(p50-5.5) > 0.001 || math.Abs(p90-9.1) > 0.001 {
		t.Errorf("percentiles = %v %v %v, want 1.9 5.5 9.1", p10, p50, p90)
	}

	// Input must not be reordered
	if values[0] != 10 || values[1] != 1 {
		t.Error("ComputeFitnessStats sorted its input")
	}
}

func TestComputeFitnessStatsSmall(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeFitnessStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, _, p50, _ = ComputeFitnessStats([]float64{4})
	if mean != 4 || std != 0 || p50 != 4 {
		t.Errorf("single value: mean=%v std=%v p50=%v", mean, std, p50)
	}
}

func TestNewGenerationRecord(t *testing.T) {
	report := simulation.Report{
		Stats: simulation.Statistics{
			Generation: 7,
			Statistics: genetic.Statistics{MinFitness: 0, MaxFitness: 4, AvgFitness: 1.5},
		},
		Fitness:   []float64{0, 4, 2, 0},
		FoodEaten: 6,
	}

	rec := NewGenerationRecord(report)
	if rec.Generation != 7 || rec.MaxFitness != 4 || rec.AvgFitness != 1.5 {
		t.Errorf("record = %+v", rec)
	}
	if rec.Starved != 2 {
		t.Errorf("starved = %d, want 2", rec.Starved)
	}
	if rec.FoodEaten != 6 {
		t.Errorf("food eaten = %d, want 6", rec.FoodEaten)
	}
	if math.Abs(rec.P50Fitness-1) > 0.001 {
		t.Errorf("p50 = %v, want 1", rec.P50Fitness)
	}
}
