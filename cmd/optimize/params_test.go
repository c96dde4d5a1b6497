package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/foragers/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.ExtractFromConfig(config.Default())

	back := pv.Denormalize(pv.Normalize(raw))
	for i, spec := range pv.Specs {
		if math.Abs(back[i]-raw[i]) > 1e-6 {
			t.Errorf("%s: got %v, want %v", spec.Name, back[i], raw[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()

	low := make([]float64, pv.Dim())
	high := make([]float64, pv.Dim())
	for i := range low {
		low[i] = -100
		high[i] = 100
	}

	lo := pv.Clamp(low)
	hi := pv.Clamp(high)
	for i, spec := range pv.Specs {
		if lo[i] != spec.Min {
			t.Errorf("%s: clamped low to %v, want %v", spec.Name, lo[i], spec.Min)
		}
		if hi[i] != spec.Max {
			t.Errorf("%s: clamped high to %v, want %v", spec.Name, hi[i], spec.Max)
		}
	}
}

func TestClampRoundsIntegers(t *testing.T) {
	pv := NewParamVector()
	values := pv.ExtractFromConfig(config.Default())

	for i, spec := range pv.Specs {
		if spec.Integer {
			values[i] = 7.6
		}
	}
	for i, spec := range pv.Specs {
		if spec.Integer {
			if got := pv.Clamp(values)[i]; got != 8 {
				t.Errorf("%s: got %v, want 8", spec.Name, got)
			}
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	values := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		values[i] = (spec.Min + spec.Max) / 2
	}
	pv.ApplyToConfig(cfg, values)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("midpoint config is invalid: %v", err)
	}

	got := pv.ExtractFromConfig(cfg)
	want := pv.Clamp(values)
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-want[i]) > 1e-5 {
			t.Errorf("%s: got %v, want %v", spec.Name, got[i], want[i])
		}
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	base := config.Default()
	base.GenerationLength = 50
	base.WorldAnimals = 6
	base.WorldFoods = 10
	if err := base.Validate(); err != nil {
		t.Fatalf("base config: %v", err)
	}

	pv := NewParamVector()
	x := pv.ExtractFromConfig(base)

	fe := NewFitnessEvaluator(pv, 3, []int64{1, 2}, base)
	if fe.BestHallOfFame() != nil {
		t.Error("hall of fame exists before any evaluation")
	}
	a := fe.Evaluate(x)
	b := NewFitnessEvaluator(pv, 3, []int64{1, 2}, base).Evaluate(x)
	if a != b {
		t.Errorf("same seeds gave different fitness: %v vs %v", a, b)
	}
	if a > 0 {
		t.Errorf("fitness %v should be non-positive", a)
	}
	if fe.BestHallOfFame() == nil {
		t.Error("no hall of fame kept for the best evaluation")
	}
	if got := fe.LastSatiation(); got != -a {
		t.Errorf("last satiation = %v, want %v", got, -a)
	}
}
