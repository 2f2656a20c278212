package phase

import (
	"errors"
	"math"
	"testing"

	"github.com/loopfield-labs/efeswarm/config"
)

func ensureConfig(t *testing.T) {
	t.Helper()
	defer func() { recover() }()
	config.MustInit("")
}

func TestRunSweepRejectsEmptyBetas(t *testing.T) {
	ensureConfig(t)
	_, err := RunSweep(SweepConfig{N: 10, K: 4, DT: 0.1, WarmupSteps: 1, MeasurementSteps: 1})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RunSweep with no betas did not return ErrInvalidArgument: %v", err)
	}
}

// TestRunSweepShowsPhaseSeparation mirrors the light beta-sweep smoke
// scenario: across a small grid straddling the transition, phi varies
// enough to separate low and high mixing regimes and chi stays finite and
// non-negative throughout.
func TestRunSweepShowsPhaseSeparation(t *testing.T) {
	ensureConfig(t)

	cfg := SweepConfig{
		Betas:            []float64{0.05, 0.07, 0.09, 0.11, 0.13},
		N:                20,
		K:                6,
		DT:               0.1,
		WarmupSteps:      500,
		MeasurementSteps: 100,
		Seed:             7,
	}

	samples, err := RunSweep(cfg)
	if err != nil {
		t.Fatalf("RunSweep returned error: %v", err)
	}
	if len(samples) != len(cfg.Betas) {
		t.Fatalf("RunSweep returned %d samples, want %d", len(samples), len(cfg.Betas))
	}

	minPhi, maxPhi := math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		if math.IsNaN(s.Phi) || math.IsInf(s.Phi, 0) {
			t.Fatalf("beta=%v: phi is not finite: %v", s.Beta, s.Phi)
		}
		if math.IsNaN(s.Chi) || math.IsInf(s.Chi, 0) {
			t.Fatalf("beta=%v: chi is not finite: %v", s.Beta, s.Chi)
		}
		if s.Chi < 0 {
			t.Fatalf("beta=%v: chi is negative: %v", s.Beta, s.Chi)
		}
		minPhi = math.Min(minPhi, s.Phi)
		maxPhi = math.Max(maxPhi, s.Phi)
	}

	if maxPhi-minPhi <= 0.003 {
		t.Errorf("phi range across sweep = %v, want > 0.003", maxPhi-minPhi)
	}
}

func TestRunSweepDeterministic(t *testing.T) {
	ensureConfig(t)

	cfg := SweepConfig{
		Betas:            []float64{0.1, 0.2},
		N:                10,
		K:                4,
		DT:               0.1,
		WarmupSteps:      20,
		MeasurementSteps: 10,
		Seed:             99,
	}

	a, err := RunSweep(cfg)
	if err != nil {
		t.Fatalf("RunSweep returned error: %v", err)
	}
	b, err := RunSweep(cfg)
	if err != nil {
		t.Fatalf("RunSweep returned error: %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between identical sweep runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
