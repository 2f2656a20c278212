package phase

import (
	"fmt"
	"math/rand"

	"github.com/loopfield-labs/efeswarm/field"
	"github.com/loopfield-labs/efeswarm/swarm"
)

// SweepConfig parameterizes a beta-sweep run: for each entry in Betas, a
// fresh swarm of N agents with target neighborhood size K is instantiated,
// given a reproducible non-uniform initial haze, warmed up for
// WarmupSteps without sampling, then measured for MeasurementSteps while
// recording phi at every step.
type SweepConfig struct {
	Betas            []float64
	N                int
	K                int
	DT               float64
	WarmupSteps      int
	MeasurementSteps int
	// Seed drives the per-run initial haze and saliency sampling. It is
	// independent of the swarm package's own hardcoded position seed.
	Seed int64
}

// SweepSample is one row of a beta-sweep result: the mixing strength and
// the order-parameter/susceptibility statistics measured at it.
type SweepSample struct {
	Beta float64
	Phi  float64
	Chi  float64
}

// RunSweep executes cfg.Betas in order and returns one SweepSample per
// entry. Returns an ErrInvalidArgument-wrapping error if Betas is empty.
func RunSweep(cfg SweepConfig) ([]SweepSample, error) {
	if len(cfg.Betas) == 0 {
		return nil, fmt.Errorf("%w: sweep requires at least one beta value", ErrInvalidArgument)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	samples := make([]SweepSample, 0, len(cfg.Betas))

	for _, beta := range cfg.Betas {
		coord := swarm.New(cfg.N, beta, cfg.K)

		var saliency field.PolarField
		for a := 0; a < field.GridSize; a++ {
			for b := 0; b < field.GridSize; b++ {
				saliency[a][b] = 0.2 + rng.Float64()*0.6
			}
		}
		spm := field.NewSPMBundle()
		spm.Set(field.ChannelF2, saliency)

		for i := 0; i < coord.Size(); i++ {
			h := 0.2 + rng.Float64()*0.6
			coord.Agent(i).SetEffectiveHaze(field.Const(h))
		}

		for step := 0; step < cfg.WarmupSteps; step++ {
			coord.UpdateAll(spm, cfg.DT)
		}

		phiSamples := make([]float64, 0, cfg.MeasurementSteps)
		for step := 0; step < cfg.MeasurementSteps; step++ {
			coord.UpdateAll(spm, cfg.DT)
			phiSamples = append(phiSamples, ComputePhi(coord.AllHazeFields()))
		}

		samples = append(samples, SweepSample{
			Beta: beta,
			Phi:  Mean(phiSamples),
			Chi:  ComputeChi(phiSamples),
		})
	}

	return samples, nil
}
