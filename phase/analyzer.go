// Package phase implements the order-parameter and susceptibility analysis
// used to locate the mixing-strength phase transition, plus the beta-sweep
// driver that produces the samples it analyzes.
package phase

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/loopfield-labs/efeswarm/field"
)

// ErrInvalidArgument marks argument-validation failures in this package,
// checkable with errors.Is.
var ErrInvalidArgument = errors.New("phase: invalid argument")

// ComputePhi returns the order parameter for a population snapshot: the
// mean absolute deviation of each agent's mean haze from the population
// mean of those means. Returns 0 for an empty population.
func ComputePhi(hazeFields []field.PolarField) float64 {
	n := len(hazeFields)
	if n == 0 {
		return 0
	}

	means := make([]float64, n)
	var sum float64
	for i, h := range hazeFields {
		means[i] = h.Mean()
		sum += means[i]
	}
	popMean := sum / float64(n)

	var acc float64
	for _, m := range means {
		acc += math.Abs(m - popMean)
	}
	return acc / float64(n)
}

// ComputeChi returns the susceptibility of a phi measurement window:
// M * (mean(phi^2) - mean(phi)^2). This is intentionally scaled by the
// sample count M, not by the population size N: chi grows with the length
// of the measurement window by construction, so callers comparing chi
// across sweeps must hold M fixed. Returns 0 for fewer than 2 samples.
func ComputeChi(phiSamples []float64) float64 {
	m := len(phiSamples)
	if m < 2 {
		return 0
	}

	var sum, sumSq float64
	for _, p := range phiSamples {
		sum += p
		sumSq += p * p
	}
	meanP := sum / float64(m)
	meanSq := sumSq / float64(m)

	return float64(m) * (meanSq - meanP*meanP)
}

// FindBetaC locates the critical mixing strength as the beta value at which
// phi's central-difference slope with respect to beta is largest. betas
// and phis must have equal length at least 3, or an ErrInvalidArgument
// wrapping error is returned.
func FindBetaC(betas, phis []float64) (float64, error) {
	l := len(betas)
	if l != len(phis) {
		return 0, fmt.Errorf("%w: betas has length %d, phis has length %d", ErrInvalidArgument, l, len(phis))
	}
	if l < 3 {
		return 0, fmt.Errorf("%w: need at least 3 samples, got %d", ErrInvalidArgument, l)
	}

	bestIdx := 1
	bestSlope := math.Inf(-1)
	for i := 1; i <= l-2; i++ {
		denom := betas[i+1] - betas[i-1]
		var slope float64
		if denom != 0 {
			slope = (phis[i+1] - phis[i-1]) / denom
		}
		if slope > bestSlope {
			bestSlope = slope
			bestIdx = i
		}
	}
	return betas[bestIdx], nil
}

// Mean returns the arithmetic mean of xs, or 0 if xs is empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// StdDev returns the unbiased (M-1 denominator) sample standard deviation
// of xs, or 0 for fewer than 2 samples.
func StdDev(xs []float64) float64 {
	m := len(xs)
	if m < 2 {
		return 0
	}
	mean := Mean(xs)
	var acc float64
	for _, x := range xs {
		d := x - mean
		acc += d * d
	}
	return math.Sqrt(acc / float64(m-1))
}
