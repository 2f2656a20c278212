// Package systems implements the per-agent inference/action pipeline and
// the swarm's spatial operators.
package systems

import (
	"math"

	"github.com/loopfield-labs/efeswarm/field"
)

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp01 restricts v to [0, 1].
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// sigmoid returns the logistic function 1/(1+exp(-x)).
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// wrap folds an angular grid index into [0, field.GridSize), handling
// negative dividends, mirroring field's own unexported wrap.
func wrap(i int) int {
	const n = field.GridSize
	return ((i % n) + n) % n
}

// WrapAngle normalizes an angle in radians to [-Pi, Pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
