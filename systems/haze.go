package systems

import (
	"github.com/loopfield-labs/efeswarm/components"
	"github.com/loopfield-labs/efeswarm/config"
	"github.com/loopfield-labs/efeswarm/field"
)

// EstimateHaze updates est in place with the new EMA of the prediction
// error e, then returns the resulting haze field: a sigmoid-activated,
// Gaussian-blurred combination of the EMA, the SPM's uncertainty channel,
// inverse visibility, and observation stability.
func EstimateHaze(est *components.Estimator, spm field.SPMBundle, e float64) field.PolarField {
	cfg := config.Cfg().Estimator

	if !est.Initialized {
		est.EMA = field.Const(e)
		est.Initialized = true
	} else {
		invTau := 1 / est.Tau
		est.EMA = field.Lerp(est.EMA, field.Const(e), invTau)
	}

	r1 := spm.Get(field.ChannelR1)
	f4 := spm.Get(field.ChannelF4)
	f5 := spm.Get(field.ChannelF5)

	var u field.PolarField
	for a := 0; a < field.GridSize; a++ {
		for b := 0; b < field.GridSize; b++ {
			v := cfg.CoeffEMA*est.EMA[a][b] +
				cfg.CoeffR1*r1[a][b] +
				cfg.CoeffVis*(1-f4[a][b]) +
				cfg.CoeffStable*f5[a][b]
			u[a][b] = clamp(v, cfg.ClipMin, cfg.ClipMax)
		}
	}

	var activated field.PolarField
	for a := 0; a < field.GridSize; a++ {
		for b := 0; b < field.GridSize; b++ {
			activated[a][b] = sigmoid(u[a][b])
		}
	}

	return gaussianBlur3x3(activated, cfg.Kernel)
}

// ResetEstimator zeros the EMA and clears the initialized flag.
func ResetEstimator(est *components.Estimator) {
	est.EMA = field.PolarField{}
	est.Initialized = false
}

// gaussianBlur3x3 applies a fixed 3x3 kernel (center, edge-adjacent,
// diagonal weights) to f. The a-axis (theta) wraps periodically; the
// b-axis (r) is Neumann-clamped at the boundary (never wraps) by clamping
// the index itself, so a boundary tap duplicates the edge ring rather than
// being dropped. The normalization divisor is therefore the constant
// kernel weight sum (center + 4*edge + 4*diag) at every cell, boundary or
// interior.
func gaussianBlur3x3(f field.PolarField, kernel []float64) field.PolarField {
	center, edge, diag := kernel[0], kernel[1], kernel[2]
	weightSum := center + 4*edge + 4*diag

	var out field.PolarField
	for a := 0; a < field.GridSize; a++ {
		for b := 0; b < field.GridSize; b++ {
			var sum float64
			for da := -1; da <= 1; da++ {
				for db := -1; db <= 1; db++ {
					na := wrap(a + da)
					nb := clampIndex(b+db, field.GridSize)
					var w float64
					switch {
					case da == 0 && db == 0:
						w = center
					case da == 0 || db == 0:
						w = edge
					default:
						w = diag
					}
					sum += w * f[na][nb]
				}
			}
			out[a][b] = sum / weightSum
		}
	}
	return out
}

// clampIndex restricts i to [0, n), duplicating the boundary value instead
// of wrapping or skipping it.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
