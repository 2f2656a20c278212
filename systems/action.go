package systems

import (
	"github.com/loopfield-labs/efeswarm/config"
	"github.com/loopfield-labs/efeswarm/field"
)

// ComputeEFE evaluates the expected-free-energy functional G(v; haze, spm,
// fatigue) = mean(haze) * mean(|grad(spm.F2)|) + (1 + fatigueCoeff*fatigue)
// * |v|. The first term is epistemic, the second pragmatic.
func ComputeEFE(v field.Vec2, haze, spmF2 field.PolarField, fatigue float64) float64 {
	cfg := config.Cfg().Action

	epistemic := haze.Mean() * field.GradMagnitude(spmF2).Mean()
	pragmatic := (1 + cfg.FatigueCoeff*fatigue) * v.Len()

	return epistemic + pragmatic
}

// gradientEFE returns the central-difference gradient of ComputeEFE with
// respect to v, using the configured step size.
func gradientEFE(v field.Vec2, haze, spmF2 field.PolarField, fatigue float64) field.Vec2 {
	eps := config.Cfg().Action.GradStep

	gx := (ComputeEFE(field.Vec2{X: v.X + eps, Y: v.Y}, haze, spmF2, fatigue) -
		ComputeEFE(field.Vec2{X: v.X - eps, Y: v.Y}, haze, spmF2, fatigue)) / (2 * eps)
	gy := (ComputeEFE(field.Vec2{X: v.X, Y: v.Y + eps}, haze, spmF2, fatigue) -
		ComputeEFE(field.Vec2{X: v.X, Y: v.Y - eps}, haze, spmF2, fatigue)) / (2 * eps)

	return field.Vec2{X: gx, Y: gy}
}

// SelectAction descends the EFE gradient from vOld and returns a
// constraint-satisfying proposed velocity.
func SelectAction(vOld field.Vec2, haze field.PolarField, spm field.SPMBundle, fatigue float64) field.Vec2 {
	cfg := config.Cfg()

	g := gradientEFE(vOld, haze, spm.Get(field.ChannelF2), fatigue)
	proposed := vOld.Sub(g.Scale(cfg.Action.Eta))

	return ApplyConstraints(proposed, fatigue)
}

// ApplyConstraints enforces the forced-rest, restart, and speed-clamping
// rules on v, returning a velocity whose magnitude is either exactly 0 or
// in [V_MIN, V_MAX], preserving direction.
func ApplyConstraints(v field.Vec2, fatigue float64) field.Vec2 {
	cfg := config.Cfg().Physics

	if fatigue > config.Cfg().Fatigue.RestThreshold {
		return field.Vec2{}
	}

	speed := v.Len()
	if speed < cfg.Eps {
		return field.Vec2{X: cfg.VMin, Y: 0}
	}

	clamped := clamp(speed, cfg.VMin, cfg.VMax)
	return v.Scale(clamped / speed)
}
