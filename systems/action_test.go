package systems

import (
	"testing"

	"github.com/loopfield-labs/efeswarm/config"
	"github.com/loopfield-labs/efeswarm/field"
)

func ensureConfig() {
	defer func() { recover() }()
	config.MustInit("")
}

func TestEFEMonotonicInVelocityMagnitude(t *testing.T) {
	ensureConfig()

	haze := field.Const(0.5)
	spmF2 := field.Const(1.0)

	low := ComputeEFE(field.Vec2{X: 0.5, Y: 0.5}, haze, spmF2, 0)
	high := ComputeEFE(field.Vec2{X: 1.5, Y: 1.5}, haze, spmF2, 0)

	if !(high > low) {
		t.Errorf("ComputeEFE(v_high)=%v not greater than ComputeEFE(v_low)=%v", high, low)
	}
}

func TestEFEMonotonicInFatigue(t *testing.T) {
	ensureConfig()

	haze := field.Const(0.5)
	spmF2 := field.Const(1.0)
	v := field.Vec2{X: 1, Y: 1}

	lowFatigue := ComputeEFE(v, haze, spmF2, 0)
	highFatigue := ComputeEFE(v, haze, spmF2, 0.8)

	if !(highFatigue > lowFatigue) {
		t.Errorf("EFE at high fatigue (%v) not greater than at low fatigue (%v)", highFatigue, lowFatigue)
	}
}

func TestApplyConstraintsForcedRest(t *testing.T) {
	ensureConfig()

	v := ApplyConstraints(field.Vec2{X: 1, Y: 1}, 0.85)
	if v.Len() != 0 {
		t.Errorf("ApplyConstraints at fatigue=0.85 gave |v|=%v, want 0", v.Len())
	}
}

func TestApplyConstraintsRestart(t *testing.T) {
	ensureConfig()
	cfg := config.Cfg().Physics

	v := ApplyConstraints(field.Vec2{}, 0)
	if v.X != cfg.VMin || v.Y != 0 {
		t.Errorf("ApplyConstraints restart = %+v, want (%v, 0)", v, cfg.VMin)
	}
}

func TestApplyConstraintsClampsPreservingDirection(t *testing.T) {
	ensureConfig()
	cfg := config.Cfg().Physics

	v := ApplyConstraints(field.Vec2{X: 100, Y: 0}, 0)
	if v.Len() > cfg.VMax+1e-9 {
		t.Errorf("|v| = %v, exceeds VMax %v", v.Len(), cfg.VMax)
	}
	if v.Y != 0 {
		t.Errorf("direction not preserved: v=%+v", v)
	}

	small := ApplyConstraints(field.Vec2{X: 0.01, Y: 0}, 0)
	if small.Len() < cfg.VMin-1e-9 {
		t.Errorf("|v| = %v, below VMin %v", small.Len(), cfg.VMin)
	}
}

func TestForcedRestFromUpdate(t *testing.T) {
	ensureConfig()

	a := newTestAgent(t)
	state := a.stateMap.Get(a.entity)
	state.Fatigue = 0.85
	state.Velocity = field.Vec2{X: 5, Y: 5}
	spm := field.NewSPMBundle()
	spm.Set(field.ChannelF2, field.Const(0.5))

	a.Update(spm, 0.1)
	if v := a.State().Velocity; v.Len() >= config.Cfg().Physics.VMin {
		t.Errorf("agent with fatigue=0.85 has |v|=%v, want < VMin", v.Len())
	}
}
