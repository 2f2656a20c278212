package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/loopfield-labs/efeswarm/components"
	"github.com/loopfield-labs/efeswarm/config"
	"github.com/loopfield-labs/efeswarm/field"
)

// Agent is a thin facade over an ECS entity and the coordinator's
// component maps. It owns no data itself; SwarmCoordinator owns the
// underlying ecs.World, and Agent is safe to keep only as long as that
// world does not remove the entity (agents are never removed once
// created).
type Agent struct {
	entity   ecs.Entity
	stateMap *ecs.Map1[components.AgentState]
	hazeMap  *ecs.Map1[components.Haze]
	estMap   *ecs.Map1[components.Estimator]
}

// NewAgent wraps entity with the given component maps.
func NewAgent(entity ecs.Entity, stateMap *ecs.Map1[components.AgentState], hazeMap *ecs.Map1[components.Haze], estMap *ecs.Map1[components.Estimator]) *Agent {
	return &Agent{entity: entity, stateMap: stateMap, hazeMap: hazeMap, estMap: estMap}
}

// Entity returns the underlying ECS entity handle.
func (a *Agent) Entity() ecs.Entity { return a.entity }

// State returns a copy of the agent's current pose and homeostatic state.
func (a *Agent) State() components.AgentState { return *a.stateMap.Get(a.entity) }

// Haze returns the agent's current haze field.
func (a *Agent) Haze() field.PolarField { return field.PolarField(*a.hazeMap.Get(a.entity)) }

// SetEffectiveHaze overwrites the agent's haze field directly, without
// touching the haze estimator's EMA. This is how the coordinator injects
// the beta-mixed haze without corrupting the per-agent EMA.
func (a *Agent) SetEffectiveHaze(h field.PolarField) {
	*a.hazeMap.Get(a.entity) = components.Haze(h)
}

// ResetHazeEstimator zeros the agent's haze field and resets its estimator.
func (a *Agent) ResetHazeEstimator() {
	*a.hazeMap.Get(a.entity) = components.Haze{}
	ResetEstimator(a.estMap.Get(a.entity))
}

// Update runs one tick of the per-agent inference/action loop: select an
// action by descending the EFE gradient, integrate position with
// Euler-explicit stepping (never wrapped into the torus — see the
// coordinator's neighbor query for where the torus metric is applied
// instead), update the haze estimate from the resulting prediction error,
// and update fatigue with its asymmetric accumulation/recovery rates.
func (a *Agent) Update(spm field.SPMBundle, dt float64) {
	cfg := config.Cfg()
	state := a.stateMap.Get(a.entity)
	haze := a.hazeMap.Get(a.entity)
	est := a.estMap.Get(a.entity)

	vOld := state.Velocity
	vNew := SelectAction(vOld, field.PolarField(*haze), spm, state.Fatigue)

	state.Velocity = vNew
	state.Position = state.Position.Add(vNew.Scale(dt))

	pe := clamp01(vNew.Sub(vOld).Len() / cfg.Physics.VMax)
	*haze = components.Haze(EstimateHaze(est, spm, pe))

	if vNew.Len() > cfg.Physics.VMin {
		state.Fatigue += cfg.Fatigue.AccumRate * dt
	} else {
		state.Fatigue -= cfg.Fatigue.RecoverRate * dt
	}
	state.Fatigue = clamp01(state.Fatigue)
}
