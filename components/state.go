// Package components defines the ECS components backing each agent in the
// swarm: kinematic pose, kappa/fatigue, and haze-estimator state.
package components

import "github.com/loopfield-labs/efeswarm/field"

// AgentState is an agent's pose and homeostatic state. Position and
// velocity default to zero; Kappa defaults to 1, Fatigue to 0.
type AgentState struct {
	Position field.Vec2
	Velocity field.Vec2
	Kappa    field.Scalar // in [0.3, 1.5]
	Fatigue  field.Scalar // in [0, 1]
}

// DefaultAgentState returns the zero-pose, kappa=1, fatigue=0 default.
func DefaultAgentState() AgentState {
	return AgentState{Kappa: 1}
}

// Haze is the component wrapping an agent's uncertainty field.
type Haze field.PolarField

// Estimator is the component wrapping an agent's haze-estimator state: the
// EMA of prediction error, and whether it has been initialized yet.
type Estimator struct {
	Tau         field.Scalar
	EMA         field.PolarField
	Initialized bool
}

// NewEstimator returns a fresh, uninitialized estimator with the given
// time constant.
func NewEstimator(tau field.Scalar) Estimator {
	return Estimator{Tau: tau}
}
