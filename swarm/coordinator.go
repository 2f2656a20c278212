// Package swarm implements the coordinator that owns the agent population,
// its spatial index, and the beta-mixing rule that partially shares haze
// across neighbors on a torus.
package swarm

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/loopfield-labs/efeswarm/components"
	"github.com/loopfield-labs/efeswarm/config"
	"github.com/loopfield-labs/efeswarm/field"
	"github.com/loopfield-labs/efeswarm/systems"
)

// deterministicSeed is part of the coordinator's construction contract, not
// configuration: tests depend on bit-identical population initialization.
const deterministicSeed = 42

// initSpeedMin and initSpeedMax bound the initial speed sampled for each
// agent; initPosRange bounds the initial [-r, r]^2 position box.
const (
	initSpeedMin = 0.3
	initSpeedMax = 1.0
	initPosRange = 10.0
)

// SwarmCoordinator owns the agent population, the parallel position cache
// used by the spatial index, and the lazily-rebuilt k-d tree over that
// cache. It is the sole owner of the underlying ECS world; callers borrow
// agents by index and must not retain them past the coordinator's
// lifetime.
type SwarmCoordinator struct {
	world    *ecs.World
	mapper   *ecs.Map3[components.AgentState, components.Haze, components.Estimator]
	stateMap *ecs.Map1[components.AgentState]
	hazeMap  *ecs.Map1[components.Haze]
	estMap   *ecs.Map1[components.Estimator]

	agents    []*systems.Agent
	positions []field.Vec2

	beta      float64
	k         int
	worldSize float64

	tree       *kdtree.Tree
	pointIndex map[[2]float64][]int
	dirty      bool

	rng *rand.Rand
}

// New allocates n agents with positions sampled uniformly in [-10,10]^2 and
// speeds sampled uniformly in [0.3,1.0] with uniformly random direction,
// kappa=1, fatigue=0. The random source is seeded deterministically at 42.
func New(n int, beta float64, k int) *SwarmCoordinator {
	cfg := config.Cfg()

	world := ecs.NewWorld()
	mapper := ecs.NewMap3[components.AgentState, components.Haze, components.Estimator](world)
	stateMap := ecs.NewMap1[components.AgentState](world)
	hazeMap := ecs.NewMap1[components.Haze](world)
	estMap := ecs.NewMap1[components.Estimator](world)

	c := &SwarmCoordinator{
		world:     world,
		mapper:    mapper,
		stateMap:  stateMap,
		hazeMap:   hazeMap,
		estMap:    estMap,
		agents:    make([]*systems.Agent, 0, n),
		positions: make([]field.Vec2, 0, n),
		beta:      beta,
		k:         k,
		worldSize: cfg.World.Size,
		dirty:     true,
		rng:       rand.New(rand.NewSource(deterministicSeed)),
	}

	for i := 0; i < n; i++ {
		x := c.rng.Float64()*2*initPosRange - initPosRange
		y := c.rng.Float64()*2*initPosRange - initPosRange
		speed := initSpeedMin + c.rng.Float64()*(initSpeedMax-initSpeedMin)
		theta := c.rng.Float64() * 2 * math.Pi

		state := components.AgentState{
			Position: field.Vec2{X: x, Y: y},
			Velocity: field.Vec2{X: speed * math.Cos(theta), Y: speed * math.Sin(theta)},
			Kappa:    1,
			Fatigue:  0,
		}
		haze := components.Haze{}
		est := components.NewEstimator(cfg.Estimator.Tau)

		entity := mapper.NewEntity(&state, &haze, &est)
		c.agents = append(c.agents, systems.NewAgent(entity, stateMap, hazeMap, estMap))
		c.positions = append(c.positions, state.Position)
	}

	return c
}

// SetBeta updates the mixing strength.
func (c *SwarmCoordinator) SetBeta(beta float64) { c.beta = beta }

// GetBeta returns the current mixing strength.
func (c *SwarmCoordinator) GetBeta() float64 { return c.beta }

// Size returns the number of agents.
func (c *SwarmCoordinator) Size() int { return len(c.agents) }

// Agent returns the agent at index i. Panics if i is out of range, matching
// the semantics of a native slice index.
func (c *SwarmCoordinator) Agent(i int) *systems.Agent {
	c.checkIndex(i)
	return c.agents[i]
}

// AgentMut is Agent; both return the same mutable facade since Agent's
// methods already mutate through the coordinator's component maps.
func (c *SwarmCoordinator) AgentMut(i int) *systems.Agent {
	return c.Agent(i)
}

// AllHazeFields returns a snapshot of every agent's current haze field, in
// agent order, for consumption by the phase-analysis pipeline.
func (c *SwarmCoordinator) AllHazeFields() []field.PolarField {
	out := make([]field.PolarField, len(c.agents))
	for i, a := range c.agents {
		out[i] = a.Haze()
	}
	return out
}

// UpdatePosition overrides agent i's position directly, keeping the
// position cache and the agent's own state in sync, and marks the spatial
// index dirty.
func (c *SwarmCoordinator) UpdatePosition(i int, p field.Vec2) {
	c.checkIndex(i)
	state := c.stateMap.Get(c.agents[i].Entity())
	state.Position = p
	c.positions[i] = p
	c.dirty = true
}

// UpdateAll runs one simulation tick: each agent updates from the shared
// SPM and dt, the position cache is re-synced, the spatial index is marked
// dirty, and beta-mixing is applied. Per-agent Update calls only read their
// own entity's components plus the read-only spm, so they are safe to run
// in parallel; UpdateAll itself does not spawn goroutines, but a caller may
// parallelize the per-agent loop and still observe the ordering guarantee
// that no agent sees another's post-mixing haze until every agent has
// finished its own Update.
func (c *SwarmCoordinator) UpdateAll(spm field.SPMBundle, dt float64) {
	for i, a := range c.agents {
		a.Update(spm, dt)
		c.positions[i] = a.State().Position
	}
	c.dirty = true
	c.ApplyMixing()
}

func (c *SwarmCoordinator) checkIndex(i int) {
	if i < 0 || i >= len(c.agents) {
		panic(fmt.Sprintf("swarm: index %d out of range [0,%d)", i, len(c.agents)))
	}
}
