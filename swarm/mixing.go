package swarm

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/loopfield-labs/efeswarm/field"
	"github.com/loopfield-labs/efeswarm/systems"
)

// ghostOffsets tiles the torus into a 3x3 grid of periodic images so that a
// Euclidean k-d tree can still answer nearest-neighbor queries correctly
// across the wrap-around boundary: an agent near one edge may have its true
// nearest neighbor sitting just past the opposite edge, which only becomes
// visible to the tree once that neighbor's ghost image is inserted at the
// corresponding offset position.
var ghostOffsets = [9][2]float64{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// rebuildIndex rebuilds the k-d tree over a 3x3 ghost tiling of the current
// position cache. Each ghost point maps back to its originating agent index
// via pointIndex so query results can be resolved and self-matches
// filtered out.
func (c *SwarmCoordinator) rebuildIndex() {
	n := len(c.positions)
	pts := make(kdtree.Points, 0, n*len(ghostOffsets))
	c.pointIndex = make(map[[2]float64][]int, n*len(ghostOffsets))

	for i, p := range c.positions {
		for _, off := range ghostOffsets {
			gx := p.X + off[0]*c.worldSize
			gy := p.Y + off[1]*c.worldSize
			key := [2]float64{gx, gy}
			pts = append(pts, kdtree.Point{gx, gy})
			c.pointIndex[key] = append(c.pointIndex[key], i)
		}
	}

	c.tree = kdtree.New(pts, false)
	c.dirty = false
}

// Neighbors returns the indices of the k agents nearest to agent i under
// the toroidal metric, excluding i itself, ordered by increasing distance.
// Panics if i is out of range.
func (c *SwarmCoordinator) Neighbors(i int) []int {
	c.checkIndex(i)
	if c.dirty || c.tree == nil {
		c.rebuildIndex()
	}
	if c.k <= 0 || len(c.agents) <= 1 {
		return nil
	}

	// Oversize the keeper: each real agent contributes nine ghost images, so
	// a keeper sized only k+1 could fill entirely with ghosts of a single
	// nearby agent and never see the (k+1)th distinct one. keeper.Heap is a
	// max-heap ordered by descending Dist (so NKeeper.Keep can cheaply evict
	// its current worst candidate); we don't rely on that ordering below,
	// since we re-rank the deduplicated candidates by exact toroidal
	// distance instead of the ghost-tiled Euclidean approximation.
	target := c.positions[i]
	keeper := kdtree.NewNKeeper((c.k + 1) * len(ghostOffsets))
	c.tree.NearestSet(keeper, kdtree.Point{target.X, target.Y})

	seen := make(map[int]bool, c.k+1)
	candidates := make([]int, 0, c.k+1)
	for _, cd := range keeper.Heap {
		pt, ok := cd.Comparable.(kdtree.Point)
		if !ok {
			continue
		}
		key := [2]float64{pt[0], pt[1]}
		for _, idx := range c.pointIndex[key] {
			if idx == i || seen[idx] {
				continue
			}
			seen[idx] = true
			candidates = append(candidates, idx)
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		da := systems.ToroidalDistance(target, c.positions[candidates[a]], c.worldSize)
		db := systems.ToroidalDistance(target, c.positions[candidates[b]], c.worldSize)
		return da < db
	})

	if len(candidates) > c.k {
		candidates = candidates[:c.k]
	}
	return candidates
}

// ApplyMixing implements the partial belief-sharing rule: every agent's
// post-mixing haze is a convex combination of its own haze and the mean
// haze of its k nearest neighbors, weighted by beta. At beta=0 every
// agent's haze is unchanged; at beta=1 every agent's haze is fully replaced
// by its neighborhood mean. Mixing reads the pre-mixing haze of all agents
// before writing any post-mixing value, so results do not depend on agent
// iteration order.
func (c *SwarmCoordinator) ApplyMixing() {
	n := len(c.agents)
	if n == 0 {
		return
	}

	preMix := make([]field.PolarField, n)
	for i, a := range c.agents {
		preMix[i] = a.Haze()
	}

	if c.beta == 0 {
		return
	}

	postMix := make([]field.PolarField, n)
	for i := range c.agents {
		neighbors := c.Neighbors(i)
		if len(neighbors) == 0 {
			postMix[i] = preMix[i]
			continue
		}

		var sum field.PolarField
		for _, nb := range neighbors {
			sum = sum.Add(preMix[nb])
		}
		mean := sum.Scale(1.0 / float64(len(neighbors)))
		postMix[i] = field.Lerp(preMix[i], mean, c.beta)
	}

	for i, a := range c.agents {
		a.SetEffectiveHaze(postMix[i])
	}
}
