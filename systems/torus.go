package systems

import (
	"math"

	"github.com/loopfield-labs/efeswarm/field"
)

// ToroidalDelta returns the shortest-path signed displacement from p to q
// on a square wrap-around world of side worldSize.
func ToroidalDelta(p, q field.Vec2, worldSize float64) field.Vec2 {
	dx := q.X - p.X
	dy := q.Y - p.Y

	half := worldSize / 2
	if dx > half {
		dx -= worldSize
	} else if dx < -half {
		dx += worldSize
	}
	if dy > half {
		dy -= worldSize
	} else if dy < -half {
		dy += worldSize
	}

	return field.Vec2{X: dx, Y: dy}
}

// ToroidalDistance returns the Euclidean distance under the torus metric:
// for each axis, d = min(|delta|, worldSize - |delta|), combined
// Euclidean-ly.
func ToroidalDistance(p, q field.Vec2, worldSize float64) float64 {
	d := ToroidalDelta(p, q, worldSize)
	return math.Sqrt(d.X*d.X + d.Y*d.Y)
}
