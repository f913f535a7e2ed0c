// Package epa implements the Expanding Polytope Algorithm for computing penetration depth.
//
// EPA is run after GJK detects a collision to determine:
//   - Penetration depth (how far shapes overlap)
//   - Minimum Translation Vector (the direction to separate shapes)
//
// The algorithm expands a polygon (starting from GJK's final triangle) toward the boundary
// of the Minkowski difference, always pushing the edge closest to the origin. Once that edge
// cannot move further, its distance to the origin is the penetration depth.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/fizz/actor"
	"github.com/akmonengine/fizz/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultMaxIterations limits polytope expansion to prevent infinite loops.
	// Polygons converge in a handful of iterations, circles need more.
	DefaultMaxIterations = 64

	// EdgeDegeneracyThreshold is the squared distance under which the origin is
	// considered to lie on the closest edge.
	EdgeDegeneracyThreshold = 1e-15

	// TouchingThreshold is the squared distance under which the shapes only touch:
	// the penetration depth is reported as 0.
	TouchingThreshold = 1e-8

	// NormalSnapThreshold is used to clamp nearly-zero MTV components to exactly zero.
	NormalSnapThreshold = 1e-12
)

// ErrNotConverged is returned, wrapped, when the expansion hits its iteration cap.
// The Penetration returned along with it is the best estimate found.
var ErrNotConverged = errors.New("epa: did not converge within tolerance")

// Penetration is the overlap of two bodies
type Penetration struct {
	Depth float64
	// MTV is the unit vector from the first body toward the second.
	// Moving the second body by MTV * Depth separates them.
	MTV mgl64.Vec2
}

// EPA computes the penetration of two overlapping bodies.
//
// Parameters:
//   - a, b: The two colliding rigid bodies
//   - polytope: Final simplex from GJK (a triangle enclosing the origin). It is expanded in place.
//   - tolerance: the minimum gain of a new support point to keep expanding
//   - maxIterations: hard cap on the number of expansions
//
// The loop:
//  1. Find the edge closest to the origin
//  2. Get the support point along its outward direction
//  3. If it does not move the edge by at least tolerance → done
//  4. Otherwise, insert the support point between the vertices of that edge
func EPA(a, b *actor.RigidBody, polytope *gjk.Simplex[gjk.Support], tolerance float64, maxIterations int) (Penetration, error) {
	if polytope.Size() < 3 {
		return handleDegeneratePolytope(a, b), nil
	}

	var best Penetration
	for range maxIterations {
		edge, ok := FindClosestEdge(polytope)
		if !ok {
			return handleDegeneratePolytope(a, b), nil
		}

		direction := edge.SearchDirection(polytope)
		length := direction.Len()
		if length == 0 {
			return handleDegeneratePolytope(a, b), nil
		}

		distance := math.Sqrt(edge.DistanceSqr)
		best = Penetration{Depth: distance, MTV: snapNormalToAxis(direction.Mul(1 / length))}
		if edge.DistanceSqr < TouchingThreshold {
			best.Depth = 0
		}

		support := gjk.MinkowskiSupport(a, b, direction)
		if support.Point.Dot(direction)/length-distance < tolerance {
			return best, nil
		}

		polytope.Insert(support, edge.Index)
	}

	return best, fmt.Errorf("%w after %d iterations", ErrNotConverged, maxIterations)
}

// handleDegeneratePolytope estimates a contact when the polytope collapsed and has no
// edge left to expand. The bodies are treated as touching, separated along their centers.
func handleDegeneratePolytope(a, b *actor.RigidBody) Penetration {
	normal := b.Position().Sub(a.Position())
	if length := normal.Len(); length > 0 {
		return Penetration{MTV: normal.Mul(1 / length)}
	}

	// Centers are at same location, use the x axis
	return Penetration{MTV: mgl64.Vec2{1, 0}}
}

// snapNormalToAxis clamps nearly-zero components of a unit vector to exactly zero,
// then renormalizes it. Axis-aligned contacts then get an exact MTV.
func snapNormalToAxis(normal mgl64.Vec2) mgl64.Vec2 {
	x, y := normal.X(), normal.Y()

	if math.Abs(x) < NormalSnapThreshold {
		x = 0
	}
	if math.Abs(y) < NormalSnapThreshold {
		y = 0
	}

	clamped := mgl64.Vec2{x, y}
	length := clamped.Len()
	if length == 0 {
		return normal
	}

	return clamped.Mul(1 / length)
}
