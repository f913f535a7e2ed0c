package epa

import (
	"math"

	"github.com/akmonengine/fizz/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Edge is the segment of the polytope between the points Index-1 and Index (modulo size)
type Edge struct {
	// Index is where a support point expanding this edge gets inserted
	Index int

	// Closest is the point of the edge closest to the origin
	Closest     mgl64.Vec2
	DistanceSqr float64
}

// FindClosestEdge scans every edge of the polytope and returns the one closest to the origin.
// Zero-length edges, left by duplicated support points, are skipped.
// It returns false when no edge has a length.
func FindClosestEdge(polytope *gjk.Simplex[gjk.Support]) (Edge, bool) {
	size := polytope.Size()
	closest := Edge{DistanceSqr: math.Inf(1)}
	found := false

	for i := range size {
		a := polytope.At(i).Point
		b := polytope.At((i + 1) % size).Point
		if a == b {
			continue
		}

		point := gjk.ClosestPointOnSegment(a, b)
		if distanceSqr := point.LenSqr(); distanceSqr < closest.DistanceSqr {
			closest = Edge{Index: i + 1, Closest: point, DistanceSqr: distanceSqr}
			found = true
		}
	}

	return closest, found
}

// SearchDirection returns the direction in which the edge gets expanded.
//
// Usually it is the closest point itself. When the origin lies on the edge that
// point vanishes, and the normal of the edge is used instead, oriented away from
// the vertex that follows the edge.
func (e Edge) SearchDirection(polytope *gjk.Simplex[gjk.Support]) mgl64.Vec2 {
	if e.DistanceSqr >= EdgeDegeneracyThreshold {
		return e.Closest
	}

	size := polytope.Size()
	first := polytope.At(e.Index - 1).Point
	second := polytope.At(e.Index % size).Point
	other := polytope.At((e.Index + 1) % size).Point

	edge := second.Sub(first)
	normal := mgl64.Vec2{-edge.Y(), edge.X()}
	if normal.Dot(other.Sub(first)) > 0 {
		normal = normal.Mul(-1)
	}

	return normal
}
