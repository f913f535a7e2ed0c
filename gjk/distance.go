package gjk

import (
	"errors"
	"fmt"

	"github.com/akmonengine/fizz/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// collinearThreshold is the squared sine between two sides under which a triangle
// is handled as a segment
const collinearThreshold = 1e-10

// ErrNotConverged is returned when an iterative procedure hits its iteration cap.
// The accompanying result is the best estimate found so far.
var ErrNotConverged = errors.New("gjk: did not converge within tolerance")

// Separation describes two bodies that do not overlap
type Separation struct {
	Distance  float64
	Direction mgl64.Vec2 // unit vector from the first body toward the second
	WitnessA  mgl64.Vec2 // closest point on the first body
	WitnessB  mgl64.Vec2 // closest point on the second body
}

// Distance computes the separation of two bodies GJK found disjoint.
// simplex must hold the 2 points left by Evolve.
//
// Each iteration adds the support point along the direction from the closest
// point of the current edge toward the origin, and keeps the edge of the
// resulting triangle closest to the origin. It stops when the new support point
// improves the distance by less than tolerance.
func Distance(a, b *actor.RigidBody, simplex *Simplex[Support], tolerance float64, maxIterations int) (Separation, error) {
	closest := Line(simplex)
	direction := closest.Mul(-1)

	for range maxIterations {
		length := direction.Len()
		if length < touchingDistance {
			// The origin is on the simplex: the bodies are touching
			return separation(simplex, mgl64.Vec2{}), nil
		}

		support := MinkowskiSupport(a, b, direction)
		gain := (direction.Dot(support.Point) - direction.Dot(closest)) / length
		if gain < tolerance {
			return separation(simplex, direction), nil
		}

		simplex.Add(support)
		closest = Triangle(simplex)
		if simplex.Size() == 3 {
			// Triangle enclosed the origin, only possible for touching bodies
			simplex.Remove(0)
			return separation(simplex, mgl64.Vec2{}), nil
		}
		direction = closest.Mul(-1)
	}

	return separation(simplex, direction), fmt.Errorf("%w after %d iterations", ErrNotConverged, maxIterations)
}

func separation(simplex *Simplex[Support], direction mgl64.Vec2) Separation {
	witnessA, witnessB := WitnessPoints(simplex)
	result := Separation{
		Distance: direction.Len(),
		WitnessA: witnessA,
		WitnessB: witnessB,
	}
	if result.Distance > 0 {
		result.Direction = direction.Mul(1 / result.Distance)
	}

	return result
}

// Line returns the point of the segment (s0, s1) closest to the origin
func Line(simplex *Simplex[Support]) mgl64.Vec2 {
	simplex.mustHaveSize(2, "Line")

	return ClosestPointOnSegment(simplex.At(0).Point, simplex.At(1).Point)
}

// ClosestPointOnSegment projects the origin onto the segment [a, b].
// A zero-length segment degenerates to the point a.
func ClosestPointOnSegment(a, b mgl64.Vec2) mgl64.Vec2 {
	if a == b {
		return a
	}

	ab := b.Sub(a)
	ao := a.Mul(-1)

	// t is the AB component of AO, as a fraction of the length of AB
	t := mgl64.Clamp(ab.Dot(ao)/ab.Dot(ab), 0, 1)

	return a.Add(ab.Mul(t))
}

// Triangle returns the point of the triangle closest to the origin, and drops the
// point that does not belong to the closest edge. If the origin is inside the
// triangle, the zero vector is returned and the simplex keeps its 3 points.
func Triangle(simplex *Simplex[Support]) mgl64.Vec2 {
	simplex.mustHaveSize(3, "Triangle")

	a := simplex.At(0).Point
	b := simplex.At(1).Point
	c := simplex.At(2).Point

	side1 := b.Sub(c)
	side2 := a.Sub(c)
	toOrigin := c.Mul(-1)
	norm1 := tripleProduct(side2, side1, side1)
	norm2 := tripleProduct(side1, side2, side2)

	proj1 := norm1.Dot(toOrigin)
	proj2 := norm2.Dot(toOrigin)

	switch {
	case proj1 > 0 && proj2 > 0:
		// Either edge from the newest point can be the closest one
		p1 := ClosestPointOnSegment(a, c)
		p2 := ClosestPointOnSegment(b, c)
		if p1.LenSqr() > p2.LenSqr() {
			simplex.Remove(0)
			return p2
		}
		simplex.Remove(1)
		return p1
	case proj1 > 0:
		simplex.Remove(0)
		return Line(simplex)
	case proj2 > 0:
		simplex.Remove(1)
		return Line(simplex)
	case norm1.LenSqr() <= collinearThreshold*side1.LenSqr()*side1.LenSqr()*side2.LenSqr():
		return flatTriangle(simplex, a, b, c)
	}

	return mgl64.Vec2{}
}

// flatTriangle keeps the pair of collinear points closest to the origin.
// Ties drop the newest point.
func flatTriangle(simplex *Simplex[Support], a, b, c mgl64.Vec2) mgl64.Vec2 {
	drop := 2
	closest := ClosestPointOnSegment(a, b)

	if p := ClosestPointOnSegment(a, c); p.LenSqr() < closest.LenSqr() {
		drop, closest = 1, p
	}
	if p := ClosestPointOnSegment(b, c); p.LenSqr() < closest.LenSqr() {
		drop, closest = 0, p
	}
	simplex.Remove(drop)

	return closest
}

// WitnessPoints rebuilds the closest points on each body from the final edge.
// The barycentric weights of the origin's projection on the Minkowski edge are
// applied to the points each body contributed. A zero-length edge gives the
// points of its first vertex.
func WitnessPoints(simplex *Simplex[Support]) (mgl64.Vec2, mgl64.Vec2) {
	simplex.mustHaveSize(2, "WitnessPoints")

	first := simplex.At(0)
	second := simplex.At(1)
	if first.Point == second.Point {
		return first.A, first.B
	}

	segment := second.Point.Sub(first.Point)
	lambdaB := mgl64.Clamp(-segment.Dot(first.Point)/segment.Dot(segment), 0, 1)
	lambdaA := 1 - lambdaB

	witnessA := first.A.Mul(lambdaA).Add(second.A.Mul(lambdaB))
	witnessB := first.B.Mul(lambdaA).Add(second.B.Mul(lambdaB))

	return witnessA, witnessB
}
