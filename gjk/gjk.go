// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for 2D collision detection.
//
// GJK detects whether two convex shapes overlap by testing if their Minkowski difference
// contains the origin. The algorithm builds a simplex incrementally, converging toward
// the origin. In 2D the simplex never grows beyond a triangle.
//
// When the shapes do not overlap, the distance sub-procedure keeps refining the simplex
// edge closest to the origin, which gives the separation distance and the witness points.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"fmt"

	"github.com/akmonengine/fizz/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultTolerance is the distance improvement under which the distance
	// sub-procedure (and EPA) consider they have converged.
	DefaultTolerance = 1e-5

	// DefaultMaxIterations bounds every iterative loop of the package.
	DefaultMaxIterations = 64

	// touchingDistance is the separation under which the distance sub-procedure
	// reports the bodies as touching.
	touchingDistance = 1e-12

	// parallelThreshold is the squared sine under which two vectors are taken as parallel.
	// Comparing sines keeps the test independent of the size of the shapes.
	parallelThreshold = 1e-24
)

// Support is a point of the Minkowski difference along with the points of each
// body that produced it. The body points are needed to rebuild the witness points.
type Support struct {
	A     mgl64.Vec2 // support point on the first body
	B     mgl64.Vec2 // support point on the second body, in the opposite direction
	Point mgl64.Vec2 // A - B
}

// MinkowskiSupport computes a support point in the Minkowski difference (A - B).
//
// The Minkowski difference A - B is the set of all vectors (a - b) where a ∈ A and b ∈ B.
// The direction does not need to be normalized: its length never changes the chosen vertex.
func MinkowskiSupport(a, b *actor.RigidBody, direction mgl64.Vec2) Support {
	supportA := a.Support(direction)
	supportB := b.Support(direction.Mul(-1))

	return Support{
		A:     supportA,
		B:     supportB,
		Point: supportA.Sub(supportB),
	}
}

// Colliding reports whether two convex bodies overlap.
// Use it when only a yes/no answer is needed: it skips EPA and the distance sub-procedure.
// A run that hits the iteration cap is reported as a separation.
func Colliding(a, b *actor.RigidBody) bool {
	simplex := SimplexPool.Get().(*Simplex[Support])
	defer SimplexPool.Put(simplex)

	overlapping, _ := Evolve(a, b, simplex, DefaultMaxIterations)
	return overlapping
}

// Evolve runs GJK between a and b, writing into simplex.
//
// Returns:
//   - true: the origin is enclosed, the simplex is a triangle ready for EPA
//   - false: the bodies are separated, the simplex holds the 2 points seeding Distance
//
// Reaching maxIterations without enclosing the origin is reported as a separation,
// along with a wrapped ErrNotConverged. The simplex still holds 2 points.
func Evolve(a, b *actor.RigidBody, simplex *Simplex[Support], maxIterations int) (bool, error) {
	simplex.Reset()

	// Starting toward the other body typically reduces iterations
	initial := b.Position().Sub(a.Position())
	if initial.LenSqr() == 0 {
		initial = mgl64.Vec2{1, 0}
	}

	support := MinkowskiSupport(a, b, initial)
	simplex.Add(support)

	direction := support.Point.Mul(-1)
	if direction.LenSqr() == 0 {
		// The first support is the origin itself: look at the other side
		direction = initial.Mul(-1)
	}

	support = MinkowskiSupport(a, b, direction)
	simplex.Add(support)
	if direction.Dot(support.Point) < 0 {
		// The farthest point toward the origin does not pass it: separated
		return false, nil
	}
	direction = NextDir(simplex)

	for range maxIterations {
		support = MinkowskiSupport(a, b, direction)
		if direction.Dot(support.Point) < 0 {
			return false, nil
		}
		simplex.Add(support)

		if UpdateSimplex(simplex) {
			return true, nil
		}
		direction = NextDir(simplex)
	}

	return false, fmt.Errorf("%w: no enclosing simplex after %d iterations", ErrNotConverged, maxIterations)
}

// UpdateSimplex checks which Voronoi region of the triangle holds the origin.
// The most recent point is the last one and is always kept.
//
//   - origin beyond edge (s1, s2): s0 is dropped
//   - origin beyond edge (s0, s2): s1 is dropped
//   - otherwise the origin is enclosed and true is returned
func UpdateSimplex(simplex *Simplex[Support]) bool {
	simplex.mustHaveSize(3, "UpdateSimplex")

	a := simplex.At(0).Point
	b := simplex.At(1).Point
	c := simplex.At(2).Point

	side1 := b.Sub(c)
	side2 := a.Sub(c)
	toOrigin := c.Mul(-1)

	// Edge normals pointing away from the opposite vertex
	norm1 := tripleProduct(side2, side1, side1)
	norm2 := tripleProduct(side1, side2, side2)

	if norm1.Dot(toOrigin) > 0 {
		simplex.Remove(0)
		return false
	}
	if norm2.Dot(toOrigin) > 0 {
		simplex.Remove(1)
		return false
	}

	return true
}

// NextDir returns the normal of the segment pointing toward the origin.
// When the origin lies on the segment line, the triple product vanishes and
// the perpendicular of the segment is searched instead. The triple product is
// compared to |segment|²·|toOrigin|, so small shapes keep their true normal.
func NextDir(simplex *Simplex[Support]) mgl64.Vec2 {
	simplex.mustHaveSize(2, "NextDir")

	segment := simplex.At(0).Point.Sub(simplex.At(1).Point)
	toOrigin := simplex.At(1).Point.Mul(-1)

	direction := tripleProduct(segment, toOrigin, segment)
	if isParallel(direction, segment, toOrigin) {
		direction = perpendicular(segment)
	}

	return direction
}

// tripleProduct computes (a × b) × c for vectors of the plane, which stays in the plane
func tripleProduct(a, b, c mgl64.Vec2) mgl64.Vec2 {
	return b.Mul(a.Dot(c)).Sub(a.Mul(b.Dot(c)))
}

// isParallel reports whether u and v are parallel, or one of them null,
// from the triple product (u × v) × u whose length is |u|²·|v|·sin(u, v)
func isParallel(product, u, v mgl64.Vec2) bool {
	return product.LenSqr() <= parallelThreshold*u.LenSqr()*u.LenSqr()*v.LenSqr()
}

func perpendicular(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}
