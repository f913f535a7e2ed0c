package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeInterface is the interface that all collision shapes must implement
type ShapeInterface interface {
	// Support returns the farthest point of the shape, in world space, along direction.
	// The direction does not need to be normalized.
	Support(direction mgl64.Vec2) mgl64.Vec2
	GetAABB() AABB
	// SetTransform places the shape in the world and refreshes its cached world-space data
	SetTransform(transform Transform)
	// ComputeMass calculates the mass of the shape, at its current scale, for a given density
	ComputeMass(density float64) float64
}

// PolygonType enumerates the regular polygon presets
type PolygonType int

const (
	PolygonTriangle PolygonType = iota
	PolygonSquare
	PolygonHexagon
)

// Circle represents a circular collision shape.
// The world radius is Radius scaled by the X component of the transform scale.
type Circle struct {
	Radius float64

	position    mgl64.Vec2
	worldRadius float64
}

func (c *Circle) SetTransform(transform Transform) {
	c.position = transform.Position
	c.worldRadius = c.Radius * transform.Scale.X()
}

func (c *Circle) Support(direction mgl64.Vec2) mgl64.Vec2 {
	length := direction.Len()
	if length == 0 {
		return c.position.Add(mgl64.Vec2{c.worldRadius, 0})
	}

	return c.position.Add(direction.Mul(c.worldRadius / length))
}

// GetAABB is not affected by rotation, only by position and radius
func (c *Circle) GetAABB() AABB {
	radiusVec := mgl64.Vec2{c.worldRadius, c.worldRadius}

	return AABB{
		Min: c.position.Sub(radiusVec),
		Max: c.position.Add(radiusVec),
	}
}

func (c *Circle) ComputeMass(density float64) float64 {
	return density * math.Pi * c.worldRadius * c.worldRadius
}

// Polygon is a convex shape enclosed by its vertices, given in counter-clockwise order
type Polygon struct {
	points []mgl64.Vec2

	initialized bool
	transform   Transform
	transformed []mgl64.Vec2
	aabb        AABB
}

// NewPolygon creates a convex polygon from its local vertices (counter-clockwise).
// It panics with fewer than 3 vertices.
func NewPolygon(points ...mgl64.Vec2) *Polygon {
	if len(points) < 3 {
		panic("actor: a polygon needs at least 3 vertices")
	}

	p := &Polygon{
		points:      append([]mgl64.Vec2(nil), points...),
		transformed: make([]mgl64.Vec2, len(points)),
	}
	p.SetTransform(NewTransform())

	return p
}

// NewRegularPolygon creates one of the unit-sized presets
func NewRegularPolygon(polygonType PolygonType) *Polygon {
	halfSqrt3 := math.Sqrt(3) / 2

	switch polygonType {
	case PolygonTriangle:
		return NewPolygon(
			mgl64.Vec2{-1, -halfSqrt3},
			mgl64.Vec2{1, -halfSqrt3},
			mgl64.Vec2{0, halfSqrt3},
		)
	case PolygonSquare:
		return NewBox(mgl64.Vec2{1, 1})
	case PolygonHexagon:
		return NewPolygon(
			mgl64.Vec2{1, 0},
			mgl64.Vec2{0.5, halfSqrt3},
			mgl64.Vec2{-0.5, halfSqrt3},
			mgl64.Vec2{-1, 0},
			mgl64.Vec2{-0.5, -halfSqrt3},
			mgl64.Vec2{0.5, -halfSqrt3},
		)
	}

	panic("actor: unknown polygon type")
}

// NewBox creates a rectangle centered on its origin
func NewBox(halfExtents mgl64.Vec2) *Polygon {
	hx, hy := halfExtents.X(), halfExtents.Y()

	return NewPolygon(
		mgl64.Vec2{-hx, -hy},
		mgl64.Vec2{hx, -hy},
		mgl64.Vec2{hx, hy},
		mgl64.Vec2{-hx, hy},
	)
}

// SetTransform recomputes the world vertices, only when the transform changed
func (p *Polygon) SetTransform(transform Transform) {
	if p.initialized && p.transform.Equal(transform) {
		return
	}
	p.initialized = true
	p.transform = transform

	lower := transform.Apply(p.points[0])
	upper := lower
	for i, point := range p.points {
		world := transform.Apply(point)
		p.transformed[i] = world

		lower[0] = math.Min(lower[0], world[0])
		lower[1] = math.Min(lower[1], world[1])
		upper[0] = math.Max(upper[0], world[0])
		upper[1] = math.Max(upper[1], world[1])
	}

	p.aabb = AABB{Min: lower, Max: upper}
}

func (p *Polygon) Support(direction mgl64.Vec2) mgl64.Vec2 {
	support := p.transformed[0]
	maxDistance := support.Dot(direction)

	for _, vertex := range p.transformed[1:] {
		if distance := vertex.Dot(direction); distance > maxDistance {
			maxDistance = distance
			support = vertex
		}
	}

	return support
}

func (p *Polygon) GetAABB() AABB {
	return p.aabb
}

// ComputeMass uses the shoelace area of the world vertices
func (p *Polygon) ComputeMass(density float64) float64 {
	var area float64
	for i, a := range p.transformed {
		b := p.transformed[(i+1)%len(p.transformed)]
		area += a.X()*b.Y() - b.X()*a.Y()
	}

	return density * math.Abs(area) / 2
}

// Vertices returns the cached world-space vertices
func (p *Polygon) Vertices() []mgl64.Vec2 {
	return p.transformed
}
