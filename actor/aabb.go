package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// NewAABB builds a box from two opposite corners, in any order
func NewAABB(a, b mgl64.Vec2) AABB {
	return AABB{
		Min: mgl64.Vec2{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y())},
		Max: mgl64.Vec2{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y())},
	}
}

func (a AABB) Width() float64 {
	return a.Max.X() - a.Min.X()
}

func (a AABB) Height() float64 {
	return a.Max.Y() - a.Min.Y()
}

func (a AABB) Center() mgl64.Vec2 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// ContainsPoint checks if a point is strictly inside the AABB.
// Points on the border are not contained.
func (a AABB) ContainsPoint(point mgl64.Vec2) bool {
	return a.Min.X() < point.X() && point.X() < a.Max.X() &&
		a.Min.Y() < point.Y() && point.Y() < a.Max.Y()
}

// Contains checks if other lies strictly inside the AABB
func (a AABB) Contains(other AABB) bool {
	return a.Min.X() < other.Min.X() && other.Max.X() < a.Max.X() &&
		a.Min.Y() < other.Min.Y() && other.Max.Y() < a.Max.Y()
}

// Overlaps checks if two AABBs overlap, touching borders included
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y()
}

// Quadrants splits the box in four: top-left, top-right, bottom-left, bottom-right
func (a AABB) Quadrants() [4]AABB {
	halfWidth := mgl64.Vec2{a.Width() / 2, 0}
	halfHeight := mgl64.Vec2{0, a.Height() / 2}

	return [4]AABB{
		{Min: a.Min.Add(halfHeight), Max: a.Max.Sub(halfWidth)},
		{Min: a.Min.Add(halfWidth).Add(halfHeight), Max: a.Max},
		{Min: a.Min, Max: a.Max.Sub(halfWidth).Sub(halfHeight)},
		{Min: a.Min.Add(halfWidth), Max: a.Max.Sub(halfHeight)},
	}
}
