package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position, rotation and (possibly non-uniform) scale in 2D space
type Transform struct {
	Position mgl64.Vec2
	Rotation float64 // radians, counter-clockwise
	Scale    mgl64.Vec2
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec2{0, 0},
		Rotation: 0,
		Scale:    mgl64.Vec2{1, 1},
	}
}

// Equal compares two transforms component by component
func (t Transform) Equal(other Transform) bool {
	return t.Position == other.Position && t.Rotation == other.Rotation && t.Scale == other.Scale
}

// Apply maps a local point to world space: scale, then rotate, then translate
func (t Transform) Apply(local mgl64.Vec2) mgl64.Vec2 {
	scaled := mgl64.Vec2{local.X() * t.Scale.X(), local.Y() * t.Scale.Y()}
	return mgl64.Rotate2D(t.Rotation).Mul2x1(scaled).Add(t.Position)
}
