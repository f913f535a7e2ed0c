package constraint

import (
	"github.com/akmonengine/fizz/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Result is either Overlapping or Separated
type Result interface {
	isResult()
}

// Overlapping bodies, pushed apart by moving the collided body by MTV * Depth
type Overlapping struct {
	Depth float64
	MTV   mgl64.Vec2 // unit vector from the collider toward the collided body
}

// Separated bodies, and the closest points between them
type Separated struct {
	Distance  float64
	Direction mgl64.Vec2 // unit vector from the collider toward the collided body
	WitnessA  mgl64.Vec2 // closest point on the collider
	WitnessB  mgl64.Vec2 // closest point on the collided body
}

func (Overlapping) isResult() {}
func (Separated) isResult()   {}

// Collision is the narrow-phase result for a pair of bodies.
// It is built fresh at each step and never kept.
type Collision struct {
	Collider *actor.RigidBody
	Collided *actor.RigidBody
	Result   Result
}

// None is a pair for which nothing is known
func None(collider, collided *actor.RigidBody) Collision {
	return Collision{Collider: collider, Collided: collided}
}

func NewOverlapping(collider, collided *actor.RigidBody, depth float64, mtv mgl64.Vec2) Collision {
	return Collision{
		Collider: collider,
		Collided: collided,
		Result:   Overlapping{Depth: depth, MTV: mtv},
	}
}

func NewSeparated(collider, collided *actor.RigidBody, separated Separated) Collision {
	return Collision{
		Collider: collider,
		Collided: collided,
		Result:   separated,
	}
}

// Exists reports whether the bodies overlap
func (c Collision) Exists() bool {
	_, ok := c.Result.(Overlapping)
	return ok
}

func (c Collision) Overlap() (Overlapping, bool) {
	overlapping, ok := c.Result.(Overlapping)
	return overlapping, ok
}

func (c Collision) Separation() (Separated, bool) {
	separated, ok := c.Result.(Separated)
	return separated, ok
}
