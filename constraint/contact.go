package constraint

import (
	"github.com/akmonengine/fizz/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var _ Constraint = Collision{}

const (
	// DefaultCorrectionWeight is the share of the residual penetration removed per step.
	// Higher values = less sinking, potential jitter
	DefaultCorrectionWeight = 0.4

	// DefaultSlop is the penetration left alone, so that resting contacts stay in contact
	DefaultSlop = 0.01
)

// ClosingSpeed is the velocity of the collided body relative to the collider, along the MTV.
// Negative values mean the bodies are approaching. It is 0 for non-overlapping pairs.
func ClosingSpeed(c Collision) float64 {
	overlap, ok := c.Overlap()
	if !ok {
		return 0
	}

	return c.Collided.Velocity.Sub(c.Collider.Velocity).Dot(overlap.MTV)
}

// ResolveCollision applies an impulse along the MTV to both bodies, in opposite directions,
// scaled by their inverse masses. Separating or stationary pairs are left untouched.
//
// After resolution the closing speed is -restitution times what it was.
func ResolveCollision(c Collision) {
	overlap, ok := c.Overlap()
	if !ok {
		return
	}

	bodyA := c.Collider
	bodyB := c.Collided

	invMassSum := bodyA.InvMass() + bodyB.InvMass()
	if invMassSum == 0 {
		return
	}

	closingSpeed := ClosingSpeed(c)
	if closingSpeed >= 0 {
		return
	}

	restitution := ComputeRestitution(bodyA.Material, bodyB.Material)
	magnitude := -(1 + restitution) * closingSpeed / invMassSum
	impulse := overlap.MTV.Mul(magnitude)

	bodyA.ApplyImpulse(impulse.Mul(-bodyA.InvMass()))
	bodyB.ApplyImpulse(impulse.Mul(bodyB.InvMass()))
}

// SinkingCorrection moves both bodies apart along the MTV, each weighted by its inverse mass.
// Only the penetration deeper than slop is corrected, and only a weight share of it.
func SinkingCorrection(c Collision, weight, slop float64) {
	overlap, ok := c.Overlap()
	if !ok || overlap.Depth <= slop {
		return
	}

	bodyA := c.Collider
	bodyB := c.Collided

	invMassSum := bodyA.InvMass() + bodyB.InvMass()
	if invMassSum == 0 {
		return
	}

	correction := overlap.MTV.Mul((overlap.Depth - slop) * weight / invMassSum)

	moveBy(bodyA, correction.Mul(-bodyA.InvMass()))
	moveBy(bodyB, correction.Mul(bodyB.InvMass()))
}

// SolveVelocity resolves the collision with impulses
func (c Collision) SolveVelocity() {
	ResolveCollision(c)
}

// SolvePosition counters the sinking left by velocity-only resolution
func (c Collision) SolvePosition(weight, slop float64) {
	SinkingCorrection(c, weight, slop)
}

func moveBy(body *actor.RigidBody, offset mgl64.Vec2) {
	if offset == (mgl64.Vec2{}) {
		return
	}
	body.SetPosition(body.Position().Add(offset))
}
