package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultRestitution is the restitution a new body starts with
const DefaultRestitution = 0.8

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by forces, gravity, and collisions
	// They have finite mass and can move freely
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable and have infinite mass (zero inverse mass)
	// They still take part in collision detection (e.g., ground, walls)
	BodyTypeStatic
)

type Material struct {
	Density     float64
	Restitution float64 // 0= no rebound, 1= perfect restitution
}

// RigidBody represents a rigid body in the physics simulation
type RigidBody struct {
	Id        any
	IsTrigger bool

	transform Transform

	Velocity         mgl64.Vec2
	accumulatedForce mgl64.Vec2

	Material Material
	BodyType BodyType
	invMass  float64

	// Collision shape, owned by the body
	Shape ShapeInterface
}

// NewRigidBody creates a new rigid body with the given properties
// density is used to calculate mass for dynamic bodies (ignored for static)
func NewRigidBody(transform Transform, shape ShapeInterface, bodyType BodyType, density float64) *RigidBody {
	rb := &RigidBody{
		transform: transform,
		Shape:     shape,
		BodyType:  bodyType,
		Material: Material{
			Density:     density,
			Restitution: DefaultRestitution,
		},
	}
	rb.Shape.SetTransform(transform)

	if bodyType == BodyTypeDynamic {
		if mass := shape.ComputeMass(density); mass > 0 {
			rb.invMass = 1.0 / mass
		}
	}

	return rb
}

// InvMass returns the inverse mass, 0 for static bodies
func (rb *RigidBody) InvMass() float64 {
	return rb.invMass
}

// SetStatic turns the body into an immovable one
func (rb *RigidBody) SetStatic() {
	rb.BodyType = BodyTypeStatic
	rb.invMass = 0
	rb.Velocity = mgl64.Vec2{}
	rb.ClearForces()
}

func (rb *RigidBody) Transform() Transform {
	return rb.transform
}

func (rb *RigidBody) Position() mgl64.Vec2 {
	return rb.transform.Position
}

func (rb *RigidBody) SetTransform(transform Transform) {
	rb.transform = transform
	rb.Shape.SetTransform(rb.transform)
}

func (rb *RigidBody) SetPosition(position mgl64.Vec2) {
	rb.transform.Position = position
	rb.Shape.SetTransform(rb.transform)
}

func (rb *RigidBody) SetRotation(rotation float64) {
	rb.transform.Rotation = rotation
	rb.Shape.SetTransform(rb.transform)
}

func (rb *RigidBody) SetScale(scale mgl64.Vec2) {
	rb.transform.Scale = scale
	rb.Shape.SetTransform(rb.transform)
}

// Integrate advances the body with a symplectic Euler step,
// then clears the accumulated forces
func (rb *RigidBody) Integrate(dt float64, gravity mgl64.Vec2) {
	if rb.BodyType == BodyTypeStatic {
		rb.ClearForces()
		return
	}

	acceleration := rb.accumulatedForce.Mul(rb.invMass).Add(gravity)
	rb.Velocity = rb.Velocity.Add(acceleration.Mul(dt))
	rb.SetPosition(rb.transform.Position.Add(rb.Velocity.Mul(dt)))

	rb.ClearForces()
}

// ApplyImpulse changes the velocity by the full impulse vector.
// The caller is responsible for scaling it by the inverse mass.
func (rb *RigidBody) ApplyImpulse(impulse mgl64.Vec2) {
	if rb.BodyType != BodyTypeStatic {
		rb.Velocity = rb.Velocity.Add(impulse)
	}
}

func (rb *RigidBody) AddForce(force mgl64.Vec2) {
	if rb.BodyType != BodyTypeStatic {
		rb.accumulatedForce = rb.accumulatedForce.Add(force)
	}
}

func (rb *RigidBody) Force() mgl64.Vec2 {
	return rb.accumulatedForce
}

func (rb *RigidBody) ClearForces() {
	rb.accumulatedForce = mgl64.Vec2{0, 0}
}

func (rb *RigidBody) Support(direction mgl64.Vec2) mgl64.Vec2 {
	return rb.Shape.Support(direction)
}

func (rb *RigidBody) GetAABB() AABB {
	return rb.Shape.GetAABB()
}
