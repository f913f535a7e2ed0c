package constraint

import (
	"math"

	"github.com/akmonengine/fizz/actor"
)

// Constraint is solved once per step, velocities first
type Constraint interface {
	SolveVelocity()
	SolvePosition(weight, slop float64)
}

// ComputeRestitution keeps the least bouncy material: a ball falling on clay does not rebound
func ComputeRestitution(matA, matB actor.Material) float64 {
	return math.Min(matA.Restitution, matB.Restitution)

	// Average
	// return (matA.Restitution + matB.Restitution) / 2.0
}
