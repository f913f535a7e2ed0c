package fizz

import (
	"errors"
	"fmt"

	"github.com/akmonengine/fizz/actor"
	"github.com/akmonengine/fizz/constraint"
	"github.com/akmonengine/fizz/epa"
	"github.com/akmonengine/fizz/gjk"
)

// Settings tunes the narrow phase
type Settings struct {
	// Tolerance is the minimum improvement for GJK distance and EPA to keep iterating
	Tolerance     float64
	MaxIterations int
}

func DefaultSettings() Settings {
	return Settings{
		Tolerance:     gjk.DefaultTolerance,
		MaxIterations: gjk.DefaultMaxIterations,
	}
}

// Colliding is a cheap overlap test, without depth nor distance
func Colliding(a, b *actor.RigidBody) bool {
	return gjk.Colliding(a, b)
}

// GetCollision runs GJK between a and b, then either EPA on overlap or the distance
// sub-procedure on separation. The MTV and the separation direction point from a toward b.
//
// When an iteration cap is hit, the best result found is returned with the error:
// it is still usable. A GJK run that did not settle is treated as a separation.
func GetCollision(a, b *actor.RigidBody, settings Settings) (constraint.Collision, error) {
	simplex := gjk.SimplexPool.Get().(*gjk.Simplex[gjk.Support])
	defer gjk.SimplexPool.Put(simplex)

	overlapping, evolveErr := gjk.Evolve(a, b, simplex, settings.MaxIterations)
	if overlapping {
		penetration, err := epa.EPA(a, b, simplex, settings.Tolerance, settings.MaxIterations)
		return constraint.NewOverlapping(a, b, penetration.Depth, penetration.MTV), err
	}

	separation, err := gjk.Distance(a, b, simplex, settings.Tolerance, settings.MaxIterations)
	return constraint.NewSeparated(a, b, constraint.Separated{
		Distance:  separation.Distance,
		Direction: separation.Direction,
		WitnessA:  separation.WitnessA,
		WitnessB:  separation.WitnessB,
	}), errors.Join(evolveErr, err)
}

// BroadPhase rebuilds the quadtree with the bodies, and returns the candidate pairs
// whose AABBs overlap. Pairs of static bodies are dropped: they never move.
func BroadPhase(quadtree *Quadtree, bodies []*actor.RigidBody) []Pair {
	quadtree.Clear()
	for _, body := range bodies {
		quadtree.Insert(body)
	}

	candidates := quadtree.GetPossibleCollisions()
	pairs := candidates[:0]
	for _, pair := range candidates {
		if pair.BodyA.BodyType == actor.BodyTypeStatic && pair.BodyB.BodyType == actor.BodyTypeStatic {
			continue
		}
		if !pair.BodyA.GetAABB().Overlaps(pair.BodyB.GetAABB()) {
			continue
		}
		pairs = append(pairs, pair)
	}

	return pairs
}

// NarrowPhase tests every pair in parallel, and returns the overlapping ones in pair order.
// Bodies are only read.
//
// Pairs that did not converge are still returned with their best estimate; their errors
// are joined in the returned error.
func NarrowPhase(pairs []Pair, settings Settings, workersCount int) ([]constraint.Collision, error) {
	results := make([]constraint.Collision, len(pairs))
	errs := make([]error, len(pairs))

	task(workersCount, pairs, func(i int, pair Pair) {
		collision, err := GetCollision(pair.BodyA, pair.BodyB, settings)
		results[i] = collision
		if err != nil {
			errs[i] = fmt.Errorf("pair (%v, %v): %w", pair.BodyA.Id, pair.BodyB.Id, err)
		}
	})

	collisions := make([]constraint.Collision, 0, len(results))
	for _, collision := range results {
		if collision.Exists() {
			collisions = append(collisions, collision)
		}
	}

	return collisions, errors.Join(errs...)
}
