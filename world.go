package fizz

import (
	"slices"

	"github.com/akmonengine/fizz/actor"
	"github.com/akmonengine/fizz/constraint"
	"github.com/charmbracelet/log"
)

type World struct {
	// List of all rigid bodies in the world
	Bodies []*actor.RigidBody
	Events Events

	config   Config
	quadtree *Quadtree
	logger   *log.Logger

	// Overlapping pairs found by the last substep, triggers included
	collisions []constraint.Collision
}

// NewWorld creates an empty world, once the config is validated
func NewWorld(config Config) (*World, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &World{
		Events:   NewEvents(),
		config:   config,
		quadtree: NewQuadtree(config.Bounds, config.MaxLevels),
		logger:   log.Default().WithPrefix("fizz"),
	}, nil
}

// WithLogger replaces the default logger
func (w *World) WithLogger(logger *log.Logger) *World {
	w.logger = logger
	return w
}

func (w *World) Config() Config {
	return w.config
}

// AddBody adds a rigid body to the world
func (w *World) AddBody(body *actor.RigidBody) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a rigid body from the world
func (w *World) RemoveBody(body *actor.RigidBody) {
	if k := slices.Index(w.Bodies, body); k != -1 {
		w.Bodies = slices.Delete(w.Bodies, k, k+1)
	}

	w.Events.forget(body)
	w.collisions = slices.DeleteFunc(w.collisions, func(c constraint.Collision) bool {
		return c.Collider == body || c.Collided == body
	})
}

// Collisions returns the overlapping pairs found by the last substep
func (w *World) Collisions() []constraint.Collision {
	return w.collisions
}

// Step advances the simulation by dt, split in Config.Substeps substeps.
// Each substep integrates the bodies, finds the collisions and resolves them.
// The events are sent once, at the end of the step.
func (w *World) Step(dt float64) {
	h := dt / float64(w.config.Substeps)

	for range w.config.Substeps {
		w.integrate(h)

		// Phase 2.0: Collision pair finding - Broad phase
		// Phase 2.1: Collision pair finding - narrow phase
		pairs := BroadPhase(w.quadtree, w.Bodies)
		collisions, err := NarrowPhase(pairs, w.config.Settings(), w.config.Workers)
		if err != nil {
			w.logger.Warn("narrow phase did not converge", "max_iterations", w.config.MaxIterations, "err", err)
		}
		w.collisions = collisions

		// Phase 3: Solver, sequential as a body can be part of several collisions
		resolved := w.Events.recordCollisions(collisions)
		w.solveVelocity(resolved)
		w.solvePosition(resolved)

		w.logger.Debug("substep", "bodies", len(w.Bodies), "pairs", len(pairs), "collisions", len(collisions))
	}

	w.Events.flush()
}

func (w *World) integrate(h float64) {
	task(w.config.Workers, w.Bodies, func(_ int, body *actor.RigidBody) {
		body.Integrate(h, w.config.Gravity)
	})
}

func (w *World) solveVelocity(constraints []constraint.Collision) {
	for _, c := range constraints {
		c.SolveVelocity()
	}
}

func (w *World) solvePosition(constraints []constraint.Collision) {
	for _, c := range constraints {
		c.SolvePosition(w.config.CorrectionWeight, w.config.Slop)
	}
}
