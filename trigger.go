package fizz

import (
	"unsafe"

	"github.com/akmonengine/fizz/actor"
	"github.com/akmonengine/fizz/constraint"
)

const (
	TRIGGER_ENTER EventType = iota
	COLLISION_ENTER
	TRIGGER_STAY
	COLLISION_STAY
	TRIGGER_EXIT
	COLLISION_EXIT
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Trigger events only tell which bodies overlap
type TriggerEnterEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

type TriggerStayEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

type TriggerExitEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

// Collision events carry the last collision of the step, before resolution
type CollisionEnterEvent struct {
	Collision constraint.Collision
}

type CollisionStayEvent struct {
	Collision constraint.Collision
}

type CollisionExitEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e TriggerEnterEvent) Type() EventType   { return TRIGGER_ENTER }
func (e TriggerStayEvent) Type() EventType    { return TRIGGER_STAY }
func (e TriggerExitEvent) Type() EventType    { return TRIGGER_EXIT }
func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }
func (e CollisionStayEvent) Type() EventType  { return COLLISION_STAY }
func (e CollisionExitEvent) Type() EventType  { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

type pairKey struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody
}

// makePairKey orders the bodies by address, so that (a, b) and (b, a) share a key
func makePairKey(bodyA, bodyB *actor.RigidBody) pairKey {
	if uintptr(unsafe.Pointer(bodyB)) < uintptr(unsafe.Pointer(bodyA)) {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

func (p pairKey) isTrigger() bool {
	return p.bodyA.IsTrigger || p.bodyB.IsTrigger
}

// Events keeps track of the overlapping pairs from one step to the next,
// and dispatches enter/stay/exit events to the listeners once per step.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event

	// Overlapping pairs of the previous and of the current step
	previous map[pairKey]constraint.Collision
	current  map[pairKey]constraint.Collision
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 256),
		previous:  make(map[pairKey]constraint.Collision),
		current:   make(map[pairKey]constraint.Collision),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollisions is called during substeps to record the collisions and triggers.
// It returns the collisions to resolve: triggers are left out.
func (e *Events) recordCollisions(collisions []constraint.Collision) []constraint.Collision {
	resolved := make([]constraint.Collision, 0, len(collisions))
	for _, c := range collisions {
		e.current[makePairKey(c.Collider, c.Collided)] = c

		if !c.Collider.IsTrigger && !c.Collided.IsTrigger {
			resolved = append(resolved, c)
		}
	}

	return resolved
}

// forget drops the pairs of a removed body, without emitting exit events
func (e *Events) forget(body *actor.RigidBody) {
	for _, pairs := range []map[pairKey]constraint.Collision{e.previous, e.current} {
		for pair := range pairs {
			if pair.bodyA == body || pair.bodyB == body {
				delete(pairs, pair)
			}
		}
	}
}

// processCollisionEvents compares the current and previous pairs to detect Enter/Stay/Exit.
// Should be called after all substeps
func (e *Events) processCollisionEvents() {
	for pair, collision := range e.current {
		_, stay := e.previous[pair]

		switch {
		case pair.isTrigger() && stay:
			e.buffer = append(e.buffer, TriggerStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		case pair.isTrigger():
			e.buffer = append(e.buffer, TriggerEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		case stay:
			e.buffer = append(e.buffer, CollisionStayEvent{Collision: collision})
		default:
			e.buffer = append(e.buffer, CollisionEnterEvent{Collision: collision})
		}
	}

	for pair := range e.previous {
		if _, ok := e.current[pair]; ok {
			continue
		}

		if pair.isTrigger() {
			e.buffer = append(e.buffer, TriggerExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next step and clear current
	e.previous, e.current = e.current, e.previous
	clear(e.current)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
