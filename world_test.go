package fizz

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/akmonengine/fizz/actor"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

func newTestWorld(t *testing.T, config Config) *World {
	t.Helper()

	world, err := NewWorld(config)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	return world.WithLogger(log.New(io.Discard))
}

func weightlessConfig() Config {
	config := DefaultConfig()
	config.Gravity = mgl64.Vec2{}

	return config
}

func TestNewWorld_InvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.Substeps = 0

	world, err := NewWorld(config)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
	if world != nil {
		t.Error("no world should be returned for an invalid config")
	}
}

func TestWorld_Step_Gravity(t *testing.T) {
	tests := []struct {
		name     string
		substeps int
		wantY    float64
	}{
		{"single step", 1, -9.81},
		{"two substeps", 2, -7.3575},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Substeps = tt.substeps
			world := newTestWorld(t, config)

			body := createCircle(mgl64.Vec2{0, 0}, 1, actor.BodyTypeDynamic)
			ground := createBox(mgl64.Vec2{0, 50}, mgl64.Vec2{5, 1}, actor.BodyTypeStatic)
			world.AddBody(body)
			world.AddBody(ground)

			world.Step(1.0)

			if math.Abs(body.Velocity.Y()+9.81) > 1e-9 {
				t.Errorf("Velocity = %v, want (0, -9.81)", body.Velocity)
			}
			if math.Abs(body.Position().Y()-tt.wantY) > 1e-9 {
				t.Errorf("Position = %v, want y=%v", body.Position(), tt.wantY)
			}
			if ground.Position() != (mgl64.Vec2{0, 50}) {
				t.Errorf("static body moved to %v", ground.Position())
			}
		})
	}
}

func TestWorld_Step_ResolvesCollision(t *testing.T) {
	world := newTestWorld(t, weightlessConfig())

	a := createBox(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1}, actor.BodyTypeDynamic)
	b := createBox(mgl64.Vec2{1.5, 0}, mgl64.Vec2{1, 1}, actor.BodyTypeDynamic)
	a.Velocity = mgl64.Vec2{1, 0}
	b.Velocity = mgl64.Vec2{-1, 0}
	world.AddBody(a)
	world.AddBody(b)

	world.Step(0.1)

	// Equal masses, restitution 0.8
	if !vec2ApproxEqual(a.Velocity, mgl64.Vec2{-0.8, 0}, 1e-9) {
		t.Errorf("a.Velocity = %v, want (-0.8, 0)", a.Velocity)
	}
	if !vec2ApproxEqual(b.Velocity, mgl64.Vec2{0.8, 0}, 1e-9) {
		t.Errorf("b.Velocity = %v, want (0.8, 0)", b.Velocity)
	}

	// Integrated to 0.1 and 1.4, then pushed apart by 0.138 each
	if !vec2ApproxEqual(a.Position(), mgl64.Vec2{-0.038, 0}, 1e-9) {
		t.Errorf("a.Position = %v, want (-0.038, 0)", a.Position())
	}
	if !vec2ApproxEqual(b.Position(), mgl64.Vec2{1.538, 0}, 1e-9) {
		t.Errorf("b.Position = %v, want (1.538, 0)", b.Position())
	}

	if len(world.Collisions()) != 1 {
		t.Errorf("got %d collisions, want 1", len(world.Collisions()))
	}
}

func TestWorld_Step_StaticGround(t *testing.T) {
	world := newTestWorld(t, weightlessConfig())

	ground := createBox(mgl64.Vec2{0, -1}, mgl64.Vec2{10, 1}, actor.BodyTypeStatic)
	box := createBox(mgl64.Vec2{0, 0.9}, mgl64.Vec2{1, 1}, actor.BodyTypeDynamic)
	box.Velocity = mgl64.Vec2{0, -2}
	world.AddBody(ground)
	world.AddBody(box)

	world.Step(0.01)

	if !vec2ApproxEqual(box.Velocity, mgl64.Vec2{0, 1.6}, 1e-9) {
		t.Errorf("Velocity = %v, want (0, 1.6)", box.Velocity)
	}
	if box.Position().Y() <= 0.88 {
		t.Errorf("the box should be pushed out of the ground, got y=%v", box.Position().Y())
	}
	if ground.Position() != (mgl64.Vec2{0, -1}) || ground.Velocity != (mgl64.Vec2{}) {
		t.Error("the ground should not move")
	}
}

func TestWorld_Step_Trigger(t *testing.T) {
	world := newTestWorld(t, weightlessConfig())

	capture := &eventCapture{}
	subscribeAll(&world.Events, capture)

	trigger := createBox(mgl64.Vec2{0, 0}, mgl64.Vec2{2, 2}, actor.BodyTypeDynamic)
	trigger.IsTrigger = true
	body := createCircle(mgl64.Vec2{1, 0}, 1, actor.BodyTypeDynamic)
	body.Velocity = mgl64.Vec2{-1, 0}
	world.AddBody(trigger)
	world.AddBody(body)

	world.Step(0.1)

	if !vec2ApproxEqual(body.Velocity, mgl64.Vec2{-1, 0}, 1e-12) {
		t.Errorf("a trigger should not be resolved, Velocity = %v", body.Velocity)
	}
	if !vec2ApproxEqual(body.Position(), mgl64.Vec2{0.9, 0}, 1e-12) {
		t.Errorf("a trigger should not push bodies, Position = %v", body.Position())
	}
	if len(world.Collisions()) != 1 {
		t.Errorf("the trigger overlap should be reported, got %d collisions", len(world.Collisions()))
	}
	if capture.count() != 1 || !capture.hasEventType(TRIGGER_ENTER) {
		t.Errorf("expected a single TRIGGER_ENTER, got %v", capture.events)
	}
}

func TestWorld_Step_Events(t *testing.T) {
	world := newTestWorld(t, weightlessConfig())

	capture := &eventCapture{}
	subscribeAll(&world.Events, capture)

	a := createCircle(mgl64.Vec2{0, 0}, 1, actor.BodyTypeDynamic)
	b := createCircle(mgl64.Vec2{1.5, 0}, 1, actor.BodyTypeDynamic)
	world.AddBody(a)
	world.AddBody(b)

	world.Step(0.01)
	if capture.count() != 1 || !capture.hasEventType(COLLISION_ENTER) {
		t.Fatalf("step 1: expected a single COLLISION_ENTER, got %v", capture.events)
	}

	// Move the bodies apart
	capture.reset()
	b.SetPosition(mgl64.Vec2{10, 0})
	world.Step(0.01)
	if capture.count() != 1 || !capture.hasEventType(COLLISION_EXIT) {
		t.Fatalf("step 2: expected a single COLLISION_EXIT, got %v", capture.events)
	}
}

func TestWorld_RemoveBody(t *testing.T) {
	world := newTestWorld(t, weightlessConfig())

	capture := &eventCapture{}
	subscribeAll(&world.Events, capture)

	a := createCircle(mgl64.Vec2{0, 0}, 1, actor.BodyTypeDynamic)
	b := createCircle(mgl64.Vec2{1.5, 0}, 1, actor.BodyTypeDynamic)
	world.AddBody(a)
	world.AddBody(b)
	world.Step(0.01)

	world.RemoveBody(b)

	if len(world.Bodies) != 1 || world.Bodies[0] != a {
		t.Fatalf("Bodies = %v, want only a", world.Bodies)
	}
	if len(world.Collisions()) != 0 {
		t.Errorf("the collisions of a removed body should be dropped, got %d", len(world.Collisions()))
	}

	capture.reset()
	world.Step(0.01)
	if capture.count() != 0 {
		t.Errorf("a removed body should not emit events, got %v", capture.events)
	}

	// Removing an unknown body is a no-op
	world.RemoveBody(b)
	if len(world.Bodies) != 1 {
		t.Errorf("Bodies = %v, want only a", world.Bodies)
	}
}

func TestWorld_Step_Workers(t *testing.T) {
	config := DefaultConfig()
	config.Workers = 4
	world := newTestWorld(t, config)

	bodies := createRandomBoxes(200, 150)
	for _, body := range bodies {
		world.AddBody(body)
	}

	before := make([]float64, len(bodies))
	for i, body := range bodies {
		before[i] = body.Position().Y()
	}

	world.Step(1.0 / 60.0)

	for i, body := range bodies {
		if body.Velocity.Y() >= 0 && body.Position().Y() >= before[i] {
			t.Errorf("body %d did not fall, y=%v", i, body.Position().Y())
		}
	}
}

func BenchmarkWorld_Step(b *testing.B) {
	config := DefaultConfig()
	config.Workers = 4
	config.Substeps = 4

	world, err := NewWorld(config)
	if err != nil {
		b.Fatal(err)
	}
	world.WithLogger(log.New(io.Discard))

	ground := createBox(mgl64.Vec2{0, -90}, mgl64.Vec2{95, 1}, actor.BodyTypeStatic)
	world.AddBody(ground)
	for _, body := range createRandomBoxes(500, 150) {
		world.AddBody(body)
	}

	b.ReportAllocs()
	for b.Loop() {
		world.Step(1.0 / 60.0)
	}
}
