package main

import (
	"flag"
	"os"

	"github.com/akmonengine/fizz"
	"github.com/akmonengine/fizz/actor"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene creates a static ground, a box and a hexagon falling on it, and a trigger zone
func SetupScene(world *fizz.World) (*actor.RigidBody, *actor.RigidBody) {
	groundTransform := actor.NewTransform()
	groundTransform.Position = mgl64.Vec2{0, -1}
	ground := actor.NewRigidBody(groundTransform, actor.NewBox(mgl64.Vec2{20, 1}), actor.BodyTypeStatic, 0.0)
	ground.Id = "ground"
	world.AddBody(ground)

	boxTransform := actor.NewTransform()
	boxTransform.Position = mgl64.Vec2{-2, 6}
	boxTransform.Rotation = 0.3
	box := actor.NewRigidBody(boxTransform, actor.NewBox(mgl64.Vec2{0.5, 0.5}), actor.BodyTypeDynamic, 1.0)
	box.Id = "box"
	box.Material.Restitution = 0.8
	world.AddBody(box)

	hexagonTransform := actor.NewTransform()
	hexagonTransform.Position = mgl64.Vec2{2, 4}
	hexagon := actor.NewRigidBody(hexagonTransform, actor.NewRegularPolygon(actor.PolygonHexagon), actor.BodyTypeDynamic, 2.0)
	hexagon.Id = "hexagon"
	hexagon.Material.Restitution = 0.2
	world.AddBody(hexagon)

	zoneTransform := actor.NewTransform()
	zoneTransform.Position = mgl64.Vec2{2, 2}
	zone := actor.NewRigidBody(zoneTransform, &actor.Circle{Radius: 1}, actor.BodyTypeStatic, 0.0)
	zone.Id = "zone"
	zone.IsTrigger = true
	world.AddBody(zone)

	return box, hexagon
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default world config")
	steps := flag.Int("steps", 180, "number of steps to simulate")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "simpleScene"})

	config := fizz.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = fizz.LoadConfig(*configPath); err != nil {
			logger.Fatal("cannot load config", "path", *configPath, "err", err)
		}
	}

	world, err := fizz.NewWorld(config)
	if err != nil {
		logger.Fatal("cannot create world", "err", err)
	}
	world.WithLogger(logger.WithPrefix("fizz"))

	world.Events.Subscribe(fizz.COLLISION_ENTER, func(event fizz.Event) {
		c := event.(fizz.CollisionEnterEvent).Collision
		if overlap, ok := c.Overlap(); ok {
			logger.Info("collision enter", "a", c.Collider.Id, "b", c.Collided.Id, "depth", overlap.Depth, "mtv", overlap.MTV)
		}
	})
	world.Events.Subscribe(fizz.COLLISION_EXIT, func(event fizz.Event) {
		e := event.(fizz.CollisionExitEvent)
		logger.Info("collision exit", "a", e.BodyA.Id, "b", e.BodyB.Id)
	})
	world.Events.Subscribe(fizz.TRIGGER_ENTER, func(event fizz.Event) {
		e := event.(fizz.TriggerEnterEvent)
		logger.Info("trigger enter", "a", e.BodyA.Id, "b", e.BodyB.Id)
	})
	world.Events.Subscribe(fizz.TRIGGER_EXIT, func(event fizz.Event) {
		e := event.(fizz.TriggerExitEvent)
		logger.Info("trigger exit", "a", e.BodyA.Id, "b", e.BodyB.Id)
	})

	box, hexagon := SetupScene(world)

	const dt float64 = 1.0 / 60.0
	for step := range *steps {
		world.Step(dt)

		if step%30 == 0 {
			logger.Info("step", "n", step,
				"box", box.Position(), "box_velocity", box.Velocity,
				"hexagon", hexagon.Position(), "hexagon_velocity", hexagon.Velocity)
		}
	}

	// Distance between the two bodies once settled
	collision, err := fizz.GetCollision(box, hexagon, world.Config().Settings())
	if err != nil {
		logger.Warn("distance did not converge", "err", err)
	}
	if separation, ok := collision.Separation(); ok {
		logger.Info("separation", "distance", separation.Distance, "direction", separation.Direction)
	}
}
