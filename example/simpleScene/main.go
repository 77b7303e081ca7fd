package main

import (
	"flag"
	"fmt"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/akmonengine/feather2d/manifold"
	"github.com/akmonengine/feather2d/sat"
	"github.com/go-gl/mathgl/mgl32"
)

// CollisionDebugger instruments the collision pipeline of one pair
type CollisionDebugger interface {
	DebugSAT(bodyA, bodyB *actor.Body, normal mgl32.Vec2, depth float32, collides bool)
	DebugManifold(bodyA, bodyB *actor.Body, contacts []mgl32.Vec2)
	DebugEvent(event feather2d.Event)
}

// SimpleDebugger prints everything to stdout
type SimpleDebugger struct{}

func (d *SimpleDebugger) DebugSAT(bodyA, bodyB *actor.Body, normal mgl32.Vec2, depth float32, collides bool) {
	fmt.Printf("🔍 SAT Debug:\n")
	fmt.Printf("   Body A pos: %v\n", bodyA.Position())
	fmt.Printf("   Body B pos: %v\n", bodyB.Position())
	if !collides {
		fmt.Printf("   Separated\n")
		return
	}
	fmt.Printf("   Normal: %v\n", normal)
	fmt.Printf("   Depth: %v\n", depth)
}

func (d *SimpleDebugger) DebugManifold(bodyA, bodyB *actor.Body, contacts []mgl32.Vec2) {
	fmt.Printf("🎯 Manifold Debug:\n")
	fmt.Printf("   Contact points: %d\n", len(contacts))
	for i, point := range contacts {
		// Lever arms used by the resolvers
		rA := point.Sub(bodyA.Position())
		rB := point.Sub(bodyB.Position())

		fmt.Printf("   Point %d: %v\n", i, point)
		fmt.Printf("      rA (floor): %v (len=%.3f)\n", rA, rA.Len())
		fmt.Printf("      rB (box):   %v (len=%.3f)\n", rB, rB.Len())
	}
}

func (d *SimpleDebugger) DebugEvent(event feather2d.Event) {
	fmt.Printf("📣 Event: %v\n", event.Type())
}

// SetupScene creates a static floor and a tilted box above it
func SetupScene(resolver string) (*feather2d.World, *actor.Body, *actor.Body, error) {
	world := feather2d.NewWorld()
	resolve, err := constraint.ResolverByName(resolver)
	if err != nil {
		return nil, nil, nil, err
	}
	world.Resolver = resolve

	factory := actor.NewFactory(actor.DefaultLimits(), nil)

	floor, err := factory.CreateRectangle(400, 20, mgl32.Vec2{0, 0}, 1, true, 0.5)
	if err != nil {
		return nil, nil, nil, err
	}
	box, err := factory.CreateRectangle(30, 30, mgl32.Vec2{0, 80}, 1, false, 0.6)
	if err != nil {
		return nil, nil, nil, err
	}
	box.RotateTo(mgl32.DegToRad(25))

	if _, err := world.AddBody(floor); err != nil {
		return nil, nil, nil, err
	}
	if _, err := world.AddBody(box); err != nil {
		return nil, nil, nil, err
	}

	return world, floor, box, nil
}

// RunScene steps the box falling on the floor and prints its state
func RunScene(resolver string, steps, substeps int) error {
	fmt.Printf("🧪 Box falling on a floor, resolver %q\n", resolver)
	fmt.Println("==================================================")

	world, floor, box, err := SetupScene(resolver)
	if err != nil {
		return err
	}
	debugger := &SimpleDebugger{}
	for _, eventType := range []feather2d.EventType{feather2d.COLLISION_ENTER, feather2d.COLLISION_EXIT} {
		world.Events.Subscribe(eventType, debugger.DebugEvent)
	}

	fmt.Printf("Initial state:\n")
	fmt.Printf("  Floor: position %v\n", floor.Position())
	fmt.Printf("  Box: position %v, angle %v\n", box.Position(), box.Angle())
	fmt.Printf("  Gravity: %v\n", world.Gravity)
	fmt.Println()

	const dt float32 = 1.0 / 60.0

	for step := 0; step < steps; step++ {
		fmt.Printf("--- STEP %d ---\n", step+1)

		// Inspect the pair before the step, without touching the bodies
		normal, depth, collides := sat.Collide(floor, box)
		debugger.DebugSAT(floor, box, normal, depth, collides)
		if collides {
			c1, c2, count := manifold.FindContactPoints(floor, box)
			debugger.DebugManifold(floor, box, constraint.Manifold{Contact1: c1, Contact2: c2, ContactCount: count}.Contacts())
		}

		world.Step(dt, substeps)

		states, err := world.Snapshot()
		if err != nil {
			return err
		}
		for _, state := range states {
			if state.BodyType == actor.BodyTypeStatic {
				continue
			}
			fmt.Printf("Box state AFTER:\n")
			fmt.Printf("  Position: %v\n", state.Position)
			fmt.Printf("  Velocity: %v\n", state.Velocity)
			fmt.Printf("  Angle: %.4f  Angular Velocity: %.4f\n", state.Angle, state.AngularVelocity)
		}
		fmt.Println()
	}

	fmt.Println("Done!")
	return nil
}

func main() {
	resolver := flag.String("resolver", constraint.ResolverFriction, "basic, rotation or friction")
	steps := flag.Int("steps", 120, "number of steps")
	substeps := flag.Int("substeps", 20, "substeps per step")
	flag.Parse()

	if err := RunScene(*resolver, *steps, *substeps); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
