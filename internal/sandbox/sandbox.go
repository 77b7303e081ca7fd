// Package sandbox is the interactive scene shared by the feather2d commands:
// a floor, two ramps, bodies spawned on demand and a fixed-step clock.
package sandbox

import (
	"log"
	"math/rand"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/config"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// MaxStepsPerFrame bounds the steps Advance runs at once, so a slow frame
// does not make the next one slower.
const MaxStepsPerFrame = 5

type Sandbox struct {
	Config  config.Config
	World   *feather2d.World
	Factory *actor.Factory
	Paused  bool

	rng         *rand.Rand
	accumulator float32
	steps       int
}

func New(cfg config.Config, logger *log.Logger) (*Sandbox, error) {
	world, err := cfg.NewWorld(logger)
	if err != nil {
		return nil, errors.Wrap(err, "sandbox world")
	}

	s := &Sandbox{
		Config:  cfg,
		World:   world,
		Factory: cfg.NewFactory(),
		rng:     rand.New(rand.NewSource(cfg.ColorSeed)),
	}
	if err := s.buildScene(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Sandbox) buildScene() error {
	floor, err := s.Factory.CreateRectangle(600, 20, mgl32.Vec2{0, -200}, 1, true, 0.5)
	if err != nil {
		return errors.Wrap(err, "floor")
	}
	leftRamp, err := s.Factory.CreateRectangle(200, 10, mgl32.Vec2{-150, 0}, 1, true, 0.5)
	if err != nil {
		return errors.Wrap(err, "left ramp")
	}
	leftRamp.RotateTo(-0.3)
	rightRamp, err := s.Factory.CreateRectangle(200, 10, mgl32.Vec2{150, 100}, 1, true, 0.5)
	if err != nil {
		return errors.Wrap(err, "right ramp")
	}
	rightRamp.RotateTo(0.3)

	for _, body := range []*actor.Body{floor, leftRamp, rightRamp} {
		if _, err := s.World.AddBody(body); err != nil {
			return err
		}
	}
	return nil
}

// Spawn adds a dynamic body of kind at position, with a random size and density.
func (s *Sandbox) Spawn(kind actor.ShapeKind, position mgl32.Vec2) (feather2d.Handle, error) {
	density := 1 + s.rng.Float32()*2
	restitution := s.rng.Float32() * 0.5

	var body *actor.Body
	var err error
	switch kind {
	case actor.ShapeCircle:
		body, err = s.Factory.CreateCircle(8+s.rng.Float32()*16, position, density, false, restitution)
	case actor.ShapeRectangle:
		body, err = s.Factory.CreateRectangle(15+s.rng.Float32()*30, 15+s.rng.Float32()*30, position, density, false, restitution)
	default:
		return feather2d.Handle{}, errors.Errorf("unknown shape kind %v", kind)
	}
	if err != nil {
		return feather2d.Handle{}, err
	}

	return s.World.AddBody(body)
}

// SetResolver switches the collision response model by name
func (s *Sandbox) SetResolver(name string) error {
	resolve, err := constraint.ResolverByName(name)
	if err != nil {
		return err
	}
	s.World.Resolver = resolve
	s.Config.Resolver = name
	return nil
}

// Advance adds elapsed seconds to the clock and runs as many fixed steps as it now
// holds, culling bodies that left the bounds after each one. It returns the steps run.
func (s *Sandbox) Advance(elapsed float32) int {
	if s.Paused {
		return 0
	}

	step := s.Config.FixedStep
	s.accumulator += elapsed

	steps := 0
	for s.accumulator >= step && steps < MaxStepsPerFrame {
		s.World.Step(step, s.Config.Substeps)
		s.World.Cull(s.Config.Cull.AABB())
		s.accumulator -= step
		steps++
	}
	if steps == MaxStepsPerFrame {
		// Drop the backlog
		s.accumulator = 0
	}

	s.steps += steps
	return steps
}

// Steps is the number of fixed steps run since New
func (s *Sandbox) Steps() int {
	return s.steps
}
