package config

import (
	"log"
	"math/rand"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
)

// NewWorld builds an empty world from the settings. logger may be nil.
func (c Config) NewWorld(logger *log.Logger) (*feather2d.World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	resolve, err := constraint.ResolverByName(c.Resolver)
	if err != nil {
		return nil, err
	}

	world := feather2d.NewWorld()
	world.Gravity = c.Gravity.Mgl()
	world.Resolver = resolve
	world.Workers = c.Workers
	world.Logger = logger
	if c.BroadPhase == BroadPhaseGrid {
		world.SpatialGrid = feather2d.NewSpatialGrid(c.Grid.CellSize, c.Grid.Cells)
	}

	return world, nil
}

// NewFactory builds a body factory using the configured limits and friction,
// with colors drawn from a source seeded by ColorSeed.
func (c Config) NewFactory() *actor.Factory {
	factory := actor.NewFactory(c.Limits.Actor(), rand.New(rand.NewSource(c.ColorSeed)))
	factory.StaticFriction = c.Friction.Static
	factory.DynamicFriction = c.Friction.Dynamic
	return factory
}
