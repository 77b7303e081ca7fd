// Package config loads the simulation settings of the feather2d sandboxes from a YAML file.
package config

import (
	"os"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Path is the default config file, relative to the process working directory.
const Path = "feather2d.yaml"

const (
	BroadPhaseBrute = "brute"
	BroadPhaseGrid  = "grid"
)

var ErrInvalid = errors.New("invalid config")

// Vec2 is a YAML friendly [x, y] pair
type Vec2 [2]float32

func (v Vec2) Mgl() mgl32.Vec2 {
	return mgl32.Vec2{v[0], v[1]}
}

type Grid struct {
	CellSize float32 `yaml:"cell_size"`
	Cells    int     `yaml:"cells"`
}

type Limits struct {
	MinArea    float32 `yaml:"min_area"`
	MaxArea    float32 `yaml:"max_area"`
	MinDensity float32 `yaml:"min_density"`
	MaxDensity float32 `yaml:"max_density"`
}

func (l Limits) Actor() actor.Limits {
	return actor.Limits{
		MinArea:    l.MinArea,
		MaxArea:    l.MaxArea,
		MinDensity: l.MinDensity,
		MaxDensity: l.MaxDensity,
	}
}

type Friction struct {
	Static  float32 `yaml:"static"`
	Dynamic float32 `yaml:"dynamic"`
}

// Bounds is the area outside of which dynamic bodies are culled
type Bounds struct {
	Min Vec2 `yaml:"min"`
	Max Vec2 `yaml:"max"`
}

func (b Bounds) AABB() actor.AABB {
	return actor.AABB{Min: b.Min.Mgl(), Max: b.Max.Mgl()}
}

type Config struct {
	Gravity    Vec2     `yaml:"gravity"`
	FixedStep  float32  `yaml:"fixed_step"`
	Substeps   int      `yaml:"substeps"`
	Resolver   string   `yaml:"resolver"`
	BroadPhase string   `yaml:"broad_phase"`
	Grid       Grid     `yaml:"grid"`
	Workers    int      `yaml:"workers"`
	Limits     Limits   `yaml:"limits"`
	Friction   Friction `yaml:"friction"`
	ColorSeed  int64    `yaml:"color_seed"`
	Cull       Bounds   `yaml:"cull"`
}

// Default returns the settings of the reference simulation: 60 Hz with 20 substeps,
// earth gravity in cm/s² and the friction resolver.
func Default() Config {
	limits := actor.DefaultLimits()

	return Config{
		Gravity:    Vec2{0, -980.665},
		FixedStep:  1.0 / 60.0,
		Substeps:   20,
		Resolver:   constraint.ResolverFriction,
		BroadPhase: BroadPhaseBrute,
		Grid:       Grid{CellSize: 64, Cells: 1024},
		Workers:    1,
		Limits: Limits{
			MinArea:    limits.MinArea,
			MaxArea:    limits.MaxArea,
			MinDensity: limits.MinDensity,
			MaxDensity: limits.MaxDensity,
		},
		Friction:  Friction{Static: actor.DefaultStaticFriction, Dynamic: actor.DefaultDynamicFriction},
		ColorSeed: 1,
		Cull:      Bounds{Min: Vec2{-2000, -2000}, Max: Vec2{2000, 2000}},
	}
}

// Load reads path over the defaults, so a file only needs the keys it changes.
// A missing file returns Default() and no error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), errors.Wrapf(err, "load %s", path)
	}

	return cfg, nil
}

// Save writes cfg to path
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "write %s", path)
}

// Validate reports the first invalid setting, wrapping ErrInvalid.
func (c Config) Validate() error {
	switch {
	case c.FixedStep <= 0:
		return errors.Wrapf(ErrInvalid, "fixed_step %g must be positive", c.FixedStep)
	case c.Substeps < 1:
		return errors.Wrapf(ErrInvalid, "substeps %d must be at least 1", c.Substeps)
	case c.Workers < 1:
		return errors.Wrapf(ErrInvalid, "workers %d must be at least 1", c.Workers)
	case c.Limits.MinArea <= 0 || c.Limits.MinArea > c.Limits.MaxArea:
		return errors.Wrapf(ErrInvalid, "area limits [%g, %g]", c.Limits.MinArea, c.Limits.MaxArea)
	case c.Limits.MinDensity <= 0 || c.Limits.MinDensity > c.Limits.MaxDensity:
		return errors.Wrapf(ErrInvalid, "density limits [%g, %g]", c.Limits.MinDensity, c.Limits.MaxDensity)
	case c.Friction.Static < 0 || c.Friction.Dynamic < 0:
		return errors.Wrapf(ErrInvalid, "friction %g/%g must not be negative", c.Friction.Static, c.Friction.Dynamic)
	case c.Cull.Min[0] >= c.Cull.Max[0] || c.Cull.Min[1] >= c.Cull.Max[1]:
		return errors.Wrapf(ErrInvalid, "cull bounds %v %v", c.Cull.Min, c.Cull.Max)
	}

	if _, err := constraint.ResolverByName(c.Resolver); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}

	switch c.BroadPhase {
	case BroadPhaseBrute:
	case BroadPhaseGrid:
		if c.Grid.CellSize <= 0 || c.Grid.Cells < 1 {
			return errors.Wrapf(ErrInvalid, "grid cell_size %g, cells %d", c.Grid.CellSize, c.Grid.Cells)
		}
	default:
		return errors.Wrapf(ErrInvalid, "unknown broad_phase %q", c.BroadPhase)
	}

	return nil
}
