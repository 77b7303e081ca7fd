package feather2d

import (
	"log"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const DEFAULT_WORKERS = 1

// DefaultGravity is the standard gravity in cm/s², pointing down
var DefaultGravity = mgl32.Vec2{0, -980.665}

var (
	ErrStaleHandle      = errors.New("stale body handle")
	ErrIndexOutOfRange  = errors.New("body index out of range")
	ErrBodyAlreadyAdded = errors.New("body already in world")
	ErrNilBody          = errors.New("nil body")
)

// Handle references a body of the world. It stays valid until the body is removed;
// a slot reused by a later body gets a new generation, so old handles are rejected.
type Handle struct {
	Index      uint32
	Generation uint32
}

type slot struct {
	generation uint32
	dense      int // position in World.bodies, -1 when free
}

type World struct {
	// Gravity acceleration (cm/s²)
	Gravity mgl32.Vec2
	// SpatialGrid is used by the broad phase when set, brute force otherwise
	SpatialGrid *SpatialGrid
	// Workers integrating bodies in parallel
	Workers int
	// Resolver applies collision impulses, ResolveWithRotationAndFriction when nil
	Resolver constraint.Resolver
	// Logger receives removals and culls when set
	Logger *log.Logger

	Events Events

	// bodies in insertion order, handles[i] refers to bodies[i]
	bodies  []*actor.Body
	handles []Handle
	slots   []slot
	free    []uint32

	pairs []ContactPair
}

func NewWorld() *World {
	return &World{
		Gravity: DefaultGravity,
		Workers: DEFAULT_WORKERS,
		Events:  NewEvents(),
	}
}

// AddBody adds a body to the world and returns its handle
func (w *World) AddBody(body *actor.Body) (Handle, error) {
	if body == nil {
		return Handle{}, ErrNilBody
	}
	for _, b := range w.bodies {
		if b == body {
			return Handle{}, ErrBodyAlreadyAdded
		}
	}

	var h Handle
	if n := len(w.free); n > 0 {
		h.Index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		h.Index = uint32(len(w.slots))
		w.slots = append(w.slots, slot{})
	}
	h.Generation = w.slots[h.Index].generation

	w.slots[h.Index].dense = len(w.bodies)
	w.bodies = append(w.bodies, body)
	w.handles = append(w.handles, h)

	return h, nil
}

// RemoveBody removes a body from the world. The order of the remaining bodies is kept.
func (w *World) RemoveBody(h Handle) error {
	k, err := w.dense(h)
	if err != nil {
		return err
	}

	w.bodies = append(w.bodies[:k], w.bodies[k+1:]...)
	w.handles = append(w.handles[:k], w.handles[k+1:]...)
	for i := k; i < len(w.handles); i++ {
		w.slots[w.handles[i].Index].dense = i
	}

	w.slots[h.Index].dense = -1
	w.slots[h.Index].generation++
	w.free = append(w.free, h.Index)

	w.Events.forget(h)
	w.logf("feather2d: removed body %d (generation %d)", h.Index, h.Generation)

	return nil
}

// Body returns the body referenced by h
func (w *World) Body(h Handle) (*actor.Body, error) {
	k, err := w.dense(h)
	if err != nil {
		return nil, err
	}
	return w.bodies[k], nil
}

// BodyAt returns the i-th body in insertion order, with its handle
func (w *World) BodyAt(i int) (*actor.Body, Handle, error) {
	if i < 0 || i >= len(w.bodies) {
		return nil, Handle{}, errors.Wrapf(ErrIndexOutOfRange, "index %d, %d bodies", i, len(w.bodies))
	}
	return w.bodies[i], w.handles[i], nil
}

func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Each calls fn for every body in insertion order. fn must not add or remove bodies.
func (w *World) Each(fn func(h Handle, body *actor.Body)) {
	for i, body := range w.bodies {
		fn(w.handles[i], body)
	}
}

func (w *World) dense(h Handle) (int, error) {
	if int(h.Index) >= len(w.slots) {
		return -1, errors.Wrapf(ErrStaleHandle, "handle %d/%d", h.Index, h.Generation)
	}
	s := w.slots[h.Index]
	if s.dense < 0 || s.generation != h.Generation {
		return -1, errors.Wrapf(ErrStaleHandle, "handle %d/%d", h.Index, h.Generation)
	}
	return s.dense, nil
}

// Step advances the simulation by dt, split into substeps iterations.
// Each iteration integrates every body by dt/substeps, then detects and resolves
// collisions. Collision events are sent once, at the end of the step.
func (w *World) Step(dt float32, substeps int) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	substeps = max(1, substeps)

	resolve := w.Resolver
	if resolve == nil {
		resolve = constraint.ResolveWithRotationAndFriction
	}

	for range substeps {
		// Phase 1: Integration
		w.integrate(dt, substeps)

		// Phase 2.0: Collision pair finding - Broad phase
		w.pairs = BroadPhase(w.SpatialGrid, w.bodies, w.pairs[:0], w.Workers)

		// Phase 2.1: Narrow phase, positional correction and impulses
		for _, pair := range NarrowPhase(w.bodies, w.pairs, resolve) {
			w.Events.recordCollision(w.handles[pair.A], w.handles[pair.B])
		}
	}

	w.Events.flush()
}

func (w *World) integrate(dt float32, substeps int) {
	task(w.Workers, w.bodies, func(body *actor.Body) {
		body.Integrate(dt, w.Gravity, substeps)
	})
}

// Cull removes every non-static body whose AABB lies outside bounds.
// Bodies are collected first and removed after the scan.
func (w *World) Cull(bounds actor.AABB) []Handle {
	var culled []Handle
	for i, body := range w.bodies {
		if body.IsStatic() {
			continue
		}
		if !bounds.Overlaps(body.GetAABB()) {
			culled = append(culled, w.handles[i])
		}
	}

	for _, h := range culled {
		// Handles were collected from the live list and stay valid until removed
		_ = w.RemoveBody(h)
	}
	if len(culled) > 0 {
		w.logf("feather2d: culled %d bodies, %d left", len(culled), len(w.bodies))
	}

	return culled
}

func (w *World) logf(format string, args ...any) {
	if w.Logger != nil {
		w.Logger.Printf(format, args...)
	}
}
