package feather2d

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// Renderer draws the unit mesh of a shape kind, placed by transform
type Renderer interface {
	Draw(kind actor.ShapeKind, transform mgl32.Mat4, color mgl32.Vec3)
}

// Draw sends every body to r, in insertion order, with transform = projection * body matrix.
// It must not run during Step.
func (w *World) Draw(r Renderer, projection mgl32.Mat4) {
	for _, body := range w.bodies {
		r.Draw(body.Kind(), projection.Mul4(body.TransformMatrix()), body.Color)
	}
}

// BodyState is a copy of the state a renderer or a debugger needs from a body
type BodyState struct {
	Handle          Handle
	Kind            actor.ShapeKind
	BodyType        actor.BodyType
	Position        mgl32.Vec2
	Angle           float32
	Radius          float32
	Velocity        mgl32.Vec2
	AngularVelocity float32
	Color           mgl32.Vec3
	TransformMatrix mgl32.Mat4
}

// Snapshot copies the state of every body, in insertion order.
// The copy can be read while the world keeps stepping.
func (w *World) Snapshot() ([]BodyState, error) {
	states := make([]BodyState, len(w.bodies))
	for i, body := range w.bodies {
		if err := copier.Copy(&states[i], body); err != nil {
			return nil, errors.Wrapf(err, "snapshot body %d", w.handles[i].Index)
		}
		states[i].Handle = w.handles[i]
	}
	return states, nil
}
