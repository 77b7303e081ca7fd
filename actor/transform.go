package actor

import "github.com/go-gl/mathgl/mgl32"

// CacheState tracks whether a derived value still matches the body state
type CacheState uint8

const (
	CacheDirty CacheState = iota
	CacheClean
)

// Transform represents a position and an orientation in 2D space
type Transform struct {
	Position mgl32.Vec2
	Angle    float32 // radians, counter-clockwise
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec2{0, 0},
		Angle:    0,
	}
}

// Matrix builds translate * rotateZ * scale, the order used to place a unit mesh in the world.
func (t Transform) Matrix(scale mgl32.Vec2) mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), 0)
	m = m.Mul4(mgl32.HomogRotate3DZ(t.Angle))
	return m.Mul4(mgl32.Scale3D(scale.X(), scale.Y(), 1))
}
