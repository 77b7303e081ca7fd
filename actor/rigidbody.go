package actor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by gravity and collisions
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies never move: zero inverse mass and inverse inertia
	BodyTypeStatic
)

const (
	DefaultStaticFriction  = 0.6
	DefaultDynamicFriction = 0.4
)

type Material struct {
	Density     float32
	mass        float32
	Restitution float32 // 0= no rebound, 1= perfect restitution

	StaticFriction  float32
	DynamicFriction float32
}

func (material Material) GetMass() float32 {
	return material.mass
}

// Body represents a rigid body in the physics simulation
type Body struct {
	transform Transform

	Velocity        mgl32.Vec2 // Linear velocity
	AngularVelocity float32    // rad/s

	// stored by AddForce, cleared by Integrate, never converted into acceleration
	force mgl32.Vec2

	inertia    float32
	invMass    float32
	invInertia float32

	Material Material
	BodyType BodyType
	Shape    Shape
	Color    mgl32.Vec3

	matrix      mgl32.Mat4
	matrixState CacheState
	aabb        AABB
	aabbState   CacheState
}

// NewBody creates a body at the given transform. Mass comes from density * area;
// static bodies keep that mass for reference but get zero inverse mass and inertia.
// It performs no bounds check, use a Factory for validated creation.
func NewBody(transform Transform, shape Shape, bodyType BodyType, density, restitution float32) *Body {
	mass := shape.Area() * density

	rb := &Body{
		transform: transform,
		Shape:     shape,
		BodyType:  bodyType,
		Material: Material{
			Density:         density,
			mass:            mass,
			Restitution:     mgl32.Clamp(restitution, 0, 1),
			StaticFriction:  DefaultStaticFriction,
			DynamicFriction: DefaultDynamicFriction,
		},
		Color: mgl32.Vec3{1, 1, 1},
	}
	rb.inertia = shape.ComputeInertia(mass)

	if bodyType != BodyTypeStatic {
		rb.invMass = 1.0 / mass
		rb.invInertia = 1.0 / rb.inertia
	}

	return rb
}

func (rb *Body) Kind() ShapeKind {
	return rb.Shape.Kind()
}

func (rb *Body) IsStatic() bool {
	return rb.BodyType == BodyTypeStatic
}

func (rb *Body) Mass() float32       { return rb.Material.mass }
func (rb *Body) InvMass() float32    { return rb.invMass }
func (rb *Body) Inertia() float32    { return rb.inertia }
func (rb *Body) InvInertia() float32 { return rb.invInertia }

func (rb *Body) Position() mgl32.Vec2 {
	return rb.transform.Position
}

func (rb *Body) Angle() float32 {
	return rb.transform.Angle
}

// Radius is the circle radius, 0 for any other shape
func (rb *Body) Radius() float32 {
	if c, ok := rb.Shape.(*Circle); ok {
		return c.Radius
	}
	return 0
}

func (rb *Body) invalidate() {
	rb.matrixState = CacheDirty
	rb.aabbState = CacheDirty
}

func (rb *Body) Move(delta mgl32.Vec2) {
	rb.transform.Position = rb.transform.Position.Add(delta)
	rb.invalidate()
}

func (rb *Body) MoveTo(position mgl32.Vec2) {
	rb.transform.Position = position
	rb.invalidate()
}

func (rb *Body) Rotate(delta float32) {
	rb.transform.Angle += delta
	rb.invalidate()
}

func (rb *Body) RotateTo(angle float32) {
	rb.transform.Angle = angle
	rb.invalidate()
}

// Integrate advances the body by one sub-step of dt/substeps.
// The same substeps value must drive the caller's loop, so that a full step covers dt.
func (rb *Body) Integrate(dt float32, gravity mgl32.Vec2, substeps int) {
	if rb.BodyType == BodyTypeStatic {
		return
	}

	h := dt / float32(substeps)

	rb.Velocity = rb.Velocity.Add(gravity.Mul(h))
	rb.transform.Position = rb.transform.Position.Add(rb.Velocity.Mul(h))
	rb.transform.Angle += rb.AngularVelocity * h

	rb.ClearForces()
	rb.invalidate()
}

// AddForce replaces the stored force. Integrate does not apply it yet.
func (rb *Body) AddForce(force mgl32.Vec2) {
	rb.force = force
}

func (rb *Body) Force() mgl32.Vec2 {
	return rb.force
}

func (rb *Body) ClearForces() {
	rb.force = mgl32.Vec2{0, 0}
}

// TransformMatrix returns translate * rotate * scale, recomputed only after a move or rotation.
func (rb *Body) TransformMatrix() mgl32.Mat4 {
	if rb.matrixState == CacheDirty {
		rb.matrix = rb.transform.Matrix(rb.Shape.Scale())
		rb.matrixState = CacheClean
	}
	return rb.matrix
}

// TransformedVertices returns the world-space polygon of a rectangle.
// Circles have no polygon and return nil.
func (rb *Body) TransformedVertices() []mgl32.Vec2 {
	local := rb.Shape.LocalVertices()
	if len(local) == 0 {
		return nil
	}

	m := rb.TransformMatrix()
	vertices := make([]mgl32.Vec2, len(local))
	for i, v := range local {
		w := m.Mul4x1(mgl32.Vec4{v.X(), v.Y(), 0, 1})
		vertices[i] = mgl32.Vec2{w.X(), w.Y()}
	}
	return vertices
}

func (rb *Body) GetAABB() AABB {
	if rb.aabbState == CacheClean {
		return rb.aabb
	}

	switch s := rb.Shape.(type) {
	case *Circle:
		r := mgl32.Vec2{s.Radius, s.Radius}
		rb.aabb = AABB{
			Min: rb.transform.Position.Sub(r),
			Max: rb.transform.Position.Add(r),
		}
	case *Rectangle:
		vertices := rb.TransformedVertices()
		min := vertices[0]
		max := vertices[0]
		for _, v := range vertices[1:] {
			min[0] = math32.Min(min[0], v[0])
			min[1] = math32.Min(min[1], v[1])
			max[0] = math32.Max(max[0], v[0])
			max[1] = math32.Max(max[1], v[1])
		}
		rb.aabb = AABB{Min: min, Max: max}
	}
	rb.aabbState = CacheClean

	return rb.aabb
}

// CacheStates reports the transform matrix and AABB cache states
func (rb *Body) CacheStates() (matrix, aabb CacheState) {
	return rb.matrixState, rb.aabbState
}
