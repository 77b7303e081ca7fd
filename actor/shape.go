package actor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeKind represents the type of collision shape
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRectangle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	default:
		return "unknown"
	}
}

// UnitSquare holds the local corners of a rectangle before scaling, wound counter-clockwise.
var UnitSquare = [4]mgl32.Vec2{
	{-0.5, -0.5},
	{0.5, -0.5},
	{0.5, 0.5},
	{-0.5, 0.5},
}

// Shape is the closed set of collision shapes: *Circle and *Rectangle.
// The unexported method keeps other packages from adding variants, so every
// type switch over a Shape only has to handle those two.
type Shape interface {
	Kind() ShapeKind
	// Area is used for the size bounds and, times density, for the mass
	Area() float32
	ComputeInertia(mass float32) float32
	// Scale is the (x, y) scale applied to the unit mesh by the transform matrix
	Scale() mgl32.Vec2
	LocalVertices() []mgl32.Vec2

	sealed()
}

// Circle represents a circular collision shape
type Circle struct {
	Radius float32
}

func (c *Circle) Kind() ShapeKind {
	return ShapeCircle
}

func (c *Circle) Area() float32 {
	return math32.Pi * c.Radius * c.Radius
}

func (c *Circle) ComputeInertia(mass float32) float32 {
	// Solid disc: I = ½ m r²
	return 0.5 * mass * c.Radius * c.Radius
}

func (c *Circle) Scale() mgl32.Vec2 {
	return mgl32.Vec2{c.Radius, c.Radius}
}

// LocalVertices is nil: circles are handled analytically by center and radius.
func (c *Circle) LocalVertices() []mgl32.Vec2 {
	return nil
}

func (c *Circle) sealed() {}

// Rectangle is a box, axis-aligned in local space
type Rectangle struct {
	Width  float32
	Height float32
}

func (r *Rectangle) Kind() ShapeKind {
	return ShapeRectangle
}

func (r *Rectangle) Area() float32 {
	return r.Width * r.Height
}

func (r *Rectangle) ComputeInertia(mass float32) float32 {
	// I = (m/12) * (w² + h²)
	return (1.0 / 12.0) * mass * (r.Width*r.Width + r.Height*r.Height)
}

func (r *Rectangle) Scale() mgl32.Vec2 {
	return mgl32.Vec2{r.Width, r.Height}
}

func (r *Rectangle) LocalVertices() []mgl32.Vec2 {
	return UnitSquare[:]
}

func (r *Rectangle) sealed() {}
