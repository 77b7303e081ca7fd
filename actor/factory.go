package actor

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

var (
	ErrSizeOutOfRange    = errors.New("body size out of range")
	ErrDensityOutOfRange = errors.New("body density out of range")
)

// Limits bounds the area and density accepted at body creation
type Limits struct {
	MinArea    float32
	MaxArea    float32
	MinDensity float32 // g/cm²
	MaxDensity float32
}

func DefaultLimits() Limits {
	return Limits{
		MinArea:    0.01,
		MaxArea:    640 * 64,
		MinDensity: 0.5,
		MaxDensity: 21.4,
	}
}

func (l Limits) check(shape Shape, density float32) error {
	name := shape.Kind().String()
	switch s := shape.(type) {
	case *Circle:
		// Written negated so that NaN is rejected too
		if !(s.Radius > 0) {
			return errors.Wrapf(ErrSizeOutOfRange, "%s radius %g must be positive", name, s.Radius)
		}
	case *Rectangle:
		if !(s.Width > 0) || !(s.Height > 0) {
			return errors.Wrapf(ErrSizeOutOfRange, "%s size %gx%g must be positive", name, s.Width, s.Height)
		}
	}

	area := shape.Area()
	if area < l.MinArea {
		return errors.Wrapf(ErrSizeOutOfRange, "%s area %g below minimum %g", name, area, l.MinArea)
	}
	if area > l.MaxArea {
		return errors.Wrapf(ErrSizeOutOfRange, "%s area %g above maximum %g", name, area, l.MaxArea)
	}
	if math32.IsNaN(density) || math32.IsInf(density, 0) {
		return errors.Wrapf(ErrDensityOutOfRange, "density %g is not finite", density)
	}
	if density < l.MinDensity {
		return errors.Wrapf(ErrDensityOutOfRange, "density %g below minimum %g", density, l.MinDensity)
	}
	if density > l.MaxDensity {
		return errors.Wrapf(ErrDensityOutOfRange, "density %g above maximum %g", density, l.MaxDensity)
	}
	return nil
}

// Factory creates validated bodies.
// Rand picks each body's display color; a nil Rand gives white bodies.
type Factory struct {
	Limits          Limits
	Rand            *rand.Rand
	StaticFriction  float32
	DynamicFriction float32
}

func NewFactory(limits Limits, rng *rand.Rand) *Factory {
	return &Factory{
		Limits:          limits,
		Rand:            rng,
		StaticFriction:  DefaultStaticFriction,
		DynamicFriction: DefaultDynamicFriction,
	}
}

// CreateCircle returns ErrSizeOutOfRange or ErrDensityOutOfRange (wrapped) when
// the radius is not positive, or π·radius² or density falls outside the factory limits.
func (f *Factory) CreateCircle(radius float32, position mgl32.Vec2, density float32, isStatic bool, restitution float32) (*Body, error) {
	return f.create(&Circle{Radius: radius}, position, density, isStatic, restitution)
}

// CreateRectangle returns ErrSizeOutOfRange or ErrDensityOutOfRange (wrapped) when
// a side is not positive, or width·height or density falls outside the factory limits.
func (f *Factory) CreateRectangle(width, height float32, position mgl32.Vec2, density float32, isStatic bool, restitution float32) (*Body, error) {
	return f.create(&Rectangle{Width: width, Height: height}, position, density, isStatic, restitution)
}

func (f *Factory) create(shape Shape, position mgl32.Vec2, density float32, isStatic bool, restitution float32) (*Body, error) {
	if err := f.Limits.check(shape, density); err != nil {
		return nil, err
	}

	bodyType := BodyTypeDynamic
	if isStatic {
		bodyType = BodyTypeStatic
	}

	rb := NewBody(Transform{Position: position}, shape, bodyType, density, restitution)
	rb.Material.StaticFriction = f.StaticFriction
	rb.Material.DynamicFriction = f.DynamicFriction
	rb.Color = f.nextColor()

	return rb, nil
}

func (f *Factory) nextColor() mgl32.Vec3 {
	if f.Rand == nil {
		return mgl32.Vec3{1, 1, 1}
	}

	c := colorful.Hsv(f.Rand.Float64()*360.0, 0.7+f.Rand.Float64()*0.3, 0.6+f.Rand.Float64()*0.3).Clamped()
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}
