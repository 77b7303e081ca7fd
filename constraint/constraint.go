package constraint

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

var ErrUnknownResolver = errors.New("unknown resolver")

// Manifold is the snapshot of one collision, built after positional correction.
// It is created per colliding pair and per sub-step, then discarded.
type Manifold struct {
	BodyA *actor.Body
	BodyB *actor.Body

	Normal mgl32.Vec2 // unit, from A toward B
	Depth  float32

	Contact1     mgl32.Vec2
	Contact2     mgl32.Vec2
	ContactCount int // 0, 1 or 2
}

// Contacts returns the first ContactCount contact points.
func (m Manifold) Contacts() []mgl32.Vec2 {
	points := [2]mgl32.Vec2{m.Contact1, m.Contact2}
	count := max(0, min(m.ContactCount, len(points)))
	return points[:count]
}

// Resolver applies collision impulses to the bodies of a manifold
type Resolver func(m Manifold)

const (
	ResolverBasic    = "basic"
	ResolverRotation = "rotation"
	ResolverFriction = "friction"
)

// ResolverByName maps "basic", "rotation" and "friction" to their resolver.
func ResolverByName(name string) (Resolver, error) {
	switch name {
	case ResolverBasic:
		return ResolveBasic, nil
	case ResolverRotation:
		return ResolveWithRotation, nil
	case ResolverFriction:
		return ResolveWithRotationAndFriction, nil
	default:
		return nil, errors.Wrapf(ErrUnknownResolver, "%q", name)
	}
}

func ComputeRestitution(matA, matB actor.Material) float32 {
	// Minimum: the least bouncy material wins
	return min(matA.Restitution, matB.Restitution)
}

func ComputeStaticFriction(matA, matB actor.Material) float32 {
	return (matA.StaticFriction + matB.StaticFriction) * 0.5
}

func ComputeDynamicFriction(matA, matB actor.Material) float32 {
	return (matA.DynamicFriction + matB.DynamicFriction) * 0.5
}

// perp rotates v by +90°: (-y, x)
func perp(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{-v.Y(), v.X()}
}

// cross is the z component of the 3D cross product (a, 0) x (b, 0)
func cross(a, b mgl32.Vec2) float32 {
	return a.X()*b.Y() - a.Y()*b.X()
}
