package constraint

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FrictionMinTangentSpeed is the tangential speed below which a contact gets no friction.
	// Slower sliding has no well-defined direction.
	FrictionMinTangentSpeed = 0.01

	// frictionMinDenominator floors the tangential effective mass denominator
	frictionMinDenominator = 1e-6
)

// contactState holds the lever arms and impulse computed for one contact point
type contactState struct {
	ra, rb  mgl32.Vec2
	impulse mgl32.Vec2
	j       float32
}

// ResolveBasic applies a normal impulse to the linear velocities only.
// Contact points and rotation are ignored.
func ResolveBasic(m Manifold) {
	bodyA := m.BodyA
	bodyB := m.BodyB

	relativeVelocity := bodyB.Velocity.Sub(bodyA.Velocity)
	normalVelocity := relativeVelocity.Dot(m.Normal)
	// Already separating
	if normalVelocity >= 0 {
		return
	}

	invMassSum := bodyA.InvMass() + bodyB.InvMass()
	if invMassSum == 0 {
		return
	}

	e := ComputeRestitution(bodyA.Material, bodyB.Material)
	j := -(1 + e) * normalVelocity / invMassSum

	impulse := m.Normal.Mul(j)
	bodyA.Velocity = bodyA.Velocity.Sub(impulse.Mul(bodyA.InvMass()))
	bodyB.Velocity = bodyB.Velocity.Add(impulse.Mul(bodyB.InvMass()))
}

// ResolveWithRotation applies a normal impulse at each contact point, to both the
// linear and the angular velocities.
//
// Impulses are all computed from the velocities before resolution, then applied.
// With two contact points each one receives half its impulse.
func ResolveWithRotation(m Manifold) {
	states := normalImpulses(m)
	applyImpulses(m.BodyA, m.BodyB, states)
}

// ResolveWithRotationAndFriction extends ResolveWithRotation with Coulomb friction.
//
// Algorithm:
//  1. Compute and apply the normal impulse j of each contact point
//  2. Recompute the relative velocity at each point, keep its tangential part
//  3. Compute the friction impulse jt cancelling that tangential velocity
//  4. Clamp: |jt| <= j*μs keeps jt (static), otherwise use j*μd (dynamic)
//  5. Apply the friction impulses
//
// μs and μd are the mean of both bodies' coefficients.
func ResolveWithRotationAndFriction(m Manifold) {
	bodyA := m.BodyA
	bodyB := m.BodyB

	states := normalImpulses(m)
	applyImpulses(bodyA, bodyB, states)

	staticFriction := ComputeStaticFriction(bodyA.Material, bodyB.Material)
	dynamicFriction := ComputeDynamicFriction(bodyA.Material, bodyB.Material)

	frictions := make([]contactState, len(states))
	for i, s := range states {
		frictions[i] = contactState{ra: s.ra, rb: s.rb}

		relativeVelocity := relativeVelocityAt(bodyA, bodyB, s.ra, s.rb)
		tangent := relativeVelocity.Sub(m.Normal.Mul(relativeVelocity.Dot(m.Normal)))
		if tangent.Len() < FrictionMinTangentSpeed {
			continue
		}
		tangent = tangent.Normalize()

		raPerpDotT := perp(s.ra).Dot(tangent)
		rbPerpDotT := perp(s.rb).Dot(tangent)
		denom := bodyA.InvMass() + bodyB.InvMass() +
			raPerpDotT*raPerpDotT*bodyA.InvInertia() +
			rbPerpDotT*rbPerpDotT*bodyB.InvInertia()
		denom = max(denom, frictionMinDenominator)

		jt := -relativeVelocity.Dot(tangent) / denom
		if len(states) == 2 {
			jt /= 2
		}

		if math32.Abs(jt) <= s.j*staticFriction {
			frictions[i].impulse = tangent.Mul(jt)
		} else {
			frictions[i].impulse = tangent.Mul(-s.j * dynamicFriction)
		}
	}

	applyImpulses(bodyA, bodyB, frictions)
}

// normalImpulses computes the normal impulse of each contact point without applying it.
// A point whose relative velocity along the normal is >= 0 gets a zero impulse.
func normalImpulses(m Manifold) []contactState {
	bodyA := m.BodyA
	bodyB := m.BodyB
	contacts := m.Contacts()

	e := ComputeRestitution(bodyA.Material, bodyB.Material)

	states := make([]contactState, len(contacts))
	for i, contact := range contacts {
		ra := contact.Sub(bodyA.Position())
		rb := contact.Sub(bodyB.Position())
		states[i] = contactState{ra: ra, rb: rb}

		normalVelocity := relativeVelocityAt(bodyA, bodyB, ra, rb).Dot(m.Normal)
		if normalVelocity >= 0 {
			continue
		}

		raPerpDotN := perp(ra).Dot(m.Normal)
		rbPerpDotN := perp(rb).Dot(m.Normal)
		denom := bodyA.InvMass() + bodyB.InvMass() +
			raPerpDotN*raPerpDotN*bodyA.InvInertia() +
			rbPerpDotN*rbPerpDotN*bodyB.InvInertia()
		if denom == 0 {
			continue
		}

		j := -(1 + e) * normalVelocity / denom
		if len(contacts) == 2 {
			j /= 2
		}

		states[i].j = j
		states[i].impulse = m.Normal.Mul(j)
	}

	return states
}

// relativeVelocityAt is the velocity of B's material point minus A's, at the
// contact point located by lever arms ra and rb.
func relativeVelocityAt(bodyA, bodyB *actor.Body, ra, rb mgl32.Vec2) mgl32.Vec2 {
	velocityA := bodyA.Velocity.Add(perp(ra).Mul(bodyA.AngularVelocity))
	velocityB := bodyB.Velocity.Add(perp(rb).Mul(bodyB.AngularVelocity))
	return velocityB.Sub(velocityA)
}

// applyImpulses pushes A by -impulse and B by +impulse at each contact point.
// Static bodies have zero inverse mass and inertia, so they never change.
func applyImpulses(bodyA, bodyB *actor.Body, states []contactState) {
	for _, s := range states {
		bodyA.Velocity = bodyA.Velocity.Sub(s.impulse.Mul(bodyA.InvMass()))
		bodyB.Velocity = bodyB.Velocity.Add(s.impulse.Mul(bodyB.InvMass()))

		bodyA.AngularVelocity -= cross(s.ra, s.impulse) * bodyA.InvInertia()
		bodyB.AngularVelocity += cross(s.rb, s.impulse) * bodyB.InvInertia()
	}
}
