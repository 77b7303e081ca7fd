// Package manifold generates the contact points of two overlapping bodies.
//
// Contact points are where the resolver applies impulses. A pair yields one point,
// except polygon/polygon pairs resting edge to edge, which yield two.
//
// Special cases:
//   - Circle-Circle: the point of A's surface facing B's center
//   - Circle-Polygon: the point of the polygon boundary nearest the circle center
//   - Polygon-Polygon: the vertices closest to an edge of the other polygon (1-2 points)
//
// Points are computed after positional correction, on bodies that touch but no
// longer overlap.
package manifold

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Tolerance used by the polygon/polygon search, both for distances judged equal
// and for points judged distinct.
const ContactTolerance = 0.01

// FindContactPoints returns up to two contact points and their count (0, 1 or 2).
// Unused points are zero.
func FindContactPoints(a, b *actor.Body) (mgl32.Vec2, mgl32.Vec2, int) {
	switch sa := a.Shape.(type) {
	case *actor.Circle:
		switch b.Shape.(type) {
		case *actor.Circle:
			return CircleContactPoint(a.Position(), sa.Radius, b.Position()), mgl32.Vec2{}, 1
		case *actor.Rectangle:
			return CirclePolygonContactPoint(a.Position(), b.TransformedVertices()), mgl32.Vec2{}, 1
		}
	case *actor.Rectangle:
		switch b.Shape.(type) {
		case *actor.Circle:
			return CirclePolygonContactPoint(b.Position(), a.TransformedVertices()), mgl32.Vec2{}, 1
		case *actor.Rectangle:
			return PolygonContactPoints(a.TransformedVertices(), b.TransformedVertices())
		}
	}

	return mgl32.Vec2{}, mgl32.Vec2{}, 0
}

// CircleContactPoint is the point of circle A's surface in the direction of centerB.
func CircleContactPoint(centerA mgl32.Vec2, radiusA float32, centerB mgl32.Vec2) mgl32.Vec2 {
	direction := centerB.Sub(centerA)
	if direction.Len() == 0 {
		return centerA
	}
	return centerA.Add(direction.Normalize().Mul(radiusA))
}

// CirclePolygonContactPoint is the point of the polygon boundary nearest to circleCenter.
func CirclePolygonContactPoint(circleCenter mgl32.Vec2, vertices []mgl32.Vec2) mgl32.Vec2 {
	var contact mgl32.Vec2
	minDistSq := float32(math32.MaxFloat32)

	for i := range vertices {
		distSq, cp := PointSegmentDistance(circleCenter, vertices[i], vertices[(i+1)%len(vertices)])
		if distSq < minDistSq {
			minDistSq = distSq
			contact = cp
		}
	}

	return contact
}

// PolygonContactPoints tests every vertex of each polygon against every edge of the other.
//
// The closest vertex/edge pair gives the first contact. A later pair within
// ContactTolerance of the current minimum distance, whose point differs from the
// first contact by more than ContactTolerance on X or Y, becomes the second contact.
// The tie test runs before the new-minimum test, so a near tie never moves the minimum.
func PolygonContactPoints(verticesA, verticesB []mgl32.Vec2) (mgl32.Vec2, mgl32.Vec2, int) {
	var contact1, contact2 mgl32.Vec2
	count := 0
	minDistSq := float32(math32.MaxFloat32)

	scan := func(points, polygon []mgl32.Vec2) {
		for _, p := range points {
			for j := range polygon {
				distSq, cp := PointSegmentDistance(p, polygon[j], polygon[(j+1)%len(polygon)])

				if math32.Abs(distSq-minDistSq) < ContactTolerance {
					if math32.Abs(cp.X()-contact1.X()) > ContactTolerance || math32.Abs(cp.Y()-contact1.Y()) > ContactTolerance {
						contact2 = cp
						count = 2
					}
				} else if distSq < minDistSq {
					minDistSq = distSq
					contact1 = cp
					count = 1
				}
			}
		}
	}

	scan(verticesA, verticesB)
	scan(verticesB, verticesA)

	return contact1, contact2, count
}

// PointSegmentDistance projects p onto the segment [a, b], clamped to its ends.
//
// Returns:
//   - the squared distance from p to the projected point
//   - the projected point
func PointSegmentDistance(p, a, b mgl32.Vec2) (float32, mgl32.Vec2) {
	ab := b.Sub(a)
	ap := p.Sub(a)

	var contact mgl32.Vec2
	abLenSq := ab.Dot(ab)
	if abLenSq == 0 {
		contact = a
	} else {
		switch d := ap.Dot(ab) / abLenSq; {
		case d <= 0:
			contact = a
		case d >= 1:
			contact = b
		default:
			contact = a.Add(ab.Mul(d))
		}
	}

	delta := p.Sub(contact)
	return delta.Dot(delta), contact
}
