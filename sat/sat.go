// Package sat implements the Separating Axis Theorem (SAT) tests used by the narrow phase.
//
// Two convex shapes do not overlap if and only if there is an axis onto which their
// projections are disjoint. For polygons the candidate axes are the edge normals of
// both shapes; a circle adds one more axis, from its center to the nearest polygon
// vertex, which catches the circle-against-corner case edge normals alone miss.
//
// When no separating axis exists, the axis with the smallest overlap gives the
// Minimum Translation Vector (MTV): normal * depth. Every normal returned by this
// package points from the first body (A) toward the second (B).
//
// References:
//   - Gottschalk: "Separating Axis Theorem" (Technical report, 1996)
//   - Ericson: "Real-Time Collision Detection", chapter 5 (2004)
package sat

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Collide runs the exact intersection test matching the shape kinds of a and b.
//
// Returns:
//   - normal: unit vector pointing from a toward b
//   - depth: penetration depth along normal
//   - bool: true if the shapes overlap
func Collide(a, b *actor.Body) (mgl32.Vec2, float32, bool) {
	switch sa := a.Shape.(type) {
	case *actor.Circle:
		switch sb := b.Shape.(type) {
		case *actor.Circle:
			return IntersectCircles(a.Position(), sa.Radius, b.Position(), sb.Radius)
		case *actor.Rectangle:
			return IntersectCirclePolygon(a.Position(), sa.Radius, b.TransformedVertices(), b.Position())
		}
	case *actor.Rectangle:
		switch sb := b.Shape.(type) {
		case *actor.Circle:
			// The circle/polygon test orients its normal from the circle (here b) to the polygon (a)
			normal, depth, ok := IntersectCirclePolygon(b.Position(), sb.Radius, a.TransformedVertices(), a.Position())
			return normal.Mul(-1), depth, ok
		case *actor.Rectangle:
			return IntersectPolygons(a.TransformedVertices(), b.TransformedVertices(), a.Position(), b.Position())
		}
	}

	return mgl32.Vec2{}, 0, false
}

// IntersectCircles reports whether two circles overlap.
// Touching circles (distance == rA+rB) do not intersect.
// Concentric circles have no defined direction and use +Y as normal.
func IntersectCircles(centerA mgl32.Vec2, radiusA float32, centerB mgl32.Vec2, radiusB float32) (mgl32.Vec2, float32, bool) {
	delta := centerB.Sub(centerA)
	distance := delta.Len()
	radii := radiusA + radiusB

	if distance >= radii {
		return mgl32.Vec2{}, 0, false
	}

	normal := mgl32.Vec2{0, 1}
	if distance > 0 {
		normal = delta.Mul(1 / distance)
	}

	return normal, radii - distance, true
}

// IntersectPolygons runs SAT over the edge normals of both convex polygons.
// Any separating axis ends the test. On overlap the normal is the axis of least
// penetration, flipped when needed so that it points from centerA toward centerB.
func IntersectPolygons(verticesA, verticesB []mgl32.Vec2, centerA, centerB mgl32.Vec2) (mgl32.Vec2, float32, bool) {
	normal := mgl32.Vec2{}
	depth := float32(math32.MaxFloat32)

	for _, vertices := range [2][]mgl32.Vec2{verticesA, verticesB} {
		for i := range vertices {
			axis := edgeNormal(vertices[i], vertices[(i+1)%len(vertices)])

			minA, maxA := ProjectVertices(verticesA, axis)
			minB, maxB := ProjectVertices(verticesB, axis)
			if minA >= maxB || minB >= maxA {
				return mgl32.Vec2{}, 0, false
			}

			// Strict comparison: the first axis reaching the minimum wins
			if axisDepth := math32.Min(maxB-minA, maxA-minB); axisDepth < depth {
				depth = axisDepth
				normal = axis
			}
		}
	}

	if centerB.Sub(centerA).Dot(normal) < 0 {
		normal = normal.Mul(-1)
	}

	return normal, depth, true
}

// IntersectCirclePolygon runs SAT between a circle and a convex polygon.
// The returned normal points from the circle toward the polygon.
func IntersectCirclePolygon(circleCenter mgl32.Vec2, radius float32, vertices []mgl32.Vec2, polygonCenter mgl32.Vec2) (mgl32.Vec2, float32, bool) {
	normal := mgl32.Vec2{}
	depth := float32(math32.MaxFloat32)

	test := func(axis mgl32.Vec2) bool {
		minA, maxA := ProjectVertices(vertices, axis)
		minB, maxB := ProjectCircle(circleCenter, radius, axis)
		if minA >= maxB || minB >= maxA {
			return false
		}
		if axisDepth := math32.Min(maxB-minA, maxA-minB); axisDepth < depth {
			depth = axisDepth
			normal = axis
		}
		return true
	}

	for i := range vertices {
		if !test(edgeNormal(vertices[i], vertices[(i+1)%len(vertices)])) {
			return mgl32.Vec2{}, 0, false
		}
	}

	closest := vertices[FindClosestPointOnPolygon(circleCenter, vertices)]
	if axis := closest.Sub(circleCenter); axis.Len() > 0 {
		if !test(axis.Normalize()) {
			return mgl32.Vec2{}, 0, false
		}
	}

	if polygonCenter.Sub(circleCenter).Dot(normal) < 0 {
		normal = normal.Mul(-1)
	}

	return normal, depth, true
}

// ProjectVertices returns the interval covered by vertices along axis.
func ProjectVertices(vertices []mgl32.Vec2, axis mgl32.Vec2) (float32, float32) {
	min := float32(math32.MaxFloat32)
	max := -float32(math32.MaxFloat32)

	for _, v := range vertices {
		projection := v.Dot(axis)
		min = math32.Min(min, projection)
		max = math32.Max(max, projection)
	}

	return min, max
}

// ProjectCircle returns the interval covered by a circle along axis.
// The axis does not need to be normalized.
func ProjectCircle(center mgl32.Vec2, radius float32, axis mgl32.Vec2) (float32, float32) {
	offset := axis.Normalize().Mul(radius)

	min := center.Add(offset).Dot(axis)
	max := center.Sub(offset).Dot(axis)
	if min > max {
		min, max = max, min
	}

	return min, max
}

// FindClosestPointOnPolygon returns the index of the vertex nearest to point,
// or -1 for an empty polygon. Ties keep the first vertex.
func FindClosestPointOnPolygon(point mgl32.Vec2, vertices []mgl32.Vec2) int {
	result := -1
	minDistance := float32(math32.MaxFloat32)

	for i, v := range vertices {
		if distance := v.Sub(point).Len(); distance < minDistance {
			minDistance = distance
			result = i
		}
	}

	return result
}

// IntersectAABBs reports whether two boxes are DISJOINT on the X or the Y axis.
// Despite its name, true means the pair can be skipped: the broad phase keeps
// a pair only when this returns false. Touching boxes count as disjoint.
func IntersectAABBs(a, b actor.AABB) bool {
	if a.Max.X() <= b.Min.X() || b.Max.X() <= a.Min.X() {
		return true
	}
	if a.Max.Y() <= b.Min.Y() || b.Max.Y() <= a.Min.Y() {
		return true
	}
	return false
}

// edgeNormal is the unit perpendicular (-edge.y, edge.x) of the edge va -> vb.
func edgeNormal(va, vb mgl32.Vec2) mgl32.Vec2 {
	edge := vb.Sub(va)
	return mgl32.Vec2{-edge.Y(), edge.X()}.Normalize()
}
