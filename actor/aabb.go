package actor

import "github.com/go-gl/mathgl/mgl32"

// AABB represents an axis-aligned bounding box in world space
type AABB struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

// ContainsPoint checks if a point is inside the AABB, borders included
func (a AABB) ContainsPoint(point mgl32.Vec2) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y()
}

// Overlaps checks if two AABBs strictly overlap on both axes.
// Boxes that only touch along an edge do not overlap.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() > other.Min.X() && a.Min.X() < other.Max.X() &&
		a.Max.Y() > other.Min.Y() && a.Min.Y() < other.Max.Y()
}
