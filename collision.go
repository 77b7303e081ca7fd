package feather2d

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/akmonengine/feather2d/manifold"
	"github.com/akmonengine/feather2d/sat"
	"github.com/go-gl/mathgl/mgl32"
)

// ContactPair is a pair of body indices (A < B) whose AABBs overlap
type ContactPair struct {
	A, B int
}

// BroadPhase appends to pairs every pair of bodies that might be colliding.
// Pairs of two static bodies are skipped, and so are pairs whose AABBs are disjoint.
// With a nil spatialGrid every pair is tested, O(n²); the grid returns the same pairs
// in the same order.
func BroadPhase(spatialGrid *SpatialGrid, bodies []*actor.Body, pairs []ContactPair, workersCount int) []ContactPair {
	if spatialGrid == nil {
		return bruteForcePairs(bodies, pairs)
	}

	spatialGrid.Clear()
	for i, body := range bodies {
		spatialGrid.Insert(i, body)
	}
	spatialGrid.SortCells()

	start := len(pairs)
	for pair := range spatialGrid.FindPairsParallel(bodies, workersCount) {
		pairs = append(pairs, pair)
	}
	sortPairs(pairs[start:])

	return pairs
}

func bruteForcePairs(bodies []*actor.Body, pairs []ContactPair) []ContactPair {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if !mightCollide(bodies[i], bodies[j]) {
				continue
			}
			pairs = append(pairs, ContactPair{A: i, B: j})
		}
	}
	return pairs
}

// mightCollide is the broad phase filter shared by brute force and grid
func mightCollide(bodyA, bodyB *actor.Body) bool {
	if bodyA.IsStatic() && bodyB.IsStatic() {
		return false
	}
	// IntersectAABBs reports disjoint boxes
	return !sat.IntersectAABBs(bodyA.GetAABB(), bodyB.GetAABB())
}

// NarrowPhase tests each pair exactly. A colliding pair is pushed apart, then its
// contact points are computed and resolve applies the impulses.
// Pairs are handled one after the other, each one seeing the corrections of the previous.
// It returns the pairs that collided.
func NarrowPhase(bodies []*actor.Body, pairs []ContactPair, resolve constraint.Resolver) []ContactPair {
	var colliding []ContactPair

	for _, pair := range pairs {
		bodyA := bodies[pair.A]
		bodyB := bodies[pair.B]

		normal, depth, ok := sat.Collide(bodyA, bodyB)
		if !ok {
			continue
		}

		SeparateBodies(bodyA, bodyB, normal.Mul(depth))

		contact1, contact2, count := manifold.FindContactPoints(bodyA, bodyB)
		resolve(constraint.Manifold{
			BodyA:        bodyA,
			BodyB:        bodyB,
			Normal:       normal,
			Depth:        depth,
			Contact1:     contact1,
			Contact2:     contact2,
			ContactCount: count,
		})

		colliding = append(colliding, pair)
	}

	return colliding
}

// SeparateBodies moves two overlapping bodies apart along the Minimum Translation
// Vector mtv (pointing from A toward B). A static body never moves: the other one
// takes the whole correction. Two dynamic bodies move half of it each.
func SeparateBodies(bodyA, bodyB *actor.Body, mtv mgl32.Vec2) {
	switch {
	case bodyA.IsStatic() && bodyB.IsStatic():
		return
	case bodyA.IsStatic():
		bodyB.Move(mtv)
	case bodyB.IsStatic():
		bodyA.Move(mtv.Mul(-1))
	default:
		half := mtv.Mul(0.5)
		bodyA.Move(half.Mul(-1))
		bodyB.Move(half)
	}
}
