package feather2d

import (
	"math/rand"
	"testing"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Test helper functions
func createBox(position mgl32.Vec2, width, height float32, bodyType actor.BodyType) *actor.Body {
	return actor.NewBody(actor.Transform{Position: position}, &actor.Rectangle{Width: width, Height: height}, bodyType, 1.0, 0)
}

func createCircle(position mgl32.Vec2, radius float32, bodyType actor.BodyType) *actor.Body {
	return actor.NewBody(actor.Transform{Position: position}, &actor.Circle{Radius: radius}, bodyType, 1.0, 0)
}

// createFloor is a static 400x20 slab whose top edge is at y = 10
func createFloor() *actor.Body {
	return createBox(mgl32.Vec2{0, 0}, 400, 20, actor.BodyTypeStatic)
}

func almostEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

func vec2AlmostEqual(a, b mgl32.Vec2, eps float32) bool {
	return almostEqual(a.X(), b.X(), eps) && almostEqual(a.Y(), b.Y(), eps)
}

// =============================================================================
// BroadPhase Tests
// =============================================================================

func TestBroadPhase_BruteForce(t *testing.T) {
	tests := []struct {
		name   string
		bodies []*actor.Body
		want   []ContactPair
	}{
		{
			name: "overlapping dynamic bodies",
			bodies: []*actor.Body{
				createCircle(mgl32.Vec2{0, 0}, 1, actor.BodyTypeDynamic),
				createCircle(mgl32.Vec2{1.5, 0}, 1, actor.BodyTypeDynamic),
			},
			want: []ContactPair{{A: 0, B: 1}},
		},
		{
			name: "static pair skipped",
			bodies: []*actor.Body{
				createBox(mgl32.Vec2{0, 0}, 2, 2, actor.BodyTypeStatic),
				createBox(mgl32.Vec2{1, 0}, 2, 2, actor.BodyTypeStatic),
			},
			want: nil,
		},
		{
			name: "disjoint boxes skipped",
			bodies: []*actor.Body{
				createBox(mgl32.Vec2{0, 0}, 2, 2, actor.BodyTypeDynamic),
				createBox(mgl32.Vec2{5, 0}, 2, 2, actor.BodyTypeDynamic),
			},
			want: nil,
		},
		{
			name: "touching boxes skipped",
			bodies: []*actor.Body{
				createBox(mgl32.Vec2{0, 0}, 2, 2, actor.BodyTypeDynamic),
				createBox(mgl32.Vec2{2, 0}, 2, 2, actor.BodyTypeDynamic),
			},
			want: nil,
		},
		{
			name: "static and dynamic kept in index order",
			bodies: []*actor.Body{
				createFloor(),
				createCircle(mgl32.Vec2{-50, 15}, 10, actor.BodyTypeDynamic),
				createCircle(mgl32.Vec2{100, 100}, 10, actor.BodyTypeDynamic),
				createCircle(mgl32.Vec2{50, 15}, 10, actor.BodyTypeDynamic),
			},
			want: []ContactPair{{A: 0, B: 1}, {A: 0, B: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BroadPhase(nil, tt.bodies, nil, 1)
			if len(got) != len(tt.want) {
				t.Fatalf("BroadPhase() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pair %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func randomScene(seed int64, count int) []*actor.Body {
	rng := rand.New(rand.NewSource(seed))
	bodies := []*actor.Body{createFloor()}

	for range count {
		position := mgl32.Vec2{float32(rng.Float64()*400 - 200), float32(rng.Float64()*200 - 20)}
		bodyType := actor.BodyTypeDynamic
		if rng.Intn(8) == 0 {
			bodyType = actor.BodyTypeStatic
		}
		if rng.Intn(2) == 0 {
			bodies = append(bodies, createCircle(position, float32(2+rng.Float64()*15), bodyType))
		} else {
			body := createBox(position, float32(2+rng.Float64()*30), float32(2+rng.Float64()*30), bodyType)
			body.RotateTo(float32(rng.Float64() * 3))
			bodies = append(bodies, body)
		}
	}

	return bodies
}

func TestBroadPhase_GridMatchesBruteForce(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		bodies := randomScene(42, 120)

		brute := BroadPhase(nil, bodies, nil, workers)
		grid := BroadPhase(NewSpatialGrid(16, 256), bodies, nil, workers)

		if len(brute) == 0 {
			t.Fatal("random scene produced no pairs")
		}
		if len(grid) != len(brute) {
			t.Fatalf("workers=%d: grid found %d pairs, brute force %d", workers, len(grid), len(brute))
		}
		for i := range brute {
			if grid[i] != brute[i] {
				t.Errorf("workers=%d: pair %d = %v, want %v", workers, i, grid[i], brute[i])
			}
		}
	}
}

func TestBroadPhase_AppendsToPairs(t *testing.T) {
	bodies := []*actor.Body{
		createCircle(mgl32.Vec2{0, 0}, 1, actor.BodyTypeDynamic),
		createCircle(mgl32.Vec2{1, 0}, 1, actor.BodyTypeDynamic),
	}
	buffer := make([]ContactPair, 0, 4)

	pairs := BroadPhase(nil, bodies, buffer, 1)
	if len(pairs) != 1 || cap(pairs) != 4 {
		t.Errorf("BroadPhase() = %v (cap %d), want 1 pair reusing the buffer", pairs, cap(pairs))
	}
}

// =============================================================================
// SeparateBodies Tests
// =============================================================================

func TestSeparateBodies(t *testing.T) {
	tests := []struct {
		name  string
		typeA actor.BodyType
		typeB actor.BodyType
		wantA mgl32.Vec2
		wantB mgl32.Vec2
	}{
		{"both dynamic", actor.BodyTypeDynamic, actor.BodyTypeDynamic, mgl32.Vec2{-1, 0}, mgl32.Vec2{11, 0}},
		{"A static", actor.BodyTypeStatic, actor.BodyTypeDynamic, mgl32.Vec2{0, 0}, mgl32.Vec2{12, 0}},
		{"B static", actor.BodyTypeDynamic, actor.BodyTypeStatic, mgl32.Vec2{-2, 0}, mgl32.Vec2{10, 0}},
		{"both static", actor.BodyTypeStatic, actor.BodyTypeStatic, mgl32.Vec2{0, 0}, mgl32.Vec2{10, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := createBox(mgl32.Vec2{0, 0}, 1, 1, tt.typeA)
			b := createBox(mgl32.Vec2{10, 0}, 1, 1, tt.typeB)

			SeparateBodies(a, b, mgl32.Vec2{2, 0})

			if !vec2AlmostEqual(a.Position(), tt.wantA, 1e-6) {
				t.Errorf("A position = %v, want %v", a.Position(), tt.wantA)
			}
			if !vec2AlmostEqual(b.Position(), tt.wantB, 1e-6) {
				t.Errorf("B position = %v, want %v", b.Position(), tt.wantB)
			}
		})
	}
}

// =============================================================================
// NarrowPhase Tests
// =============================================================================

func TestNarrowPhase_InelasticCircleOnFloor(t *testing.T) {
	floor := createFloor()
	ball := createCircle(mgl32.Vec2{0, 19}, 10, actor.BodyTypeDynamic)
	ball.Velocity = mgl32.Vec2{0, -300}
	bodies := []*actor.Body{floor, ball}

	colliding := NarrowPhase(bodies, []ContactPair{{A: 0, B: 1}}, constraint.ResolveWithRotationAndFriction)

	if len(colliding) != 1 {
		t.Fatalf("colliding = %v, want one pair", colliding)
	}
	if !vec2AlmostEqual(ball.Position(), mgl32.Vec2{0, 20}, 1e-4) {
		t.Errorf("ball position = %v, want separated to [0 20]", ball.Position())
	}

	// normal is (0, 1), from the floor to the ball
	if vn := ball.Velocity.Sub(floor.Velocity).Y(); vn < -1e-3 {
		t.Errorf("post-resolution normal velocity = %v, want >= 0", vn)
	}
	if floor.Position() != (mgl32.Vec2{0, 0}) || floor.Velocity != (mgl32.Vec2{}) {
		t.Errorf("static floor changed: %v / %v", floor.Position(), floor.Velocity)
	}
}

func TestNarrowPhase_SkipsMisses(t *testing.T) {
	// AABBs overlap but the circles do not
	a := createCircle(mgl32.Vec2{0, 0}, 1, actor.BodyTypeDynamic)
	b := createCircle(mgl32.Vec2{1.5, 1.5}, 1, actor.BodyTypeDynamic)

	called := 0
	colliding := NarrowPhase([]*actor.Body{a, b}, []ContactPair{{A: 0, B: 1}}, func(constraint.Manifold) {
		called++
	})

	if len(colliding) != 0 || called != 0 {
		t.Errorf("colliding = %v, resolver called %d times, want none", colliding, called)
	}
}

func TestNarrowPhase_ManifoldContent(t *testing.T) {
	a := createBox(mgl32.Vec2{0, 0}, 2, 2, actor.BodyTypeDynamic)
	b := createBox(mgl32.Vec2{0, 1.5}, 2, 2, actor.BodyTypeDynamic)

	var got constraint.Manifold
	NarrowPhase([]*actor.Body{a, b}, []ContactPair{{A: 0, B: 1}}, func(m constraint.Manifold) {
		got = m
	})

	if got.BodyA != a || got.BodyB != b {
		t.Fatal("manifold bodies do not match the pair")
	}
	if !vec2AlmostEqual(got.Normal, mgl32.Vec2{0, 1}, 1e-5) {
		t.Errorf("Normal = %v, want [0 1]", got.Normal)
	}
	if !almostEqual(got.Depth, 0.5, 1e-5) {
		t.Errorf("Depth = %v, want 0.5", got.Depth)
	}
	if got.ContactCount != 2 {
		t.Errorf("ContactCount = %d, want 2 for stacked boxes", got.ContactCount)
	}
	// Contact points are computed after separation
	if !almostEqual(b.Position().Y()-a.Position().Y(), 2, 1e-5) {
		t.Errorf("bodies not separated: A %v, B %v", a.Position(), b.Position())
	}
}
