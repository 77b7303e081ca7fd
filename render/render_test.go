package render

import (
	"testing"

	"github.com/akmonengine/feather2d/actor"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func almostEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

func vec2AlmostEqual(a, b mgl32.Vec2, eps float32) bool {
	return almostEqual(a.X(), b.X(), eps) && almostEqual(a.Y(), b.Y(), eps)
}

// =============================================================================
// Mesh Tests
// =============================================================================

func TestSquareMesh(t *testing.T) {
	mesh := SquareMesh()
	if len(mesh.Vertices) != 4 || len(mesh.Indices) != 6 {
		t.Fatalf("square mesh has %d vertices / %d indices, want 4 / 6", len(mesh.Vertices), len(mesh.Indices))
	}

	var area float32
	for _, tri := range mesh.Triangles(mgl32.Ident4()) {
		area += math32.Abs(edge(tri[0], tri[1], tri[2])) / 2
	}
	if !almostEqual(area, 1, 1e-6) {
		t.Errorf("square area = %v, want 1", area)
	}
}

func TestCircleMesh(t *testing.T) {
	mesh := CircleMesh(CircleSegments)
	if len(mesh.Vertices) != CircleSegments+1 || len(mesh.Indices) != CircleSegments*3 {
		t.Fatalf("circle mesh has %d vertices / %d indices", len(mesh.Vertices), len(mesh.Indices))
	}
	for i, v := range mesh.Vertices[1:] {
		if !almostEqual(v.Len(), 1, 1e-5) {
			t.Errorf("rim vertex %d at distance %v, want 1", i, v.Len())
		}
	}

	// Every rim vertex is used by exactly two triangles
	uses := make([]int, len(mesh.Vertices))
	for _, idx := range mesh.Indices {
		uses[idx]++
	}
	for i := 1; i < len(uses); i++ {
		if uses[i] != 2 {
			t.Errorf("rim vertex %d used %d times, want 2", i, uses[i])
		}
	}
	if uses[0] != CircleSegments {
		t.Errorf("center used %d times, want %d", uses[0], CircleSegments)
	}
}

func TestMeshFor(t *testing.T) {
	if len(MeshFor(actor.ShapeRectangle).Vertices) != 4 {
		t.Error("rectangle mesh should be the unit square")
	}
	if len(MeshFor(actor.ShapeCircle).Vertices) != CircleSegments+1 {
		t.Error("circle mesh should be the 30 segment fan")
	}
}

func TestMesh_Triangles_BodyTransform(t *testing.T) {
	body := actor.NewBody(actor.Transform{Position: mgl32.Vec2{10, 5}}, &actor.Rectangle{Width: 4, Height: 2}, actor.BodyTypeDynamic, 1, 0)

	triangles := SquareMesh().Triangles(body.TransformMatrix())
	if len(triangles) != 2 {
		t.Fatalf("got %d triangles, want 2", len(triangles))
	}
	if !vec2AlmostEqual(triangles[0][0], mgl32.Vec2{8, 4}, 1e-5) || !vec2AlmostEqual(triangles[0][2], mgl32.Vec2{12, 6}, 1e-5) {
		t.Errorf("first triangle = %v", triangles[0])
	}
}

// =============================================================================
// Camera Tests
// =============================================================================

func TestCamera_Projection(t *testing.T) {
	camera := Camera{Center: mgl32.Vec2{0, 100}, Width: 400, Height: 200}
	projection := camera.Projection()

	tests := []struct {
		world mgl32.Vec2
		clip  mgl32.Vec2
	}{
		{mgl32.Vec2{0, 100}, mgl32.Vec2{0, 0}},
		{mgl32.Vec2{-200, 0}, mgl32.Vec2{-1, -1}},
		{mgl32.Vec2{200, 200}, mgl32.Vec2{1, 1}},
	}
	for _, tt := range tests {
		p := projection.Mul4x1(mgl32.Vec4{tt.world.X(), tt.world.Y(), 0, 1})
		if !vec2AlmostEqual(mgl32.Vec2{p.X(), p.Y()}, tt.clip, 1e-5) {
			t.Errorf("project(%v) = %v, want %v", tt.world, p, tt.clip)
		}
	}
}

func TestClipToScreen(t *testing.T) {
	tests := []struct {
		clip mgl32.Vec2
		want mgl32.Vec2
	}{
		{mgl32.Vec2{-1, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec2{1, -1}, mgl32.Vec2{80, 24}},
		{mgl32.Vec2{0, 0}, mgl32.Vec2{40, 12}},
	}
	for _, tt := range tests {
		if got := ClipToScreen(tt.clip, 80, 24); !vec2AlmostEqual(got, tt.want, 1e-5) {
			t.Errorf("ClipToScreen(%v) = %v, want %v", tt.clip, got, tt.want)
		}
	}
}

func TestCamera_ScreenToWorld_Inverse(t *testing.T) {
	camera := Camera{Center: mgl32.Vec2{50, -20}, Width: 800, Height: 600}
	projection := camera.Projection()

	for _, world := range []mgl32.Vec2{{50, -20}, {0, 0}, {-300, 250}} {
		p := projection.Mul4x1(mgl32.Vec4{world.X(), world.Y(), 0, 1})
		screen := ClipToScreen(mgl32.Vec2{p.X(), p.Y()}, 1024, 768)
		if back := camera.ScreenToWorld(screen, 1024, 768); !vec2AlmostEqual(back, world, 1e-2) {
			t.Errorf("ScreenToWorld(%v) = %v, want %v", screen, back, world)
		}
	}
}

// =============================================================================
// Color Tests
// =============================================================================

func TestRGB8(t *testing.T) {
	tests := []struct {
		color   mgl32.Vec3
		r, g, b uint8
	}{
		{mgl32.Vec3{1, 1, 1}, 255, 255, 255},
		{mgl32.Vec3{0, 0, 0}, 0, 0, 0},
		{mgl32.Vec3{1, 0, 0}, 255, 0, 0},
		{mgl32.Vec3{2, -1, 0}, 255, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := RGB8(tt.color)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("RGB8(%v) = %d,%d,%d, want %d,%d,%d", tt.color, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestShade(t *testing.T) {
	color := mgl32.Vec3{0.2, 0.6, 0.4}
	darker := Shade(color, 0.5)
	if darker.X()+darker.Y()+darker.Z() >= color.X()+color.Y()+color.Z() {
		t.Errorf("Shade(%v, 0.5) = %v, want darker", color, darker)
	}
}

// =============================================================================
// Rasterize Tests
// =============================================================================

func TestRasterize(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle
		want int
	}{
		{"half of a 4x4 square", Triangle{{0, 0}, {4, 0}, {0, 4}}, 10},
		{"reversed winding", Triangle{{0, 0}, {0, 4}, {4, 0}}, 10},
		{"degenerate", Triangle{{0, 0}, {2, 2}, {4, 4}}, 0},
		{"fully clipped", Triangle{{-10, -10}, {-5, -10}, {-5, -5}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := 0
			Rasterize(tt.tri, 8, 8, func(x, y int) {
				if x < 0 || x >= 8 || y < 0 || y >= 8 {
					t.Errorf("plot(%d, %d) outside the grid", x, y)
				}
				count++
			})
			if count != tt.want {
				t.Errorf("plotted %d cells, want %d", count, tt.want)
			}
		})
	}
}

func TestRasterize_ClippedToGrid(t *testing.T) {
	count := 0
	Rasterize(Triangle{{-100, -100}, {100, -100}, {0, 100}}, 4, 3, func(x, y int) { count++ })
	if count != 12 {
		t.Errorf("plotted %d cells, want all 12", count)
	}
}
