// Package rayrender draws the world in a raylib window.
package rayrender

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/render"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer must be used between rl.BeginDrawing and rl.EndDrawing
type Renderer struct {
	// Outline draws the triangle edges over the fill, darker
	Outline bool
}

func New() *Renderer {
	return &Renderer{Outline: true}
}

func (r *Renderer) Draw(kind actor.ShapeKind, transform mgl32.Mat4, color mgl32.Vec3) {
	width, height := rl.GetScreenWidth(), rl.GetScreenHeight()
	fill := toColor(color)
	edge := toColor(render.Shade(color, 0.6))

	for _, tri := range render.MeshFor(kind).Triangles(transform) {
		a := toVector(render.ClipToScreen(tri[0], width, height))
		b := toVector(render.ClipToScreen(tri[1], width, height))
		c := toVector(render.ClipToScreen(tri[2], width, height))

		// Screen Y points down, which flips the mesh winding: raylib wants counter-clockwise.
		rl.DrawTriangle(a, c, b, fill)
		if r.Outline {
			rl.DrawTriangleLines(a, c, b, edge)
		}
	}
}

func toVector(v mgl32.Vec2) rl.Vector2 {
	return rl.NewVector2(v.X(), v.Y())
}

func toColor(color mgl32.Vec3) rl.Color {
	red, green, blue := render.RGB8(color)
	return rl.NewColor(red, green, blue, 255)
}
