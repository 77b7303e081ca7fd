// Package termrender draws the world on a terminal with tcell, one filled cell per pixel.
package termrender

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/render"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

const fill = '█'

type Renderer struct {
	screen tcell.Screen
}

func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw fills the cells covered by the mesh of kind, transform mapping it to clip space.
func (r *Renderer) Draw(kind actor.ShapeKind, transform mgl32.Mat4, color mgl32.Vec3) {
	width, height := r.screen.Size()
	red, green, blue := render.RGB8(color)
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(red), int32(green), int32(blue)))

	for _, tri := range render.MeshFor(kind).Triangles(transform) {
		cells := render.Triangle{
			render.ClipToScreen(tri[0], width, height),
			render.ClipToScreen(tri[1], width, height),
			render.ClipToScreen(tri[2], width, height),
		}
		render.Rasterize(cells, width, height, func(x, y int) {
			r.screen.SetContent(x, y, fill, nil, style)
		})
	}
}

// Text writes s from (x, y), clipped to the screen width
func (r *Renderer) Text(x, y int, s string, style tcell.Style) {
	width, _ := r.screen.Size()
	for _, c := range s {
		if x >= width {
			return
		}
		r.screen.SetContent(x, y, c, nil, style)
		x++
	}
}
