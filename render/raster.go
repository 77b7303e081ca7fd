package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Rasterize calls plot for every cell of a width x height grid whose center lies
// inside the triangle (screen coordinates, borders included). Winding does not matter.
func Rasterize(tri Triangle, width, height int, plot func(x, y int)) {
	minX := max(0, int(math32.Floor(min(tri[0].X(), tri[1].X(), tri[2].X()))))
	maxX := min(width-1, int(math32.Ceil(max(tri[0].X(), tri[1].X(), tri[2].X()))))
	minY := max(0, int(math32.Floor(min(tri[0].Y(), tri[1].Y(), tri[2].Y()))))
	maxY := min(height-1, int(math32.Ceil(max(tri[0].Y(), tri[1].Y(), tri[2].Y()))))

	area := edge(tri[0], tri[1], tri[2])
	if area == 0 {
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}
			w0 := edge(tri[1], tri[2], p)
			w1 := edge(tri[2], tri[0], p)
			w2 := edge(tri[0], tri[1], p)

			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				plot(x, y)
			}
		}
	}
}

// edge is twice the signed area of (a, b, p)
func edge(a, b, p mgl32.Vec2) float32 {
	return (b.X()-a.X())*(p.Y()-a.Y()) - (b.Y()-a.Y())*(p.X()-a.X())
}
