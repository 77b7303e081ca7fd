package render

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Camera looks at Center and shows a Width x Height area of the world (cm).
// Y points up in the world and down on screen.
type Camera struct {
	Center mgl32.Vec2
	Width  float32
	Height float32
}

// Projection maps the visible area to clip space [-1, 1]²
func (c Camera) Projection() mgl32.Mat4 {
	halfW, halfH := c.Width/2, c.Height/2
	return mgl32.Ortho2D(c.Center.X()-halfW, c.Center.X()+halfW, c.Center.Y()-halfH, c.Center.Y()+halfH)
}

// ClipToScreen converts a clip space point to pixel (or cell) coordinates of a
// screenW x screenH target, origin top-left.
func ClipToScreen(p mgl32.Vec2, screenW, screenH int) mgl32.Vec2 {
	return mgl32.Vec2{
		(p.X() + 1) / 2 * float32(screenW),
		(1 - p.Y()) / 2 * float32(screenH),
	}
}

// ScreenToWorld is the inverse of projecting then ClipToScreen, used to spawn bodies under the cursor.
func (c Camera) ScreenToWorld(p mgl32.Vec2, screenW, screenH int) mgl32.Vec2 {
	return mgl32.Vec2{
		c.Center.X() + (p.X()/float32(screenW)-0.5)*c.Width,
		c.Center.Y() - (p.Y()/float32(screenH)-0.5)*c.Height,
	}
}

// RGB8 converts a [0,1] color to 8 bit channels
func RGB8(color mgl32.Vec3) (r, g, b uint8) {
	return colorful.Color{R: float64(color.X()), G: float64(color.Y()), B: float64(color.Z())}.Clamped().RGB255()
}

// Shade darkens (factor < 1) or lightens (factor > 1) a color in HCL space
func Shade(color mgl32.Vec3, factor float64) mgl32.Vec3 {
	h, c, l := colorful.Color{R: float64(color.X()), G: float64(color.Y()), B: float64(color.Z())}.Hcl()
	shaded := colorful.Hcl(h, c, l*factor).Clamped()
	return mgl32.Vec3{float32(shaded.R), float32(shaded.G), float32(shaded.B)}
}
