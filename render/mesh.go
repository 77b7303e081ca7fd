// Package render holds what the renderers share: the unit meshes of each shape kind,
// the camera projection and a bounding-box triangle rasterizer using edge functions.
package render

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CircleSegments is the number of rim vertices of the circle mesh
const CircleSegments = 30

// Mesh is an indexed triangle list in local space.
// The body transform matrix scales it to the body size.
type Mesh struct {
	Vertices []mgl32.Vec2
	Indices  []uint16
}

// Triangle is one triangle in the space produced by a transform
type Triangle [3]mgl32.Vec2

// SquareMesh is the unit square centered on the origin, in two triangles
func SquareMesh() Mesh {
	vertices := make([]mgl32.Vec2, len(actor.UnitSquare))
	copy(vertices, actor.UnitSquare[:])

	return Mesh{
		Vertices: vertices,
		Indices:  []uint16{0, 1, 2, 0, 2, 3},
	}
}

// CircleMesh is a fan of unit radius: the center then segments rim vertices,
// the first one on the +X axis.
func CircleMesh(segments int) Mesh {
	vertices := make([]mgl32.Vec2, 0, segments+1)
	vertices = append(vertices, mgl32.Vec2{0, 0})
	for i := range segments {
		angle := 2 * math32.Pi * float32(i) / float32(segments)
		vertices = append(vertices, mgl32.Vec2{math32.Cos(angle), math32.Sin(angle)})
	}

	indices := make([]uint16, 0, segments*3)
	for i := 1; i <= segments; i++ {
		next := i%segments + 1
		indices = append(indices, 0, uint16(i), uint16(next))
	}

	return Mesh{Vertices: vertices, Indices: indices}
}

var meshes = map[actor.ShapeKind]Mesh{
	actor.ShapeRectangle: SquareMesh(),
	actor.ShapeCircle:    CircleMesh(CircleSegments),
}

// MeshFor returns the shared mesh of a shape kind. It must not be modified.
func MeshFor(kind actor.ShapeKind) Mesh {
	return meshes[kind]
}

// Triangles applies transform to every triangle of the mesh, dropping z.
func (m Mesh) Triangles(transform mgl32.Mat4) []Triangle {
	transformed := make([]mgl32.Vec2, len(m.Vertices))
	for i, v := range m.Vertices {
		p := transform.Mul4x1(mgl32.Vec4{v.X(), v.Y(), 0, 1})
		transformed[i] = mgl32.Vec2{p.X(), p.Y()}
	}

	triangles := make([]Triangle, 0, len(m.Indices)/3)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		triangles = append(triangles, Triangle{
			transformed[m.Indices[i]],
			transformed[m.Indices[i+1]],
			transformed[m.Indices[i+2]],
		})
	}
	return triangles
}
