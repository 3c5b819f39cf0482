package pipeline

import (
	"errors"

	"github.com/terramine/shading"
)

// ErrInvalidMesh is returned for a mesh whose length is not a multiple of 3.
var ErrInvalidMesh = errors.New("pipeline: mesh is not a triangle list")

// Vertex holds every attribute any of the programs reads. Stages ignore the
// attributes they do not use.
type Vertex struct {
	// Position is the 2D position (location 0).
	Position shading.Vec2

	// TexCoord is the texture coordinate (location 1).
	TexCoord shading.Vec2

	// World is the world-space position read by the surface program.
	World shading.Vec3

	// Basis is the tangent/bitangent/normal basis read by the surface program.
	Basis shading.Mat3

	// Color carries base rgb and time in w for the color-cycle program.
	Color shading.Vec4
}

// Mesh is a triangle list: every three vertices form one triangle.
type Mesh []Vertex

// Triangles returns the number of complete triangles in m.
func (m Mesh) Triangles() int {
	return len(m) / 3
}

// Validate reports ErrInvalidMesh if m has a partial triangle.
func (m Mesh) Validate() error {
	if len(m)%3 != 0 {
		return ErrInvalidMesh
	}
	return nil
}

// Quad returns two triangles covering the rectangle from lo to hi in clip
// space. Texture coordinates run from (0,0) at lo to (1,1) at hi, World is
// the position at z=0 and Basis is the identity.
func Quad(lo, hi shading.Vec2) Mesh {
	corner := func(x, y, u, v float32) Vertex {
		return Vertex{
			Position: shading.V2(x, y),
			TexCoord: shading.V2(u, v),
			World:    shading.V3(x, y, 0),
			Basis:    shading.Identity3(),
		}
	}
	a := corner(lo.X, lo.Y, 0, 0)
	b := corner(hi.X, lo.Y, 1, 0)
	c := corner(hi.X, hi.Y, 1, 1)
	d := corner(lo.X, hi.Y, 0, 1)
	return Mesh{a, b, c, a, c, d}
}

// FullScreenQuad covers all of clip space.
func FullScreenQuad() Mesh {
	return Quad(shading.V2(-1, -1), shading.V2(1, 1))
}

// WithColor returns a copy of m with every vertex color set to c.
func (m Mesh) WithColor(c shading.Vec4) Mesh {
	out := make(Mesh, len(m))
	for i, v := range m {
		v.Color = c
		out[i] = v
	}
	return out
}
