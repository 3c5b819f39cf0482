package pipeline

import "github.com/terramine/shading"

// Varyings is what a vertex stage hands to the rasterizer and what a
// fragment stage receives after interpolation.
type Varyings struct {
	// Position is the clip-space position. After interpolation X and Y hold
	// window coordinates of the pixel center.
	Position shading.Vec4

	TexCoord shading.Vec2
	World    shading.Vec3
	Basis    shading.Mat3
	Color    shading.Vec4
}

// interpolate blends three varyings with barycentric weights l0, l1, l2
// that sum to 1.
func interpolate(a, b, c *Varyings, l0, l1, l2 float32) Varyings {
	return Varyings{
		Position: a.Position.Mul(l0).Add(b.Position.Mul(l1)).Add(c.Position.Mul(l2)),
		TexCoord: a.TexCoord.Mul(l0).Add(b.TexCoord.Mul(l1)).Add(c.TexCoord.Mul(l2)),
		World:    a.World.Mul(l0).Add(b.World.Mul(l1)).Add(c.World.Mul(l2)),
		Basis:    a.Basis.Mul(l0).Add(b.Basis.Mul(l1)).Add(c.Basis.Mul(l2)),
		Color:    a.Color.Mul(l0).Add(b.Color.Mul(l1)).Add(c.Color.Mul(l2)),
	}
}
