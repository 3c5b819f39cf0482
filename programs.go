package shading

import "github.com/chewxy/math32"

// VertexInput holds the attributes consumed by the sprite and pulse vertex
// programs: position at location 0 and texture coordinate at location 1.
type VertexInput struct {
	Position Vec2
	TexCoord Vec2
}

// VertexOutput is the clip-space position and the texture coordinate
// varying produced by the sprite and pulse vertex programs.
type VertexOutput struct {
	Position Vec4
	TexCoord Vec2
}

// SpriteVertex is the sprite pass-through vertex program (sprite.vert).
// The 2D position is widened to clip space with z=0, w=1.
func SpriteVertex(in VertexInput) VertexOutput {
	return VertexOutput{
		Position: Vec4{X: in.Position.X, Y: in.Position.Y, Z: 0, W: 1},
		TexCoord: in.TexCoord,
	}
}

// PulseScale returns sin(time)*0.5 + 0.5, the [0, 1] scale factor applied
// by the pulse vertex program.
func PulseScale(time float32) float32 {
	return math32.Sin(time)*0.5 + 0.5
}

// PulseVertex is the vs_main entry point of pulse.wgsl: the position is
// scaled by PulseScale(time) and placed at z=0, w=1.
func PulseVertex(in VertexInput, time float32) VertexOutput {
	f := PulseScale(time)
	p := in.Position.Mul(f)
	return VertexOutput{
		Position: Vec4{X: p.X, Y: p.Y, Z: 0, W: 1},
		TexCoord: in.TexCoord,
	}
}

// TexturedFragment is the fs_main entry point of pulse.wgsl. It returns the
// sample at uv unmodified.
func TexturedFragment(s Sampler, uv Vec2) Vec4 {
	return s.Sample(uv)
}

// ColorCycle is the color-cycling fragment program (color_cycle.frag).
// The input carries a base color in x, y, z and the time in w. The output
// alpha is always 1.
func ColorCycle(in Vec4) Vec4 {
	s := (math32.Sin(in.W) + 1) / 2
	c := (math32.Cos(in.W) + 1) / 2
	return Vec4{
		X: in.X + s,
		Y: in.Y + c,
		Z: in.Z + (s+c)/2,
		W: 1,
	}
}
