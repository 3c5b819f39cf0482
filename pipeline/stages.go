package pipeline

import "github.com/terramine/shading"

// VertexStage transforms one vertex into clip-space varyings.
type VertexStage func(Vertex) Varyings

// FragmentStage shades one fragment. It returns false to discard.
type FragmentStage func(Varyings) (shading.Vec4, bool)

// passThrough copies the attributes the programs do not transform.
func passThrough(v Vertex, out shading.VertexOutput) Varyings {
	return Varyings{
		Position: out.Position,
		TexCoord: out.TexCoord,
		World:    v.World,
		Basis:    v.Basis,
		Color:    v.Color,
	}
}

// SpriteStage runs shading.SpriteVertex.
func SpriteStage(v Vertex) Varyings {
	return passThrough(v, shading.SpriteVertex(shading.VertexInput{
		Position: v.Position,
		TexCoord: v.TexCoord,
	}))
}

// PulseStage returns a vertex stage running shading.PulseVertex with the
// time uniform bound to t.
func PulseStage(t float32) VertexStage {
	return func(v Vertex) Varyings {
		return passThrough(v, shading.PulseVertex(shading.VertexInput{
			Position: v.Position,
			TexCoord: v.TexCoord,
		}, t))
	}
}

// TexturedStage returns a fragment stage running shading.TexturedFragment
// with s bound.
func TexturedStage(s shading.Sampler) FragmentStage {
	return func(in Varyings) (shading.Vec4, bool) {
		return shading.TexturedFragment(s, in.TexCoord), true
	}
}

// ColorCycleStage runs shading.ColorCycle on the interpolated color.
func ColorCycleStage(in Varyings) (shading.Vec4, bool) {
	return shading.ColorCycle(in.Color), true
}

// surfaceInput maps interpolated varyings to the surface program inputs.
func surfaceInput(in Varyings) shading.SurfaceInput {
	return shading.SurfaceInput{
		TexCoord: in.TexCoord,
		Position: in.World,
		Basis:    in.Basis,
	}
}
