package shading

import "errors"

// Fixed constants of the deferred surface program. They must match the
// GPU sources bit for bit.
const (
	// NormalGamma is the encoding gamma assumed for the normal map.
	NormalGamma float32 = 0.4545

	// AlphaCutoff is the albedo alpha below which a fragment is discarded.
	AlphaCutoff float32 = 0.001
)

// NormalDecodeExponent is 1/(NormalGamma*NormalGamma), evaluated in float32
// the way the GPU folds the constant expression.
var NormalDecodeExponent = decodeExponent(NormalGamma)

func decodeExponent(g float32) float32 {
	return 1 / float32(g*g)
}

// ErrMissingSampler is returned when a standard-mode surface shader has no
// atlas or normal map bound.
var ErrMissingSampler = errors.New("shading: surface shader sampler not bound")

// SurfaceInput holds the interpolated varyings read by the surface program.
type SurfaceInput struct {
	// TexCoord is the atlas coordinate (location 0).
	TexCoord Vec2

	// Position is the world-space position (location 1).
	Position Vec3

	// Basis maps tangent-space normals to world space (location 2).
	Basis Mat3
}

// GBufferSample is the set of values one surface invocation writes.
type GBufferSample struct {
	Albedo   Vec3
	Normal   Vec3
	Position Vec3
}

// SurfaceShader is the deferred surface fragment program (surface.frag).
// Mode and the samplers are uniforms: set once per draw, read-only after.
type SurfaceShader struct {
	Mode      ShadingMode
	Atlas     Sampler
	NormalMap Sampler
}

// Validate reports whether the uniforms needed by Mode are bound.
// Shadow mode never samples, so it needs no samplers.
func (s *SurfaceShader) Validate() error {
	if s.Mode == ShadowMode {
		return nil
	}
	if s.Atlas == nil || s.NormalMap == nil {
		return ErrMissingSampler
	}
	return nil
}

// Shade runs one invocation. It returns false when the fragment is
// discarded, in which case nothing must be written for it.
func (s *SurfaceShader) Shade(in SurfaceInput) (GBufferSample, bool) {
	if s.Mode == ShadowMode {
		return GBufferSample{Position: in.Position}, true
	}

	albedo := s.Atlas.Sample(in.TexCoord)
	normal := DecodeNormal(s.NormalMap.Sample(in.TexCoord).RGB())

	if albedo.W < AlphaCutoff {
		return GBufferSample{}, false
	}

	return GBufferSample{
		Albedo:   albedo.RGB(),
		Normal:   in.Basis.MulVec(normal),
		Position: in.Position,
	}, true
}

// DecodeNormal undoes the gamma pre-encoding of a normal map sample by
// raising each channel to NormalDecodeExponent.
func DecodeNormal(n Vec3) Vec3 {
	return n.Pow(NormalDecodeExponent)
}
