package shading

import (
	"errors"
	"math"
	"testing"
)

// panicSampler fails the test if the shader samples it.
func panicSampler(t *testing.T, name string) Sampler {
	t.Helper()
	return SamplerFunc(func(Vec2) Vec4 {
		t.Errorf("%s sampled in shadow mode", name)
		return Vec4{}
	})
}

func TestNormalDecodeExponent(t *testing.T) {
	want := float32(1 / (0.4545 * 0.4545))
	if !near(NormalDecodeExponent, want, 1e-4) {
		t.Errorf("NormalDecodeExponent = %v, want about %v", NormalDecodeExponent, want)
	}
	g := NormalGamma
	if NormalDecodeExponent != 1/float32(g*g) {
		t.Error("NormalDecodeExponent must be computed in float32")
	}
}

func TestSurfaceShadowMode(t *testing.T) {
	s := SurfaceShader{
		Mode:      ShadowMode,
		Atlas:     panicSampler(t, "atlas"),
		NormalMap: panicSampler(t, "normal map"),
	}

	in := SurfaceInput{
		TexCoord: V2(0.3, 0.6),
		Position: V3(-4, 5.5, 12),
		Basis:    Mat3FromColumns(V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, 1)),
	}
	out, ok := s.Shade(in)
	if !ok {
		t.Fatal("shadow mode must never discard")
	}
	if out.Albedo != (Vec3{}) || out.Normal != (Vec3{}) {
		t.Errorf("shadow albedo/normal = %v / %v, want zero", out.Albedo, out.Normal)
	}
	if out.Position != in.Position {
		t.Errorf("shadow position = %v, want %v", out.Position, in.Position)
	}
}

func TestSurfaceShadowModeNeedsNoSamplers(t *testing.T) {
	s := SurfaceShader{Mode: ShadowMode}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if _, ok := s.Shade(SurfaceInput{}); !ok {
		t.Error("shadow mode without samplers should still write")
	}
}

func TestSurfaceValidate(t *testing.T) {
	solid := Solid(V4(1, 1, 1, 1))
	tests := []struct {
		name   string
		shader SurfaceShader
		want   error
	}{
		{"both bound", SurfaceShader{Atlas: solid, NormalMap: solid}, nil},
		{"missing atlas", SurfaceShader{NormalMap: solid}, ErrMissingSampler},
		{"missing normal map", SurfaceShader{Atlas: solid}, ErrMissingSampler},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.shader.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSurfaceAlphaCutout(t *testing.T) {
	normal := Solid(V4(0.5, 0.5, 1, 1))

	tests := []struct {
		alpha float32
		keep  bool
	}{
		{0, false},
		{0.0009, false},
		{math.Nextafter32(AlphaCutoff, 0), false},
		{AlphaCutoff, true},
		{0.5, true},
		{1, true},
	}

	for _, tt := range tests {
		s := SurfaceShader{Atlas: Solid(V4(0.2, 0.4, 0.6, tt.alpha)), NormalMap: normal}
		out, ok := s.Shade(SurfaceInput{Position: V3(1, 2, 3), Basis: Identity3()})
		if ok != tt.keep {
			t.Errorf("alpha %v: written = %v, want %v", tt.alpha, ok, tt.keep)
			continue
		}
		if !ok && out != (GBufferSample{}) {
			t.Errorf("alpha %v: discarded sample should be empty, got %v", tt.alpha, out)
		}
	}
}

func TestSurfaceStandardMode(t *testing.T) {
	var atlasUV, normalUV Vec2
	s := SurfaceShader{
		Mode: StandardMode,
		Atlas: SamplerFunc(func(uv Vec2) Vec4 {
			atlasUV = uv
			return V4(0.25, 0.5, 0.75, 1)
		}),
		NormalMap: SamplerFunc(func(uv Vec2) Vec4 {
			normalUV = uv
			return V4(1, 0, 0, 1)
		}),
	}

	in := SurfaceInput{
		TexCoord: V2(0.125, 0.875),
		Position: V3(7, -8, 9),
		Basis:    Mat3FromColumns(V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, 1)),
	}
	out, ok := s.Shade(in)
	if !ok {
		t.Fatal("opaque fragment discarded")
	}

	if atlasUV != in.TexCoord || normalUV != in.TexCoord {
		t.Errorf("sampled at %v / %v, want %v", atlasUV, normalUV, in.TexCoord)
	}
	if out.Albedo != V3(0.25, 0.5, 0.75) {
		t.Errorf("albedo = %v", out.Albedo)
	}
	// Decoded (1,0,0) selects the first basis column.
	if out.Normal != V3(0, 1, 0) {
		t.Errorf("normal = %v, want (0,1,0)", out.Normal)
	}
	if out.Position != in.Position {
		t.Errorf("position = %v, want %v", out.Position, in.Position)
	}
}

func TestDecodeNormalMonotonic(t *testing.T) {
	prev := float32(-1)
	for i := 1; i <= 100; i++ {
		x := float32(i) / 100
		got := DecodeNormal(V3(x, x, x))

		want := float32(math.Pow(float64(x), float64(NormalDecodeExponent)))
		if !near(got.X, want, 1e-5) {
			t.Fatalf("DecodeNormal(%v) = %v, want %v", x, got.X, want)
		}
		if got.X != got.Y || got.Y != got.Z {
			t.Fatalf("channels differ for equal input: %v", got)
		}
		if got.X <= prev {
			t.Fatalf("DecodeNormal not strictly increasing at %v: %v <= %v", x, got.X, prev)
		}
		if got.X > x {
			t.Fatalf("DecodeNormal(%v) = %v, exponent > 1 must not grow values in (0,1]", x, got.X)
		}
		prev = got.X
	}

	if got := DecodeNormal(V3(1, 1, 1)); got != V3(1, 1, 1) {
		t.Errorf("DecodeNormal(1) = %v, want 1", got)
	}
}
