// Package shading provides CPU reference implementations of a small set of
// GPU programs and the types they share.
//
// # Overview
//
// The GPU side lives in package shaders as embedded GLSL and WGSL sources.
// This package mirrors each program in float32 Go so the math can be run and
// tested without a device:
//
//   - SpriteVertex: position and texture coordinate pass-through
//   - PulseVertex / TexturedFragment: position scaled by sin(time)*0.5+0.5,
//     then a single texture sample
//   - ColorCycle: base color shifted by sine/cosine of a time channel
//   - SurfaceShader: deferred G-buffer output with a shadow-pass branch and
//     an alpha cutout
//
// # Quick Start
//
//	atlas, err := shading.LoadTexture("atlas.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	normals, err := shading.LoadTexture("normals.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s := shading.SurfaceShader{Mode: shading.StandardMode, Atlas: atlas, NormalMap: normals}
//	out, ok := s.Shade(shading.SurfaceInput{
//	    TexCoord: shading.V2(0.5, 0.5),
//	    Position: shading.V3(1, 2, 3),
//	    Basis:    shading.Identity3(),
//	})
//	if !ok {
//	    // fragment discarded by the alpha cutout
//	}
//
// Package pipeline runs these programs over triangles and counts the
// fragments they write.
//
// # Coordinate System
//
// Clip space follows the GPU convention: x right, y up, both in [-1, 1].
// Texture coordinates have (0,0) at the top-left texel.
package shading

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
