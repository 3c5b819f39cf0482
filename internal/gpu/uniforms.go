package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/terramine/shading"
)

// Uniform buffer sizes. WGSL rounds a uniform struct up to a multiple of 16
// bytes.
const (
	// GlobalsUniformSize is the size of the pulse Globals struct:
	// time (f32) + padding.
	GlobalsUniformSize = 16

	// SurfaceUniformSize is the size of the Surface struct:
	// view_proj (mat4x4<f32>) + shadow_pass (u32) + padding.
	SurfaceUniformSize = 80
)

// EncodeGlobals packs the pulse program's Globals uniform.
func EncodeGlobals(time float32) []byte {
	buf := make([]byte, GlobalsUniformSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(time))
	return buf
}

// EncodeSurface packs the surface program's Surface uniform. viewProj is
// column-major.
func EncodeSurface(viewProj [16]float32, mode shading.ShadingMode) []byte {
	buf := make([]byte, SurfaceUniformSize)
	for i, v := range viewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	var shadow uint32
	if mode.Flag() {
		shadow = 1
	}
	binary.LittleEndian.PutUint32(buf[64:], shadow)
	return buf
}

// IdentityViewProj is the identity view-projection matrix.
var IdentityViewProj = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// NewUniformBuffer creates a uniform buffer holding data.
func NewUniformBuffer(device hal.Device, queue hal.Queue, label string, data []byte) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
