// Package image provides the texel buffers behind shading textures and the
// PNG output of render targets.
//
// Buffers are RGBA8, non-premultiplied, tightly packed. Sampling converts
// texels to normalized float32 channels the way a UNORM texture view does.
package image

import "errors"

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// bytesPerPixel is the size of one RGBA8 texel.
const bytesPerPixel = 4

// ImageBuf is an RGBA8 image buffer.
//
// Thread safety: ImageBuf is safe for concurrent read access. Write
// operations (SetRGBA, Fill) require external synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
}

// NewImageBuf creates a zeroed (transparent black) buffer.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &ImageBuf{
		data:   make([]byte, width*height*bytesPerPixel),
		width:  width,
		height: height,
	}, nil
}

// FromRaw creates an ImageBuf over existing tightly packed RGBA8 data
// without copying.
func FromRaw(data []byte, width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	size := width * height * bytesPerPixel
	if len(data) < size {
		return nil, ErrDataTooSmall
	}
	return &ImageBuf{data: data[:size], width: width, height: height}, nil
}

// Clone creates a deep copy of the buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &ImageBuf{data: data, width: b.width, height: b.height}
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

func (b *ImageBuf) offset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * bytesPerPixel
}

// GetRGBA returns the texel at (x, y).
// Returns (0,0,0,0) if coordinates are out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	o := b.offset(x, y)
	if o < 0 {
		return 0, 0, 0, 0
	}
	p := b.data[o : o+bytesPerPixel : o+bytesPerPixel]
	return p[0], p[1], p[2], p[3]
}

// SetRGBA sets the texel at (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	o := b.offset(x, y)
	if o < 0 {
		return ErrOutOfBounds
	}
	b.data[o] = r
	b.data[o+1] = g
	b.data[o+2] = bl
	b.data[o+3] = a
	return nil
}

// Fill sets all pixels to the given color.
func (b *ImageBuf) Fill(r, g, bl, a uint8) {
	for o := 0; o < len(b.data); o += bytesPerPixel {
		b.data[o] = r
		b.data[o+1] = g
		b.data[o+2] = bl
		b.data[o+3] = a
	}
}

// SetFloat stores normalized channels at (x, y), clamping to [0, 1] and
// rounding to the nearest 8-bit value like a UNORM render target.
func (b *ImageBuf) SetFloat(x, y int, r, g, bl, a float32) error {
	return b.SetRGBA(x, y, unorm8(r), unorm8(g), unorm8(bl), unorm8(a))
}

// unorm8 converts a float channel to UNORM8.
func unorm8(v float32) uint8 {
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
