package shading

import (
	stdimage "image"
	"io"

	"github.com/terramine/shading/internal/image"
)

// Sampler is a bound texture+sampler pair as seen by a fragment program.
// Sample returns normalized r, g, b, a at texture coordinate uv.
//
// Implementations must be safe for concurrent use; the pipeline calls
// Sample from many goroutines during one draw.
type Sampler interface {
	Sample(uv Vec2) Vec4
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func(uv Vec2) Vec4

// Sample calls f(uv).
func (f SamplerFunc) Sample(uv Vec2) Vec4 { return f(uv) }

// Solid returns a sampler that yields c everywhere.
func Solid(c Vec4) Sampler {
	return SamplerFunc(func(Vec2) Vec4 { return c })
}

// FilterMode selects texel filtering for a Texture.
type FilterMode uint8

const (
	// FilterNearest picks the closest texel. This is the default and keeps
	// atlas tiles from bleeding into each other.
	FilterNearest FilterMode = iota

	// FilterLinear interpolates between the four nearest texels.
	FilterLinear
)

// AddressMode selects how coordinates outside [0, 1] are resolved.
type AddressMode uint8

const (
	// AddressClampToEdge clamps to the edge texel. This is the default.
	AddressClampToEdge AddressMode = iota

	// AddressRepeat tiles the texture.
	AddressRepeat

	// AddressMirrorRepeat tiles the texture, mirroring every other tile.
	AddressMirrorRepeat
)

// TextureOption configures a Texture.
type TextureOption func(*Texture)

// WithFilter sets the filter mode.
func WithFilter(f FilterMode) TextureOption {
	return func(t *Texture) {
		t.filter = f
	}
}

// WithAddressMode sets the address mode for both axes.
func WithAddressMode(m AddressMode) TextureOption {
	return func(t *Texture) {
		t.address = m
	}
}

// Texture is an immutable RGBA8 image bound with sampler state.
// It implements Sampler and is safe for concurrent use.
type Texture struct {
	buf     *image.ImageBuf
	filter  FilterMode
	address AddressMode
}

// NewTexture copies img into a new Texture.
func NewTexture(img stdimage.Image, opts ...TextureOption) *Texture {
	return newTexture(image.FromStdImage(img), opts)
}

// LoadTexture loads a PNG, JPEG, BMP, TIFF or WebP file as a Texture.
func LoadTexture(path string, opts ...TextureOption) (*Texture, error) {
	buf, err := image.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return newTexture(buf, opts), nil
}

// DecodeTexture decodes a Texture from r.
func DecodeTexture(r io.Reader, opts ...TextureOption) (*Texture, error) {
	buf, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return newTexture(buf, opts), nil
}

func newTexture(buf *image.ImageBuf, opts []TextureOption) *Texture {
	t := &Texture{buf: buf}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Size returns the texture dimensions in texels.
func (t *Texture) Size() (width, height int) {
	return t.buf.Bounds()
}

// Sample implements Sampler.
func (t *Texture) Sample(uv Vec2) Vec4 {
	w, h := t.buf.Bounds()
	if w == 0 || h == 0 {
		return Vec4{}
	}

	mode := image.InterpNearest
	if t.filter == FilterLinear {
		mode = image.InterpBilinear
	}

	var addr image.AddressMode
	switch t.address {
	case AddressRepeat:
		addr = image.AddressRepeat
	case AddressMirrorRepeat:
		addr = image.AddressMirrorRepeat
	default:
		addr = image.AddressClampToEdge
	}

	c := image.Sample(t.buf, uv.X, uv.Y, mode, addr)
	return Vec4{X: c[0], Y: c[1], Z: c[2], W: c[3]}
}
