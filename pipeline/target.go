package pipeline

import (
	"errors"
	"fmt"
	stdimage "image"
	"io"

	"github.com/terramine/shading"
	"github.com/terramine/shading/internal/image"
)
// ErrInvalidSize is returned when a target is created with a non-positive
// width or height, or when a zero-value target is exported.
var ErrInvalidSize = errors.New("pipeline: invalid target size")

// DefaultClearColor is the color the clear pass fills color targets with.
var DefaultClearColor = shading.DefaultClearColor

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}

// ColorTarget is a float RGBA render target.
type ColorTarget struct {
	width, height int
	pix           []shading.Vec4
}

// NewColorTarget creates a width x height color target filled with zero.
func NewColorTarget(width, height int) (*ColorTarget, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &ColorTarget{
		width:  width,
		height: height,
		pix:    make([]shading.Vec4, width*height),
	}, nil
}

// Width returns the target width in pixels.
func (t *ColorTarget) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *ColorTarget) Height() int { return t.height }

// Clear fills the target with c.
func (t *ColorTarget) Clear(c shading.Vec4) {
	for i := range t.pix {
		t.pix[i] = c
	}
}

// At returns the color at (x, y). Out-of-bounds reads return zero.
func (t *ColorTarget) At(x, y int) shading.Vec4 {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return shading.Vec4{}
	}
	return t.pix[y*t.width+x]
}

func (t *ColorTarget) set(x, y int, c shading.Vec4) {
	t.pix[y*t.width+x] = c
}

// NRGBA converts the target to 8-bit non-premultiplied RGBA. Channels are
// clamped to [0, 1].
func (t *ColorTarget) NRGBA() (*stdimage.NRGBA, error) {
	buf, err := t.buffer()
	if err != nil {
		return nil, err
	}
	return buf.ToStdImage(), nil
}

// EncodePNG writes the target as PNG.
func (t *ColorTarget) EncodePNG(w io.Writer) error {
	buf, err := t.buffer()
	if err != nil {
		return err
	}
	return buf.EncodePNG(w)
}

func (t *ColorTarget) buffer() (*image.ImageBuf, error) {
	buf, err := newImageBuf(t.width, t.height)
	if err != nil {
		return nil, err
	}
	for y := range t.height {
		for x := range t.width {
			c := t.pix[y*t.width+x]
			if err := buf.SetFloat(x, y, c.X, c.Y, c.Z, c.W); err != nil {
				return nil, fmt.Errorf("pipeline: pixel (%d, %d): %w", x, y, err)
			}
		}
	}
	return buf, nil
}

// newImageBuf allocates the export buffer of a width x height target.
func newImageBuf(width, height int) (*image.ImageBuf, error) {
	buf, err := image.NewImageBuf(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %dx%d: %w", ErrInvalidSize, width, height, err)
	}
	return buf, nil
}

// Plane selects one G-buffer attachment.
type Plane uint8

const (
	// PlaneAlbedo is attachment 0.
	PlaneAlbedo Plane = iota

	// PlaneNormal is attachment 1.
	PlaneNormal

	// PlanePosition is attachment 2.
	PlanePosition
)

// Planes lists the G-buffer attachments in location order.
var Planes = []Plane{PlaneAlbedo, PlaneNormal, PlanePosition}

// String returns the attachment name.
func (p Plane) String() string {
	switch p {
	case PlaneAlbedo:
		return "albedo"
	case PlaneNormal:
		return "normal"
	case PlanePosition:
		return "position"
	default:
		return fmt.Sprintf("Plane(%d)", p)
	}
}

// GBuffer holds the three deferred surface outputs and records which
// pixels have been written since the last Clear.
type GBuffer struct {
	width, height int
	albedo        []shading.Vec3
	normal        []shading.Vec3
	position      []shading.Vec3
	written       []bool
}

// NewGBuffer creates an empty width x height G-buffer.
func NewGBuffer(width, height int) (*GBuffer, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	n := width * height
	return &GBuffer{
		width:    width,
		height:   height,
		albedo:   make([]shading.Vec3, n),
		normal:   make([]shading.Vec3, n),
		position: make([]shading.Vec3, n),
		written:  make([]bool, n),
	}, nil
}

// Width returns the buffer width in pixels.
func (g *GBuffer) Width() int { return g.width }

// Height returns the buffer height in pixels.
func (g *GBuffer) Height() int { return g.height }

// Clear zeroes every plane and the written mask.
func (g *GBuffer) Clear() {
	clear(g.albedo)
	clear(g.normal)
	clear(g.position)
	clear(g.written)
}

// At returns the sample at (x, y) and whether it was written.
func (g *GBuffer) At(x, y int) (shading.GBufferSample, bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return shading.GBufferSample{}, false
	}
	i := y*g.width + x
	return shading.GBufferSample{
		Albedo:   g.albedo[i],
		Normal:   g.normal[i],
		Position: g.position[i],
	}, g.written[i]
}

// Written returns the number of pixels written since the last Clear.
func (g *GBuffer) Written() int {
	n := 0
	for _, w := range g.written {
		if w {
			n++
		}
	}
	return n
}

func (g *GBuffer) set(x, y int, s shading.GBufferSample) {
	i := y*g.width + x
	g.albedo[i] = s.Albedo
	g.normal[i] = s.Normal
	g.position[i] = s.Position
	g.written[i] = true
}

// EncodePNG writes one plane as PNG. Normals are mapped from [-1, 1] to
// [0, 1]; albedo and position are written as is and clamped. Unwritten
// pixels are transparent.
func (g *GBuffer) EncodePNG(p Plane, w io.Writer) error {
	var src []shading.Vec3
	switch p {
	case PlaneAlbedo:
		src = g.albedo
	case PlaneNormal:
		src = g.normal
	case PlanePosition:
		src = g.position
	default:
		return fmt.Errorf("pipeline: unknown plane %v", p)
	}

	buf, err := newImageBuf(g.width, g.height)
	if err != nil {
		return err
	}
	for y := range g.height {
		for x := range g.width {
			i := y*g.width + x
			if !g.written[i] {
				continue
			}
			v := src[i]
			if p == PlaneNormal {
				v = v.Mul(0.5).Add(shading.V3(0.5, 0.5, 0.5))
			}
			if err := buf.SetFloat(x, y, v.X, v.Y, v.Z, 1); err != nil {
				return fmt.Errorf("pipeline: %s pixel (%d, %d): %w", p, x, y, err)
			}
		}
	}
	return buf.EncodePNG(w)
}
