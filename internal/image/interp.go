package image

import "math"

// InterpolationMode defines how texels are filtered when sampling or resizing.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest texel.
	InterpNearest InterpolationMode = iota

	// InterpBilinear interpolates between the 4 neighboring texels.
	InterpBilinear

	// InterpBicubic uses Catmull-Rom over a 4x4 neighborhood.
	// Only Resize supports it; Sample treats it as bilinear.
	InterpBicubic
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	case InterpBicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// AddressMode defines how texel coordinates outside the image are resolved.
type AddressMode uint8

const (
	// AddressClampToEdge clamps coordinates to the edge texel.
	AddressClampToEdge AddressMode = iota

	// AddressRepeat wraps coordinates, tiling the image.
	AddressRepeat

	// AddressMirrorRepeat wraps coordinates, flipping every other tile.
	AddressMirrorRepeat
)

// String returns a string representation of the address mode.
func (m AddressMode) String() string {
	switch m {
	case AddressClampToEdge:
		return "ClampToEdge"
	case AddressRepeat:
		return "Repeat"
	case AddressMirrorRepeat:
		return "MirrorRepeat"
	default:
		return "Unknown"
	}
}

// resolve maps an integer texel coordinate into [0, size).
func (m AddressMode) resolve(i, size int) int {
	switch m {
	case AddressRepeat:
		i %= size
		if i < 0 {
			i += size
		}
		return i
	case AddressMirrorRepeat:
		period := 2 * size
		i %= period
		if i < 0 {
			i += period
		}
		if i >= size {
			i = period - 1 - i
		}
		return i
	default:
		return clamp(i, 0, size-1)
	}
}

// Sample samples the image at normalized coordinates (u, v) and returns
// r, g, b, a in [0, 1]. (0,0) is the top-left corner of the first texel.
func Sample(img *ImageBuf, u, v float32, mode InterpolationMode, addr AddressMode) [4]float32 {
	if mode == InterpNearest {
		return SampleNearest(img, u, v, addr)
	}
	return SampleBilinear(img, u, v, addr)
}

// SampleNearest performs nearest-neighbor sampling at normalized coordinates.
func SampleNearest(img *ImageBuf, u, v float32, addr AddressMode) [4]float32 {
	w, h := img.Bounds()
	x := addr.resolve(int(math.Floor(float64(u)*float64(w))), w)
	y := addr.resolve(int(math.Floor(float64(v)*float64(h))), h)
	return texel(img, x, y)
}

// SampleBilinear performs bilinear interpolation at normalized coordinates.
// Texel centers sit at half-integer coordinates, as on the GPU.
func SampleBilinear(img *ImageBuf, u, v float32, addr AddressMode) [4]float32 {
	w, h := img.Bounds()

	fx := float64(u)*float64(w) - 0.5
	fy := float64(v)*float64(h) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := float32(fx - float64(x0))
	ty := float32(fy - float64(y0))

	x1 := addr.resolve(x0+1, w)
	y1 := addr.resolve(y0+1, h)
	x0 = addr.resolve(x0, w)
	y0 = addr.resolve(y0, h)

	c00 := texel(img, x0, y0)
	c10 := texel(img, x1, y0)
	c01 := texel(img, x0, y1)
	c11 := texel(img, x1, y1)

	var out [4]float32
	for i := range out {
		out[i] = lerp2D(c00[i], c10[i], c01[i], c11[i], tx, ty)
	}
	return out
}

// texel reads one texel as normalized floats.
func texel(img *ImageBuf, x, y int) [4]float32 {
	r, g, b, a := img.GetRGBA(x, y)
	return [4]float32{
		float32(r) / 255,
		float32(g) / 255,
		float32(b) / 255,
		float32(a) / 255,
	}
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float32) float32 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}
