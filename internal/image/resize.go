package image

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Resize returns a copy of src scaled to width x height.
// InterpNearest keeps texel edges hard, which suits pixel-art atlases.
func Resize(src *ImageBuf, width, height int, mode InterpolationMode) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	var scaler xdraw.Scaler
	switch mode {
	case InterpNearest:
		scaler = xdraw.NearestNeighbor
	case InterpBicubic:
		scaler = xdraw.CatmullRom
	default:
		scaler = xdraw.ApproxBiLinear
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Bounds(), src.ToStdImage(), image.Rect(0, 0, src.width, src.height), xdraw.Src, nil)

	return &ImageBuf{data: dst.Pix, width: width, height: height}, nil
}
