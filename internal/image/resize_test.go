package image

import (
	"errors"
	"testing"
)

func TestResizeNearestUpscale(t *testing.T) {
	src, _ := NewImageBuf(2, 1)
	_ = src.SetRGBA(0, 0, 255, 0, 0, 255)
	_ = src.SetRGBA(1, 0, 0, 0, 255, 255)

	dst, err := Resize(src, 4, 2, InterpNearest)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if dst.Width() != 4 || dst.Height() != 2 {
		t.Fatalf("size = %dx%d, want 4x2", dst.Width(), dst.Height())
	}

	for _, x := range []int{0, 1} {
		if r, _, b, _ := dst.GetRGBA(x, 1); r != 255 || b != 0 {
			t.Errorf("pixel %d = r%d b%d, want red", x, r, b)
		}
	}
	for _, x := range []int{2, 3} {
		if r, _, b, _ := dst.GetRGBA(x, 0); r != 0 || b != 255 {
			t.Errorf("pixel %d = r%d b%d, want blue", x, r, b)
		}
	}
}

func TestResizeSmoothKeepsSolidColor(t *testing.T) {
	src, _ := NewImageBuf(3, 3)
	src.Fill(40, 80, 120, 255)

	for _, mode := range []InterpolationMode{InterpBilinear, InterpBicubic} {
		dst, err := Resize(src, 7, 5, mode)
		if err != nil {
			t.Fatalf("Resize(%v): %v", mode, err)
		}
		r, g, b, a := dst.GetRGBA(3, 2)
		if !near8(r, 40) || !near8(g, 80) || !near8(b, 120) || !near8(a, 255) {
			t.Errorf("Resize(%v) center = (%d,%d,%d,%d), want about (40,80,120,255)", mode, r, g, b, a)
		}
	}
}

func TestResizeInvalid(t *testing.T) {
	src, _ := NewImageBuf(1, 1)
	if _, err := Resize(src, 0, 1, InterpNearest); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("error = %v, want ErrInvalidDimensions", err)
	}
}

// near8 allows one step of rounding difference.
func near8(got, want uint8) bool {
	d := int(got) - int(want)
	return d >= -1 && d <= 1
}
