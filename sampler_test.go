package shading

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// checker2 is a 2x2 image: red, green / blue, transparent.
func checker2() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{})
	return img
}

func TestTextureNearest(t *testing.T) {
	tex := NewTexture(checker2())

	tests := []struct {
		uv   Vec2
		want Vec4
	}{
		{V2(0.25, 0.25), V4(1, 0, 0, 1)},
		{V2(0.75, 0.25), V4(0, 1, 0, 1)},
		{V2(0.25, 0.75), V4(0, 0, 1, 1)},
		{V2(0.75, 0.75), V4(0, 0, 0, 0)},
		{V2(-3, 0.25), V4(1, 0, 0, 1)}, // clamp
	}
	for _, tt := range tests {
		if got := tex.Sample(tt.uv); got != tt.want {
			t.Errorf("Sample(%v) = %v, want %v", tt.uv, got, tt.want)
		}
	}

	if w, h := tex.Size(); w != 2 || h != 2 {
		t.Errorf("Size() = %dx%d, want 2x2", w, h)
	}
}

func TestTextureRepeatAndLinear(t *testing.T) {
	rep := NewTexture(checker2(), WithAddressMode(AddressRepeat))
	if got := rep.Sample(V2(1.75, 0.25)); got != V4(0, 1, 0, 1) {
		t.Errorf("repeat Sample = %v, want green", got)
	}

	mir := NewTexture(checker2(), WithAddressMode(AddressMirrorRepeat))
	if got := mir.Sample(V2(1.25, 0.25)); got != V4(0, 1, 0, 1) {
		t.Errorf("mirror Sample = %v, want green", got)
	}

	lin := NewTexture(checker2(), WithFilter(FilterLinear))
	got := lin.Sample(V2(0.5, 0.25))
	if math.Abs(float64(got.X-0.5)) > 1e-6 || math.Abs(float64(got.Y-0.5)) > 1e-6 {
		t.Errorf("linear Sample between red and green = %v, want (0.5, 0.5, 0, 1)", got)
	}
}

func TestTextureConcurrentSample(t *testing.T) {
	tex := NewTexture(checker2(), WithFilter(FilterLinear))

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 100 {
				_ = tex.Sample(V2(float32(i)/16, float32(j)/100))
			}
		}(i)
	}
	wg.Wait()
}

func TestLoadAndDecodeTexture(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker2()); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	tex, err := DecodeTexture(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeTexture: %v", err)
	}
	if got := tex.Sample(V2(0.25, 0.75)); got != V4(0, 0, 1, 1) {
		t.Errorf("decoded Sample = %v, want blue", got)
	}

	path := filepath.Join(t.TempDir(), "atlas.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	tex, err = LoadTexture(path, WithFilter(FilterNearest))
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if got := tex.Sample(V2(0.75, 0.25)); got != V4(0, 1, 0, 1) {
		t.Errorf("loaded Sample = %v, want green", got)
	}

	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSolidSampler(t *testing.T) {
	s := Solid(V4(0.1, 0.2, 0.3, 0.4))
	if got := s.Sample(V2(9, -9)); got != V4(0.1, 0.2, 0.3, 0.4) {
		t.Errorf("Solid.Sample = %v", got)
	}
}
