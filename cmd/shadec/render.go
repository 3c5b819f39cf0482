package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	stdimage "image"
	"image/color"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/terramine/shading"
	"github.com/terramine/shading/internal/image"
	"github.com/terramine/shading/pipeline"
)

type renderFlags struct {
	program string
	time    float64
	size    int
	scale   int
	atlas   string
	normal  string
	mode    string
	linear  bool
	color   string
	workers int
	output  string
}

func runRender(args []string) error {
	var f renderFlags
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	fs.StringVar(&f.program, "program", "pulse", "sprite, pulse, color_cycle or surface")
	fs.Float64Var(&f.time, "time", 0, "time uniform in seconds")
	fs.IntVar(&f.size, "size", 256, "target width and height")
	fs.IntVar(&f.scale, "scale", 1, "upscale the output by this factor")
	fs.StringVar(&f.atlas, "atlas", "", "albedo/sprite texture (default: checkerboard)")
	fs.StringVar(&f.normal, "normal", "", "normal map texture (default: flat)")
	fs.StringVar(&f.mode, "mode", "standard", "surface program mode: standard or shadow")
	fs.BoolVar(&f.linear, "linear", false, "sample textures with linear filtering")
	fs.StringVar(&f.color, "color", "0.2,0.3,0.4", "base color for color_cycle")
	fs.IntVar(&f.workers, "workers", 0, "shading goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&f.output, "o", "out.png", "output PNG file")
	_ = fs.Parse(args)

	if f.scale < 1 {
		return fmt.Errorf("invalid -scale %d", f.scale)
	}

	p := pipeline.New(pipeline.WithWorkers(f.workers))
	defer p.Close()

	ctx := context.Background()
	switch f.program {
	case "sprite", "pulse", "color_cycle":
		return renderColor(ctx, p, &f)
	case "surface":
		return renderSurface(ctx, p, &f)
	default:
		return fmt.Errorf("program %q cannot be rendered on the CPU", f.program)
	}
}

func renderColor(ctx context.Context, p *pipeline.Pipeline, f *renderFlags) error {
	target, err := pipeline.NewColorTarget(f.size, f.size)
	if err != nil {
		return err
	}
	target.Clear(pipeline.DefaultClearColor)

	mesh := pipeline.FullScreenQuad()
	var (
		vs pipeline.VertexStage
		fs pipeline.FragmentStage
	)
	switch f.program {
	case "sprite", "pulse":
		tex, err := loadTexture(f.atlas, f.linear, checkerboard(8))
		if err != nil {
			return err
		}
		vs, fs = pipeline.SpriteStage, pipeline.TexturedStage(tex)
		if f.program == "pulse" {
			vs = pipeline.PulseStage(float32(f.time))
		}
	case "color_cycle":
		base, err := parseColor(f.color)
		if err != nil {
			return err
		}
		base.W = float32(f.time)
		mesh = mesh.WithColor(base)
		vs, fs = pipeline.SpriteStage, pipeline.ColorCycleStage
	}

	stats, err := p.DrawColor(ctx, target, mesh, vs, fs)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := target.EncodePNG(&buf); err != nil {
		return err
	}
	if err := savePNG(buf.Bytes(), f.output, f.scale); err != nil {
		return err
	}
	log.Printf("%s: %d fragments written to %s", f.program, stats.Written, f.output)
	return nil
}

func renderSurface(ctx context.Context, p *pipeline.Pipeline, f *renderFlags) error {
	gbuf, err := pipeline.NewGBuffer(f.size, f.size)
	if err != nil {
		return err
	}

	mode, err := shading.ParseShadingMode(f.mode)
	if err != nil {
		return err
	}
	shader := &shading.SurfaceShader{Mode: mode}
	if mode == shading.StandardMode {
		if shader.Atlas, err = loadTexture(f.atlas, f.linear, checkerboard(8)); err != nil {
			return err
		}
		flat := shading.Solid(shading.V4(0.5, 0.5, 1, 1))
		if shader.NormalMap, err = loadTexture(f.normal, f.linear, flat); err != nil {
			return err
		}
	}

	stats, err := p.DrawSurface(ctx, gbuf, pipeline.FullScreenQuad(), pipeline.SpriteStage, shader)
	if err != nil {
		return err
	}

	ext := filepath.Ext(f.output)
	stem := strings.TrimSuffix(f.output, ext)
	for _, plane := range pipeline.Planes {
		var buf bytes.Buffer
		if err := gbuf.EncodePNG(plane, &buf); err != nil {
			return err
		}
		path := fmt.Sprintf("%s_%s%s", stem, plane, ext)
		if err := savePNG(buf.Bytes(), path, f.scale); err != nil {
			return err
		}
	}
	log.Printf("surface (%s): %d written, %d discarded, planes written to %s_*%s",
		shader.Mode, stats.Written, stats.Discarded, stem, ext)
	return nil
}

// savePNG writes encoded PNG data to path, upscaled by scale with
// nearest-neighbor filtering.
func savePNG(data []byte, path string, scale int) error {
	buf, err := image.LoadImageFromBytes(data)
	if err != nil {
		return err
	}
	if scale > 1 {
		buf, err = image.Resize(buf, buf.Width()*scale, buf.Height()*scale, image.InterpNearest)
		if err != nil {
			return err
		}
	}
	return buf.SavePNG(path)
}

// loadTexture loads path, or returns fallback when path is empty.
func loadTexture(path string, linear bool, fallback shading.Sampler) (shading.Sampler, error) {
	if path == "" {
		return fallback, nil
	}
	filter := shading.FilterNearest
	if linear {
		filter = shading.FilterLinear
	}
	return shading.LoadTexture(path, shading.WithFilter(filter))
}

// checkerboard returns an n x n checker texture with opaque white and
// transparent black cells. The transparent cells exercise discard.
func checkerboard(n int) shading.Sampler {
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, n, n))
	for y := range n {
		for x := range n {
			c := color.NRGBA{R: 0xE0, G: 0x70, B: 0x30, A: 0xFF}
			if (x+y)%2 == 1 {
				c = color.NRGBA{}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return shading.NewTexture(img)
}

func parseColor(s string) (shading.Vec4, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return shading.Vec4{}, fmt.Errorf("color %q: want r,g,b", s)
	}
	var rgb [3]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return shading.Vec4{}, fmt.Errorf("color %q: %w", s, err)
		}
		rgb[i] = float32(v)
	}
	return shading.V4(rgb[0], rgb[1], rgb[2], 0), nil
}
