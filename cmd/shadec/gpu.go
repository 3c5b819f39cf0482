package main

import (
	"flag"
	"log"

	"github.com/terramine/shading"
	"github.com/terramine/shading/internal/gpu"
	"github.com/terramine/shading/shaders"
)

func runGPU(args []string) error {
	fs := flag.NewFlagSet("gpu", flag.ExitOnError)
	backend := fs.String("backend", gpu.BackendNoop, "noop or vulkan")
	size := fs.Uint("size", 256, "render target width and height")
	shadow := fs.Bool("shadow", false, "set the surface program's shadow_pass uniform")
	_ = fs.Parse(args)
	mode := shading.ModeFromFlag(*shadow)

	dev, err := gpu.OpenDevice(*backend)
	if err != nil {
		return err
	}
	defer dev.Close()

	for _, p := range shaders.All() {
		if p.Language != shaders.WGSL {
			continue
		}
		if err := buildProgram(dev, p, uint32(*size), mode); err != nil {
			return err
		}
	}
	return nil
}

// buildProgram builds the pipeline, targets and uniforms of p, clears the
// targets and releases everything.
func buildProgram(dev *gpu.Device, p *shaders.Program, size uint32, mode shading.ShadingMode) error {
	pp, err := gpu.NewProgramPipeline(dev.Device, p)
	if err != nil {
		return err
	}
	defer pp.Destroy()

	targets, err := gpu.NewTargets(dev.Device, pp, size, size)
	if err != nil {
		return err
	}
	defer gpu.DestroyTargets(dev.Device, targets)

	var uniform []byte
	switch p.Name {
	case "pulse":
		uniform = gpu.EncodeGlobals(shading.NewClock().Tick())
	case "surface_gpu":
		uniform = gpu.EncodeSurface(gpu.IdentityViewProj, mode)
	}
	if uniform != nil {
		buf, err := gpu.NewUniformBuffer(dev.Device, dev.Queue, p.Name+"_uniforms", uniform)
		if err != nil {
			return err
		}
		defer dev.Device.DestroyBuffer(buf)
	}

	if err := gpu.ClearFrame(dev, targets); err != nil {
		return err
	}
	log.Printf("%s: pipeline on %s (%s), %d bind groups, %d targets, vertex stride %d",
		p.Name, dev.Adapter, dev.Backend, pp.BindGroupCount(), len(targets), pp.VertexStride())
	return nil
}
