package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/terramine/shading"
)

// ClearColor is shading.DefaultClearColor as a GPU clear value.
var ClearColor = gputypes.Color{
	R: float64(shading.DefaultClearColor.X),
	G: float64(shading.DefaultClearColor.Y),
	B: float64(shading.DefaultClearColor.Z),
	A: float64(shading.DefaultClearColor.W),
}

// ClearPassDescriptor returns a render pass that clears each view to
// ClearColor and stores the result.
func ClearPassDescriptor(views ...hal.TextureView) *hal.RenderPassDescriptor {
	attachments := make([]hal.RenderPassColorAttachment, len(views))
	for i, v := range views {
		attachments[i] = hal.RenderPassColorAttachment{
			View:       v,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: ClearColor,
		}
	}
	return &hal.RenderPassDescriptor{
		Label:            "clear_pass",
		ColorAttachments: attachments,
	}
}

// Target is a render attachment texture and its view.
type Target struct {
	Texture hal.Texture
	View    hal.TextureView
	Format  gputypes.TextureFormat
}

// NewTargets creates one render attachment per program output, in
// location order, each width x height.
func NewTargets(device hal.Device, pp *ProgramPipeline, width, height uint32) ([]Target, error) {
	size := hal.Extent3D{
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: 1,
	}

	outputs := pp.program.Outputs
	targets := make([]Target, len(outputs))
	for _, out := range outputs {
		tex, err := device.CreateTexture(&hal.TextureDescriptor{
			Label:         pp.program.Name + "_" + out.Name,
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        out.Format,
			Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
		})
		if err != nil {
			DestroyTargets(device, targets)
			return nil, fmt.Errorf("create %s target: %w", out.Name, err)
		}
		view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
			Label: pp.program.Name + "_" + out.Name + "_view",
		})
		if err != nil {
			device.DestroyTexture(tex)
			DestroyTargets(device, targets)
			return nil, fmt.Errorf("create %s target view: %w", out.Name, err)
		}
		targets[out.Location] = Target{Texture: tex, View: view, Format: out.Format}
	}
	return targets, nil
}

// Views returns the views of targets in order.
func Views(targets []Target) []hal.TextureView {
	views := make([]hal.TextureView, len(targets))
	for i, t := range targets {
		views[i] = t.View
	}
	return views
}

// DestroyTargets releases targets created by NewTargets.
func DestroyTargets(device hal.Device, targets []Target) {
	for i := len(targets) - 1; i >= 0; i-- {
		if targets[i].View != nil {
			device.DestroyTextureView(targets[i].View)
		}
		if targets[i].Texture != nil {
			device.DestroyTexture(targets[i].Texture)
		}
	}
}
