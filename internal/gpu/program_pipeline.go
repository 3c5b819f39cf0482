package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/terramine/shading/shaders"
)

// ErrUnsupportedContract is returned when a program's contract cannot be
// expressed as pipeline state: a GLSL program, a gap in the bind group
// indices, or an attribute format with no known size.
var ErrUnsupportedContract = errors.New("gpu: unsupported binding contract")

// ProgramPipeline is a render pipeline and the layouts it was built with.
type ProgramPipeline struct {
	device  hal.Device
	program *shaders.Program

	shader       hal.ShaderModule
	groupLayouts []hal.BindGroupLayout
	pipeLayout   hal.PipelineLayout
	sampler      hal.Sampler
	pipeline     hal.RenderPipeline

	vertexStride uint64
}

// NewProgramPipeline builds the render pipeline for a WGSL program.
// Vertex attributes are packed into one interleaved buffer in contract
// order; every sampler slot is served by one linear clamp-to-edge sampler.
func NewProgramPipeline(device hal.Device, program *shaders.Program) (*ProgramPipeline, error) { //nolint:funlen // GPU pipeline descriptors are inherently verbose
	if program.Language != shaders.WGSL {
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedContract, program.Name, program.Language)
	}

	vertexLayout, stride, err := vertexBufferLayout(program.Inputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", program.Name, err)
	}
	groups, err := groupEntries(program)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", program.Name, err)
	}

	pp := &ProgramPipeline{
		device:       device,
		program:      program,
		vertexStride: stride,
	}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  program.Name + "_shader",
		Source: hal.ShaderSource{WGSL: program.Source()},
	})
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", program.Name, err)
	}
	pp.shader = shader

	for i, entries := range groups {
		layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%s_group%d_layout", program.Name, i),
			Entries: entries,
		})
		if err != nil {
			pp.Destroy()
			return nil, fmt.Errorf("create %s bind group layout %d: %w", program.Name, i, err)
		}
		pp.groupLayouts = append(pp.groupLayouts, layout)
	}

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            program.Name + "_pipe_layout",
		BindGroupLayouts: pp.groupLayouts,
	})
	if err != nil {
		pp.Destroy()
		return nil, fmt.Errorf("create %s pipeline layout: %w", program.Name, err)
	}
	pp.pipeLayout = pipeLayout

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        program.Name + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		pp.Destroy()
		return nil, fmt.Errorf("create %s sampler: %w", program.Name, err)
	}
	pp.sampler = sampler

	targets := make([]gputypes.ColorTargetState, len(program.Outputs))
	for _, out := range program.Outputs {
		if int(out.Location) >= len(targets) {
			pp.Destroy()
			return nil, fmt.Errorf("%w: %s output %q at location %d", ErrUnsupportedContract, program.Name, out.Name, out.Location)
		}
		targets[out.Location] = gputypes.ColorTargetState{
			Format:    out.Format,
			WriteMask: gputypes.ColorWriteMaskAll,
		}
	}

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  program.Name + "_pipeline",
		Layout: pp.pipeLayout,
		Vertex: hal.VertexState{
			Module:     pp.shader,
			EntryPoint: program.VertexEntry,
			Buffers:    vertexLayout,
		},
		Fragment: &hal.FragmentState{
			Module:     pp.shader,
			EntryPoint: program.FragmentEntry,
			Targets:    targets,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		pp.Destroy()
		return nil, fmt.Errorf("create %s render pipeline: %w", program.Name, err)
	}
	pp.pipeline = pipeline

	slogger().Debug("gpu: program pipeline created",
		"program", program.Name,
		"groups", len(pp.groupLayouts),
		"targets", len(targets),
		"vertex_stride", stride)
	return pp, nil
}

// vertexBufferLayout packs attrs into one interleaved buffer and returns
// the layout with its stride.
func vertexBufferLayout(attrs []shaders.Attribute) ([]gputypes.VertexBufferLayout, uint64, error) {
	var (
		offset     uint64
		attributes = make([]gputypes.VertexAttribute, 0, len(attrs))
	)
	for _, a := range attrs {
		size, ok := vertexFormatSize(a.Format)
		if !ok {
			return nil, 0, fmt.Errorf("%w: attribute %q has format %v", ErrUnsupportedContract, a.Name, a.Format)
		}
		attributes = append(attributes, gputypes.VertexAttribute{
			Format:         a.Format,
			Offset:         offset,
			ShaderLocation: a.Location,
		})
		offset += size
	}
	return []gputypes.VertexBufferLayout{{
		ArrayStride: offset,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attributes,
	}}, offset, nil
}

// vertexFormatSize returns the byte size of the float formats the
// contracts use.
func vertexFormatSize(f gputypes.VertexFormat) (uint64, bool) {
	switch f {
	case gputypes.VertexFormatFloat32:
		return 4, true
	case gputypes.VertexFormatFloat32x2:
		return 8, true
	case gputypes.VertexFormatFloat32x3:
		return 12, true
	case gputypes.VertexFormatFloat32x4:
		return 16, true
	default:
		return 0, false
	}
}

// groupEntries returns the bind group layout entries of each group, indexed
// by group. Groups must be numbered from 0 without gaps.
func groupEntries(p *shaders.Program) ([][]gputypes.BindGroupLayoutEntry, error) {
	groups := p.Groups()
	for i, g := range groups {
		if g != i {
			return nil, fmt.Errorf("%w: bind groups %v are not contiguous from 0", ErrUnsupportedContract, groups)
		}
	}

	entries := make([][]gputypes.BindGroupLayoutEntry, len(groups))
	for _, r := range p.Resources {
		e := gputypes.BindGroupLayoutEntry{Binding: uint32(r.Binding)}
		switch r.Kind {
		case shaders.ResourceUniform:
			e.Visibility = gputypes.ShaderStageVertex | gputypes.ShaderStageFragment
			e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
		case shaders.ResourceTexture:
			e.Visibility = gputypes.ShaderStageFragment
			e.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		case shaders.ResourceSampler:
			e.Visibility = gputypes.ShaderStageFragment
			e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
		}
		entries[r.Group] = append(entries[r.Group], e)
	}
	return entries, nil
}

// Program returns the program the pipeline was built from.
func (pp *ProgramPipeline) Program() *shaders.Program { return pp.program }

// Pipeline returns the render pipeline.
func (pp *ProgramPipeline) Pipeline() hal.RenderPipeline { return pp.pipeline }

// BindGroupLayout returns the layout of bind group i, or nil.
func (pp *ProgramPipeline) BindGroupLayout(i int) hal.BindGroupLayout {
	if i < 0 || i >= len(pp.groupLayouts) {
		return nil
	}
	return pp.groupLayouts[i]
}

// BindGroupCount returns the number of bind group layouts.
func (pp *ProgramPipeline) BindGroupCount() int { return len(pp.groupLayouts) }

// Sampler returns the sampler shared by every sampler slot.
func (pp *ProgramPipeline) Sampler() hal.Sampler { return pp.sampler }

// VertexStride returns the byte stride of the interleaved vertex buffer.
func (pp *ProgramPipeline) VertexStride() uint64 { return pp.vertexStride }

// Destroy releases all resources in reverse creation order. It is safe to
// call on a partially built pipeline and more than once.
func (pp *ProgramPipeline) Destroy() {
	if pp.device == nil {
		return
	}
	if pp.pipeline != nil {
		pp.device.DestroyRenderPipeline(pp.pipeline)
		pp.pipeline = nil
	}
	if pp.sampler != nil {
		pp.device.DestroySampler(pp.sampler)
		pp.sampler = nil
	}
	if pp.pipeLayout != nil {
		pp.device.DestroyPipelineLayout(pp.pipeLayout)
		pp.pipeLayout = nil
	}
	for i := len(pp.groupLayouts) - 1; i >= 0; i-- {
		pp.device.DestroyBindGroupLayout(pp.groupLayouts[i])
	}
	pp.groupLayouts = nil
	if pp.shader != nil {
		pp.device.DestroyShaderModule(pp.shader)
		pp.shader = nil
	}
}
