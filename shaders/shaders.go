// Package shaders embeds the GPU programs and describes the binding
// contract each one expects from its host: attribute locations, resource
// slots and output locations.
//
// Three programs are written in GLSL 4.10 (sprite, surface, color_cycle)
// and two in WGSL (pulse, and surface_gpu, the WGSL port of the surface
// program used by the GPU pipeline). The contracts are checked against the
// sources by Validate so a host can rely on them when building pipeline
// state.
package shaders

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/gogpu/gputypes"
)

// Embedded shader sources.

//go:embed sprite.vert
var spriteSource string

//go:embed surface.frag
var surfaceSource string

//go:embed color_cycle.frag
var colorCycleSource string

//go:embed pulse.wgsl
var pulseSource string

//go:embed surface.wgsl
var surfaceGPUSource string

// Program and contract errors.
var (
	// ErrUnknownProgram is returned by Lookup for a name with no program.
	ErrUnknownProgram = errors.New("shaders: unknown program")

	// ErrNotWGSL is returned when a WGSL-only operation gets a GLSL program.
	ErrNotWGSL = errors.New("shaders: program is not WGSL")

	// ErrBindingMismatch is returned when a source disagrees with its contract.
	ErrBindingMismatch = errors.New("shaders: binding contract mismatch")
)

// Language identifies the shading language of a program.
type Language uint8

const (
	// GLSL is OpenGL Shading Language 4.10 core.
	GLSL Language = iota

	// WGSL is the WebGPU Shading Language.
	WGSL
)

// String returns a string representation of the language.
func (l Language) String() string {
	switch l {
	case GLSL:
		return "GLSL"
	case WGSL:
		return "WGSL"
	default:
		return "Unknown"
	}
}

// Stage is a set of pipeline stages implemented by a program.
type Stage uint8

const (
	// StageVertex marks a vertex stage.
	StageVertex Stage = 1 << iota

	// StageFragment marks a fragment stage.
	StageFragment
)

// Has reports whether s includes all stages in o.
func (s Stage) Has(o Stage) bool {
	return s&o == o
}

// String returns a string representation of the stage set.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageVertex | StageFragment:
		return "vertex+fragment"
	default:
		return "none"
	}
}

// ResourceKind is the type of a bound resource.
type ResourceKind uint8

const (
	// ResourceUniform is a uniform value or uniform buffer.
	ResourceUniform ResourceKind = iota

	// ResourceTexture is a sampled 2D texture. In GLSL it is a combined
	// sampler2D.
	ResourceTexture

	// ResourceSampler is a separate sampler object (WGSL only).
	ResourceSampler
)

// String returns a string representation of the kind.
func (k ResourceKind) String() string {
	switch k {
	case ResourceUniform:
		return "uniform"
	case ResourceTexture:
		return "texture"
	case ResourceSampler:
		return "sampler"
	default:
		return "unknown"
	}
}

// NoGroup marks GLSL resources, which are matched by name rather than slot.
const NoGroup = -1

// Attribute is a located input of the first stage of a program: a vertex
// attribute, or an interpolated varying for fragment-only programs.
type Attribute struct {
	Name     string
	Location uint32
	Format   gputypes.VertexFormat
}

// Resource is a uniform, texture or sampler binding.
type Resource struct {
	Name    string
	Group   int
	Binding int
	Kind    ResourceKind
}

// Output is a located output of the last stage of a program.
type Output struct {
	Name     string
	Location uint32
	Format   gputypes.TextureFormat
}

// Program describes one embedded shader program and its binding contract.
type Program struct {
	Name          string
	File          string
	Language      Language
	Stages        Stage
	VertexEntry   string
	FragmentEntry string
	Inputs        []Attribute
	Resources     []Resource
	Outputs       []Output

	source string
}

// Source returns the embedded source text.
func (p *Program) Source() string {
	return p.source
}

// Resource returns the resource named name.
func (p *Program) Resource(name string) (Resource, bool) {
	for _, r := range p.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}

// Groups returns the distinct bind group indices used by the program in
// ascending order. GLSL programs return nil.
func (p *Program) Groups() []int {
	seen := map[int]bool{}
	var groups []int
	for _, r := range p.Resources {
		if r.Group == NoGroup || seen[r.Group] {
			continue
		}
		seen[r.Group] = true
		groups = append(groups, r.Group)
	}
	sort.Ints(groups)
	return groups
}

// Color target formats used by the contracts.
const (
	colorFormat   = gputypes.TextureFormatRGBA8Unorm
	gbufferFormat = gputypes.TextureFormatRGBA16Float
)

var programs = []*Program{
	{
		Name:        "sprite",
		File:        "sprite.vert",
		Language:    GLSL,
		Stages:      StageVertex,
		VertexEntry: "main",
		Inputs: []Attribute{
			{Name: "position", Location: 0, Format: gputypes.VertexFormatFloat32x2},
			{Name: "texture_coords", Location: 1, Format: gputypes.VertexFormatFloat32x2},
		},
		Outputs: []Output{
			{Name: "v_tex_coords", Location: 0},
		},
		source: spriteSource,
	},
	{
		Name:          "surface",
		File:          "surface.frag",
		Language:      GLSL,
		Stages:        StageFragment,
		FragmentEntry: "main",
		Inputs: []Attribute{
			{Name: "v_tex_coords", Location: 0, Format: gputypes.VertexFormatFloat32x2},
			{Name: "v_position", Location: 1, Format: gputypes.VertexFormatFloat32x3},
			// mat3: occupies locations 2, 3 and 4, one column each.
			{Name: "v_tbn", Location: 2, Format: gputypes.VertexFormatFloat32x3},
		},
		Resources: []Resource{
			{Name: "texture_atlas", Group: NoGroup, Binding: NoGroup, Kind: ResourceTexture},
			{Name: "normal_atlas", Group: NoGroup, Binding: NoGroup, Kind: ResourceTexture},
			{Name: "is_shadow_pass", Group: NoGroup, Binding: NoGroup, Kind: ResourceUniform},
		},
		Outputs: []Output{
			{Name: "o_albedo", Location: 0, Format: gbufferFormat},
			{Name: "o_normal", Location: 1, Format: gbufferFormat},
			{Name: "o_position", Location: 2, Format: gbufferFormat},
		},
		source: surfaceSource,
	},
	{
		Name:          "color_cycle",
		File:          "color_cycle.frag",
		Language:      GLSL,
		Stages:        StageFragment,
		FragmentEntry: "main",
		Inputs: []Attribute{
			{Name: "v_color_time", Location: 0, Format: gputypes.VertexFormatFloat32x4},
		},
		Outputs: []Output{
			{Name: "color", Location: 0, Format: colorFormat},
		},
		source: colorCycleSource,
	},
	{
		Name:          "pulse",
		File:          "pulse.wgsl",
		Language:      WGSL,
		Stages:        StageVertex | StageFragment,
		VertexEntry:   "vs_main",
		FragmentEntry: "fs_main",
		Inputs: []Attribute{
			{Name: "position", Location: 0, Format: gputypes.VertexFormatFloat32x2},
			{Name: "tex_coords", Location: 1, Format: gputypes.VertexFormatFloat32x2},
		},
		Resources: []Resource{
			{Name: "t_sprite", Group: 0, Binding: 0, Kind: ResourceTexture},
			{Name: "s_sprite", Group: 0, Binding: 1, Kind: ResourceSampler},
			{Name: "globals", Group: 1, Binding: 0, Kind: ResourceUniform},
		},
		Outputs: []Output{
			{Name: "color", Location: 0, Format: colorFormat},
		},
		source: pulseSource,
	},
	{
		Name:          "surface_gpu",
		File:          "surface.wgsl",
		Language:      WGSL,
		Stages:        StageVertex | StageFragment,
		VertexEntry:   "vs_main",
		FragmentEntry: "fs_main",
		Inputs: []Attribute{
			{Name: "position", Location: 0, Format: gputypes.VertexFormatFloat32x3},
			{Name: "tex_coords", Location: 1, Format: gputypes.VertexFormatFloat32x2},
			{Name: "tangent", Location: 2, Format: gputypes.VertexFormatFloat32x3},
			{Name: "bitangent", Location: 3, Format: gputypes.VertexFormatFloat32x3},
			{Name: "normal", Location: 4, Format: gputypes.VertexFormatFloat32x3},
		},
		Resources: []Resource{
			{Name: "t_atlas", Group: 0, Binding: 0, Kind: ResourceTexture},
			{Name: "s_atlas", Group: 0, Binding: 1, Kind: ResourceSampler},
			{Name: "t_normal", Group: 0, Binding: 2, Kind: ResourceTexture},
			{Name: "s_normal", Group: 0, Binding: 3, Kind: ResourceSampler},
			{Name: "surface", Group: 1, Binding: 0, Kind: ResourceUniform},
		},
		Outputs: []Output{
			{Name: "albedo", Location: 0, Format: gbufferFormat},
			{Name: "normal", Location: 1, Format: gbufferFormat},
			{Name: "position", Location: 2, Format: gbufferFormat},
		},
		source: surfaceGPUSource,
	},
}

// All returns every embedded program in a stable order.
func All() []*Program {
	out := make([]*Program, len(programs))
	copy(out, programs)
	return out
}

// Lookup returns the program with the given name.
func Lookup(name string) (*Program, error) {
	for _, p := range programs {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProgram, name)
}
