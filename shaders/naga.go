package shaders

import (
	"encoding/binary"
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/terramine/shading/internal/cache"
)

// spirvCache holds compiled programs by name. Embedded sources never
// change, so entries never go stale.
var spirvCache = cache.New[string, []uint32](16)

// Global is a module-scope variable as naga reports it.
type Global struct {
	Name string

	// Space is the address space: "uniform", "storage", "private",
	// "workgroup" or "handle" (textures and samplers).
	Space string

	Kind ResourceKind

	// Bound reports whether the variable has @group and @binding
	// attributes. Group and Binding are NoGroup otherwise.
	Bound   bool
	Group   int
	Binding int
}

// EntryPoint is the located interface of one entry point. Struct
// arguments and results are flattened to their located members.
type EntryPoint struct {
	Name    string
	Stage   Stage
	Inputs  map[string]uint32
	Outputs map[string]uint32
}

// Reflection is what the naga front end reports about a WGSL module.
type Reflection struct {
	// Globals lists module-scope variables in declaration order.
	Globals []Global

	// EntryPoints lists entry points in declaration order.
	EntryPoints []EntryPoint
}

// ReflectWGSL parses and lowers WGSL source with naga.
func ReflectWGSL(src string) (*Reflection, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("shaders: parse WGSL: %w", err)
	}
	module, err := naga.Lower(ast)
	if err != nil {
		return nil, fmt.Errorf("shaders: lower WGSL: %w", err)
	}

	r := &Reflection{}
	for _, gv := range module.GlobalVariables {
		g := Global{
			Name:    gv.Name,
			Space:   spaceName(gv),
			Kind:    globalKind(module, gv),
			Group:   NoGroup,
			Binding: NoGroup,
		}
		if gv.Binding != nil {
			g.Bound = true
			g.Group = int(gv.Binding.Group)
			g.Binding = int(gv.Binding.Binding)
		}
		r.Globals = append(r.Globals, g)
	}

	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		fn := &ep.Function
		e := EntryPoint{
			Name:    ep.Name,
			Inputs:  map[string]uint32{},
			Outputs: map[string]uint32{},
		}
		switch ep.Stage {
		case ir.StageVertex:
			e.Stage = StageVertex
		case ir.StageFragment:
			e.Stage = StageFragment
		}
		for _, arg := range fn.Arguments {
			collectLocated(module, arg.Name, arg.Type, arg.Binding, e.Inputs)
		}
		if fn.Result != nil {
			collectLocated(module, "result", fn.Result.Type, fn.Result.Binding, e.Outputs)
		}
		r.EntryPoints = append(r.EntryPoints, e)
	}
	return r, nil
}

func spaceName(gv ir.GlobalVariable) string {
	switch gv.Space {
	case ir.SpaceUniform:
		return "uniform"
	case ir.SpaceStorage:
		return "storage"
	case ir.SpacePrivate:
		return "private"
	case ir.SpaceWorkGroup:
		return "workgroup"
	default:
		return "handle"
	}
}

func globalKind(module *ir.Module, gv ir.GlobalVariable) ResourceKind {
	switch gv.Space {
	case ir.SpaceUniform, ir.SpaceStorage, ir.SpacePrivate, ir.SpaceWorkGroup:
		return ResourceUniform
	}
	if _, ok := module.Types[gv.Type].Inner.(ir.SamplerType); ok {
		return ResourceSampler
	}
	return ResourceTexture
}

// collectLocated records a location-bound value, or the location-bound
// members of an unbound struct value. Builtins are skipped.
func collectLocated(module *ir.Module, name string, typ ir.TypeHandle, binding *ir.Binding, dst map[string]uint32) {
	if binding != nil {
		if loc, ok := (*binding).(ir.LocationBinding); ok {
			dst[name] = uint32(loc.Location)
		}
		return
	}
	st, ok := module.Types[typ].Inner.(ir.StructType)
	if !ok {
		return
	}
	for _, m := range st.Members {
		if m.Binding == nil {
			continue
		}
		if loc, ok := (*m.Binding).(ir.LocationBinding); ok {
			dst[m.Name] = uint32(loc.Location)
		}
	}
}

// EntryPoint returns the entry point called name.
func (r *Reflection) EntryPoint(name string) (*EntryPoint, bool) {
	for i := range r.EntryPoints {
		if r.EntryPoints[i].Name == name {
			return &r.EntryPoints[i], true
		}
	}
	return nil, false
}

// Layout assembles the binding layout of a program made of the given
// entry points. Either name may be empty for a single-stage program.
// Inputs come from the first stage, outputs from the last, and resources
// are the bound globals.
func (r *Reflection) Layout(vertexEntry, fragmentEntry string) (*Layout, error) {
	first, last := vertexEntry, fragmentEntry
	if first == "" {
		first = fragmentEntry
	}
	if last == "" {
		last = vertexEntry
	}

	in, ok := r.EntryPoint(first)
	if !ok {
		return nil, fmt.Errorf("%w: entry point %q not found", ErrBindingMismatch, first)
	}
	out, ok := r.EntryPoint(last)
	if !ok {
		return nil, fmt.Errorf("%w: entry point %q not found", ErrBindingMismatch, last)
	}

	l := newLayout()
	maps.Copy(l.Inputs, in.Inputs)
	maps.Copy(l.Outputs, out.Outputs)
	for _, g := range r.Globals {
		if !g.Bound {
			continue
		}
		l.Resources = append(l.Resources, Resource{
			Name:    g.Name,
			Group:   g.Group,
			Binding: g.Binding,
			Kind:    g.Kind,
		})
	}
	return l, nil
}

// Reflect runs ReflectWGSL on a WGSL program and checks that its entry
// points exist and every resource in its contract is a module-scope
// variable naga knows about. Validate compares slots and locations.
func (p *Program) Reflect() (*Reflection, error) {
	if p.Language != WGSL {
		return nil, fmt.Errorf("%w: %s", ErrNotWGSL, p.Name)
	}
	r, err := ReflectWGSL(p.source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}

	for _, name := range []string{p.VertexEntry, p.FragmentEntry} {
		if name == "" {
			continue
		}
		if _, ok := r.EntryPoint(name); !ok {
			return nil, fmt.Errorf("%w: %s: entry point %q not found by naga", ErrBindingMismatch, p.Name, name)
		}
	}

	known := make(map[string]bool, len(r.Globals))
	for _, g := range r.Globals {
		known[g.Name] = true
	}
	for _, res := range p.Resources {
		if !known[res.Name] {
			return nil, fmt.Errorf("%w: %s: resource %q not found by naga", ErrBindingMismatch, p.Name, res.Name)
		}
	}
	return r, nil
}

// CompileSPIRV compiles WGSL source to SPIR-V and returns the binary as
// little-endian 32-bit words.
func CompileSPIRV(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("shaders: compile WGSL: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shaders: SPIR-V size %d is not a multiple of 4", len(spirvBytes))
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// CompileSPIRV compiles a WGSL program to SPIR-V words. Results are
// cached per program; the returned slice is the caller's to modify.
func (p *Program) CompileSPIRV() ([]uint32, error) {
	if p.Language != WGSL {
		return nil, fmt.Errorf("%w: %s", ErrNotWGSL, p.Name)
	}
	words, err := spirvCache.GetOrCreate(p.Name, func() ([]uint32, error) {
		return CompileSPIRV(p.source)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	return slices.Clone(words), nil
}

// SPIRVBytes encodes words back to the little-endian byte form used by
// .spv files.
func SPIRVBytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}
