package shaders

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Layout is the binding information found in a shader source.
type Layout struct {
	// Inputs maps located input names to their location.
	Inputs map[string]uint32

	// Outputs maps located output names to their location.
	Outputs map[string]uint32

	// Resources lists uniform, texture and sampler declarations.
	Resources []Resource
}

func newLayout() *Layout {
	return &Layout{
		Inputs:  map[string]uint32{},
		Outputs: map[string]uint32{},
	}
}

var (
	glslLocated = regexp.MustCompile(`layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*(in|out)\s+\w+\s+(\w+)\s*;`)
	glslUniform = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*;`)
)

// ScanGLSL extracts located inputs, located outputs and uniforms from GLSL
// source. Comments are not stripped. naga has no GLSL front end, so this is
// a textual scan of the declarations the programs use.
func ScanGLSL(src string) *Layout {
	l := newLayout()

	for _, m := range glslLocated.FindAllStringSubmatch(src, -1) {
		loc, _ := strconv.ParseUint(m[1], 10, 32)
		if m[2] == "in" {
			l.Inputs[m[3]] = uint32(loc)
		} else {
			l.Outputs[m[3]] = uint32(loc)
		}
	}

	for _, m := range glslUniform.FindAllStringSubmatch(src, -1) {
		kind := ResourceUniform
		if strings.HasPrefix(m[1], "sampler") {
			kind = ResourceTexture
		}
		l.Resources = append(l.Resources, Resource{
			Name:    m[2],
			Group:   NoGroup,
			Binding: NoGroup,
			Kind:    kind,
		})
	}

	return l
}

// Scan returns the layout of the program's source. GLSL sources are
// scanned textually; WGSL sources go through naga, with inputs taken from
// the first stage's entry point and outputs from the last stage's.
func (p *Program) Scan() (*Layout, error) {
	if p.Language != WGSL {
		return ScanGLSL(p.source), nil
	}
	r, err := ReflectWGSL(p.source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	return r.Layout(p.VertexEntry, p.FragmentEntry)
}

// Validate checks that every input, output and resource in the contract is
// declared in the source with the same location, group, binding and kind,
// and that the source declares nothing the contract leaves out.
func (p *Program) Validate() error {
	l, err := p.Scan()
	if err != nil {
		return err
	}

	var problems []string
	mismatch := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	checkLocated := func(what string, want map[string]uint32, got map[string]uint32) {
		for name, loc := range want {
			g, ok := got[name]
			switch {
			case !ok:
				mismatch("%s %q not declared", what, name)
			case g != loc:
				mismatch("%s %q at location %d, contract says %d", what, name, g, loc)
			}
		}
		for name := range got {
			if _, ok := want[name]; !ok {
				mismatch("%s %q missing from contract", what, name)
			}
		}
	}

	inputs := make(map[string]uint32, len(p.Inputs))
	for _, a := range p.Inputs {
		inputs[a.Name] = a.Location
	}
	outputs := make(map[string]uint32, len(p.Outputs))
	for _, o := range p.Outputs {
		outputs[o.Name] = o.Location
	}
	checkLocated("input", inputs, l.Inputs)
	checkLocated("output", outputs, l.Outputs)

	declared := make(map[string]Resource, len(l.Resources))
	for _, r := range l.Resources {
		declared[r.Name] = r
	}
	for _, want := range p.Resources {
		got, ok := declared[want.Name]
		if !ok {
			mismatch("resource %q not declared", want.Name)
			continue
		}
		if got != want {
			mismatch("resource %q declared as %s group %d binding %d, contract says %s group %d binding %d",
				want.Name, got.Kind, got.Group, got.Binding, want.Kind, want.Group, want.Binding)
		}
		delete(declared, want.Name)
	}
	for name := range declared {
		mismatch("resource %q missing from contract", name)
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s: %s", ErrBindingMismatch, p.Name, strings.Join(problems, "; "))
	}
	return nil
}
