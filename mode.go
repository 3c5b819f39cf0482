package shading

import (
	"fmt"
	"strings"
)

// ShadingMode selects which output set the surface shader produces.
// It mirrors the boolean is_shadow_pass uniform of the GPU program.
type ShadingMode uint8

const (
	// StandardMode samples the atlas and normal map and writes the full
	// G-buffer sample.
	StandardMode ShadingMode = iota

	// ShadowMode writes only the position; albedo and normal are zero.
	ShadowMode
)

// ModeFromFlag converts the GPU uniform flag into a ShadingMode.
func ModeFromFlag(shadowPass bool) ShadingMode {
	if shadowPass {
		return ShadowMode
	}
	return StandardMode
}

// Flag returns the value of the is_shadow_pass uniform for this mode.
func (m ShadingMode) Flag() bool {
	return m == ShadowMode
}

// String returns a string representation of the mode.
func (m ShadingMode) String() string {
	switch m {
	case StandardMode:
		return "standard"
	case ShadowMode:
		return "shadow"
	default:
		return fmt.Sprintf("ShadingMode(%d)", uint8(m))
	}
}

// ParseShadingMode parses "standard" or "shadow" (case-insensitive).
func ParseShadingMode(s string) (ShadingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "":
		return StandardMode, nil
	case "shadow":
		return ShadowMode, nil
	default:
		return StandardMode, fmt.Errorf("shading: unknown mode %q", s)
	}
}
