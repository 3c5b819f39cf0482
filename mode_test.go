package shading

import "testing"

func TestShadingModeFlag(t *testing.T) {
	if ModeFromFlag(true) != ShadowMode || ModeFromFlag(false) != StandardMode {
		t.Error("ModeFromFlag mismatch")
	}
	if !ShadowMode.Flag() || StandardMode.Flag() {
		t.Error("Flag mismatch")
	}
}

func TestParseShadingMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ShadingMode
		wantErr bool
	}{
		{"standard", StandardMode, false},
		{"SHADOW", ShadowMode, false},
		{" shadow ", ShadowMode, false},
		{"", StandardMode, false},
		{"deferred", StandardMode, true},
	}
	for _, tt := range tests {
		got, err := ParseShadingMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseShadingMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseShadingMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShadingModeString(t *testing.T) {
	if ShadowMode.String() != "shadow" || StandardMode.String() != "standard" {
		t.Error("unexpected mode names")
	}
	if ShadingMode(7).String() != "ShadingMode(7)" {
		t.Errorf("unknown mode = %q", ShadingMode(7).String())
	}
}
