package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunRenderSurfaceModes(t *testing.T) {
	for _, mode := range []string{"standard", "shadow"} {
		t.Run(mode, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "gbuf.png")
			err := runRender([]string{"-program", "surface", "-mode", mode, "-size", "8", "-workers", "2", "-o", out})
			if err != nil {
				t.Fatalf("runRender(-mode %s) = %v", mode, err)
			}
			for _, plane := range []string{"albedo", "normal", "position"} {
				path := filepath.Join(filepath.Dir(out), "gbuf_"+plane+".png")
				if _, err := os.Stat(path); err != nil {
					t.Errorf("plane %s: %v", plane, err)
				}
			}
		})
	}
}

func TestRunRenderUnknownMode(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gbuf.png")
	if err := runRender([]string{"-program", "surface", "-mode", "bogus", "-size", "8", "-o", out}); err == nil {
		t.Error("runRender(-mode bogus) succeeded, want error")
	}
}
