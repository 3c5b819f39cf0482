package shading

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	c := newClockWithSource(func() time.Time { return now })

	if c.Time() != 0 || c.FPS() != 0 {
		t.Errorf("fresh clock: Time=%v FPS=%v, want 0, 0", c.Time(), c.FPS())
	}

	now = base.Add(500 * time.Millisecond)
	if got := c.Tick(); got != 0.5 {
		t.Errorf("Tick() = %v, want 0.5", got)
	}

	now = base.Add(520 * time.Millisecond)
	c.Tick()
	if c.Delta() != 20*time.Millisecond {
		t.Errorf("Delta() = %v, want 20ms", c.Delta())
	}
	if fps := c.FPS(); fps < 49.99 || fps > 50.01 {
		t.Errorf("FPS() = %v, want 50", fps)
	}
}

func TestNewClockStartsAtZero(t *testing.T) {
	c := NewClock()
	if c.Time() != 0 {
		t.Errorf("Time() = %v, want 0 before the first tick", c.Time())
	}
	if c.Tick() < 0 {
		t.Error("Tick() must not go negative")
	}
}
