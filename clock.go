package shading

import "time"

// Clock produces the time uniform fed to animated programs.
// Tick is expected once per frame; Clock is not safe for concurrent use.
type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time
	delta time.Duration
}

// NewClock returns a clock that starts now.
func NewClock() *Clock {
	return newClockWithSource(time.Now)
}

func newClockWithSource(now func() time.Time) *Clock {
	t := now()
	return &Clock{now: now, start: t, last: t}
}

// Tick advances the clock and returns the seconds elapsed since it started.
func (c *Clock) Tick() float32 {
	t := c.now()
	c.delta = t.Sub(c.last)
	c.last = t
	return c.Time()
}

// Time returns the seconds between the start and the last Tick.
func (c *Clock) Time() float32 {
	return float32(c.last.Sub(c.start).Seconds())
}

// Delta returns the duration between the last two ticks.
func (c *Clock) Delta() time.Duration {
	return c.delta
}

// FPS returns the frame rate implied by Delta, or 0 before the first tick.
func (c *Clock) FPS() float64 {
	if c.delta <= 0 {
		return 0
	}
	return 1 / c.delta.Seconds()
}
