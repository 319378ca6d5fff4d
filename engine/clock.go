package engine

import "time"

// DualClock produces the per-frame (gameDelta, systemDelta) pair.
// Game time can be paused and scaled; system time always advances.
// Single consumer: the host frame loop calls Tick once per frame
type DualClock struct {
	now func() time.Time // injectable for tests

	lastTick  time.Time
	paused    bool
	timeScale float64
}

// NewDualClock creates a running clock with time scale 1
func NewDualClock() *DualClock {
	return newDualClockAt(time.Now)
}

func newDualClockAt(now func() time.Time) *DualClock {
	return &DualClock{
		now:       now,
		lastTick:  now(),
		timeScale: 1.0,
	}
}

// Tick returns seconds elapsed since the previous Tick.
// gameDelta is zero while paused and scaled otherwise; systemDelta is
// the raw elapsed wall time
func (c *DualClock) Tick() (gameDelta, systemDelta float64) {
	now := c.now()
	systemDelta = now.Sub(c.lastTick).Seconds()
	c.lastTick = now

	if c.paused {
		return 0, systemDelta
	}
	return systemDelta * c.timeScale, systemDelta
}

// Pause freezes game time. System time keeps advancing
func (c *DualClock) Pause() { c.paused = true }

// Resume continues game time advancement
func (c *DualClock) Resume() { c.paused = false }

// IsPaused reports the pause state
func (c *DualClock) IsPaused() bool { return c.paused }

// TogglePause flips the pause state and returns the new value
func (c *DualClock) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

// SetTimeScale adjusts game time speed. Values <= 0 are ignored
func (c *DualClock) SetTimeScale(scale float64) {
	if scale > 0 {
		c.timeScale = scale
	}
}

// TimeScale returns the current game time multiplier
func (c *DualClock) TimeScale() float64 { return c.timeScale }
