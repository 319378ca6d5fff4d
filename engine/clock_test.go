package engine

import (
	"testing"
	"time"
)

// fakeNow returns a controllable clock source
func fakeNow() (func() time.Time, func(d time.Duration)) {
	current := time.Unix(1000, 0)
	now := func() time.Time { return current }
	advance := func(d time.Duration) { current = current.Add(d) }
	return now, advance
}

func TestTickReturnsElapsedSeconds(t *testing.T) {
	now, advance := fakeNow()
	c := newDualClockAt(now)

	advance(16 * time.Millisecond)
	game, system := c.Tick()

	if system != 0.016 {
		t.Errorf("expected systemDelta 0.016, got %v", system)
	}
	if game != system {
		t.Errorf("unpaused unit-scale clock should have equal deltas, got game=%v system=%v", game, system)
	}
}

func TestPauseZeroesGameDeltaOnly(t *testing.T) {
	now, advance := fakeNow()
	c := newDualClockAt(now)

	c.Pause()
	advance(100 * time.Millisecond)
	game, system := c.Tick()

	if game != 0 {
		t.Errorf("paused gameDelta should be 0, got %v", game)
	}
	if system != 0.1 {
		t.Errorf("systemDelta should keep advancing while paused, got %v", system)
	}

	c.Resume()
	advance(50 * time.Millisecond)
	game, _ = c.Tick()
	if game != 0.05 {
		t.Errorf("gameDelta after resume should be 0.05, got %v", game)
	}
}

func TestTimeScale(t *testing.T) {
	now, advance := fakeNow()
	c := newDualClockAt(now)

	c.SetTimeScale(2.0)
	advance(10 * time.Millisecond)
	game, system := c.Tick()

	if game != 0.02 {
		t.Errorf("expected scaled gameDelta 0.02, got %v", game)
	}
	if system != 0.01 {
		t.Errorf("systemDelta must ignore scale, got %v", system)
	}
}

func TestTimeScaleRejectsNonPositive(t *testing.T) {
	c := NewDualClock()

	c.SetTimeScale(0)
	c.SetTimeScale(-3)
	if c.TimeScale() != 1.0 {
		t.Errorf("non-positive scales should be ignored, got %v", c.TimeScale())
	}
}

func TestTogglePause(t *testing.T) {
	c := NewDualClock()

	if !c.TogglePause() {
		t.Errorf("first toggle should pause")
	}
	if !c.IsPaused() {
		t.Errorf("clock should report paused")
	}
	if c.TogglePause() {
		t.Errorf("second toggle should resume")
	}
}
