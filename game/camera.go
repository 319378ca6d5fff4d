package game

import (
	"math"

	"github.com/lixenwraith/script-fighter/constant"
	"github.com/lixenwraith/script-fighter/engine"
)

// CameraShakeSystem applies a decaying camera offset after Trigger.
// Offsets are absolute per frame, so the final frame of a shake writes
// (0, 0, 0) and the camera always comes to rest exactly centered
type CameraShakeSystem struct {
	engine.BaseSystem

	host Host

	trail     float64 // total shake duration in game seconds
	magnitude float64
	remaining float64
	phase     float64
}

// NewCameraShakeSystem builds the shake effect. trail is the decay
// window in seconds; non-positive values fall back to the default
func NewCameraShakeSystem(host Host, trail float64) (*CameraShakeSystem, error) {
	base, err := engine.NewBaseSystem("camera-shake", constant.PriorityCameraShake, engine.SystemConfig{})
	if err != nil {
		return nil, err
	}
	if trail <= 0 {
		trail = 0.8
	}
	return &CameraShakeSystem{
		BaseSystem: base,
		host:       host,
		trail:      trail,
		magnitude:  1.2,
	}, nil
}

// Trigger starts (or restarts) a shake at full magnitude
func (c *CameraShakeSystem) Trigger() {
	c.remaining = c.trail
}

// Active reports whether a shake is in progress
func (c *CameraShakeSystem) Active() bool { return c.remaining > 0 }

// Update decays the shake and writes the frame's camera offset
func (c *CameraShakeSystem) Update(gameDelta, systemDelta float64) {
	if c.host == nil || c.remaining <= 0 {
		return
	}

	c.remaining -= gameDelta
	c.phase += systemDelta * 40

	if c.remaining <= 0 {
		c.remaining = 0
		c.host.MoveCamera(0, 0, 0)
		return
	}

	amp := c.magnitude * (c.remaining / c.trail)
	c.host.MoveCamera(math.Sin(c.phase)*amp, math.Cos(c.phase*1.3)*amp*0.5, 0)
}
