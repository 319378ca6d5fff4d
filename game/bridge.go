package game

import (
	"github.com/lixenwraith/script-fighter/constant"
	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/engine"
)

// BridgeSystem is the lowest-priority system: it advances the frame
// counter and forwards the frame to the host before any gameplay
// system runs. Rendering goes through the session gate, so turning
// drawing off never touches update logic
type BridgeSystem struct {
	engine.BaseSystem

	host    Host
	session *Session

	frames       int64
	warnedNoHost bool
}

// NewBridgeSystem builds the bridge. host may be nil; the bridge then
// runs degraded, counting frames without forwarding them
func NewBridgeSystem(host Host, session *Session) (*BridgeSystem, error) {
	base, err := engine.NewBaseSystem("bridge", constant.PriorityBridge, engine.SystemConfig{})
	if err != nil {
		return nil, err
	}
	return &BridgeSystem{BaseSystem: base, host: host, session: session}, nil
}

// FrameCount returns the number of completed update cycles
func (b *BridgeSystem) FrameCount() int64 { return b.frames }

// Update increments the frame counter and forwards deltas to the host
func (b *BridgeSystem) Update(gameDelta, systemDelta float64) {
	b.frames++

	if b.host == nil {
		if !b.warnedNoHost {
			core.LogWarn("bridge running without a host, frames counted but not forwarded")
			b.warnedNoHost = true
		}
		return
	}
	b.host.Update(gameDelta, systemDelta)
}

// Render forwards the draw call unless the session render gate is off
func (b *BridgeSystem) Render() {
	if b.host == nil || !b.session.RenderEnabled() {
		return
	}
	b.host.Render()
}
