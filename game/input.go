package game

import (
	"time"

	"github.com/lixenwraith/script-fighter/constant"
	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/engine"
	"github.com/lixenwraith/script-fighter/event"
)

// InputSystem drains the event queue once per update and maps keys to
// actions. It holds direct handles to the systems it drives; the
// coordinator wires them at construction, before anything is registered
type InputSystem struct {
	engine.BaseSystem

	queue   *event.Queue
	host    Host
	session *Session

	audio  *AudioSystem
	shake  *CameraShakeSystem
	reload func() error
}

// NewInputSystem builds the input system. The audio and shake handles
// are attached afterwards by the coordinator
func NewInputSystem(queue *event.Queue, host Host, session *Session) (*InputSystem, error) {
	base, err := engine.NewBaseSystem("input", constant.PriorityInput, engine.SystemConfig{})
	if err != nil {
		return nil, err
	}
	return &InputSystem{BaseSystem: base, queue: queue, host: host, session: session}, nil
}

// SetReloadFunc attaches the script reload entry point. Reloads then
// run inside the update phase, between system dispatches, so new
// registrations stay queued until the next cycle
func (in *InputSystem) SetReloadFunc(fn func() error) { in.reload = fn }

// Update consumes pending events and applies their actions
func (in *InputSystem) Update(gameDelta, systemDelta float64) {
	for _, ev := range in.queue.Consume() {
		switch ev.Type {
		case event.EventQuitRequested:
			in.session.RequestQuit()

		case event.EventReloadRequested:
			if in.reload == nil {
				continue
			}
			if err := in.reload(); err != nil {
				core.LogWarn("script reload failed, previous systems kept: %v", err)
			}

		case event.EventKeyPressed:
			key, _ := ev.Payload.(event.KeyPayload)
			in.handleKey(key)
		}
	}
}

func (in *InputSystem) handleKey(key event.KeyPayload) {
	if in.host == nil {
		return
	}

	// Any key leaves the attract screen
	if in.host.GameState() == string(core.StateAttract) {
		in.host.SetGameState(string(core.StateGame))
		in.chime(440)
		return
	}

	switch key.Rune {
	case ' ':
		paused := in.session.Clock.TogglePause()
		core.LogInfo("game clock paused=%v", paused)
	case 'r':
		on := in.session.ToggleRender()
		core.LogInfo("render gate=%v", on)
	case 'c':
		if in.shake != nil {
			in.shake.Trigger()
			in.chime(220)
		}
	case 'p':
		pos := in.host.PlayerPosition()
		in.host.CreateEntity(pos.X+2, pos.Y, pos.Z)
		in.chime(660)
	}
}

func (in *InputSystem) chime(freq float64) {
	if in.audio != nil {
		in.audio.QueueTone(freq, 80*time.Millisecond)
	}
}
