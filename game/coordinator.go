package game

import (
	"fmt"

	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/engine"
	"github.com/lixenwraith/script-fighter/event"
)

// Params carries the tunable knobs the coordinator forwards into the
// systems it builds
type Params struct {
	SpawnInterval int64   // frames between spawns
	ShakeTrail    float64 // shake decay window in seconds
	Seed          int64   // spawner randomness, 0 means time-based upstream
}

// Coordinator owns the built-in systems and wires their direct
// dependencies. Construction order is fixed: bridge first, then the
// systems that read its frame counter. Wiring happens here, by direct
// assignment, before anything touches the registry
type Coordinator struct {
	session *Session

	Bridge  *BridgeSystem
	Audio   *AudioSystem
	Input   *InputSystem
	Spawner *SpawnerSystem
	Mover   *MoverSystem
	Shake   *CameraShakeSystem
}

// NewCoordinator constructs and cross-wires the built-in system set
func NewCoordinator(host Host, player TonePlayer, queue *event.Queue, session *Session, p Params) (*Coordinator, error) {
	c := &Coordinator{session: session}

	var err error
	if c.Bridge, err = NewBridgeSystem(host, session); err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	if c.Audio, err = NewAudioSystem(player); err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	if c.Input, err = NewInputSystem(queue, host, session); err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	if c.Spawner, err = NewSpawnerSystem(host, c.Bridge, p.SpawnInterval, p.Seed); err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	if c.Mover, err = NewMoverSystem(host); err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	if c.Shake, err = NewCameraShakeSystem(host, p.ShakeTrail); err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}

	c.Input.audio = c.Audio
	c.Input.shake = c.Shake

	return c, nil
}

// RegisterGameSystems queues every built-in system with the registry.
// A nil registry is logged and skipped rather than treated as fatal
func (c *Coordinator) RegisterGameSystems(reg *engine.Registry) error {
	if reg == nil {
		core.LogWarn("no registry attached, built-in systems not registered")
		return nil
	}

	systems := []engine.System{c.Bridge, c.Audio, c.Input, c.Spawner, c.Mover, c.Shake}
	for _, s := range systems {
		if _, err := reg.Register(engine.Registration{System: s}); err != nil {
			return fmt.Errorf("register %q: %w", s.ID(), err)
		}
	}
	return nil
}

// EnableSystem turns dispatch on for one built-in or scripted system
func (c *Coordinator) EnableSystem(id string) bool {
	return c.session.Registry.SetSystemEnabled(id, true)
}

// DisableSystem turns dispatch off without unregistering
func (c *Coordinator) DisableSystem(id string) bool {
	return c.session.Registry.SetSystemEnabled(id, false)
}

// Describe returns the scheduler's view of every registered system
func (c *Coordinator) Describe() []engine.SystemStatus {
	return c.session.Registry.ListSystems()
}
