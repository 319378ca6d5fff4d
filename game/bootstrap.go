package game

import (
	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/engine"
	"github.com/lixenwraith/script-fighter/event"
)

// Bootstrap assembles a session and its coordinator exactly once.
// Calling Run again returns the already-built pair, so a re-entrant
// startup path (script reload calling back into init) is harmless
type Bootstrap struct {
	host   Host
	player TonePlayer
	queue  *event.Queue
	params Params

	session     *Session
	coordinator *Coordinator
	done        bool
}

// NewBootstrap captures the construction inputs without building yet
func NewBootstrap(host Host, player TonePlayer, queue *event.Queue, params Params) *Bootstrap {
	return &Bootstrap{host: host, player: player, queue: queue, params: params}
}

// Run builds the session, the coordinator and registers the built-in
// systems with the given registry. Idempotent: repeat calls are logged
// and return the first result
func (b *Bootstrap) Run(registry *engine.Registry, clock *engine.DualClock) (*Session, *Coordinator, error) {
	if b.done {
		core.LogWarn("bootstrap already ran, reusing session %s", b.session.ID())
		return b.session, b.coordinator, nil
	}

	session := NewSession(registry, clock)
	coordinator, err := NewCoordinator(b.host, b.player, b.queue, session, b.params)
	if err != nil {
		return nil, nil, err
	}
	if err := coordinator.RegisterGameSystems(registry); err != nil {
		return nil, nil, err
	}

	b.session = session
	b.coordinator = coordinator
	b.done = true

	core.LogInfo("session %s bootstrapped, built-in systems queued", session.ID())
	return session, coordinator, nil
}
