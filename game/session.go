package game

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/engine"
)

// Host is the narrow operation set gameplay systems are allowed to call
// on the terminal engine. Scripts reach the same surface through the
// Lua API; both sides see identical semantics
type Host interface {
	Update(gameDelta, systemDelta float64)
	Render()

	CreateEntity(x, y, z float64) string
	MoveEntity(index int, x, y, z float64)
	PropCount() int
	PropAnchor(index int) (core.Vec3, bool)
	PlayerPosition() core.Vec3
	MoveCamera(dx, dy, dz float64)

	GameState() string
	SetGameState(s string) bool
}

// Session is the shared per-run state handed to every game system:
// the render gate, the quit latch and the shared scheduler handles.
// Render and quit are atomics because the input poller and the script
// watcher run on their own goroutines
type Session struct {
	id string

	render atomic.Bool
	quit   atomic.Bool

	Registry *engine.Registry
	Clock    *engine.DualClock
}

// NewSession creates a session with rendering on and a fresh id
func NewSession(registry *engine.Registry, clock *engine.DualClock) *Session {
	s := &Session{
		id:       uuid.NewString(),
		Registry: registry,
		Clock:    clock,
	}
	s.render.Store(true)
	return s
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// RenderEnabled reports whether host drawing is wanted this frame
func (s *Session) RenderEnabled() bool { return s.render.Load() }

// ToggleRender flips the render gate and returns the new value
func (s *Session) ToggleRender() bool {
	for {
		old := s.render.Load()
		if s.render.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// RequestQuit latches the shutdown flag. One-way
func (s *Session) RequestQuit() { s.quit.Store(true) }

// QuitRequested reports whether shutdown has been requested
func (s *Session) QuitRequested() bool { return s.quit.Load() }
