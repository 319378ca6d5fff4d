package engine

import (
	"fmt"
	"sort"
)

// System is the contract every schedulable game-logic unit satisfies.
// Update and Render are deliberately not part of this interface: a system
// that updates implements Updater, one that draws implements Renderer.
// The registry binds whichever of the two the concrete type provides
type System interface {
	ID() string
	Priority() int // Lower values run first
	Enabled() bool
	SetEnabled(bool)

	// Version is a monotonically-changing marker used to tell a reloaded
	// system apart from its predecessor. 0 means no reload tracking
	Version() int64

	// Data exposes the system's opaque data bag
	Data() map[string]any
}

// Updater is the per-frame update capability.
// gameDelta follows the pausable, scalable game clock; systemDelta is
// real elapsed time and keeps advancing while gameplay is paused
type Updater interface {
	Update(gameDelta, systemDelta float64)
}

// Renderer is the optional per-frame draw capability
type Renderer interface {
	Render()
}

// DefaultPriority is the mid-range priority assigned when a
// SystemConfig leaves Priority unset
const DefaultPriority = 50

// SystemConfig carries the optional construction parameters of a BaseSystem
type SystemConfig struct {
	Enabled *bool // nil defaults to true
	Data    map[string]any
}

// BaseSystem supplies identity, priority, enabled flag, data bag and
// version defaults. Embed in concrete system structs; it implements
// neither Updater nor Renderer, so a bare BaseSystem is not schedulable
type BaseSystem struct {
	id       string
	priority int
	enabled  bool
	data     map[string]any
	version  int64
}

// NewBaseSystem validates identity and priority and builds the common state.
// id must be non-empty; priority is any signed integer (lower runs first)
func NewBaseSystem(id string, priority int, cfg SystemConfig) (BaseSystem, error) {
	if id == "" {
		return BaseSystem{}, fmt.Errorf("system id must be a non-empty string: %w", ErrInvalidArgument)
	}

	enabled := true
	if cfg.Enabled != nil {
		enabled = *cfg.Enabled
	}

	data := cfg.Data
	if data == nil {
		data = make(map[string]any)
	}

	return BaseSystem{
		id:       id,
		priority: priority,
		enabled:  enabled,
		data:     data,
	}, nil
}

func (b *BaseSystem) ID() string           { return b.id }
func (b *BaseSystem) Priority() int        { return b.priority }
func (b *BaseSystem) Enabled() bool        { return b.enabled }
func (b *BaseSystem) SetEnabled(on bool)   { b.enabled = on }
func (b *BaseSystem) Version() int64       { return b.version }
func (b *BaseSystem) Data() map[string]any { return b.data }
func (b *BaseSystem) SetVersion(v int64)   { b.version = v }

// SystemStatus is the introspection record for one system
type SystemStatus struct {
	ID        string
	Priority  int
	Enabled   bool
	HasUpdate bool
	HasRender bool
	DataKeys  []string
}

// Describe reports a system's dispatch capabilities and data-bag keys.
// Pure; capability flags come from the optional interface assertions
func Describe(s System) SystemStatus {
	_, hasUpdate := s.(Updater)
	_, hasRender := s.(Renderer)

	keys := make([]string, 0, len(s.Data()))
	for k := range s.Data() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return SystemStatus{
		ID:        s.ID(),
		Priority:  s.Priority(),
		Enabled:   s.Enabled(),
		HasUpdate: hasUpdate,
		HasRender: hasRender,
		DataKeys:  keys,
	}
}
