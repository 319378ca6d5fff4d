package game

import (
	"math"

	"github.com/lixenwraith/script-fighter/constant"
	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/engine"
)

// MoverSystem orbits every prop around its spawn anchor. Each prop gets
// a phase offset from its index so the field does not move in lockstep.
// Pausing the game clock freezes the orbits because elapsed accumulates
// gameDelta only
type MoverSystem struct {
	engine.BaseSystem

	host    Host
	elapsed float64
	radius  float64
	speed   float64 // radians per second
}

// NewMoverSystem builds the mover with the default orbit shape
func NewMoverSystem(host Host) (*MoverSystem, error) {
	base, err := engine.NewBaseSystem("mover", constant.PriorityMover, engine.SystemConfig{})
	if err != nil {
		return nil, err
	}
	return &MoverSystem{
		BaseSystem: base,
		host:       host,
		radius:     1.5,
		speed:      1.2,
	}, nil
}

// Update advances orbit time and repositions every prop
func (m *MoverSystem) Update(gameDelta, systemDelta float64) {
	if m.host == nil || m.host.GameState() != string(core.StateGame) {
		return
	}

	m.elapsed += gameDelta

	for i := 0; i < m.host.PropCount(); i++ {
		anchor, ok := m.host.PropAnchor(i)
		if !ok {
			continue
		}
		phase := m.elapsed*m.speed + float64(i)*0.7
		m.host.MoveEntity(i,
			anchor.X+math.Cos(phase)*m.radius,
			anchor.Y+math.Sin(phase)*m.radius,
			anchor.Z)
	}
}
