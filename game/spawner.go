package game

import (
	"math/rand"

	"github.com/lixenwraith/script-fighter/constant"
	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/engine"
)

// SpawnerSystem creates a prop on a fixed frame cadence while the game
// phase is active. It reads the frame counter straight off the bridge,
// which always runs first
type SpawnerSystem struct {
	engine.BaseSystem

	host     Host
	bridge   *BridgeSystem
	interval int64
	rng      *rand.Rand
}

// NewSpawnerSystem builds the spawner. interval is in frames and must
// be positive
func NewSpawnerSystem(host Host, bridge *BridgeSystem, interval int64, seed int64) (*SpawnerSystem, error) {
	base, err := engine.NewBaseSystem("spawner", constant.PrioritySpawner, engine.SystemConfig{})
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = 120
	}
	return &SpawnerSystem{
		BaseSystem: base,
		host:       host,
		bridge:     bridge,
		interval:   interval,
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}

// Update spawns a prop near the play field center every interval frames
func (s *SpawnerSystem) Update(gameDelta, systemDelta float64) {
	if s.host == nil || s.host.GameState() != string(core.StateGame) {
		return
	}
	if s.bridge.FrameCount()%s.interval != 0 {
		return
	}

	x := s.rng.Float64()*12 - 6
	y := s.rng.Float64()*8 - 4
	z := 1 + s.rng.Float64()
	s.host.CreateEntity(x, y, z)
}
