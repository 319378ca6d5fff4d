package host

import (
	"testing"

	"github.com/lixenwraith/script-fighter/core"
)

// All tests run headless: a nil screen mutates state without drawing

func TestCreateEntityAssignsUniqueIDs(t *testing.T) {
	e := NewEngine(nil)

	a := e.CreateEntity(1, 2, 3)
	b := e.CreateEntity(4, 5, 6)

	if a == "" || b == "" {
		t.Fatalf("entity ids must be non-empty")
	}
	if a == b {
		t.Errorf("entity ids must be unique, both %s", a)
	}
	if e.PropCount() != 2 {
		t.Errorf("expected 2 props, got %d", e.PropCount())
	}
}

func TestMoveEntityPreservesAnchor(t *testing.T) {
	e := NewEngine(nil)
	e.CreateEntity(1, 2, 3)

	e.MoveEntity(0, 9, 9, 9)

	p, ok := e.Prop(0)
	if !ok {
		t.Fatalf("prop 0 missing")
	}
	if p.Pos != (core.Vec3{X: 9, Y: 9, Z: 9}) {
		t.Errorf("position not updated: %+v", p.Pos)
	}
	if p.Spawn != (core.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("spawn anchor must not move: %+v", p.Spawn)
	}

	anchor, ok := e.PropAnchor(0)
	if !ok || anchor != p.Spawn {
		t.Errorf("PropAnchor disagrees with Prop: %+v", anchor)
	}
}

func TestMoveEntityOutOfRangeIgnored(t *testing.T) {
	e := NewEngine(nil)
	e.CreateEntity(1, 1, 1)

	e.MoveEntity(-1, 0, 0, 0)
	e.MoveEntity(5, 0, 0, 0)

	p, _ := e.Prop(0)
	if p.Pos != (core.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("out-of-range move touched a prop: %+v", p.Pos)
	}
}

func TestMoveCameraReplacesOffset(t *testing.T) {
	e := NewEngine(nil)

	e.MoveCamera(2, 3, 0)
	e.MoveCamera(1, 1, 0)

	if e.camera != (core.Vec3{X: 1, Y: 1, Z: 0}) {
		t.Errorf("camera offsets must replace, not accumulate: %+v", e.camera)
	}

	e.MoveCamera(0, 0, 0)
	if e.camera != (core.Vec3{}) {
		t.Errorf("camera did not return to rest: %+v", e.camera)
	}
}

func TestGameStateTransitions(t *testing.T) {
	e := NewEngine(nil)

	if e.GameState() != string(core.StateAttract) {
		t.Fatalf("engine must start in attract, got %s", e.GameState())
	}

	if !e.SetGameState("game") {
		t.Errorf("loose spelling rejected")
	}
	if e.GameState() != string(core.StateGame) {
		t.Errorf("state not switched: %s", e.GameState())
	}

	if e.SetGameState("LOBBY") {
		t.Errorf("unknown state accepted")
	}
	if e.GameState() != string(core.StateGame) {
		t.Errorf("rejected transition mutated state: %s", e.GameState())
	}
}

func TestHeadlessUpdateRenderSafe(t *testing.T) {
	e := NewEngine(nil)
	e.CreateEntity(0, 0, 1)

	// must not panic without a screen
	e.Update(0.016, 0.016)
	e.Render()
}

func TestPlayerPosition(t *testing.T) {
	e := NewEngine(nil)
	pos := e.PlayerPosition()
	if pos == (core.Vec3{}) {
		t.Errorf("player must not start at the origin where props spawn")
	}
}
