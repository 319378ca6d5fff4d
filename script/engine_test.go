package script

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/engine"
	"github.com/lixenwraith/script-fighter/event"
	"github.com/lixenwraith/script-fighter/host"
)

type fixedFrames int64

func (f fixedFrames) FrameCount() int64 { return int64(f) }

// writeScript drops a main.lua into dir and returns the dir
func writeScript(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "main.lua"), []byte(body), 0644); err != nil {
		t.Fatalf("write script: %v", err)
	}
}

// latchQuitter records whether a script asked to shut down
type latchQuitter struct {
	quit bool
}

func (l *latchQuitter) RequestQuit() { l.quit = true }

func newTestEngine(t *testing.T, dir string) (*Engine, *engine.Registry, *host.Engine) {
	t.Helper()
	registry := engine.NewRegistry()
	h := host.NewEngine(nil)
	e := New(registry, h, fixedFrames(0), &latchQuitter{}, dir, "main.lua")
	t.Cleanup(e.Close)
	return e, registry, h
}

func TestLoadRegistersScriptSystem(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `
game.registerSystem({
  id = "lua-spawner",
  priority = 25,
  update = function(g, s)
    game.createEntity(0, 0, 1)
  end,
})
`)

	e, registry, h := newTestEngine(t, dir)
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	registry.Update(0.016, 0.016)

	if h.PropCount() != 1 {
		t.Errorf("scripted update did not run, props %d", h.PropCount())
	}
	st := registry.GetSystem("lua-spawner")
	if st == nil {
		t.Fatalf("scripted system not registered")
	}
	if st.Priority != 25 {
		t.Errorf("priority from definition lost: %d", st.Priority)
	}
	if !st.HasUpdate || st.HasRender {
		t.Errorf("capability flags wrong: %+v", st)
	}
}

func TestReloadReplacesSystem(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `
game.registerSystem({
  id = "worker",
  update = function(g, s) game.createEntity(0, 0, 1) end,
})
`)

	e, registry, h := newTestEngine(t, dir)
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	registry.Update(0.016, 0.016)
	if h.PropCount() != 1 {
		t.Fatalf("v1 did not run")
	}

	writeScript(t, dir, `
game.registerSystem({
  id = "worker",
  update = function(g, s) game.moveCamera(7, 0, 0) end,
})
`)
	if err := e.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	// replacement is applied at the next drain, before any dispatch
	registry.Update(0.016, 0.016)
	registry.Update(0.016, 0.016)

	if h.PropCount() != 1 {
		t.Errorf("replaced v1 still spawning, props %d", h.PropCount())
	}
	if all := registry.ListSystems(); len(all) != 1 {
		t.Errorf("replacement duplicated the system: %d live", len(all))
	}
}

func TestBadDefinitionsRejected(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `
game.registerSystem({ update = function(g, s) end })
game.registerSystem({ id = "inert" })
`)

	e, registry, _ := newTestEngine(t, dir)
	if err := e.Load(); err != nil {
		t.Fatalf("load should soft-fail bad definitions: %v", err)
	}

	registry.Update(0.016, 0.016)
	if got := len(registry.ListSystems()); got != 0 {
		t.Errorf("malformed definitions registered %d systems", got)
	}
}

func TestScriptErrorDoesNotStopOtherSystems(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `
game.registerSystem({
  id = "faulty",
  priority = 10,
  update = function(g, s) error("scripted failure") end,
})
`)

	e, registry, _ := newTestEngine(t, dir)
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	healthy := 0
	p := 20
	registry.Register(engine.Registration{
		ID: "survivor",
		Funcs: &engine.Funcs{
			Priority: &p,
			Update:   func(g, s float64) { healthy++ },
		},
	})

	for i := 0; i < 5; i++ {
		registry.Update(0.016, 0.016)
	}
	if healthy != 5 {
		t.Errorf("survivor ran %d of 5 cycles next to a failing script", healthy)
	}
}

func TestLoadErrorKeepsPreviousSystems(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `
game.registerSystem({
  id = "stable",
  update = function(g, s) game.createEntity(0, 0, 1) end,
})
`)

	e, registry, h := newTestEngine(t, dir)
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	registry.Update(0.016, 0.016)

	writeScript(t, dir, `this is not lua (`)
	if err := e.Load(); err == nil {
		t.Fatalf("broken script should error")
	}

	registry.Update(0.016, 0.016)
	if h.PropCount() != 2 {
		t.Errorf("previous system stopped after a failed reload, props %d", h.PropCount())
	}
}

func TestHostQueriesFromScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `
local pos = game.getPlayerPosition()
if game.getGameState() == "ATTRACT" then
  game.setGameState("GAME")
end
game.createEntity(pos.x, pos.y, pos.z)
game.moveEntity(0, 1, 2, 3)
`)

	e, _, h := newTestEngine(t, dir)
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	if h.GameState() != string(core.StateGame) {
		t.Errorf("script state switch lost: %s", h.GameState())
	}
	if h.PropCount() != 1 {
		t.Fatalf("script createEntity lost")
	}
	p, _ := h.Prop(0)
	if p.Pos != (core.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("script moveEntity lost: %+v", p.Pos)
	}
}

func TestUnregisterFromScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `
game.registerSystem({ id = "temp", update = function(g, s) end })
game.unregisterSystem("temp")
`)

	e, registry, _ := newTestEngine(t, dir)
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	registry.Update(0.016, 0.016)
	if registry.GetSystem("temp") != nil {
		t.Errorf("script unregister lost")
	}
}

func TestRequestQuitFromScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `game.requestQuit()`)

	registry := engine.NewRegistry()
	q := &latchQuitter{}
	e := New(registry, host.NewEngine(nil), fixedFrames(0), q, dir, "main.lua")
	t.Cleanup(e.Close)

	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !q.quit {
		t.Errorf("script quit request not latched")
	}
}

func TestWatcherEmitsReloadEvent(t *testing.T) {
	dir := t.TempDir()
	queue := event.NewQueue()

	w, err := WatchScripts(dir, 20*time.Millisecond, queue)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	writeScript(t, dir, `-- touched`)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("no reload event within deadline")
		default:
		}

		for _, ev := range queue.Consume() {
			if ev.Type == event.EventReloadRequested {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatcherIgnoresNonLua(t *testing.T) {
	dir := t.TempDir()
	queue := event.NewQueue()

	w, err := WatchScripts(dir, 20*time.Millisecond, queue)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	time.Sleep(150 * time.Millisecond)
	for _, ev := range queue.Consume() {
		if ev.Type == event.EventReloadRequested {
			t.Errorf("non-lua change triggered a reload")
		}
	}
}
