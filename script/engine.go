package script

import (
	"fmt"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/engine"
	"github.com/lixenwraith/script-fighter/game"
)

// FrameCounter exposes the bridge's frame count to scripts
type FrameCounter interface {
	FrameCount() int64
}

// Quitter lets scripts request session shutdown. Satisfied by
// game.Session; nil makes the binding a no-op
type Quitter interface {
	RequestQuit()
}

// Engine embeds a Lua VM and exposes the host operation surface to
// scripts through the global `game` table. The VM is confined to the
// logic goroutine: entry execution, reloads and every scripted system
// callback run there, so no locking is needed around the state
type Engine struct {
	vm       *lua.LState
	registry *engine.Registry
	host     game.Host
	frames   FrameCounter
	quitter  Quitter

	entry   string
	version int64 // timestamp of the last successful load
}

// New creates the VM and installs the script API. Nothing is executed
// until Load
func New(registry *engine.Registry, host game.Host, frames FrameCounter, quitter Quitter, dir, entry string) *Engine {
	e := &Engine{
		vm:       lua.NewState(),
		registry: registry,
		host:     host,
		frames:   frames,
		quitter:  quitter,
		entry:    filepath.Join(dir, entry),
	}
	e.installAPI()
	return e
}

// Load executes the entry script. Also the reload path: the VM is kept,
// globals persist, and re-registration of an existing system id queues
// a replacement that lands at the next update cycle. A script error
// leaves previously registered systems running
func (e *Engine) Load() error {
	version := time.Now().UnixNano()
	e.version = version

	if err := e.vm.DoFile(e.entry); err != nil {
		return fmt.Errorf("script %s: %w", e.entry, err)
	}

	core.LogInfo("script %s loaded (version %d)", e.entry, version)
	return nil
}

// Close releases the VM
func (e *Engine) Close() {
	e.vm.Close()
}

// call invokes a Lua function with protection. Script errors are logged
// and swallowed so one bad callback cannot take the frame down
func (e *Engine) call(fn *lua.LFunction, what string, args ...lua.LValue) {
	err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...)
	if err != nil {
		core.LogError("script %s failed: %v", what, err)
	}
}
