package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/engine"
)

// installAPI publishes the `game` global table. The function set
// mirrors the Host interface one to one, plus scheduler access
func (e *Engine) installAPI() {
	vm := e.vm

	api := vm.NewTable()
	vm.SetFuncs(api, map[string]lua.LGFunction{
		"createEntity":      e.luaCreateEntity,
		"moveEntity":        e.luaMoveEntity,
		"getPlayerPosition": e.luaPlayerPosition,
		"moveCamera":        e.luaMoveCamera,
		"getGameState":      e.luaGameState,
		"setGameState":      e.luaSetGameState,
		"frameCount":        e.luaFrameCount,
		"requestQuit":       e.luaRequestQuit,
		"log":               e.luaLog,
		"registerSystem":    e.luaRegisterSystem,
		"unregisterSystem":  e.luaUnregisterSystem,
		"setSystemEnabled":  e.luaSetSystemEnabled,
	})
	vm.SetGlobal("game", api)
}

// luaCreateEntity: game.createEntity(x, y, z) -> id
func (e *Engine) luaCreateEntity(L *lua.LState) int {
	if e.host == nil {
		L.Push(lua.LString(""))
		return 1
	}
	id := e.host.CreateEntity(
		float64(L.CheckNumber(1)),
		float64(L.CheckNumber(2)),
		float64(L.CheckNumber(3)),
	)
	L.Push(lua.LString(id))
	return 1
}

// luaMoveEntity: game.moveEntity(index, x, y, z). index is zero-based,
// matching the host's prop slice
func (e *Engine) luaMoveEntity(L *lua.LState) int {
	if e.host == nil {
		return 0
	}
	e.host.MoveEntity(
		int(L.CheckNumber(1)),
		float64(L.CheckNumber(2)),
		float64(L.CheckNumber(3)),
		float64(L.CheckNumber(4)),
	)
	return 0
}

// luaPlayerPosition: game.getPlayerPosition() -> {x, y, z}
func (e *Engine) luaPlayerPosition(L *lua.LState) int {
	pos := core.Vec3{}
	if e.host != nil {
		pos = e.host.PlayerPosition()
	}

	t := L.NewTable()
	t.RawSetString("x", lua.LNumber(pos.X))
	t.RawSetString("y", lua.LNumber(pos.Y))
	t.RawSetString("z", lua.LNumber(pos.Z))
	L.Push(t)
	return 1
}

// luaMoveCamera: game.moveCamera(dx, dy, dz). Offsets replace, never
// accumulate
func (e *Engine) luaMoveCamera(L *lua.LState) int {
	if e.host == nil {
		return 0
	}
	e.host.MoveCamera(
		float64(L.CheckNumber(1)),
		float64(L.CheckNumber(2)),
		float64(L.CheckNumber(3)),
	)
	return 0
}

// luaGameState: game.getGameState() -> "ATTRACT" | "GAME"
func (e *Engine) luaGameState(L *lua.LState) int {
	state := string(core.StateAttract)
	if e.host != nil {
		state = e.host.GameState()
	}
	L.Push(lua.LString(state))
	return 1
}

// luaSetGameState: game.setGameState(s) -> bool. Loose spellings like
// "attract" and "0" are accepted
func (e *Engine) luaSetGameState(L *lua.LState) int {
	ok := false
	if e.host != nil {
		ok = e.host.SetGameState(L.CheckString(1))
	}
	L.Push(lua.LBool(ok))
	return 1
}

// luaFrameCount: game.frameCount() -> number
func (e *Engine) luaFrameCount(L *lua.LState) int {
	var n int64
	if e.frames != nil {
		n = e.frames.FrameCount()
	}
	L.Push(lua.LNumber(n))
	return 1
}

// luaRequestQuit: game.requestQuit(). Latches session shutdown; the
// frame loop exits after the current cycle
func (e *Engine) luaRequestQuit(L *lua.LState) int {
	if e.quitter != nil {
		e.quitter.RequestQuit()
	}
	return 0
}

// luaLog: game.log(msg)
func (e *Engine) luaLog(L *lua.LState) int {
	core.LogInfo("[script] %s", L.CheckString(1))
	return 0
}

// luaRegisterSystem: game.registerSystem(def) -> bool
//
// def is a table: id (required string), priority (number), enabled
// (bool), update = function(gameDelta, systemDelta), render =
// function(), data = table of scalars. At least one of update/render
// must be present. Malformed definitions log and return false instead
// of raising
func (e *Engine) luaRegisterSystem(L *lua.LState) int {
	def := L.CheckTable(1)

	id := ""
	if v, ok := def.RawGetString("id").(lua.LString); ok {
		id = string(v)
	}
	if id == "" {
		core.LogWarn("registerSystem rejected: id must be a non-empty string")
		L.Push(lua.LFalse)
		return 1
	}

	funcs := &engine.Funcs{Version: e.version}

	if v, ok := def.RawGetString("priority").(lua.LNumber); ok {
		p := int(v)
		funcs.Priority = &p
	}
	if v, ok := def.RawGetString("enabled").(lua.LBool); ok {
		b := bool(v)
		funcs.Enabled = &b
	}
	if t, ok := def.RawGetString("data").(*lua.LTable); ok {
		funcs.Data = tableToMap(t)
	}

	if fn, ok := def.RawGetString("update").(*lua.LFunction); ok {
		funcs.Update = func(gameDelta, systemDelta float64) {
			e.call(fn, id+".update", lua.LNumber(gameDelta), lua.LNumber(systemDelta))
		}
	}
	if fn, ok := def.RawGetString("render").(*lua.LFunction); ok {
		funcs.Render = func() {
			e.call(fn, id+".render")
		}
	}
	if funcs.Update == nil && funcs.Render == nil {
		core.LogWarn("registerSystem rejected: %q defines neither update nor render", id)
		L.Push(lua.LFalse)
		return 1
	}

	if _, err := e.registry.Register(engine.Registration{ID: id, Funcs: funcs}); err != nil {
		core.LogWarn("registerSystem %q failed: %v", id, err)
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LTrue)
	return 1
}

// luaUnregisterSystem: game.unregisterSystem(id) -> bool
func (e *Engine) luaUnregisterSystem(L *lua.LState) int {
	L.Push(lua.LBool(e.registry.Unregister(L.CheckString(1))))
	return 1
}

// luaSetSystemEnabled: game.setSystemEnabled(id, on) -> bool
func (e *Engine) luaSetSystemEnabled(L *lua.LState) int {
	L.Push(lua.LBool(e.registry.SetSystemEnabled(L.CheckString(1), L.CheckBool(2))))
	return 1
}

// tableToMap shallow-converts a Lua table of scalars into a data bag.
// Nested tables and functions are dropped
func tableToMap(t *lua.LTable) map[string]any {
	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			return
		}
		switch val := v.(type) {
		case lua.LString:
			m[string(key)] = string(val)
		case lua.LNumber:
			m[string(key)] = float64(val)
		case lua.LBool:
			m[string(key)] = bool(val)
		}
	})
	return m
}
