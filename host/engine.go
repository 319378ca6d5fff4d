package host

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/event"
)

// Prop is one host-owned entity: a cube in the original demo, a glyph
// on the terminal grid here
type Prop struct {
	ID    string
	Pos   core.Vec3
	Spawn core.Vec3 // position at creation, orbit anchor for movers
}

// Engine owns the terminal screen, the entity set, the player marker and
// the camera. It implements the narrow operation set gameplay systems
// and scripts are allowed to call. Every operation fails soft: with no
// screen attached (headless mode, tests) state still mutates and
// drawing is skipped.
//
// Single-threaded: all methods are called from the logic goroutine
type Engine struct {
	screen tcell.Screen // nil in headless mode

	props  []Prop
	player core.Vec3
	camera core.Vec3 // view offset, written by MoveCamera
	state  core.GameState

	elapsed float64 // game seconds, drives glyph animation
	width   int
	height  int
}

// NewEngine builds a host engine. screen may be nil for headless use
func NewEngine(screen tcell.Screen) *Engine {
	e := &Engine{
		screen: screen,
		player: core.Vec3{X: -2, Y: 0, Z: 1},
		state:  core.StateAttract,
	}
	if screen != nil {
		e.width, e.height = screen.Size()
	}
	return e
}

// Update advances host-side entity state. Called by the bridge system
// once per frame, before any drawing
func (e *Engine) Update(gameDelta, systemDelta float64) {
	e.elapsed += gameDelta
}

// Render draws the world. Gated by the session render flag upstream;
// reaching here means drawing is wanted
func (e *Engine) Render() {
	if e.screen == nil {
		return
	}

	e.screen.Clear()
	e.width, e.height = e.screen.Size()

	if e.state == core.StateAttract {
		e.drawCentered(e.height/2, "SCRIPT FIGHTER", tcell.StyleDefault.Foreground(tcell.ColorYellow))
		e.drawCentered(e.height/2+2, "press any key", tcell.StyleDefault.Foreground(tcell.ColorGray))
		e.screen.Show()
		return
	}

	for i := range e.props {
		e.drawProp(&e.props[i])
	}
	e.drawPlayer()
	e.drawStatus()
	e.screen.Show()
}

// spinGlyphs animate prop rotation, one step per ~eighth of a second
var spinGlyphs = []rune{'#', 'X', '+', 'x'}

func (e *Engine) drawProp(p *Prop) {
	x, y, ok := e.project(p.Pos)
	if !ok {
		return
	}

	glyph := spinGlyphs[int(e.elapsed*8)%len(spinGlyphs)]
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	if p.Pos.Z > 1.5 {
		style = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	}
	e.screen.SetContent(x, y, glyph, nil, style)
}

func (e *Engine) drawPlayer() {
	x, y, ok := e.project(e.player)
	if !ok {
		return
	}
	e.screen.SetContent(x, y, '@', nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
}

func (e *Engine) drawStatus() {
	msg := fmt.Sprintf(" %s | props %d | cam (%.1f, %.1f) ", e.state, len(e.props), e.camera.X, e.camera.Y)
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range msg {
		if i >= e.width {
			break
		}
		e.screen.SetContent(i, e.height-1, r, nil, style)
	}
}

func (e *Engine) drawCentered(row int, msg string, style tcell.Style) {
	col := (e.width - len(msg)) / 2
	if col < 0 {
		col = 0
	}
	for i, r := range msg {
		e.screen.SetContent(col+i, row, r, nil, style)
	}
}

// project maps world space onto the terminal grid: X across, Y down,
// two columns per world unit to keep the aspect roughly square.
// The camera offset shifts the viewport
func (e *Engine) project(p core.Vec3) (int, int, bool) {
	x := e.width/2 + int(math.Round((p.X-e.camera.X)*2))
	y := e.height/2 - int(math.Round(p.Y-e.camera.Y))

	if x < 0 || x >= e.width || y < 0 || y >= e.height-1 {
		return 0, 0, false
	}
	return x, y, true
}

// CreateEntity spawns a prop at the given position and returns its id
func (e *Engine) CreateEntity(x, y, z float64) string {
	p := Prop{
		ID:    uuid.NewString(),
		Pos:   core.Vec3{X: x, Y: y, Z: z},
		Spawn: core.Vec3{X: x, Y: y, Z: z},
	}
	e.props = append(e.props, p)
	core.LogDebug("prop %s created at (%.2f, %.2f, %.2f)", p.ID, x, y, z)
	return p.ID
}

// MoveEntity repositions the prop at index. Out-of-range indices are
// logged and ignored
func (e *Engine) MoveEntity(index int, x, y, z float64) {
	if index < 0 || index >= len(e.props) {
		core.LogWarn("moveEntity index %d out of range (%d props)", index, len(e.props))
		return
	}
	e.props[index].Pos = core.Vec3{X: x, Y: y, Z: z}
}

// PropCount returns the number of live props
func (e *Engine) PropCount() int { return len(e.props) }

// Prop returns a copy of the prop at index
func (e *Engine) Prop(index int) (Prop, bool) {
	if index < 0 || index >= len(e.props) {
		return Prop{}, false
	}
	return e.props[index], true
}

// PropAnchor returns the spawn position of the prop at index, the
// fixed point movement effects orbit around
func (e *Engine) PropAnchor(index int) (core.Vec3, bool) {
	if index < 0 || index >= len(e.props) {
		return core.Vec3{}, false
	}
	return e.props[index].Spawn, true
}

// PlayerPosition returns the player marker position
func (e *Engine) PlayerPosition() core.Vec3 { return e.player }

// MoveCamera sets the view offset relative to the resting camera.
// Repeated calls replace the offset rather than accumulate, so a shake
// effect passes decaying absolute offsets and ends with (0, 0, 0)
func (e *Engine) MoveCamera(dx, dy, dz float64) {
	e.camera = core.Vec3{X: dx, Y: dy, Z: dz}
}

// GameState returns the current phase as its wire string
func (e *Engine) GameState() string { return string(e.state) }

// SetGameState switches phase. Unrecognized strings return false
func (e *Engine) SetGameState(s string) bool {
	state, ok := core.ParseGameState(s)
	if !ok {
		core.LogWarn("setGameState rejected unknown state %q", s)
		return false
	}
	e.state = state
	return true
}

// PollInput converts tcell events into queue events until the screen
// closes. Run on its own goroutine via core.Go
func (e *Engine) PollInput(q *event.Queue) {
	if e.screen == nil {
		return
	}

	for {
		ev := e.screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}

		switch tev := ev.(type) {
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyEscape || tev.Key() == tcell.KeyCtrlC {
				q.Push(event.Event{Type: event.EventQuitRequested})
				continue
			}
			q.Push(event.Event{
				Type:    event.EventKeyPressed,
				Payload: event.KeyPayload{Rune: tev.Rune(), Name: tcell.KeyNames[tev.Key()]},
			})
		case *tcell.EventResize:
			w, h := tev.Size()
			q.Push(event.Event{
				Type:    event.EventResized,
				Payload: event.SizePayload{Width: w, Height: h},
			})
		}
	}
}
