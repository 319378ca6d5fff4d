package game

import (
	"sync"
	"time"

	"github.com/lixenwraith/script-fighter/constant"
	"github.com/lixenwraith/script-fighter/engine"
)

// TonePlayer is the sound output surface the audio system drives.
// Satisfied by host.Speaker; a nil player means silent mode
type TonePlayer interface {
	PlayTone(freq float64, dur time.Duration)
}

type tone struct {
	freq float64
	dur  time.Duration
}

// AudioSystem collects tone requests during the frame and plays them
// in its own update slot. Input runs earlier in the same cycle and
// enqueues directly; the mutex covers enqueues from other goroutines
// such as the script watcher
type AudioSystem struct {
	engine.BaseSystem

	player TonePlayer

	mu      sync.Mutex
	pending []tone
}

// NewAudioSystem builds the audio system. player may be nil
func NewAudioSystem(player TonePlayer) (*AudioSystem, error) {
	base, err := engine.NewBaseSystem("audio", constant.PriorityAudio, engine.SystemConfig{})
	if err != nil {
		return nil, err
	}
	return &AudioSystem{BaseSystem: base, player: player}, nil
}

// QueueTone schedules a sine tone for the next audio update
func (a *AudioSystem) QueueTone(freq float64, dur time.Duration) {
	a.mu.Lock()
	a.pending = append(a.pending, tone{freq: freq, dur: dur})
	a.mu.Unlock()
}

// Update drains the tone queue into the player
func (a *AudioSystem) Update(gameDelta, systemDelta float64) {
	a.mu.Lock()
	tones := a.pending
	a.pending = nil
	a.mu.Unlock()

	if a.player == nil {
		return
	}
	for _, t := range tones {
		a.player.PlayTone(t.freq, t.dur)
	}
}
