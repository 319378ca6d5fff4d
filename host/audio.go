package host

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/script-fighter/core"
)

// Speaker wraps the beep output device. Initialization failure is not
// fatal: the game runs silent and every play call becomes a no-op
type Speaker struct {
	sampleRate beep.SampleRate
	ready      bool
}

// NewSpeaker initializes the audio device. enabled=false skips device
// setup entirely (headless and test runs)
func NewSpeaker(enabled bool, sampleRate int) *Speaker {
	s := &Speaker{sampleRate: beep.SampleRate(sampleRate)}
	if !enabled {
		return s
	}

	if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/10)); err != nil {
		core.LogWarn("audio initialization failed, running silent: %v", err)
		return s
	}
	s.ready = true
	return s
}

// Ready reports whether the output device accepted initialization
func (s *Speaker) Ready() bool { return s.ready }

// PlayTone plays a sine tone at the given frequency for the given
// duration. Silent mode swallows the call
func (s *Speaker) PlayTone(freq float64, dur time.Duration) {
	if !s.ready {
		return
	}

	sine, err := generators.SineTone(s.sampleRate, freq)
	if err != nil {
		core.LogWarn("tone generation failed: %v", err)
		return
	}
	speaker.Play(beep.Take(s.sampleRate.N(dur), sine))
}
