package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const defaultSampleRate = beep.SampleRate(44100)

// Player produces the short synthesized cues bound to trigger effects
// All playback is fire-and-forget; a disabled player turns every cue
// into a no-op, so absent audio is a configuration, not an error path
type Player struct {
	enabled bool
	sr      beep.SampleRate
}

// NewPlayer initializes the speaker
// On failure it returns a disabled player together with the error, so
// the caller can log and continue without audio
func NewPlayer() (*Player, error) {
	sr := defaultSampleRate
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return Disabled(), err
	}
	return &Player{enabled: true, sr: sr}, nil
}

// Disabled returns a player whose cues do nothing
func Disabled() *Player {
	return &Player{}
}

// Enabled reports whether the speaker is live
func (p *Player) Enabled() bool {
	return p.enabled
}

// Close releases the speaker
func (p *Player) Close() {
	if p.enabled {
		speaker.Close()
	}
}

// Ping is the short bright cue for the activation flash
func (p *Player) Ping() {
	p.play(p.tone(880, 60*time.Millisecond, -0.2))
}

// Swell is the rising cue played as the activation flight begins
func (p *Player) Swell() {
	if !p.enabled {
		return
	}
	steps := []float64{220, 330, 440, 660}
	parts := make([]beep.Streamer, 0, len(steps))
	for _, freq := range steps {
		if s := p.tone(freq, 150*time.Millisecond, -0.4); s != nil {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		speaker.Play(beep.Seq(parts...))
	}
}

// Rumble is the low cue for the black-hole collapse
func (p *Player) Rumble() {
	p.play(p.tone(55, 900*time.Millisecond, 0.2))
}

func (p *Player) play(s beep.Streamer) {
	if !p.enabled || s == nil {
		return
	}
	speaker.Play(s)
}

func (p *Player) tone(freq float64, d time.Duration, gain float64) beep.Streamer {
	if !p.enabled {
		return nil
	}
	sine, err := generators.SineTone(p.sr, freq)
	if err != nil {
		return nil
	}
	return &effects.Gain{
		Streamer: beep.Take(p.sr.N(d), sine),
		Gain:     gain,
	}
}
