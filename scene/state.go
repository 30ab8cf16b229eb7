package scene

import (
	"time"

	"github.com/lixenwraith/voidgate/core"
	"github.com/lixenwraith/voidgate/engine"
	"github.com/lixenwraith/voidgate/parameter"
	"github.com/lixenwraith/voidgate/tween"
	"github.com/lixenwraith/voidgate/vmath"
)

// Rest colors
var (
	portalRingRest = core.RGB{R: 0x88, G: 0x44, B: 0xff}
	discRest       = core.RGB{R: 0xff, G: 0x88, B: 0x30}
)

// State holds every value the renderer reads and the sequence channels
// write; it is the single boundary between animation math and drawing
// Channel applies and trigger effects are its only writers while a
// sequence runs
type State struct {
	CameraZoom float64
	Flight     vmath.Vec3
	RingColor  core.RGB
	RingRadius float64
	RingGlow   float64
	StarSpeed  float64

	VortexTwist float64
	VortexPull  float64
	DiscColor   core.RGB

	// Derived per frame from the kick timestamps; read-only elsewhere
	FlashIntensity float64
	ShakeIntensity float64

	provider engine.TimeProvider
	flashAt  time.Time
	shakeAt  time.Time
}

// NewState creates a state at rest values
func NewState(provider engine.TimeProvider) *State {
	s := &State{provider: provider}
	s.Reset()
	return s
}

// Reset restores every value to its rest configuration
func (s *State) Reset() {
	s.CameraZoom = parameter.PortalRestZoom
	s.Flight = vmath.Vec3{Z: parameter.PortalRestDepth}
	s.RingColor = portalRingRest
	s.RingRadius = parameter.PortalRingRadius
	s.RingGlow = parameter.PortalRestGlow
	s.StarSpeed = parameter.PortalRestStarSpeed

	s.VortexTwist = parameter.VortexRestTwist
	s.VortexPull = parameter.VortexRestPull
	s.DiscColor = discRest

	s.FlashIntensity = 0
	s.ShakeIntensity = 0
	s.flashAt = time.Time{}
	s.shakeAt = time.Time{}
}

// KickFlash restarts the full-screen flash envelope
func (s *State) KickFlash() {
	s.flashAt = s.provider.Now()
}

// KickShake restarts the screen shake envelope
func (s *State) KickShake() {
	s.shakeAt = s.provider.Now()
}

// Update recomputes the one-shot intensity envelopes
// Flash and shake are not channels: they are kicked by triggers at a
// progress threshold and decay on their own clock, outliving even the
// sequence that kicked them into the settle tail
func (s *State) Update() {
	now := s.provider.Now()
	// A kicked envelope owns its intensity only while decaying; once
	// spent, the timestamp is cleared so a channel driving the
	// flash.intensity or shake.intensity target is not stomped
	if !s.flashAt.IsZero() {
		if now.Sub(s.flashAt) >= parameter.FlashDuration {
			s.FlashIntensity = 0
			s.flashAt = time.Time{}
		} else {
			s.FlashIntensity = envelope(now, s.flashAt, parameter.FlashDuration, tween.FlashPulse)
		}
	}
	if !s.shakeAt.IsZero() {
		if now.Sub(s.shakeAt) >= parameter.ShakeDuration {
			s.ShakeIntensity = 0
			s.shakeAt = time.Time{}
		} else {
			s.ShakeIntensity = envelope(now, s.shakeAt, parameter.ShakeDuration, tween.Impact)
		}
	}
}

func envelope(now, kickedAt time.Time, duration time.Duration, env tween.EasingFunc) float64 {
	elapsed := now.Sub(kickedAt)
	if elapsed >= duration {
		return 0
	}
	return env(vmath.Clamp01(float64(elapsed) / float64(duration)))
}
