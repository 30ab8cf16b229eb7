package scene

import (
	"github.com/lixenwraith/voidgate/audio"
	"github.com/lixenwraith/voidgate/core"
	"github.com/lixenwraith/voidgate/engine"
	"github.com/lixenwraith/voidgate/parameter"
	"github.com/lixenwraith/voidgate/tween"
	"github.com/lixenwraith/voidgate/vmath"
)

// Kind selects which scene is presented
type Kind uint8

const (
	// KindPortal is the portal landing scene
	KindPortal Kind = iota
	// KindBlackHole is the companion black-hole scene
	KindBlackHole
)

func (k Kind) String() string {
	if k == KindBlackHole {
		return "blackhole"
	}
	return "portal"
}

// Scene binds manifest names to live state sinks, trigger effects and
// completion actions, and owns the clickable hit target
// It implements manifest.Binder
type Scene struct {
	kind  Kind
	state *State
	menu  *Menu
	sound *audio.Player
}

// New creates a scene at rest
func New(kind Kind, provider engine.TimeProvider, sound *audio.Player) *Scene {
	title := "T H E   P O R T A L"
	if kind == KindBlackHole {
		title = "E V E N T   H O R I Z O N"
	}
	return &Scene{
		kind:  kind,
		state: NewState(provider),
		menu:  NewMenu(title, "enter the void", "return", "quit"),
		sound: sound,
	}
}

// Kind returns the scene kind
func (s *Scene) Kind() Kind { return s.kind }

// State exposes the render-facing values
func (s *Scene) State() *State { return s.state }

// Menu exposes the overlay model
func (s *Scene) Menu() *Menu { return s.menu }

// PrimarySequence is the sequence a pointer hit starts
func (s *Scene) PrimarySequence() string {
	if s.kind == KindBlackHole {
		return "collapse"
	}
	return "activate"
}

// Update advances the per-frame intensity envelopes
func (s *Scene) Update() {
	s.state.Update()
}

// Reset restores the rest state and hides the menu
func (s *Scene) Reset() {
	s.state.Reset()
	s.menu.Hide()
}

// HitTest reports whether the cell (x, y) on a w×h screen lies inside
// the scene's clickable shape: the portal ring interior, or the
// event-horizon disc
func (s *Scene) HitTest(x, y, w, h int) bool {
	cx := float64(w) / 2
	cy := float64(h) / 2

	var ry float64
	switch s.kind {
	case KindBlackHole:
		ry = parameter.VortexDiscRadius * cy * (0.5 + s.state.VortexPull)
	default:
		ry = s.state.RingRadius * cy * s.state.CameraZoom
	}
	if ry < 1 {
		ry = 1
	}
	rx := ry * vmath.TerminalAspect

	return vmath.EllipseContains(float64(x)-cx, float64(y)-cy, rx, ry)
}

// Apply implements manifest.Binder: it resolves a channel target to
// its state sink; each scene kind exposes only its own vocabulary
func (s *Scene) Apply(target string) (tween.ApplyFunc, bool) {
	st := s.state

	switch target {
	case "camera.zoom":
		return scalarSink(&st.CameraZoom), true
	case "camera.flight":
		return vec3Sink(&st.Flight), true
	case "flash.intensity":
		return scalarSink(&st.FlashIntensity), true
	case "shake.intensity":
		return scalarSink(&st.ShakeIntensity), true
	}

	switch s.kind {
	case KindBlackHole:
		switch target {
		case "vortex.twist":
			return scalarSink(&st.VortexTwist), true
		case "vortex.pull":
			return scalarSink(&st.VortexPull), true
		case "disc.color":
			return colorSink(&st.DiscColor), true
		}
	default:
		switch target {
		case "ring.color":
			return colorSink(&st.RingColor), true
		case "ring.radius":
			return scalarSink(&st.RingRadius), true
		case "ring.glow":
			return scalarSink(&st.RingGlow), true
		case "stars.speed":
			return scalarSink(&st.StarSpeed), true
		}
	}

	return nil, false
}

// Effect implements manifest.Binder for trigger effects
// Sound cues degrade to no-ops on a disabled player; absence of audio
// is a configuration, not an error
func (s *Scene) Effect(name string) (tween.EffectFunc, bool) {
	switch name {
	case "flash.kick":
		return s.state.KickFlash, true
	case "shake.kick":
		return s.state.KickShake, true
	case "sound.swell":
		return s.sound.Swell, true
	case "sound.ping":
		return s.sound.Ping, true
	case "sound.rumble":
		return s.sound.Rumble, true
	}
	return nil, false
}

// Action implements manifest.Binder for completion actions
func (s *Scene) Action(name string) (func(), bool) {
	switch name {
	case "menu.show":
		return s.menu.Show, true
	case "menu.hide":
		return s.menu.Hide, true
	}
	return nil, false
}

func scalarSink(dst *float64) tween.ApplyFunc {
	return func(v tween.Value) {
		*dst = float64(v.(tween.Scalar))
	}
}

func vec3Sink(dst *vmath.Vec3) tween.ApplyFunc {
	return func(v tween.Value) {
		*dst = vmath.Vec3(v.(tween.Vec3))
	}
}

func colorSink(dst *core.RGB) tween.ApplyFunc {
	return func(v tween.Value) {
		*dst = core.RGB(v.(tween.Color))
	}
}
