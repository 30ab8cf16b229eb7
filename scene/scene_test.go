package scene

import (
	"testing"
	"time"

	"github.com/lixenwraith/voidgate/audio"
	"github.com/lixenwraith/voidgate/engine"
	"github.com/lixenwraith/voidgate/tween"
)

func newTestScene(kind Kind) (*Scene, *engine.MockTimeProvider) {
	mock := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(kind, mock, audio.Disabled()), mock
}

// TestApplyRouting verifies channel targets write into the right
// state fields and each scene kind exposes only its own vocabulary
func TestApplyRouting(t *testing.T) {
	portal, _ := newTestScene(KindPortal)

	apply, ok := portal.Apply("camera.zoom")
	if !ok {
		t.Fatal("portal does not expose camera.zoom")
	}
	apply(tween.Scalar(2.4))
	if portal.State().CameraZoom != 2.4 {
		t.Errorf("zoom sink wrote %v", portal.State().CameraZoom)
	}

	apply, ok = portal.Apply("ring.color")
	if !ok {
		t.Fatal("portal does not expose ring.color")
	}
	apply(tween.Color{R: 1, G: 2, B: 3})
	if portal.State().RingColor.G != 2 {
		t.Errorf("color sink wrote %+v", portal.State().RingColor)
	}

	if _, ok := portal.Apply("vortex.twist"); ok {
		t.Error("portal exposes the black-hole vocabulary")
	}
	if _, ok := portal.Apply("unknown.target"); ok {
		t.Error("portal resolves an unknown target")
	}

	hole, _ := newTestScene(KindBlackHole)
	if _, ok := hole.Apply("ring.glow"); ok {
		t.Error("black hole exposes the portal vocabulary")
	}
	apply, ok = hole.Apply("vortex.pull")
	if !ok {
		t.Fatal("black hole does not expose vortex.pull")
	}
	apply(tween.Scalar(0.9))
	if hole.State().VortexPull != 0.9 {
		t.Errorf("pull sink wrote %v", hole.State().VortexPull)
	}
}

// TestEffectAndActionRouting verifies trigger and completion bindings
func TestEffectAndActionRouting(t *testing.T) {
	s, mock := newTestScene(KindPortal)

	for _, name := range []string{"flash.kick", "shake.kick", "sound.swell", "sound.ping", "sound.rumble"} {
		if _, ok := s.Effect(name); !ok {
			t.Errorf("effect %q not bound", name)
		}
	}
	if _, ok := s.Effect("unknown.effect"); ok {
		t.Error("unknown effect resolved")
	}

	show, ok := s.Action("menu.show")
	if !ok {
		t.Fatal("menu.show not bound")
	}
	show()
	if !s.Menu().Visible() {
		t.Error("menu.show did not show the menu")
	}
	hide, _ := s.Action("menu.hide")
	hide()
	if s.Menu().Visible() {
		t.Error("menu.hide did not hide the menu")
	}

	// A kicked flash decays on its own clock
	kick, _ := s.Effect("flash.kick")
	kick()
	s.Update()
	if s.State().FlashIntensity != 1 {
		t.Errorf("flash at kick = %v, want 1", s.State().FlashIntensity)
	}
	mock.Advance(250 * time.Millisecond)
	s.Update()
	mid := s.State().FlashIntensity
	if mid <= 0 || mid >= 1 {
		t.Errorf("flash mid-decay = %v, want in (0,1)", mid)
	}
	mock.Advance(time.Second)
	s.Update()
	if s.State().FlashIntensity != 0 {
		t.Errorf("flash after decay = %v, want 0", s.State().FlashIntensity)
	}
}

// TestSpentEnvelopeReleasesIntensity verifies a fully decayed kick
// gives the intensity back to channel writes instead of zeroing it
// every frame
func TestSpentEnvelopeReleasesIntensity(t *testing.T) {
	s, mock := newTestScene(KindPortal)

	flashKick, _ := s.Effect("flash.kick")
	shakeKick, _ := s.Effect("shake.kick")
	flashKick()
	shakeKick()
	mock.Advance(2 * time.Second)
	s.Update()

	flashSink, ok := s.Apply("flash.intensity")
	if !ok {
		t.Fatal("flash.intensity not bound")
	}
	shakeSink, ok := s.Apply("shake.intensity")
	if !ok {
		t.Fatal("shake.intensity not bound")
	}
	flashSink(tween.Scalar(0.75))
	shakeSink(tween.Scalar(0.4))

	mock.Advance(16 * time.Millisecond)
	s.Update()
	if got := s.State().FlashIntensity; got != 0.75 {
		t.Errorf("channel-driven flash stomped to %v, want 0.75", got)
	}
	if got := s.State().ShakeIntensity; got != 0.4 {
		t.Errorf("channel-driven shake stomped to %v, want 0.4", got)
	}
	t.Logf("✓ spent envelopes release the intensity targets")
}

// TestHitTest checks the clickable ellipse geometry
func TestHitTest(t *testing.T) {
	s, _ := newTestScene(KindPortal)
	const w, h = 120, 40

	if !s.HitTest(60, 20, w, h) {
		t.Error("center not inside the portal")
	}
	if s.HitTest(0, 0, w, h) {
		t.Error("corner inside the portal")
	}
	if s.HitTest(119, 39, w, h) {
		t.Error("far corner inside the portal")
	}

	// Vertical extent: ry = 0.55 * 20 = 11 cells
	if !s.HitTest(60, 20+10, w, h) {
		t.Error("point just inside the vertical radius misses")
	}
	if s.HitTest(60, 20+13, w, h) {
		t.Error("point past the vertical radius hits")
	}

	// The ring scales with zoom
	apply, _ := s.Apply("camera.zoom")
	apply(tween.Scalar(0.05))
	if s.HitTest(60, 20+10, w, h) {
		t.Error("shrunken ring still hit at the old radius")
	}
}

// TestReset verifies rest values return after a run mutated them
func TestReset(t *testing.T) {
	s, _ := newTestScene(KindPortal)

	apply, _ := s.Apply("camera.zoom")
	apply(tween.Scalar(3.0))
	apply2, _ := s.Apply("stars.speed")
	apply2(tween.Scalar(30))
	s.Menu().Show()

	s.Reset()

	if s.State().CameraZoom != 1.0 {
		t.Errorf("zoom after reset = %v", s.State().CameraZoom)
	}
	if s.State().StarSpeed != 1.0 {
		t.Errorf("star speed after reset = %v", s.State().StarSpeed)
	}
	if s.Menu().Visible() {
		t.Error("menu still visible after reset")
	}
}

// TestPrimarySequence pins the pointer binding per scene kind
func TestPrimarySequence(t *testing.T) {
	portal, _ := newTestScene(KindPortal)
	if portal.PrimarySequence() != "activate" {
		t.Errorf("portal primary = %q", portal.PrimarySequence())
	}
	hole, _ := newTestScene(KindBlackHole)
	if hole.PrimarySequence() != "collapse" {
		t.Errorf("black hole primary = %q", hole.PrimarySequence())
	}
}
