package main

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/lixenwraith/voidgate/audio"
	"github.com/lixenwraith/voidgate/engine"
	"github.com/lixenwraith/voidgate/manifest"
	"github.com/lixenwraith/voidgate/scene"
)

func newTestApp() *app {
	mock := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	a := &app{
		logger: log.New(io.Discard, "", 0),
		scn:    scene.New(scene.KindPortal, mock, audio.Disabled()),
		table:  manifest.Default(),
	}
	a.coord = engine.NewCoordinator(mock, a.build, nil, a.logger)
	return a
}

// TestReturnKeyRequiresMenu verifies r is a no-op until the menu is
// shown, and an accepted return hides it
func TestReturnKeyRequiresMenu(t *testing.T) {
	a := newTestApp()

	a.handleReturn()
	if a.coord.State() != engine.StateIdle {
		t.Fatal("return started without the menu shown")
	}

	a.scn.Menu().Show()
	a.handleReturn()
	if a.coord.ActiveID() != "return" {
		t.Fatalf("active %q after return key, want return", a.coord.ActiveID())
	}
	if a.scn.Menu().Visible() {
		t.Error("menu still visible after accepted return")
	}
}

// TestReturnKeyKeepsMenuOnRejectedStart verifies the menu stays up
// when the coordinator rejects the return because a run is active
func TestReturnKeyKeepsMenuOnRejectedStart(t *testing.T) {
	a := newTestApp()

	if ok, _ := a.coord.Start("activate"); !ok {
		t.Fatal("activate rejected while idle")
	}
	a.scn.Menu().Show()

	a.handleReturn()
	if a.coord.ActiveID() != "activate" {
		t.Errorf("active %q, want the running activate", a.coord.ActiveID())
	}
	if !a.scn.Menu().Visible() {
		t.Error("menu hidden although return was rejected")
	}
}
