package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/voidgate/audio"
	"github.com/lixenwraith/voidgate/engine"
	"github.com/lixenwraith/voidgate/input"
	"github.com/lixenwraith/voidgate/manifest"
	"github.com/lixenwraith/voidgate/parameter"
	"github.com/lixenwraith/voidgate/render"
	"github.com/lixenwraith/voidgate/scene"
	"github.com/lixenwraith/voidgate/status"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "voidgate: %v\n", err)
		os.Exit(2)
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "voidgate: open log: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()
		logger = log.New(f, "voidgate ", log.LstdFlags)
	}

	// tcell reads these before Init
	switch cfg.Color {
	case "truecolor":
		os.Setenv("COLORTERM", "truecolor")
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "voidgate: create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "voidgate: init screen: %v\n", err)
		os.Exit(1)
	}

	// Panic recovery: restore the terminal before the stack trace so
	// it is readable after a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nVOIDGATE CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	screen.EnableMouse()
	screen.HideCursor()

	sound := audio.Disabled()
	if !cfg.NoAudio {
		if sound, err = audio.NewPlayer(); err != nil {
			logger.Printf("audio init failed: %v (continuing without audio)", err)
		}
	}
	defer sound.Close()

	table := manifest.Default()
	if cfg.Manifest != "" {
		if table, err = manifest.Load(cfg.Manifest); err != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "voidgate: load manifest: %v\n", err)
			os.Exit(2)
		}
	}

	kind := scene.KindPortal
	if cfg.Scene == "blackhole" {
		kind = scene.KindBlackHole
	}

	provider := engine.NewMonotonicTimeProvider()
	reg := status.NewRegistry()
	scn := scene.New(kind, provider, sound)

	app := &app{
		cfg:      cfg,
		screen:   screen,
		logger:   logger,
		provider: provider,
		scn:      scn,
		table:    table,
		renderer: render.NewRenderer(screen, provider),
	}

	app.coord = engine.NewCoordinator(provider, app.build, reg, logger)
	if cfg.WatchdogGrace > 0 {
		app.coord.SetWatchdogGrace(cfg.WatchdogGrace)
	} else {
		app.coord.SetWatchdogGrace(parameter.DefaultWatchdogGrace)
	}
	app.coord.SetOnComplete(func(id string) {
		logger.Printf("sequence %q completed", id)
	})

	hit := func(x, y int) bool {
		w, h := screen.Size()
		return scn.HitTest(x, y, w, h)
	}
	app.gate = input.NewGate(app.coord, hit, scn.PrimarySequence(), reg, logger)

	if cfg.Manifest != "" {
		watcher, err := manifest.NewWatcher(cfg.Manifest)
		if err != nil {
			logger.Printf("manifest watch unavailable: %v", err)
		} else {
			app.watcher = watcher
			defer watcher.Close()
		}
	}

	app.run()
	reg.LogTo(logger)
}

// app owns the frame loop state; the sequence table pointer is
// swappable so a manifest reload never disturbs a running sequence
type app struct {
	cfg      config
	screen   tcell.Screen
	logger   *log.Logger
	provider engine.TimeProvider
	scn      *scene.Scene
	coord    *engine.Coordinator
	gate     *input.Gate
	renderer *render.Renderer
	watcher  *manifest.Watcher

	table       *manifest.Table
	pendingPath string
	prevButtons tcell.ButtonMask
}

// build is the coordinator's sequence factory; it always reads the
// current table so reloads take effect on the next Start
func (a *app) build(name string) (engine.Runner, error) {
	seq, err := a.table.Build(name, a.scn)
	if err != nil {
		return nil, err
	}
	return seq, nil
}

func (a *app) run() {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	var watchEvents chan string
	var watchErrors chan error
	if a.watcher != nil {
		watchEvents = a.watcher.Events
		watchErrors = a.watcher.Errors
	}

	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.coord.Tick()
			a.applyPendingReload()
			a.scn.Update()
			a.renderer.Render(a.scn)

		case ev := <-events:
			if quit := a.handleEvent(ev); quit {
				return
			}

		case path := <-watchEvents:
			a.reload(path)

		case err := <-watchErrors:
			a.logger.Printf("manifest watch error: %v", err)
		}
	}
}

func (a *app) handleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false
}

func (a *app) handleKey(ev *tcell.EventKey) (quit bool) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}
	switch ev.Rune() {
	case 'q':
		return true
	case 'a':
		a.coord.Abort()
	case 'p':
		if a.scn.Kind() == scene.KindPortal && a.table.Has("plunge") {
			if _, err := a.coord.Start("plunge"); err != nil {
				a.logger.Printf("start plunge: %v", err)
			}
		}
	case 'r':
		a.handleReturn()
	}
	return false
}

// handleReturn backs out of the activated state: the portal plays its
// reverse sequence, the black hole snaps back to rest
// Only meaningful while the menu is shown; the menu stays up unless
// the coordinator actually accepts the return
func (a *app) handleReturn() {
	if !a.scn.Menu().Visible() {
		return
	}
	if a.scn.Kind() == scene.KindPortal && a.table.Has("return") {
		ok, err := a.coord.Start("return")
		if err != nil {
			a.logger.Printf("start return: %v", err)
			return
		}
		if ok {
			a.scn.Menu().Hide()
		}
		return
	}
	if a.coord.State() == engine.StateIdle {
		a.scn.Reset()
		a.scn.Menu().Hide()
	}
}

// handleMouse starts the scene's primary sequence on a press edge of
// the primary button inside the clickable shape
func (a *app) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && a.prevButtons&tcell.Button1 == 0
	a.prevButtons = buttons
	if !pressed {
		return
	}
	x, y := ev.Position()
	a.gate.PointerDown(x, y)
}

// reload swaps in a freshly parsed table, or defers the swap until the
// coordinator returns to idle so a running sequence keeps its timings
// The watcher reports any manifest-shaped file in the directory; only
// the configured one matters
func (a *app) reload(path string) {
	if filepath.Clean(path) != filepath.Clean(a.cfg.Manifest) {
		return
	}
	if a.coord.State() != engine.StateIdle {
		a.pendingPath = path
		a.logger.Printf("manifest %s changed while %s, reload deferred", path, a.coord.State())
		return
	}
	table, err := manifest.Load(path)
	if err != nil {
		a.logger.Printf("manifest reload rejected: %v", err)
		return
	}
	a.table = table
	a.logger.Printf("manifest %s reloaded (%d sequences)", path, len(table.Names()))
}

func (a *app) applyPendingReload() {
	if a.pendingPath == "" || a.coord.State() != engine.StateIdle {
		return
	}
	path := a.pendingPath
	a.pendingPath = ""
	a.reload(path)
}
