package render

import (
	"math"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/voidgate/core"
	"github.com/lixenwraith/voidgate/engine"
	"github.com/lixenwraith/voidgate/parameter"
	"github.com/lixenwraith/voidgate/scene"
)

// Renderer draws the scene state to a tcell screen once per tick
// All GPU/terminal writes happen here, behind the channel apply
// boundary; the animation math never touches the screen
type Renderer struct {
	screen    tcell.Screen
	provider  engine.TimeProvider
	stars     []star
	lastFrame time.Time
	rng       *rand.Rand
}

// frame carries per-frame draw parameters: screen size, the shake
// offset applied to every cell, and the flash tint
type frame struct {
	w, h       int
	offX, offY int
	flash      float64
	bg         core.RGB
}

// NewRenderer creates a renderer and seeds the starfield
func NewRenderer(screen tcell.Screen, provider engine.TimeProvider) *Renderer {
	r := &Renderer{
		screen:   screen,
		provider: provider,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	r.seedStars()
	return r
}

// Render draws one frame of the given scene
func (r *Renderer) Render(s *scene.Scene) {
	st := s.State()
	now := r.provider.Now()

	dt := 0.0
	if !r.lastFrame.IsZero() {
		dt = now.Sub(r.lastFrame).Seconds()
	}
	r.lastFrame = now

	w, h := r.screen.Size()
	f := frame{w: w, h: h, flash: st.FlashIntensity}
	f.offX, f.offY = shakeOffset(st.ShakeIntensity, now)
	f.bg = core.RGBBlack.Lerp(core.RGBWhite, st.FlashIntensity*0.8)

	r.screen.Fill(' ', tcell.StyleDefault.Background(f.bg.Tcell()))

	r.drawStars(f, st, dt)
	switch s.Kind() {
	case scene.KindBlackHole:
		r.drawVortex(f, st, now)
	default:
		r.drawPortal(f, st)
	}
	if s.Menu().Visible() {
		r.drawMenu(f, s.Menu())
	}
	r.drawHint(f, s)

	r.screen.Show()
}

// set writes one cell with the frame's shake offset and flash tint
func (r *Renderer) set(f frame, x, y int, ch rune, fg core.RGB) {
	x += f.offX
	y += f.offY
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return
	}
	if f.flash > 0 {
		fg = fg.Lerp(core.RGBWhite, f.flash)
	}
	style := tcell.StyleDefault.Foreground(fg.Tcell()).Background(f.bg.Tcell())
	r.screen.SetContent(x, y, ch, nil, style)
}

// drawText writes a string, advancing by display width per rune
func (r *Renderer) drawText(f frame, x, y int, text string, fg core.RGB) {
	cx := x
	for _, ch := range text {
		r.set(f, cx, y, ch, fg)
		cx += runewidth.RuneWidth(ch)
	}
}

func shakeOffset(intensity float64, now time.Time) (int, int) {
	if intensity <= 0 {
		return 0, 0
	}
	amp := intensity * parameter.ShakeAmplitude
	phase := float64(now.UnixNano()) / float64(time.Second) * parameter.ShakeFrequencyHz * 2 * math.Pi
	x := int(math.Round(amp * math.Sin(phase)))
	y := int(math.Round(amp * 0.6 * math.Cos(phase*1.3)))
	return x, y
}
