package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/voidgate/core"
	"github.com/lixenwraith/voidgate/scene"
)

var (
	menuBorder = core.RGB{R: 0x66, G: 0x7a, B: 0xcc}
	menuTitle  = core.RGB{R: 0xee, G: 0xee, B: 0xff}
	menuEntry  = core.RGB{R: 0xb0, G: 0xb8, B: 0xd8}
	hintColor  = core.RGB{R: 0x55, G: 0x5e, B: 0x78}
)

// drawMenu renders a bordered box centered on screen
// The menu is not shaken: a kicked envelope may still be decaying when
// the completion callback shows it, and readable text wins
func (r *Renderer) drawMenu(f frame, m *scene.Menu) {
	inner := runewidth.StringWidth(m.Title)
	for _, e := range m.Entries {
		if w := runewidth.StringWidth(e); w > inner {
			inner = w
		}
	}
	inner += 6 // padding either side of the widest line

	boxW := inner + 2
	boxH := len(m.Entries) + 5 // border, title, blank, entries, border
	x0 := (f.w - boxW) / 2
	y0 := (f.h - boxH) / 2

	still := f
	still.offX, still.offY = 0, 0

	r.drawBox(still, x0, y0, boxW, boxH)
	r.drawText(still, x0+1+(inner-runewidth.StringWidth(m.Title))/2, y0+1, m.Title, menuTitle)
	for i, e := range m.Entries {
		r.drawText(still, x0+1+(inner-runewidth.StringWidth(e))/2, y0+3+i, e, menuEntry)
	}
}

func (r *Renderer) drawBox(f frame, x0, y0, w, h int) {
	for x := x0; x < x0+w; x++ {
		for y := y0; y < y0+h; y++ {
			ch := ' '
			switch {
			case x == x0 && y == y0:
				ch = '╭'
			case x == x0+w-1 && y == y0:
				ch = '╮'
			case x == x0 && y == y0+h-1:
				ch = '╰'
			case x == x0+w-1 && y == y0+h-1:
				ch = '╯'
			case y == y0 || y == y0+h-1:
				ch = '─'
			case x == x0 || x == x0+w-1:
				ch = '│'
			}
			r.set(f, x, y, ch, menuBorder)
		}
	}
}

// drawHint writes the key help line along the bottom edge
func (r *Renderer) drawHint(f frame, s *scene.Scene) {
	hint := "click the portal   p plunge   r return   a abort   q quit"
	if s.Kind() == scene.KindBlackHole {
		hint = "click the disc   r reset   a abort   q quit"
	}
	still := f
	still.offX, still.offY = 0, 0
	r.drawText(still, 1, f.h-1, hint, hintColor)
}
