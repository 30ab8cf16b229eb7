package render

import (
	"math"

	"github.com/lixenwraith/voidgate/core"
	"github.com/lixenwraith/voidgate/parameter"
	"github.com/lixenwraith/voidgate/scene"
	"github.com/lixenwraith/voidgate/vmath"
)

// drawPortal renders the ring ellipse plus an inner glow halo
// The flight depth scales the ring: as the camera closes on the portal
// the ring fills the screen, and once the camera passes through it the
// ring is projected behind the viewer and disappears
func (r *Renderer) drawPortal(f frame, st *scene.State) {
	cx := float64(f.w) / 2
	cy := float64(f.h) / 2

	z := st.Flight.Z
	if z <= 0.05 {
		return // through the portal
	}
	flightScale := vclamp(parameter.PortalRestDepth/z, 0, 12)

	ry := st.RingRadius * cy * st.CameraZoom * flightScale
	rx := ry * vmath.TerminalAspect
	if ry < 1 || rx < 1 {
		return
	}

	// Halo first so the ring overdraws it
	halo := st.RingColor.Scale(0.25 * st.RingGlow)
	r.drawEllipse(f, cx, cy, rx*0.82, ry*0.82, '·', halo)

	ch := ringRune(st.RingGlow)
	color := st.RingColor.Scale(0.55 + 0.45*vclamp(st.RingGlow, 0, 1))
	r.drawEllipse(f, cx, cy, rx, ry, ch, color)
}

func ringRune(glow float64) rune {
	switch {
	case glow > 0.8:
		return '█'
	case glow > 0.55:
		return '▓'
	case glow > 0.3:
		return '▒'
	default:
		return '░'
	}
}

// drawEllipse walks the perimeter with enough steps that adjacent
// samples land on neighboring cells
func (r *Renderer) drawEllipse(f frame, cx, cy, rx, ry float64, ch rune, c core.RGB) {
	steps := int(2*math.Pi*math.Max(rx, ry)) * 2
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		theta := float64(i) / float64(steps) * 2 * math.Pi
		x := cx + rx*math.Cos(theta)
		y := cy + ry*math.Sin(theta)
		r.set(f, int(math.Round(x)), int(math.Round(y)), ch, c)
	}
}
