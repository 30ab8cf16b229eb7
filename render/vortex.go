package render

import (
	"math"
	"time"

	"github.com/lixenwraith/voidgate/parameter"
	"github.com/lixenwraith/voidgate/scene"
	"github.com/lixenwraith/voidgate/vmath"
)

const vortexArms = 3

// drawVortex renders the black hole: spiral accretion arms winding
// into a dark core
// Twist controls how many radians each arm wraps, pull controls how
// hard the arms bend inward and how large the dark core grows
func (r *Renderer) drawVortex(f frame, st *scene.State, now time.Time) {
	cx := float64(f.w) / 2
	cy := float64(f.h) / 2

	flightScale := 1.0
	if st.Flight.Z > 0.05 {
		flightScale = vclamp(parameter.PortalRestDepth/st.Flight.Z, 0, 8)
	}
	maxRy := parameter.VortexDiscRadius * cy * st.CameraZoom * flightScale
	if maxRy < 1 {
		return
	}
	rotation := float64(now.UnixNano()) / float64(time.Second) * 0.6

	coreFrac := vclamp(0.15+st.VortexPull*0.4, 0, 0.85)
	samples := int(maxRy * vmath.TerminalAspect * 8)
	if samples < 48 {
		samples = 48
	}

	for arm := 0; arm < vortexArms; arm++ {
		armBase := float64(arm) / vortexArms * 2 * math.Pi
		for i := 0; i < samples; i++ {
			t := float64(i) / float64(samples) // 0 at rim, 1 at core
			frac := 1 - t*(1-coreFrac)
			ry := maxRy * frac
			theta := armBase + rotation + st.VortexTwist*2*math.Pi*math.Pow(t, 1+st.VortexPull)

			x := cx + ry*vmath.TerminalAspect*math.Cos(theta)
			y := cy + ry*math.Sin(theta)

			heat := 0.25 + 0.75*t // hotter toward the horizon
			r.set(f, int(math.Round(x)), int(math.Round(y)), armRune(t), st.DiscColor.Scale(heat))
		}
	}

	// Event horizon: a faint rim around the dark core
	coreRy := maxRy * coreFrac
	if coreRy >= 1 {
		r.drawEllipse(f, cx, cy, coreRy*vmath.TerminalAspect, coreRy, '░', st.DiscColor.Scale(0.35))
	}
}

func armRune(t float64) rune {
	switch {
	case t > 0.8:
		return '@'
	case t > 0.5:
		return 'o'
	case t > 0.25:
		return '+'
	default:
		return '.'
	}
}
