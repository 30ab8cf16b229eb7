package render

import (
	"math"

	"github.com/lixenwraith/voidgate/core"
	"github.com/lixenwraith/voidgate/parameter"
	"github.com/lixenwraith/voidgate/scene"
	"github.com/lixenwraith/voidgate/vmath"
)

// star positions are offsets from screen center in cell units, so the
// field survives terminal resizes without reseeding
type star struct {
	x, y  float64
	depth float64 // 0.2..1, scales both drift and brightness
}

var starColor = core.RGB{R: 0xc8, G: 0xd0, B: 0xff}

func (r *Renderer) seedStars() {
	r.stars = make([]star, parameter.StarCount)
	for i := range r.stars {
		r.stars[i] = r.spawnStar(true)
	}
}

// spawnStar places a star; scattered spawns fill the whole field at
// startup, later respawns emerge near the center so the radial drift
// reads as flying forward
func (r *Renderer) spawnStar(scattered bool) star {
	angle := r.rng.Float64() * 2 * math.Pi
	dist := 2 + r.rng.Float64()*4
	if scattered {
		dist = r.rng.Float64() * 40
	}
	return star{
		x:     math.Cos(angle) * dist * vmath.TerminalAspect,
		y:     math.Sin(angle) * dist,
		depth: 0.2 + r.rng.Float64()*0.8,
	}
}

func (r *Renderer) drawStars(f frame, st *scene.State, dt float64) {
	cx := float64(f.w) / 2
	cy := float64(f.h) / 2
	limX := cx + 2
	limY := cy + 2

	for i := range r.stars {
		s := &r.stars[i]
		// Radial outward drift, faster for nearer (deeper) stars
		k := 1 + parameter.StarBaseDrift*st.StarSpeed*s.depth*dt
		s.x *= k
		s.y *= k
		if math.Abs(s.x) > limX || math.Abs(s.y) > limY {
			*s = r.spawnStar(false)
			continue
		}

		bright := s.depth * vclamp(0.3+st.StarSpeed*0.1, 0.2, 1)
		ch := '.'
		switch {
		case bright > 0.75:
			ch = '*'
		case bright > 0.45:
			ch = '+'
		}
		r.set(f, int(cx+s.x), int(cy+s.y), ch, starColor.Scale(bright))
	}
}

func vclamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
