package input

import (
	"io"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/voidgate/engine"
	"github.com/lixenwraith/voidgate/status"
)

// HitFunc tests a pointer position against the scene's clickable shape
type HitFunc func(x, y int) bool

// Gate deduplicates pointer activation against the coordinator state
// It performs no debouncing of its own: exactly-one-start under rapid
// repeated events is guaranteed by the coordinator's Idle guard, which
// is the single place that invariant lives
type Gate struct {
	coord    *engine.Coordinator
	hit      HitFunc
	sequence string
	logger   *log.Logger

	statHits     *atomic.Int64
	statMisses   *atomic.Int64
	statRejected *atomic.Int64
}

// NewGate creates a gate starting the named sequence on a hit
// reg and logger may be nil
func NewGate(coord *engine.Coordinator, hit HitFunc, sequence string, reg *status.Registry, logger *log.Logger) *Gate {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Gate{
		coord:        coord,
		hit:          hit,
		sequence:     sequence,
		logger:       logger,
		statHits:     reg.Ints.Get("gate.hits"),
		statMisses:   reg.Ints.Get("gate.misses"),
		statRejected: reg.Ints.Get("gate.rejected"),
	}
}

// PointerDown handles one pointer press; returns true if a sequence
// was started
// Misses and presses while a sequence is active are silent no-ops;
// a panicking hit-test collaborator is logged and treated as a miss
func (g *Gate) PointerDown(x, y int) bool {
	if !g.safeHit(x, y) {
		g.statMisses.Add(1)
		return false
	}

	if g.coord.State() != engine.StateIdle {
		g.statRejected.Add(1)
		return false
	}

	ok, err := g.coord.Start(g.sequence)
	if err != nil {
		g.logger.Printf("gate: start %q failed: %v", g.sequence, err)
		return false
	}
	if ok {
		g.statHits.Add(1)
	}
	return ok
}

func (g *Gate) safeHit(x, y int) (hit bool) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Printf("gate: hit test panicked: %v (treated as miss)", r)
			hit = false
		}
	}()
	return g.hit(x, y)
}
