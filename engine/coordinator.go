package engine

import (
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/voidgate/status"
	"github.com/lixenwraith/voidgate/tween"
)

// State is the coordinator's activation phase
type State uint8

const (
	// StateIdle accepts the next start request
	StateIdle State = iota
	// StateRunning is driving the active sequence
	StateRunning
	// StateCompleting is the non-interruptible settle tail after the
	// sequence finishes, before the next start is accepted
	StateCompleting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateCompleting:
		return "Completing"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Runner is the coordinator's view of one sequence run
// *tween.Sequence is the production implementation
type Runner interface {
	ID() string
	Tick(elapsed time.Duration) bool
	Total() time.Duration
	Tail() time.Duration
	SetFaultHandler(fn tween.FaultFunc)
	Finish()
}

// Factory builds a fresh runner for a named sequence
// A build error is a configuration problem and fails the start call;
// nothing partially starts
type Factory func(name string) (Runner, error)

// Coordinator owns the activation state machine: at most one sequence
// is active system-wide, every channel is driven from one clock per
// tick, and trigger effects fire exactly once each
//
// The coordinator is single-threaded by design: Start, Tick and Abort
// must all be called from the loop goroutine that owns it
type Coordinator struct {
	provider TimeProvider
	clock    *Clock
	factory  Factory
	logger   *log.Logger

	state        State
	active       Runner
	completingAt time.Time

	// Watchdog grace beyond the sequence's own budget; 0 disables
	grace time.Duration

	onComplete func(id string)

	statTicks     *atomic.Int64
	statStarts    *atomic.Int64
	statRejected  *atomic.Int64
	statFaults    *atomic.Int64
	statWatchdog  *atomic.Int64
	statConfigErr *atomic.Int64
	statProgress  *status.AtomicFloat
}

// NewCoordinator creates an idle coordinator
// logger may be nil (diagnostics discarded); reg may be nil (metrics
// kept in a private registry)
func NewCoordinator(provider TimeProvider, factory Factory, reg *status.Registry, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Coordinator{
		provider:      provider,
		clock:         NewClock(provider),
		factory:       factory,
		logger:        logger,
		statTicks:     reg.Ints.Get("coordinator.ticks"),
		statStarts:    reg.Ints.Get("coordinator.starts"),
		statRejected:  reg.Ints.Get("coordinator.rejected"),
		statFaults:    reg.Ints.Get("coordinator.faults"),
		statWatchdog:  reg.Ints.Get("coordinator.watchdog_aborts"),
		statConfigErr: reg.Ints.Get("coordinator.config_errors"),
		statProgress:  reg.Floats.Get("coordinator.progress"),
	}
}

// SetWatchdogGrace enables the stuck-sequence failsafe: if a run
// exceeds its own duration budget by more than grace, the coordinator
// force-aborts to Idle and logs a diagnostic
func (c *Coordinator) SetWatchdogGrace(grace time.Duration) {
	c.grace = grace
}

// SetOnComplete installs the completion callback, invoked exactly once
// per successful run with the sequence id, after the settle tail, with
// the coordinator already back in Idle
func (c *Coordinator) SetOnComplete(fn func(id string)) {
	c.onComplete = fn
}

// State returns the current activation phase
func (c *Coordinator) State() State {
	return c.state
}

// ActiveID returns the active sequence's id, or "" when idle
func (c *Coordinator) ActiveID() string {
	if c.active == nil {
		return ""
	}
	return c.active.ID()
}

// Start begins the named sequence if the coordinator is idle
// Returns false with nil error when a sequence is already active (a
// normal rejection, not a failure); returns false with the build error
// when the sequence definition is invalid
func (c *Coordinator) Start(name string) (bool, error) {
	if c.state != StateIdle {
		c.statRejected.Add(1)
		return false, nil
	}

	seq, err := c.factory(name)
	if err != nil {
		c.statConfigErr.Add(1)
		c.logger.Printf("start %q rejected: %v", name, err)
		return false, fmt.Errorf("start %q: %w", name, err)
	}

	seq.SetFaultHandler(c.recordFault)
	c.active = seq
	c.clock.Reset()
	c.state = StateRunning
	c.statStarts.Add(1)
	c.statProgress.Set(0)
	return true, nil
}

// Tick advances the active sequence by the clock's elapsed time
// No-op while idle; exactly one Tick per frame is the expected cadence
func (c *Coordinator) Tick() {
	if c.state == StateIdle {
		return
	}
	c.statTicks.Add(1)

	switch c.state {
	case StateRunning:
		seq := c.active
		elapsed := c.clock.Elapsed()
		if total := seq.Total(); total > 0 {
			frac := float64(elapsed) / float64(total)
			if frac > 1 {
				frac = 1
			}
			c.statProgress.Set(frac)
		}
		done := seq.Tick(elapsed)
		if c.state != StateRunning || c.active != seq {
			// Aborted from inside a trigger effect; the discarded
			// sequence receives no further ticks
			return
		}
		if done {
			c.state = StateCompleting
			c.completingAt = c.provider.Now()
			return
		}
		c.checkWatchdog()

	case StateCompleting:
		if c.provider.Now().Sub(c.completingAt) >= c.active.Tail() {
			seq := c.active
			c.active = nil
			c.state = StateIdle
			seq.Finish()
			if c.onComplete != nil {
				c.onComplete(seq.ID())
			}
			return
		}
		c.checkWatchdog()
	}
}

// Abort discards the active sequence without firing its completion
// callback and returns to Idle immediately
// Safe to call from inside a trigger effect: the effect's remaining
// code runs, but the aborted sequence receives no further ticks
func (c *Coordinator) Abort() {
	if c.state == StateIdle {
		return
	}
	id := c.active.ID()
	from := c.state
	c.active = nil
	c.state = StateIdle
	c.logger.Printf("sequence %q aborted from %s", id, from)
}

func (c *Coordinator) checkWatchdog() {
	if c.grace <= 0 {
		return
	}

	var over time.Duration
	switch c.state {
	case StateRunning:
		over = c.clock.Elapsed() - c.active.Total()
	case StateCompleting:
		over = c.provider.Now().Sub(c.completingAt) - c.active.Tail()
	default:
		return
	}

	if over > c.grace {
		id := c.active.ID()
		c.active = nil
		c.state = StateIdle
		c.statWatchdog.Add(1)
		c.logger.Printf("watchdog: sequence %q exceeded its budget by %v (grace %v), forcing idle", id, over, c.grace)
	}
}

func (c *Coordinator) recordFault(kind, id string, recovered any) {
	c.statFaults.Add(1)
	c.logger.Printf("%s %q panicked: %v (sequence continues)", kind, id, recovered)
}
