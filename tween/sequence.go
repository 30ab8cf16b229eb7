package tween

import (
	"time"

	"github.com/lixenwraith/voidgate/vmath"
)

// EffectFunc is a one-shot, fire-and-forget side effect bound to a
// trigger point (play a sound, kick the screen shake)
// It must never block the tick
type EffectFunc func()

// FaultFunc is notified when an apply or effect callback panics
// kind is "channel" or "trigger"; id names the failing hook
type FaultFunc func(kind, id string, recovered any)

// TriggerPoint fires its effect exactly once per run, at the first
// tick where sequence progress reaches the threshold
type TriggerPoint struct {
	name      string
	threshold float64
	effect    EffectFunc
	fired     bool
}

// Name returns the trigger identifier
func (tp *TriggerPoint) Name() string { return tp.name }

// Fired reports whether the effect has run this sequence run
func (tp *TriggerPoint) Fired() bool { return tp.fired }

// Sequence bundles channels and trigger points sharing one logical
// run: one progress clock, one completion
// Sequences are value objects built fresh per run, never reused, so
// stale fired flags and stale start values cannot occur
type Sequence struct {
	id       string
	channels []*Channel
	triggers []*TriggerPoint
	total    time.Duration
	tail     time.Duration

	onComplete func()
	onFault    FaultFunc

	progress float64
	complete bool
}

// ID returns the sequence name
func (s *Sequence) ID() string { return s.id }

// Total returns the sequence's logical duration
func (s *Sequence) Total() time.Duration { return s.total }

// Tail returns the non-interruptible settle delay after completion,
// before the coordinator accepts the next start
func (s *Sequence) Tail() time.Duration { return s.tail }

// Progress returns the last computed global progress in [0, 1]
func (s *Sequence) Progress() float64 { return s.progress }

// Channels exposes the channel list for inspection (sandbox tracing)
func (s *Sequence) Channels() []*Channel { return s.channels }

// Triggers exposes the trigger list for inspection
func (s *Sequence) Triggers() []*TriggerPoint { return s.triggers }

// SetFaultHandler installs the panic policy for apply and effect
// callbacks; a nil handler swallows faults silently
func (s *Sequence) SetFaultHandler(fn FaultFunc) { s.onFault = fn }

// Tick advances every channel in declaration order, then fires due
// triggers in declaration order, and returns true once all channels
// have finished
// Callback panics are contained per hook: one failing collaborator
// never blocks the remaining channels or triggers
func (s *Sequence) Tick(elapsed time.Duration) bool {
	if s.complete {
		return true
	}

	if s.total > 0 {
		s.progress = vmath.Clamp01(float64(elapsed) / float64(s.total))
	} else {
		s.progress = 1
	}

	allDone := true
	for _, ch := range s.channels {
		s.tickChannel(ch, elapsed)
		if !ch.Done() {
			allDone = false
		}
	}

	for _, tp := range s.triggers {
		if tp.fired || tp.threshold > s.progress {
			continue
		}
		tp.fired = true
		s.fireTrigger(tp)
	}

	if allDone && s.progress >= 1 {
		s.complete = true
	}
	return s.complete
}

// Finish invokes the completion callback; the coordinator calls this
// exactly once per successful run, never on an aborted run
func (s *Sequence) Finish() {
	if s.onComplete == nil {
		return
	}
	defer s.recoverFault("complete", s.id)
	s.onComplete()
}

func (s *Sequence) tickChannel(ch *Channel, elapsed time.Duration) {
	defer s.recoverFault("channel", ch.ID())
	ch.Tick(elapsed)
}

func (s *Sequence) fireTrigger(tp *TriggerPoint) {
	defer s.recoverFault("trigger", tp.name)
	if tp.effect != nil {
		tp.effect()
	}
}

func (s *Sequence) recoverFault(kind, id string) {
	if r := recover(); r != nil && s.onFault != nil {
		s.onFault(kind, id, r)
	}
}
