package engine

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/voidgate/status"
	"github.com/lixenwraith/voidgate/tween"
)

func testFactory(durations map[string]time.Duration) Factory {
	return func(name string) (Runner, error) {
		d, ok := durations[name]
		if !ok {
			return nil, &tween.ConfigError{Sequence: name, Reason: "unknown sequence"}
		}
		return tween.NewSequence(name).
			Tail(100 * time.Millisecond).
			Channel("zoom", tween.Scalar(0), tween.Scalar(1), d, tween.Linear, nil).
			Build()
	}
}

// TestAtMostOneActive starts the same sequence twice in the same tick:
// the second call is rejected and the first run stays active
func TestAtMostOneActive(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewCoordinator(mock, testFactory(map[string]time.Duration{
		"activate": 2500 * time.Millisecond,
		"plunge":   900 * time.Millisecond,
	}), nil, nil)

	ok, err := c.Start("activate")
	if !ok || err != nil {
		t.Fatalf("first start: ok=%v err=%v", ok, err)
	}
	ok, err = c.Start("activate")
	if ok || err != nil {
		t.Fatalf("second start same tick: ok=%v err=%v, want rejection", ok, err)
	}
	ok, _ = c.Start("plunge")
	if ok {
		t.Fatal("different sequence accepted while running")
	}

	if c.ActiveID() != "activate" {
		t.Errorf("active sequence %q, want first call's %q", c.ActiveID(), "activate")
	}
	if c.State() != StateRunning {
		t.Errorf("state %s, want Running", c.State())
	}
}

// TestFullRunLifecycle walks Idle, Running, Completing, back to Idle and
// checks the completion callback fires exactly once with the id
func TestFullRunLifecycle(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	reg := status.NewRegistry()
	c := NewCoordinator(mock, testFactory(map[string]time.Duration{
		"activate": time.Second,
	}), reg, nil)

	var completions []string
	c.SetOnComplete(func(id string) {
		completions = append(completions, id)
	})

	if ok, _ := c.Start("activate"); !ok {
		t.Fatal("start rejected while idle")
	}

	// Drive to the end of the channel work (63 ticks × 16ms = 1008ms)
	for i := 0; i < 63; i++ {
		mock.Advance(16 * time.Millisecond)
		c.Tick()
	}
	if c.State() != StateCompleting {
		t.Fatalf("state %s after duration elapsed, want Completing", c.State())
	}
	if ok, _ := c.Start("activate"); ok {
		t.Fatal("start accepted during Completing tail")
	}

	// Drive through the tail
	for i := 0; i < 10; i++ {
		mock.Advance(16 * time.Millisecond)
		c.Tick()
	}
	if c.State() != StateIdle {
		t.Fatalf("state %s after tail, want Idle", c.State())
	}
	if len(completions) != 1 || completions[0] != "activate" {
		t.Errorf("completions = %v, want exactly [activate]", completions)
	}

	// Further ticks while idle change nothing
	c.Tick()
	if len(completions) != 1 {
		t.Errorf("completion re-fired on idle tick: %v", completions)
	}

	// The diagnostics registry tracked the finished run
	if got := reg.Floats.Get("coordinator.progress").Get(); got != 1 {
		t.Errorf("coordinator.progress = %v after full run, want 1", got)
	}

	// Next run is accepted again and progress restarts
	if ok, _ := c.Start("activate"); !ok {
		t.Error("start rejected after returning to Idle")
	}
	if got := reg.Ints.Get("coordinator.starts").Load(); got != 2 {
		t.Errorf("coordinator.starts = %d, want 2", got)
	}
	if got := reg.Ints.Get("coordinator.rejected").Load(); got != 1 {
		t.Errorf("coordinator.rejected = %d, want 1", got)
	}
	if got := reg.Floats.Get("coordinator.progress").Get(); got != 0 {
		t.Errorf("coordinator.progress = %v at fresh start, want 0", got)
	}
}

// TestAbortMidRun aborts at half progress: no further applies, no
// completion, Idle immediately
func TestAbortMidRun(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	applies := 0
	factory := func(name string) (Runner, error) {
		return tween.NewSequence(name).
			Channel("zoom", tween.Scalar(0), tween.Scalar(100), time.Second, tween.Linear, func(tween.Value) {
				applies++
			}).
			Build()
	}

	completed := false
	c := NewCoordinator(mock, factory, nil, nil)
	c.SetOnComplete(func(string) { completed = true })

	if ok, _ := c.Start("activate"); !ok {
		t.Fatal("start rejected")
	}
	mock.Advance(500 * time.Millisecond)
	c.Tick()

	appliesAtAbort := applies
	c.Abort()

	if c.State() != StateIdle {
		t.Fatalf("state %s after abort, want Idle", c.State())
	}
	if c.ActiveID() != "" {
		t.Errorf("active id %q after abort", c.ActiveID())
	}

	mock.Advance(time.Second)
	c.Tick()
	c.Tick()

	if applies != appliesAtAbort {
		t.Errorf("applies after abort: %d, want frozen at %d", applies, appliesAtAbort)
	}
	if completed {
		t.Error("completion callback fired on aborted run")
	}
}

// Completion fires at the Completing to Idle transition, so an abort
// during the tail suppresses it
func TestAbortDuringTailSuppressesCompletion(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewCoordinator(mock, testFactory(map[string]time.Duration{
		"activate": 100 * time.Millisecond,
	}), nil, nil)

	completed := false
	c.SetOnComplete(func(string) { completed = true })

	c.Start("activate")
	mock.Advance(100 * time.Millisecond)
	c.Tick()
	if c.State() != StateCompleting {
		t.Fatalf("state %s, want Completing", c.State())
	}

	c.Abort()
	mock.Advance(time.Second)
	c.Tick()

	if completed {
		t.Error("completion fired despite tail abort")
	}
	if c.State() != StateIdle {
		t.Errorf("state %s, want Idle", c.State())
	}
}

// TestAbortFromTriggerEffect verifies re-entrant abort: the effect's
// own code completes, the sequence gets no further ticks
func TestAbortFromTriggerEffect(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var c *Coordinator
	effectFinished := false
	applies := 0

	factory := func(name string) (Runner, error) {
		return tween.NewSequence(name).
			Channel("zoom", tween.Scalar(0), tween.Scalar(1), time.Second, tween.Linear, func(tween.Value) {
				applies++
			}).
			Trigger("selfabort", 0.5, func() {
				c.Abort()
				effectFinished = true
			}).
			Build()
	}
	c = NewCoordinator(mock, factory, nil, nil)

	c.Start("activate")
	mock.Advance(600 * time.Millisecond)
	c.Tick()

	if !effectFinished {
		t.Error("effect code after Abort() did not run")
	}
	if c.State() != StateIdle {
		t.Fatalf("state %s, want Idle", c.State())
	}

	appliesAtAbort := applies
	mock.Advance(100 * time.Millisecond)
	c.Tick()
	if applies != appliesAtAbort {
		t.Error("aborted sequence still received ticks")
	}
}

// stuckRunner simulates a sequence whose collaborator never lets it
// finish, for watchdog coverage
type stuckRunner struct {
	id    string
	total time.Duration
}

func (r *stuckRunner) ID() string                      { return r.id }
func (r *stuckRunner) Tick(time.Duration) bool         { return false }
func (r *stuckRunner) Total() time.Duration            { return r.total }
func (r *stuckRunner) Tail() time.Duration             { return 0 }
func (r *stuckRunner) SetFaultHandler(tween.FaultFunc) {}
func (r *stuckRunner) Finish()                         {}

// TestWatchdogForcesIdle runs a 900ms sequence that never completes
// with a 2000ms grace: the coordinator force-resets at or after 2900ms
// and logs a diagnostic naming the sequence
func TestWatchdogForcesIdle(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	var logBuf bytes.Buffer

	factory := func(name string) (Runner, error) {
		return &stuckRunner{id: name, total: 900 * time.Millisecond}, nil
	}
	c := NewCoordinator(mock, factory, nil, log.New(&logBuf, "", 0))
	c.SetWatchdogGrace(2000 * time.Millisecond)

	c.Start("plunge")

	// Just inside the budget: still running
	mock.SetTime(mock.Now().Add(2900 * time.Millisecond))
	c.Tick()
	if c.State() != StateRunning {
		t.Fatalf("state %s at exactly total+grace, want Running", c.State())
	}

	mock.Advance(16 * time.Millisecond)
	c.Tick()
	if c.State() != StateIdle {
		t.Fatalf("state %s past total+grace, want Idle", c.State())
	}
	if !strings.Contains(logBuf.String(), "plunge") {
		t.Errorf("watchdog diagnostic does not name the sequence: %q", logBuf.String())
	}
	if !strings.Contains(logBuf.String(), "watchdog") {
		t.Errorf("diagnostic missing watchdog marker: %q", logBuf.String())
	}
}

// TestConfigErrorFailsStart verifies a bad definition fails fast with
// nothing started
func TestConfigErrorFailsStart(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewCoordinator(mock, testFactory(nil), nil, nil)

	ok, err := c.Start("missing")
	if ok {
		t.Fatal("start accepted for unknown sequence")
	}
	var cfgErr *tween.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error %v (%T), want *tween.ConfigError", err, err)
	}
	if c.State() != StateIdle {
		t.Errorf("state %s after failed start, want Idle", c.State())
	}
	if c.ActiveID() != "" {
		t.Errorf("active id %q after failed start", c.ActiveID())
	}
}

// TestFaultIsolationEndToEnd drives a sequence with a permanently
// panicking apply through the coordinator: the run still completes
func TestFaultIsolationEndToEnd(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	var logBuf bytes.Buffer

	healthyApplies := 0
	factory := func(name string) (Runner, error) {
		return tween.NewSequence(name).
			Tail(50 * time.Millisecond).
			Channel("broken", tween.Scalar(0), tween.Scalar(1), 200*time.Millisecond, tween.Linear, func(tween.Value) {
				panic("render target gone")
			}).
			Channel("healthy", tween.Scalar(0), tween.Scalar(1), 200*time.Millisecond, tween.Linear, func(tween.Value) {
				healthyApplies++
			}).
			Build()
	}

	completed := false
	c := NewCoordinator(mock, factory, nil, log.New(&logBuf, "", 0))
	c.SetOnComplete(func(string) { completed = true })

	c.Start("activate")
	for i := 0; i < 30; i++ {
		mock.Advance(16 * time.Millisecond)
		c.Tick()
	}

	if !completed {
		t.Fatalf("sequence never completed; state %s", c.State())
	}
	if healthyApplies == 0 {
		t.Error("healthy channel starved by panicking sibling")
	}
	if !strings.Contains(logBuf.String(), "broken") {
		t.Errorf("fault log does not name the channel: %q", logBuf.String())
	}
}

// TestClockElapsed sanity-checks the run clock against the mock provider
func TestClockElapsed(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	clock := NewClock(mock)

	if clock.Elapsed() != 0 {
		t.Errorf("fresh clock elapsed %v, want 0", clock.Elapsed())
	}
	mock.Advance(1500 * time.Millisecond)
	if clock.Elapsed() != 1500*time.Millisecond {
		t.Errorf("elapsed %v, want 1.5s", clock.Elapsed())
	}
	clock.Reset()
	if clock.Elapsed() != 0 {
		t.Errorf("elapsed after reset %v, want 0", clock.Elapsed())
	}
}
