// seq-trace drives one manifest sequence headlessly and prints every
// tick: progress, channel values, trigger firings. Useful for tuning
// timings without watching the terminal scene
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lixenwraith/voidgate/core"
	"github.com/lixenwraith/voidgate/engine"
	"github.com/lixenwraith/voidgate/manifest"
	"github.com/lixenwraith/voidgate/tween"
	"github.com/lixenwraith/voidgate/vmath"
)

func main() {
	seqName := flag.String("seq", "", "Sequence name to trace")
	step := flag.Duration("step", 16*time.Millisecond, "Tick interval")
	manifestPath := flag.String("manifest", "", "Manifest path (default: embedded)")
	flag.Parse()

	if *seqName == "" {
		fmt.Fprintln(os.Stderr, "seq-trace: -seq is required")
		flag.Usage()
		os.Exit(2)
	}
	if *step <= 0 {
		fmt.Fprintln(os.Stderr, "seq-trace: -step must be positive")
		os.Exit(2)
	}

	table := manifest.Default()
	if *manifestPath != "" {
		var err error
		if table, err = manifest.Load(*manifestPath); err != nil {
			fmt.Fprintf(os.Stderr, "seq-trace: %v\n", err)
			os.Exit(2)
		}
	}
	if !table.Has(*seqName) {
		fmt.Fprintf(os.Stderr, "seq-trace: no sequence %q (have: %s)\n",
			*seqName, strings.Join(table.Names(), ", "))
		os.Exit(2)
	}

	rec := newRecorder()
	seq, err := table.Build(*seqName, rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seq-trace: build: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("# %s total=%s tail=%s step=%s\n", seq.ID(), seq.Total(), seq.Tail(), *step)

	provider := engine.NewMockTimeProvider(time.Unix(0, 0))
	clock := engine.NewClock(provider)

	// Hard cap so a malformed sequence cannot loop forever
	limit := seq.Total() + seq.Tail() + time.Second
	for elapsed := time.Duration(0); elapsed <= limit; elapsed += *step {
		provider.SetTime(time.Unix(0, 0).Add(elapsed))
		done := seq.Tick(clock.Elapsed())

		fmt.Printf("%8s p=%.4f %s%s\n",
			elapsed.Round(time.Millisecond), seq.Progress(), rec.line(), rec.fired())

		if done {
			seq.Finish()
			fmt.Printf("# complete at %s%s\n", elapsed.Round(time.Millisecond), rec.fired())
			return
		}
	}
	fmt.Printf("# tick limit reached at %s without completion\n", limit)
	os.Exit(1)
}

// recorder is a Binder that accepts every name, so any manifest traces
// without needing a live scene vocabulary
type recorder struct {
	values map[string]tween.Value
	events []string
}

func newRecorder() *recorder {
	return &recorder{values: make(map[string]tween.Value)}
}

func (r *recorder) Apply(target string) (tween.ApplyFunc, bool) {
	return func(v tween.Value) { r.values[target] = v }, true
}

func (r *recorder) Effect(name string) (tween.EffectFunc, bool) {
	return func() { r.events = append(r.events, "!"+name) }, true
}

func (r *recorder) Action(name string) (func(), bool) {
	return func() { r.events = append(r.events, ">"+name) }, true
}

// line formats the current channel values in stable target order
func (r *recorder) line() string {
	targets := make([]string, 0, len(r.values))
	for t := range r.values {
		targets = append(targets, t)
	}
	sort.Strings(targets)

	parts := make([]string, 0, len(targets))
	for _, t := range targets {
		parts = append(parts, fmt.Sprintf("%s=%s", t, formatValue(r.values[t])))
	}
	return strings.Join(parts, " ")
}

// fired drains and formats trigger/action events since the last tick
func (r *recorder) fired() string {
	if len(r.events) == 0 {
		return ""
	}
	out := " " + strings.Join(r.events, " ")
	r.events = r.events[:0]
	return out
}

func formatValue(v tween.Value) string {
	switch v := v.(type) {
	case tween.Scalar:
		return fmt.Sprintf("%.3f", float64(v))
	case tween.Vec3:
		vec := vmath.Vec3(v)
		return fmt.Sprintf("(%.2f,%.2f,%.2f)", vec.X, vec.Y, vec.Z)
	case tween.Color:
		c := core.RGB(v)
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	default:
		return fmt.Sprintf("%v", v)
	}
}
