package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/voidgate/tween"
)

//go:embed sequences.yaml
var embeddedManifest []byte

// Easings maps manifest easing names to functions
// linear and easeOutCubic are position interpolants; impact and
// flashPulse are intensity envelopes (see tween package)
var Easings = map[string]tween.EasingFunc{
	"linear":       tween.Linear,
	"easeOutCubic": tween.EaseOutCubic,
	"impact":       tween.Impact,
	"flashPulse":   tween.FlashPulse,
}

// Binder resolves manifest names to live scene hooks at build time
// Absence of a target, effect or action is a configuration error, not
// a runtime surprise
type Binder interface {
	// Apply resolves a channel target id to its per-tick sink
	Apply(target string) (tween.ApplyFunc, bool)
	// Effect resolves a trigger effect name
	Effect(name string) (tween.EffectFunc, bool)
	// Action resolves an on_complete action name
	Action(name string) (func(), bool)
}

// Table is a validated, immutable set of named sequence definitions
// Building from it produces a fresh sequence per run
type Table struct {
	specs map[string]*SequenceSpec
	order []string
}

// Load reads and validates a manifest file
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}
	return t, nil
}

// Default returns the table compiled into the binary
// A decoding failure here is a build defect, hence the panic
func Default() *Table {
	t, err := Parse(embeddedManifest)
	if err != nil {
		panic(fmt.Sprintf("embedded manifest invalid: %v", err))
	}
	return t
}

// Parse decodes and validates manifest bytes
// All structural configuration errors surface here, at load time,
// before any pointer event can try to start a broken sequence
func Parse(data []byte) (*Table, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(f.Sequences) == 0 {
		return nil, fmt.Errorf("no sequences defined")
	}

	t := &Table{specs: make(map[string]*SequenceSpec, len(f.Sequences))}
	for i := range f.Sequences {
		spec := &f.Sequences[i]
		if spec.Name == "" {
			return nil, fmt.Errorf("sequence %d: empty name", i)
		}
		if _, dup := t.specs[spec.Name]; dup {
			return nil, &tween.ConfigError{Sequence: spec.Name, Reason: "defined twice"}
		}
		if err := validateSpec(spec); err != nil {
			return nil, err
		}
		t.specs[spec.Name] = spec
		t.order = append(t.order, spec.Name)
	}
	return t, nil
}

func validateSpec(spec *SequenceSpec) error {
	fail := func(format string, args ...any) error {
		return &tween.ConfigError{Sequence: spec.Name, Reason: fmt.Sprintf(format, args...)}
	}

	if len(spec.Channels) == 0 {
		return fail("no channels")
	}
	if spec.Duration <= 0 {
		return fail("duration must be positive")
	}
	if spec.Tail != nil && *spec.Tail < 0 {
		return fail("tail must not be negative")
	}

	for i := range spec.Channels {
		ch := &spec.Channels[i]
		if ch.Target == "" {
			return fail("channel %d: empty target", i)
		}
		if ch.Duration <= 0 {
			return fail("channel %q: duration must be positive", ch.Target)
		}
		if ch.Easing != "" {
			if _, ok := Easings[ch.Easing]; !ok {
				return fail("channel %q: unknown easing %q", ch.Target, ch.Easing)
			}
		}
		if ch.From.Value() == nil || ch.To.Value() == nil {
			return fail("channel %q: missing from/to value", ch.Target)
		}
		if ch.From.Value().Kind() != ch.To.Value().Kind() {
			return fail("channel %q: from is %s but to is %s",
				ch.Target, ch.From.Value().Kind(), ch.To.Value().Kind())
		}
	}

	prev := -1.0
	for i := range spec.Triggers {
		tr := &spec.Triggers[i]
		if tr.Effect == "" {
			return fail("trigger %d: empty effect", i)
		}
		if tr.At < 0 || tr.At > 1 {
			return fail("trigger %q: threshold %.3f outside [0,1]", tr.Effect, tr.At)
		}
		if tr.At < prev {
			return fail("trigger %q: threshold %.3f declared after %.3f", tr.Effect, tr.At, prev)
		}
		prev = tr.At
	}

	return nil
}

// Names returns the sequence names in declaration order
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Has reports whether a sequence is defined
func (t *Table) Has(name string) bool {
	_, ok := t.specs[name]
	return ok
}

// Build produces a fresh sequence for one run, binding manifest names
// to the scene's live hooks
func (t *Table) Build(name string, binder Binder) (*tween.Sequence, error) {
	spec, ok := t.specs[name]
	if !ok {
		return nil, &tween.ConfigError{Sequence: name, Reason: "not defined in manifest"}
	}

	b := tween.NewSequence(name).Total(time.Duration(spec.Duration))
	if spec.Tail != nil {
		b.Tail(time.Duration(*spec.Tail))
	}

	for i := range spec.Channels {
		ch := &spec.Channels[i]
		apply, ok := binder.Apply(ch.Target)
		if !ok {
			return nil, &tween.ConfigError{Sequence: name, Reason: fmt.Sprintf("unknown channel target %q", ch.Target)}
		}
		easing := tween.Linear
		if ch.Easing != "" {
			easing = Easings[ch.Easing]
		}
		b.Channel(ch.Target, ch.From.Value(), ch.To.Value(), time.Duration(ch.Duration), easing, apply)
	}

	for i := range spec.Triggers {
		tr := &spec.Triggers[i]
		effect, ok := binder.Effect(tr.Effect)
		if !ok {
			return nil, &tween.ConfigError{Sequence: name, Reason: fmt.Sprintf("unknown trigger effect %q", tr.Effect)}
		}
		trName := tr.Name
		if trName == "" {
			trName = tr.Effect
		}
		b.Trigger(trName, tr.At, effect)
	}

	if spec.OnComplete != "" {
		action, ok := binder.Action(spec.OnComplete)
		if !ok {
			return nil, &tween.ConfigError{Sequence: name, Reason: fmt.Sprintf("unknown completion action %q", spec.OnComplete)}
		}
		b.OnComplete(action)
	}

	return b.Build()
}
