package tween

import (
	"fmt"
	"time"
)

// ConfigError reports an invalid sequence definition, detected at
// build time before anything starts; a failed build never produces a
// partially-started sequence
type ConfigError struct {
	Sequence string
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sequence %q: %s", e.Sequence, e.Reason)
}

// DefaultTail is the settle delay used when a sequence does not
// specify one; it gives one-shot overlays (flash, shake) room to
// fade out before the coordinator accepts the next start
const DefaultTail = 250 * time.Millisecond

// Builder assembles a sequence declaratively
// Channel and trigger order is preserved: equal trigger thresholds
// fire in declaration order
type Builder struct {
	id         string
	total      time.Duration
	tail       time.Duration
	tailSet    bool
	channels   []*Channel
	triggers   []*TriggerPoint
	onComplete func()
}

// NewSequence starts a builder for a named sequence
func NewSequence(id string) *Builder {
	return &Builder{id: id}
}

// Total sets the explicit logical duration; when unset, the maximum
// channel duration is used
func (b *Builder) Total(d time.Duration) *Builder {
	b.total = d
	return b
}

// Tail sets the settle delay after completion
func (b *Builder) Tail(d time.Duration) *Builder {
	b.tail = d
	b.tailSet = true
	return b
}

// Channel adds an animated property
func (b *Builder) Channel(id string, from, to Value, duration time.Duration, easing EasingFunc, apply ApplyFunc) *Builder {
	b.channels = append(b.channels, NewChannel(id, from, to, duration, easing, apply))
	return b
}

// Trigger adds a one-shot effect at a progress threshold
func (b *Builder) Trigger(name string, at float64, effect EffectFunc) *Builder {
	b.triggers = append(b.triggers, &TriggerPoint{name: name, threshold: at, effect: effect})
	return b
}

// OnComplete sets the callback fired exactly once per successful run
func (b *Builder) OnComplete(fn func()) *Builder {
	b.onComplete = fn
	return b
}

// Build validates the definition and produces a fresh sequence
func (b *Builder) Build() (*Sequence, error) {
	if b.id == "" {
		return nil, &ConfigError{Sequence: b.id, Reason: "empty sequence id"}
	}
	if len(b.channels) == 0 {
		return nil, &ConfigError{Sequence: b.id, Reason: "no channels defined"}
	}

	total := b.total
	if total == 0 {
		for _, ch := range b.channels {
			if ch.Duration() > total {
				total = ch.Duration()
			}
		}
	}
	if total <= 0 {
		return nil, &ConfigError{Sequence: b.id, Reason: "total duration must be positive"}
	}

	seen := make(map[string]bool, len(b.channels))
	for _, ch := range b.channels {
		if ch.ID() == "" {
			return nil, &ConfigError{Sequence: b.id, Reason: "channel with empty id"}
		}
		if seen[ch.ID()] {
			return nil, &ConfigError{Sequence: b.id, Reason: fmt.Sprintf("duplicate channel %q", ch.ID())}
		}
		seen[ch.ID()] = true
		if ch.start.Kind() != ch.target.Kind() {
			return nil, &ConfigError{
				Sequence: b.id,
				Reason:   fmt.Sprintf("channel %q: start kind %s does not match target kind %s", ch.ID(), ch.start.Kind(), ch.target.Kind()),
			}
		}
	}

	prev := -1.0
	for _, tp := range b.triggers {
		if tp.threshold < 0 || tp.threshold > 1 {
			return nil, &ConfigError{
				Sequence: b.id,
				Reason:   fmt.Sprintf("trigger %q: threshold %.3f outside [0,1]", tp.name, tp.threshold),
			}
		}
		if tp.threshold < prev {
			return nil, &ConfigError{
				Sequence: b.id,
				Reason:   fmt.Sprintf("trigger %q: threshold %.3f declared after %.3f", tp.name, tp.threshold, prev),
			}
		}
		prev = tp.threshold
	}

	tail := b.tail
	if !b.tailSet {
		tail = DefaultTail
	}
	if tail < 0 {
		return nil, &ConfigError{Sequence: b.id, Reason: "tail must not be negative"}
	}

	return &Sequence{
		id:         b.id,
		channels:   b.channels,
		triggers:   b.triggers,
		total:      total,
		tail:       tail,
		onComplete: b.onComplete,
	}, nil
}
