package tween

import (
	"time"

	"github.com/lixenwraith/voidgate/vmath"
)

// ApplyFunc receives the interpolated value once per tick
// It is the only side-effecting hook a channel has; all rendering and
// scene-state writes happen behind it, never in the tick logic itself
type ApplyFunc func(v Value)

// Channel drives a single animated property from a start value to a
// target value over a duration, through an easing function
// Immutable after the owning sequence starts
type Channel struct {
	id       string
	start    Value
	target   Value
	duration time.Duration
	easing   EasingFunc
	apply    ApplyFunc

	progress float64 // last computed raw progress
	done     bool
}

// NewChannel creates a channel; duration <= 0 means the channel
// completes on its first tick, applying the target value once
func NewChannel(id string, start, target Value, duration time.Duration, easing EasingFunc, apply ApplyFunc) *Channel {
	if easing == nil {
		easing = Linear
	}
	return &Channel{
		id:       id,
		start:    start,
		target:   target,
		duration: duration,
		easing:   easing,
		apply:    apply,
	}
}

// ID returns the channel identifier
func (c *Channel) ID() string { return c.id }

// Done reports whether the channel has reached its target this run
func (c *Channel) Done() bool { return c.done }

// Progress returns the last raw (pre-easing) progress in [0, 1]
func (c *Channel) Progress() float64 { return c.progress }

// Duration returns the channel's configured duration
func (c *Channel) Duration() time.Duration { return c.duration }

// Tick advances the channel to the given elapsed time and invokes
// apply with the interpolated value
// A completed channel does not re-invoke apply within the same run
// Bookkeeping is committed before apply runs, so a panicking apply
// cannot wedge the channel's progress
func (c *Channel) Tick(elapsed time.Duration) {
	if c.done {
		return
	}

	if c.duration <= 0 {
		c.progress = 1
		c.done = true
		if c.apply != nil {
			c.apply(c.target)
		}
		return
	}

	c.progress = vmath.Clamp01(float64(elapsed) / float64(c.duration))
	if c.apply == nil {
		c.done = c.progress >= 1
		return
	}

	// Floating-point lerp is not endpoint-exact, so the final tick
	// applies the target value itself
	if c.progress >= 1 {
		c.done = true
		c.apply(c.target)
		return
	}
	c.apply(c.start.Lerp(c.target, c.easing(c.progress)))
}
