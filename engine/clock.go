package engine

import "time"

// Clock measures elapsed time from an origin against a TimeProvider
// Elapsed readings are monotonically non-decreasing as long as the
// provider is; the coordinator resets the origin when a run starts
type Clock struct {
	provider TimeProvider
	origin   time.Time
}

// NewClock creates a clock with its origin at the provider's current time
func NewClock(provider TimeProvider) *Clock {
	return &Clock{
		provider: provider,
		origin:   provider.Now(),
	}
}

// Reset moves the origin to the provider's current time
func (c *Clock) Reset() {
	c.origin = c.provider.Now()
}

// Elapsed returns the time since the origin
func (c *Clock) Elapsed() time.Duration {
	return c.provider.Now().Sub(c.origin)
}
