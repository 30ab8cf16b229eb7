package engine

import "time"

// TimeProvider abstracts the time source so the coordinator can run
// against the real monotonic clock in the binary and a mock in tests
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider returns the real system time; Go preserves the
// monotonic clock reading through Sub, so elapsed calculations are
// unaffected by wall-clock changes
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
