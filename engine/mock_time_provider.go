package engine

import "time"

// MockTimeProvider is a hand-stepped time source for tests and the
// headless sequence tracer
// It is stepped from the goroutine that owns the clock, per the
// single-threaded tick contract, so it carries no lock
type MockTimeProvider struct {
	current time.Time
}

// NewMockTimeProvider creates a provider frozen at startTime
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{current: startTime}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	return m.current
}

// SetTime moves the mocked time to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.current = t
}

// Advance steps the mocked time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}
