package status

import (
	"log"
	"sync/atomic"
)

// Registry is the central diagnostics facade
// The coordinator and gate cache pointers during init and write to the
// atomics directly from the tick path
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// LogTo writes every metric to the logger in sorted key order
// Called at shutdown so the diagnostics file carries a session readout
func (r *Registry) LogTo(logger *log.Logger) {
	r.Ints.Range(func(key string, v *atomic.Int64) {
		logger.Printf("status: %s=%d", key, v.Load())
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		logger.Printf("status: %s=%g", key, v.Get())
	})
}
