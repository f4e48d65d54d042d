package schemavalidator

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks validation counters using lock-free atomic operations.
// All methods are safe for concurrent use.
type Metrics struct {
	validationsTotal atomic.Uint64
	validationsValid atomic.Uint64

	errorsTotal atomic.Uint64

	// Timing (stored as nanoseconds)
	validationTimeTotal atomic.Uint64
	validationTimeMin   atomic.Uint64
	validationTimeMax   atomic.Uint64

	// Per-keyword error counts
	keywordErrors sync.Map // map[string]*atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so the first value becomes the minimum
	m.validationTimeMin.Store(^uint64(0))
	return m
}

// RecordValidation records a completed validation run.
func (m *Metrics) RecordValidation(duration time.Duration, valid bool) {
	m.validationsTotal.Add(1)
	if valid {
		m.validationsValid.Add(1)
	}

	ns := uint64(duration.Nanoseconds())
	m.validationTimeTotal.Add(ns)
	for {
		cur := m.validationTimeMin.Load()
		if ns >= cur || m.validationTimeMin.CompareAndSwap(cur, ns) {
			break
		}
	}
	for {
		cur := m.validationTimeMax.Load()
		if ns <= cur || m.validationTimeMax.CompareAndSwap(cur, ns) {
			break
		}
	}
}

// RecordError records one validation error attributed to a keyword.
func (m *Metrics) RecordError(keyword string) {
	m.errorsTotal.Add(1)
	counter, _ := m.keywordErrors.LoadOrStore(keyword, &atomic.Uint64{})
	counter.(*atomic.Uint64).Add(1)
}

// Validations returns total and valid run counts.
func (m *Metrics) Validations() (total, valid uint64) {
	return m.validationsTotal.Load(), m.validationsValid.Load()
}

// ErrorsTotal returns the number of validation errors recorded.
func (m *Metrics) ErrorsTotal() uint64 {
	return m.errorsTotal.Load()
}

// KeywordErrors returns a snapshot of per-keyword error counts.
func (m *Metrics) KeywordErrors() map[string]uint64 {
	out := make(map[string]uint64)
	m.keywordErrors.Range(func(k, v any) bool {
		out[k.(string)] = v.(*atomic.Uint64).Load()
		return true
	})
	return out
}

// AverageValidationTime returns the mean duration of recorded runs.
func (m *Metrics) AverageValidationTime() time.Duration {
	total := m.validationsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.validationTimeTotal.Load() / total)
}

// MinValidationTime returns the fastest recorded run, or 0 if none.
func (m *Metrics) MinValidationTime() time.Duration {
	min := m.validationTimeMin.Load()
	if min == ^uint64(0) {
		return 0
	}
	return time.Duration(min)
}

// MaxValidationTime returns the slowest recorded run.
func (m *Metrics) MaxValidationTime() time.Duration {
	return time.Duration(m.validationTimeMax.Load())
}
