package schemavalidator

import (
	"iter"
	"sync"
)

// Result is an eagerly collected validation outcome.
// Use Release() to return it to the pool when done.
type Result struct {
	// Valid is true if no errors were found.
	Valid bool `json:"valid"`

	// Errors contains all validation errors found, in traversal order.
	Errors []Error `json:"errors,omitempty"`

	// JobID correlates results produced by batch validation.
	JobID string `json:"jobId,omitempty"`

	// mu protects concurrent access to Errors
	mu sync.Mutex
}

var resultPool = sync.Pool{
	New: func() any {
		return &Result{
			Errors: make([]Error, 0, 8),
		}
	},
}

// AcquireResult gets a Result from the pool. It starts valid and empty.
func AcquireResult() *Result {
	r := resultPool.Get().(*Result)
	r.Reset()
	return r
}

// Release returns the Result to the pool.
// After calling Release, the Result must not be used.
func (r *Result) Release() {
	if r == nil {
		return
	}
	// Don't return results with oversized error slices
	if cap(r.Errors) <= 1024 {
		resultPool.Put(r)
	}
}

// Reset clears the result for reuse.
func (r *Result) Reset() {
	r.Valid = true
	r.Errors = r.Errors[:0]
	r.JobID = ""
}

// NewResult creates a new (non-pooled) result.
func NewResult() *Result {
	return &Result{
		Valid:  true,
		Errors: make([]Error, 0, 8),
	}
}

// CollectResult drains a validation sequence into a pooled Result.
// maxErrors caps collection; 0 collects everything.
func CollectResult(seq iter.Seq[Error], maxErrors int) *Result {
	r := AcquireResult()
	for err := range seq {
		r.AddError(err)
		if maxErrors > 0 && len(r.Errors) >= maxErrors {
			break
		}
	}
	return r
}

// AddError appends an error. Thread-safe, so batch workers can share a result.
func (r *Result) AddError(err Error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, err)
	r.Valid = false
}

// ErrorCount returns the number of errors.
func (r *Result) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Errors)
}

// HasErrors returns true if any error was recorded.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// Merge combines another result into this one.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	other.mu.Lock()
	errs := make([]Error, len(other.Errors))
	copy(errs, other.Errors)
	other.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, errs...)
	if len(errs) > 0 {
		r.Valid = false
	}
}

// Clone creates a copy of the result (not pooled).
func (r *Result) Clone() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := &Result{
		Valid:  r.Valid,
		Errors: make([]Error, len(r.Errors)),
		JobID:  r.JobID,
	}
	copy(clone.Errors, r.Errors)
	return clone
}
