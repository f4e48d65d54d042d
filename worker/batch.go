package worker

import (
	"context"
	"runtime"
	"strconv"
	"sync"
	"time"

	sv "github.com/goschema/validator"
)

// ValidateFunc validates one JSON instance document.
type ValidateFunc func(instance []byte) (*sv.Result, error)

// BatchValidator validates slices of instances with a bounded number of
// worker goroutines, preserving submission order in the results.
type BatchValidator struct {
	validate ValidateFunc
	workers  int
}

// NewBatchValidator creates a batch validator. workers <= 0 means
// runtime.NumCPU().
func NewBatchValidator(validate ValidateFunc, workers int) *BatchValidator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchValidator{validate: validate, workers: workers}
}

// ValidateBatch validates the instances and returns one result per
// instance, in order. Tiny batches run sequentially.
func (bv *BatchValidator) ValidateBatch(ctx context.Context, instances [][]byte) *BatchResult {
	if len(instances) == 0 {
		return &BatchResult{Results: []*JobResult{}}
	}
	if len(instances) <= 2 {
		return bv.validateSequential(ctx, instances)
	}
	return bv.validateParallel(ctx, instances)
}

func (bv *BatchValidator) validateSequential(ctx context.Context, instances [][]byte) *BatchResult {
	br := &BatchResult{
		Results:   make([]*JobResult, 0, len(instances)),
		TotalJobs: len(instances),
	}
	for i, instance := range instances {
		select {
		case <-ctx.Done():
			br.CompletedJobs = len(br.Results)
			return br
		default:
		}
		br.Results = append(br.Results, bv.runJob(i, instance))
	}
	br.CompletedJobs = len(br.Results)
	for _, r := range br.Results {
		br.TotalDuration += r.Duration
		if r.Error != nil {
			br.FailedJobs++
		}
	}
	return br
}

func (bv *BatchValidator) validateParallel(ctx context.Context, instances [][]byte) *BatchResult {
	workers := bv.workers
	if workers > len(instances) {
		workers = len(instances)
	}

	jobs := make(chan int, len(instances))
	results := make([]*JobResult, len(instances))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results[i] = bv.runJob(i, instances[i])
			}
		}()
	}

	for i := range instances {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	br := &BatchResult{
		Results:   make([]*JobResult, 0, len(instances)),
		TotalJobs: len(instances),
	}
	for _, r := range results {
		if r == nil {
			// Cancelled before this slot was processed.
			continue
		}
		br.Results = append(br.Results, r)
		br.CompletedJobs++
		br.TotalDuration += r.Duration
		if r.Error != nil {
			br.FailedJobs++
		}
	}
	return br
}

func (bv *BatchValidator) runJob(index int, instance []byte) *JobResult {
	start := time.Now()
	result, err := bv.validate(instance)
	return &JobResult{
		ID:       strconv.Itoa(index),
		Result:   result,
		Error:    err,
		Duration: time.Since(start).Nanoseconds(),
	}
}

// ValidateBatchSimple validates instances with NumCPU workers.
func ValidateBatchSimple(ctx context.Context, validate ValidateFunc, instances [][]byte) *BatchResult {
	return NewBatchValidator(validate, runtime.NumCPU()).ValidateBatch(ctx, instances)
}
