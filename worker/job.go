package worker

import sv "github.com/goschema/validator"

// Job is one instance document to validate.
type Job struct {
	// ID identifies the job in its result.
	ID string

	// Instance is the JSON instance document to validate.
	Instance []byte
}

// JobResult is the outcome of one job.
type JobResult struct {
	// ID matches the Job.ID that produced this result.
	ID string

	// Result holds the validation outcome. Nil when Error is set.
	Result *sv.Result

	// Error is set when the instance could not be validated at all,
	// typically because it is not valid JSON.
	Error error

	// Duration is the time taken to validate, in nanoseconds.
	Duration int64
}

// BatchResult aggregates the results of a batch.
type BatchResult struct {
	// Results holds one entry per job, in submission order for batch runs.
	Results []*JobResult

	// TotalJobs is the number of jobs submitted.
	TotalJobs int

	// CompletedJobs is the number of jobs processed, including failures.
	CompletedJobs int

	// FailedJobs is the number of jobs that could not be validated.
	FailedJobs int

	// TotalDuration is the summed validation time, in nanoseconds.
	TotalDuration int64
}

// HasErrors reports whether any job failed or any instance was invalid.
func (br *BatchResult) HasErrors() bool {
	for _, r := range br.Results {
		if r.Error != nil {
			return true
		}
		if r.Result != nil && r.Result.HasErrors() {
			return true
		}
	}
	return false
}

// ErrorCount returns the total number of validation errors across the batch.
func (br *BatchResult) ErrorCount() int {
	count := 0
	for _, r := range br.Results {
		if r.Result != nil {
			count += r.Result.ErrorCount()
		}
	}
	return count
}
