// Package worker provides parallel batch validation of many instances
// against one compiled validator.
//
// A compiled validator is read-only during validation, so one validator can
// serve all workers concurrently.
//
// Example usage:
//
//	pool := worker.NewPool(validator, 4)
//	defer pool.Close()
//
//	for i, instance := range instances {
//	    pool.Submit(worker.Job{ID: strconv.Itoa(i), Instance: instance})
//	}
//
//	for result := range pool.Results() {
//	    if result.Error != nil {
//	        // Malformed instance document.
//	    }
//	    // Inspect result.Result.
//	}
package worker
