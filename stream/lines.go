// Package stream provides streaming validation of JSON Lines input, for
// datasets too large to hold in memory at once.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	sv "github.com/goschema/validator"
)

// maxLineSize bounds one input line. Lines are whole JSON documents, so
// this is also the instance size limit for streaming input.
const maxLineSize = 16 << 20

// LineResult is the validation result for one input line.
type LineResult struct {
	// Index is the zero-based line number. -1 marks a stream-level error.
	Index int

	// Result holds the validation outcome. Nil when Error is set.
	Result *sv.Result

	// Error is set when the line could not be validated.
	Error error
}

// ValidateFunc validates one JSON instance document.
type ValidateFunc func(instance []byte) (*sv.Result, error)

// LineValidator validates newline-delimited JSON instances from a reader.
type LineValidator struct {
	validate    ValidateFunc
	bufferSize  int
	workerCount int
}

// NewLineValidator creates a streaming validator around a validate function,
// typically a compiled validator's ValidateBytes.
func NewLineValidator(validate ValidateFunc) *LineValidator {
	return &LineValidator{
		validate:    validate,
		bufferSize:  100,
		workerCount: 4,
	}
}

// WithBufferSize sets the result channel buffer size.
func (v *LineValidator) WithBufferSize(size int) *LineValidator {
	if size > 0 {
		v.bufferSize = size
	}
	return v
}

// WithWorkerCount sets the number of parallel workers.
func (v *LineValidator) WithWorkerCount(count int) *LineValidator {
	if count > 0 {
		v.workerCount = count
	}
	return v
}

// ValidateStream validates lines as they are read, emitting results in
// input order. Blank lines are skipped but keep their index.
func (v *LineValidator) ValidateStream(ctx context.Context, r io.Reader) <-chan *LineResult {
	results := make(chan *LineResult, v.bufferSize)

	go func() {
		defer close(results)

		scanner := newLineScanner(r)
		index := 0
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				results <- &LineResult{Index: index, Error: ctx.Err()}
				return
			default:
			}

			line := scanner.Bytes()
			if len(strings.TrimSpace(string(line))) == 0 {
				index++
				continue
			}

			// Scanner reuses its buffer across lines.
			instance := make([]byte, len(line))
			copy(instance, line)

			results <- v.processLine(index, instance)
			index++
		}
		if err := scanner.Err(); err != nil {
			results <- &LineResult{Index: -1, Error: fmt.Errorf("reading stream: %w", err)}
		}
	}()

	return results
}

// ValidateStreamParallel validates lines on worker goroutines while
// preserving input order in the output.
func (v *LineValidator) ValidateStreamParallel(ctx context.Context, r io.Reader) <-chan *LineResult {
	results := make(chan *LineResult, v.bufferSize)

	go func() {
		defer close(results)

		// seq is dense; index keeps the original line number across blanks.
		type workItem struct {
			seq   int
			index int
			line  []byte
		}
		type seqResult struct {
			seq    int
			result *LineResult
		}

		workChan := make(chan workItem, v.bufferSize)
		resultChan := make(chan seqResult, v.bufferSize)

		var wg sync.WaitGroup
		for i := 0; i < v.workerCount; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for work := range workChan {
					select {
					case <-ctx.Done():
						return
					default:
					}
					resultChan <- seqResult{seq: work.seq, result: v.processLine(work.index, work.line)}
				}
			}()
		}

		var readErr, cancelErr error
		go func() {
			scanner := newLineScanner(r)
			index, seq := 0, 0
		scan:
			for scanner.Scan() {
				line := scanner.Bytes()
				if len(strings.TrimSpace(string(line))) == 0 {
					index++
					continue
				}
				instance := make([]byte, len(line))
				copy(instance, line)

				select {
				case workChan <- workItem{seq: seq, index: index, line: instance}:
				case <-ctx.Done():
					cancelErr = ctx.Err()
					break scan
				}
				index++
				seq++
			}
			if cancelErr == nil {
				readErr = scanner.Err()
			}
			close(workChan)
			wg.Wait()
			close(resultChan)
		}()

		// Reorder worker output back to input order.
		pending := make(map[int]*LineResult)
		nextSeq := 0
		for sr := range resultChan {
			pending[sr.seq] = sr.result
			for {
				r, ok := pending[nextSeq]
				if !ok {
					break
				}
				results <- r
				delete(pending, nextSeq)
				nextSeq++
			}
		}
		for seq := nextSeq; len(pending) > 0; seq++ {
			if r, ok := pending[seq]; ok {
				results <- r
				delete(pending, seq)
			}
		}
		if readErr != nil {
			results <- &LineResult{Index: -1, Error: fmt.Errorf("reading stream: %w", readErr)}
		}
		if cancelErr != nil {
			results <- &LineResult{Index: -1, Error: cancelErr}
		}
	}()

	return results
}

func (v *LineValidator) processLine(index int, line []byte) *LineResult {
	result, err := v.validate(line)
	if err != nil {
		return &LineResult{Index: index, Error: fmt.Errorf("line %d: %w", index+1, err)}
	}
	return &LineResult{Index: index, Result: result}
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), maxLineSize)
	return scanner
}

// StreamResult aggregates a whole streaming run.
type StreamResult struct {
	// TotalLines is the number of non-blank lines processed.
	TotalLines int

	// InvalidLines is the count of lines whose instance failed validation.
	InvalidLines int

	// TotalErrors is the total number of validation errors found.
	TotalErrors int

	// ProcessingErrors are read or decode failures, not validation errors.
	ProcessingErrors []error

	// Errors maps line index to that line's validation errors.
	Errors map[int][]sv.Error
}

// Aggregate drains a result channel into a StreamResult, releasing pooled
// results as it goes.
func Aggregate(results <-chan *LineResult) *StreamResult {
	agg := &StreamResult{Errors: make(map[int][]sv.Error)}

	for result := range results {
		if result.Error != nil {
			agg.ProcessingErrors = append(agg.ProcessingErrors, result.Error)
			continue
		}
		if result.Index < 0 || result.Result == nil {
			continue
		}

		agg.TotalLines++
		if !result.Result.Valid {
			agg.InvalidLines++
			errs := make([]sv.Error, len(result.Result.Errors))
			copy(errs, result.Result.Errors)
			agg.Errors[result.Index] = errs
			agg.TotalErrors += len(errs)
		}
		result.Result.Release()
	}
	return agg
}

// HasErrors reports whether any line failed validation or processing.
func (r *StreamResult) HasErrors() bool {
	return r.InvalidLines > 0 || len(r.ProcessingErrors) > 0
}

// Summary returns a one-line human-readable summary.
func (r *StreamResult) Summary() string {
	return fmt.Sprintf("Validated %d instances: %d invalid, %d errors",
		r.TotalLines, r.InvalidLines, r.TotalErrors)
}
