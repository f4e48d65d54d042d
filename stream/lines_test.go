package stream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	sv "github.com/goschema/validator"
	"github.com/goschema/validator/engine"
	"github.com/goschema/validator/jsontree"
)

func numberValidator(t *testing.T) ValidateFunc {
	t.Helper()
	schema, err := jsontree.Decode([]byte(`{"type": "number"}`))
	if err != nil {
		t.Fatal(err)
	}
	v, err := engine.New(schema)
	if err != nil {
		t.Fatal(err)
	}
	return v.ValidateBytes
}

func drain(ch <-chan *LineResult) []*LineResult {
	var out []*LineResult
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func TestValidateStream(t *testing.T) {
	input := "1\n\"not a number\"\n3\n"
	lv := NewLineValidator(numberValidator(t))

	results := drain(lv.ValidateStream(context.Background(), strings.NewReader(input)))
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
		if r.Error != nil {
			t.Errorf("line %d: unexpected error %v", i, r.Error)
		}
	}
	if !results[0].Result.Valid || results[1].Result.Valid || !results[2].Result.Valid {
		t.Error("only the middle line should be invalid")
	}
	for _, r := range results {
		r.Result.Release()
	}
}

func TestValidateStreamBlankLines(t *testing.T) {
	input := "1\n\n   \n4\n"
	lv := NewLineValidator(numberValidator(t))

	results := drain(lv.ValidateStream(context.Background(), strings.NewReader(input)))
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (blank lines skipped)", len(results))
	}
	// Blank lines keep their index so line numbers stay meaningful.
	if results[0].Index != 0 || results[1].Index != 3 {
		t.Errorf("indexes = %d, %d, want 0, 3", results[0].Index, results[1].Index)
	}
	for _, r := range results {
		r.Result.Release()
	}
}

func TestValidateStreamMalformedLine(t *testing.T) {
	input := "1\n{broken\n3\n"
	lv := NewLineValidator(numberValidator(t))

	results := drain(lv.ValidateStream(context.Background(), strings.NewReader(input)))
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[1].Error == nil {
		t.Error("malformed JSON line should carry a processing error")
	}
	if results[1].Result != nil {
		t.Error("processing error should not carry a result")
	}
	// Surrounding lines are unaffected.
	if results[0].Error != nil || results[2].Error != nil {
		t.Error("well-formed lines should validate normally")
	}
}

func TestValidateStreamParallelPreservesOrder(t *testing.T) {
	const n = 200
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%d\n", i)
	}

	// Fewer workers than lines forces real interleaving.
	lv := NewLineValidator(numberValidator(t)).WithWorkerCount(3).WithBufferSize(8)
	results := drain(lv.ValidateStreamParallel(context.Background(), strings.NewReader(sb.String())))

	if len(results) != n {
		t.Fatalf("got %d results, want %d", len(results), n)
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("result %d has index %d, order not preserved", i, r.Index)
		}
		r.Result.Release()
	}
}

func TestValidateStreamParallelMixed(t *testing.T) {
	input := "1\n\"bad\"\n{broken\n\n5\n"
	lv := NewLineValidator(numberValidator(t)).WithWorkerCount(2)

	agg := Aggregate(lv.ValidateStreamParallel(context.Background(), strings.NewReader(input)))
	if agg.TotalLines != 2 {
		t.Errorf("TotalLines = %d, want 2 valid-or-invalid instances", agg.TotalLines)
	}
	if agg.InvalidLines != 1 {
		t.Errorf("InvalidLines = %d, want 1", agg.InvalidLines)
	}
	if len(agg.ProcessingErrors) != 1 {
		t.Errorf("ProcessingErrors = %v, want 1", agg.ProcessingErrors)
	}
	if !agg.HasErrors() {
		t.Error("HasErrors should be true")
	}
}

func TestAggregate(t *testing.T) {
	results := make(chan *LineResult, 4)
	ok := sv.NewResult()
	bad := sv.NewResult()
	bad.AddError(sv.Error{Keyword: "type", Message: "wrong kind"})
	bad.AddError(sv.Error{Keyword: "minimum", Message: "too small"})
	results <- &LineResult{Index: 0, Result: ok}
	results <- &LineResult{Index: 2, Result: bad}
	results <- &LineResult{Index: -1, Error: fmt.Errorf("read failed")}
	close(results)

	agg := Aggregate(results)
	if agg.TotalLines != 2 {
		t.Errorf("TotalLines = %d, want 2", agg.TotalLines)
	}
	if agg.InvalidLines != 1 || agg.TotalErrors != 2 {
		t.Errorf("InvalidLines = %d, TotalErrors = %d, want 1 and 2", agg.InvalidLines, agg.TotalErrors)
	}
	if len(agg.Errors[2]) != 2 {
		t.Errorf("Errors[2] = %v, want the 2 recorded errors", agg.Errors[2])
	}
	if len(agg.ProcessingErrors) != 1 {
		t.Errorf("ProcessingErrors = %v, want 1", agg.ProcessingErrors)
	}

	want := "Validated 2 instances: 1 invalid, 2 errors"
	if got := agg.Summary(); got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}

func TestAggregateEmpty(t *testing.T) {
	results := make(chan *LineResult)
	close(results)
	agg := Aggregate(results)
	if agg.HasErrors() {
		t.Error("empty stream has no errors")
	}
	if agg.Summary() != "Validated 0 instances: 0 invalid, 0 errors" {
		t.Errorf("Summary = %q", agg.Summary())
	}
}

func TestValidateStreamParallelCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A tiny queue and a single worker cannot absorb all five lines, so at
	// least one send must observe the cancellation.
	lv := NewLineValidator(numberValidator(t)).WithWorkerCount(1).WithBufferSize(1)
	results := drain(lv.ValidateStreamParallel(ctx, strings.NewReader("1\n2\n3\n4\n5\n")))

	if len(results) == 0 {
		t.Fatal("cancelled stream should still report the cancellation")
	}
	last := results[len(results)-1]
	if last.Index != -1 || !errors.Is(last.Error, context.Canceled) {
		t.Errorf("last result = %+v, want a stream-level cancellation marker", last)
	}
}

func TestValidateStreamCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lv := NewLineValidator(numberValidator(t))
	results := drain(lv.ValidateStream(ctx, strings.NewReader("1\n2\n3\n")))
	if len(results) == 0 {
		t.Fatal("cancelled stream should still report the cancellation")
	}
	last := results[len(results)-1]
	if last.Error == nil {
		t.Error("cancellation should surface as a processing error")
	}
}
