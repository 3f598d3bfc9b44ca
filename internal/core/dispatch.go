package core

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/medops/hospital-bulk/internal/logging"
)

// dispatcher fans one creation call per request out to the directory under
// a concurrency ceiling and collects the outcomes as they complete.
// The function fields exist so tests can substitute instrumented stubs.
type dispatcher struct {
	createRow     func(ctx context.Context, row int, req CreationRequest, batchID string) RowOutcome
	activateBatch func(ctx context.Context, batchID string) error
	concurrency   int
}

// Dispatch runs every request and returns the per-row outcomes (completion
// order), whether the batch was activated, and the wall-clock seconds the
// creation calls took. The elapsed time excludes the activation call, which
// is a separate side effect issued only after all rows have finished.
//
// Activation happens at most once, only when at least one row was created.
// An activation failure is swallowed: the upload itself already succeeded,
// so it is reported through the activated flag, never as an error.
func (d *dispatcher) Dispatch(ctx context.Context, requests []CreationRequest, batchID string) ([]RowOutcome, bool, float64) {
	start := time.Now()

	results := make(chan RowOutcome, len(requests))

	g := new(errgroup.Group)
	g.SetLimit(d.concurrency)
	for i, req := range requests {
		row := i + 1
		req := req
		g.Go(func() error {
			results <- d.createRow(ctx, row, req, batchID)
			return nil
		})
	}
	// Full join: no activation while rows are still in flight.
	g.Wait()
	close(results)

	outcomes := make([]RowOutcome, 0, len(requests))
	createdAny := false
	for outcome := range results {
		if outcome.Status == StatusCreated {
			createdAny = true
		}
		outcomes = append(outcomes, outcome)
	}

	elapsed := time.Since(start).Seconds()

	activated := false
	if createdAny {
		if err := d.activateBatch(ctx, batchID); err != nil {
			logging.FromContext(ctx).Warn("batch activation failed",
				"batch_id", batchID,
				"error", err,
			)
		} else {
			activated = true
		}
	}

	return outcomes, activated, elapsed
}
