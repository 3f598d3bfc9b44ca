package core

import (
	"context"

	"github.com/medops/hospital-bulk/internal/hospital"
)

// maxCreateAttempts is the total number of submissions per row, including
// the first. Only transient failures consume the retry.
const maxCreateAttempts = 2

// Directory is the slice of the hospital directory client the ingestion
// pipeline calls. Satisfied by *hospital.Client.
type Directory interface {
	Create(ctx context.Context, payload hospital.CreateRequest) (string, error)
	ActivateBatch(ctx context.Context, batchID string, active *bool) error
}

// attemptClass is the three-way classification of one create attempt.
type attemptClass int

const (
	attemptCreated attemptClass = iota
	// attemptTerminal: the directory rejected the request (4xx). Retrying
	// cannot help, the row fails immediately.
	attemptTerminal
	// attemptTransient: 5xx, timeout, or transport failure. Worth one retry.
	attemptTransient
)

func classify(err error) attemptClass {
	switch {
	case err == nil:
		return attemptCreated
	case hospital.IsTerminal(err):
		return attemptTerminal
	default:
		return attemptTransient
	}
}

// rowCreator performs one row's creation against the directory: validation
// gate, bounded retry, error classification. It never returns an error:
// every path folds into a RowOutcome so one row cannot abort its siblings.
type rowCreator struct {
	dir Directory
}

// CreateRow attempts to create the hospital for one parsed row.
// row is the 1-based input position, used only for labeling the outcome.
func (c *rowCreator) CreateRow(ctx context.Context, row int, req CreationRequest, batchID string) RowOutcome {
	if req.Name == "" || req.Address == "" {
		return RowOutcome{
			Row:    row,
			Name:   req.Name,
			Status: StatusValidationFailed,
			Error:  strPtr("name or address missing"),
		}
	}

	payload := hospital.CreateRequest{
		Name:            req.Name,
		Address:         req.Address,
		Phone:           req.Phone,
		CreationBatchID: batchID,
	}

	var lastErr error
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		id, err := c.dir.Create(ctx, payload)
		switch classify(err) {
		case attemptCreated:
			return RowOutcome{
				Row:        row,
				HospitalID: &id,
				Name:       req.Name,
				Status:     StatusCreated,
			}
		case attemptTerminal:
			return RowOutcome{
				Row:    row,
				Name:   req.Name,
				Status: StatusFailed,
				Error:  strPtr(err.Error()),
			}
		case attemptTransient:
			lastErr = err
		}
	}

	return RowOutcome{
		Row:    row,
		Name:   req.Name,
		Status: StatusFailed,
		Error:  strPtr(lastErr.Error()),
	}
}

func strPtr(s string) *string { return &s }
