package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/medops/hospital-bulk/internal/batch"
	"github.com/medops/hospital-bulk/internal/config"
	"github.com/medops/hospital-bulk/internal/logging"
)

// Service is the ingestion orchestrator: it gates an upload, drives the
// parser and dispatcher, records the batch, and shapes the final result.
type Service struct {
	registry   *batch.Registry
	limiter    *UploadLimiter
	dispatcher *dispatcher
	maxRows    int
}

// NewService wires the orchestrator. dir is the directory client the
// per-row creation and batch activation calls go through; registry holds
// the batch index and is shared with the query/teardown handlers.
func NewService(dir Directory, registry *batch.Registry, cfg *config.Config) *Service {
	creator := &rowCreator{dir: dir}

	return &Service{
		registry: registry,
		limiter:  NewUploadLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		dispatcher: &dispatcher{
			createRow: creator.CreateRow,
			activateBatch: func(ctx context.Context, batchID string) error {
				return dir.ActivateBatch(ctx, batchID, nil)
			},
			concurrency: cfg.Upload.Concurrency,
		},
		maxRows: cfg.Upload.MaxRows,
	}
}

// Ingest processes one bulk upload end to end.
//
// It fails fast, before any directory call, on a non-CSV filename, an
// undecodable or empty file, or a row count over the configured maximum.
// Past those gates it always succeeds: per-row failures are reported inside
// the BulkResult, even when every single row failed.
func (s *Service) Ingest(ctx context.Context, fileName string, data []byte) (*BulkResult, error) {
	if !strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return nil, ErrUnsupportedFormat
	}

	rows, err := ParseCSV(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	if len(rows) > s.maxRows {
		return nil, fmt.Errorf("%w: max rows allowed: %d", ErrRowLimitExceeded, s.maxRows)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	batchID := uuid.New().String()
	logger := logging.WithFields(ctx, "batch_id", batchID)
	logger.Info("bulk upload dispatch", "file", fileName, "rows", len(rows))

	outcomes, activated, elapsed := s.dispatcher.Dispatch(ctx, rows, batchID)

	createdIDs := make([]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Status == StatusCreated && outcome.HospitalID != nil {
			createdIDs = append(createdIDs, *outcome.HospitalID)
		}
	}

	// Registered unconditionally: a batch where every row failed still
	// exists, with zero members, until it is explicitly deleted.
	s.registry.Save(batchID, createdIDs)

	logger.Info("bulk upload complete",
		"created", len(createdIDs),
		"failed", len(rows)-len(createdIDs),
		"activated", activated,
		"elapsed_s", elapsed,
	)

	return &BulkResult{
		BatchID:               batchID,
		TotalHospitals:        len(rows),
		ProcessedHospitals:    len(createdIDs),
		FailedHospitals:       len(rows) - len(createdIDs),
		ProcessingTimeSeconds: elapsed,
		BatchActivated:        activated,
		Hospitals:             outcomes,
	}, nil
}

// WaitForUploads blocks until all in-flight uploads complete or ctx expires.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// ActiveUploads returns the number of uploads currently being processed.
func (s *Service) ActiveUploads() int {
	return s.limiter.ActiveCount()
}
