package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/medops/hospital-bulk/internal/hospital"
	"github.com/medops/hospital-bulk/internal/logging"
)

// batchSummary is one entry in the batch listing.
type batchSummary struct {
	BatchID        string `json:"batch_id"`
	TotalHospitals int    `json:"total_hospitals"`
	Active         bool   `json:"active"`
}

// handleBatchDetail replays a batch's hospital IDs against the directory
// and returns the documents that still exist. Hospitals deleted out of
// band are skipped rather than failing the whole lookup.
func (s *Server) handleBatchDetail(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	ids, ok := s.registry.Get(batchID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "batch not found")
		return
	}

	hospitals := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		raw, err := s.directory.Get(r.Context(), id)
		if err != nil {
			logging.FromContext(r.Context()).Debug("skipping batch member",
				"batch_id", batchID,
				"hospital_id", id,
				"error", err,
			)
			continue
		}
		hospitals = append(hospitals, raw)
	}

	writeJSON(w, hospitals)
}

// handleListBatches lists every registered batch with its member count and
// a best-effort active flag probed from the first member's directory state.
func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	all := s.registry.All()

	batches := make([]batchSummary, 0, len(all))
	for batchID, ids := range all {
		summary := batchSummary{
			BatchID:        batchID,
			TotalHospitals: len(ids),
		}
		if len(ids) > 0 {
			if raw, err := s.directory.Get(r.Context(), ids[0]); err == nil {
				summary.Active = hospital.ActiveFlag(raw)
			}
		}
		batches = append(batches, summary)
	}

	// Map iteration order is random; keep the listing stable for clients.
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].BatchID < batches[j].BatchID
	})

	writeJSON(w, map[string]any{
		"count":   len(batches),
		"batches": batches,
	})
}

// handleActivateBatch forwards an activation to the directory and reports
// whether it took effect.
func (s *Server) handleActivateBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	err := s.directory.ActivateBatch(r.Context(), batchID, nil)
	if err != nil {
		logging.FromContext(r.Context()).Warn("batch activation failed",
			"batch_id", batchID,
			"error", err,
		)
	}

	writeJSON(w, map[string]any{
		"batch_id":  batchID,
		"activated": err == nil,
	})
}

// handleDeactivateBatch forwards a deactivation by calling the same
// directory endpoint with active=false.
func (s *Server) handleDeactivateBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	inactive := false
	if err := s.directory.ActivateBatch(r.Context(), batchID, &inactive); err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to deactivate batch: "+err.Error())
		return
	}

	writeJSON(w, map[string]any{
		"batch_id":    batchID,
		"deactivated": true,
	})
}

// handleDeleteBatch tears a batch down: every member hospital is deleted
// in the directory (best effort), then the batch leaves the registry.
func (s *Server) handleDeleteBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	ids, ok := s.registry.Get(batchID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "batch not found")
		return
	}

	for _, id := range ids {
		if err := s.directory.Delete(r.Context(), id); err != nil && !errors.Is(err, hospital.ErrNotFound) {
			logging.FromContext(r.Context()).Warn("failed to delete batch member",
				"batch_id", batchID,
				"hospital_id", id,
				"error", err,
			)
		}
	}

	s.registry.Remove(batchID)

	writeJSON(w, map[string]any{
		"batch_id": batchID,
		"deleted":  true,
	})
}
