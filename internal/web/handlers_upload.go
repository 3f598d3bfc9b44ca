package web

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/medops/hospital-bulk/internal/core"
)

// handleBulkUpload accepts a CSV file and replicates each row into the
// hospital directory. Once past the ingestion gates the response is always
// 200 with a full per-row breakdown, even if every row failed.
func (s *Server) handleBulkUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to read file")
		return
	}

	result, err := s.service.Ingest(r.Context(), header.Filename, data)
	if err != nil {
		s.respondIngestError(w, r, err)
		return
	}

	writeJSON(w, result)
}

// respondIngestError maps ingestion-level failures to HTTP statuses.
// Per-row failures never reach here; they live inside the BulkResult.
func (s *Server) respondIngestError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrTooManyUploads):
		w.Header().Set("Retry-After", "10")
		writeError(w, r, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, core.ErrUnsupportedFormat),
		errors.Is(err, core.ErrEmptyInput),
		errors.Is(err, core.ErrRowLimitExceeded):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, "upload cancelled")
	default:
		// Parse and decode failures are client problems too
		writeError(w, r, http.StatusBadRequest, err.Error())
	}
}
