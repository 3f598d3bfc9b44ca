package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medops/hospital-bulk/internal/hospital"
)

// handleListHospitals proxies the directory's hospital list verbatim.
func (s *Server) handleListHospitals(w http.ResponseWriter, r *http.Request) {
	raw, err := s.directory.List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "hospital directory unavailable: "+err.Error())
		return
	}
	writeRawJSON(w, raw)
}

// handleDeleteHospital deletes one hospital in the directory.
// The directory's 404 stays a 404.
func (s *Server) handleDeleteHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID := chi.URLParam(r, "hospitalID")

	if err := s.directory.Delete(r.Context(), hospitalID); err != nil {
		if errors.Is(err, hospital.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "hospital not found")
			return
		}
		writeError(w, r, http.StatusBadGateway, "hospital directory unavailable: "+err.Error())
		return
	}

	writeJSON(w, map[string]bool{"deleted": true})
}
