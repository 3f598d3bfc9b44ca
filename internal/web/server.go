// Package web provides the HTTP server and handlers for the hospital bulk
// upload service: the bulk ingestion endpoint plus pass-through operations
// against the hospital directory and the batch registry.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/medops/hospital-bulk/internal/batch"
	"github.com/medops/hospital-bulk/internal/config"
	"github.com/medops/hospital-bulk/internal/core"
	"github.com/medops/hospital-bulk/internal/hospital"
	"github.com/medops/hospital-bulk/internal/logging"
	mw "github.com/medops/hospital-bulk/internal/web/middleware"
)

// Server is the HTTP server for the bulk upload application.
type Server struct {
	service   *core.Service
	directory *hospital.Client
	registry  *batch.Registry
	cfg       *config.Config
	router    *chi.Mux
	server    *http.Server
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, directory *hospital.Client, registry *batch.Registry, cfg *config.Config) *Server {
	s := &Server{
		service:   service,
		directory: directory,
		registry:  registry,
		cfg:       cfg,
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	s.router.Use(corsHandler.Handler)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleRoot)

	s.router.Route("/hospitals", func(r chi.Router) {
		// Bulk ingestion
		r.Post("/bulk/upload", s.handleBulkUpload)

		// Batch operations backed by the registry
		r.Get("/batches", s.handleListBatches)
		r.Get("/batch/{batchID}", s.handleBatchDetail)
		r.Patch("/batch/{batchID}/activate", s.handleActivateBatch)
		r.Patch("/batch/{batchID}/deactivate", s.handleDeactivateBatch)
		r.Delete("/batch/{batchID}", s.handleDeleteBatch)

		// Pass-through to the hospital directory
		r.Get("/", s.handleListHospitals)
		r.Delete("/{hospitalID}", s.handleDeleteHospital)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// handleRoot is a liveness probe.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"message": "hospital bulk upload backend running"})
}

// writeError writes a JSON error response and logs the cause with the
// request ID for correlation.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", message,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// writeRawJSON forwards an upstream JSON document verbatim.
func writeRawJSON(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(raw); err != nil {
		slog.Error("write response error", "error", err)
	}
}
