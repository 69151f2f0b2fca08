// Package httpapi exposes the flood snapshot over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/terraguard/floodwatch/internal/domain"
	"github.com/terraguard/floodwatch/internal/snapshot"
)

// SnapshotService is the read surface the API serves. Defined locally so the
// handler depends only on what it calls.
type SnapshotService interface {
	GetAll(ctx context.Context) (*domain.GroupedResults, error)
	GetByArea(ctx context.Context, lga string) ([]domain.CommunityResult, error)
	CheckReadiness(ctx context.Context) error
}

// Server wraps the chi router and the HTTP listener.
type Server struct {
	service SnapshotService
	logger  *slog.Logger
	router  *chi.Mux
	http    *http.Server
}

// NewServer builds the router and binds it to addr. Call Start to listen.
func NewServer(addr string, service SnapshotService, logger *slog.Logger) *Server {
	s := &Server{
		service: service,
		logger:  logger,
		router:  chi.NewRouter(),
	}
	s.routes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/all", s.handleGetAll)
	s.router.Get("/api/lga/{lgaName}", s.handleGetByArea)
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)
	s.router.Handle("/metrics", promhttp.Handler())
}

// ServeHTTP makes the server usable directly with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start blocks serving requests until Shutdown is called or the listener
// fails. http.ErrServerClosed is swallowed; it is the normal shutdown path.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// handleGetAll serves the full grouped snapshot. Building it (or reading the
// cached copy) also kicks off alert evaluation and notification.
func (s *Server) handleGetAll(w http.ResponseWriter, r *http.Request) {
	grouped, err := s.service.GetAll(r.Context())
	if err != nil {
		s.logger.Error("snapshot build failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}
	s.writeJSON(w, http.StatusOK, grouped)
}

func (s *Server) handleGetByArea(w http.ResponseWriter, r *http.Request) {
	lga := chi.URLParam(r, "lgaName")

	results, err := s.service.GetByArea(r.Context(), lga)
	if err != nil {
		if errors.Is(err, snapshot.ErrAreaNotFound) {
			s.writeError(w, http.StatusNotFound, "LGA not found")
			return
		}
		s.logger.Error("snapshot build failed", "lga", lga, "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadyz reports ready only once a snapshot has been built; the first
// build is slow (one provider call per community) and worth keeping off a
// freshly started instance.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.service.CheckReadiness(r.Context()); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "reason": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
