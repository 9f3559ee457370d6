// Package apiserver exposes the moderation pipeline over HTTP. It is
// the collaborator-facing surface: it owns session persistence around
// each turn, while the responder owns all decision logic.
package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tutorguard/tutorguard/pkg/classification"
	"github.com/tutorguard/tutorguard/pkg/config"
	"github.com/tutorguard/tutorguard/pkg/observability/logging"
	"github.com/tutorguard/tutorguard/pkg/responder"
	"github.com/tutorguard/tutorguard/pkg/session"
)

// Server serves the respond API around a responder and a session store.
type Server struct {
	responder *responder.Responder
	store     session.Store
	cfg       *config.Config
}

// NewServer creates the API server.
func NewServer(r *responder.Responder, store session.Store, cfg *config.Config) *Server {
	return &Server{responder: r, store: store, cfg: cfg}
}

// Run starts the HTTP server and blocks until the context is canceled
// or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.APIPort),
		Handler:      s.setupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("API server listening on port %d", s.cfg.Server.APIPort)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/respond", s.handleRespond)
	mux.HandleFunc("POST /api/v1/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/v1/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /api/v1/subjects", s.handleSubjects)

	return mux
}

// allowedSubjects reports the fixed tutoring scope; handy for UI chips.
func allowedSubjects() []string {
	return classification.AllowedSubjects
}
