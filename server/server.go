// Package server exposes the agent over HTTP
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.uber.org/atomic"

	"github.com/bububa/heroku-a2a/a2a"
	"github.com/bububa/heroku-a2a/agents"
	"github.com/bububa/heroku-a2a/tools"
)

// APIKeyHeader carries the client API key
const APIKeyHeader = "X-API-Key"

// Config configures a Server instance.
type Config struct {
	Factory      *agents.Factory
	Registry     *tools.Registry
	Orchestrator *a2a.Orchestrator
	// APIKey is the key expected on protected routes, empty disables the check
	APIKey  string
	MaxBody int64
	Logger  *slog.Logger
}

// Server is the agent HTTP API server.
type Server struct {
	factory      *agents.Factory
	registry     *tools.Registry
	orchestrator *a2a.Orchestrator
	apiKey       string
	maxBody      int64
	logger       *slog.Logger
	requests     atomic.Int64
	failures     atomic.Int64
}

// NewServer creates a new Server with the given configuration.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := cfg.MaxBody
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	registry := cfg.Registry
	if registry == nil && cfg.Factory != nil {
		registry = cfg.Factory.Registry()
	}
	if registry == nil {
		registry = new(tools.Registry)
	}
	orchestrator := cfg.Orchestrator
	if orchestrator == nil {
		orchestrator = a2a.New(cfg.Factory, logger)
	}
	return &Server{
		factory:      cfg.Factory,
		registry:     registry,
		orchestrator: orchestrator,
		apiKey:       cfg.APIKey,
		maxBody:      maxBody,
		logger:       logger,
	}
}

// Handler returns an http.Handler with all routes and middleware wired.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	var handler http.Handler = mux
	handler = s.maxBodyMiddleware(handler)
	handler = s.recoverMiddleware(handler)
	handler = s.logMiddleware(handler)
	handler = s.requestIDMiddleware(handler)
	return handler
}

// RegisterRoutes mounts the API routes onto an existing mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /tools", s.handleTools)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("POST /query", s.authMiddleware(http.HandlerFunc(s.handleQuery)))
	mux.Handle("POST /a2a", s.authMiddleware(http.HandlerFunc(s.handleA2A)))
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      5 * time.Minute,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the error envelope of every failed request
type errorBody struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}
