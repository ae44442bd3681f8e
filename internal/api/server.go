// Package api serves feature decisions, template settings and navigation
// over a read-only JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marcus/sitegate/internal/snapshot"
)

// SnapshotSource supplies the snapshot each request reads.
type SnapshotSource interface {
	Current() *snapshot.Snapshot
}

// Server is the HTTP API server for sitegate.
type Server struct {
	config      Config
	http        *http.Server
	source      SnapshotSource
	rateLimiter *RateLimiter
	proxies     proxyList
	addr        net.Addr
}

// NewServer creates a new Server reading snapshots from src.
func NewServer(cfg Config, src SnapshotSource) (*Server, error) {
	if src == nil || src.Current() == nil {
		return nil, errors.New("api: snapshot source has no snapshot")
	}
	proxies, err := parseProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	s := &Server{
		config:      cfg,
		source:      src,
		rateLimiter: NewRateLimiter(),
		proxies:     proxies,
	}

	s.http = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s, nil
}

// Start begins listening for HTTP requests (non-blocking).
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.addr = ln.Addr()

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", "err", err)
		}
	}()

	return nil
}

// Addr returns the bound listen address once Start has succeeded.
func (s *Server) Addr() string {
	if s.addr == nil {
		return ""
	}
	return s.addr.String()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Run starts the server and blocks until ctx is done, then shuts down within
// the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	slog.Info("listening", "addr", s.Addr())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// routes builds the HTTP handler with all routes and middleware.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health & metrics
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Features
	mux.HandleFunc("GET /v1/features", s.handleListFeatures)
	mux.HandleFunc("GET /v1/features/enabled", s.handleEnabledFeatures)
	mux.HandleFunc("GET /v1/features/{name}", s.handleGetFeature)
	mux.HandleFunc("GET /v1/features/{name}/decision", s.handleDecision)

	// Site
	mux.HandleFunc("GET /v1/site", s.handleSite)
	mux.HandleFunc("GET /v1/nav", s.handleNav)

	return chain(mux,
		recoveryMiddleware,
		requestIDMiddleware,
		loggerMiddleware,
		loggingMiddleware,
		s.CORSMiddleware,
		rateLimitMiddleware(s.rateLimiter, s.config.RateLimit, s.proxies),
		metricsMiddleware,
	)
}

// handleHealth reports liveness and the age of the active snapshot.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Current()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"loaded_at": snap.LoadedAt.UTC().Format(time.RFC3339),
	})
}
