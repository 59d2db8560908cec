// Package server exposes the hearing chat relay and the admin view over
// HTTP. Each request is an independent, stateless cycle against the two
// external services; the only shared state is the server lifecycle itself.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
	"github.com/elefant-coder/hearing-chatbot/internal/relay"
	"github.com/elefant-coder/hearing-chatbot/internal/store"
)

//go:embed web
var webAssets embed.FS

// Options configures the hearing server
type Options struct {
	Host          string
	Port          int
	AdminPassword string // shared secret; empty means no listing succeeds
}

// Server is the hearing HTTP server
type Server struct {
	options        Options
	server         *http.Server
	relay          relay.Provider // nil when chat is disabled
	store          store.Store    // nil when persistence is disabled
	prompts        *hearing.PromptSource
	logger         zerolog.Logger
	startTime      time.Time
	isShuttingDown bool
	shutdownMu     sync.RWMutex
	inFlightReqs   sync.WaitGroup
}

// New creates a new hearing server
func New(options Options, provider relay.Provider, st store.Store, prompts *hearing.PromptSource, logger zerolog.Logger) *Server {
	if options.Port == 0 {
		options.Port = 3000
	}
	if options.Host == "" {
		options.Host = "0.0.0.0"
	}
	if prompts == nil {
		prompts = hearing.NewPromptSource()
	}

	return &Server{
		options:   options,
		relay:     provider,
		store:     st,
		prompts:   prompts,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Handler builds the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", s.handleHealth)

	// API endpoints
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/admin/sessions", s.handleAdminSessions)

	// Embedded admin view
	assets, err := fs.Sub(webAssets, "web")
	if err != nil {
		// The embed directive guarantees the subtree exists
		panic(err)
	}
	mux.Handle("/admin/", http.StripPrefix("/admin/", http.FileServer(http.FS(assets))))
	mux.Handle("/admin", http.RedirectHandler("/admin/", http.StatusMovedPermanently))

	return s.withRequest(mux)
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.options.Host, s.options.Port),
		Handler: s.Handler(),
	}

	s.logger.Info().
		Str("host", s.options.Host).
		Int("port", s.options.Port).
		Msg("Starting hearing server")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start hearing server: %w", err)
	}

	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop() error {
	s.shutdownMu.Lock()
	s.isShuttingDown = true
	s.shutdownMu.Unlock()

	s.logger.Info().Msg("Shutting down hearing server")

	// Wait for in-flight requests with timeout
	done := make(chan struct{})
	go func() {
		s.inFlightReqs.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("All in-flight requests completed")
	case <-time.After(30 * time.Second):
		s.logger.Warn().Msg("Shutdown timeout reached, forcing close")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown hearing server: %w", err)
		}
	}

	s.logger.Info().Msg("Hearing server stopped")
	return nil
}

// withRequest rejects requests during shutdown, tracks in-flight work,
// and attaches a request-scoped logger with a correlation id.
func (s *Server) withRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.shutdownMu.RLock()
		if s.isShuttingDown {
			s.shutdownMu.RUnlock()
			http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}
		s.shutdownMu.RUnlock()

		s.inFlightReqs.Add(1)
		defer s.inFlightReqs.Done()

		start := time.Now()
		logger := s.logger.With().
			Str("request_id", uuid.NewString()).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r.WithContext(logger.WithContext(r.Context())))

		logger.Info().
			Int("status", recorder.status).
			Str("ip", clientIP(r)).
			Int64("duration", time.Since(start).Milliseconds()).
			Msg("Request completed")
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status":    "ok",
		"uptime":    time.Since(s.startTime).Seconds(),
		"timestamp": time.Now().UnixMilli(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// clientIP extracts the client IP from the request
func clientIP(r *http.Request) string {
	// Check X-Forwarded-For header
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Use RemoteAddr
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
