package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/glimpse/internal/debounce"
	"github.com/jonathan/glimpse/internal/logging"
	"github.com/jonathan/glimpse/internal/ranking"
	"github.com/jonathan/glimpse/internal/server/ratelimit"
	"github.com/jonathan/glimpse/internal/settings"
)

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	engine        *ranking.Engine
	settings      *settings.Service
	rateLimiter   *ratelimit.Limiter
	logger        logging.Logger
	debounceDelay time.Duration
	upgrader      websocket.Upgrader
}

// Config holds server configuration
type Config struct {
	Port     int
	Engine   *ranking.Engine
	Settings *settings.Service
	// RateLimit defaults to ratelimit.LoadConfig() when nil
	RateLimit     *ratelimit.Config
	DebounceDelay time.Duration
	Logger        logging.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Engine == nil {
		return nil, errors.New("server requires a search engine")
	}
	if cfg.Settings == nil {
		return nil, errors.New("server requires a settings service")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	rateLimitConfig := cfg.RateLimit
	if rateLimitConfig == nil {
		rateLimitConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		engine:        cfg.Engine,
		settings:      cfg.Settings,
		rateLimiter:   ratelimit.NewLimiter(rateLimitConfig),
		logger:        logger,
		debounceDelay: cfg.DebounceDelay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The popup connects from an extension origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	if s.debounceDelay <= 0 {
		s.debounceDelay = debounce.DefaultDelay
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	mux.HandleFunc("GET /settings", s.handleGetSettings)
	mux.HandleFunc("PUT /settings/api-key", s.handleSaveAPIKey)
	mux.HandleFunc("DELETE /settings/api-key", s.handleRemoveAPIKey)
	mux.HandleFunc("PUT /settings/mode", s.handleSetMode)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.rateLimiter.Middleware(s.withLogging(s.withCORS(mux)), logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second, // Remote ranking can take up to its own timeout
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the address the server listens on
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown gracefully stops the server and releases its resources
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]any{"success": false, "error": message})
}

// errorFor writes the response matching err's HTTP status. Internal errors
// are logged and replaced by a generic message.
func (s *Server) errorFor(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		requestLogger(r, s.logger).WithError(err).Error("request failed")
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
