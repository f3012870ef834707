// Package server exposes the cafe catalog over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/7ntys/chaos-lab/internal/logging"
	"github.com/7ntys/chaos-lab/internal/menu"
)

// Request deadlines.
const (
	queryTimeout  = 3 * time.Second
	healthTimeout = 2 * time.Second

	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Endpoint names accepted by WithFailures.
const (
	EndpointMenu     = "menu"
	EndpointSpecials = "specials"
)

// ErrUnknownEndpoint is returned for a fault injection target that does not exist.
var ErrUnknownEndpoint = errors.New("unknown endpoint")

// Catalog is the data source behind the API. *store.Store satisfies it.
type Catalog interface {
	MenuItems(ctx context.Context) ([]menu.Item, error)
	Specials(ctx context.Context) ([]menu.Special, error)
	Ping(ctx context.Context) error
}

// Server serves the catalog API.
type Server struct {
	catalog Catalog
	logger  zerolog.Logger
	failing map[string]bool
}

// Option customizes a Server.
type Option func(*Server) error

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) error {
		s.logger = logging.ComponentLogger(l, "server")
		return nil
	}
}

// WithFailures makes the named endpoints answer 503, for exercising client failure paths.
func WithFailures(endpoints ...string) Option {
	return func(s *Server) error {
		for _, e := range endpoints {
			if e != EndpointMenu && e != EndpointSpecials {
				return fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownEndpoint, e, EndpointMenu, EndpointSpecials)
			}
			s.failing[e] = true
		}
		return nil
	}
}

// New creates a Server over catalog.
func New(catalog Catalog, opts ...Option) (*Server, error) {
	s := &Server{
		catalog: catalog,
		logger:  zerolog.Nop(),
		failing: map[string]bool{},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handler returns the routed, logged HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/menu", s.handleMenu)
	mux.HandleFunc("/api/specials", s.handleSpecials)
	return s.withLogging(mux)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("backend listening")
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	<-errCh
	s.logger.Info().Msg("backend stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.catalog.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("health check failed")
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	if !s.admit(w, r, EndpointMenu) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	items, err := s.catalog.MenuItems(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("loading menu failed")
		http.Error(w, "failed to load menu", http.StatusInternalServerError)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleSpecials(w http.ResponseWriter, r *http.Request) {
	if !s.admit(w, r, EndpointSpecials) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	specials, err := s.catalog.Specials(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("loading specials failed")
		http.Error(w, "failed to load specials", http.StatusInternalServerError)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]any{"specials": specials})
}

// admit rejects non-GET requests and injected failures. It reports whether to continue.
func (s *Server) admit(w http.ResponseWriter, r *http.Request, endpoint string) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if s.failing[endpoint] {
		http.Error(w, "injected failure", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, logger zerolog.Logger, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn().Err(err).Msg("json encode error")
	}
}
