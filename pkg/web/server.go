// Package web serves the statute explorer as a browser page and a small JSON
// API. The view state travels in the URL query, so the server keeps no
// per-user state; each request derives its view from the immutable catalog.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/coolbeans/keiho/pkg/config"
	"github.com/coolbeans/keiho/pkg/render"
	"github.com/coolbeans/keiho/pkg/statute"
	"github.com/coolbeans/keiho/pkg/view"
)

const shutdownTimeout = 5 * time.Second

type contextKey string

const requestIDKey contextKey = "request_id"

// Server is the explorer HTTP server.
type Server struct {
	router   *mux.Router
	catalog  *statute.Catalog
	defaults view.State
	labels   render.Labels
	metrics  *Metrics
	logger   zerolog.Logger
	config   config.ServerConfig
}

// Options configures a Server. Zero values select the defaults. A non-zero
// Explorer is taken as a whole, so its Tolerance applies even when it is 0.
type Options struct {
	Server   config.ServerConfig
	Explorer config.ExplorerConfig
	Labels   *render.Labels
	Logger   *zerolog.Logger
}

// NewServer builds a server over catalog and registers its routes.
func NewServer(catalog *statute.Catalog, opts Options) (*Server, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}

	defaults := view.NewState()
	if opts.Explorer.DefaultSort != "" {
		direction, err := opts.Explorer.Direction()
		if err != nil {
			return nil, fmt.Errorf("failed to configure default sort: %w", err)
		}
		defaults.Direction = direction
	}
	if opts.Explorer != (config.ExplorerConfig{}) {
		defaults.Tolerance = opts.Explorer.Tolerance
	}

	serverConfig := opts.Server
	if serverConfig.Port == 0 {
		serverConfig = config.Default().Server
	}

	labels := render.Default
	if opts.Labels != nil {
		labels = *opts.Labels
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	server := &Server{
		router:   mux.NewRouter(),
		catalog:  catalog,
		defaults: defaults,
		labels:   labels,
		metrics:  NewMetrics(),
		logger:   logger.With().Str("component", "web").Logger(),
		config:   serverConfig,
	}
	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)

	s.router.HandleFunc("/", s.handlePage).Methods(http.MethodGet).Name("page")
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet).Name("health")
	s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})).
		Methods(http.MethodGet).Name("metrics")

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(jsonContentTypeMiddleware)
	api.HandleFunc("/view", s.handleView).Methods(http.MethodGet).Name("view")
	api.HandleFunc("/statutes", s.handleStatutes).Methods(http.MethodGet).Name("statutes")
	api.HandleFunc("/statutes/{id}", s.handleStatute).Methods(http.MethodGet).Name("statute")

	s.router.NotFoundHandler = s.requestIDMiddleware(s.requestLoggingMiddleware(http.HandlerFunc(s.handleNotFound)))
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", listener.Addr().String()).Int("statutes", s.catalog.Len()).Msg("starting explorer server")
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down explorer server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// requestIDMiddleware adds a short unique request ID to each request
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLoggingMiddleware logs and counts every request
func (s *Server) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		duration := time.Since(start)

		route := routeName(r)
		s.metrics.Requests.WithLabelValues(route, fmt.Sprintf("%d", wrapper.statusCode)).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())

		requestID, _ := r.Context().Value(requestIDKey).(string)
		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Dur("duration", duration).
			Msg("request")
	})
}

// jsonContentTypeMiddleware sets JSON content type for API responses
func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
		return route.GetName()
	}
	return "not_found"
}

// responseWrapper captures the response status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
