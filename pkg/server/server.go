package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Server hosts the API routes behind the middleware pipeline, plus the
// operational endpoints, and owns graceful shutdown for both listeners.
type Server struct {
	config       *Config
	httpServer   *http.Server
	healthServer *http.Server
	rateLimiter  *rate.Limiter
	instanceID   string
}

// Option configures a Server.
type Option func(*Config)

// WithConfig replaces the entire configuration.
func WithConfig(cfg *Config) Option {
	return func(c *Config) {
		if cfg != nil {
			*c = *cfg
		}
	}
}

// WithName sets the server identity used in startup logs.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithVersion sets the version reported in startup logs.
func WithVersion(version string) Option {
	return func(c *Config) {
		c.Version = version
	}
}

// WithHandler mounts route handlers behind the middleware pipeline.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(c *Config) {
		if c.Handlers == nil {
			c.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for pattern, h := range handlers {
			c.Handlers[pattern] = h
		}
	}
}

// New creates a new server instance
func New(opts ...Option) *Server {
	cfg := parseConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Server{
		config:      cfg,
		rateLimiter: rate.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst),
		instanceID:  uuid.NewString(),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Handler:      s.setupRoutes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.HealthPort > 0 {
		s.healthServer = &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Address, cfg.HealthPort),
			Handler:      s.setupHealthRoutes(),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		}
	}

	return s
}

// setupRoutes configures the API mux: application routes behind the full
// middleware pipeline, system endpoints without it.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting, no timeout stage)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metricsHandler())

	// API endpoints with middleware
	for pattern, handler := range s.config.Handlers {
		mux.HandleFunc(pattern, s.withMiddleware(handler))
	}

	return mux
}

// setupHealthRoutes configures the mux for the separate operational
// listener, kept off the externally exposed port.
func (s *Server) setupHealthRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metricsHandler())
	return mux
}

// Run starts the API server and, when configured, the health server, then
// blocks until ctx is cancelled or a listener fails. On cancellation both
// listeners stop accepting connections and in-flight requests are drained
// up to the shutdown bound.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting server",
		"name", s.config.Name,
		"version", s.config.Version,
		"instance", s.instanceID,
		"address", s.httpServer.Addr,
		"request_timeout", s.config.RequestTimeout.String(),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if s.healthServer != nil {
		slog.Info("starting health server", "address", s.healthServer.Addr)
		g.Go(func() error {
			if err := s.healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("health server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}

// Shutdown gracefully shuts down both listeners within the shutdown bound.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "grace_period", s.config.ShutdownTimeout.String())

	var errs []error
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
	}
	if s.healthServer != nil {
		if err := s.healthServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("health server shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}
