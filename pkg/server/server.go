// Package server serves the operator page and its JSON endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/google/uuid"

	"github.com/goliatone/go-jobform/pkg/logging"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

// DefaultTitle is the page heading.
const DefaultTitle = "Job URL Generator"

// Option configures a Server.
type Option func(*Server)

// WithRegistry sets the action registry. Defaults to registry.Default().
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Server) {
		s.actions = reg
	}
}

// WithBuilder sets the URL builder.
func WithBuilder(builder *urlbuilder.Builder) Option {
	return func(s *Server) {
		s.builder = builder
	}
}

// WithTheme passes a resolved theme to every rendered page.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithTransformer adjusts action descriptors before fields are rendered.
func WithTransformer(t orchestrator.Transformer) Option {
	return func(s *Server) {
		s.transformer = t
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTitle overrides the page heading.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// WithRequestIDGenerator replaces the uuid based request id source.
func WithRequestIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newRequestID = fn
		}
	}
}

// Server owns the HTTP handlers.
type Server struct {
	actions      *registry.Registry
	builder      *urlbuilder.Builder
	theme        *theme.RendererConfig
	transformer  orchestrator.Transformer
	logger       *slog.Logger
	title        string
	newRequestID func() string

	page *vanilla.Renderer
	orch *orchestrator.Orchestrator
}

// New builds a Server. It fails only when the embedded templates cannot be
// parsed.
func New(options ...Option) (*Server, error) {
	s := &Server{
		logger:       logging.Discard(),
		title:        DefaultTitle,
		newRequestID: uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.actions == nil {
		s.actions = registry.Default()
	}
	if s.builder == nil {
		s.builder = urlbuilder.New()
	}

	page, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.page = page

	renderers := render.NewRegistry()
	if err := renderers.Register(page); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.orch = orchestrator.New(
		orchestrator.WithRegistry(s.actions),
		orchestrator.WithBuilder(s.builder),
		orchestrator.WithRenderers(renderers),
		orchestrator.WithTheme(s.theme),
		orchestrator.WithTransformer(s.transformer),
	)
	return s, nil
}

// Handler returns the routed handler wrapped in the request middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /fields", s.handleFields)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("GET /actions", s.handleActions)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s.withRequestID(s.withLogging(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// allowing in-flight requests up to grace to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, listener, grace)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener, grace time.Duration) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", listener.Addr().String()))
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	s.logger.Info("shutting down", slog.Duration("grace", grace))
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
