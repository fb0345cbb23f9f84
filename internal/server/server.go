// Package server exposes stored diagrams over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /api/version
//	GET    /api/templates
//	GET    /api/diagrams
//	POST   /api/diagrams
//	GET    /api/diagrams/{id}
//	PUT    /api/diagrams/{id}
//	DELETE /api/diagrams/{id}
//	GET    /api/diagrams/{id}/render.{format}
//	GET    /api/diagrams/{id}/hover?x=&y=
//	GET    /api/ws
//
// Hovering a commit, through the hover endpoint or a "pointer" websocket
// message, broadcasts a commit:mouseover event to every websocket client.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gitgraph/pkg/pipeline"
	"github.com/matzehuels/gitgraph/pkg/store"
)

const (
	// DefaultAddr is the listen address used when Config.Addr is empty.
	DefaultAddr = "127.0.0.1:8080"

	// maxScriptBytes bounds request bodies.
	maxScriptBytes = 1 << 20

	shutdownTimeout = 5 * time.Second
)

// Config configures a [Server].
type Config struct {
	Addr   string
	Runner *pipeline.Runner // Defaults to an uncached runner
	Store  store.Store      // Defaults to an in-memory store
	Logger *log.Logger
	// AllowedOrigins restricts websocket upgrades. Empty allows any origin.
	AllowedOrigins []string
}

// Server serves the diagram API.
type Server struct {
	addr   string
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	hub    *Hub

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a server. Call [Server.Run] to start it or use
// [Server.Handler] directly.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	s := &Server{
		addr:     cfg.Addr,
		runner:   cfg.Runner,
		store:    cfg.Store,
		logger:   cfg.Logger,
		sessions: make(map[string]*session),
	}
	s.hub = NewHub(cfg.Logger, cfg.AllowedOrigins)
	s.hub.onPointer = s.pointer
	return s
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/templates", s.handleTemplates)
		r.Get("/ws", s.hub.ServeWS)
		r.Route("/diagrams", func(r chi.Router) {
			r.Get("/", s.handleListDiagrams)
			r.Post("/", s.handleCreateDiagram)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDiagram)
				r.Put("/", s.handleUpdateDiagram)
				r.Delete("/", s.handleDeleteDiagram)
				r.Get("/render.{format}", s.handleRender)
				r.Get("/hover", s.handleHover)
			})
		})
	})
	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.hub.Run(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Hub returns the websocket hub. Tests run it directly.
func (s *Server) Hub() *Hub { return s.hub }
