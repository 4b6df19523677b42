// Package httpapi exposes chess positions over HTTP: inspection, move
// application, perft and SVG diagrams. Every request carries its own FEN, so
// the server holds no game state.
package httpapi

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Config bounds the work a single request may ask for.
type Config struct {
	// MaxPerftDepth caps the depth accepted by /api/perft.
	MaxPerftDepth int
	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64
	// AccessLog receives one combined-format line per request. Nil disables it.
	AccessLog io.Writer
}

// DefaultConfig returns the limits used by the posserver binary.
func DefaultConfig() Config {
	return Config{
		MaxPerftDepth: 4,
		MaxBodyBytes:  1 << 16,
	}
}

// Server serves the position API.
type Server struct {
	cfg    Config
	router *mux.Router

	srvMu  sync.Mutex
	srv    *http.Server
	closed bool
}

// NewServer builds a Server and its routes.
func NewServer(cfg Config) *Server {
	def := DefaultConfig()
	if cfg.MaxPerftDepth <= 0 {
		cfg.MaxPerftDepth = def.MaxPerftDepth
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	s := &Server{cfg: cfg, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	if s.cfg.AccessLog != nil {
		r.Use(func(next http.Handler) http.Handler {
			return handlers.CombinedLoggingHandler(s.cfg.AccessLog, next)
		})
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/position", s.withJSON(s.handlePosition)).Methods(http.MethodGet)
	r.HandleFunc("/api/move", s.withJSON(s.handleMove)).Methods(http.MethodPost)
	r.HandleFunc("/api/perft", s.withJSON(s.handlePerft)).Methods(http.MethodGet)
	r.HandleFunc("/api/diagram.svg", s.handleDiagram).Methods(http.MethodGet)
}

// Handler returns the routed API wrapped in panic recovery.
func (s *Server) Handler() http.Handler {
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(s.router)
}

// Listen starts the HTTP server and blocks until it stops. A graceful Close
// makes it return nil, and after Close it returns nil without serving.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	if s.closed {
		s.srvMu.Unlock()
		return nil
	}
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	log.Printf("HTTP listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server. A Listen that has not
// started yet will not start.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	s.closed = true
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
