// Package web serves the options validation API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/reoring/tableopts"
	"github.com/reoring/tableopts/internal/config"
	"github.com/reoring/tableopts/internal/web/middleware"
)

// Server wires the HTTP routes to a decoder.
type Server struct {
	cfg     *config.Config
	decoder *tableopts.Decoder
	router  chi.Router
	http    *http.Server
}

// NewServer builds the router. dec may be nil to use the default decoder.
func NewServer(cfg *config.Config, dec *tableopts.Decoder) *Server {
	if dec == nil {
		dec = tableopts.NewDecoder()
	}
	s := &Server{cfg: cfg, decoder: dec}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.Server.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/options", func(r chi.Router) {
		r.Post("/decode", s.handleDecode)
	})
	s.router = r

	s.http = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
