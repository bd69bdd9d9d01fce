// Package server exposes the search core over HTTP: filter search, location
// resolution, health, and metrics.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/config"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
	"github.com/Ayupanchal18/Renters-sub007/internal/location"
	"github.com/Ayupanchal18/Renters-sub007/internal/store"
)

type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

func New(cfg config.ServerConfig, st *store.Store, loc *location.Service, log logger.Logger) *Server {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(log))
	r.Use(chimiddleware.Recoverer)

	h := &handlers{store: st, locations: loc, logger: log}

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", h.search)
		r.Post("/search", h.searchBody)
		r.Post("/filters/clear", h.clearFilters)
		r.Get("/locate", h.locate)
		r.Post("/locations/validate", h.validateLocation)
	})
	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      r,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Millisecond,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Millisecond,
			IdleTimeout:  60 * time.Second,
		},
		logger: log,
	}
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{"addr": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
