// Package api exposes the storage engine over a REST interface: key-value
// operations, statistics, log compaction, and Prometheus metrics.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zephyrite-db/zephyrite/pkg/storage"
)

// Router builds the chi router with all routes and middleware configured
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		// Health check
		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// KV operations
		r.Get("/keys", s.metrics.InstrumentHandler("GET", "/api/v1/keys", s.handleListKeys))
		r.Put("/keys/{key}", s.metrics.InstrumentHandler("PUT", "/api/v1/keys/{key}", s.handlePut))
		r.Get("/keys/{key}", s.metrics.InstrumentHandler("GET", "/api/v1/keys/{key}", s.handleGet))
		r.Delete("/keys/{key}", s.metrics.InstrumentHandler("DELETE", "/api/v1/keys/{key}", s.handleDelete))

		// Diagnostics and maintenance
		r.Get("/stats", s.metrics.InstrumentHandler("GET", "/api/v1/stats", s.handleStats))
		r.Post("/compact", s.metrics.InstrumentHandler("POST", "/api/v1/compact", s.handleCompact))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured and blocks
// until it fails.
func StartServer(store storage.Engine, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(store, config, metrics)

	// Background gauge refresh
	go server.startMetricsUpdater(30 * time.Second)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	slog.Info("starting zephyrite server", "addr", addr)
	slog.Info("metrics endpoint ready", "url", fmt.Sprintf("http://%s/metrics", addr))

	return http.ListenAndServe(addr, server.Router())
}

// startMetricsUpdater refreshes storage gauges on an interval
func (s *Server) startMetricsUpdater(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		stats, err := s.store.Stats()
		if err != nil {
			slog.Warn("failed to refresh storage metrics", "error", err)
			continue
		}
		s.metrics.UpdateStorageStats(stats.KeyCount, stats.MemoryUsage)
	}
}
