package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the API routes
func NewRouter(
	syncHandler *SyncHandler,
	flagHandler *FeatureFlagHandler,
	healthHandler *HealthHandler,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggingMiddleware(logger))

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/workspaces/{workspaceID}", func(r chi.Router) {
		r.Post("/message-channels/{messageChannelID}/sync-completed", syncHandler.SyncCompleted)
		r.Get("/feature-flags/{key}", flagHandler.GetFlag)
		r.Put("/feature-flags/{key}", flagHandler.SetFlag)
	})

	return r
}
