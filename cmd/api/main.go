package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Raymond9734/messaging-contact-sync/internal/config"
	"github.com/Raymond9734/messaging-contact-sync/internal/db"
	"github.com/Raymond9734/messaging-contact-sync/internal/handler"
	"github.com/Raymond9734/messaging-contact-sync/internal/logger"
	"github.com/Raymond9734/messaging-contact-sync/internal/queue"
	"github.com/Raymond9734/messaging-contact-sync/internal/repository"
	"github.com/Raymond9734/messaging-contact-sync/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting contact sync API server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	database, err := db.New(ctx, cfg.Database.DSN(), db.DefaultPoolConfig)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	log.Info("connected to database")

	// Connect to queue
	queueClient, err := queue.New(ctx, queue.Options{
		Driver:      cfg.Queue.Driver,
		RedisURL:    cfg.Queue.RedisURL,
		RabbitMQURL: cfg.Queue.RabbitMQURL,
		QueueName:   cfg.Queue.QueueName,
	}, log)
	if err != nil {
		log.Error("failed to connect to queue", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer queueClient.Close()

	log.Info("connected to queue", slog.String("driver", cfg.Queue.Driver))

	// Initialize repositories
	flagRepo := repository.NewFeatureFlagRepository(database.DB)

	// Initialize services
	syncSvc := service.NewSyncService(queueClient, log)
	flagSvc := service.NewFeatureFlagService(flagRepo, log)

	// Initialize handlers
	syncHandler := handler.NewSyncHandler(syncSvc, log)
	flagHandler := handler.NewFeatureFlagHandler(flagSvc, log)
	healthHandler := handler.NewHealthHandler(database, queueClient, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(syncHandler, flagHandler, healthHandler, registry, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}

	case <-ctx.Done():
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		log.Info("server stopped gracefully")
	}
}
