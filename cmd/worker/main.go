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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Raymond9734/messaging-contact-sync/internal/config"
	"github.com/Raymond9734/messaging-contact-sync/internal/db"
	"github.com/Raymond9734/messaging-contact-sync/internal/logger"
	"github.com/Raymond9734/messaging-contact-sync/internal/models"
	"github.com/Raymond9734/messaging-contact-sync/internal/queue"
	"github.com/Raymond9734/messaging-contact-sync/internal/repository"
	"github.com/Raymond9734/messaging-contact-sync/internal/service"
	"github.com/Raymond9734/messaging-contact-sync/internal/worker"
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

	log.Info("starting contact sync worker")

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
	channelRepo := repository.NewMessageChannelRepository(database.DB)
	accountRepo := repository.NewConnectedAccountRepository(database.DB)
	flagRepo := repository.NewFeatureFlagRepository(database.DB)
	participantRepo := repository.NewMessageParticipantRepository(database.DB)
	companyRepo := repository.NewCompanyRepository(database.DB)
	personRepo := repository.NewPersonRepository(database.DB)

	creator := service.NewCreateCompanyAndContactService(personRepo, companyRepo, participantRepo, log)

	job := worker.NewCreateCompanyAndContactAfterSyncJob(
		channelRepo,
		accountRepo,
		flagRepo,
		participantRepo,
		creator,
		log,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dispatcher := worker.NewDispatcher(queueClient, cfg.Worker.MaxRetryCount, worker.NewMetrics(registry), log)
	dispatcher.Register(models.JobCreateCompanyAndContactAfterSync, worker.JSONHandler(job.Handle))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Worker.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting job consumer",
			slog.Int("concurrency", cfg.Worker.Concurrency),
			slog.Int("max_retry_count", cfg.Worker.MaxRetryCount),
		)
		err := queueClient.Consume(gctx, dispatcher.Dispatch, cfg.Worker.Concurrency)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		log.Info("metrics server listening", slog.String("addr", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return metricsServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("worker stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("worker stopped gracefully")
}
