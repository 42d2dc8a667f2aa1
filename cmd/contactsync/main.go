package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Raymond9734/messaging-contact-sync/internal/config"
	"github.com/Raymond9734/messaging-contact-sync/internal/db"
	"github.com/Raymond9734/messaging-contact-sync/internal/logger"
	"github.com/Raymond9734/messaging-contact-sync/internal/queue"
	"github.com/Raymond9734/messaging-contact-sync/internal/repository"
	"github.com/Raymond9734/messaging-contact-sync/internal/service"
)

// backend opens the services a command needs; the returned func releases them
type backend struct {
	syncService func(ctx context.Context) (service.SyncService, func(), error)
	flagService func(ctx context.Context) (service.FeatureFlagService, func(), error)
}

func main() {
	if err := newRootCmd(liveBackend()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(b *backend) *cobra.Command {
	root := &cobra.Command{
		Use:          "contactsync",
		Short:        "Operate the messaging contact sync worker",
		SilenceUsage: true,
	}

	root.AddCommand(enqueueCmd(b))
	root.AddCommand(flagCmd(b))

	return root
}

// liveBackend connects to the database and queue named by the environment
func liveBackend() *backend {
	load := func() (*config.Config, *slog.Logger, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		return cfg, logger.NewWithWriter(os.Stderr, cfg.LogLevel), nil
	}

	return &backend{
		syncService: func(ctx context.Context) (service.SyncService, func(), error) {
			cfg, log, err := load()
			if err != nil {
				return nil, nil, err
			}
			client, err := queue.New(ctx, queue.Options{
				Driver:      cfg.Queue.Driver,
				RedisURL:    cfg.Queue.RedisURL,
				RabbitMQURL: cfg.Queue.RabbitMQURL,
				QueueName:   cfg.Queue.QueueName,
			}, log)
			if err != nil {
				return nil, nil, err
			}
			return service.NewSyncService(client, log), func() { client.Close() }, nil
		},
		flagService: func(ctx context.Context) (service.FeatureFlagService, func(), error) {
			cfg, log, err := load()
			if err != nil {
				return nil, nil, err
			}
			database, err := db.New(ctx, cfg.Database.DSN(), db.PoolConfig{MaxOpenConns: 2, MaxIdleConns: 1})
			if err != nil {
				return nil, nil, err
			}
			flagRepo := repository.NewFeatureFlagRepository(database.DB)
			return service.NewFeatureFlagService(flagRepo, log), func() { database.Close() }, nil
		},
	}
}
