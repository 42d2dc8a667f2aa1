package queue

import (
	"context"
	"fmt"
	"log/slog"
)

// Supported drivers
const (
	DriverRedis    = "redis"
	DriverRabbitMQ = "rabbitmq"
)

// Options selects and configures a queue backend
type Options struct {
	Driver      string
	RedisURL    string
	RabbitMQURL string
	QueueName   string
}

// New connects to the backend named by opts.Driver
func New(ctx context.Context, opts Options, logger *slog.Logger) (Client, error) {
	switch opts.Driver {
	case DriverRedis:
		return NewRedisClient(ctx, RedisConfig{URL: opts.RedisURL, QueueName: opts.QueueName}, logger)
	case DriverRabbitMQ:
		return NewRabbitMQClient(ctx, RabbitMQConfig{URL: opts.RabbitMQURL, QueueName: opts.QueueName}, logger)
	default:
		return nil, fmt.Errorf("unknown queue driver: %q", opts.Driver)
	}
}
