package queue

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_UnknownDriver(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := New(context.Background(), Options{Driver: "kafka", QueueName: "jobs"}, logger)

	assert.Nil(t, client)
	assert.ErrorContains(t, err, "unknown queue driver")
}

func TestNewRabbitMQClient_RequiresURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewRabbitMQClient(context.Background(), RabbitMQConfig{QueueName: "jobs"}, logger)

	assert.Error(t, err)
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewRedisClient(context.Background(), RedisConfig{URL: "not-a-url", QueueName: "jobs"}, logger)

	assert.ErrorContains(t, err, "failed to parse Redis URL")
}
