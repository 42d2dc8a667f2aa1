package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// rabbitMQClient implements Client on top of a durable RabbitMQ queue
// reached through the default exchange
type rabbitMQClient struct {
	conn      *amqp.Connection
	pubMu     sync.Mutex
	pubCh     *amqp.Channel
	queueName string
	logger    *slog.Logger
}

// RabbitMQConfig holds RabbitMQ configuration
type RabbitMQConfig struct {
	URL       string
	QueueName string
}

// NewRabbitMQClient connects to RabbitMQ and declares the job queue
func NewRabbitMQClient(ctx context.Context, cfg RabbitMQConfig, logger *slog.Logger) (Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq URL is required")
	}

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
		Dial: amqp.DefaultDial(time.Until(deadline)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareJobQueue(ch, cfg.QueueName); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	host := ""
	if u, err := url.Parse(cfg.URL); err == nil {
		host = u.Host
	}
	logger.Info("connected to RabbitMQ",
		slog.String("host", host),
		slog.String("queue", cfg.QueueName),
	)

	return &rabbitMQClient{
		conn:      conn,
		pubCh:     ch,
		queueName: cfg.QueueName,
		logger:    logger,
	}, nil
}

func declareJobQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		return q, fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return q, nil
}

// Publish sends a persistent job message to the queue
func (c *rabbitMQClient) Publish(ctx context.Context, job *Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	err = c.pubCh.PublishWithContext(ctx, "", c.queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.ID.String(),
		Type:         job.Name,
		Timestamp:    job.EnqueuedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}

	c.logger.Debug("job published to queue",
		slog.String("job_id", job.ID.String()),
		slog.String("job_name", job.Name),
		slog.Int("attempt", job.Attempt),
	)

	return nil
}

// Consume runs concurrency workers over the queue deliveries until ctx is done.
// Deliveries are acked after a successful handler run and nacked without
// requeue otherwise; redelivery is the handler's responsibility.
func (c *rabbitMQClient) Consume(ctx context.Context, handler JobHandler, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open consumer channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(concurrency, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.Info("starting queue consumer",
		slog.String("queue", c.queueName),
		slog.Int("concurrency", concurrency),
	)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range deliveries {
				c.handleDelivery(ctx, d, handler)
			}
		}()
	}

	closed := ch.NotifyClose(make(chan *amqp.Error, 1))

	select {
	case <-ctx.Done():
		c.logger.Info("consumer stopped by context, waiting for in-flight jobs to complete")
		wg.Wait()
		c.logger.Info("all in-flight jobs completed")
		return ctx.Err()
	case amqpErr, ok := <-closed:
		wg.Wait()
		if !ok || amqpErr == nil {
			return errors.New("rabbitmq consumer channel closed")
		}
		return fmt.Errorf("rabbitmq consumer channel closed: %w", amqpErr)
	}
}

func (c *rabbitMQClient) handleDelivery(ctx context.Context, d amqp.Delivery, handler JobHandler) {
	var job Job
	if err := json.Unmarshal(d.Body, &job); err != nil {
		c.logger.Error("failed to unmarshal job",
			slog.String("error", err.Error()),
			slog.String("data", string(d.Body)),
		)
		_ = d.Nack(false, false)
		return
	}

	if err := handler(ctx, &job); err != nil {
		c.logger.Error("handler failed to process job",
			slog.String("job_id", job.ID.String()),
			slog.String("job_name", job.Name),
			slog.String("error", err.Error()),
		)
		_ = d.Nack(false, false)
		return
	}

	_ = d.Ack(false)
}

// Close closes the RabbitMQ channel and connection
func (c *rabbitMQClient) Close() error {
	c.logger.Info("closing RabbitMQ connection")
	c.pubMu.Lock()
	_ = c.pubCh.Close()
	c.pubMu.Unlock()
	return c.conn.Close()
}

// Health checks that the connection and publishing channel are open
func (c *rabbitMQClient) Health(ctx context.Context) error {
	if c.conn.IsClosed() {
		return errors.New("rabbitmq health check failed: connection closed")
	}

	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	if c.pubCh.IsClosed() {
		return errors.New("rabbitmq health check failed: channel closed")
	}
	return nil
}
