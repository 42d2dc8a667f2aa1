package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
	"github.com/Raymond9734/messaging-contact-sync/internal/queue"
)

// ErrUnknownJob is returned for jobs no handler is registered for
var ErrUnknownJob = errors.New("unknown job")

// ErrPoison marks a job whose payload cannot be decoded
var ErrPoison = errors.New("poison job")

// HandlerFunc processes a decoded job envelope
type HandlerFunc func(ctx context.Context, job *queue.Job) error

// JSONHandler adapts a typed handler, turning payload decode failures into ErrPoison
func JSONHandler[T any](h func(ctx context.Context, data *T) error) HandlerFunc {
	return func(ctx context.Context, job *queue.Job) error {
		var data T
		if err := job.Decode(&data); err != nil {
			return fmt.Errorf("%w: %v", ErrPoison, err)
		}
		return h(ctx, &data)
	}
}

// Dispatcher routes jobs to their handlers and applies the retry policy
type Dispatcher struct {
	handlers    map[string]HandlerFunc
	publisher   queue.Publisher
	maxAttempts int
	metrics     *Metrics
	logger      *slog.Logger
}

// NewDispatcher creates a dispatcher that re-publishes failed jobs through
// publisher until maxAttempts runs have been made
func NewDispatcher(publisher queue.Publisher, maxAttempts int, metrics *Metrics, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers:    make(map[string]HandlerFunc),
		publisher:   publisher,
		maxAttempts: maxAttempts,
		metrics:     metrics,
		logger:      logger,
	}
}

// Register binds a handler to a job name, replacing any previous one
func (d *Dispatcher) Register(name string, h HandlerFunc) {
	d.handlers[name] = h
}

// Dispatch runs the handler registered for job.Name.
// Transient failures are re-published with an incremented attempt; errors wrapping
// models.ErrNotFound, models.ErrInvalid or ErrPoison are never retried.
// The handler error is returned so the queue client can log it.
func (d *Dispatcher) Dispatch(ctx context.Context, job *queue.Job) error {
	h, ok := d.handlers[job.Name]
	if !ok {
		d.metrics.observe(job.Name, OutcomeUnknown, 0)
		d.logger.Error("no handler registered for job",
			slog.String("job_id", job.ID.String()),
			slog.String("job_name", job.Name),
		)
		return fmt.Errorf("%w: %s", ErrUnknownJob, job.Name)
	}

	start := time.Now()
	err := h(ctx, job)
	elapsed := time.Since(start).Seconds()

	if err == nil {
		d.metrics.observe(job.Name, OutcomeSuccess, elapsed)
		return nil
	}

	if models.IsPermanent(err) || errors.Is(err, ErrPoison) {
		d.metrics.observe(job.Name, OutcomePermanent, elapsed)
		d.logger.Error("job failed permanently",
			slog.String("job_id", job.ID.String()),
			slog.String("job_name", job.Name),
			slog.Int("attempt", job.Attempt),
			slog.String("error", err.Error()),
		)
		return err
	}

	if job.Attempt+1 >= d.maxAttempts {
		d.metrics.observe(job.Name, OutcomeFailed, elapsed)
		d.logger.Error("job failed after max attempts",
			slog.String("job_id", job.ID.String()),
			slog.String("job_name", job.Name),
			slog.Int("attempt", job.Attempt),
			slog.Int("max_attempts", d.maxAttempts),
			slog.String("error", err.Error()),
		)
		return err
	}

	// the handler ctx may be cancelled on shutdown; the retry must still be queued
	retryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	next := job.Retry()
	if pubErr := d.publisher.Publish(retryCtx, next); pubErr != nil {
		d.metrics.observe(job.Name, OutcomeFailed, elapsed)
		d.logger.Error("failed to re-queue job",
			slog.String("job_id", job.ID.String()),
			slog.String("job_name", job.Name),
			slog.String("error", pubErr.Error()),
		)
		return errors.Join(err, pubErr)
	}

	d.metrics.observe(job.Name, OutcomeRetried, elapsed)
	d.logger.Warn("job will be retried",
		slog.String("job_id", job.ID.String()),
		slog.String("job_name", job.Name),
		slog.Int("attempt", next.Attempt),
		slog.Int("max_attempts", d.maxAttempts),
		slog.String("error", err.Error()),
	)

	return fmt.Errorf("job failed, retry %d/%d: %w", next.Attempt, d.maxAttempts-1, err)
}
