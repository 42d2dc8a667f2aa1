package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Job is the envelope carried by the queue
type Job struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Data       json.RawMessage `json:"data"`
	Attempt    int             `json:"attempt"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// NewJob wraps data into a first-attempt job named name
func NewJob(name string, data interface{}) (*Job, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job data: %w", err)
	}

	return &Job{
		ID:         uuid.New(),
		Name:       name,
		Data:       raw,
		EnqueuedAt: time.Now().UTC(),
	}, nil
}

// Retry returns a copy of the job for its next attempt
func (j *Job) Retry() *Job {
	next := *j
	next.Attempt++
	next.EnqueuedAt = time.Now().UTC()
	return &next
}

// Decode unmarshals the job data into v
func (j *Job) Decode(v interface{}) error {
	if err := json.Unmarshal(j.Data, v); err != nil {
		return fmt.Errorf("failed to decode data of job %s: %w", j.Name, err)
	}
	return nil
}

// Publisher enqueues jobs
type Publisher interface {
	Publish(ctx context.Context, job *Job) error
}

// Client defines the interface for queue operations
type Client interface {
	Publisher

	// Consume receives jobs from the queue and processes them with the handler
	// concurrency controls how many jobs can be processed simultaneously
	Consume(ctx context.Context, handler JobHandler, concurrency int) error

	// Close closes the queue connection
	Close() error

	// Health checks if the queue is healthy
	Health(ctx context.Context) error
}

// JobHandler is a function that processes a job
type JobHandler func(ctx context.Context, job *Job) error
