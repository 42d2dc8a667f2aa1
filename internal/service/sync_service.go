package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
	"github.com/Raymond9734/messaging-contact-sync/internal/queue"
)

// SyncService schedules the work that follows a message channel sync
type SyncService interface {
	HandleSyncCompleted(ctx context.Context, req *SyncCompletedRequest) (*EnqueueResult, error)
}

type syncService struct {
	publisher queue.Publisher
	logger    *slog.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(publisher queue.Publisher, logger *slog.Logger) SyncService {
	return &syncService{
		publisher: publisher,
		logger:    logger,
	}
}

// HandleSyncCompleted enqueues the company and contact creation job for the channel
func (s *syncService) HandleSyncCompleted(ctx context.Context, req *SyncCompletedRequest) (*EnqueueResult, error) {
	data, err := req.JobData()
	if err != nil {
		return nil, err
	}

	job, err := queue.NewJob(models.JobCreateCompanyAndContactAfterSync, data)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, job); err != nil {
		s.logger.Error("failed to queue sync follow-up job",
			slog.String("workspace_id", req.WorkspaceID),
			slog.String("message_channel_id", req.MessageChannelID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to queue job: %w", err)
	}

	s.logger.Info("sync follow-up job queued",
		slog.String("job_id", job.ID.String()),
		slog.String("workspace_id", req.WorkspaceID),
		slog.String("message_channel_id", req.MessageChannelID),
	)

	return &EnqueueResult{
		JobID:   job.ID.String(),
		JobName: job.Name,
		Status:  "queued",
	}, nil
}
