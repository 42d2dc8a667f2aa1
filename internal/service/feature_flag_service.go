package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
	"github.com/Raymond9734/messaging-contact-sync/internal/repository"
)

// FeatureFlagService handles workspace feature flags
type FeatureFlagService interface {
	Get(ctx context.Context, req *FeatureFlagRequest) (*FeatureFlagResult, error)
	Set(ctx context.Context, req *SetFeatureFlagRequest) (*FeatureFlagResult, error)
}

type featureFlagService struct {
	flagRepo repository.FeatureFlagRepository
	logger   *slog.Logger
}

// NewFeatureFlagService creates a new feature flag service
func NewFeatureFlagService(flagRepo repository.FeatureFlagRepository, logger *slog.Logger) FeatureFlagService {
	return &featureFlagService{
		flagRepo: flagRepo,
		logger:   logger,
	}
}

// Get returns the flag value; a flag that was never set is false
func (s *featureFlagService) Get(ctx context.Context, req *FeatureFlagRequest) (*FeatureFlagResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &FeatureFlagResult{WorkspaceID: req.WorkspaceID, Key: req.Key}

	flag, err := s.flagRepo.FindOneBy(ctx, models.FeatureFlagFilter{
		WorkspaceID: uuid.MustParse(req.WorkspaceID),
		Key:         req.Key,
	})
	if errors.Is(err, models.ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feature flag: %w", err)
	}

	result.Value = flag.Value
	return result, nil
}

// Set creates or updates the flag
func (s *featureFlagService) Set(ctx context.Context, req *SetFeatureFlagRequest) (*FeatureFlagResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	flag := &models.FeatureFlag{
		WorkspaceID: uuid.MustParse(req.WorkspaceID),
		Key:         req.Key,
		Value:       *req.Value,
	}

	if err := s.flagRepo.Upsert(ctx, flag); err != nil {
		s.logger.Error("failed to set feature flag",
			slog.String("workspace_id", req.WorkspaceID),
			slog.String("key", req.Key),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to set feature flag: %w", err)
	}

	s.logger.Info("feature flag set",
		slog.String("workspace_id", req.WorkspaceID),
		slog.String("key", req.Key),
		slog.Bool("value", flag.Value),
	)

	return &FeatureFlagResult{
		WorkspaceID: req.WorkspaceID,
		Key:         flag.Key,
		Value:       flag.Value,
	}, nil
}
