package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct tags of v and converts failures to INVALID_INPUT errors
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return models.ErrInvalidInput(err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "uuid":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid UUID", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return models.ErrInvalidInput(strings.Join(msgs, "; "))
}

// SyncCompletedRequest reports that a message channel finished syncing
type SyncCompletedRequest struct {
	WorkspaceID      string `json:"workspace_id" validate:"required,uuid"`
	MessageChannelID string `json:"message_channel_id" validate:"required,uuid"`
}

// Validate performs validation on the sync completed request
func (r *SyncCompletedRequest) Validate() error {
	return validateStruct(r)
}

// JobData converts the request into the follow-up job payload
func (r *SyncCompletedRequest) JobData() (*models.SyncFollowupJobData, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &models.SyncFollowupJobData{
		WorkspaceID:      uuid.MustParse(r.WorkspaceID),
		MessageChannelID: uuid.MustParse(r.MessageChannelID),
	}, nil
}

// EnqueueResult represents a job accepted by the queue
type EnqueueResult struct {
	JobID   string `json:"job_id"`
	JobName string `json:"job_name"`
	Status  string `json:"status"`
}

// FeatureFlagRequest identifies a feature flag of a workspace
type FeatureFlagRequest struct {
	WorkspaceID string `json:"workspace_id" validate:"required,uuid"`
	Key         string `json:"key" validate:"required"`
}

// Validate performs validation on the feature flag request
func (r *FeatureFlagRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if !models.IsKnownFeatureFlag(r.Key) {
		return models.ErrInvalidInput(fmt.Sprintf("unknown feature flag: %s", r.Key))
	}
	return nil
}

// SetFeatureFlagRequest sets the value of a feature flag
type SetFeatureFlagRequest struct {
	FeatureFlagRequest
	Value *bool `json:"value" validate:"required"`
}

// Validate performs validation on the set feature flag request
func (r *SetFeatureFlagRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	return r.FeatureFlagRequest.Validate()
}

// FeatureFlagResult represents the current value of a feature flag
type FeatureFlagResult struct {
	WorkspaceID string `json:"workspace_id"`
	Key         string `json:"key"`
	Value       bool   `json:"value"`
}
