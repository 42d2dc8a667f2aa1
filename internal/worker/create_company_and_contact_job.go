package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
	"github.com/Raymond9734/messaging-contact-sync/internal/repository"
	"github.com/Raymond9734/messaging-contact-sync/internal/service"
)

// CreateCompanyAndContactAfterSyncJob creates companies and contacts from the
// participants of a message channel once its sync has completed
type CreateCompanyAndContactAfterSyncJob struct {
	channelRepo     repository.MessageChannelRepository
	accountRepo     repository.ConnectedAccountRepository
	flagRepo        repository.FeatureFlagRepository
	participantRepo repository.MessageParticipantRepository
	creator         service.CreateCompanyAndContactService
	logger          *slog.Logger
}

// NewCreateCompanyAndContactAfterSyncJob creates the job handler
func NewCreateCompanyAndContactAfterSyncJob(
	channelRepo repository.MessageChannelRepository,
	accountRepo repository.ConnectedAccountRepository,
	flagRepo repository.FeatureFlagRepository,
	participantRepo repository.MessageParticipantRepository,
	creator service.CreateCompanyAndContactService,
	logger *slog.Logger,
) *CreateCompanyAndContactAfterSyncJob {
	return &CreateCompanyAndContactAfterSyncJob{
		channelRepo:     channelRepo,
		accountRepo:     accountRepo,
		flagRepo:        flagRepo,
		participantRepo: participantRepo,
		creator:         creator,
		logger:          logger,
	}
}

// Handle runs the job for one workspace and message channel.
// A channel with contact auto-creation disabled is a successful no-op.
func (j *CreateCompanyAndContactAfterSyncJob) Handle(ctx context.Context, data *models.SyncFollowupJobData) error {
	if err := data.Validate(); err != nil {
		return err
	}

	workspaceID := data.WorkspaceID
	messageChannelID := data.MessageChannelID

	j.logger.Info("create contacts and companies after sync",
		slog.String("workspace_id", workspaceID.String()),
		slog.String("message_channel_id", messageChannelID.String()),
	)

	channels, err := j.channelRepo.GetByIDs(ctx, []uuid.UUID{messageChannelID}, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to fetch message channel: %w", err)
	}
	if len(channels) == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf(
			"message channel with id %s not found in workspace %s", messageChannelID, workspaceID,
		))
	}
	channel := channels[0]

	if !channel.IsContactAutoCreationEnabled {
		j.logger.Debug("contact auto creation disabled, skipping",
			slog.String("workspace_id", workspaceID.String()),
			slog.String("message_channel_id", messageChannelID.String()),
		)
		return nil
	}

	account, err := j.accountRepo.GetByID(ctx, channel.ConnectedAccountID, workspaceID)
	if errors.Is(err, models.ErrNotFound) || (err == nil && account == nil) {
		return models.ErrNotFoundWithMsg(fmt.Sprintf(
			"connected account with id %s not found in workspace %s", channel.ConnectedAccountID, workspaceID,
		))
	}
	if err != nil {
		return fmt.Errorf("failed to fetch connected account: %w", err)
	}

	sentAndReceived, err := j.isContactCreationForSentAndReceivedEmailsEnabled(ctx, workspaceID)
	if err != nil {
		return err
	}

	var participants []*models.MessageParticipant
	if sentAndReceived {
		participants, err = j.participantRepo.GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberID(ctx, messageChannelID, workspaceID)
	} else {
		participants, err = j.participantRepo.GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberIDAndMessageOutgoing(ctx, messageChannelID, workspaceID)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch message participants: %w", err)
	}

	if err := j.creator.CreateCompaniesAndContactsAndUpdateParticipants(ctx, account, participants, workspaceID); err != nil {
		return fmt.Errorf("failed to create companies and contacts: %w", err)
	}

	j.logger.Info("create contacts and companies after sync done",
		slog.String("workspace_id", workspaceID.String()),
		slog.String("message_channel_id", messageChannelID.String()),
		slog.Int("participants", len(participants)),
		slog.Bool("sent_and_received", sentAndReceived),
	)

	return nil
}

func (j *CreateCompanyAndContactAfterSyncJob) isContactCreationForSentAndReceivedEmailsEnabled(ctx context.Context, workspaceID uuid.UUID) (bool, error) {
	enabled := true
	flag, err := j.flagRepo.FindOneBy(ctx, models.FeatureFlagFilter{
		WorkspaceID: workspaceID,
		Key:         models.FeatureFlagContactCreationForSentAndReceivedEmails,
		Value:       &enabled,
	})
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to fetch feature flag: %w", err)
	}

	return flag.Value, nil
}
