package models

import "github.com/google/uuid"

// Job names
const (
	JobCreateCompanyAndContactAfterSync = "messaging-create-company-and-contact-after-sync"
)

// SyncFollowupJobData is the payload of the job that runs after a message channel sync
type SyncFollowupJobData struct {
	WorkspaceID      uuid.UUID `json:"workspace_id"`
	MessageChannelID uuid.UUID `json:"message_channel_id"`
}

// Validate performs validation on the job payload
func (d *SyncFollowupJobData) Validate() error {
	if d.WorkspaceID == uuid.Nil {
		return ErrInvalidInput("workspace_id is required")
	}
	if d.MessageChannelID == uuid.Nil {
		return ErrInvalidInput("message_channel_id is required")
	}
	return nil
}
