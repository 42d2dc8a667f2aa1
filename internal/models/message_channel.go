package models

import "github.com/google/uuid"

// MessageChannel is a synchronized mailbox belonging to a connected account
type MessageChannel struct {
	ID                           uuid.UUID `json:"id"`
	WorkspaceID                  uuid.UUID `json:"workspace_id"`
	ConnectedAccountID           uuid.UUID `json:"connected_account_id"`
	Handle                       string    `json:"handle"`
	IsContactAutoCreationEnabled bool      `json:"is_contact_auto_creation_enabled"`
}
