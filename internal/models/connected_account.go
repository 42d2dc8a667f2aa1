package models

import "github.com/google/uuid"

// Connected account providers
const (
	ProviderGoogle    = "google"
	ProviderMicrosoft = "microsoft"
)

// ConnectedAccount is an external mailbox linked to a workspace member
type ConnectedAccount struct {
	ID             uuid.UUID `json:"id"`
	WorkspaceID    uuid.UUID `json:"workspace_id"`
	Handle         string    `json:"handle"`
	Provider       string    `json:"provider"`
	AccountOwnerID uuid.UUID `json:"account_owner_id"`
}
