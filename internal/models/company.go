package models

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a CRM company record
type Company struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	DomainName  string    `json:"domain_name"`
	CreatedAt   time.Time `json:"created_at"`
}
