package models

import (
	"time"

	"github.com/google/uuid"
)

// Person represents a CRM contact record
type Person struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID uuid.UUID  `json:"workspace_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	CompanyID   *uuid.UUID `json:"company_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
