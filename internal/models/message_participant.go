package models

import "github.com/google/uuid"

// Participant roles
const (
	ParticipantRoleFrom = "from"
	ParticipantRoleTo   = "to"
	ParticipantRoleCc   = "cc"
	ParticipantRoleBcc  = "bcc"
)

// Message directions
const (
	MessageDirectionIncoming = "incoming"
	MessageDirectionOutgoing = "outgoing"
)

// MessageParticipant is a sender or recipient extracted from a synced message
type MessageParticipant struct {
	ID                uuid.UUID  `json:"id"`
	WorkspaceID       uuid.UUID  `json:"workspace_id"`
	MessageID         uuid.UUID  `json:"message_id"`
	Role              string     `json:"role"`
	Handle            string     `json:"handle"`
	DisplayName       string     `json:"display_name"`
	PersonID          *uuid.UUID `json:"person_id,omitempty"`
	WorkspaceMemberID *uuid.UUID `json:"workspace_member_id,omitempty"`
}

// IsLinked checks if the participant is already attached to a person or workspace member
func (p *MessageParticipant) IsLinked() bool {
	return p.PersonID != nil || p.WorkspaceMemberID != nil
}
