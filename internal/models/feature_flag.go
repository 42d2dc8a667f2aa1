package models

import "github.com/google/uuid"

// Feature flag keys
const (
	FeatureFlagContactCreationForSentAndReceivedEmails = "IS_CONTACT_CREATION_FOR_SENT_AND_RECEIVED_EMAILS_ENABLED"
)

// FeatureFlag is a workspace-scoped boolean toggle
type FeatureFlag struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Key         string    `json:"key"`
	Value       bool      `json:"value"`
}

// FeatureFlagFilter selects a single feature flag.
// A nil Value matches the flag regardless of its value.
type FeatureFlagFilter struct {
	WorkspaceID uuid.UUID
	Key         string
	Value       *bool
}

// IsKnownFeatureFlag checks if key names a feature flag this service understands
func IsKnownFeatureFlag(key string) bool {
	switch key {
	case FeatureFlagContactCreationForSentAndReceivedEmails:
		return true
	default:
		return false
	}
}
