package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
)

// MessageParticipantRepository defines the interface for message participant data access
type MessageParticipantRepository interface {
	// GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberID returns the unlinked
	// participants of every message synced through the channel
	GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberID(ctx context.Context, messageChannelID, workspaceID uuid.UUID) ([]*models.MessageParticipant, error)

	// GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberIDAndMessageOutgoing is the
	// same query restricted to messages sent from the channel
	GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberIDAndMessageOutgoing(ctx context.Context, messageChannelID, workspaceID uuid.UUID) ([]*models.MessageParticipant, error)

	// UpdatePersonIDByHandles links every unlinked participant whose handle is a key
	// of personIDs to the mapped person
	UpdatePersonIDByHandles(ctx context.Context, personIDs map[string]uuid.UUID, workspaceID uuid.UUID) error
}

type messageParticipantRepository struct {
	db *sql.DB
}

// NewMessageParticipantRepository creates a new message participant repository
func NewMessageParticipantRepository(db *sql.DB) MessageParticipantRepository {
	return &messageParticipantRepository{db: db}
}

const selectUnlinkedParticipantsQuery = `
		SELECT DISTINCT mp.id, mp.workspace_id, mp.message_id, mp.role, mp.handle, mp.display_name, mp.person_id, mp.workspace_member_id
		FROM message_participants mp
		JOIN messages m
			ON m.id = mp.message_id AND m.workspace_id = mp.workspace_id
		JOIN message_channel_message_associations a
			ON a.message_id = m.id AND a.workspace_id = m.workspace_id
		WHERE a.message_channel_id = $1
			AND mp.workspace_id = $2
			AND mp.person_id IS NULL
			AND mp.workspace_member_id IS NULL`

// GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberID retrieves participants of incoming and outgoing messages
func (r *messageParticipantRepository) GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberID(ctx context.Context, messageChannelID, workspaceID uuid.UUID) ([]*models.MessageParticipant, error) {
	return r.list(ctx, selectUnlinkedParticipantsQuery, messageChannelID, workspaceID)
}

// GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberIDAndMessageOutgoing retrieves participants of outgoing messages only
func (r *messageParticipantRepository) GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberIDAndMessageOutgoing(ctx context.Context, messageChannelID, workspaceID uuid.UUID) ([]*models.MessageParticipant, error) {
	query := selectUnlinkedParticipantsQuery + `
			AND m.direction = $3`
	return r.list(ctx, query, messageChannelID, workspaceID, models.MessageDirectionOutgoing)
}

func (r *messageParticipantRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.MessageParticipant, error) {
	rows, err := r.db.QueryContext(ctx, query+" ORDER BY mp.id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list message participants: %w", err)
	}
	defer rows.Close()

	participants := []*models.MessageParticipant{}
	for rows.Next() {
		p := &models.MessageParticipant{}
		err := rows.Scan(
			&p.ID,
			&p.WorkspaceID,
			&p.MessageID,
			&p.Role,
			&p.Handle,
			&p.DisplayName,
			&p.PersonID,
			&p.WorkspaceMemberID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message participant: %w", err)
		}
		participants = append(participants, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message participants: %w", err)
	}

	return participants, nil
}

// UpdatePersonIDByHandles links participants to persons in a single transaction.
// Handles are matched case-insensitively.
func (r *messageParticipantRepository) UpdatePersonIDByHandles(ctx context.Context, personIDs map[string]uuid.UUID, workspaceID uuid.UUID) error {
	if len(personIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Rollback is safe to call even after Commit
	}()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE message_participants
		SET person_id = $1
		WHERE workspace_id = $2
			AND lower(handle) = $3
			AND person_id IS NULL
			AND workspace_member_id IS NULL`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for handle, personID := range personIDs {
		if _, err := stmt.ExecContext(ctx, personID, workspaceID, strings.ToLower(handle)); err != nil {
			return fmt.Errorf("failed to link participants of %s: %w", handle, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
