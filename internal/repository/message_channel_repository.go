package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
)

// MessageChannelRepository defines the interface for message channel data access
type MessageChannelRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID, workspaceID uuid.UUID) ([]*models.MessageChannel, error)
}

// messageChannelRepository implements MessageChannelRepository using PostgreSQL
type messageChannelRepository struct {
	db *sql.DB
}

// NewMessageChannelRepository creates a new message channel repository
func NewMessageChannelRepository(db *sql.DB) MessageChannelRepository {
	return &messageChannelRepository{db: db}
}

// GetByIDs retrieves the channels of a workspace matching ids.
// Unknown ids are skipped, so the result may be shorter than ids.
func (r *messageChannelRepository) GetByIDs(ctx context.Context, ids []uuid.UUID, workspaceID uuid.UUID) ([]*models.MessageChannel, error) {
	if len(ids) == 0 {
		return []*models.MessageChannel{}, nil
	}

	query := `
		SELECT id, workspace_id, connected_account_id, handle, is_contact_auto_creation_enabled
		FROM message_channels
		WHERE id = ANY($1) AND workspace_id = $2`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(uuidStrings(ids)), workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get message channels: %w", err)
	}
	defer rows.Close()

	channels := []*models.MessageChannel{}
	for rows.Next() {
		channel := &models.MessageChannel{}
		err := rows.Scan(
			&channel.ID,
			&channel.WorkspaceID,
			&channel.ConnectedAccountID,
			&channel.Handle,
			&channel.IsContactAutoCreationEnabled,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message channel: %w", err)
		}
		channels = append(channels, channel)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message channels: %w", err)
	}

	return channels, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
