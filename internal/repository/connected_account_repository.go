package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
)

// ConnectedAccountRepository defines the interface for connected account data access
type ConnectedAccountRepository interface {
	GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*models.ConnectedAccount, error)
}

type connectedAccountRepository struct {
	db *sql.DB
}

// NewConnectedAccountRepository creates a new connected account repository
func NewConnectedAccountRepository(db *sql.DB) ConnectedAccountRepository {
	return &connectedAccountRepository{db: db}
}

// GetByID retrieves a connected account of a workspace.
// Returns an error wrapping models.ErrNotFound when it does not exist.
func (r *connectedAccountRepository) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*models.ConnectedAccount, error) {
	query := `
		SELECT id, workspace_id, handle, provider, account_owner_id
		FROM connected_accounts
		WHERE id = $1 AND workspace_id = $2`

	account := &models.ConnectedAccount{}
	err := r.db.QueryRowContext(ctx, query, id, workspaceID).Scan(
		&account.ID,
		&account.WorkspaceID,
		&account.Handle,
		&account.Provider,
		&account.AccountOwnerID,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("connected account with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connected account: %w", err)
	}

	return account, nil
}
