package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
)

// FeatureFlagRepository defines the interface for feature flag data access
type FeatureFlagRepository interface {
	FindOneBy(ctx context.Context, filter models.FeatureFlagFilter) (*models.FeatureFlag, error)
	Upsert(ctx context.Context, flag *models.FeatureFlag) error
}

type featureFlagRepository struct {
	db *sql.DB
}

// NewFeatureFlagRepository creates a new feature flag repository
func NewFeatureFlagRepository(db *sql.DB) FeatureFlagRepository {
	return &featureFlagRepository{db: db}
}

// FindOneBy retrieves the flag matching filter.
// Returns an error wrapping models.ErrNotFound when nothing matches.
func (r *featureFlagRepository) FindOneBy(ctx context.Context, filter models.FeatureFlagFilter) (*models.FeatureFlag, error) {
	query := `
		SELECT id, workspace_id, key, value
		FROM feature_flags
		WHERE workspace_id = $1 AND key = $2`
	args := []interface{}{filter.WorkspaceID, filter.Key}

	if filter.Value != nil {
		query += " AND value = $3"
		args = append(args, *filter.Value)
	}

	flag := &models.FeatureFlag{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&flag.ID,
		&flag.WorkspaceID,
		&flag.Key,
		&flag.Value,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("feature flag %s not found", filter.Key))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feature flag: %w", err)
	}

	return flag, nil
}

// Upsert creates the flag or updates the value of the existing (workspace, key) row
func (r *featureFlagRepository) Upsert(ctx context.Context, flag *models.FeatureFlag) error {
	if flag.ID == uuid.Nil {
		flag.ID = uuid.New()
	}

	query := `
		INSERT INTO feature_flags (id, workspace_id, key, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (workspace_id, key) DO UPDATE SET value = EXCLUDED.value
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, flag.ID, flag.WorkspaceID, flag.Key, flag.Value).Scan(&flag.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert feature flag: %w", err)
	}

	return nil
}
