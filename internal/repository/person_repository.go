package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
)

// PersonRepository defines the interface for person data access
type PersonRepository interface {
	GetByEmails(ctx context.Context, emails []string, workspaceID uuid.UUID) ([]*models.Person, error)
	CreateBatch(ctx context.Context, persons []*models.Person) error
}

type personRepository struct {
	db *sql.DB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *sql.DB) PersonRepository {
	return &personRepository{db: db}
}

// GetByEmails retrieves persons of a workspace by email, case-insensitively
func (r *personRepository) GetByEmails(ctx context.Context, emails []string, workspaceID uuid.UUID) ([]*models.Person, error) {
	if len(emails) == 0 {
		return []*models.Person{}, nil
	}

	lowered := make([]string, len(emails))
	for i, e := range emails {
		lowered[i] = strings.ToLower(e)
	}

	query := `
		SELECT id, workspace_id, first_name, last_name, email, company_id, created_at
		FROM persons
		WHERE workspace_id = $1 AND lower(email) = ANY($2)`

	rows, err := r.db.QueryContext(ctx, query, workspaceID, pq.Array(lowered))
	if err != nil {
		return nil, fmt.Errorf("failed to get persons: %w", err)
	}
	defer rows.Close()

	persons := []*models.Person{}
	for rows.Next() {
		p := &models.Person{}
		err := rows.Scan(
			&p.ID,
			&p.WorkspaceID,
			&p.FirstName,
			&p.LastName,
			&p.Email,
			&p.CompanyID,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating persons: %w", err)
	}

	return persons, nil
}

// CreateBatch inserts multiple persons in a single transaction.
// An email already present in the workspace rolls back the batch with an error wrapping models.ErrConflict.
func (r *personRepository) CreateBatch(ctx context.Context, persons []*models.Person) error {
	if len(persons) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO persons (id, workspace_id, first_name, last_name, email, company_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, person := range persons {
		if person.ID == uuid.Nil {
			person.ID = uuid.New()
		}

		err := stmt.QueryRowContext(
			ctx,
			person.ID,
			person.WorkspaceID,
			person.FirstName,
			person.LastName,
			person.Email,
			person.CompanyID,
		).Scan(&person.CreatedAt)

		if isUniqueViolation(err) {
			return models.ErrConflictWithMsg(fmt.Sprintf(
				"person with email %s already exists in workspace %s", person.Email, person.WorkspaceID,
			))
		}
		if err != nil {
			return fmt.Errorf("failed to insert person %s: %w", person.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
