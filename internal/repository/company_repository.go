package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
)

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	GetByDomainNames(ctx context.Context, domainNames []string, workspaceID uuid.UUID) ([]*models.Company, error)
	Create(ctx context.Context, company *models.Company) error
}

type companyRepository struct {
	db *sql.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// GetByDomainNames retrieves the companies of a workspace owning any of domainNames
func (r *companyRepository) GetByDomainNames(ctx context.Context, domainNames []string, workspaceID uuid.UUID) ([]*models.Company, error) {
	if len(domainNames) == 0 {
		return []*models.Company{}, nil
	}

	query := `
		SELECT id, workspace_id, name, domain_name, created_at
		FROM companies
		WHERE workspace_id = $1 AND domain_name = ANY($2)`

	rows, err := r.db.QueryContext(ctx, query, workspaceID, pq.Array(domainNames))
	if err != nil {
		return nil, fmt.Errorf("failed to get companies: %w", err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		c := &models.Company{}
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.DomainName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	return companies, nil
}

// Create inserts a new company.
// A duplicate domain in the workspace returns an error wrapping models.ErrConflict.
func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}

	query := `
		INSERT INTO companies (id, workspace_id, name, domain_name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		company.ID,
		company.WorkspaceID,
		company.Name,
		company.DomainName,
	).Scan(&company.CreatedAt)

	if isUniqueViolation(err) {
		return models.ErrConflictWithMsg(fmt.Sprintf(
			"company with domain %s already exists in workspace %s", company.DomainName, company.WorkspaceID,
		))
	}
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}
