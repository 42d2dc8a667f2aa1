package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
	"github.com/Raymond9734/messaging-contact-sync/internal/repository"
)

// CreateCompanyAndContactService turns unlinked message participants into CRM
// companies and persons and links the participants to them
type CreateCompanyAndContactService interface {
	CreateCompaniesAndContactsAndUpdateParticipants(
		ctx context.Context,
		connectedAccount *models.ConnectedAccount,
		participants []*models.MessageParticipant,
		workspaceID uuid.UUID,
	) error
}

type createCompanyAndContactService struct {
	personRepo      repository.PersonRepository
	companyRepo     repository.CompanyRepository
	participantRepo repository.MessageParticipantRepository
	logger          *slog.Logger
}

// NewCreateCompanyAndContactService creates a service matching participants to
// persons by exact, case-insensitive email
func NewCreateCompanyAndContactService(
	personRepo repository.PersonRepository,
	companyRepo repository.CompanyRepository,
	participantRepo repository.MessageParticipantRepository,
	logger *slog.Logger,
) CreateCompanyAndContactService {
	return &createCompanyAndContactService{
		personRepo:      personRepo,
		companyRepo:     companyRepo,
		participantRepo: participantRepo,
		logger:          logger,
	}
}

// contactCandidate is one distinct email address seen among the participants
type contactCandidate struct {
	email       string
	displayName string
}

// CreateCompaniesAndContactsAndUpdateParticipants creates the missing persons (and
// their companies) for participants and links every participant to its person
func (s *createCompanyAndContactService) CreateCompaniesAndContactsAndUpdateParticipants(
	ctx context.Context,
	connectedAccount *models.ConnectedAccount,
	participants []*models.MessageParticipant,
	workspaceID uuid.UUID,
) error {
	if connectedAccount == nil {
		return models.ErrInvalidInput("connected account cannot be nil")
	}

	candidates := s.collectCandidates(connectedAccount, participants)
	if len(candidates) == 0 {
		return nil
	}

	emails := make([]string, len(candidates))
	for i, c := range candidates {
		emails[i] = c.email
	}

	existing, err := s.personRepo.GetByEmails(ctx, emails, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to fetch existing persons: %w", err)
	}

	personIDs := make(map[string]uuid.UUID, len(candidates))
	for _, p := range existing {
		personIDs[normalizeHandle(p.Email)] = p.ID
	}

	toCreate := make([]contactCandidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := personIDs[c.email]; !ok {
			toCreate = append(toCreate, c)
		}
	}

	companyIDs, err := s.ensureCompanies(ctx, toCreate, workspaceID)
	if err != nil {
		return err
	}

	persons := make([]*models.Person, 0, len(toCreate))
	for _, c := range toCreate {
		firstName, lastName := namesFromParticipant(c.displayName, c.email)
		person := &models.Person{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			FirstName:   firstName,
			LastName:    lastName,
			Email:       c.email,
		}
		if companyID, ok := companyIDs[domainFromEmail(c.email)]; ok {
			id := companyID
			person.CompanyID = &id
		}
		persons = append(persons, person)
	}

	if err := s.personRepo.CreateBatch(ctx, persons); err != nil {
		s.logger.Error("failed to create persons",
			slog.String("workspace_id", workspaceID.String()),
			slog.Int("count", len(persons)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create persons: %w", err)
	}

	for _, p := range persons {
		personIDs[p.Email] = p.ID
	}

	if err := s.participantRepo.UpdatePersonIDByHandles(ctx, personIDs, workspaceID); err != nil {
		return fmt.Errorf("failed to update message participants: %w", err)
	}

	s.logger.Info("companies and contacts created",
		slog.String("workspace_id", workspaceID.String()),
		slog.String("connected_account_id", connectedAccount.ID.String()),
		slog.Int("participants", len(participants)),
		slog.Int("persons_created", len(persons)),
		slog.Int("persons_linked", len(personIDs)),
	)

	return nil
}

// collectCandidates dedups participants by email, dropping non-email handles and
// the connected account's own address. Order of first appearance is kept.
func (s *createCompanyAndContactService) collectCandidates(
	connectedAccount *models.ConnectedAccount,
	participants []*models.MessageParticipant,
) []contactCandidate {
	self := normalizeHandle(connectedAccount.Handle)

	index := make(map[string]int, len(participants))
	candidates := make([]contactCandidate, 0, len(participants))

	for _, p := range participants {
		if p == nil || p.IsLinked() {
			continue
		}

		email := normalizeHandle(p.Handle)
		if email == "" || email == self || !isEmail(email) {
			continue
		}

		if i, seen := index[email]; seen {
			if candidates[i].displayName == "" {
				candidates[i].displayName = strings.TrimSpace(p.DisplayName)
			}
			continue
		}

		index[email] = len(candidates)
		candidates = append(candidates, contactCandidate{
			email:       email,
			displayName: strings.TrimSpace(p.DisplayName),
		})
	}

	return candidates
}

// ensureCompanies returns the company id for every work domain among candidates,
// creating the companies that do not exist yet
func (s *createCompanyAndContactService) ensureCompanies(
	ctx context.Context,
	candidates []contactCandidate,
	workspaceID uuid.UUID,
) (map[string]uuid.UUID, error) {
	domains := []string{}
	seen := map[string]bool{}
	for _, c := range candidates {
		domain := domainFromEmail(c.email)
		if !isWorkDomain(domain) || seen[domain] {
			continue
		}
		seen[domain] = true
		domains = append(domains, domain)
	}

	companyIDs := make(map[string]uuid.UUID, len(domains))
	if len(domains) == 0 {
		return companyIDs, nil
	}

	existing, err := s.companyRepo.GetByDomainNames(ctx, domains, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing companies: %w", err)
	}
	for _, c := range existing {
		companyIDs[c.DomainName] = c.ID
	}

	for _, domain := range domains {
		if _, ok := companyIDs[domain]; ok {
			continue
		}

		company := &models.Company{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			Name:        companyNameFromDomain(domain),
			DomainName:  domain,
		}
		err := s.companyRepo.Create(ctx, company)
		if errors.Is(err, models.ErrConflict) {
			// created by a concurrent job since the lookup above
			id, found, lookupErr := s.companyIDByDomain(ctx, domain, workspaceID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if found {
				companyIDs[domain] = id
				continue
			}
		}
		if err != nil {
			s.logger.Error("failed to create company",
				slog.String("workspace_id", workspaceID.String()),
				slog.String("domain_name", domain),
				slog.String("error", err.Error()),
			)
			return nil, fmt.Errorf("failed to create company: %w", err)
		}
		companyIDs[domain] = company.ID
	}

	return companyIDs, nil
}

func (s *createCompanyAndContactService) companyIDByDomain(ctx context.Context, domain string, workspaceID uuid.UUID) (uuid.UUID, bool, error) {
	companies, err := s.companyRepo.GetByDomainNames(ctx, []string{domain}, workspaceID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to fetch company %s: %w", domain, err)
	}
	if len(companies) == 0 {
		return uuid.Nil, false, nil
	}
	return companies[0].ID, true, nil
}
