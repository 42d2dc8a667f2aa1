package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
	"github.com/Raymond9734/messaging-contact-sync/internal/queue"
)

type fakePersonRepo struct {
	persons   []*models.Person
	createErr error
	created   int
}

func (f *fakePersonRepo) GetByEmails(ctx context.Context, emails []string, workspaceID uuid.UUID) ([]*models.Person, error) {
	out := []*models.Person{}
	for _, p := range f.persons {
		if p.WorkspaceID != workspaceID {
			continue
		}
		for _, e := range emails {
			if strings.EqualFold(p.Email, e) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakePersonRepo) CreateBatch(ctx context.Context, persons []*models.Person) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.persons = append(f.persons, persons...)
	f.created += len(persons)
	return nil
}

func (f *fakePersonRepo) byEmail(email string) *models.Person {
	for _, p := range f.persons {
		if strings.EqualFold(p.Email, email) {
			return p
		}
	}
	return nil
}

type fakeCompanyRepo struct {
	companies []*models.Company
	// racing is inserted just before the next Create, as if by another worker
	racing *models.Company
}

func (f *fakeCompanyRepo) GetByDomainNames(ctx context.Context, domainNames []string, workspaceID uuid.UUID) ([]*models.Company, error) {
	out := []*models.Company{}
	for _, c := range f.companies {
		for _, d := range domainNames {
			if c.WorkspaceID == workspaceID && c.DomainName == d {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (f *fakeCompanyRepo) Create(ctx context.Context, company *models.Company) error {
	if f.racing != nil {
		f.companies = append(f.companies, f.racing)
		f.racing = nil
	}
	for _, c := range f.companies {
		if c.WorkspaceID == company.WorkspaceID && c.DomainName == company.DomainName {
			return models.ErrConflictWithMsg("company exists")
		}
	}
	f.companies = append(f.companies, company)
	return nil
}

type fakeParticipantRepo struct {
	links map[string]uuid.UUID
	calls int
}

func (f *fakeParticipantRepo) GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberID(ctx context.Context, messageChannelID, workspaceID uuid.UUID) ([]*models.MessageParticipant, error) {
	return nil, errors.New("not used")
}

func (f *fakeParticipantRepo) GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberIDAndMessageOutgoing(ctx context.Context, messageChannelID, workspaceID uuid.UUID) ([]*models.MessageParticipant, error) {
	return nil, errors.New("not used")
}

func (f *fakeParticipantRepo) UpdatePersonIDByHandles(ctx context.Context, personIDs map[string]uuid.UUID, workspaceID uuid.UUID) error {
	f.calls++
	if f.links == nil {
		f.links = map[string]uuid.UUID{}
	}
	for h, id := range personIDs {
		f.links[h] = id
	}
	return nil
}

type fakeFlagRepo struct {
	flags     map[string]*models.FeatureFlag
	upsertErr error
}

func flagKey(ws uuid.UUID, key string) string {
	return ws.String() + "/" + key
}

func (f *fakeFlagRepo) FindOneBy(ctx context.Context, filter models.FeatureFlagFilter) (*models.FeatureFlag, error) {
	flag, ok := f.flags[flagKey(filter.WorkspaceID, filter.Key)]
	if !ok || (filter.Value != nil && flag.Value != *filter.Value) {
		return nil, models.ErrNotFoundWithMsg("feature flag not found")
	}
	return flag, nil
}

func (f *fakeFlagRepo) Upsert(ctx context.Context, flag *models.FeatureFlag) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.flags == nil {
		f.flags = map[string]*models.FeatureFlag{}
	}
	f.flags[flagKey(flag.WorkspaceID, flag.Key)] = flag
	return nil
}

type fakePublisher struct {
	jobs []*queue.Job
	err  error
}

func (f *fakePublisher) Publish(ctx context.Context, job *queue.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}
