package worker

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
	"github.com/Raymond9734/messaging-contact-sync/internal/queue"
)

type MockMessageChannelRepository struct {
	mock.Mock
}

func (m *MockMessageChannelRepository) GetByIDs(ctx context.Context, ids []uuid.UUID, workspaceID uuid.UUID) ([]*models.MessageChannel, error) {
	args := m.Called(ctx, ids, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MessageChannel), args.Error(1)
}

type MockConnectedAccountRepository struct {
	mock.Mock
}

func (m *MockConnectedAccountRepository) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*models.ConnectedAccount, error) {
	args := m.Called(ctx, id, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectedAccount), args.Error(1)
}

type MockFeatureFlagRepository struct {
	mock.Mock
}

func (m *MockFeatureFlagRepository) FindOneBy(ctx context.Context, filter models.FeatureFlagFilter) (*models.FeatureFlag, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeatureFlag), args.Error(1)
}

func (m *MockFeatureFlagRepository) Upsert(ctx context.Context, flag *models.FeatureFlag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

type MockMessageParticipantRepository struct {
	mock.Mock
}

func (m *MockMessageParticipantRepository) GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberID(ctx context.Context, messageChannelID, workspaceID uuid.UUID) ([]*models.MessageParticipant, error) {
	args := m.Called(ctx, messageChannelID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MessageParticipant), args.Error(1)
}

func (m *MockMessageParticipantRepository) GetByMessageChannelIDWithoutPersonIDAndWorkspaceMemberIDAndMessageOutgoing(ctx context.Context, messageChannelID, workspaceID uuid.UUID) ([]*models.MessageParticipant, error) {
	args := m.Called(ctx, messageChannelID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MessageParticipant), args.Error(1)
}

func (m *MockMessageParticipantRepository) UpdatePersonIDByHandles(ctx context.Context, personIDs map[string]uuid.UUID, workspaceID uuid.UUID) error {
	args := m.Called(ctx, personIDs, workspaceID)
	return args.Error(0)
}

type MockCreateCompanyAndContactService struct {
	mock.Mock
}

func (m *MockCreateCompanyAndContactService) CreateCompaniesAndContactsAndUpdateParticipants(ctx context.Context, account *models.ConnectedAccount, participants []*models.MessageParticipant, workspaceID uuid.UUID) error {
	args := m.Called(ctx, account, participants, workspaceID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, job *queue.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
