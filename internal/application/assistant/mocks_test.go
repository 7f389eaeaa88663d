package assistant

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/adminhub/backend/internal/domain/assistant"
	"github.com/adminhub/backend/internal/domain/shared"
)

// MockConversationRepository is a mock implementation of ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*assistant.Conversation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindByIDIncludingDeleted(ctx context.Context, tenantID, id uuid.UUID) (*assistant.Conversation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]assistant.Conversation, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]assistant.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConversationRepository) Create(ctx context.Context, conv *assistant.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversationRepository) UpdateWithVersion(ctx context.Context, conv *assistant.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversationRepository) HardDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockConversationRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) ([]assistant.Conversation, error) {
	args := m.Called(ctx, tenantID, userID, filter)
	return args.Get(0).([]assistant.Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindWithMessages(ctx context.Context, tenantID, id uuid.UUID) (*assistant.Conversation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.Conversation), args.Error(1)
}

func (m *MockConversationRepository) AppendMessage(ctx context.Context, msg *assistant.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockProvider is a mock implementation of the completion provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Complete(ctx context.Context, history []assistant.Message) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}
