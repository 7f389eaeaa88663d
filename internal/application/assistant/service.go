package assistant

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adminhub/backend/internal/domain/assistant"
	"github.com/adminhub/backend/internal/domain/shared"
)

// ConversationListFilter carries pagination options for conversation lists
type ConversationListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ConversationService handles assistant conversations and completions
type ConversationService struct {
	repo     assistant.ConversationRepository
	provider assistant.Provider
	logger   *zap.Logger
}

// NewConversationService creates a new ConversationService
func NewConversationService(
	repo assistant.ConversationRepository,
	provider assistant.Provider,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		repo:     repo,
		provider: provider,
		logger:   logger,
	}
}

// Create starts an empty conversation for the given user
func (s *ConversationService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateConversationRequest) (*ConversationResponse, error) {
	conv, err := assistant.NewConversation(tenantID, userID, req.Title)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, conv); err != nil {
		return nil, err
	}

	response := ToConversationResponse(conv)
	return &response, nil
}

// List returns the caller's conversations, most recent activity first
func (s *ConversationService) List(ctx context.Context, tenantID, userID uuid.UUID, filter ConversationListFilter) (*shared.Paginated[ConversationResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = "last_message_at"
	domainFilter.Filters["user_id"] = userID

	conversations, err := s.repo.FindByUser(ctx, tenantID, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToConversationResponses(conversations), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Get returns a conversation with its full message history
func (s *ConversationService) Get(ctx context.Context, tenantID, userID, id uuid.UUID) (*ConversationDetailResponse, error) {
	conv, err := s.loadOwned(ctx, tenantID, userID, id)
	if err != nil {
		return nil, err
	}

	response := ToConversationDetailResponse(conv)
	return &response, nil
}

// SendMessage appends the user's turn, requests a completion over the full
// history and appends the reply. The version guard claims the turn before the
// provider is called, so a losing concurrent writer conflicts without
// spending a completion.
func (s *ConversationService) SendMessage(ctx context.Context, tenantID, userID, id uuid.UUID, req SendMessageRequest) (*SendMessageResponse, error) {
	conv, err := s.loadOwned(ctx, tenantID, userID, id)
	if err != nil {
		return nil, err
	}
	if err := conv.CheckVersion(req.Version); err != nil {
		return nil, err
	}

	userMsg, err := conv.AppendMessage(assistant.RoleUser, req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateWithVersion(ctx, conv); err != nil {
		return nil, err
	}
	if err := s.repo.AppendMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	reply, err := s.provider.Complete(ctx, conv.Messages)
	if err != nil {
		s.logger.Error("Assistant completion failed",
			zap.String("conversation_id", conv.ID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("ASSISTANT_UNAVAILABLE", "The assistant could not produce a reply")
	}

	assistantMsg, err := conv.AppendMessage(assistant.RoleAssistant, reply)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AppendMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}

	return &SendMessageResponse{
		Conversation: ToConversationResponse(conv),
		UserMessage:  ToMessageResponse(userMsg),
		Reply:        ToMessageResponse(assistantMsg),
	}, nil
}

// Rename changes the conversation title under the version guard
func (s *ConversationService) Rename(ctx context.Context, tenantID, userID, id uuid.UUID, req RenameConversationRequest) (*ConversationResponse, error) {
	conv, err := s.loadOwned(ctx, tenantID, userID, id)
	if err != nil {
		return nil, err
	}
	if err := conv.CheckVersion(req.Version); err != nil {
		return nil, err
	}
	if err := conv.Rename(req.Title); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateWithVersion(ctx, conv); err != nil {
		return nil, err
	}

	response := ToConversationResponse(conv)
	return &response, nil
}

// Delete soft-deletes a conversation
func (s *ConversationService) Delete(ctx context.Context, tenantID, userID, id uuid.UUID, version int) error {
	conv, err := s.repo.FindByIDIncludingDeleted(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !conv.BelongsTo(userID) {
		return shared.ErrNotFound
	}
	if err := conv.CheckVersion(version); err != nil {
		return err
	}
	if err := conv.SoftDelete(); err != nil {
		return err
	}

	return s.repo.UpdateWithVersion(ctx, conv)
}

// loadOwned fetches a live conversation and hides other users' threads
// behind NOT_FOUND.
func (s *ConversationService) loadOwned(ctx context.Context, tenantID, userID, id uuid.UUID) (*assistant.Conversation, error) {
	conv, err := s.repo.FindWithMessages(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !conv.BelongsTo(userID) {
		return nil, shared.ErrNotFound
	}
	return conv, nil
}
