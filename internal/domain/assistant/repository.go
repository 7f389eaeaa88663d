package assistant

import (
	"context"

	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ConversationRepository defines the persistence interface for conversations
type ConversationRepository interface {
	shared.TenantRepository[Conversation]
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) ([]Conversation, error)
	FindWithMessages(ctx context.Context, tenantID, id uuid.UUID) (*Conversation, error)
	AppendMessage(ctx context.Context, msg *Message) error
}
