package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adminhub/backend/internal/domain/assistant"
	"github.com/adminhub/backend/internal/domain/shared"
)

// GormConversationRepository implements ConversationRepository using GORM
type GormConversationRepository struct {
	db *gorm.DB
}

// NewGormConversationRepository creates a new GormConversationRepository
func NewGormConversationRepository(db *gorm.DB) *GormConversationRepository {
	return &GormConversationRepository{db: db}
}

// FindByID finds a live conversation by ID within a tenant, without messages
func (r *GormConversationRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*assistant.Conversation, error) {
	var conv assistant.Conversation
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// FindByIDIncludingDeleted finds a conversation regardless of deletion state
func (r *GormConversationRepository) FindByIDIncludingDeleted(ctx context.Context, tenantID, id uuid.UUID) (*assistant.Conversation, error) {
	var conv assistant.Conversation
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// FindAll finds all conversations matching the filter
func (r *GormConversationRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]assistant.Conversation, error) {
	var conversations []assistant.Conversation
	query := r.listQuery(ctx, tenantID, filter)
	query = applyOrdering(query, filter, ConversationSortFields)

	if err := query.Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

// Count counts conversations matching the filter
func (r *GormConversationRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.listQuery(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create creates a new conversation together with any initial messages
func (r *GormConversationRepository) Create(ctx context.Context, conv *assistant.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

// UpdateWithVersion persists conversation metadata through a single
// conditional write guarded by the version the caller read. Messages are
// appended separately and never rewritten here.
func (r *GormConversationRepository) UpdateWithVersion(ctx context.Context, conv *assistant.Conversation) error {
	expected := conv.Version
	conv.IncrementVersion()

	result := r.db.WithContext(ctx).
		Model(&assistant.Conversation{}).
		Where("tenant_id = ? AND id = ? AND version = ?", conv.TenantID, conv.ID, expected).
		Select("*").
		Omit("id", "tenant_id", "created_at", "created_by", "Messages").
		Updates(conv)

	if result.Error != nil {
		conv.Version = expected
		return result.Error
	}
	if result.RowsAffected == 0 {
		conv.Version = expected
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// HardDelete physically removes a conversation and its messages
func (r *GormConversationRepository) HardDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).
			Delete(&assistant.Message{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&assistant.Conversation{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByUser finds a user's live conversations
func (r *GormConversationRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) ([]assistant.Conversation, error) {
	var conversations []assistant.Conversation
	query := r.listQuery(ctx, tenantID, filter).Where("user_id = ?", userID)
	query = applyOrdering(query, filter, ConversationSortFields)

	if err := query.Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

// FindWithMessages finds a live conversation with its full history, ordered
// oldest first
func (r *GormConversationRepository) FindWithMessages(ctx context.Context, tenantID, id uuid.UUID) (*assistant.Conversation, error) {
	var conv assistant.Conversation
	if err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// AppendMessage inserts a single message row
func (r *GormConversationRepository) AppendMessage(ctx context.Context, msg *assistant.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *GormConversationRepository) listQuery(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := tenantScope(r.db.WithContext(ctx).Model(&assistant.Conversation{}), tenantID, filter)

	for key, value := range filter.Filters {
		if key == "user_id" {
			query = query.Where("user_id = ?", value)
		}
	}

	return query
}

// Ensure GormConversationRepository implements ConversationRepository
var _ assistant.ConversationRepository = (*GormConversationRepository)(nil)
