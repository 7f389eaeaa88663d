package assistant

import (
	"strings"
	"time"

	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MessageRole identifies the author of a chat message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

const maxMessageLength = 32000

// Conversation is a chat thread between a user and the assistant
type Conversation struct {
	shared.TenantAggregateRoot
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(200);not null"`
	LastMessageAt *time.Time
	Messages      []Message `gorm:"foreignKey:ConversationID"`
}

// TableName returns the table name for GORM
func (Conversation) TableName() string {
	return "conversations"
}

// Message is a single turn within a conversation
type Message struct {
	shared.BaseEntity
	ConversationID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Role           MessageRole `gorm:"type:varchar(20);not null"`
	Content        string      `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "conversation_messages"
}

// NewConversation starts a conversation for the given user. The title
// defaults to a truncation of the opening message when left blank.
func NewConversation(tenantID, userID uuid.UUID, title string) (*Conversation, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "User ID cannot be empty")
	}
	title = strings.TrimSpace(title)
	if len(title) > 200 {
		title = title[:200]
	}
	if title == "" {
		title = "New conversation"
	}

	return &Conversation{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Title:               title,
	}, nil
}

// Rename changes the conversation title
func (c *Conversation) Rename(title string) error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Title cannot exceed 200 characters")
	}

	c.Title = title
	c.UpdatedAt = time.Now()

	return nil
}

// AppendMessage adds a turn to the conversation
func (c *Conversation) AppendMessage(role MessageRole, content string) (*Message, error) {
	if err := c.EnsureMutable(); err != nil {
		return nil, err
	}
	if role != RoleUser && role != RoleAssistant {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown message role: "+string(role))
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Message content cannot be empty")
	}
	if len(content) > maxMessageLength {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Message content exceeds maximum length")
	}

	msg := Message{
		BaseEntity:     shared.NewBaseEntity(),
		ConversationID: c.ID,
		Role:           role,
		Content:        content,
	}
	c.Messages = append(c.Messages, msg)

	now := time.Now()
	c.LastMessageAt = &now
	c.UpdatedAt = now

	return &c.Messages[len(c.Messages)-1], nil
}

// BelongsTo reports whether the conversation is owned by the given user
func (c *Conversation) BelongsTo(userID uuid.UUID) bool {
	return c.UserID == userID
}
