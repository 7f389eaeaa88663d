package assistant

import (
	"time"

	"github.com/google/uuid"

	"github.com/adminhub/backend/internal/domain/assistant"
)

// CreateConversationRequest starts a new conversation
type CreateConversationRequest struct {
	Title string `json:"title" binding:"omitempty,max=200"`
}

// RenameConversationRequest changes a conversation title
type RenameConversationRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Version int    `json:"version" binding:"required,min=1"`
}

// SendMessageRequest appends a user turn and requests a reply
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=32000"`
	Version int    `json:"version" binding:"required,min=1"`
}

// ConversationResponse is the list representation of a conversation
type ConversationResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// MessageResponse is a single conversation turn
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationDetailResponse includes the full message history
type ConversationDetailResponse struct {
	ConversationResponse
	Messages []MessageResponse `json:"messages"`
}

// SendMessageResponse carries both turns of a completed exchange
type SendMessageResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	UserMessage  MessageResponse      `json:"user_message"`
	Reply        MessageResponse      `json:"reply"`
}

// ToConversationResponse converts a conversation to its list representation
func ToConversationResponse(c *assistant.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:            c.ID,
		Title:         c.Title,
		LastMessageAt: c.LastMessageAt,
		Version:       c.Version,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		DeletedAt:     c.DeletedAt,
	}
}

// ToMessageResponse converts a message to its response representation
func ToMessageResponse(m *assistant.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// ToConversationDetailResponse converts a conversation with its history
func ToConversationDetailResponse(c *assistant.Conversation) ConversationDetailResponse {
	messages := make([]MessageResponse, len(c.Messages))
	for i := range c.Messages {
		messages[i] = ToMessageResponse(&c.Messages[i])
	}
	return ConversationDetailResponse{
		ConversationResponse: ToConversationResponse(c),
		Messages:             messages,
	}
}

// ToConversationResponses converts a slice of conversations
func ToConversationResponses(items []assistant.Conversation) []ConversationResponse {
	responses := make([]ConversationResponse, len(items))
	for i := range items {
		responses[i] = ToConversationResponse(&items[i])
	}
	return responses
}
