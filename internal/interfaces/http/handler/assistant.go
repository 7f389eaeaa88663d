package handler

import (
	appassistant "github.com/adminhub/backend/internal/application/assistant"
	"github.com/adminhub/backend/internal/domain/identity"
	"github.com/adminhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssistantHandler handles assistant conversation endpoints
type AssistantHandler struct {
	BaseHandler
	service *appassistant.ConversationService
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(service *appassistant.ConversationService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// RegisterRoutes registers assistant routes. Conversations are private to
// their owner; every operation is scoped by the authenticated user.
func (h *AssistantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	use := middleware.RequireCapability(identity.CapAssistantUse)

	conversations := rg.Group("/assistant/conversations", use)
	{
		conversations.POST("", h.Create)
		conversations.GET("", h.List)
		conversations.GET("/:id", h.Get)
		conversations.PUT("/:id", h.Rename)
		conversations.POST("/:id/messages", h.SendMessage)
		conversations.DELETE("/:id", h.Delete)
	}
}

func (h *AssistantHandler) identity(c *gin.Context) (tenantID, userID uuid.UUID, ok bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid authentication context")
		return uuid.Nil, uuid.Nil, false
	}
	userID, err = getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid authentication context")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, userID, true
}

// Create starts a new conversation
func (h *AssistantHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var req appassistant.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List lists the caller's conversations, most recently active first
func (h *AssistantHandler) List(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var filter appassistant.ConversationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), tenantID, userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a conversation with its full message history
func (h *AssistantHandler) Get(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid conversation ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), tenantID, userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SendMessage appends a user turn and returns the assistant's reply
func (h *AssistantHandler) SendMessage(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid conversation ID")
		return
	}

	var req appassistant.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.SendMessage(c.Request.Context(), tenantID, userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Rename changes a conversation title
func (h *AssistantHandler) Rename(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid conversation ID")
		return
	}

	var req appassistant.RenameConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Rename(c.Request.Context(), tenantID, userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete soft-deletes a conversation
func (h *AssistantHandler) Delete(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid conversation ID")
		return
	}
	version, err := parseVersionQuery(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, userID, id, version); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
