package handler

import (
	appidentity "github.com/adminhub/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// TenantHandler handles tenant provisioning endpoints
type TenantHandler struct {
	BaseHandler
	service *appidentity.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(service *appidentity.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// RegisterRoutes registers tenant routes. Provisioning is unauthenticated
// bootstrap: it creates the tenant, its system administrator role and the
// first admin account in one call.
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.Provision)
	}
}

// Provision creates a tenant together with its initial administrator
func (h *TenantHandler) Provision(c *gin.Context) {
	var req appidentity.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Provision(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
