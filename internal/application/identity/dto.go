package identity

import (
	"time"

	"github.com/adminhub/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// =============================================================================
// Auth DTOs
// =============================================================================

// LoginInput carries the credentials for a login attempt
type LoginInput struct {
	TenantCode string `json:"tenant_code" binding:"required,min=1,max=50"`
	Username   string `json:"username" binding:"required,min=1,max=100"`
	Password   string `json:"password" binding:"required,min=1,max=72"`
}

// LoginResult is returned on a successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput carries a refresh token
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResult is returned on a successful token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput identifies the session being terminated
type LogoutInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	JTI      string
	TokenTTL time.Duration
}

// ChangePasswordInput carries a password change request
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserInfo is the identity summary embedded in auth responses
type UserInfo struct {
	ID           uuid.UUID   `json:"id"`
	TenantID     uuid.UUID   `json:"tenant_id"`
	Username     string      `json:"username"`
	DisplayName  string      `json:"display_name"`
	Email        string      `json:"email"`
	RoleIDs      []uuid.UUID `json:"role_ids"`
	Capabilities []string    `json:"capabilities"`
}

// =============================================================================
// User DTOs
// =============================================================================

// CreateUserRequest represents a request to create a new user
type CreateUserRequest struct {
	Username    string      `json:"username" binding:"required,min=3,max=100"`
	Email       string      `json:"email" binding:"required,email,max=255"`
	Password    string      `json:"password" binding:"required,min=8,max=72"`
	DisplayName string      `json:"display_name" binding:"max=200"`
	RoleIDs     []uuid.UUID `json:"role_ids"`
	Activate    bool        `json:"activate"`
	CreatedBy   *uuid.UUID  `json:"-"`
}

// UpdateUserRequest represents a request to update a user
type UpdateUserRequest struct {
	Version     int          `json:"version" binding:"required,min=1"`
	DisplayName *string      `json:"display_name" binding:"omitempty,max=200"`
	Email       *string      `json:"email" binding:"omitempty,email,max=255"`
	Status      *string      `json:"status" binding:"omitempty,oneof=active locked deactivated"`
	RoleIDs     *[]uuid.UUID `json:"role_ids"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID   `json:"id"`
	TenantID    uuid.UUID   `json:"tenant_id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Status      string      `json:"status"`
	RoleIDs     []uuid.UUID `json:"role_ids"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	DeletedAt   *time.Time  `json:"deleted_at,omitempty"`
	Version     int         `json:"version"`
}

// UserListFilter represents filter options for user list
type UserListFilter struct {
	Search         string `form:"search"`
	Status         string `form:"status" binding:"omitempty,oneof=pending active locked deactivated"`
	IncludeDeleted bool   `form:"include_deleted"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Status:      string(u.Status),
		RoleIDs:     u.RoleIDs,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		DeletedAt:   u.DeletedAt,
		Version:     u.Version,
	}
}

// ToUserResponses converts a slice of users
func ToUserResponses(users []identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}

// =============================================================================
// Role DTOs
// =============================================================================

// CreateRoleRequest represents a request to create a new role
type CreateRoleRequest struct {
	Name         string     `json:"name" binding:"required,min=1,max=100"`
	Description  string     `json:"description" binding:"max=500"`
	Capabilities []string   `json:"capabilities" binding:"required,min=1"`
	CreatedBy    *uuid.UUID `json:"-"`
}

// UpdateRoleRequest represents a request to update a role
type UpdateRoleRequest struct {
	Version      int       `json:"version" binding:"required,min=1"`
	Name         *string   `json:"name" binding:"omitempty,min=1,max=100"`
	Description  *string   `json:"description" binding:"omitempty,max=500"`
	Capabilities *[]string `json:"capabilities"`
}

// RoleResponse represents a role in API responses
type RoleResponse struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	IsSystem     bool       `json:"is_system"`
	Capabilities []string   `json:"capabilities"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	Version      int        `json:"version"`
}

// RoleListFilter represents filter options for role list
type RoleListFilter struct {
	Search         string `form:"search"`
	IncludeDeleted bool   `form:"include_deleted"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToRoleResponse converts a domain Role to RoleResponse
func ToRoleResponse(r *identity.Role) RoleResponse {
	caps := make([]string, len(r.Capabilities))
	for i, c := range r.Capabilities {
		caps[i] = string(c)
	}
	return RoleResponse{
		ID:           r.ID,
		TenantID:     r.TenantID,
		Name:         r.Name,
		Description:  r.Description,
		IsSystem:     r.IsSystem,
		Capabilities: caps,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		DeletedAt:    r.DeletedAt,
		Version:      r.Version,
	}
}

// ToRoleResponses converts a slice of roles
func ToRoleResponses(roles []identity.Role) []RoleResponse {
	responses := make([]RoleResponse, len(roles))
	for i := range roles {
		responses[i] = ToRoleResponse(&roles[i])
	}
	return responses
}

// =============================================================================
// Tenant DTOs
// =============================================================================

// CreateTenantRequest represents a request to provision a tenant with its
// initial administrator account.
type CreateTenantRequest struct {
	Code          string `json:"code" binding:"required,min=1,max=50"`
	Name          string `json:"name" binding:"required,min=1,max=200"`
	AdminUsername string `json:"admin_username" binding:"required,min=3,max=100"`
	AdminEmail    string `json:"admin_email" binding:"required,email,max=255"`
	AdminPassword string `json:"admin_password" binding:"required,min=8,max=72"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToTenantResponse converts a domain Tenant to TenantResponse
func ToTenantResponse(t *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Code:      t.Code,
		Name:      t.Name,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// capabilitiesFromStrings converts request strings to typed capabilities,
// rejecting anything outside the known set.
func capabilitiesFromStrings(raw []string) ([]identity.Capability, error) {
	caps := make([]identity.Capability, len(raw))
	for i, s := range raw {
		caps[i] = identity.Capability(s)
	}
	if _, err := identity.NewCapabilitySet(caps...); err != nil {
		return nil, err
	}
	return caps, nil
}
