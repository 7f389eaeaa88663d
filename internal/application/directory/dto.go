package directory

import (
	"time"

	"github.com/adminhub/backend/internal/domain/directory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Company DTOs
// =============================================================================

// CreateCompanyRequest represents a request to create a new company
type CreateCompanyRequest struct {
	Code         string     `json:"code" binding:"required,entitycode,min=1,max=50"`
	Name         string     `json:"name" binding:"required,min=1,max=200"`
	Industry     string     `json:"industry" binding:"max=100"`
	Website      string     `json:"website" binding:"max=300"`
	ContactEmail string     `json:"contact_email" binding:"omitempty,email,max=200"`
	ContactPhone string     `json:"contact_phone" binding:"max=50"`
	Address      string     `json:"address" binding:"max=500"`
	Notes        string     `json:"notes"`
	CreatedBy    *uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// UpdateCompanyRequest represents a request to update a company.
// Version carries the version the caller last read.
type UpdateCompanyRequest struct {
	Version      int     `json:"version" binding:"required,min=1"`
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	Industry     *string `json:"industry" binding:"omitempty,max=100"`
	Website      *string `json:"website" binding:"omitempty,max=300"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email,max=200"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50"`
	Address      *string `json:"address" binding:"omitempty,max=500"`
	Status       *string `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes        *string `json:"notes"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Industry     string     `json:"industry"`
	Website      string     `json:"website"`
	ContactEmail string     `json:"contact_email"`
	ContactPhone string     `json:"contact_phone"`
	Address      string     `json:"address"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	Version      int        `json:"version"`
}

// CompanyListFilter represents filter options for company list
type CompanyListFilter struct {
	Search         string `form:"search"`
	Status         string `form:"status" binding:"omitempty,oneof=active inactive"`
	Industry       string `form:"industry"`
	IncludeDeleted bool   `form:"include_deleted"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCompanyResponse converts a domain Company to CompanyResponse
func ToCompanyResponse(c *directory.Company) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID,
		TenantID:     c.TenantID,
		Code:         c.Code,
		Name:         c.Name,
		Industry:     c.Industry,
		Website:      c.Website,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Address:      c.Address,
		Status:       string(c.Status),
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		DeletedAt:    c.DeletedAt,
		Version:      c.Version,
	}
}

// ToCompanyResponses converts a slice of companies
func ToCompanyResponses(companies []directory.Company) []CompanyResponse {
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses
}

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	Code        string     `json:"code" binding:"required,entitycode,min=1,max=50"`
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	CompanyID   *uuid.UUID `json:"company_id"`
	ContactName string     `json:"contact_name" binding:"max=100"`
	Email       string     `json:"email" binding:"omitempty,email,max=200"`
	Phone       string     `json:"phone" binding:"max=50"`
	Notes       string     `json:"notes"`
	CreatedBy   *uuid.UUID `json:"-"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	Version      int        `json:"version" binding:"required,min=1"`
	Name         *string    `json:"name" binding:"omitempty,min=1,max=200"`
	CompanyID    *uuid.UUID `json:"company_id"`
	ClearCompany bool       `json:"clear_company"`
	ContactName  *string    `json:"contact_name" binding:"omitempty,max=100"`
	Email        *string    `json:"email" binding:"omitempty,email,max=200"`
	Phone        *string    `json:"phone" binding:"omitempty,max=50"`
	Status       *string    `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes        *string    `json:"notes"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	CompanyID   *uuid.UUID `json:"company_id,omitempty"`
	ContactName string     `json:"contact_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	Version     int        `json:"version"`
}

// ClientListFilter represents filter options for client list
type ClientListFilter struct {
	Search         string `form:"search"`
	Status         string `form:"status" binding:"omitempty,oneof=active inactive"`
	CompanyID      string `form:"company_id" binding:"omitempty,uuid"`
	IncludeDeleted bool   `form:"include_deleted"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToClientResponse converts a domain Client to ClientResponse
func ToClientResponse(c *directory.Client) ClientResponse {
	return ClientResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		Code:        c.Code,
		Name:        c.Name,
		CompanyID:   c.CompanyID,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		Status:      string(c.Status),
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		DeletedAt:   c.DeletedAt,
		Version:     c.Version,
	}
}

// ToClientResponses converts a slice of clients
func ToClientResponses(clients []directory.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}

// =============================================================================
// Project DTOs
// =============================================================================

// CreateProjectRequest represents a request to create a new project
type CreateProjectRequest struct {
	Code        string           `json:"code" binding:"required,entitycode,min=1,max=50"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description"`
	ClientID    *uuid.UUID       `json:"client_id"`
	Budget      *decimal.Decimal `json:"budget"`
	StartDate   *time.Time       `json:"start_date"`
	DueDate     *time.Time       `json:"due_date"`
	CreatedBy   *uuid.UUID       `json:"-"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Version     int              `json:"version" binding:"required,min=1"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	ClientID    *uuid.UUID       `json:"client_id"`
	ClearClient bool             `json:"clear_client"`
	Status      *string          `json:"status" binding:"omitempty,oneof=planning active completed cancelled"`
	Budget      *decimal.Decimal `json:"budget"`
	StartDate   *time.Time       `json:"start_date"`
	DueDate     *time.Time       `json:"due_date"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ClientID    *uuid.UUID      `json:"client_id,omitempty"`
	Status      string          `json:"status"`
	Budget      decimal.Decimal `json:"budget"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`
	Version     int             `json:"version"`
}

// ProjectListFilter represents filter options for project list
type ProjectListFilter struct {
	Search         string `form:"search"`
	Status         string `form:"status" binding:"omitempty,oneof=planning active completed cancelled"`
	ClientID       string `form:"client_id" binding:"omitempty,uuid"`
	IncludeDeleted bool   `form:"include_deleted"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProjectResponse converts a domain Project to ProjectResponse
func ToProjectResponse(p *directory.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		ClientID:    p.ClientID,
		Status:      string(p.Status),
		Budget:      p.Budget,
		StartDate:   p.StartDate,
		DueDate:     p.DueDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   p.DeletedAt,
		Version:     p.Version,
	}
}

// ToProjectResponses converts a slice of projects
func ToProjectResponses(projects []directory.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = ToProjectResponse(&projects[i])
	}
	return responses
}
