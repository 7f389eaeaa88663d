package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/adminhub/backend/internal/domain/shared"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant represents an organization, the isolation boundary for all
// tenant-scoped data. Tenants themselves are global records.
type Tenant struct {
	shared.BaseAggregateRoot
	Code   string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name   string       `gorm:"type:varchar(200);not null"`
	Status TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new active tenant
func NewTenant(code, name string) (*Tenant, error) {
	if err := validateTenantCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant name cannot exceed 200 characters")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToLower(code),
		Name:              name,
		Status:            TenantStatusActive,
	}, nil
}

// Rename changes the tenant's display name
func (t *Tenant) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Tenant name cannot exceed 200 characters")
	}

	t.Name = name
	t.UpdatedAt = time.Now()

	return nil
}

// Suspend suspends the tenant; suspended tenants cannot authenticate
func (t *Tenant) Suspend() error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Tenant is already suspended")
	}

	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()

	return nil
}

// Activate reactivates a suspended tenant
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Tenant is already active")
	}

	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()

	return nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

func validateTenantCode(code string) error {
	if code == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Tenant code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("VALIDATION_ERROR", "Tenant code cannot exceed 50 characters")
	}
	codeRegex := regexp.MustCompile(`^[a-z0-9][a-z0-9\-]*$`)
	if !codeRegex.MatchString(strings.ToLower(code)) {
		return shared.NewDomainError("VALIDATION_ERROR", "Tenant code can only contain lowercase letters, numbers, and hyphens")
	}
	return nil
}
