package identity

import (
	"time"

	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Capability is a tagged permission constant. Authorization checks compare
// capabilities exhaustively; there is no pattern matching on strings.
type Capability string

const (
	CapCompanyRead   Capability = "company:read"
	CapCompanyWrite  Capability = "company:write"
	CapClientRead    Capability = "client:read"
	CapClientWrite   Capability = "client:write"
	CapProjectRead   Capability = "project:read"
	CapProjectWrite  Capability = "project:write"
	CapUserRead      Capability = "user:read"
	CapUserWrite     Capability = "user:write"
	CapRoleRead      Capability = "role:read"
	CapRoleWrite     Capability = "role:write"
	CapDashboardView Capability = "dashboard:view"
	CapAssistantUse  Capability = "assistant:use"
)

// AllCapabilities lists every known capability, in a stable order
func AllCapabilities() []Capability {
	return []Capability{
		CapCompanyRead, CapCompanyWrite,
		CapClientRead, CapClientWrite,
		CapProjectRead, CapProjectWrite,
		CapUserRead, CapUserWrite,
		CapRoleRead, CapRoleWrite,
		CapDashboardView, CapAssistantUse,
	}
}

// Valid reports whether the capability is one of the known constants
func (c Capability) Valid() bool {
	switch c {
	case CapCompanyRead, CapCompanyWrite,
		CapClientRead, CapClientWrite,
		CapProjectRead, CapProjectWrite,
		CapUserRead, CapUserWrite,
		CapRoleRead, CapRoleWrite,
		CapDashboardView, CapAssistantUse:
		return true
	}
	return false
}

// CapabilitySet is a set of capabilities granted to a role or user
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from a list, rejecting unknown capabilities
func NewCapabilitySet(caps ...Capability) (CapabilitySet, error) {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		if !c.Valid() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown capability: "+string(c))
		}
		set[c] = struct{}{}
	}
	return set, nil
}

// Has reports whether the set contains the capability
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the set members in the canonical order
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for _, c := range AllCapabilities() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Role represents a named capability grant within a tenant
type Role struct {
	shared.TenantAggregateRoot
	Name         string       `gorm:"type:varchar(100);not null;index"`
	Description  string       `gorm:"type:varchar(500)"`
	IsSystem     bool         `gorm:"not null;default:false"`
	Capabilities []Capability `gorm:"serializer:json;type:jsonb"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a new role with the given capabilities
func NewRole(tenantID uuid.UUID, name string, caps []Capability) (*Role, error) {
	if err := validateRoleName(name); err != nil {
		return nil, err
	}
	set, err := NewCapabilitySet(caps...)
	if err != nil {
		return nil, err
	}

	return &Role{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Capabilities:        set.List(),
	}, nil
}

// Update changes the role's name and description
func (r *Role) Update(name, description string) error {
	if err := r.EnsureMutable(); err != nil {
		return err
	}
	if r.IsSystem {
		return shared.NewDomainError("INVALID_STATE", "System roles cannot be modified")
	}
	if err := validateRoleName(name); err != nil {
		return err
	}
	if len(description) > 500 {
		return shared.NewDomainError("VALIDATION_ERROR", "Description cannot exceed 500 characters")
	}

	r.Name = name
	r.Description = description
	r.UpdatedAt = time.Now()

	return nil
}

// SetCapabilities replaces the role's capability set
func (r *Role) SetCapabilities(caps []Capability) error {
	if err := r.EnsureMutable(); err != nil {
		return err
	}
	if r.IsSystem {
		return shared.NewDomainError("INVALID_STATE", "System roles cannot be modified")
	}
	set, err := NewCapabilitySet(caps...)
	if err != nil {
		return err
	}

	r.Capabilities = set.List()
	r.UpdatedAt = time.Now()

	return nil
}

// CapabilitySet returns the role's capabilities as a set
func (r *Role) CapabilitySet() CapabilitySet {
	set := make(CapabilitySet, len(r.Capabilities))
	for _, c := range r.Capabilities {
		set[c] = struct{}{}
	}
	return set
}

// Grants reports whether the role grants the capability
func (r *Role) Grants(c Capability) bool {
	return r.CapabilitySet().Has(c)
}

func validateRoleName(name string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("VALIDATION_ERROR", "Role name cannot exceed 100 characters")
	}
	return nil
}
