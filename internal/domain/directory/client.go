package directory

import (
	"strings"
	"time"

	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientStatus represents the status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// Client represents a billable client of the organization.
// It is the aggregate root for client-related operations.
type Client struct {
	shared.TenantAggregateRoot
	Code        string       `gorm:"type:varchar(50);not null;index"`
	Name        string       `gorm:"type:varchar(200);not null"`
	CompanyID   *uuid.UUID   `gorm:"type:uuid;index"`
	ContactName string       `gorm:"type:varchar(100)"`
	Email       string       `gorm:"type:varchar(200);index"`
	Phone       string       `gorm:"type:varchar(50)"`
	Status      ClientStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client with required fields
func NewClient(tenantID uuid.UUID, code, name string) (*Client, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Client{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Status:              ClientStatusActive,
	}, nil
}

// Update updates the client's basic information
func (c *Client) Update(name string) error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()

	return nil
}

// SetContact sets the client's contact information
func (c *Client) SetContact(contactName, email, phone string) error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("VALIDATION_ERROR", "Contact name cannot exceed 100 characters")
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	c.ContactName = contactName
	c.Email = strings.ToLower(email)
	c.Phone = phone
	c.UpdatedAt = time.Now()

	return nil
}

// SetCompany links the client to a company record
func (c *Client) SetCompany(companyID *uuid.UUID) error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}

	c.CompanyID = companyID
	c.UpdatedAt = time.Now()

	return nil
}

// SetNotes sets the client's notes
func (c *Client) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
}

// Activate activates the client
func (c *Client) Activate() error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}
	if c.Status == ClientStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Client is already active")
	}

	c.Status = ClientStatusActive
	c.UpdatedAt = time.Now()

	return nil
}

// Deactivate deactivates the client
func (c *Client) Deactivate() error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}
	if c.Status == ClientStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Client is already inactive")
	}

	c.Status = ClientStatusInactive
	c.UpdatedAt = time.Now()

	return nil
}

// IsActive returns true if the client is active
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}
