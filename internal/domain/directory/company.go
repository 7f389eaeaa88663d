package directory

import (
	"regexp"
	"strings"
	"time"

	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyStatus represents the status of a company
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "active"
	CompanyStatusInactive CompanyStatus = "inactive"
)

// Company represents an organization's company record.
// It is the aggregate root for company-related operations.
type Company struct {
	shared.TenantAggregateRoot
	Code         string        `gorm:"type:varchar(50);not null;index"`
	Name         string        `gorm:"type:varchar(200);not null"`
	Industry     string        `gorm:"type:varchar(100)"`
	Website      string        `gorm:"type:varchar(300)"`
	ContactEmail string        `gorm:"type:varchar(200);index"`
	ContactPhone string        `gorm:"type:varchar(50)"`
	Address      string        `gorm:"type:text"`
	Status       CompanyStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes        string        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new company with required fields
func NewCompany(tenantID uuid.UUID, code, name string) (*Company, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Company{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Status:              CompanyStatusActive,
	}, nil
}

// Update updates the company's basic information
func (c *Company) Update(name, industry string) error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	if industry != "" && len(industry) > 100 {
		return shared.NewDomainError("VALIDATION_ERROR", "Industry cannot exceed 100 characters")
	}

	c.Name = name
	c.Industry = industry
	c.UpdatedAt = time.Now()

	return nil
}

// SetContact sets the company's contact information
func (c *Company) SetContact(email, phone string) error {
	if err := c.EnsureMutable(); err != nil {
		return err
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

	c.ContactEmail = strings.ToLower(email)
	c.ContactPhone = phone
	c.UpdatedAt = time.Now()

	return nil
}

// SetWebsite sets the company's website URL
func (c *Company) SetWebsite(website string) error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}
	if website != "" && len(website) > 300 {
		return shared.NewDomainError("VALIDATION_ERROR", "Website cannot exceed 300 characters")
	}

	c.Website = website
	c.UpdatedAt = time.Now()

	return nil
}

// SetAddress sets the company's address
func (c *Company) SetAddress(address string) error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("VALIDATION_ERROR", "Address cannot exceed 500 characters")
	}

	c.Address = address
	c.UpdatedAt = time.Now()

	return nil
}

// SetNotes sets the company's notes
func (c *Company) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
}

// Activate activates the company
func (c *Company) Activate() error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}
	if c.Status == CompanyStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Company is already active")
	}

	c.Status = CompanyStatusActive
	c.UpdatedAt = time.Now()

	return nil
}

// Deactivate deactivates the company
func (c *Company) Deactivate() error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}
	if c.Status == CompanyStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Company is already inactive")
	}

	c.Status = CompanyStatusInactive
	c.UpdatedAt = time.Now()

	return nil
}

// IsActive returns true if the company is active
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

// Validation helpers shared across the directory context

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("VALIDATION_ERROR", "Code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("VALIDATION_ERROR", "Code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("VALIDATION_ERROR", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid email format")
	}
	return nil
}
