package directory

import (
	"strings"
	"time"

	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// projectTransitions is the fixed status transition table.
// Completed and cancelled are terminal.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusPlanning:  {ProjectStatusActive, ProjectStatusCancelled},
	ProjectStatusActive:    {ProjectStatusCompleted, ProjectStatusCancelled},
	ProjectStatusCompleted: {},
	ProjectStatusCancelled: {},
}

// CanTransition reports whether a status change is permitted by the table
func CanTransition(from, to ProjectStatus) bool {
	for _, allowed := range projectTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Project represents a unit of client work.
// It is the aggregate root for project-related operations.
type Project struct {
	shared.TenantAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null;index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	ClientID    *uuid.UUID      `gorm:"type:uuid;index"`
	Status      ProjectStatus   `gorm:"type:varchar(20);not null;default:'planning'"`
	Budget      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StartDate   *time.Time
	DueDate     *time.Time
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a new project in planning status
func NewProject(tenantID uuid.UUID, code, name string) (*Project, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Project{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Status:              ProjectStatusPlanning,
		Budget:              decimal.Zero,
	}, nil
}

// Update updates the project's basic information
func (p *Project) Update(name, description string) error {
	if err := p.EnsureMutable(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()

	return nil
}

// ChangeStatus moves the project to a new status.
// The transition is validated against the fixed table independently of any
// concurrency check; an illegal move is a validation failure, not a conflict.
func (p *Project) ChangeStatus(to ProjectStatus) error {
	if err := p.EnsureMutable(); err != nil {
		return err
	}
	if err := validateProjectStatus(to); err != nil {
		return err
	}
	if !CanTransition(p.Status, to) {
		return shared.NewDomainError("VALIDATION_ERROR",
			"Invalid status transition from "+string(p.Status)+" to "+string(to))
	}

	p.Status = to
	p.UpdatedAt = time.Now()

	return nil
}

// SetClient links the project to a client
func (p *Project) SetClient(clientID *uuid.UUID) error {
	if err := p.EnsureMutable(); err != nil {
		return err
	}

	p.ClientID = clientID
	p.UpdatedAt = time.Now()

	return nil
}

// SetBudget sets the project's budget
func (p *Project) SetBudget(budget decimal.Decimal) error {
	if err := p.EnsureMutable(); err != nil {
		return err
	}
	if budget.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Budget cannot be negative")
	}

	p.Budget = budget
	p.UpdatedAt = time.Now()

	return nil
}

// SetSchedule sets the project's start and due dates
func (p *Project) SetSchedule(start, due *time.Time) error {
	if err := p.EnsureMutable(); err != nil {
		return err
	}
	if start != nil && due != nil && due.Before(*start) {
		return shared.NewDomainError("VALIDATION_ERROR", "Due date cannot be before start date")
	}

	p.StartDate = start
	p.DueDate = due
	p.UpdatedAt = time.Now()

	return nil
}

// IsTerminal returns true when no further status transitions are possible
func (p *Project) IsTerminal() bool {
	return len(projectTransitions[p.Status]) == 0
}

func validateProjectStatus(s ProjectStatus) error {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusCompleted, ProjectStatusCancelled:
		return nil
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid project status")
	}
}
