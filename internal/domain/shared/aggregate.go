package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseAggregateRoot provides common fields for aggregate roots.
// Version implements optimistic locking: it starts at 1 and increments by
// exactly one on every successful mutation.
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// TenantAggregateRoot extends BaseAggregateRoot with multi-tenant scoping and
// soft-delete state. An aggregate with a non-nil DeletedAt is invisible to
// default queries and rejects further mutation until restored.
type TenantAggregateRoot struct {
	BaseAggregateRoot
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
	DeletedAt *time.Time `gorm:"index"`
}

// NewTenantAggregateRoot creates a new tenant-scoped aggregate root
func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		TenantID:          tenantID,
	}
}

// NewTenantAggregateRootWithCreator creates a new tenant-scoped aggregate root with creator info
func NewTenantAggregateRootWithCreator(tenantID, createdBy uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		TenantID:          tenantID,
		CreatedBy:         &createdBy,
	}
}

// SetCreatedBy sets the creator user ID
func (t *TenantAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	t.CreatedBy = &userID
}

// IsDeleted returns true if the aggregate has been soft-deleted
func (t *TenantAggregateRoot) IsDeleted() bool {
	return t.DeletedAt != nil
}

// SoftDelete marks the aggregate as deleted. Deleting an already-deleted
// aggregate is an error; the row is never touched twice. The version bump
// happens in the conditional write that persists the transition.
func (t *TenantAggregateRoot) SoftDelete() error {
	if t.IsDeleted() {
		return NewDomainError("ALREADY_DELETED", "Record is already deleted")
	}
	now := time.Now()
	t.DeletedAt = &now
	t.UpdatedAt = now
	return nil
}

// Restore clears the soft-delete marker. Restoring an aggregate that is not
// deleted is rejected rather than treated as a no-op.
func (t *TenantAggregateRoot) Restore() error {
	if !t.IsDeleted() {
		return NewDomainError("INVALID_STATE", "Record is not deleted")
	}
	t.DeletedAt = nil
	t.UpdatedAt = time.Now()
	return nil
}

// EnsureMutable returns an error when the aggregate is soft-deleted.
// Every update path calls this before applying a patch.
func (t *TenantAggregateRoot) EnsureMutable() error {
	if t.IsDeleted() {
		return NewDomainError("INVALID_STATE", "Record is deleted and must be restored before modification")
	}
	return nil
}

// CheckVersion compares the caller-supplied expected version against the
// stored version and reports a conflict on mismatch.
func (t *TenantAggregateRoot) CheckVersion(expected int) error {
	if t.Version != expected {
		return ErrConcurrencyConflict
	}
	return nil
}
