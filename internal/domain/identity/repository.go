package identity

import (
	"context"

	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for users
type UserRepository interface {
	shared.TenantRepository[User]
	FindByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*User, error)
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	ExistsByUsername(ctx context.Context, tenantID uuid.UUID, username string) (bool, error)
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status UserStatus) (int64, error)
}

// RoleRepository defines the persistence interface for roles
type RoleRepository interface {
	shared.TenantRepository[Role]
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Role, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*Role, error)
}

// TenantRepository defines the persistence interface for tenants.
// Tenants are global records, not scoped by another tenant.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByCode(ctx context.Context, code string) (*Tenant, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, tenant *Tenant) error
	Update(ctx context.Context, tenant *Tenant) error
}
