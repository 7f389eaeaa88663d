package directory

import (
	"context"

	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	shared.TenantRepository[Company]
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Company, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status CompanyStatus) (int64, error)
}

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	shared.TenantRepository[Client]
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Client, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status ClientStatus) (int64, error)
}

// ProjectRepository defines persistence operations for projects
type ProjectRepository interface {
	shared.TenantRepository[Project]
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Project, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]Project, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status ProjectStatus) (int64, error)
	// DetachClient nulls the client reference on every project pointing at the
	// client. Used when the referenced client is soft-deleted; dependents keep
	// their history instead of cascading.
	DetachClient(ctx context.Context, tenantID, clientID uuid.UUID) (int64, error)
}
