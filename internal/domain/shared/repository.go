package shared

import (
	"context"

	"github.com/google/uuid"
)

// TenantRepository is the base interface for tenant-scoped repositories.
// Every method takes the tenant ID as a mandatory argument; there is no
// unscoped query path. A lookup under the wrong tenant reports NOT_FOUND.
type TenantRepository[T any] interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*T, error)
	// FindByIDIncludingDeleted also matches soft-deleted rows. Update, delete
	// and restore paths load through this so a deleted record can report its
	// state instead of NOT_FOUND.
	FindByIDIncludingDeleted(ctx context.Context, tenantID, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]T, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter Filter) (int64, error)
	Create(ctx context.Context, entity *T) error
	// UpdateWithVersion persists the entity with a conditional write guarded
	// by the version the caller read; it fails with CONFLICT when the stored
	// version no longer matches.
	UpdateWithVersion(ctx context.Context, entity *T) error
	// HardDelete physically removes the row. Maintenance and test paths only;
	// production delete is the soft-delete transition persisted through
	// UpdateWithVersion.
	HardDelete(ctx context.Context, tenantID, id uuid.UUID) error
}

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	// IncludeDeleted lifts the default deleted_at IS NULL predicate.
	IncludeDeleted bool
	Filters        map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
