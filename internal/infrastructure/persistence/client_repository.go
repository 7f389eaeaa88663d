package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adminhub/backend/internal/domain/directory"
	"github.com/adminhub/backend/internal/domain/shared"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a live client by ID within a tenant
func (r *GormClientRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*directory.Client, error) {
	var client directory.Client
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindByIDIncludingDeleted finds a client by ID regardless of deletion state
func (r *GormClientRepository) FindByIDIncludingDeleted(ctx context.Context, tenantID, id uuid.UUID) (*directory.Client, error) {
	var client directory.Client
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]directory.Client, error) {
	var clients []directory.Client
	query := r.listQuery(ctx, tenantID, filter)
	query = applyOrdering(query, filter, ClientSortFields)

	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.listQuery(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create creates a new client
func (r *GormClientRepository) Create(ctx context.Context, client *directory.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// UpdateWithVersion persists the client through a single conditional write
// guarded by the version the caller read
func (r *GormClientRepository) UpdateWithVersion(ctx context.Context, client *directory.Client) error {
	expected := client.Version
	client.IncrementVersion()

	result := r.db.WithContext(ctx).
		Model(&directory.Client{}).
		Where("tenant_id = ? AND id = ? AND version = ?", client.TenantID, client.ID, expected).
		Select("*").
		Omit("id", "tenant_id", "created_at", "created_by").
		Updates(client)

	if result.Error != nil {
		client.Version = expected
		return result.Error
	}
	if result.RowsAffected == 0 {
		client.Version = expected
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// HardDelete physically removes a client row. Maintenance use only.
func (r *GormClientRepository) HardDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&directory.Client{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByCode finds a live client by code within a tenant
func (r *GormClientRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*directory.Client, error) {
	var client directory.Client
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ? AND deleted_at IS NULL", tenantID, strings.ToUpper(code)).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// ExistsByCode checks if a client with the given code exists in the tenant
func (r *GormClientRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&directory.Client{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByStatus counts live clients by status for a tenant
func (r *GormClientRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status directory.ClientStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&directory.Client{}).
		Where("tenant_id = ? AND status = ? AND deleted_at IS NULL", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormClientRepository) listQuery(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := tenantScope(r.db.WithContext(ctx).Model(&directory.Client{}), tenantID, filter)

	query = searchScope(query, filter.Search, "name", "code", "contact_name")
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "company_id":
			query = query.Where("company_id = ?", value)
		}
	}

	return query
}

// Ensure GormClientRepository implements ClientRepository
var _ directory.ClientRepository = (*GormClientRepository)(nil)
