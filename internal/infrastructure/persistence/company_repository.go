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

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a live company by ID within a tenant
func (r *GormCompanyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*directory.Company, error) {
	var company directory.Company
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindByIDIncludingDeleted finds a company by ID regardless of deletion state
func (r *GormCompanyRepository) FindByIDIncludingDeleted(ctx context.Context, tenantID, id uuid.UUID) (*directory.Company, error) {
	var company directory.Company
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindAll finds all companies matching the filter
func (r *GormCompanyRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]directory.Company, error) {
	var companies []directory.Company
	query := r.listQuery(ctx, tenantID, filter)
	query = applyOrdering(query, filter, CompanySortFields)

	if err := query.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Count counts companies matching the filter
func (r *GormCompanyRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.listQuery(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create creates a new company
func (r *GormCompanyRepository) Create(ctx context.Context, company *directory.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// UpdateWithVersion persists the company through a single conditional write.
// The row is only touched when the stored version still matches the version
// the caller read; zero rows affected means a concurrent writer won.
func (r *GormCompanyRepository) UpdateWithVersion(ctx context.Context, company *directory.Company) error {
	expected := company.Version
	company.IncrementVersion()

	result := r.db.WithContext(ctx).
		Model(&directory.Company{}).
		Where("tenant_id = ? AND id = ? AND version = ?", company.TenantID, company.ID, expected).
		Select("*").
		Omit("id", "tenant_id", "created_at", "created_by").
		Updates(company)

	if result.Error != nil {
		company.Version = expected
		return result.Error
	}
	if result.RowsAffected == 0 {
		company.Version = expected
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// HardDelete physically removes a company row. Maintenance use only.
func (r *GormCompanyRepository) HardDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&directory.Company{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByCode finds a live company by code within a tenant
func (r *GormCompanyRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*directory.Company, error) {
	var company directory.Company
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ? AND deleted_at IS NULL", tenantID, strings.ToUpper(code)).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// ExistsByCode checks if a company with the given code exists in the tenant.
// Soft-deleted rows still occupy their code.
func (r *GormCompanyRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&directory.Company{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByStatus counts live companies by status for a tenant
func (r *GormCompanyRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status directory.CompanyStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&directory.Company{}).
		Where("tenant_id = ? AND status = ? AND deleted_at IS NULL", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCompanyRepository) listQuery(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := tenantScope(r.db.WithContext(ctx).Model(&directory.Company{}), tenantID, filter)

	query = searchScope(query, filter.Search, "name", "code")
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "industry":
			query = query.Where("industry = ?", value)
		}
	}

	return query
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ directory.CompanyRepository = (*GormCompanyRepository)(nil)
