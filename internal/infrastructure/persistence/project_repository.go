package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adminhub/backend/internal/domain/directory"
	"github.com/adminhub/backend/internal/domain/shared"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a live project by ID within a tenant
func (r *GormProjectRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*directory.Project, error) {
	var project directory.Project
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindByIDIncludingDeleted finds a project by ID regardless of deletion state
func (r *GormProjectRepository) FindByIDIncludingDeleted(ctx context.Context, tenantID, id uuid.UUID) (*directory.Project, error) {
	var project directory.Project
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindAll finds all projects matching the filter
func (r *GormProjectRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]directory.Project, error) {
	var projects []directory.Project
	query := r.listQuery(ctx, tenantID, filter)
	query = applyOrdering(query, filter, ProjectSortFields)

	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Count counts projects matching the filter
func (r *GormProjectRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.listQuery(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, project *directory.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// UpdateWithVersion persists the project through a single conditional write
// guarded by the version the caller read
func (r *GormProjectRepository) UpdateWithVersion(ctx context.Context, project *directory.Project) error {
	expected := project.Version
	project.IncrementVersion()

	result := r.db.WithContext(ctx).
		Model(&directory.Project{}).
		Where("tenant_id = ? AND id = ? AND version = ?", project.TenantID, project.ID, expected).
		Select("*").
		Omit("id", "tenant_id", "created_at", "created_by").
		Updates(project)

	if result.Error != nil {
		project.Version = expected
		return result.Error
	}
	if result.RowsAffected == 0 {
		project.Version = expected
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// HardDelete physically removes a project row. Maintenance use only.
func (r *GormProjectRepository) HardDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&directory.Project{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByCode finds a live project by code within a tenant
func (r *GormProjectRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*directory.Project, error) {
	var project directory.Project
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ? AND deleted_at IS NULL", tenantID, strings.ToUpper(code)).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// ExistsByCode checks if a project with the given code exists in the tenant
func (r *GormProjectRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&directory.Project{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByClient finds live projects attached to a client
func (r *GormProjectRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]directory.Project, error) {
	var projects []directory.Project
	query := r.listQuery(ctx, tenantID, filter).Where("client_id = ?", clientID)
	query = applyOrdering(query, filter, ProjectSortFields)

	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// CountByStatus counts live projects by status for a tenant
func (r *GormProjectRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status directory.ProjectStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&directory.Project{}).
		Where("tenant_id = ? AND status = ? AND deleted_at IS NULL", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DetachClient nulls the client reference on every project pointing at the
// client. The projects keep their history; only the link is removed. The
// version bump makes writers holding a pre-detach snapshot conflict instead
// of silently re-linking.
func (r *GormProjectRepository) DetachClient(ctx context.Context, tenantID, clientID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&directory.Project{}).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		Updates(map[string]any{
			"client_id":  nil,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormProjectRepository) listQuery(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := tenantScope(r.db.WithContext(ctx).Model(&directory.Project{}), tenantID, filter)

	query = searchScope(query, filter.Search, "name", "code")
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		}
	}

	return query
}

// Ensure GormProjectRepository implements ProjectRepository
var _ directory.ProjectRepository = (*GormProjectRepository)(nil)
