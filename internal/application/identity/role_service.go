package identity

import (
	"context"

	"github.com/adminhub/backend/internal/domain/identity"
	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RoleService handles role administration operations
type RoleService struct {
	roleRepo identity.RoleRepository
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo identity.RoleRepository) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
	}
}

// Create creates a new role
func (s *RoleService) Create(ctx context.Context, tenantID uuid.UUID, req CreateRoleRequest) (*RoleResponse, error) {
	exists, err := s.roleRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Role with this name already exists")
	}

	caps, err := capabilitiesFromStrings(req.Capabilities)
	if err != nil {
		return nil, err
	}

	role, err := identity.NewRole(tenantID, req.Name, caps)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := role.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		role.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}

	response := ToRoleResponse(role)
	return &response, nil
}

// GetByID retrieves a role by ID
func (s *RoleService) GetByID(ctx context.Context, tenantID, roleID uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, tenantID, roleID)
	if err != nil {
		return nil, err
	}

	response := ToRoleResponse(role)
	return &response, nil
}

// List retrieves roles with filtering and pagination
func (s *RoleService) List(ctx context.Context, tenantID uuid.UUID, filter RoleListFilter) (*shared.Paginated[RoleResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	domainFilter.IncludeDeleted = filter.IncludeDeleted

	roles, err := s.roleRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.roleRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToRoleResponses(roles), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Capabilities returns the full set of assignable capabilities
func (s *RoleService) Capabilities() []string {
	all := identity.AllCapabilities()
	out := make([]string, len(all))
	for i, c := range all {
		out[i] = string(c)
	}
	return out
}

// Update applies a partial update guarded by the version the caller read
func (s *RoleService) Update(ctx context.Context, tenantID, roleID uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByIDIncludingDeleted(ctx, tenantID, roleID)
	if err != nil {
		return nil, err
	}
	if role.IsDeleted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Record is deleted and must be restored before modification")
	}
	if err := role.CheckVersion(req.Version); err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := role.Name
		description := role.Description
		if req.Name != nil {
			if *req.Name != role.Name {
				exists, err := s.roleRepo.ExistsByName(ctx, tenantID, *req.Name)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, shared.NewDomainError("ALREADY_EXISTS", "Role with this name already exists")
				}
			}
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := role.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Capabilities != nil {
		caps, err := capabilitiesFromStrings(*req.Capabilities)
		if err != nil {
			return nil, err
		}
		if err := role.SetCapabilities(caps); err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.UpdateWithVersion(ctx, role); err != nil {
		return nil, err
	}

	response := ToRoleResponse(role)
	return &response, nil
}

// Delete soft-deletes a role guarded by the version the caller read.
// System roles cannot be deleted.
func (s *RoleService) Delete(ctx context.Context, tenantID, roleID uuid.UUID, version int) error {
	role, err := s.roleRepo.FindByIDIncludingDeleted(ctx, tenantID, roleID)
	if err != nil {
		return err
	}
	if role.IsDeleted() {
		return shared.NewDomainError("ALREADY_DELETED", "Record is already deleted")
	}
	if role.IsSystem {
		return shared.NewDomainError("INVALID_STATE", "System roles cannot be deleted")
	}
	if err := role.CheckVersion(version); err != nil {
		return err
	}
	if err := role.SoftDelete(); err != nil {
		return err
	}

	return s.roleRepo.UpdateWithVersion(ctx, role)
}

// Restore clears the soft-delete marker on a deleted role
func (s *RoleService) Restore(ctx context.Context, tenantID, roleID uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByIDIncludingDeleted(ctx, tenantID, roleID)
	if err != nil {
		return nil, err
	}
	if err := role.Restore(); err != nil {
		return nil, err
	}

	if err := s.roleRepo.UpdateWithVersion(ctx, role); err != nil {
		return nil, err
	}

	response := ToRoleResponse(role)
	return &response, nil
}
