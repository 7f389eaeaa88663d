package identity

import (
	"context"

	"github.com/adminhub/backend/internal/domain/identity"
	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService handles user administration operations
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, tenantID, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this username already exists")
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
	}

	user, err := identity.NewUser(tenantID, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != "" {
		if err := user.Update(req.DisplayName, req.Email); err != nil {
			return nil, err
		}
	}
	if len(req.RoleIDs) > 0 {
		if err := s.verifyRolesExist(ctx, tenantID, req.RoleIDs); err != nil {
			return nil, err
		}
		if err := user.AssignRoles(req.RoleIDs); err != nil {
			return nil, err
		}
	}
	if req.Activate {
		if err := user.Activate(); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		user.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users with filtering and pagination
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter UserListFilter) (*shared.Paginated[UserResponse], error) {
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	users, err := s.userRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToUserResponses(users), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update applies a partial update guarded by the version the caller read
func (s *UserService) Update(ctx context.Context, tenantID, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDIncludingDeleted(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Record is deleted and must be restored before modification")
	}
	if err := user.CheckVersion(req.Version); err != nil {
		return nil, err
	}

	if req.DisplayName != nil || req.Email != nil {
		displayName := user.DisplayName
		email := user.Email
		if req.DisplayName != nil {
			displayName = *req.DisplayName
		}
		if req.Email != nil {
			if *req.Email != user.Email {
				exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, *req.Email)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
				}
			}
			email = *req.Email
		}
		if err := user.Update(displayName, email); err != nil {
			return nil, err
		}
	}

	if req.RoleIDs != nil {
		if err := s.verifyRolesExist(ctx, tenantID, *req.RoleIDs); err != nil {
			return nil, err
		}
		if err := user.AssignRoles(*req.RoleIDs); err != nil {
			return nil, err
		}
	}

	if req.Status != nil && identity.UserStatus(*req.Status) != user.Status {
		if err := s.applyStatus(user, identity.UserStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateWithVersion(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Delete soft-deletes a user guarded by the version the caller read
func (s *UserService) Delete(ctx context.Context, tenantID, userID uuid.UUID, version int) error {
	user, err := s.userRepo.FindByIDIncludingDeleted(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if user.IsDeleted() {
		return shared.NewDomainError("ALREADY_DELETED", "Record is already deleted")
	}
	if err := user.CheckVersion(version); err != nil {
		return err
	}
	if err := user.SoftDelete(); err != nil {
		return err
	}

	return s.userRepo.UpdateWithVersion(ctx, user)
}

// Restore clears the soft-delete marker on a deleted user
func (s *UserService) Restore(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDIncludingDeleted(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if err := user.Restore(); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateWithVersion(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

func (s *UserService) applyStatus(user *identity.User, status identity.UserStatus) error {
	switch status {
	case identity.UserStatusActive:
		if user.Status == identity.UserStatusLocked {
			return user.Unlock()
		}
		return user.Activate()
	case identity.UserStatusLocked:
		return user.Lock()
	case identity.UserStatusDeactivated:
		return user.Deactivate()
	default:
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid user status")
	}
}

func (s *UserService) verifyRolesExist(ctx context.Context, tenantID uuid.UUID, roleIDs []uuid.UUID) error {
	if len(roleIDs) == 0 {
		return nil
	}
	roles, err := s.roleRepo.FindByIDs(ctx, tenantID, roleIDs)
	if err != nil {
		return err
	}
	if len(roles) != len(roleIDs) {
		return shared.NewDomainError("VALIDATION_ERROR", "One or more roles do not exist")
	}
	return nil
}
