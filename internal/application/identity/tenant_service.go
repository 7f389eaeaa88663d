package identity

import (
	"context"

	"github.com/adminhub/backend/internal/domain/identity"
	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantService handles tenant provisioning
type TenantService struct {
	tenantRepo identity.TenantRepository
	userRepo   identity.UserRepository
	roleRepo   identity.RoleRepository
	logger     *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		logger:     logger,
	}
}

// Provision creates a tenant together with its system admin role and the
// initial administrator account.
func (s *TenantService) Provision(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	exists, err := s.tenantRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant with this code already exists")
	}

	tenant, err := identity.NewTenant(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	adminRole, err := identity.NewRole(tenant.ID, "Administrator", identity.AllCapabilities())
	if err != nil {
		return nil, err
	}
	adminRole.IsSystem = true
	if err := s.roleRepo.Create(ctx, adminRole); err != nil {
		return nil, err
	}

	admin, err := identity.NewUser(tenant.ID, req.AdminUsername, req.AdminEmail, req.AdminPassword)
	if err != nil {
		return nil, err
	}
	if err := admin.AssignRoles([]uuid.UUID{adminRole.ID}); err != nil {
		return nil, err
	}
	if err := admin.Activate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("Tenant provisioned",
		zap.String("tenant_code", tenant.Code),
		zap.String("tenant_id", tenant.ID.String()))

	response := ToTenantResponse(tenant)
	return &response, nil
}

// GetByCode retrieves a tenant by its code
func (s *TenantService) GetByCode(ctx context.Context, code string) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}
