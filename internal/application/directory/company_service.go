package directory

import (
	"context"

	"github.com/adminhub/backend/internal/domain/directory"
	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyService handles company-related business operations
type CompanyService struct {
	companyRepo directory.CompanyRepository
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo directory.CompanyRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
	}
}

// Create creates a new company
func (s *CompanyService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCompanyRequest) (*CompanyResponse, error) {
	exists, err := s.companyRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Company with this code already exists")
	}

	company, err := directory.NewCompany(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Industry != "" {
		if err := company.Update(req.Name, req.Industry); err != nil {
			return nil, err
		}
	}
	if req.ContactEmail != "" || req.ContactPhone != "" {
		if err := company.SetContact(req.ContactEmail, req.ContactPhone); err != nil {
			return nil, err
		}
	}
	if req.Website != "" {
		if err := company.SetWebsite(req.Website); err != nil {
			return nil, err
		}
	}
	if req.Address != "" {
		if err := company.SetAddress(req.Address); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		company.SetNotes(req.Notes)
	}
	if req.CreatedBy != nil {
		company.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// GetByID retrieves a company by ID
func (s *CompanyService) GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// GetByCode retrieves a company by code
func (s *CompanyService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// List retrieves companies with filtering and pagination
func (s *CompanyService) List(ctx context.Context, tenantID uuid.UUID, filter CompanyListFilter) (*shared.Paginated[CompanyResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search, filter.IncludeDeleted)
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Industry != "" {
		domainFilter.Filters["industry"] = filter.Industry
	}

	companies, err := s.companyRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.companyRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToCompanyResponses(companies), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update applies a partial update guarded by the version the caller read
func (s *CompanyService) Update(ctx context.Context, tenantID, companyID uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByIDIncludingDeleted(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}
	if company.IsDeleted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Record is deleted and must be restored before modification")
	}
	if err := company.CheckVersion(req.Version); err != nil {
		return nil, err
	}

	if req.Name != nil || req.Industry != nil {
		name := company.Name
		industry := company.Industry
		if req.Name != nil {
			name = *req.Name
		}
		if req.Industry != nil {
			industry = *req.Industry
		}
		if err := company.Update(name, industry); err != nil {
			return nil, err
		}
	}

	if req.ContactEmail != nil || req.ContactPhone != nil {
		email := company.ContactEmail
		phone := company.ContactPhone
		if req.ContactEmail != nil {
			email = *req.ContactEmail
		}
		if req.ContactPhone != nil {
			phone = *req.ContactPhone
		}
		if err := company.SetContact(email, phone); err != nil {
			return nil, err
		}
	}

	if req.Website != nil {
		if err := company.SetWebsite(*req.Website); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		if err := company.SetAddress(*req.Address); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		company.SetNotes(*req.Notes)
	}

	if req.Status != nil && directory.CompanyStatus(*req.Status) != company.Status {
		switch directory.CompanyStatus(*req.Status) {
		case directory.CompanyStatusActive:
			if err := company.Activate(); err != nil {
				return nil, err
			}
		case directory.CompanyStatusInactive:
			if err := company.Deactivate(); err != nil {
				return nil, err
			}
		}
	}

	if err := s.companyRepo.UpdateWithVersion(ctx, company); err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// Delete soft-deletes a company guarded by the version the caller read
func (s *CompanyService) Delete(ctx context.Context, tenantID, companyID uuid.UUID, version int) error {
	company, err := s.companyRepo.FindByIDIncludingDeleted(ctx, tenantID, companyID)
	if err != nil {
		return err
	}
	if company.IsDeleted() {
		return shared.NewDomainError("ALREADY_DELETED", "Record is already deleted")
	}
	if err := company.CheckVersion(version); err != nil {
		return err
	}
	if err := company.SoftDelete(); err != nil {
		return err
	}

	return s.companyRepo.UpdateWithVersion(ctx, company)
}

// Restore clears the soft-delete marker on a deleted company
func (s *CompanyService) Restore(ctx context.Context, tenantID, companyID uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByIDIncludingDeleted(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}
	if err := company.Restore(); err != nil {
		return nil, err
	}

	if err := s.companyRepo.UpdateWithVersion(ctx, company); err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// buildFilter normalizes pagination and ordering inputs shared by the list
// endpoints in this package.
func buildFilter(page, pageSize int, orderBy, orderDir, search string, includeDeleted bool) shared.Filter {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	if orderBy != "" {
		f.OrderBy = orderBy
	}
	if orderDir != "" {
		f.OrderDir = orderDir
	}
	f.Search = search
	f.IncludeDeleted = includeDeleted
	return f
}
