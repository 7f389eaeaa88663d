package directory

import (
	"context"

	"github.com/adminhub/backend/internal/domain/directory"
	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo  directory.ClientRepository
	companyRepo directory.CompanyRepository
	txScope     TransactionScope
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo directory.ClientRepository, companyRepo directory.CompanyRepository, txScope TransactionScope) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		companyRepo: companyRepo,
		txScope:     txScope,
	}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, tenantID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	exists, err := s.clientRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this code already exists")
	}

	client, err := directory.NewClient(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.CompanyID != nil {
		// The referenced company must exist within the same tenant
		if _, err := s.companyRepo.FindByID(ctx, tenantID, *req.CompanyID); err != nil {
			return nil, err
		}
		if err := client.SetCompany(req.CompanyID); err != nil {
			return nil, err
		}
	}
	if req.ContactName != "" || req.Email != "" || req.Phone != "" {
		if err := client.SetContact(req.ContactName, req.Email, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		client.SetNotes(req.Notes)
	}
	if req.CreatedBy != nil {
		client.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, tenantID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByCode retrieves a client by code
func (s *ClientService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, tenantID uuid.UUID, filter ClientListFilter) (*shared.Paginated[ClientResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search, filter.IncludeDeleted)
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CompanyID != "" {
		domainFilter.Filters["company_id"] = filter.CompanyID
	}

	clients, err := s.clientRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToClientResponses(clients), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update applies a partial update guarded by the version the caller read
func (s *ClientService) Update(ctx context.Context, tenantID, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDIncludingDeleted(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	if client.IsDeleted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Record is deleted and must be restored before modification")
	}
	if err := client.CheckVersion(req.Version); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := client.Update(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.ClearCompany {
		if err := client.SetCompany(nil); err != nil {
			return nil, err
		}
	} else if req.CompanyID != nil {
		if _, err := s.companyRepo.FindByID(ctx, tenantID, *req.CompanyID); err != nil {
			return nil, err
		}
		if err := client.SetCompany(req.CompanyID); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.Email != nil || req.Phone != nil {
		contactName := client.ContactName
		email := client.Email
		phone := client.Phone
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := client.SetContact(contactName, email, phone); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		client.SetNotes(*req.Notes)
	}

	if req.Status != nil && directory.ClientStatus(*req.Status) != client.Status {
		switch directory.ClientStatus(*req.Status) {
		case directory.ClientStatusActive:
			if err := client.Activate(); err != nil {
				return nil, err
			}
		case directory.ClientStatusInactive:
			if err := client.Deactivate(); err != nil {
				return nil, err
			}
		}
	}

	if err := s.clientRepo.UpdateWithVersion(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Delete soft-deletes a client and detaches its projects in one transaction.
// Projects keep their rows; only the client reference is nulled.
func (s *ClientService) Delete(ctx context.Context, tenantID, clientID uuid.UUID, version int) error {
	client, err := s.clientRepo.FindByIDIncludingDeleted(ctx, tenantID, clientID)
	if err != nil {
		return err
	}
	if client.IsDeleted() {
		return shared.NewDomainError("ALREADY_DELETED", "Record is already deleted")
	}
	if err := client.CheckVersion(version); err != nil {
		return err
	}
	if err := client.SoftDelete(); err != nil {
		return err
	}

	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ClientRepo().UpdateWithVersion(ctx, client); err != nil {
			return err
		}
		_, err := repos.ProjectRepo().DetachClient(ctx, tenantID, clientID)
		return err
	})
}

// Restore clears the soft-delete marker on a deleted client
func (s *ClientService) Restore(ctx context.Context, tenantID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDIncludingDeleted(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	if err := client.Restore(); err != nil {
		return nil, err
	}

	if err := s.clientRepo.UpdateWithVersion(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}
