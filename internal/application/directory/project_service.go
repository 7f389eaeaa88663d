package directory

import (
	"context"

	"github.com/adminhub/backend/internal/domain/directory"
	"github.com/adminhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectService handles project-related business operations
type ProjectService struct {
	projectRepo directory.ProjectRepository
	clientRepo  directory.ClientRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo directory.ProjectRepository, clientRepo directory.ClientRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
	}
}

// Create creates a new project in planning status
func (s *ProjectService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProjectRequest) (*ProjectResponse, error) {
	exists, err := s.projectRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Project with this code already exists")
	}

	project, err := directory.NewProject(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := project.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.ClientID != nil {
		// The referenced client must exist within the same tenant
		if _, err := s.clientRepo.FindByID(ctx, tenantID, *req.ClientID); err != nil {
			return nil, err
		}
		if err := project.SetClient(req.ClientID); err != nil {
			return nil, err
		}
	}
	if req.Budget != nil {
		if err := project.SetBudget(*req.Budget); err != nil {
			return nil, err
		}
	}
	if req.StartDate != nil || req.DueDate != nil {
		if err := project.SetSchedule(req.StartDate, req.DueDate); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		project.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	response := ToProjectResponse(project)
	return &response, nil
}

// GetByID retrieves a project by ID
func (s *ProjectService) GetByID(ctx context.Context, tenantID, projectID uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	response := ToProjectResponse(project)
	return &response, nil
}

// GetByCode retrieves a project by code
func (s *ProjectService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}

	response := ToProjectResponse(project)
	return &response, nil
}

// List retrieves projects with filtering and pagination
func (s *ProjectService) List(ctx context.Context, tenantID uuid.UUID, filter ProjectListFilter) (*shared.Paginated[ProjectResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search, filter.IncludeDeleted)
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.ClientID != "" {
		domainFilter.Filters["client_id"] = filter.ClientID
	}

	projects, err := s.projectRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.projectRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProjectResponses(projects), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update applies a partial update guarded by the version the caller read.
// A status patch is validated against the transition table before the
// conditional write; an illegal transition fails even when the version
// matches.
func (s *ProjectService) Update(ctx context.Context, tenantID, projectID uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByIDIncludingDeleted(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	if project.IsDeleted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Record is deleted and must be restored before modification")
	}
	if err := project.CheckVersion(req.Version); err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := project.Name
		description := project.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := project.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.ClearClient {
		if err := project.SetClient(nil); err != nil {
			return nil, err
		}
	} else if req.ClientID != nil {
		if _, err := s.clientRepo.FindByID(ctx, tenantID, *req.ClientID); err != nil {
			return nil, err
		}
		if err := project.SetClient(req.ClientID); err != nil {
			return nil, err
		}
	}

	if req.Status != nil && directory.ProjectStatus(*req.Status) != project.Status {
		if err := project.ChangeStatus(directory.ProjectStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if req.Budget != nil {
		if err := project.SetBudget(*req.Budget); err != nil {
			return nil, err
		}
	}

	if req.StartDate != nil || req.DueDate != nil {
		start := project.StartDate
		due := project.DueDate
		if req.StartDate != nil {
			start = req.StartDate
		}
		if req.DueDate != nil {
			due = req.DueDate
		}
		if err := project.SetSchedule(start, due); err != nil {
			return nil, err
		}
	}

	if err := s.projectRepo.UpdateWithVersion(ctx, project); err != nil {
		return nil, err
	}

	response := ToProjectResponse(project)
	return &response, nil
}

// Delete soft-deletes a project guarded by the version the caller read
func (s *ProjectService) Delete(ctx context.Context, tenantID, projectID uuid.UUID, version int) error {
	project, err := s.projectRepo.FindByIDIncludingDeleted(ctx, tenantID, projectID)
	if err != nil {
		return err
	}
	if project.IsDeleted() {
		return shared.NewDomainError("ALREADY_DELETED", "Record is already deleted")
	}
	if err := project.CheckVersion(version); err != nil {
		return err
	}
	if err := project.SoftDelete(); err != nil {
		return err
	}

	return s.projectRepo.UpdateWithVersion(ctx, project)
}

// Restore clears the soft-delete marker on a deleted project
func (s *ProjectService) Restore(ctx context.Context, tenantID, projectID uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByIDIncludingDeleted(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	if err := project.Restore(); err != nil {
		return nil, err
	}

	if err := s.projectRepo.UpdateWithVersion(ctx, project); err != nil {
		return nil, err
	}

	response := ToProjectResponse(project)
	return &response, nil
}
