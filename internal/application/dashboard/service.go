package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adminhub/backend/internal/domain/directory"
	"github.com/adminhub/backend/internal/domain/identity"
)

// SummaryCache caches computed summaries per tenant. A miss returns
// (nil, false, nil); store errors surface so the caller can decide to
// fall through to the repositories.
type SummaryCache interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*Summary, bool, error)
	Set(ctx context.Context, tenantID uuid.UUID, summary *Summary, ttl time.Duration) error
}

// Option configures optional Service behavior
type Option func(*Service)

// WithCache enables summary caching with the given TTL
func WithCache(cache SummaryCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// Service aggregates per-tenant counts for the dashboard
type Service struct {
	companyRepo directory.CompanyRepository
	clientRepo  directory.ClientRepository
	projectRepo directory.ProjectRepository
	userRepo    identity.UserRepository
	cache       SummaryCache
	cacheTTL    time.Duration
}

// NewService creates a new dashboard Service
func NewService(
	companyRepo directory.CompanyRepository,
	clientRepo directory.ClientRepository,
	projectRepo directory.ProjectRepository,
	userRepo identity.UserRepository,
	opts ...Option,
) *Service {
	s := &Service{
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSummary returns entity totals and status breakdowns for the tenant.
// Soft-deleted records are not counted. With a cache configured, a fresh
// snapshot is served from it; cache failures fall through to the counts.
func (s *Service) GetSummary(ctx context.Context, tenantID uuid.UUID) (*Summary, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, tenantID); err == nil && ok {
			return cached, nil
		}
	}

	summary, err := s.computeSummary(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Best effort; a failed write only costs the next caller a recount.
		_ = s.cache.Set(ctx, tenantID, summary, s.cacheTTL)
	}
	return summary, nil
}

func (s *Service) computeSummary(ctx context.Context, tenantID uuid.UUID) (*Summary, error) {
	companies, err := s.companySummary(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientSummary(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectSummary(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	users, err := s.userSummary(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Companies: companies,
		Clients:   clients,
		Projects:  projects,
		Users:     users,
	}, nil
}

func (s *Service) companySummary(ctx context.Context, tenantID uuid.UUID) (EntitySummary, error) {
	summary := EntitySummary{ByStatus: StatusBreakdown{}}
	for _, status := range []directory.CompanyStatus{
		directory.CompanyStatusActive,
		directory.CompanyStatusInactive,
	} {
		count, err := s.companyRepo.CountByStatus(ctx, tenantID, status)
		if err != nil {
			return EntitySummary{}, err
		}
		summary.ByStatus[string(status)] = count
		summary.Total += count
	}
	return summary, nil
}

func (s *Service) clientSummary(ctx context.Context, tenantID uuid.UUID) (EntitySummary, error) {
	summary := EntitySummary{ByStatus: StatusBreakdown{}}
	for _, status := range []directory.ClientStatus{
		directory.ClientStatusActive,
		directory.ClientStatusInactive,
	} {
		count, err := s.clientRepo.CountByStatus(ctx, tenantID, status)
		if err != nil {
			return EntitySummary{}, err
		}
		summary.ByStatus[string(status)] = count
		summary.Total += count
	}
	return summary, nil
}

func (s *Service) projectSummary(ctx context.Context, tenantID uuid.UUID) (EntitySummary, error) {
	summary := EntitySummary{ByStatus: StatusBreakdown{}}
	for _, status := range []directory.ProjectStatus{
		directory.ProjectStatusPlanning,
		directory.ProjectStatusActive,
		directory.ProjectStatusCompleted,
		directory.ProjectStatusCancelled,
	} {
		count, err := s.projectRepo.CountByStatus(ctx, tenantID, status)
		if err != nil {
			return EntitySummary{}, err
		}
		summary.ByStatus[string(status)] = count
		summary.Total += count
	}
	return summary, nil
}

func (s *Service) userSummary(ctx context.Context, tenantID uuid.UUID) (EntitySummary, error) {
	summary := EntitySummary{ByStatus: StatusBreakdown{}}
	for _, status := range []identity.UserStatus{
		identity.UserStatusPending,
		identity.UserStatusActive,
		identity.UserStatusLocked,
		identity.UserStatusDeactivated,
	} {
		count, err := s.userRepo.CountByStatus(ctx, tenantID, status)
		if err != nil {
			return EntitySummary{}, err
		}
		summary.ByStatus[string(status)] = count
		summary.Total += count
	}
	return summary, nil
}
