package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adminhub/backend/internal/domain/directory"
	"github.com/adminhub/backend/internal/domain/identity"
)

func TestService_GetSummary(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("aggregates counts per status", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		clientRepo := new(MockClientRepository)
		projectRepo := new(MockProjectRepository)
		userRepo := new(MockUserRepository)
		service := NewService(companyRepo, clientRepo, projectRepo, userRepo)

		companyRepo.On("CountByStatus", ctx, tenantID, directory.CompanyStatusActive).Return(int64(3), nil)
		companyRepo.On("CountByStatus", ctx, tenantID, directory.CompanyStatusInactive).Return(int64(1), nil)
		clientRepo.On("CountByStatus", ctx, tenantID, mock.AnythingOfType("directory.ClientStatus")).Return(int64(2), nil)
		projectRepo.On("CountByStatus", ctx, tenantID, directory.ProjectStatusPlanning).Return(int64(4), nil)
		projectRepo.On("CountByStatus", ctx, tenantID, directory.ProjectStatusActive).Return(int64(5), nil)
		projectRepo.On("CountByStatus", ctx, tenantID, directory.ProjectStatusCompleted).Return(int64(6), nil)
		projectRepo.On("CountByStatus", ctx, tenantID, directory.ProjectStatusCancelled).Return(int64(0), nil)
		userRepo.On("CountByStatus", ctx, tenantID, mock.AnythingOfType("identity.UserStatus")).Return(int64(1), nil)

		summary, err := service.GetSummary(ctx, tenantID)
		require.NoError(t, err)

		assert.Equal(t, int64(4), summary.Companies.Total)
		assert.Equal(t, int64(3), summary.Companies.ByStatus["active"])
		assert.Equal(t, int64(4), summary.Clients.Total)
		assert.Equal(t, int64(15), summary.Projects.Total)
		assert.Equal(t, int64(6), summary.Projects.ByStatus["completed"])
		assert.Equal(t, int64(4), summary.Users.Total)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		service := NewService(companyRepo, new(MockClientRepository), new(MockProjectRepository), new(MockUserRepository))

		companyRepo.On("CountByStatus", ctx, tenantID, mock.AnythingOfType("directory.CompanyStatus")).
			Return(int64(0), errors.New("connection reset"))

		_, err := service.GetSummary(ctx, tenantID)
		require.Error(t, err)
	})

	t.Run("users broken down by lifecycle status", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		clientRepo := new(MockClientRepository)
		projectRepo := new(MockProjectRepository)
		userRepo := new(MockUserRepository)
		service := NewService(companyRepo, clientRepo, projectRepo, userRepo)

		companyRepo.On("CountByStatus", ctx, tenantID, mock.AnythingOfType("directory.CompanyStatus")).Return(int64(0), nil)
		clientRepo.On("CountByStatus", ctx, tenantID, mock.AnythingOfType("directory.ClientStatus")).Return(int64(0), nil)
		projectRepo.On("CountByStatus", ctx, tenantID, mock.AnythingOfType("directory.ProjectStatus")).Return(int64(0), nil)
		userRepo.On("CountByStatus", ctx, tenantID, identity.UserStatusActive).Return(int64(7), nil)
		userRepo.On("CountByStatus", ctx, tenantID, identity.UserStatusPending).Return(int64(2), nil)
		userRepo.On("CountByStatus", ctx, tenantID, identity.UserStatusLocked).Return(int64(1), nil)
		userRepo.On("CountByStatus", ctx, tenantID, identity.UserStatusDeactivated).Return(int64(0), nil)

		summary, err := service.GetSummary(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), summary.Users.Total)
		assert.Equal(t, int64(7), summary.Users.ByStatus["active"])
	})
}

type stubSummaryCache struct {
	stored  map[uuid.UUID]*Summary
	setTTL  time.Duration
	getErr  error
	setCall int
}

func newStubSummaryCache() *stubSummaryCache {
	return &stubSummaryCache{stored: make(map[uuid.UUID]*Summary)}
}

func (c *stubSummaryCache) Get(_ context.Context, tenantID uuid.UUID) (*Summary, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	s, ok := c.stored[tenantID]
	return s, ok, nil
}

func (c *stubSummaryCache) Set(_ context.Context, tenantID uuid.UUID, summary *Summary, ttl time.Duration) error {
	c.stored[tenantID] = summary
	c.setTTL = ttl
	c.setCall++
	return nil
}

func TestService_GetSummary_Cache(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	newMockedService := func(cache SummaryCache) (*Service, *MockCompanyRepository) {
		companyRepo := new(MockCompanyRepository)
		clientRepo := new(MockClientRepository)
		projectRepo := new(MockProjectRepository)
		userRepo := new(MockUserRepository)
		companyRepo.On("CountByStatus", ctx, tenantID, mock.AnythingOfType("directory.CompanyStatus")).Return(int64(1), nil)
		clientRepo.On("CountByStatus", ctx, tenantID, mock.AnythingOfType("directory.ClientStatus")).Return(int64(1), nil)
		projectRepo.On("CountByStatus", ctx, tenantID, mock.AnythingOfType("directory.ProjectStatus")).Return(int64(1), nil)
		userRepo.On("CountByStatus", ctx, tenantID, mock.AnythingOfType("identity.UserStatus")).Return(int64(1), nil)
		return NewService(companyRepo, clientRepo, projectRepo, userRepo,
			WithCache(cache, time.Minute)), companyRepo
	}

	t.Run("second call is served from the cache", func(t *testing.T) {
		cache := newStubSummaryCache()
		service, companyRepo := newMockedService(cache)

		first, err := service.GetSummary(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.setCall)
		assert.Equal(t, time.Minute, cache.setTTL)

		second, err := service.GetSummary(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		// Each entity has two company statuses counted exactly once.
		companyRepo.AssertNumberOfCalls(t, "CountByStatus", 2)
	})

	t.Run("cache read failure falls through to the repositories", func(t *testing.T) {
		cache := newStubSummaryCache()
		cache.getErr = errors.New("connection refused")
		service, _ := newMockedService(cache)

		summary, err := service.GetSummary(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), summary.Companies.Total)
	})
}
