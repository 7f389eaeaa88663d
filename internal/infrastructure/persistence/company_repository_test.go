package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminhub/backend/internal/domain/directory"
	"github.com/adminhub/backend/internal/domain/shared"
)

func TestGormCompanyRepository_VersionedWrites(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("create starts at version 1 and update bumps exactly once", func(t *testing.T) {
		repo := NewGormCompanyRepository(newTestDB(t))

		company, err := directory.NewCompany(tenantID, "ACME", "Acme Corp")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, company))
		assert.Equal(t, 1, company.Version)

		require.NoError(t, company.Update("Acme Corporation", "Manufacturing"))
		require.NoError(t, repo.UpdateWithVersion(ctx, company))
		assert.Equal(t, 2, company.Version)

		stored, err := repo.FindByID(ctx, tenantID, company.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Version)
		assert.Equal(t, "Acme Corporation", stored.Name)
	})

	t.Run("stale writer conflicts and the row is untouched", func(t *testing.T) {
		repo := NewGormCompanyRepository(newTestDB(t))

		company, err := directory.NewCompany(tenantID, "ACME", "Acme Corp")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, company))

		// Two sessions load the same row.
		first, err := repo.FindByID(ctx, tenantID, company.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, tenantID, company.ID)
		require.NoError(t, err)

		require.NoError(t, first.Update("First Writer", ""))
		require.NoError(t, repo.UpdateWithVersion(ctx, first))

		require.NoError(t, second.Update("Second Writer", ""))
		err = repo.UpdateWithVersion(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Equal(t, 1, second.Version)

		stored, err := repo.FindByID(ctx, tenantID, company.ID)
		require.NoError(t, err)
		assert.Equal(t, "First Writer", stored.Name)
		assert.Equal(t, 2, stored.Version)
	})
}

func TestGormCompanyRepository_TenantIsolation(t *testing.T) {
	ctx := context.Background()

	t.Run("lookup under another tenant reports not found", func(t *testing.T) {
		repo := NewGormCompanyRepository(newTestDB(t))
		tenantA := uuid.New()
		tenantB := uuid.New()

		company, err := directory.NewCompany(tenantA, "ACME", "Acme Corp")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, company))

		_, err = repo.FindByID(ctx, tenantB, company.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		found, err := repo.FindByID(ctx, tenantA, company.ID)
		require.NoError(t, err)
		assert.Equal(t, company.ID, found.ID)
	})

	t.Run("lists never leak across tenants", func(t *testing.T) {
		repo := NewGormCompanyRepository(newTestDB(t))
		tenantA := uuid.New()
		tenantB := uuid.New()

		companyA, err := directory.NewCompany(tenantA, "ACME", "Acme Corp")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, companyA))
		companyB, err := directory.NewCompany(tenantB, "GLOBEX", "Globex")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, companyB))

		companies, err := repo.FindAll(ctx, tenantA, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, companies, 1)
		assert.Equal(t, "ACME", companies[0].Code)
	})
}

func TestGormCompanyRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("deleted rows are hidden from default reads", func(t *testing.T) {
		repo := NewGormCompanyRepository(newTestDB(t))

		company, err := directory.NewCompany(tenantID, "ACME", "Acme Corp")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, company))

		require.NoError(t, company.SoftDelete())
		require.NoError(t, repo.UpdateWithVersion(ctx, company))

		_, err = repo.FindByID(ctx, tenantID, company.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		stored, err := repo.FindByIDIncludingDeleted(ctx, tenantID, company.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsDeleted())
		assert.Equal(t, 2, stored.Version)

		companies, err := repo.FindAll(ctx, tenantID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Empty(t, companies)

		withDeleted := shared.DefaultFilter()
		withDeleted.IncludeDeleted = true
		companies, err = repo.FindAll(ctx, tenantID, withDeleted)
		require.NoError(t, err)
		assert.Len(t, companies, 1)
	})

	t.Run("restore makes the row visible again", func(t *testing.T) {
		repo := NewGormCompanyRepository(newTestDB(t))

		company, err := directory.NewCompany(tenantID, "ACME", "Acme Corp")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, company))
		require.NoError(t, company.SoftDelete())
		require.NoError(t, repo.UpdateWithVersion(ctx, company))

		require.NoError(t, company.Restore())
		require.NoError(t, repo.UpdateWithVersion(ctx, company))

		stored, err := repo.FindByID(ctx, tenantID, company.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsDeleted())
		assert.Equal(t, 3, stored.Version)
	})

	t.Run("a deleted row still occupies its code", func(t *testing.T) {
		repo := NewGormCompanyRepository(newTestDB(t))

		company, err := directory.NewCompany(tenantID, "ACME", "Acme Corp")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, company))
		require.NoError(t, company.SoftDelete())
		require.NoError(t, repo.UpdateWithVersion(ctx, company))

		exists, err := repo.ExistsByCode(ctx, tenantID, "acme")
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestGormCompanyRepository_CountByStatus(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := NewGormCompanyRepository(newTestDB(t))

	active, err := directory.NewCompany(tenantID, "A1", "Active One")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, active))

	inactive, err := directory.NewCompany(tenantID, "I1", "Inactive One")
	require.NoError(t, err)
	require.NoError(t, inactive.Deactivate())
	require.NoError(t, repo.Create(ctx, inactive))

	count, err := repo.CountByStatus(ctx, tenantID, directory.CompanyStatusActive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountByStatus(ctx, tenantID, directory.CompanyStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
