package persistence

import (
	"context"

	"gorm.io/gorm"

	appdirectory "github.com/adminhub/backend/internal/application/directory"
	"github.com/adminhub/backend/internal/domain/directory"
)

// GormDirectoryTransactionScope runs directory repository operations inside a
// single database transaction
type GormDirectoryTransactionScope struct {
	db *gorm.DB
}

// NewGormDirectoryTransactionScope creates a new GormDirectoryTransactionScope
func NewGormDirectoryTransactionScope(db *gorm.DB) *GormDirectoryTransactionScope {
	return &GormDirectoryTransactionScope{db: db}
}

// Execute runs the function with repositories bound to one transaction.
// An error from the function rolls back every write made through them.
func (s *GormDirectoryTransactionScope) Execute(ctx context.Context, fn func(repos appdirectory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) ClientRepo() directory.ClientRepository {
	return NewGormClientRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProjectRepo() directory.ProjectRepository {
	return NewGormProjectRepository(r.tx)
}

var _ appdirectory.TransactionScope = (*GormDirectoryTransactionScope)(nil)
