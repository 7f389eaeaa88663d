package directory

import (
	"context"

	"github.com/adminhub/backend/internal/domain/directory"
)

// TransactionScope provides transactional access to directory repositories.
// When a function is executed within a transaction scope, all repository
// operations are committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the directory repositories
// sharing one underlying transaction. Deleting a client and detaching its
// projects go through this scope so both writes land or neither does.
type TransactionalRepositories interface {
	ClientRepo() directory.ClientRepository
	ProjectRepo() directory.ProjectRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests and for callers that do not need atomicity.
type NoOpTransactionScope struct {
	clientRepo  directory.ClientRepository
	projectRepo directory.ProjectRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(clientRepo directory.ClientRepository, projectRepo directory.ProjectRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
	}
}

// Execute runs the function directly against the wrapped repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ClientRepo returns the client repository
func (s *NoOpTransactionScope) ClientRepo() directory.ClientRepository {
	return s.clientRepo
}

// ProjectRepo returns the project repository
func (s *NoOpTransactionScope) ProjectRepo() directory.ProjectRepository {
	return s.projectRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
