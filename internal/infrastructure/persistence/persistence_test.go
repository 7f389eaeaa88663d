package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adminhub/backend/internal/domain/assistant"
	"github.com/adminhub/backend/internal/domain/directory"
	"github.com/adminhub/backend/internal/domain/identity"
)

// newTestDB creates an in-memory database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.Tenant{},
		&identity.User{},
		&identity.Role{},
		&directory.Company{},
		&directory.Client{},
		&directory.Project{},
		&assistant.Conversation{},
		&assistant.Message{},
	))

	return db
}
