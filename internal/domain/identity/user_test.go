package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates pending user with version 1", func(t *testing.T) {
		user, err := NewUser(tenantID, "JDoe", "JDoe@Example.COM", "s3cret-pass")
		require.NoError(t, err)

		assert.Equal(t, "jdoe", user.Username)
		assert.Equal(t, "jdoe@example.com", user.Email)
		assert.Equal(t, UserStatusPending, user.Status)
		assert.Equal(t, 1, user.Version)
		assert.True(t, user.VerifyPassword("s3cret-pass"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(tenantID, "jdoe", "jdoe@example.com", "short")
		assert.Error(t, err)
	})

	t.Run("rejects invalid username", func(t *testing.T) {
		_, err := NewUser(tenantID, "j d", "jdoe@example.com", "s3cret-pass")
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser(tenantID, "jdoe", "not-an-email", "s3cret-pass")
		assert.Error(t, err)
	})
}

func TestUser_StatusTransitions(t *testing.T) {
	tenantID := uuid.New()

	newActiveUser := func(t *testing.T) *User {
		user, err := NewUser(tenantID, "jdoe", "jdoe@example.com", "s3cret-pass")
		require.NoError(t, err)
		require.NoError(t, user.Activate())
		return user
	}

	t.Run("pending user cannot login until activated", func(t *testing.T) {
		user, err := NewUser(tenantID, "jdoe", "jdoe@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.False(t, user.CanLogin())

		require.NoError(t, user.Activate())
		assert.True(t, user.CanLogin())
	})

	t.Run("lock and unlock", func(t *testing.T) {
		user := newActiveUser(t)

		require.NoError(t, user.Lock())
		assert.False(t, user.CanLogin())

		require.NoError(t, user.Unlock())
		assert.True(t, user.CanLogin())
	})

	t.Run("unlock of non-locked user fails", func(t *testing.T) {
		user := newActiveUser(t)
		assert.Error(t, user.Unlock())
	})

	t.Run("deleted user rejects transitions and cannot login", func(t *testing.T) {
		user := newActiveUser(t)
		require.NoError(t, user.SoftDelete())

		assert.Error(t, user.Deactivate())
		assert.False(t, user.CanLogin())
	})
}

func TestUser_AssignRoles(t *testing.T) {
	tenantID := uuid.New()

	t.Run("deduplicates role IDs", func(t *testing.T) {
		user, err := NewUser(tenantID, "jdoe", "jdoe@example.com", "s3cret-pass")
		require.NoError(t, err)

		roleID := uuid.New()
		require.NoError(t, user.AssignRoles([]uuid.UUID{roleID, roleID}))
		assert.Len(t, user.RoleIDs, 1)
		assert.True(t, user.HasRole(roleID))
	})

	t.Run("rejects nil role ID", func(t *testing.T) {
		user, err := NewUser(tenantID, "jdoe", "jdoe@example.com", "s3cret-pass")
		require.NoError(t, err)

		assert.Error(t, user.AssignRoles([]uuid.UUID{uuid.Nil}))
	})
}

func TestUser_ChangePassword(t *testing.T) {
	tenantID := uuid.New()

	t.Run("replaces hash", func(t *testing.T) {
		user, err := NewUser(tenantID, "jdoe", "jdoe@example.com", "s3cret-pass")
		require.NoError(t, err)

		require.NoError(t, user.ChangePassword("an0ther-pass"))
		assert.True(t, user.VerifyPassword("an0ther-pass"))
		assert.False(t, user.VerifyPassword("s3cret-pass"))
	})
}
