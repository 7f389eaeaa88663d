package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapability_Valid(t *testing.T) {
	t.Run("known capabilities are valid", func(t *testing.T) {
		for _, c := range AllCapabilities() {
			assert.True(t, c.Valid(), string(c))
		}
	})

	t.Run("unknown capability is invalid", func(t *testing.T) {
		assert.False(t, Capability("company:*").Valid())
		assert.False(t, Capability("").Valid())
	})
}

func TestNewRole(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates role with version 1", func(t *testing.T) {
		role, err := NewRole(tenantID, "Editor", []Capability{CapProjectWrite, CapProjectRead})
		require.NoError(t, err)

		assert.Equal(t, "Editor", role.Name)
		assert.Equal(t, 1, role.Version)
		assert.True(t, role.Grants(CapProjectRead))
		assert.True(t, role.Grants(CapProjectWrite))
		assert.False(t, role.Grants(CapUserWrite))
	})

	t.Run("rejects unknown capability", func(t *testing.T) {
		_, err := NewRole(tenantID, "Editor", []Capability{"project:admin"})
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewRole(tenantID, "", nil)
		assert.Error(t, err)
	})
}

func TestRole_SetCapabilities(t *testing.T) {
	tenantID := uuid.New()

	t.Run("replaces capability set", func(t *testing.T) {
		role, err := NewRole(tenantID, "Viewer", []Capability{CapProjectRead})
		require.NoError(t, err)

		require.NoError(t, role.SetCapabilities([]Capability{CapClientRead, CapCompanyRead}))
		assert.False(t, role.Grants(CapProjectRead))
		assert.True(t, role.Grants(CapClientRead))
		assert.True(t, role.Grants(CapCompanyRead))
	})

	t.Run("system role rejects changes", func(t *testing.T) {
		role, err := NewRole(tenantID, "Admin", AllCapabilities())
		require.NoError(t, err)
		role.IsSystem = true

		assert.Error(t, role.SetCapabilities([]Capability{CapProjectRead}))
		assert.Error(t, role.Update("Administrator", ""))
	})

	t.Run("deleted role rejects changes", func(t *testing.T) {
		role, err := NewRole(tenantID, "Viewer", []Capability{CapProjectRead})
		require.NoError(t, err)
		require.NoError(t, role.SoftDelete())

		assert.Error(t, role.SetCapabilities([]Capability{CapClientRead}))
	})
}

func TestCapabilitySet_List(t *testing.T) {
	t.Run("canonical order regardless of input order", func(t *testing.T) {
		set, err := NewCapabilitySet(CapUserWrite, CapCompanyRead, CapProjectRead)
		require.NoError(t, err)

		assert.Equal(t, []Capability{CapCompanyRead, CapProjectRead, CapUserWrite}, set.List())
	})
}
