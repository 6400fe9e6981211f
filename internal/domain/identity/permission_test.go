package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullGrantSet(t *testing.T) {
	companyID := uuid.New()

	grants := FullGrantSet(companyID, RoleAdmin)

	assert.Len(t, grants, 32)

	seen := make(map[string]bool, len(grants))
	for _, g := range grants {
		assert.Equal(t, companyID, g.CompanyID)
		assert.Equal(t, RoleAdmin, g.Role)
		assert.NotEqual(t, uuid.Nil, g.ID)
		seen[string(g.Resource)+"/"+string(g.Action)] = true
	}

	// Every resource × action pair appears exactly once
	for _, resource := range AllResources() {
		for _, action := range AllActions() {
			assert.True(t, seen[string(resource)+"/"+string(action)],
				"missing grant for %s/%s", resource, action)
		}
	}
}

func TestNewRolePermission(t *testing.T) {
	companyID := uuid.New()

	t.Run("normalizes resource and action", func(t *testing.T) {
		grant, err := NewRolePermission(companyID, RoleMember, " Vehicles ", "VIEW")
		require.NoError(t, err)
		assert.Equal(t, ResourceVehicles, grant.Resource)
		assert.Equal(t, ActionView, grant.Action)
	})

	t.Run("rejects unknown resource", func(t *testing.T) {
		_, err := NewRolePermission(companyID, RoleMember, "spaceships", ActionView)
		assert.Error(t, err)
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		_, err := NewRolePermission(companyID, RoleMember, ResourceVehicles, "approve")
		assert.Error(t, err)
	})

	t.Run("rejects empty company", func(t *testing.T) {
		_, err := NewRolePermission(uuid.Nil, RoleMember, ResourceVehicles, ActionView)
		assert.Error(t, err)
	})
}

func TestResourceAndActionCatalogs(t *testing.T) {
	assert.Len(t, AllResources(), 8)
	assert.Len(t, AllActions(), 4)

	assert.True(t, ValidResource(ResourcePartsInventory))
	assert.False(t, ValidResource("invoices"))
	assert.True(t, ValidAction(ActionEdit))
	assert.False(t, ValidAction("read"))
}
