package persistence

import (
	"context"
	"testing"

	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRolePermissionRepository_BulkGrant(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormRolePermissionRepository(db)
	companyID := uuid.New()

	require.NoError(t, repo.BulkGrant(ctx, identity.FullGrantSet(companyID, identity.RoleAdmin)))

	grants, err := repo.FindByCompanyAndRole(ctx, companyID, identity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, grants, 32)

	t.Run("regrant is idempotent", func(t *testing.T) {
		require.NoError(t, repo.BulkGrant(ctx, identity.FullGrantSet(companyID, identity.RoleAdmin)))

		grants, err := repo.FindByCompanyAndRole(ctx, companyID, identity.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, grants, 32)
	})
}

func TestGormRolePermissionRepository_ExistsAndRevoke(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormRolePermissionRepository(db)
	companyID := uuid.New()

	grant, err := identity.NewRolePermission(companyID, identity.RoleMember, identity.ResourceVehicles, identity.ActionView)
	require.NoError(t, err)
	require.NoError(t, repo.Grant(ctx, grant))

	exists, err := repo.Exists(ctx, companyID, identity.RoleMember, identity.ResourceVehicles, identity.ActionView)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, companyID, identity.RoleMember, identity.ResourceVehicles, identity.ActionEdit)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.Exists(ctx, companyID, identity.RoleAdmin, identity.ResourceVehicles, identity.ActionView)
	require.NoError(t, err)
	assert.False(t, exists, "grants are scoped per role")

	require.NoError(t, repo.Revoke(ctx, companyID, identity.RoleMember, identity.ResourceVehicles, identity.ActionView))

	exists, err = repo.Exists(ctx, companyID, identity.RoleMember, identity.ResourceVehicles, identity.ActionView)
	require.NoError(t, err)
	assert.False(t, exists)
}
