package identity

import (
	"context"
	"testing"

	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/fleetcore/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupPermissionTest(t *testing.T) (*PermissionService, *persistence.Database) {
	t.Helper()

	db := testutil.OpenDB(t)
	svc := NewPermissionService(
		persistence.NewGormCompanyRepository(db.DB),
		persistence.NewGormMembershipRepository(db.DB),
		persistence.NewGormRolePermissionRepository(db.DB),
		persistence.NewGormUserRepository(db.DB),
		zap.NewNop(),
	)
	return svc, db
}

func grantPermission(t *testing.T, db *persistence.Database, companyID uuid.UUID, role identity.Role, resource identity.Resource, action identity.Action) {
	t.Helper()

	grant, err := identity.NewRolePermission(companyID, role, resource, action)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormRolePermissionRepository(db.DB).Grant(context.Background(), grant))
}

func TestPermissionService_HasPermission(t *testing.T) {
	ctx := context.Background()

	t.Run("company owner passes unconditionally", func(t *testing.T) {
		svc, db := setupPermissionTest(t)
		owner := seedUser(t, db, "owner@acme.example.com")
		company := seedCompany(t, db, "Acme Fleet", "ops@acme.example.com", owner.ID)

		allowed, err := svc.HasPermission(ctx, owner.ID, company.ID, identity.ResourceSettings, identity.ActionDelete)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("owner role through membership passes", func(t *testing.T) {
		svc, db := setupPermissionTest(t)
		owner := seedUser(t, db, "owner@acme.example.com")
		company := seedCompany(t, db, "Acme Fleet", "ops@acme.example.com", owner.ID)
		coOwner := seedUser(t, db, "co.owner@acme.example.com")
		seedMembership(t, db, coOwner.ID, company.ID, identity.RoleOwner)

		allowed, err := svc.HasPermission(ctx, coOwner.ID, company.ID, identity.ResourceReports, identity.ActionEdit)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("member resolves through the grant table", func(t *testing.T) {
		svc, db := setupPermissionTest(t)
		owner := seedUser(t, db, "owner@acme.example.com")
		company := seedCompany(t, db, "Acme Fleet", "ops@acme.example.com", owner.ID)
		member := seedUser(t, db, "member@acme.example.com")
		seedMembership(t, db, member.ID, company.ID, identity.RoleMember)
		grantPermission(t, db, company.ID, identity.RoleMember, identity.ResourceVehicles, identity.ActionView)

		allowed, err := svc.HasPermission(ctx, member.ID, company.ID, identity.ResourceVehicles, identity.ActionView)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = svc.HasPermission(ctx, member.ID, company.ID, identity.ResourceVehicles, identity.ActionEdit)
		require.NoError(t, err)
		assert.False(t, allowed, "no grant for edit")
	})

	t.Run("no membership denies without error", func(t *testing.T) {
		svc, db := setupPermissionTest(t)
		owner := seedUser(t, db, "owner@acme.example.com")
		company := seedCompany(t, db, "Acme Fleet", "ops@acme.example.com", owner.ID)
		stranger := seedUser(t, db, "stranger@other.example.com")

		allowed, err := svc.HasPermission(ctx, stranger.ID, company.ID, identity.ResourceVehicles, identity.ActionView)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("unknown company denies without error", func(t *testing.T) {
		svc, db := setupPermissionTest(t)
		user := seedUser(t, db, "user@acme.example.com")

		allowed, err := svc.HasPermission(ctx, user.ID, uuid.New(), identity.ResourceVehicles, identity.ActionView)
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestPermissionService_HasInventoryPermission(t *testing.T) {
	ctx := context.Background()
	svc, db := setupPermissionTest(t)

	owner := seedUser(t, db, "owner@acme.example.com")
	company := seedCompany(t, db, "Acme Fleet", "ops@acme.example.com", owner.ID)
	member := seedUser(t, db, "member@acme.example.com")
	seedMembership(t, db, member.ID, company.ID, identity.RoleMember)
	grantPermission(t, db, company.ID, identity.RoleMember, identity.ResourcePartsInventory, identity.ActionEdit)

	allowed, err := svc.HasInventoryPermission(ctx, member.ID, company.ID, identity.ActionEdit)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.HasInventoryPermission(ctx, member.ID, company.ID, identity.ActionDelete)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPermissionService_IsGlobalAdmin(t *testing.T) {
	ctx := context.Background()
	svc, db := setupPermissionTest(t)

	regular := seedUser(t, db, "user@acme.example.com")

	admin, err := identity.NewProvisionedUser("root@fleetcore.example.com", "", "")
	require.NoError(t, err)
	admin.IsGlobalAdmin = true
	require.NoError(t, persistence.NewGormUserRepository(db.DB).Create(ctx, admin))

	got, err := svc.IsGlobalAdmin(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.IsGlobalAdmin(ctx, regular.ID)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = svc.IsGlobalAdmin(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, got)
}
