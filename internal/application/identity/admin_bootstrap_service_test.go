package identity

import (
	"context"
	"testing"

	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/fleetcore/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupBootstrapTest(t *testing.T) (*AdminBootstrapService, *persistence.Database) {
	t.Helper()

	db := testutil.OpenDB(t)
	svc := NewAdminBootstrapService(
		db,
		persistence.NewGormUserRepository(db.DB),
		persistence.NewGormCompanyRepository(db.DB),
		persistence.NewGormMembershipRepository(db.DB),
		newTestAuditService(db),
		zap.NewNop(),
	)
	return svc, db
}

func adminAuditOutcomes(t *testing.T, db *persistence.Database, callerID uuid.UUID) []string {
	t.Helper()

	entries, err := persistence.NewGormAdminAuditLogRepository(db.DB).
		FindByCaller(context.Background(), callerID, shared.DefaultFilter())
	require.NoError(t, err)

	outcomes := make([]string, len(entries))
	for i, e := range entries {
		assert.Equal(t, "promote_to_admin", e.Operation)
		outcomes[i] = e.Outcome
	}
	return outcomes
}

func TestAdminBootstrapService_PromoteToAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes the matching caller and seeds the full grant set", func(t *testing.T) {
		svc, db := setupBootstrapTest(t)
		owner := seedUser(t, db, "owner@acme.example.com")
		company := seedCompany(t, db, "Acme Fleet", "ops@acme.example.com", owner.ID)
		caller := seedUser(t, db, "ops@acme.example.com")

		res, err := svc.PromoteToAdmin(ctx, caller.ID)
		require.NoError(t, err)

		assert.True(t, res.Success)
		require.NotNil(t, res.CompanyID)
		assert.Equal(t, company.ID, *res.CompanyID)

		membership, err := persistence.NewGormMembershipRepository(db.DB).
			FindByUserAndCompany(ctx, caller.ID, company.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleAdmin, membership.Role)

		grants, err := persistence.NewGormRolePermissionRepository(db.DB).
			FindByCompanyAndRole(ctx, company.ID, identity.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, grants, 32)

		promoted, err := persistence.NewGormUserRepository(db.DB).FindByID(ctx, caller.ID)
		require.NoError(t, err)
		require.NotNil(t, promoted.CompanyID)
		assert.Equal(t, company.ID, *promoted.CompanyID)
		assert.False(t, promoted.IsGlobalAdmin, "promotion must not touch is_global_admin")

		assert.Equal(t, []string{"success"}, adminAuditOutcomes(t, db, caller.ID))
	})

	t.Run("second call is an already_admin no-op", func(t *testing.T) {
		svc, db := setupBootstrapTest(t)
		owner := seedUser(t, db, "owner@acme.example.com")
		company := seedCompany(t, db, "Acme Fleet", "ops@acme.example.com", owner.ID)
		caller := seedUser(t, db, "ops@acme.example.com")

		first, err := svc.PromoteToAdmin(ctx, caller.ID)
		require.NoError(t, err)
		require.True(t, first.Success)

		second, err := svc.PromoteToAdmin(ctx, caller.ID)
		require.NoError(t, err)

		assert.False(t, second.Success)
		assert.True(t, second.AlreadyAdmin)

		grants, err := persistence.NewGormRolePermissionRepository(db.DB).
			FindByCompanyAndRole(ctx, company.ID, identity.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, grants, 32)

		assert.ElementsMatch(t, []string{"success", "already_admin"}, adminAuditOutcomes(t, db, caller.ID))
	})

	t.Run("company with an existing admin is left untouched", func(t *testing.T) {
		svc, db := setupBootstrapTest(t)
		owner := seedUser(t, db, "owner@acme.example.com")
		company := seedCompany(t, db, "Acme Fleet", "ops@acme.example.com", owner.ID)
		incumbent := seedUser(t, db, "first.admin@acme.example.com")
		seedMembership(t, db, incumbent.ID, company.ID, identity.RoleAdmin)
		caller := seedUser(t, db, "ops@acme.example.com")

		res, err := svc.PromoteToAdmin(ctx, caller.ID)
		require.NoError(t, err)

		assert.False(t, res.Success)
		assert.True(t, res.CompanyHasAdmin)
		require.NotNil(t, res.CompanyID)
		assert.Equal(t, company.ID, *res.CompanyID)

		_, err = persistence.NewGormMembershipRepository(db.DB).
			FindByUserAndCompany(ctx, caller.ID, company.ID)
		assert.True(t, shared.IsCode(err, "NOT_FOUND"))

		assert.Equal(t, []string{"company_has_admin"}, adminAuditOutcomes(t, db, caller.ID))
	})

	t.Run("no company matches the caller email", func(t *testing.T) {
		svc, db := setupBootstrapTest(t)
		caller := seedUser(t, db, "stranger@nowhere.example.com")

		res, err := svc.PromoteToAdmin(ctx, caller.ID)
		require.NoError(t, err)

		assert.False(t, res.Success)
		assert.Equal(t, "NO_MATCHING_COMPANY", res.ErrorCode)

		assert.Equal(t, []string{"no_matching_company"}, adminAuditOutcomes(t, db, caller.ID))
	})

	t.Run("unknown caller", func(t *testing.T) {
		svc, db := setupBootstrapTest(t)
		callerID := uuid.New()

		res, err := svc.PromoteToAdmin(ctx, callerID)
		require.NoError(t, err)

		assert.False(t, res.Success)
		assert.Equal(t, "NOT_FOUND", res.ErrorCode)

		assert.Equal(t, []string{"caller_not_found"}, adminAuditOutcomes(t, db, callerID))
	})
}
