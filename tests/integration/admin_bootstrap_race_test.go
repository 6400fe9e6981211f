package integration

import (
	"context"
	"sync"
	"testing"

	auditapp "github.com/fleetcore/backend/internal/application/audit"
	identityapp "github.com/fleetcore/backend/internal/application/identity"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestAdminBootstrap_ConcurrentPromotions drives concurrent promotions of
// the same caller against a real PostgreSQL database. The partial unique
// index on memberships(company_id) WHERE role='admin' must serialize them
// so exactly one call wins.
func TestAdminBootstrap_ConcurrentPromotions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	db := &persistence.Database{DB: testDB.DB}
	ctx := context.Background()

	userRepo := persistence.NewGormUserRepository(testDB.DB)
	companyRepo := persistence.NewGormCompanyRepository(testDB.DB)
	membershipRepo := persistence.NewGormMembershipRepository(testDB.DB)

	auditService := auditapp.NewAuditService(
		persistence.NewGormAuditLogRepository(testDB.DB),
		persistence.NewGormAdminAuditLogRepository(testDB.DB),
		membershipRepo,
		zap.NewNop(),
	)
	svc := identityapp.NewAdminBootstrapService(db, userRepo, companyRepo, membershipRepo, auditService, zap.NewNop())

	owner, err := identity.NewProvisionedUser("owner@acme.example.com", "", "")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(ctx, owner))

	company, err := identity.NewCompany("Acme Fleet", "ops@acme.example.com", owner.ID)
	require.NoError(t, err)
	require.NoError(t, companyRepo.Create(ctx, company))

	caller, err := identity.NewProvisionedUser("ops@acme.example.com", "", "")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(ctx, caller))

	const workers = 8

	results := make([]*identityapp.PromoteResult, workers)
	errs := make([]error, workers)

	var start sync.WaitGroup
	start.Add(1)
	var done sync.WaitGroup
	for i := 0; i < workers; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i], errs[i] = svc.PromoteToAdmin(ctx, caller.ID)
		}(i)
	}
	start.Done()
	done.Wait()

	successes := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i], "worker %d", i)
		require.NotNil(t, results[i], "worker %d", i)
		if results[i].Success {
			successes++
		} else {
			assert.True(t, results[i].CompanyHasAdmin || results[i].AlreadyAdmin,
				"worker %d: losing call must observe a deterministic outcome, got %+v", i, results[i])
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent promotion must win")

	admins, err := membershipRepo.FindByCompanyAndRole(ctx, company.ID, identity.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, caller.ID, admins[0].UserID)

	grants, err := persistence.NewGormRolePermissionRepository(testDB.DB).
		FindByCompanyAndRole(ctx, company.ID, identity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, grants, 32)
}
