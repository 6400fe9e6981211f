package identity

import (
	"context"
	"testing"

	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/fleetcore/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCompanyServiceTest(t *testing.T) (*CompanyService, *persistence.Database) {
	t.Helper()

	db := testutil.OpenDB(t)
	svc := NewCompanyService(db, persistence.NewGormCompanyRepository(db.DB), zap.NewNop())
	return svc, db
}

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds the owner membership and default taxonomy", func(t *testing.T) {
		svc, db := setupCompanyServiceTest(t)
		owner := seedUser(t, db, "owner@acme.example.com")

		dto, err := svc.Create(ctx, CreateCompanyInput{
			Name:             "Acme Fleet",
			ContactEmail:     "ops@acme.example.com",
			OwnerID:          owner.ID,
			SubscriptionTier: identity.TierStarter,
		})
		require.NoError(t, err)

		assert.Equal(t, identity.TierStarter, dto.SubscriptionTier)
		assert.Equal(t, 10, dto.MaxVehicles)

		membership, err := persistence.NewGormMembershipRepository(db.DB).
			FindByUserAndCompany(ctx, owner.ID, dto.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleOwner, membership.Role)

		var taxonomyCount int64
		require.NoError(t, db.DB.Model(&fleet.TaxonomyEntry{}).
			Where("company_id = ?", dto.ID).
			Count(&taxonomyCount).Error)
		assert.EqualValues(t, 22, taxonomyCount)

		types, err := persistence.NewGormTaxonomyRepository(db.DB).
			FindForCompany(ctx, dto.ID, fleet.TaxonomyVehicleType)
		require.NoError(t, err)
		assert.Len(t, types, 8)
	})

	t.Run("defaults to the test drive tier", func(t *testing.T) {
		svc, db := setupCompanyServiceTest(t)
		owner := seedUser(t, db, "owner@acme.example.com")

		dto, err := svc.Create(ctx, CreateCompanyInput{
			Name:         "Acme Fleet",
			ContactEmail: "ops@acme.example.com",
			OwnerID:      owner.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, identity.TierTestDrive, dto.SubscriptionTier)
		assert.Equal(t, 3, dto.MaxVehicles)
	})
}

func TestCompanyService_Update_RederivesQuota(t *testing.T) {
	ctx := context.Background()
	svc, db := setupCompanyServiceTest(t)
	owner := seedUser(t, db, "owner@acme.example.com")

	created, err := svc.Create(ctx, CreateCompanyInput{
		Name:         "Acme Fleet",
		ContactEmail: "ops@acme.example.com",
		OwnerID:      owner.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 3, created.MaxVehicles)

	tier := identity.TierProfessional
	updated, err := svc.Update(ctx, UpdateCompanyInput{ID: created.ID, SubscriptionTier: &tier})
	require.NoError(t, err)
	assert.Equal(t, 250, updated.MaxVehicles)

	stored, err := persistence.NewGormCompanyRepository(db.DB).FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 250, stored.MaxVehicles)

	t.Run("unrecognized tier clamps to the test drive quota", func(t *testing.T) {
		unknown := identity.SubscriptionTier("platinum")
		updated, err := svc.Update(ctx, UpdateCompanyInput{ID: created.ID, SubscriptionTier: &unknown})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.MaxVehicles)
	})
}
