package fleet

import (
	"context"
	"fmt"
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

func setupVehicleServiceTest(t *testing.T) (*VehicleService, *persistence.Database) {
	t.Helper()

	db := testutil.OpenDB(t)
	svc := NewVehicleService(
		persistence.NewGormVehicleRepository(db.DB),
		persistence.NewGormCompanyRepository(db.DB),
		zap.NewNop(),
	)
	return svc, db
}

func seedTierCompany(t *testing.T, db *persistence.Database, tier identity.SubscriptionTier) *identity.Company {
	t.Helper()

	company, err := identity.NewCompany("Acme Fleet", "ops@acme.example.com", uuid.New())
	require.NoError(t, err)
	company.SetSubscriptionTier(tier)
	require.NoError(t, persistence.NewGormCompanyRepository(db.DB).Create(context.Background(), company))

	return company
}

func TestVehicleService_Create_QuotaEnforced(t *testing.T) {
	ctx := context.Background()
	svc, db := setupVehicleServiceTest(t)
	company := seedTierCompany(t, db, identity.TierTestDrive)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, CreateVehicleInput{
			CompanyID: company.ID,
			Name:      fmt.Sprintf("Truck %d", i+1),
		})
		require.NoError(t, err)
	}

	_, err := svc.Create(ctx, CreateVehicleInput{CompanyID: company.ID, Name: "Truck 4"})
	assert.True(t, shared.IsCode(err, "VEHICLE_QUOTA_EXCEEDED"))

	count, err := persistence.NewGormVehicleRepository(db.DB).CountForCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	t.Run("another company is counted separately", func(t *testing.T) {
		other, err := identity.NewCompany("Other Fleet", "ops@other.example.com", uuid.New())
		require.NoError(t, err)
		require.NoError(t, persistence.NewGormCompanyRepository(db.DB).Create(ctx, other))

		_, err = svc.Create(ctx, CreateVehicleInput{CompanyID: other.ID, Name: "Van 1"})
		require.NoError(t, err)
	})

	t.Run("tier upgrade lifts the quota", func(t *testing.T) {
		company.SetSubscriptionTier(identity.TierStarter)
		require.NoError(t, persistence.NewGormCompanyRepository(db.DB).Update(ctx, company))

		_, err := svc.Create(ctx, CreateVehicleInput{CompanyID: company.ID, Name: "Truck 4"})
		require.NoError(t, err)
	})
}

func TestVehicleService_Create_UnknownCompany(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupVehicleServiceTest(t)

	_, err := svc.Create(ctx, CreateVehicleInput{CompanyID: uuid.New(), Name: "Ghost Truck"})
	assert.True(t, shared.IsCode(err, "NOT_FOUND"))
}
