package workorder

import (
	"context"
	"testing"
	"time"

	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/fleetcore/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupLaborServiceTest(t *testing.T) (*LaborService, *persistence.Database) {
	t.Helper()

	db := testutil.OpenDB(t)
	svc := NewLaborService(
		db,
		persistence.NewGormWorkOrderRepository(db.DB),
		persistence.NewGormLaborLineRepository(db.DB),
		zap.NewNop(),
	)
	return svc, db
}

func TestLaborService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, db := setupLaborServiceTest(t)
	companyID := uuid.New()
	vehicle := seedVehicle(t, db, companyID)
	wo := seedWorkOrder(t, db, companyID, vehicle.ID)
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	line, err := svc.Start(ctx, StartLaborInput{
		CompanyID:    companyID,
		WorkOrderID:  wo.ID,
		TechnicianID: uuid.New(),
		StartTime:    start,
		HourlyRate:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, line.TotalCost.IsZero())

	// In-progress entries contribute nothing to the rollup
	_, laborCost := workOrderCosts(t, db, companyID, wo.ID)
	assert.True(t, laborCost.IsZero())

	closed, err := svc.Close(ctx, companyID, line.ID, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, closed.TotalCost.Equal(decimal.NewFromInt(100)))

	_, laborCost = workOrderCosts(t, db, companyID, wo.ID)
	assert.True(t, laborCost.Equal(decimal.NewFromInt(100)), "labor_cost = %s", laborCost)

	reopened, err := svc.Reopen(ctx, companyID, line.ID)
	require.NoError(t, err)
	assert.True(t, reopened.TotalCost.IsZero())

	_, laborCost = workOrderCosts(t, db, companyID, wo.ID)
	assert.True(t, laborCost.IsZero(), "reopened entry must leave the rollup")
}

func TestLaborService_Close_Overtime(t *testing.T) {
	ctx := context.Background()
	svc, db := setupLaborServiceTest(t)
	companyID := uuid.New()
	vehicle := seedVehicle(t, db, companyID)
	wo := seedWorkOrder(t, db, companyID, vehicle.ID)
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	line, err := svc.Start(ctx, StartLaborInput{
		CompanyID:    companyID,
		WorkOrderID:  wo.ID,
		TechnicianID: uuid.New(),
		StartTime:    start,
		HourlyRate:   decimal.NewFromInt(50),
		Overtime:     true,
	})
	require.NoError(t, err)

	closed, err := svc.Close(ctx, companyID, line.ID, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, closed.TotalCost.Equal(decimal.NewFromInt(150)), "overtime cost = %s", closed.TotalCost)

	t.Run("end before start is rejected", func(t *testing.T) {
		other, err := svc.Start(ctx, StartLaborInput{
			CompanyID:    companyID,
			WorkOrderID:  wo.ID,
			TechnicianID: uuid.New(),
			StartTime:    start,
			HourlyRate:   decimal.NewFromInt(50),
		})
		require.NoError(t, err)

		_, err = svc.Close(ctx, companyID, other.ID, start.Add(-time.Minute))
		assert.Error(t, err)
	})
}

func TestLaborService_Rollup_OnlyClosedEntries(t *testing.T) {
	ctx := context.Background()
	svc, db := setupLaborServiceTest(t)
	companyID := uuid.New()
	vehicle := seedVehicle(t, db, companyID)
	wo := seedWorkOrder(t, db, companyID, vehicle.ID)
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	closedLine, err := svc.Start(ctx, StartLaborInput{
		CompanyID: companyID, WorkOrderID: wo.ID, TechnicianID: uuid.New(),
		StartTime: start, HourlyRate: decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	_, err = svc.Close(ctx, companyID, closedLine.ID, start.Add(time.Hour))
	require.NoError(t, err)

	_, err = svc.Start(ctx, StartLaborInput{
		CompanyID: companyID, WorkOrderID: wo.ID, TechnicianID: uuid.New(),
		StartTime: start, HourlyRate: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	_, laborCost := workOrderCosts(t, db, companyID, wo.ID)
	assert.True(t, laborCost.Equal(decimal.NewFromInt(40)), "labor_cost = %s", laborCost)

	t.Run("removing the closed entry clears the rollup", func(t *testing.T) {
		require.NoError(t, svc.Remove(ctx, companyID, closedLine.ID))

		_, laborCost := workOrderCosts(t, db, companyID, wo.ID)
		assert.True(t, laborCost.IsZero())
	})
}
