package workorder

import (
	"context"
	"testing"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/fleetcore/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupPartServiceTest(t *testing.T) (*PartService, *persistence.Database) {
	t.Helper()

	db := testutil.OpenDB(t)
	svc := NewPartService(
		db,
		persistence.NewGormWorkOrderRepository(db.DB),
		persistence.NewGormPartLineRepository(db.DB),
		persistence.NewGormPartsInventoryRepository(db.DB),
		zap.NewNop(),
	)
	return svc, db
}

func TestPartService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes stock and rolls the parts cost up", func(t *testing.T) {
		svc, db := setupPartServiceTest(t)
		companyID := uuid.New()
		vehicle := seedVehicle(t, db, companyID)
		wo := seedWorkOrder(t, db, companyID, vehicle.ID)
		part := seedStockedPart(t, db, companyID, "BRK-1001", 10, decimal.NewFromInt(25))
		unitCost := decimal.NewFromInt(20)

		line, err := svc.Add(ctx, AddPartInput{
			CompanyID:   companyID,
			WorkOrderID: wo.ID,
			PartID:      part.ID,
			Quantity:    4,
			UnitCost:    &unitCost,
		})
		require.NoError(t, err)

		assert.True(t, line.TotalCost.Equal(decimal.NewFromInt(80)))
		assert.Equal(t, 6, stockOf(t, db, part.ID))

		partsCost, laborCost := workOrderCosts(t, db, companyID, wo.ID)
		assert.True(t, partsCost.Equal(decimal.NewFromInt(80)), "parts_cost = %s", partsCost)
		assert.True(t, laborCost.IsZero())
	})

	t.Run("unit cost defaults to the inventory record", func(t *testing.T) {
		svc, db := setupPartServiceTest(t)
		companyID := uuid.New()
		vehicle := seedVehicle(t, db, companyID)
		wo := seedWorkOrder(t, db, companyID, vehicle.ID)
		part := seedStockedPart(t, db, companyID, "BRK-1001", 10, decimal.NewFromFloat(12.5))

		line, err := svc.Add(ctx, AddPartInput{
			CompanyID:   companyID,
			WorkOrderID: wo.ID,
			PartID:      part.ID,
			Quantity:    2,
		})
		require.NoError(t, err)

		assert.True(t, line.UnitCost.Equal(decimal.NewFromFloat(12.5)))
		assert.True(t, line.TotalCost.Equal(decimal.NewFromInt(25)))
	})

	t.Run("insufficient stock leaves no partial effects", func(t *testing.T) {
		svc, db := setupPartServiceTest(t)
		companyID := uuid.New()
		vehicle := seedVehicle(t, db, companyID)
		wo := seedWorkOrder(t, db, companyID, vehicle.ID)
		part := seedStockedPart(t, db, companyID, "BRK-1001", 3, decimal.NewFromInt(25))

		_, err := svc.Add(ctx, AddPartInput{
			CompanyID:   companyID,
			WorkOrderID: wo.ID,
			PartID:      part.ID,
			Quantity:    5,
		})
		assert.True(t, shared.IsCode(err, "INSUFFICIENT_INVENTORY"))

		assert.Equal(t, 3, stockOf(t, db, part.ID))

		lines, err := persistence.NewGormPartLineRepository(db.DB).FindByWorkOrder(ctx, wo.ID)
		require.NoError(t, err)
		assert.Empty(t, lines)

		partsCost, _ := workOrderCosts(t, db, companyID, wo.ID)
		assert.True(t, partsCost.IsZero())
	})

	t.Run("work order of another company is not visible", func(t *testing.T) {
		svc, db := setupPartServiceTest(t)
		companyID := uuid.New()
		vehicle := seedVehicle(t, db, companyID)
		wo := seedWorkOrder(t, db, companyID, vehicle.ID)
		part := seedStockedPart(t, db, companyID, "BRK-1001", 10, decimal.NewFromInt(25))

		_, err := svc.Add(ctx, AddPartInput{
			CompanyID:   uuid.New(),
			WorkOrderID: wo.ID,
			PartID:      part.ID,
			Quantity:    1,
		})
		assert.True(t, shared.IsCode(err, "NOT_FOUND"))
	})
}

func TestPartService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("quantity change applies only the delta", func(t *testing.T) {
		svc, db := setupPartServiceTest(t)
		companyID := uuid.New()
		vehicle := seedVehicle(t, db, companyID)
		wo := seedWorkOrder(t, db, companyID, vehicle.ID)
		part := seedStockedPart(t, db, companyID, "BRK-1001", 10, decimal.NewFromInt(10))

		line, err := svc.Add(ctx, AddPartInput{
			CompanyID: companyID, WorkOrderID: wo.ID, PartID: part.ID, Quantity: 4,
		})
		require.NoError(t, err)
		require.Equal(t, 6, stockOf(t, db, part.ID))

		up := 6
		_, err = svc.Update(ctx, UpdatePartInput{CompanyID: companyID, LineID: line.ID, Quantity: &up})
		require.NoError(t, err)
		assert.Equal(t, 4, stockOf(t, db, part.ID))

		down := 1
		_, err = svc.Update(ctx, UpdatePartInput{CompanyID: companyID, LineID: line.ID, Quantity: &down})
		require.NoError(t, err)
		assert.Equal(t, 9, stockOf(t, db, part.ID))

		partsCost, _ := workOrderCosts(t, db, companyID, wo.ID)
		assert.True(t, partsCost.Equal(decimal.NewFromInt(10)), "parts_cost = %s", partsCost)
	})

	t.Run("repointing returns the old part and consumes the new one", func(t *testing.T) {
		svc, db := setupPartServiceTest(t)
		companyID := uuid.New()
		vehicle := seedVehicle(t, db, companyID)
		wo := seedWorkOrder(t, db, companyID, vehicle.ID)
		partA := seedStockedPart(t, db, companyID, "BRK-1001", 10, decimal.NewFromInt(10))
		partB := seedStockedPart(t, db, companyID, "FLT-2002", 10, decimal.NewFromInt(10))

		line, err := svc.Add(ctx, AddPartInput{
			CompanyID: companyID, WorkOrderID: wo.ID, PartID: partA.ID, Quantity: 4,
		})
		require.NoError(t, err)
		require.Equal(t, 6, stockOf(t, db, partA.ID))

		_, err = svc.Update(ctx, UpdatePartInput{CompanyID: companyID, LineID: line.ID, PartID: &partB.ID})
		require.NoError(t, err)

		assert.Equal(t, 10, stockOf(t, db, partA.ID))
		assert.Equal(t, 6, stockOf(t, db, partB.ID))
	})

	t.Run("rejected increase rolls everything back", func(t *testing.T) {
		svc, db := setupPartServiceTest(t)
		companyID := uuid.New()
		vehicle := seedVehicle(t, db, companyID)
		wo := seedWorkOrder(t, db, companyID, vehicle.ID)
		part := seedStockedPart(t, db, companyID, "BRK-1001", 5, decimal.NewFromInt(10))

		line, err := svc.Add(ctx, AddPartInput{
			CompanyID: companyID, WorkOrderID: wo.ID, PartID: part.ID, Quantity: 4,
		})
		require.NoError(t, err)
		require.Equal(t, 1, stockOf(t, db, part.ID))

		tooMany := 8
		_, err = svc.Update(ctx, UpdatePartInput{CompanyID: companyID, LineID: line.ID, Quantity: &tooMany})
		assert.True(t, shared.IsCode(err, "INSUFFICIENT_INVENTORY"))

		assert.Equal(t, 1, stockOf(t, db, part.ID))

		stored, err := persistence.NewGormPartLineRepository(db.DB).FindByID(ctx, line.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, stored.Quantity)
	})
}

func TestPartService_Remove(t *testing.T) {
	ctx := context.Background()
	svc, db := setupPartServiceTest(t)
	companyID := uuid.New()
	vehicle := seedVehicle(t, db, companyID)
	wo := seedWorkOrder(t, db, companyID, vehicle.ID)
	part := seedStockedPart(t, db, companyID, "BRK-1001", 10, decimal.NewFromInt(10))

	line, err := svc.Add(ctx, AddPartInput{
		CompanyID: companyID, WorkOrderID: wo.ID, PartID: part.ID, Quantity: 4,
	})
	require.NoError(t, err)
	require.Equal(t, 6, stockOf(t, db, part.ID))

	require.NoError(t, svc.Remove(ctx, companyID, line.ID))

	assert.Equal(t, 10, stockOf(t, db, part.ID))

	partsCost, _ := workOrderCosts(t, db, companyID, wo.ID)
	assert.True(t, partsCost.IsZero())
}
