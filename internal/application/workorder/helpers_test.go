package workorder

import (
	"context"
	"testing"

	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/fleetcore/backend/internal/domain/inventory"
	"github.com/fleetcore/backend/internal/domain/workorder"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seedVehicle(t *testing.T, db *persistence.Database, companyID uuid.UUID) *fleet.Vehicle {
	t.Helper()

	vehicle, err := fleet.NewVehicle(companyID, "Truck 12")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormVehicleRepository(db.DB).Create(context.Background(), vehicle))

	return vehicle
}

func seedEquipment(t *testing.T, db *persistence.Database, companyID uuid.UUID) *fleet.Equipment {
	t.Helper()

	equipment, err := fleet.NewEquipment(companyID, "Generator 3")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormEquipmentRepository(db.DB).Create(context.Background(), equipment))

	return equipment
}

func seedWorkOrder(t *testing.T, db *persistence.Database, companyID, vehicleID uuid.UUID) *workorder.WorkOrder {
	t.Helper()

	wo, err := workorder.NewWorkOrder(companyID, "Brake inspection", workorder.AssetTypeVehicle, vehicleID)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormWorkOrderRepository(db.DB).Create(context.Background(), wo))

	return wo
}

func seedStockedPart(t *testing.T, db *persistence.Database, companyID uuid.UUID, partNumber string, quantity int, unitCost decimal.Decimal) *inventory.PartsInventory {
	t.Helper()

	part, err := inventory.NewPartsInventory(companyID, partNumber, "Part "+partNumber)
	require.NoError(t, err)
	require.NoError(t, part.SetUnitCost(unitCost))
	part.QuantityInStock = quantity
	require.NoError(t, persistence.NewGormPartsInventoryRepository(db.DB).Create(context.Background(), part))

	return part
}

func stockOf(t *testing.T, db *persistence.Database, partID uuid.UUID) int {
	t.Helper()

	part, err := persistence.NewGormPartsInventoryRepository(db.DB).FindByID(context.Background(), partID)
	require.NoError(t, err)
	return part.QuantityInStock
}

func workOrderCosts(t *testing.T, db *persistence.Database, companyID, workOrderID uuid.UUID) (parts, labor decimal.Decimal) {
	t.Helper()

	wo, err := persistence.NewGormWorkOrderRepository(db.DB).
		FindByIDForCompany(context.Background(), companyID, workOrderID)
	require.NoError(t, err)
	return wo.PartsCost, wo.LaborCost
}
