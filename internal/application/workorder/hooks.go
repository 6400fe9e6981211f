package workorder

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/domain/workorder"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invariant hooks for work-order mutations. Each hook runs synchronously
// inside the mutation's transaction: it either fully applies its
// consequences or fails the whole transaction with no partial effects.

// AssetSyncHook fires on work order insert/update. It reconciles the
// legacy vehicle_id field with the canonical asset pair and validates that
// the referenced asset exists in the table implied by asset_type.
func AssetSyncHook(ctx context.Context, tx *gorm.DB, _, updated *workorder.WorkOrder) error {
	if updated == nil {
		return nil
	}

	updated.SyncAssetFields()

	if !workorder.ValidAssetType(updated.AssetType) {
		return shared.NewDomainError("INVALID_ASSET_TYPE", "Asset type must be vehicle or equipment")
	}

	var exists bool
	var err error
	switch updated.AssetType {
	case workorder.AssetTypeVehicle:
		exists, err = persistence.NewGormVehicleRepository(tx).ExistsByID(ctx, updated.AssetID)
	case workorder.AssetTypeEquipment:
		exists, err = persistence.NewGormEquipmentRepository(tx).ExistsByID(ctx, updated.AssetID)
	}
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrInvalidAssetReference
	}

	return nil
}

// PartInventoryHook fires on WorkOrderPart insert/update/delete and applies
// the corresponding stock movement atomically:
//   - insert consumes the new line's quantity;
//   - delete returns the deleted line's quantity;
//   - an update that repoints the line returns the old part's quantity and
//     consumes the full quantity from the new part;
//   - an update that only changes quantity applies the delta.
//
// A decrement that would drive quantity_in_stock negative fails the
// transaction with InsufficientInventory.
func PartInventoryHook(ctx context.Context, tx *gorm.DB, old, updated *workorder.WorkOrderPart) error {
	inventoryRepo := persistence.NewGormPartsInventoryRepository(tx)

	switch {
	case old == nil && updated != nil:
		return inventoryRepo.AdjustStock(ctx, updated.PartID, -updated.Quantity)

	case old != nil && updated == nil:
		return inventoryRepo.AdjustStock(ctx, old.PartID, old.Quantity)

	case old != nil && updated != nil:
		if old.PartID != updated.PartID {
			if err := inventoryRepo.AdjustStock(ctx, old.PartID, old.Quantity); err != nil {
				return err
			}
			return inventoryRepo.AdjustStock(ctx, updated.PartID, -updated.Quantity)
		}
		delta := updated.Quantity - old.Quantity
		return inventoryRepo.AdjustStock(ctx, updated.PartID, -delta)
	}

	return nil
}

// CostRollupHook fires after any part or labor line mutation. It recomputes
// the owning work order's parts_cost as the sum over its part lines and
// labor_cost as the sum over its closed labor lines, and persists both in
// the same transaction.
func CostRollupHook(ctx context.Context, tx *gorm.DB, workOrderID uuid.UUID) error {
	partsCost, err := persistence.NewGormPartLineRepository(tx).SumTotalCost(ctx, workOrderID)
	if err != nil {
		return err
	}

	laborCost, err := persistence.NewGormLaborLineRepository(tx).SumClosedTotalCost(ctx, workOrderID)
	if err != nil {
		return err
	}

	return persistence.NewGormWorkOrderRepository(tx).UpdateCosts(ctx, workOrderID, partsCost, laborCost)
}
