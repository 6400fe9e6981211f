package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fleetcore/backend/internal/domain/inventory"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartsInventoryRepository implements inventory.PartsInventoryRepository using GORM
type GormPartsInventoryRepository struct {
	db *gorm.DB
}

// NewGormPartsInventoryRepository creates a new GormPartsInventoryRepository
func NewGormPartsInventoryRepository(db *gorm.DB) *GormPartsInventoryRepository {
	return &GormPartsInventoryRepository{db: db}
}

// FindByID finds an inventory record by ID
func (r *GormPartsInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.PartsInventory, error) {
	var part inventory.PartsInventory
	if err := r.db.WithContext(ctx).First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &part, nil
}

// FindAllForCompany returns a company's inventory matching the filter
func (r *GormPartsInventoryRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]inventory.PartsInventory, error) {
	var parts []inventory.PartsInventory
	query := r.db.WithContext(ctx).Model(&inventory.PartsInventory{}).
		Where("company_id = ?", companyID)
	if err := applyFilter(query, filter).Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

// FindBelowReorderPoint returns the parts whose stock level is at or below
// their reorder point.
func (r *GormPartsInventoryRepository) FindBelowReorderPoint(ctx context.Context, companyID uuid.UUID) ([]inventory.PartsInventory, error) {
	var parts []inventory.PartsInventory
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND reorder_point > 0 AND quantity_in_stock <= reorder_point", companyID).
		Order("part_number asc").
		Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

// Create inserts a new inventory record
func (r *GormPartsInventoryRepository) Create(ctx context.Context, part *inventory.PartsInventory) error {
	return r.db.WithContext(ctx).Create(part).Error
}

// Update saves an existing inventory record. QuantityInStock is not
// written here; stock moves only through AdjustStock.
func (r *GormPartsInventoryRepository) Update(ctx context.Context, part *inventory.PartsInventory) error {
	result := r.db.WithContext(ctx).Model(part).
		Where("id = ?", part.ID).
		Updates(map[string]interface{}{
			"part_number":   part.PartNumber,
			"name":          part.Name,
			"reorder_point": part.ReorderPoint,
			"unit_cost":     part.UnitCost,
			"location":      part.Location,
			"version":       part.Version,
			"updated_at":    part.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AdjustStock applies a signed delta to quantity_in_stock as one atomic
// conditional update. The guard in the WHERE clause makes concurrent
// decrements race-safe: whichever statement runs second sees the already
// reduced quantity and affects zero rows if it would go negative.
func (r *GormPartsInventoryRepository) AdjustStock(ctx context.Context, partID uuid.UUID, delta int) error {
	if delta == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&inventory.PartsInventory{}).
		Where("id = ? AND quantity_in_stock + ? >= 0", partID, delta).
		Updates(map[string]interface{}{
			"quantity_in_stock": gorm.Expr("quantity_in_stock + ?", delta),
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Zero rows means either the part is missing or the decrement
		// would underflow. Distinguish the two for the caller.
		var count int64
		if err := r.db.WithContext(ctx).Model(&inventory.PartsInventory{}).
			Where("id = ?", partID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientInventory
	}
	return nil
}

// Delete deletes an inventory record
func (r *GormPartsInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.PartsInventory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
