package persistence

import (
	"context"
	"errors"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPartLineRepository implements workorder.PartLineRepository using GORM
type GormPartLineRepository struct {
	db *gorm.DB
}

// NewGormPartLineRepository creates a new GormPartLineRepository
func NewGormPartLineRepository(db *gorm.DB) *GormPartLineRepository {
	return &GormPartLineRepository{db: db}
}

// FindByID finds a part line by ID
func (r *GormPartLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.WorkOrderPart, error) {
	var part workorder.WorkOrderPart
	if err := r.db.WithContext(ctx).First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &part, nil
}

// FindByWorkOrder returns all part lines of a work order
func (r *GormPartLineRepository) FindByWorkOrder(ctx context.Context, workOrderID uuid.UUID) ([]workorder.WorkOrderPart, error) {
	var parts []workorder.WorkOrderPart
	if err := r.db.WithContext(ctx).
		Where("work_order_id = ?", workOrderID).
		Order("created_at asc").
		Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

// SumTotalCost sums total_cost over the work order's part lines
func (r *GormPartLineRepository) SumTotalCost(ctx context.Context, workOrderID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&workorder.WorkOrderPart{}).
		Where("work_order_id = ?", workOrderID).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Create inserts a new part line
func (r *GormPartLineRepository) Create(ctx context.Context, part *workorder.WorkOrderPart) error {
	return r.db.WithContext(ctx).Create(part).Error
}

// Update saves an existing part line
func (r *GormPartLineRepository) Update(ctx context.Context, part *workorder.WorkOrderPart) error {
	result := r.db.WithContext(ctx).Model(part).
		Where("id = ?", part.ID).
		Updates(map[string]interface{}{
			"part_id":    part.PartID,
			"quantity":   part.Quantity,
			"unit_cost":  part.UnitCost,
			"total_cost": part.TotalCost,
			"updated_at": part.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a part line
func (r *GormPartLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&workorder.WorkOrderPart{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
