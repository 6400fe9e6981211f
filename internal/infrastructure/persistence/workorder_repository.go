package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormWorkOrderRepository implements workorder.WorkOrderRepository using GORM
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GormWorkOrderRepository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// FindByID finds a work order by ID
func (r *GormWorkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.WorkOrder, error) {
	var wo workorder.WorkOrder
	if err := r.db.WithContext(ctx).First(&wo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wo, nil
}

// FindByIDForCompany finds a work order by ID scoped to a company
func (r *GormWorkOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*workorder.WorkOrder, error) {
	var wo workorder.WorkOrder
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&wo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wo, nil
}

// FindAllForCompany returns a company's work orders matching the filter
func (r *GormWorkOrderRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]workorder.WorkOrder, error) {
	var orders []workorder.WorkOrder
	query := r.db.WithContext(ctx).Model(&workorder.WorkOrder{}).
		Where("company_id = ?", companyID)
	if err := applyFilter(query, filter).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Create inserts a new work order
func (r *GormWorkOrderRepository) Create(ctx context.Context, wo *workorder.WorkOrder) error {
	return r.db.WithContext(ctx).Create(wo).Error
}

// Update saves an existing work order
func (r *GormWorkOrderRepository) Update(ctx context.Context, wo *workorder.WorkOrder) error {
	result := r.db.WithContext(ctx).Model(wo).
		Where("id = ?", wo.ID).
		Updates(map[string]interface{}{
			"number":       wo.Number,
			"title":        wo.Title,
			"description":  wo.Description,
			"asset_type":   wo.AssetType,
			"asset_id":     wo.AssetID,
			"vehicle_id":   wo.VehicleID,
			"status":       wo.Status,
			"priority":     wo.Priority,
			"completed_at": wo.CompletedAt,
			"version":      wo.Version,
			"updated_at":   wo.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateCosts persists only the derived cost columns. The rollup hook
// calls this after summing the line tables.
func (r *GormWorkOrderRepository) UpdateCosts(ctx context.Context, id uuid.UUID, partsCost, laborCost decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&workorder.WorkOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"parts_cost": partsCost,
			"labor_cost": laborCost,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a work order
func (r *GormWorkOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&workorder.WorkOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
