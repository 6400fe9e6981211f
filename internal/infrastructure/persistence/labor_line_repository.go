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

// GormLaborLineRepository implements workorder.LaborLineRepository using GORM
type GormLaborLineRepository struct {
	db *gorm.DB
}

// NewGormLaborLineRepository creates a new GormLaborLineRepository
func NewGormLaborLineRepository(db *gorm.DB) *GormLaborLineRepository {
	return &GormLaborLineRepository{db: db}
}

// FindByID finds a labor entry by ID
func (r *GormLaborLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.WorkOrderLabor, error) {
	var labor workorder.WorkOrderLabor
	if err := r.db.WithContext(ctx).First(&labor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &labor, nil
}

// FindByWorkOrder returns all labor entries of a work order
func (r *GormLaborLineRepository) FindByWorkOrder(ctx context.Context, workOrderID uuid.UUID) ([]workorder.WorkOrderLabor, error) {
	var entries []workorder.WorkOrderLabor
	if err := r.db.WithContext(ctx).
		Where("work_order_id = ?", workOrderID).
		Order("start_time asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumClosedTotalCost sums total_cost over entries with a non-null end_time.
// In-progress labor carries no cost.
func (r *GormLaborLineRepository) SumClosedTotalCost(ctx context.Context, workOrderID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&workorder.WorkOrderLabor{}).
		Where("work_order_id = ? AND end_time IS NOT NULL", workOrderID).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Create inserts a new labor entry
func (r *GormLaborLineRepository) Create(ctx context.Context, labor *workorder.WorkOrderLabor) error {
	return r.db.WithContext(ctx).Create(labor).Error
}

// Update saves an existing labor entry
func (r *GormLaborLineRepository) Update(ctx context.Context, labor *workorder.WorkOrderLabor) error {
	result := r.db.WithContext(ctx).Model(labor).
		Where("id = ?", labor.ID).
		Updates(map[string]interface{}{
			"technician_id": labor.TechnicianID,
			"start_time":    labor.StartTime,
			"end_time":      labor.EndTime,
			"hourly_rate":   labor.HourlyRate,
			"overtime":      labor.Overtime,
			"total_hours":   labor.TotalHours,
			"total_cost":    labor.TotalCost,
			"notes":         labor.Notes,
			"updated_at":    labor.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a labor entry
func (r *GormLaborLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&workorder.WorkOrderLabor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
