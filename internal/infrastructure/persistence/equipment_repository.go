package persistence

import (
	"context"
	"errors"

	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEquipmentRepository implements fleet.EquipmentRepository using GORM
type GormEquipmentRepository struct {
	db *gorm.DB
}

// NewGormEquipmentRepository creates a new GormEquipmentRepository
func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

// FindByID finds an equipment record by ID
func (r *GormEquipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Equipment, error) {
	var equipment fleet.Equipment
	if err := r.db.WithContext(ctx).First(&equipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

// FindAllForCompany returns a company's equipment matching the filter
func (r *GormEquipmentRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]fleet.Equipment, error) {
	var equipment []fleet.Equipment
	query := r.db.WithContext(ctx).Model(&fleet.Equipment{}).
		Where("company_id = ?", companyID)
	if err := applyFilter(query, filter).Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

// ExistsByID checks whether an equipment record exists
func (r *GormEquipmentRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&fleet.Equipment{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new equipment record
func (r *GormEquipmentRepository) Create(ctx context.Context, equipment *fleet.Equipment) error {
	return r.db.WithContext(ctx).Create(equipment).Error
}

// Update saves an existing equipment record
func (r *GormEquipmentRepository) Update(ctx context.Context, equipment *fleet.Equipment) error {
	result := r.db.WithContext(ctx).Model(equipment).
		Where("id = ?", equipment.ID).
		Updates(map[string]interface{}{
			"name":          equipment.Name,
			"serial_number": equipment.SerialNumber,
			"category":      equipment.Category,
			"status":        equipment.Status,
			"hours_used":    equipment.HoursUsed,
			"version":       equipment.Version,
			"updated_at":    equipment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an equipment record
func (r *GormEquipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fleet.Equipment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
