package persistence

import (
	"context"
	"errors"

	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVehicleRepository implements fleet.VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID finds a vehicle by ID
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Vehicle, error) {
	var vehicle fleet.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByIDForCompany finds a vehicle by ID scoped to a company
func (r *GormVehicleRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*fleet.Vehicle, error) {
	var vehicle fleet.Vehicle
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindAllForCompany returns a company's vehicles matching the filter
func (r *GormVehicleRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]fleet.Vehicle, error) {
	var vehicles []fleet.Vehicle
	query := r.db.WithContext(ctx).Model(&fleet.Vehicle{}).
		Where("company_id = ?", companyID)
	if err := applyFilter(query, filter).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// CountForCompany counts a company's vehicles
func (r *GormVehicleRepository) CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&fleet.Vehicle{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByID checks whether a vehicle exists
func (r *GormVehicleRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&fleet.Vehicle{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new vehicle
func (r *GormVehicleRepository) Create(ctx context.Context, vehicle *fleet.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// Update saves an existing vehicle
func (r *GormVehicleRepository) Update(ctx context.Context, vehicle *fleet.Vehicle) error {
	result := r.db.WithContext(ctx).Model(vehicle).
		Where("id = ?", vehicle.ID).
		Updates(map[string]interface{}{
			"name":           vehicle.Name,
			"vin":            vehicle.VIN,
			"license_plate":  vehicle.LicensePlate,
			"vehicle_type":   vehicle.VehicleType,
			"ownership_type": vehicle.OwnershipType,
			"status":         vehicle.Status,
			"odometer":       vehicle.Odometer,
			"version":        vehicle.Version,
			"updated_at":     vehicle.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a vehicle
func (r *GormVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fleet.Vehicle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
