package fleet

import (
	"strings"
	"time"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VehicleStatus represents the operational status of a vehicle
type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusOutOfService VehicleStatus = "out_of_service"
	VehicleStatusRetired     VehicleStatus = "retired"
)

// Vehicle represents a fleet vehicle.
// It is the aggregate root for vehicle operations; work orders reference it
// by ID through their asset fields.
type Vehicle struct {
	shared.CompanyAggregateRoot
	Name          string        `gorm:"type:varchar(200);not null"`
	VIN           string        `gorm:"type:varchar(50);index"`
	LicensePlate  string        `gorm:"type:varchar(20)"`
	VehicleType   string        `gorm:"type:varchar(50)"`
	OwnershipType string        `gorm:"type:varchar(50)"`
	Status        VehicleStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Odometer      int64         `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

// NewVehicle creates a new vehicle for a company
func NewVehicle(companyID uuid.UUID, name string) (*Vehicle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vehicle name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Vehicle name cannot exceed 200 characters")
	}

	return &Vehicle{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Status:               VehicleStatusActive,
	}, nil
}

// SetStatus changes the vehicle status
func (v *Vehicle) SetStatus(status VehicleStatus) error {
	switch status {
	case VehicleStatusActive, VehicleStatusMaintenance, VehicleStatusOutOfService, VehicleStatusRetired:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid vehicle status")
	}

	v.Status = status
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// RecordOdometer records a new odometer reading
func (v *Vehicle) RecordOdometer(reading int64) error {
	if reading < v.Odometer {
		return shared.NewDomainError("INVALID_ODOMETER", "Odometer reading cannot decrease")
	}

	v.Odometer = reading
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}
