package fleet

import (
	"strings"
	"time"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EquipmentStatus represents the operational status of a piece of equipment
type EquipmentStatus string

const (
	EquipmentStatusActive      EquipmentStatus = "active"
	EquipmentStatusMaintenance EquipmentStatus = "maintenance"
	EquipmentStatusRetired     EquipmentStatus = "retired"
)

// Equipment represents a non-vehicle maintainable asset (generators,
// trailers, lifts). Work orders reference it through their asset fields.
type Equipment struct {
	shared.CompanyAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null"`
	SerialNumber string          `gorm:"type:varchar(100)"`
	Category     string          `gorm:"type:varchar(50)"`
	Status       EquipmentStatus `gorm:"type:varchar(20);not null;default:'active'"`
	HoursUsed    int64           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Equipment) TableName() string {
	return "equipment"
}

// NewEquipment creates a new equipment record for a company
func NewEquipment(companyID uuid.UUID, name string) (*Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Equipment name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Equipment name cannot exceed 200 characters")
	}

	return &Equipment{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Status:               EquipmentStatusActive,
	}, nil
}

// SetStatus changes the equipment status
func (e *Equipment) SetStatus(status EquipmentStatus) error {
	switch status {
	case EquipmentStatusActive, EquipmentStatusMaintenance, EquipmentStatusRetired:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid equipment status")
	}

	e.Status = status
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}
