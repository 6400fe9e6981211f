package workorder

import (
	"strings"
	"time"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType identifies which asset table a work order targets
type AssetType string

const (
	AssetTypeVehicle   AssetType = "vehicle"
	AssetTypeEquipment AssetType = "equipment"
)

// ValidAssetType reports whether the asset type is known
func ValidAssetType(t AssetType) bool {
	return t == AssetTypeVehicle || t == AssetTypeEquipment
}

// Status represents the lifecycle status of a work order
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusOnHold     Status = "on_hold"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether the status is known
func ValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Priority represents the urgency of a work order
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ValidPriority reports whether the priority is known
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// WorkOrder represents a maintenance work order against a vehicle or a
// piece of equipment. It is the aggregate root for work-order operations.
//
// PartsCost, LaborCost and VehicleID are derived fields owned by the
// invariant hooks; caller-supplied values are recomputed and overwritten.
// VehicleID is a legacy convenience field: non-null exactly when the work
// order targets a vehicle, in which case it equals AssetID.
type WorkOrder struct {
	shared.CompanyAggregateRoot
	Number      string          `gorm:"type:varchar(50);index"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	AssetType   AssetType       `gorm:"type:varchar(20);not null"`
	AssetID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	VehicleID   *uuid.UUID      `gorm:"type:uuid;index"`
	Status      Status          `gorm:"type:varchar(20);not null;default:'open'"`
	Priority    Priority        `gorm:"type:varchar(20);not null;default:'medium'"`
	PartsCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LaborCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (WorkOrder) TableName() string {
	return "work_orders"
}

// NewWorkOrder creates a new work order for an asset
func NewWorkOrder(companyID uuid.UUID, title string, assetType AssetType, assetID uuid.UUID) (*WorkOrder, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Work order title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Work order title cannot exceed 200 characters")
	}
	if !ValidAssetType(assetType) {
		return nil, shared.NewDomainError("INVALID_ASSET_TYPE", "Asset type must be vehicle or equipment")
	}
	if assetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSET_ID", "Asset ID cannot be empty")
	}

	wo := &WorkOrder{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Title:                title,
		AssetType:            assetType,
		AssetID:              assetID,
		Status:               StatusOpen,
		Priority:             PriorityMedium,
		PartsCost:            decimal.Zero,
		LaborCost:            decimal.Zero,
	}
	wo.SyncAssetFields()

	return wo, nil
}

// SyncAssetFields reconciles the legacy VehicleID convenience field with
// the canonical AssetType/AssetID pair:
//   - a set VehicleID wins and forces AssetType=vehicle, AssetID=VehicleID;
//   - otherwise a vehicle-typed order mirrors AssetID into VehicleID;
//   - non-vehicle orders always carry a null VehicleID.
func (w *WorkOrder) SyncAssetFields() {
	switch {
	case w.VehicleID != nil && *w.VehicleID != uuid.Nil:
		w.AssetType = AssetTypeVehicle
		w.AssetID = *w.VehicleID
	case w.AssetType == AssetTypeVehicle && w.AssetID != uuid.Nil:
		id := w.AssetID
		w.VehicleID = &id
	case w.AssetType != AssetTypeVehicle:
		w.VehicleID = nil
	}
}

// SetStatus changes the work order status
func (w *WorkOrder) SetStatus(status Status) error {
	if !ValidStatus(status) {
		return shared.NewDomainError("INVALID_STATUS", "Invalid work order status")
	}

	w.Status = status
	if status == StatusCompleted {
		now := time.Now()
		w.CompletedAt = &now
	}
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// SetPriority changes the work order priority
func (w *WorkOrder) SetPriority(priority Priority) error {
	if !ValidPriority(priority) {
		return shared.NewDomainError("INVALID_PRIORITY", "Invalid work order priority")
	}

	w.Priority = priority
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// SetCosts overwrites the derived cost fields. Only the cost rollup hook
// may call this.
func (w *WorkOrder) SetCosts(partsCost, laborCost decimal.Decimal) {
	w.PartsCost = partsCost
	w.LaborCost = laborCost
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// TotalCost returns the combined parts and labor cost
func (w *WorkOrder) TotalCost() decimal.Decimal {
	return w.PartsCost.Add(w.LaborCost)
}

// IsVehicleOrder returns true when the work order targets a vehicle
func (w *WorkOrder) IsVehicleOrder() bool {
	return w.AssetType == AssetTypeVehicle
}
