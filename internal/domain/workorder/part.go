package workorder

import (
	"time"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderPart is a part consumed by a work order.
// TotalCost is derived as quantity × unit cost and never trusted from
// caller input.
type WorkOrderPart struct {
	shared.CompanyAggregateRoot
	WorkOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PartID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    int             `gorm:"not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (WorkOrderPart) TableName() string {
	return "work_order_parts"
}

// NewWorkOrderPart creates a new part line for a work order
func NewWorkOrderPart(companyID, workOrderID, partID uuid.UUID, quantity int, unitCost decimal.Decimal) (*WorkOrderPart, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY_ID", "Company ID cannot be empty")
	}
	if workOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORK_ORDER_ID", "Work order ID cannot be empty")
	}
	if partID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PART_ID", "Part ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	p := &WorkOrderPart{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		WorkOrderID:          workOrderID,
		PartID:               partID,
		Quantity:             quantity,
		UnitCost:             unitCost,
	}
	p.RecalculateTotal()

	return p, nil
}

// SetQuantity changes the consumed quantity and rederives the line total
func (p *WorkOrderPart) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.Quantity = quantity
	p.RecalculateTotal()
	p.UpdatedAt = time.Now()

	return nil
}

// SetUnitCost changes the unit cost and rederives the line total
func (p *WorkOrderPart) SetUnitCost(unitCost decimal.Decimal) error {
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	p.UnitCost = unitCost
	p.RecalculateTotal()
	p.UpdatedAt = time.Now()

	return nil
}

// SetPart repoints the line at a different inventory part
func (p *WorkOrderPart) SetPart(partID uuid.UUID) error {
	if partID == uuid.Nil {
		return shared.NewDomainError("INVALID_PART_ID", "Part ID cannot be empty")
	}

	p.PartID = partID
	p.UpdatedAt = time.Now()

	return nil
}

// RecalculateTotal rederives TotalCost from quantity and unit cost,
// overwriting any caller-supplied value.
func (p *WorkOrderPart) RecalculateTotal() {
	p.TotalCost = p.UnitCost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
