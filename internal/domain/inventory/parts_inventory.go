package inventory

import (
	"strings"
	"time"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartsInventory tracks the stock level of one part for a company.
// QuantityInStock must never go negative; decrements are applied through
// an atomic conditional update in the repository.
type PartsInventory struct {
	shared.CompanyAggregateRoot
	PartNumber      string          `gorm:"type:varchar(100);not null;index"`
	Name            string          `gorm:"type:varchar(200);not null"`
	QuantityInStock int             `gorm:"not null;default:0"`
	ReorderPoint    int             `gorm:"not null;default:0"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Location        string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PartsInventory) TableName() string {
	return "parts_inventory"
}

// NewPartsInventory creates a new inventory record for a part
func NewPartsInventory(companyID uuid.UUID, partNumber, name string) (*PartsInventory, error) {
	partNumber = strings.TrimSpace(partNumber)
	if partNumber == "" {
		return nil, shared.NewDomainError("INVALID_PART_NUMBER", "Part number cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Part name cannot be empty")
	}

	return &PartsInventory{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		PartNumber:           partNumber,
		Name:                 name,
	}, nil
}

// SetReorderPoint sets the low-stock threshold
func (p *PartsInventory) SetReorderPoint(point int) error {
	if point < 0 {
		return shared.NewDomainError("INVALID_REORDER_POINT", "Reorder point cannot be negative")
	}

	p.ReorderPoint = point
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetUnitCost sets the current unit cost of the part
func (p *PartsInventory) SetUnitCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	p.UnitCost = cost
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// NeedsReorder reports whether the stock level is at or below the
// reorder point.
func (p *PartsInventory) NeedsReorder() bool {
	return p.ReorderPoint > 0 && p.QuantityInStock <= p.ReorderPoint
}
