package workorder

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderRepository defines persistence operations for work orders
type WorkOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrder, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*WorkOrder, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]WorkOrder, error)
	Create(ctx context.Context, wo *WorkOrder) error
	Update(ctx context.Context, wo *WorkOrder) error
	// UpdateCosts persists only the derived cost columns
	UpdateCosts(ctx context.Context, id uuid.UUID, partsCost, laborCost decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PartLineRepository defines persistence operations for work order parts
type PartLineRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrderPart, error)
	FindByWorkOrder(ctx context.Context, workOrderID uuid.UUID) ([]WorkOrderPart, error)
	SumTotalCost(ctx context.Context, workOrderID uuid.UUID) (decimal.Decimal, error)
	Create(ctx context.Context, part *WorkOrderPart) error
	Update(ctx context.Context, part *WorkOrderPart) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LaborLineRepository defines persistence operations for labor entries
type LaborLineRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrderLabor, error)
	FindByWorkOrder(ctx context.Context, workOrderID uuid.UUID) ([]WorkOrderLabor, error)
	// SumClosedTotalCost sums total_cost over entries with a non-null
	// end_time; in-progress labor is excluded from cost.
	SumClosedTotalCost(ctx context.Context, workOrderID uuid.UUID) (decimal.Decimal, error)
	Create(ctx context.Context, labor *WorkOrderLabor) error
	Update(ctx context.Context, labor *WorkOrderLabor) error
	Delete(ctx context.Context, id uuid.UUID) error
}
