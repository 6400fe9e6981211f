package inventory

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PartsInventoryRepository defines persistence operations for parts stock
type PartsInventoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PartsInventory, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]PartsInventory, error)
	FindBelowReorderPoint(ctx context.Context, companyID uuid.UUID) ([]PartsInventory, error)
	Create(ctx context.Context, part *PartsInventory) error
	Update(ctx context.Context, part *PartsInventory) error
	// AdjustStock applies a signed delta to quantity_in_stock as one atomic
	// conditional update. A negative delta that would drive the quantity
	// below zero fails with ErrInsufficientInventory and leaves the row
	// untouched.
	AdjustStock(ctx context.Context, partID uuid.UUID, delta int) error
	Delete(ctx context.Context, id uuid.UUID) error
}
