package workorder

import (
	"context"
	"time"

	"github.com/fleetcore/backend/internal/domain/inventory"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/domain/workorder"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PartService manages the part lines of a work order. Every mutation runs
// the inventory hook and the cost rollup hook inside one transaction, so a
// rejected stock movement leaves no partial effects.
type PartService struct {
	db            *persistence.Database
	workOrderRepo workorder.WorkOrderRepository
	partLineRepo  workorder.PartLineRepository
	inventoryRepo inventory.PartsInventoryRepository
	logger        *zap.Logger
}

// NewPartService creates a new part service
func NewPartService(
	db *persistence.Database,
	workOrderRepo workorder.WorkOrderRepository,
	partLineRepo workorder.PartLineRepository,
	inventoryRepo inventory.PartsInventoryRepository,
	logger *zap.Logger,
) *PartService {
	return &PartService{
		db:            db,
		workOrderRepo: workOrderRepo,
		partLineRepo:  partLineRepo,
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// AddPartInput contains input for adding a part line to a work order.
// UnitCost defaults to the inventory record's current unit cost when nil.
type AddPartInput struct {
	CompanyID   uuid.UUID
	WorkOrderID uuid.UUID
	PartID      uuid.UUID
	Quantity    int
	UnitCost    *decimal.Decimal
}

// UpdatePartInput contains input for updating a part line
type UpdatePartInput struct {
	CompanyID uuid.UUID
	LineID    uuid.UUID
	PartID    *uuid.UUID
	Quantity  *int
	UnitCost  *decimal.Decimal
}

// PartLineDTO represents a part line returned to callers
type PartLineDTO struct {
	ID          uuid.UUID       `json:"id"`
	WorkOrderID uuid.UUID       `json:"work_order_id"`
	PartID      uuid.UUID       `json:"part_id"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toPartLineDTO(p *workorder.WorkOrderPart) *PartLineDTO {
	return &PartLineDTO{
		ID:          p.ID,
		WorkOrderID: p.WorkOrderID,
		PartID:      p.PartID,
		Quantity:    p.Quantity,
		UnitCost:    p.UnitCost,
		TotalCost:   p.TotalCost,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Add consumes stock for a new part line and rolls the costs up
func (s *PartService) Add(ctx context.Context, input AddPartInput) (*PartLineDTO, error) {
	if _, err := s.workOrderRepo.FindByIDForCompany(ctx, input.CompanyID, input.WorkOrderID); err != nil {
		return nil, err
	}

	unitCost := decimal.Zero
	if input.UnitCost != nil {
		unitCost = *input.UnitCost
	} else {
		part, err := s.inventoryRepo.FindByID(ctx, input.PartID)
		if err != nil {
			return nil, err
		}
		unitCost = part.UnitCost
	}

	line, err := workorder.NewWorkOrderPart(input.CompanyID, input.WorkOrderID, input.PartID, input.Quantity, unitCost)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := PartInventoryHook(ctx, tx, nil, line); err != nil {
			return err
		}
		if err := persistence.NewGormPartLineRepository(tx).Create(ctx, line); err != nil {
			return err
		}
		return CostRollupHook(ctx, tx, input.WorkOrderID)
	})
	if err != nil {
		if !shared.IsCode(err, "INSUFFICIENT_INVENTORY") {
			s.logger.Error("Failed to add work order part",
				zap.String("work_order_id", input.WorkOrderID.String()),
				zap.Error(err))
		}
		return nil, err
	}

	return toPartLineDTO(line), nil
}

// Update changes a part line. Repointing the line returns the old part's
// stock and consumes from the new part; a quantity change applies only the
// delta.
func (s *PartService) Update(ctx context.Context, input UpdatePartInput) (*PartLineDTO, error) {
	line, err := s.partLineRepo.FindByID(ctx, input.LineID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workOrderRepo.FindByIDForCompany(ctx, input.CompanyID, line.WorkOrderID); err != nil {
		return nil, err
	}

	old := *line

	if input.PartID != nil {
		if err := line.SetPart(*input.PartID); err != nil {
			return nil, err
		}
	}
	if input.Quantity != nil {
		if err := line.SetQuantity(*input.Quantity); err != nil {
			return nil, err
		}
	}
	if input.UnitCost != nil {
		if err := line.SetUnitCost(*input.UnitCost); err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := PartInventoryHook(ctx, tx, &old, line); err != nil {
			return err
		}
		if err := persistence.NewGormPartLineRepository(tx).Update(ctx, line); err != nil {
			return err
		}
		return CostRollupHook(ctx, tx, line.WorkOrderID)
	})
	if err != nil {
		return nil, err
	}

	return toPartLineDTO(line), nil
}

// Remove deletes a part line, returning its quantity to stock
func (s *PartService) Remove(ctx context.Context, companyID, lineID uuid.UUID) error {
	line, err := s.partLineRepo.FindByID(ctx, lineID)
	if err != nil {
		return err
	}
	if _, err := s.workOrderRepo.FindByIDForCompany(ctx, companyID, line.WorkOrderID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := PartInventoryHook(ctx, tx, line, nil); err != nil {
			return err
		}
		if err := persistence.NewGormPartLineRepository(tx).Delete(ctx, lineID); err != nil {
			return err
		}
		return CostRollupHook(ctx, tx, line.WorkOrderID)
	})
}

// List returns the part lines of a work order
func (s *PartService) List(ctx context.Context, companyID, workOrderID uuid.UUID) ([]PartLineDTO, error) {
	if _, err := s.workOrderRepo.FindByIDForCompany(ctx, companyID, workOrderID); err != nil {
		return nil, err
	}

	lines, err := s.partLineRepo.FindByWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	dtos := make([]PartLineDTO, len(lines))
	for i := range lines {
		dtos[i] = *toPartLineDTO(&lines[i])
	}
	return dtos, nil
}
