package workorder

import (
	"context"
	"time"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/domain/workorder"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WorkOrderService handles work order operations. Caller-supplied values
// for the derived fields (vehicle_id, parts_cost, labor_cost) are
// recomputed by the hooks and never trusted.
type WorkOrderService struct {
	db            *persistence.Database
	workOrderRepo workorder.WorkOrderRepository
	logger        *zap.Logger
}

// NewWorkOrderService creates a new work order service
func NewWorkOrderService(db *persistence.Database, workOrderRepo workorder.WorkOrderRepository, logger *zap.Logger) *WorkOrderService {
	return &WorkOrderService{
		db:            db,
		workOrderRepo: workOrderRepo,
		logger:        logger,
	}
}

// CreateWorkOrderInput contains input for creating a work order.
// Either the asset pair or VehicleID identifies the target asset; a set
// VehicleID wins.
type CreateWorkOrderInput struct {
	CompanyID   uuid.UUID
	Title       string
	Description string
	AssetType   workorder.AssetType
	AssetID     uuid.UUID
	VehicleID   *uuid.UUID
	Priority    workorder.Priority
	Number      string
}

// UpdateWorkOrderInput contains input for updating a work order
type UpdateWorkOrderInput struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	Title       *string
	Description *string
	AssetType   *workorder.AssetType
	AssetID     *uuid.UUID
	VehicleID   *uuid.UUID
	Status      *workorder.Status
	Priority    *workorder.Priority
}

// WorkOrderDTO represents work order data returned to callers
type WorkOrderDTO struct {
	ID          uuid.UUID           `json:"id"`
	CompanyID   uuid.UUID           `json:"company_id"`
	Number      string              `json:"number,omitempty"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	AssetType   workorder.AssetType `json:"asset_type"`
	AssetID     uuid.UUID           `json:"asset_id"`
	VehicleID   *uuid.UUID          `json:"vehicle_id,omitempty"`
	Status      workorder.Status    `json:"status"`
	Priority    workorder.Priority  `json:"priority"`
	PartsCost   decimal.Decimal     `json:"parts_cost"`
	LaborCost   decimal.Decimal     `json:"labor_cost"`
	TotalCost   decimal.Decimal     `json:"total_cost"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func toWorkOrderDTO(wo *workorder.WorkOrder) *WorkOrderDTO {
	return &WorkOrderDTO{
		ID:          wo.ID,
		CompanyID:   wo.CompanyID,
		Number:      wo.Number,
		Title:       wo.Title,
		Description: wo.Description,
		AssetType:   wo.AssetType,
		AssetID:     wo.AssetID,
		VehicleID:   wo.VehicleID,
		Status:      wo.Status,
		Priority:    wo.Priority,
		PartsCost:   wo.PartsCost,
		LaborCost:   wo.LaborCost,
		TotalCost:   wo.TotalCost(),
		CompletedAt: wo.CompletedAt,
		CreatedAt:   wo.CreatedAt,
		UpdatedAt:   wo.UpdatedAt,
	}
}

// Create creates a work order. The asset sync hook reconciles the asset
// fields and validates the reference inside the same transaction.
func (s *WorkOrderService) Create(ctx context.Context, input CreateWorkOrderInput) (*WorkOrderDTO, error) {
	assetType := input.AssetType
	assetID := input.AssetID
	if input.VehicleID != nil && *input.VehicleID != uuid.Nil {
		assetType = workorder.AssetTypeVehicle
		assetID = *input.VehicleID
	}

	wo, err := workorder.NewWorkOrder(input.CompanyID, input.Title, assetType, assetID)
	if err != nil {
		return nil, err
	}
	wo.Description = input.Description
	wo.Number = input.Number
	wo.VehicleID = input.VehicleID
	if input.Priority != "" {
		if err := wo.SetPriority(input.Priority); err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := AssetSyncHook(ctx, tx, nil, wo); err != nil {
			return err
		}
		return persistence.NewGormWorkOrderRepository(tx).Create(ctx, wo)
	})
	if err != nil {
		if !shared.IsCode(err, "INVALID_ASSET_REFERENCE") {
			s.logger.Error("Failed to create work order",
				zap.String("company_id", input.CompanyID.String()),
				zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Work order created",
		zap.String("work_order_id", wo.ID.String()),
		zap.String("asset_type", string(wo.AssetType)))

	return toWorkOrderDTO(wo), nil
}

// Update updates a work order, re-running the asset sync hook
func (s *WorkOrderService) Update(ctx context.Context, input UpdateWorkOrderInput) (*WorkOrderDTO, error) {
	wo, err := s.workOrderRepo.FindByIDForCompany(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	old := *wo

	if input.Title != nil {
		wo.Title = *input.Title
	}
	if input.Description != nil {
		wo.Description = *input.Description
	}
	if input.AssetType != nil {
		wo.AssetType = *input.AssetType
	}
	if input.AssetID != nil {
		wo.AssetID = *input.AssetID
	}
	if input.VehicleID != nil {
		wo.VehicleID = input.VehicleID
	}
	if input.Status != nil {
		if err := wo.SetStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.Priority != nil {
		if err := wo.SetPriority(*input.Priority); err != nil {
			return nil, err
		}
	}
	wo.UpdatedAt = time.Now()
	wo.IncrementVersion()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := AssetSyncHook(ctx, tx, &old, wo); err != nil {
			return err
		}
		return persistence.NewGormWorkOrderRepository(tx).Update(ctx, wo)
	})
	if err != nil {
		return nil, err
	}

	return toWorkOrderDTO(wo), nil
}

// GetByID returns a work order scoped to a company
func (s *WorkOrderService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*WorkOrderDTO, error) {
	wo, err := s.workOrderRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toWorkOrderDTO(wo), nil
}

// List returns a company's work orders matching the filter
func (s *WorkOrderService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]WorkOrderDTO, error) {
	orders, err := s.workOrderRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]WorkOrderDTO, len(orders))
	for i := range orders {
		dtos[i] = *toWorkOrderDTO(&orders[i])
	}
	return dtos, nil
}

// Delete deletes a work order
func (s *WorkOrderService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.workOrderRepo.FindByIDForCompany(ctx, companyID, id); err != nil {
		return err
	}
	return s.workOrderRepo.Delete(ctx, id)
}
