package inventory

import (
	"context"
	"time"

	appidentity "github.com/fleetcore/backend/internal/application/identity"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/inventory"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryService manages parts stock records. Every operation resolves
// the caller through the parts_inventory permission before touching
// storage; a platform admin actor bypasses the check.
type InventoryService struct {
	inventoryRepo inventory.PartsInventoryRepository
	permissions   *appidentity.PermissionService
	logger        *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	inventoryRepo inventory.PartsInventoryRepository,
	permissions *appidentity.PermissionService,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		permissions:   permissions,
		logger:        logger,
	}
}

// CreatePartInput contains input for creating a stock record
type CreatePartInput struct {
	CompanyID    uuid.UUID
	PartNumber   string
	Name         string
	ReorderPoint int
	UnitCost     decimal.Decimal
	Location     string
}

// UpdatePartInput contains input for updating a stock record. Stock levels
// are excluded; they move only through Restock and the work order hooks.
type UpdatePartInput struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	PartNumber   *string
	Name         *string
	ReorderPoint *int
	UnitCost     *decimal.Decimal
	Location     *string
}

// PartDTO represents a stock record returned to callers
type PartDTO struct {
	ID              uuid.UUID       `json:"id"`
	CompanyID       uuid.UUID       `json:"company_id"`
	PartNumber      string          `json:"part_number"`
	Name            string          `json:"name"`
	QuantityInStock int             `json:"quantity_in_stock"`
	ReorderPoint    int             `json:"reorder_point"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Location        string          `json:"location,omitempty"`
	NeedsReorder    bool            `json:"needs_reorder"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toPartDTO(p *inventory.PartsInventory) *PartDTO {
	return &PartDTO{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		PartNumber:      p.PartNumber,
		Name:            p.Name,
		QuantityInStock: p.QuantityInStock,
		ReorderPoint:    p.ReorderPoint,
		UnitCost:        p.UnitCost,
		Location:        p.Location,
		NeedsReorder:    p.NeedsReorder(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (s *InventoryService) authorize(ctx context.Context, companyID uuid.UUID, action identity.Action) error {
	actor := shared.ActorFromContext(ctx)
	if actor.IsPlatformAdmin {
		return nil
	}

	allowed, err := s.permissions.HasInventoryPermission(ctx, actor.UserID, companyID, action)
	if err != nil {
		return err
	}
	if !allowed {
		return shared.ErrPermissionDenied
	}
	return nil
}

// Create creates a stock record for a part
func (s *InventoryService) Create(ctx context.Context, input CreatePartInput) (*PartDTO, error) {
	if err := s.authorize(ctx, input.CompanyID, identity.ActionCreate); err != nil {
		return nil, err
	}

	part, err := inventory.NewPartsInventory(input.CompanyID, input.PartNumber, input.Name)
	if err != nil {
		return nil, err
	}
	if err := part.SetReorderPoint(input.ReorderPoint); err != nil {
		return nil, err
	}
	if err := part.SetUnitCost(input.UnitCost); err != nil {
		return nil, err
	}
	part.Location = input.Location

	if err := s.inventoryRepo.Create(ctx, part); err != nil {
		s.logger.Error("Failed to create inventory part",
			zap.String("company_id", input.CompanyID.String()),
			zap.Error(err))
		return nil, err
	}

	return toPartDTO(part), nil
}

// Update updates a stock record's descriptive fields
func (s *InventoryService) Update(ctx context.Context, input UpdatePartInput) (*PartDTO, error) {
	if err := s.authorize(ctx, input.CompanyID, identity.ActionEdit); err != nil {
		return nil, err
	}

	part, err := s.findForCompany(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.PartNumber != nil {
		part.PartNumber = *input.PartNumber
	}
	if input.Name != nil {
		part.Name = *input.Name
	}
	if input.ReorderPoint != nil {
		if err := part.SetReorderPoint(*input.ReorderPoint); err != nil {
			return nil, err
		}
	}
	if input.UnitCost != nil {
		if err := part.SetUnitCost(*input.UnitCost); err != nil {
			return nil, err
		}
	}
	if input.Location != nil {
		part.Location = *input.Location
	}
	part.UpdatedAt = time.Now()
	part.IncrementVersion()

	if err := s.inventoryRepo.Update(ctx, part); err != nil {
		return nil, err
	}

	return toPartDTO(part), nil
}

// Restock applies a positive stock adjustment
func (s *InventoryService) Restock(ctx context.Context, companyID, partID uuid.UUID, quantity int) (*PartDTO, error) {
	if err := s.authorize(ctx, companyID, identity.ActionEdit); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}

	if _, err := s.findForCompany(ctx, companyID, partID); err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.AdjustStock(ctx, partID, quantity); err != nil {
		return nil, err
	}

	part, err := s.inventoryRepo.FindByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	return toPartDTO(part), nil
}

// GetByID returns a stock record scoped to a company
func (s *InventoryService) GetByID(ctx context.Context, companyID, partID uuid.UUID) (*PartDTO, error) {
	if err := s.authorize(ctx, companyID, identity.ActionView); err != nil {
		return nil, err
	}

	part, err := s.findForCompany(ctx, companyID, partID)
	if err != nil {
		return nil, err
	}
	return toPartDTO(part), nil
}

// List returns a company's stock records matching the filter
func (s *InventoryService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]PartDTO, error) {
	if err := s.authorize(ctx, companyID, identity.ActionView); err != nil {
		return nil, err
	}

	parts, err := s.inventoryRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]PartDTO, len(parts))
	for i := range parts {
		dtos[i] = *toPartDTO(&parts[i])
	}
	return dtos, nil
}

// ListLowStock returns stock records at or below their reorder point
func (s *InventoryService) ListLowStock(ctx context.Context, companyID uuid.UUID) ([]PartDTO, error) {
	if err := s.authorize(ctx, companyID, identity.ActionView); err != nil {
		return nil, err
	}

	parts, err := s.inventoryRepo.FindBelowReorderPoint(ctx, companyID)
	if err != nil {
		return nil, err
	}

	dtos := make([]PartDTO, len(parts))
	for i := range parts {
		dtos[i] = *toPartDTO(&parts[i])
	}
	return dtos, nil
}

// Delete deletes a stock record
func (s *InventoryService) Delete(ctx context.Context, companyID, partID uuid.UUID) error {
	if err := s.authorize(ctx, companyID, identity.ActionDelete); err != nil {
		return err
	}

	if _, err := s.findForCompany(ctx, companyID, partID); err != nil {
		return err
	}
	return s.inventoryRepo.Delete(ctx, partID)
}

func (s *InventoryService) findForCompany(ctx context.Context, companyID, partID uuid.UUID) (*inventory.PartsInventory, error) {
	part, err := s.inventoryRepo.FindByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	if part.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	return part, nil
}
