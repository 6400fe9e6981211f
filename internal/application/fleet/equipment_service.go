package fleet

import (
	"context"
	"time"

	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EquipmentService handles equipment operations
type EquipmentService struct {
	equipmentRepo fleet.EquipmentRepository
	logger        *zap.Logger
}

// NewEquipmentService creates a new equipment service
func NewEquipmentService(equipmentRepo fleet.EquipmentRepository, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

// CreateEquipmentInput contains input for creating equipment
type CreateEquipmentInput struct {
	CompanyID    uuid.UUID
	Name         string
	SerialNumber string
	Category     string
}

// UpdateEquipmentInput contains input for updating equipment
type UpdateEquipmentInput struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Name         *string
	SerialNumber *string
	Category     *string
	Status       *fleet.EquipmentStatus
	HoursUsed    *int64
}

// EquipmentDTO represents equipment data returned to callers
type EquipmentDTO struct {
	ID           uuid.UUID             `json:"id"`
	CompanyID    uuid.UUID             `json:"company_id"`
	Name         string                `json:"name"`
	SerialNumber string                `json:"serial_number,omitempty"`
	Category     string                `json:"category,omitempty"`
	Status       fleet.EquipmentStatus `json:"status"`
	HoursUsed    int64                 `json:"hours_used"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

func toEquipmentDTO(e *fleet.Equipment) *EquipmentDTO {
	return &EquipmentDTO{
		ID:           e.ID,
		CompanyID:    e.CompanyID,
		Name:         e.Name,
		SerialNumber: e.SerialNumber,
		Category:     e.Category,
		Status:       e.Status,
		HoursUsed:    e.HoursUsed,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// Create creates an equipment record
func (s *EquipmentService) Create(ctx context.Context, input CreateEquipmentInput) (*EquipmentDTO, error) {
	equipment, err := fleet.NewEquipment(input.CompanyID, input.Name)
	if err != nil {
		return nil, err
	}
	equipment.SerialNumber = input.SerialNumber
	equipment.Category = input.Category

	if err := s.equipmentRepo.Create(ctx, equipment); err != nil {
		s.logger.Error("Failed to create equipment",
			zap.String("company_id", input.CompanyID.String()),
			zap.Error(err))
		return nil, err
	}

	return toEquipmentDTO(equipment), nil
}

// Update updates an equipment record
func (s *EquipmentService) Update(ctx context.Context, input UpdateEquipmentInput) (*EquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if equipment.CompanyID != input.CompanyID {
		return nil, shared.ErrNotFound
	}

	if input.Name != nil {
		equipment.Name = *input.Name
	}
	if input.SerialNumber != nil {
		equipment.SerialNumber = *input.SerialNumber
	}
	if input.Category != nil {
		equipment.Category = *input.Category
	}
	if input.Status != nil {
		if err := equipment.SetStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.HoursUsed != nil {
		equipment.HoursUsed = *input.HoursUsed
	}
	equipment.UpdatedAt = time.Now()
	equipment.IncrementVersion()

	if err := s.equipmentRepo.Update(ctx, equipment); err != nil {
		return nil, err
	}

	return toEquipmentDTO(equipment), nil
}

// GetByID returns an equipment record scoped to a company
func (s *EquipmentService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*EquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if equipment.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	return toEquipmentDTO(equipment), nil
}

// List returns a company's equipment matching the filter
func (s *EquipmentService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]EquipmentDTO, error) {
	items, err := s.equipmentRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]EquipmentDTO, len(items))
	for i := range items {
		dtos[i] = *toEquipmentDTO(&items[i])
	}
	return dtos, nil
}

// Delete deletes an equipment record
func (s *EquipmentService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	equipment, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if equipment.CompanyID != companyID {
		return shared.ErrNotFound
	}
	return s.equipmentRepo.Delete(ctx, id)
}
