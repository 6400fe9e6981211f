package workorder

import (
	"context"
	"time"

	"github.com/fleetcore/backend/internal/domain/workorder"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LaborService manages the labor entries of a work order. Every mutation
// runs the cost rollup hook in its transaction; in-progress entries carry
// no cost until closed.
type LaborService struct {
	db            *persistence.Database
	workOrderRepo workorder.WorkOrderRepository
	laborLineRepo workorder.LaborLineRepository
	logger        *zap.Logger
}

// NewLaborService creates a new labor service
func NewLaborService(
	db *persistence.Database,
	workOrderRepo workorder.WorkOrderRepository,
	laborLineRepo workorder.LaborLineRepository,
	logger *zap.Logger,
) *LaborService {
	return &LaborService{
		db:            db,
		workOrderRepo: workOrderRepo,
		laborLineRepo: laborLineRepo,
		logger:        logger,
	}
}

// StartLaborInput contains input for starting a labor entry
type StartLaborInput struct {
	CompanyID    uuid.UUID
	WorkOrderID  uuid.UUID
	TechnicianID uuid.UUID
	StartTime    time.Time
	HourlyRate   decimal.Decimal
	Overtime     bool
	Notes        string
}

// LaborLineDTO represents a labor entry returned to callers
type LaborLineDTO struct {
	ID           uuid.UUID       `json:"id"`
	WorkOrderID  uuid.UUID       `json:"work_order_id"`
	TechnicianID uuid.UUID       `json:"technician_id"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      *time.Time      `json:"end_time,omitempty"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	Overtime     bool            `json:"overtime"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toLaborLineDTO(l *workorder.WorkOrderLabor) *LaborLineDTO {
	return &LaborLineDTO{
		ID:           l.ID,
		WorkOrderID:  l.WorkOrderID,
		TechnicianID: l.TechnicianID,
		StartTime:    l.StartTime,
		EndTime:      l.EndTime,
		HourlyRate:   l.HourlyRate,
		Overtime:     l.Overtime,
		TotalHours:   l.TotalHours,
		TotalCost:    l.TotalCost,
		Notes:        l.Notes,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// Start opens a new in-progress labor entry
func (s *LaborService) Start(ctx context.Context, input StartLaborInput) (*LaborLineDTO, error) {
	if _, err := s.workOrderRepo.FindByIDForCompany(ctx, input.CompanyID, input.WorkOrderID); err != nil {
		return nil, err
	}

	labor, err := workorder.NewWorkOrderLabor(input.CompanyID, input.WorkOrderID, input.TechnicianID, input.StartTime, input.HourlyRate, input.Overtime)
	if err != nil {
		return nil, err
	}
	labor.Notes = input.Notes

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := persistence.NewGormLaborLineRepository(tx).Create(ctx, labor); err != nil {
			return err
		}
		return CostRollupHook(ctx, tx, input.WorkOrderID)
	})
	if err != nil {
		s.logger.Error("Failed to start labor entry",
			zap.String("work_order_id", input.WorkOrderID.String()),
			zap.Error(err))
		return nil, err
	}

	return toLaborLineDTO(labor), nil
}

// Close ends a labor entry, deriving its totals and rolling the work
// order's labor cost up.
func (s *LaborService) Close(ctx context.Context, companyID, lineID uuid.UUID, endTime time.Time) (*LaborLineDTO, error) {
	labor, err := s.laborLineRepo.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workOrderRepo.FindByIDForCompany(ctx, companyID, labor.WorkOrderID); err != nil {
		return nil, err
	}

	if err := labor.Close(endTime); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := persistence.NewGormLaborLineRepository(tx).Update(ctx, labor); err != nil {
			return err
		}
		return CostRollupHook(ctx, tx, labor.WorkOrderID)
	})
	if err != nil {
		return nil, err
	}

	return toLaborLineDTO(labor), nil
}

// Reopen clears a labor entry's end time, removing it from the cost rollup
func (s *LaborService) Reopen(ctx context.Context, companyID, lineID uuid.UUID) (*LaborLineDTO, error) {
	labor, err := s.laborLineRepo.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workOrderRepo.FindByIDForCompany(ctx, companyID, labor.WorkOrderID); err != nil {
		return nil, err
	}

	labor.Reopen()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := persistence.NewGormLaborLineRepository(tx).Update(ctx, labor); err != nil {
			return err
		}
		return CostRollupHook(ctx, tx, labor.WorkOrderID)
	})
	if err != nil {
		return nil, err
	}

	return toLaborLineDTO(labor), nil
}

// Remove deletes a labor entry and rolls the costs up
func (s *LaborService) Remove(ctx context.Context, companyID, lineID uuid.UUID) error {
	labor, err := s.laborLineRepo.FindByID(ctx, lineID)
	if err != nil {
		return err
	}
	if _, err := s.workOrderRepo.FindByIDForCompany(ctx, companyID, labor.WorkOrderID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := persistence.NewGormLaborLineRepository(tx).Delete(ctx, lineID); err != nil {
			return err
		}
		return CostRollupHook(ctx, tx, labor.WorkOrderID)
	})
}

// List returns the labor entries of a work order
func (s *LaborService) List(ctx context.Context, companyID, workOrderID uuid.UUID) ([]LaborLineDTO, error) {
	if _, err := s.workOrderRepo.FindByIDForCompany(ctx, companyID, workOrderID); err != nil {
		return nil, err
	}

	entries, err := s.laborLineRepo.FindByWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	dtos := make([]LaborLineDTO, len(entries))
	for i := range entries {
		dtos[i] = *toLaborLineDTO(&entries[i])
	}
	return dtos, nil
}
