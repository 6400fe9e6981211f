package workorder

import (
	"time"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// overtimeMultiplier is applied to the hourly rate for overtime entries
var overtimeMultiplier = decimal.NewFromFloat(1.5)

// WorkOrderLabor is a labor entry on a work order. A nil EndTime means the
// work is still in progress: the entry carries no cost until it is closed.
// TotalHours and TotalCost are derived from the elapsed time, the hourly
// rate and the overtime multiplier.
type WorkOrderLabor struct {
	shared.CompanyAggregateRoot
	WorkOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	TechnicianID uuid.UUID       `gorm:"type:uuid;not null;index"`
	StartTime    time.Time       `gorm:"not null"`
	EndTime      *time.Time      `gorm:"index"`
	HourlyRate   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Overtime     bool            `gorm:"not null;default:false"`
	TotalHours   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (WorkOrderLabor) TableName() string {
	return "work_order_labor"
}

// NewWorkOrderLabor starts a new labor entry
func NewWorkOrderLabor(companyID, workOrderID, technicianID uuid.UUID, startTime time.Time, hourlyRate decimal.Decimal, overtime bool) (*WorkOrderLabor, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY_ID", "Company ID cannot be empty")
	}
	if workOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORK_ORDER_ID", "Work order ID cannot be empty")
	}
	if technicianID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TECHNICIAN_ID", "Technician ID cannot be empty")
	}
	if startTime.IsZero() {
		return nil, shared.NewDomainError("INVALID_START_TIME", "Start time is required")
	}
	if hourlyRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Hourly rate cannot be negative")
	}

	l := &WorkOrderLabor{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		WorkOrderID:          workOrderID,
		TechnicianID:         technicianID,
		StartTime:            startTime,
		HourlyRate:           hourlyRate,
		Overtime:             overtime,
		TotalHours:           decimal.Zero,
		TotalCost:            decimal.Zero,
	}

	return l, nil
}

// Close ends the labor entry at the given time and derives its totals
func (l *WorkOrderLabor) Close(endTime time.Time) error {
	if endTime.Before(l.StartTime) {
		return shared.NewDomainError("INVALID_END_TIME", "End time cannot be before start time")
	}

	l.EndTime = &endTime
	l.Recalculate()
	l.UpdatedAt = time.Now()

	return nil
}

// Reopen clears the end time, returning the entry to in-progress state
func (l *WorkOrderLabor) Reopen() {
	l.EndTime = nil
	l.Recalculate()
	l.UpdatedAt = time.Now()
}

// SetHourlyRate changes the hourly rate and rederives the totals
func (l *WorkOrderLabor) SetHourlyRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Hourly rate cannot be negative")
	}

	l.HourlyRate = rate
	l.Recalculate()
	l.UpdatedAt = time.Now()

	return nil
}

// SetOvertime toggles the overtime flag and rederives the totals
func (l *WorkOrderLabor) SetOvertime(overtime bool) {
	l.Overtime = overtime
	l.Recalculate()
	l.UpdatedAt = time.Now()
}

// IsClosed reports whether the entry has an end time
func (l *WorkOrderLabor) IsClosed() bool {
	return l.EndTime != nil
}

// Recalculate rederives TotalHours and TotalCost from the elapsed time,
// the hourly rate and the overtime multiplier, overwriting any
// caller-supplied values. In-progress entries carry zero totals.
func (l *WorkOrderLabor) Recalculate() {
	if l.EndTime == nil {
		l.TotalHours = decimal.Zero
		l.TotalCost = decimal.Zero
		return
	}

	hours := decimal.NewFromFloat(l.EndTime.Sub(l.StartTime).Hours()).Round(4)
	if hours.IsNegative() {
		hours = decimal.Zero
	}

	l.TotalHours = hours
	l.TotalCost = hours.Mul(l.HourlyRate)
	if l.Overtime {
		l.TotalCost = l.TotalCost.Mul(overtimeMultiplier)
	}
	l.TotalCost = l.TotalCost.Round(4)
}
