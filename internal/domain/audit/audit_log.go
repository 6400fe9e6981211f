package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Operation is the kind of mutation an audit entry records
type Operation string

const (
	OperationInsert Operation = "INSERT"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

// AuditLogEntry records one mutation against a user record. Entries are
// append-only: once written they are never updated or deleted.
//
// Details carries the before/after snapshot as a structured JSON payload;
// deletes record only the prior state.
type AuditLogEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID   *uuid.UUID      `gorm:"type:uuid;index"`
	Action      Operation       `gorm:"type:varchar(20);not null"`
	Details     json.RawMessage `gorm:"type:jsonb"`
	PerformedBy uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLogEntry) TableName() string {
	return "audit_log_entries"
}

// Snapshot is the structured payload stored in an audit entry
type Snapshot struct {
	Before map[string]any `json:"before,omitempty"`
	After  map[string]any `json:"after,omitempty"`
}

// NewAuditLogEntry creates an audit entry for a user mutation
func NewAuditLogEntry(userID uuid.UUID, companyID *uuid.UUID, action Operation, snapshot Snapshot, performedBy uuid.UUID) (*AuditLogEntry, error) {
	details, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	return &AuditLogEntry{
		ID:          uuid.New(),
		UserID:      userID,
		CompanyID:   companyID,
		Action:      action,
		Details:     details,
		PerformedBy: performedBy,
		CreatedAt:   time.Now(),
	}, nil
}

// AdminAuditLogEntry records one run of the admin bootstrap workflow.
// Every branch, success or failure, writes exactly one entry.
type AdminAuditLogEntry struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CallerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID  *uuid.UUID      `gorm:"type:uuid;index"`
	Operation  string          `gorm:"type:varchar(50);not null"`
	Outcome    string          `gorm:"type:varchar(50);not null"`
	Detail     json.RawMessage `gorm:"type:jsonb"`
	DurationMS int64           `gorm:"not null;default:0"`
	CreatedAt  time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AdminAuditLogEntry) TableName() string {
	return "admin_audit_log_entries"
}

// NewAdminAuditLogEntry creates an admin audit entry
func NewAdminAuditLogEntry(callerID uuid.UUID, companyID *uuid.UUID, operation, outcome string, detail map[string]any, duration time.Duration) *AdminAuditLogEntry {
	var payload json.RawMessage
	if detail != nil {
		if raw, err := json.Marshal(detail); err == nil {
			payload = raw
		}
	}

	return &AdminAuditLogEntry{
		ID:         uuid.New(),
		CallerID:   callerID,
		CompanyID:  companyID,
		Operation:  operation,
		Outcome:    outcome,
		Detail:     payload,
		DurationMS: duration.Milliseconds(),
		CreatedAt:  time.Now(),
	}
}
